package models

import "testing"

func TestUserRoleValid(t *testing.T) {
	tests := []struct {
		role UserRole
		want bool
	}{
		{RoleStudent, true},
		{RoleTeacher, true},
		{RoleAdmin, true},
		{UserRole(""), false},
		{UserRole("student"), false},
		{UserRole("SUPERUSER_ROLE"), false},
	}
	for _, tt := range tests {
		if got := tt.role.Valid(); got != tt.want {
			t.Errorf("UserRole(%q).Valid() = %v, want %v", tt.role, got, tt.want)
		}
	}
}
