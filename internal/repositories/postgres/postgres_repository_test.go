package postgres

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/campus-hub/school-service/internal/repositories"
)

func TestTranslateError(t *testing.T) {
	opaque := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "record not found", err: gorm.ErrRecordNotFound, want: repositories.ErrNotFound},
		{name: "duplicated key", err: gorm.ErrDuplicatedKey, want: repositories.ErrDuplicateKey},
		{name: "context canceled", err: context.Canceled, want: context.Canceled},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: context.DeadlineExceeded},
		{name: "driver failure", err: opaque, want: repositories.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err)
			if tt.want == nil {
				if got != nil {
					t.Errorf("translateError() = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("translateError() = %v, want %v", got, tt.want)
			}
		})
	}

	// A caller abort must not read as a store failure.
	if errors.Is(translateError(context.Canceled), repositories.ErrUnavailable) {
		t.Error("context cancellation translated to ErrUnavailable")
	}
}
