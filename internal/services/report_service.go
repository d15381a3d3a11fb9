package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/campus-hub/school-service/internal/repositories"
)

const rosterSheet = "Courses"

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{
		repo:   repo,
		logger: logger,
	}
}

// CourseRoster builds a workbook with one row per course: title, owning
// teacher and enrolled-student count.
func (s *reportService) CourseRoster(ctx context.Context) (*excelize.File, error) {
	s.logger.Info("Building course roster report")

	courses, err := s.repo.Course().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	f := excelize.NewFile()
	index, err := f.NewSheet(rosterSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []string{"Course ID", "Title", "Teacher", "Enrolled Students"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(rosterSheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, course := range courses {
		teacherName := course.TeacherID
		if teacher, err := s.repo.User().GetByID(ctx, course.TeacherID); err == nil {
			teacherName = teacher.Username
		}

		enrolled, err := s.repo.Enrollment().CountByCourse(ctx, course.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count enrollments: %w", err)
		}

		values := []interface{}{course.ID, course.Title, teacherName, enrolled}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(rosterSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	return f, nil
}
