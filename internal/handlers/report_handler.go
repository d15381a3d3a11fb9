package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-hub/school-service/internal/services"
)

type ReportHandler struct {
	BaseHandler
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   NewBaseHandler(logger),
		reportService: reportService,
	}
}

// CourseRoster streams the course roster workbook as an XLSX download.
func (h *ReportHandler) CourseRoster(c *gin.Context) {
	h.LogRequest(c, "Exporting course roster")

	f, err := h.reportService.CourseRoster(c.Request.Context())
	if err != nil {
		h.RespondError(c, err, "Error building course roster")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="course-roster.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		h.LogError(c, err, "Failed to stream course roster")
		return
	}
	c.Status(http.StatusOK)
}
