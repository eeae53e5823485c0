package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/schedassist/sched-assist-api/internal/models"
	appErrors "github.com/schedassist/sched-assist-api/pkg/errors"
	"github.com/schedassist/sched-assist-api/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var exportHeaders = []string{"Date", "Time", "Subject", "Duration"}

type timetableLister interface {
	ListAll(ctx context.Context, userID string) (models.UserTimetable, error)
}

// ExportService renders a user's timetable as a downloadable document.
type ExportService struct {
	repo timetableLister
	csv  *export.CSVExporter
	pdf  *export.PDFExporter
}

// NewExportService instantiates ExportService.
func NewExportService(repo timetableLister) *ExportService {
	return &ExportService{
		repo: repo,
		csv:  export.NewCSVExporter(),
		pdf:  export.NewPDFExporter(),
	}
}

// ExportResult carries rendered bytes plus download metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// Export renders the user's full timetable sorted by date then start time.
func (s *ExportService) Export(ctx context.Context, userID, format string) (*ExportResult, error) {
	if userID == "" {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "User ID is required")
	}
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("unsupported export format %q", format))
	}

	timetable, err := s.repo.ListAll(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load timetable")
	}

	data := export.Dataset{Headers: exportHeaders, Rows: buildExportRows(timetable)}

	switch format {
	case ExportFormatPDF:
		content, err := s.pdf.Render(data, fmt.Sprintf("Timetable %s", userID))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("timetable-%s.pdf", userID),
		}, nil
	default:
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("timetable-%s.csv", userID),
		}, nil
	}
}

func buildExportRows(timetable models.UserTimetable) []map[string]string {
	dates := make([]string, 0, len(timetable))
	for date := range timetable {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	rows := []map[string]string{}
	for _, date := range dates {
		entries := append([]models.TimetableEntry(nil), timetable[date].Updates...)
		sort.Slice(entries, func(i, j int) bool { return entries[i].Time < entries[j].Time })
		for _, entry := range entries {
			rows = append(rows, map[string]string{
				"Date":     date,
				"Time":     entry.Time,
				"Subject":  entry.Subject,
				"Duration": entry.Duration,
			})
		}
	}
	return rows
}
