package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"hostel-drishti/backend/internal/model"
	"hostel-drishti/backend/internal/policy"
	"hostel-drishti/backend/internal/repository"
)

// ErrExportGenerateFail the workbook could not be written
var ErrExportGenerateFail = errors.New("failed to generate the Excel file")

// ExportService hostel reports as Excel (.xlsx).
// The workbook is returned as a buffer with a suggested filename; the handler
// sets the download headers.
type ExportService interface {
	// ExportComplaints every complaint of the hostel, anonymity preserved
	ExportComplaints(ctx context.Context, actor policy.Actor, hostelID string) (*bytes.Buffer, string, error)
	// ExportDailyPerformance every daily record of the hostel, newest first
	ExportDailyPerformance(ctx context.Context, actor policy.Actor, hostelID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ────────────────────── ExportComplaints ──────────────────────
//
// Sheet "Complaints": title row, header row, one row per complaint.
// Student columns come from policy.SanitizeComplaint.

func (s *exportService) ExportComplaints(ctx context.Context, actor policy.Actor, hostelID string) (*bytes.Buffer, string, error) {
	// 1. hostel + policy
	hostel, err := s.authorize(ctx, actor, hostelID)
	if err != nil {
		return nil, "", err
	}

	// 2. data
	complaints, err := s.repo.Complaint.ListByHostel(ctx, hostelID)
	if err != nil {
		s.logger.Error("list complaints for export failed", zap.String("hostel_id", hostelID), zap.Error(err))
		return nil, "", err
	}
	rows := policy.SanitizeComplaints(complaints)

	// 3. workbook
	headers := []string{"Date", "Category", "Status", "Student", "Email", "Description"}
	widths := []float64{20, 16, 12, 24, 28, 60}

	return s.writeWorkbook(hostel, "Complaints", headers, widths, len(rows), func(i int) []interface{} {
		c := rows[i]
		return []interface{}{
			c.CreatedAt.Format("2006-01-02 15:04"),
			c.Category,
			c.Status,
			c.Student.Name,
			c.Student.Email,
			c.Description,
		}
	})
}

// ────────────────────── ExportDailyPerformance ──────────────────────

func (s *exportService) ExportDailyPerformance(ctx context.Context, actor policy.Actor, hostelID string) (*bytes.Buffer, string, error) {
	hostel, err := s.authorize(ctx, actor, hostelID)
	if err != nil {
		return nil, "", err
	}

	records, err := s.repo.DailyPerformance.ListByHostel(ctx, hostelID)
	if err != nil {
		s.logger.Error("list daily records for export failed", zap.String("hostel_id", hostelID), zap.Error(err))
		return nil, "", err
	}

	headers := []string{"Date", "Students", "Breakfast", "Lunch", "Dinner", "Latitude", "Longitude", "Remarks"}
	widths := []float64{12, 10, 40, 40, 40, 12, 12, 40}

	return s.writeWorkbook(hostel, "Daily Performance", headers, widths, len(records), func(i int) []interface{} {
		r := records[i]
		return []interface{}{
			r.Date.Format(dateLayout),
			r.StudentCount,
			r.BreakfastImage,
			r.LunchImage,
			r.DinnerImage,
			r.Latitude,
			r.Longitude,
			r.Remarks,
		}
	})
}

// ── helpers ──

func (s *exportService) authorize(ctx context.Context, actor policy.Actor, hostelID string) (*model.Hostel, error) {
	hostel, err := findHostel(ctx, s.repo, s.logger, hostelID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(policy.ExportHostelReport, actor, policy.Target{WardenID: hostel.WardenID}); err != nil {
		return nil, err
	}
	return hostel, nil
}

// writeWorkbook single-sheet report: merged title row, styled header row,
// then n data rows produced by row(i)
func (s *exportService) writeWorkbook(
	hostel *model.Hostel,
	sheetName string,
	headers []string,
	widths []float64,
	n int,
	row func(i int) []interface{},
) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("create sheet failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// title
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s (%s, %s) - %s", hostel.Name, hostel.District, hostel.State, sheetName))
	f.MergeCell(sheetName, "A1", cell(colName(len(headers)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// header
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", cell(colName(len(headers)-1), 2), headerStyle)

	// data
	for i := 0; i < n; i++ {
		values := row(i)
		if err := f.SetSheetRow(sheetName, cell("A", i+3), &values); err != nil {
			s.logger.Error("write export row failed", zap.Int("row", i), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write Excel failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s_%s.xlsx", fileSafe(hostel.Name), fileSafe(sheetName))
	return buf, filename, nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// fileSafe lower-case, spaces to underscores, drops anything else unsafe in
// a Content-Disposition filename
func fileSafe(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '_':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "report"
	}
	return b.String()
}
