// Package export renders a project's case review table as TSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/veioenza/seqr/internal/models"
)

const (
	FormatTSV  = "tsv"
	FormatXLSX = "xlsx"

	timeLayout = "2006-01-02 15:04:05"
	sheetName  = "Case Review"
	infoSheet  = "Info"
)

// ContentType returns the MIME type served for format.
func ContentType(format string) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/tab-separated-values"
}

// Filename is the download name for a project's export.
func Filename(projectName, format string) string {
	return fmt.Sprintf("%s_case_review.%s", projectName, format)
}

type CaseReviewRow struct {
	FamilyID         string
	IndividualID     string
	PaternalID       string
	MaternalID       string
	Sex              string
	Affected         string
	Status           models.CaseReviewStatus
	LastModifiedDate *time.Time
	LastModifiedBy   string
	Discussion       string
}

var headers = []string{
	"Family ID",
	"Individual ID",
	"Paternal ID",
	"Maternal ID",
	"Sex",
	"Affected Status",
	"Case Review Status",
	"Status Last Modified",
	"Status Last Modified By",
	"Case Review Discussion",
}

var sexNames = map[string]string{
	models.SexMale:    "Male",
	models.SexFemale:  "Female",
	models.SexUnknown: "Unknown",
}

var affectedNames = map[string]string{
	models.AffectedYes:     "Affected",
	models.AffectedNo:      "Unaffected",
	models.AffectedUnknown: "Unknown",
}

// Rows builds one row per individual. Individuals need Family, Father,
// Mother and CaseReviewStatusLastModifiedBy preloaded.
func Rows(individuals []models.Individual) []CaseReviewRow {
	rows := make([]CaseReviewRow, 0, len(individuals))
	for _, i := range individuals {
		row := CaseReviewRow{
			FamilyID:         i.Family.FamilyID,
			IndividualID:     i.IndividualID,
			Sex:              i.Sex,
			Affected:         i.Affected,
			Status:           i.CaseReviewStatus,
			LastModifiedDate: i.CaseReviewStatusLastModifiedDate,
			Discussion:       i.CaseReviewDiscussion,
		}
		if i.Father != nil {
			row.PaternalID = i.Father.IndividualID
		}
		if i.Mother != nil {
			row.MaternalID = i.Mother.IndividualID
		}
		if by := i.CaseReviewStatusLastModifiedBy; by != nil {
			row.LastModifiedBy = by.DisplayName()
		}
		rows = append(rows, row)
	}
	return rows
}

func (r CaseReviewRow) values() []string {
	modified := ""
	if r.LastModifiedDate != nil {
		modified = r.LastModifiedDate.UTC().Format(timeLayout)
	}
	return []string{
		r.FamilyID,
		r.IndividualID,
		r.PaternalID,
		r.MaternalID,
		lookup(sexNames, r.Sex),
		lookup(affectedNames, r.Affected),
		r.Status.Name(),
		modified,
		r.LastModifiedBy,
		r.Discussion,
	}
}

func lookup(names map[string]string, code string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return code
}

func WriteTSV(w io.Writer, rows []CaseReviewRow) error {
	tw := csv.NewWriter(w)
	tw.Comma = '\t'

	if err := tw.Write(headers); err != nil {
		return err
	}
	for _, r := range rows {
		if err := tw.Write(r.values()); err != nil {
			return err
		}
	}
	tw.Flush()
	return tw.Error()
}

// Write renders rows in the requested format.
func Write(w io.Writer, format, projectName string, rows []CaseReviewRow) error {
	switch format {
	case FormatTSV:
		return WriteTSV(w, rows)
	case FormatXLSX:
		return WriteXLSX(w, projectName, rows)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func WriteXLSX(w io.Writer, projectName string, rows []CaseReviewRow) error {
	f, err := buildWorkbook(projectName, rows, time.Now().UTC())
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteTo(w)
	return err
}

// statusFills highlights rows that still need staff attention.
var statusFills = map[models.CaseReviewStatus]string{
	models.CaseReviewUncertain:      "#FFF2CC",
	models.CaseReviewMoreInfoNeeded: "#FFCCCC",
	models.CaseReviewAccepted:       "#D9EAD3",
}

func buildWorkbook(projectName string, rows []CaseReviewRow, generated time.Time) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, err
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}

	if bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(sheetName, "A1", last, bold)
	}

	fills := make(map[models.CaseReviewStatus]int, len(statusFills))
	for status, color := range statusFills {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			f.Close()
			return nil, err
		}
		fills[status] = style
	}

	counts := make(map[models.CaseReviewStatus]int)
	for idx, r := range rows {
		rowNum := idx + 2
		values := r.values()
		cells := make([]interface{}, len(values))
		for i, v := range values {
			cells[i] = v
		}

		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			f.Close()
			return nil, err
		}

		if style, ok := fills[r.Status]; ok {
			statusCell := fmt.Sprintf("G%d", rowNum)
			f.SetCellStyle(sheetName, statusCell, statusCell, style)
		}
		counts[r.Status]++
	}

	for i := range headers {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	if err := writeInfoSheet(f, projectName, len(rows), counts, generated); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeInfoSheet(f *excelize.File, projectName string, total int, counts map[models.CaseReviewStatus]int, generated time.Time) error {
	if _, err := f.NewSheet(infoSheet); err != nil {
		return err
	}

	info := [][]interface{}{
		{"Project", projectName},
		{"Report Generated", generated.Format(timeLayout)},
		{"Total Individuals", total},
	}
	for _, status := range models.CaseReviewStatuses {
		info = append(info, []interface{}{status.Name(), counts[status]})
	}

	for i, row := range info {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(infoSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
