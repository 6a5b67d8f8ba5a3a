package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"jobwatch/core/posting"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/xuri/excelize/v2"
)

const sheetName = "招聘信息"

// highlightColor marks rows that are new since the previous run.
const highlightColor = "FFFF00"

var header = []string{
	"公司", "公司类型", "工作地点", "招聘类型", "招聘对象",
	"岗位", "更新时间", "截止时间", "投递链接", "公告", "内推", "备注",
}

// Flatten orders the dataset for export: newest activity first, then
// company and position so ties stay stable across runs.
func Flatten(records map[string]posting.Record) []posting.Record {
	out := make([]posting.Record, 0, len(records))
	for _, rec := range records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastSeenAt.Equal(out[j].LastSeenAt) {
			return out[i].LastSeenAt.After(out[j].LastSeenAt)
		}
		if out[i].Company != out[j].Company {
			return out[i].Company < out[j].Company
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func rowValues(rec posting.Record) []string {
	return []string{
		rec.Company,
		rec.CompanyType,
		rec.Location,
		rec.CategoryTag,
		rec.Target,
		rec.Title,
		rec.UpdateTime,
		rec.DeadlineRaw,
		rec.DetailURL,
		rec.NoticeURL,
		rec.Referral,
		rec.Notes,
	}
}

// WriteXLSX writes the records to a workbook at path, highlighting the
// rows whose identity key is in fresh.
func WriteXLSX(path string, records []posting.Record, fresh mapset.Set[string]) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	freshStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{highlightColor}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create highlight style: %w", err)
	}

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheetName, "A1", endHeader, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, rec := range records {
		row := i + 2
		for col, value := range rowValues(rec) {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("row cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
		if fresh != nil && fresh.Contains(rec.IdentityKey) {
			start, _ := excelize.CoordinatesToCellName(1, row)
			end, _ := excelize.CoordinatesToCellName(len(header), row)
			if err := f.SetCellStyle(sheetName, start, end, freshStyle); err != nil {
				return fmt.Errorf("highlight row %d: %w", row, err)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "L", 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// WriteCSV writes the records as UTF-8 csv with the same column layout
// as the workbook.
func WriteCSV(path string, records []posting.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		if err := writer.Write(rowValues(rec)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
