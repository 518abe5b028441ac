package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/DJStompZone/paycorbot/internal/model"
)

// 报表列头，与原门户报表保持一致
var headers = []string{"Shift Date", "Start Time", "End Time", "Duration (Hours)"}

// 单元格展示格式
const (
	dateFormat     = "2006-01-02"
	dateTimeFormat = "2006-01-02 15:04"
)

// Exporter 班次报表导出器
// 只负责把有序班次记录渲染成 Excel 工作簿，不做任何解析
type Exporter struct {
	// FillDaysOff 开启后为覆盖区间内没有班次的日期补零时长 OFF 占位行
	FillDaysOff bool
}

// reportRow 单行输出
type reportRow struct {
	date     string
	start    string
	end      string
	duration float64
}

// Export 渲染班次记录为 Excel 工作簿
// 表头加粗 12 号字，全表水平靠左、垂直居中，列宽按最长内容 + 2 自适应
func (e *Exporter) Export(records []model.ShiftRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("创建表头样式失败: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("创建正文样式失败: %w", err)
	}

	for col, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, err
		}
	}

	rows := e.buildRows(records)
	for i, row := range rows {
		values := []any{row.date, row.start, row.end, row.duration}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		if err := f.SetCellStyle(sheet, "A2", fmt.Sprintf("%s%d", lastCol, len(rows)+1), bodyStyle); err != nil {
			return nil, err
		}
	}

	e.autoFitColumns(f, sheet, rows)
	return f, nil
}

// ExportToFile 渲染并保存到指定路径
func (e *Exporter) ExportToFile(records []model.ShiftRecord, path string) error {
	f, err := e.Export(records)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("保存报表失败: %w", err)
	}
	return nil
}

// buildRows 生成输出行
// FillDaysOff 开启时以最早、最晚班次日期为覆盖区间，区间内没有记录的日期
// 补一行 "OFF/OFF/0"，与门户纸面排班的读法一致
func (e *Exporter) buildRows(records []model.ShiftRecord) []reportRow {
	if !e.FillDaysOff || len(records) == 0 {
		rows := make([]reportRow, 0, len(records))
		for _, r := range records {
			rows = append(rows, recordRow(r))
		}
		return rows
	}

	covered := make(map[string][]model.ShiftRecord)
	first, last := records[0].ShiftDate, records[0].ShiftDate
	for _, r := range records {
		key := r.ShiftDate.Format(dateFormat)
		covered[key] = append(covered[key], r)
		if r.ShiftDate.Before(first) {
			first = r.ShiftDate
		}
		if r.ShiftDate.After(last) {
			last = r.ShiftDate
		}
	}

	var rows []reportRow
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateFormat)
		if dayRecords, ok := covered[key]; ok {
			for _, r := range dayRecords {
				rows = append(rows, recordRow(r))
			}
			continue
		}
		rows = append(rows, reportRow{date: key, start: "OFF", end: "OFF", duration: 0})
	}
	return rows
}

func recordRow(r model.ShiftRecord) reportRow {
	return reportRow{
		date:     r.ShiftDate.Format(dateFormat),
		start:    r.StartTime.Format(dateTimeFormat),
		end:      r.EndTime.Format(dateTimeFormat),
		duration: r.DurationHours,
	}
}

// autoFitColumns 按内容设置列宽（最长渲染文本 + 2）
func (e *Exporter) autoFitColumns(f *excelize.File, sheet string, rows []reportRow) {
	for col, name := range headers {
		width := len(name)
		for _, row := range rows {
			texts := []string{row.date, row.start, row.end, strconv.FormatFloat(row.duration, 'f', 2, 64)}
			if l := len(texts[col]); l > width {
				width = l
			}
		}
		colName, _ := excelize.ColumnNumberToName(col + 1)
		_ = f.SetColWidth(sheet, colName, colName, float64(width+2))
	}
}

// DefaultReportName 默认报表文件名，带运行日期
func DefaultReportName(now time.Time) string {
	return fmt.Sprintf("schedule_%s.xlsx", now.Format("20060102"))
}
