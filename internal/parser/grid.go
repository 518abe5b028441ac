package parser

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// 个人排班网格视图的选择器
const (
	selGridTable = "div.x-grid-item-container table"
	selGridHours = ".indv-sch-sch-hrs" // 门户自报的小时数，仅随行携带，不参与计算
)

// GridCell 网格页源中一个有效排班单元格
type GridCell struct {
	DayOfMonth int    // 月内日
	Token      string // 班次时段文本
	Hours      string // 门户显示的小时数原文（如 "8h"）
}

// ParseGridSource 解析整页网格标记，提取同时携带日期、时段、小时数的单元格
// 三者缺一的单元格是布局占位，直接跳过
func ParseGridSource(pageSource string) ([]GridCell, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageSource))
	if err != nil {
		return nil, err
	}

	var cells []GridCell
	doc.Find(selGridTable).Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			row.Find("td").Each(func(_ int, cell *goquery.Selection) {
				date := cell.Find(selDateDOM)
				token := cell.Find(selShiftToken)
				hours := cell.Find(selGridHours)
				if date.Length() == 0 || token.Length() == 0 || hours.Length() == 0 {
					return
				}
				dom, err := strconv.Atoi(strings.TrimSpace(date.First().Text()))
				if err != nil {
					return
				}
				cells = append(cells, GridCell{
					DayOfMonth: dom,
					Token:      strings.TrimSpace(token.First().Text()),
					Hours:      strings.TrimSpace(hours.First().Text()),
				})
			})
		})
	})
	return cells, nil
}
