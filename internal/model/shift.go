package model

import "time"

// DaysPerWeek 每周的日槽位数量
const DaysPerWeek = 7

// ShiftRecord 单个班次记录，解析引擎的规范输出单元
//
// 不变量：EndTime 严格晚于 StartTime（跨夜班的结束时间已顺延到次日）；
// DurationHours 为两者间隔的小时数，保留两位小数；
// ShiftDate 是该班次锚定的日历日，不一定等于 EndTime 所在日。
type ShiftRecord struct {
	ShiftDate     time.Time `json:"shiftDate"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	DurationHours float64   `json:"durationHours"`
}

// Overnight 是否为跨夜班
func (r ShiftRecord) Overnight() bool {
	sy, sm, sd := r.StartTime.Date()
	ey, em, ed := r.EndTime.Date()
	return sy != ey || sm != em || sd != ed
}

// WeekEntry 捕获载荷中一周的原始排班数据
//
// WeekStartDate 使用门户固定的 "Jan-02-2006" 文本格式（如 "Mar-04-2024"）；
// Day0..Day6 为周起始日起各天的原始标记片段，允许缺失（无数据日）。
type WeekEntry struct {
	WeekStartDate string `json:"WeekStartDate"`
	Day0          string `json:"Day0,omitempty"`
	Day1          string `json:"Day1,omitempty"`
	Day2          string `json:"Day2,omitempty"`
	Day3          string `json:"Day3,omitempty"`
	Day4          string `json:"Day4,omitempty"`
	Day5          string `json:"Day5,omitempty"`
	Day6          string `json:"Day6,omitempty"`
}

// Slot 返回第 i 个日槽位的标记片段，i 超出 [0,6] 时返回空串
func (w WeekEntry) Slot(i int) string {
	switch i {
	case 0:
		return w.Day0
	case 1:
		return w.Day1
	case 2:
		return w.Day2
	case 3:
		return w.Day3
	case 4:
		return w.Day4
	case 5:
		return w.Day5
	case 6:
		return w.Day6
	}
	return ""
}

// RunRecord 一次解析运行的归档信息
type RunRecord struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	Source       string    `json:"source"`
	Mode         string    `json:"mode"` // attended / unattended
	ShiftCount   int       `json:"shiftCount"`
	SkippedCount int       `json:"skippedCount"`
	ReportPath   string    `json:"reportPath"`
	Status       string    `json:"status"`
}
