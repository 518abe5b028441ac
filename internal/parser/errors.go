package parser

import "fmt"

// TimeError 时刻文本两种已知布局均不匹配
type TimeError struct {
	Text string // 规整后的文本
}

func (e *TimeError) Error() string {
	return fmt.Sprintf("时刻文本 %q 不匹配任何已知格式", e.Text)
}

// MonthError 日期覆盖块中的月份名无法识别
type MonthError struct {
	Name string
}

func (e *MonthError) Error() string {
	return fmt.Sprintf("无法识别的月份名 %q", e.Name)
}

// StructuralError 载荷结构性错误，对整次运行致命
type StructuralError struct {
	Reason string
	Cause  error
}

func (e *StructuralError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("载荷结构无效: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("载荷结构无效: %s", e.Reason)
}

func (e *StructuralError) Unwrap() error { return e.Cause }

// ErrMissingSchedules 缺少顶层周数据集合
var ErrMissingSchedules = &StructuralError{Reason: "缺少顶层 Schedules 集合"}
