package parser

import (
	"encoding/json"
	"fmt"

	"github.com/DJStompZone/paycorbot/internal/model"
)

// SchedulePayload 捕获到的排班 JSON 顶层结构
// 由采集侧（浏览器抓取）产出，本仓库只消费
type SchedulePayload struct {
	Schedules []model.WeekEntry `json:"Schedules"`
}

// DecodePayload 解码并做结构校验
// 顶层缺少 Schedules 集合、或任一周起始日期无法解析，均为致命的结构性错误；
// 日级与班次级的问题不在这里处理，由汇编器逐项恢复
func DecodePayload(data []byte) (*SchedulePayload, error) {
	var raw struct {
		Schedules *[]model.WeekEntry `json:"Schedules"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &StructuralError{Reason: "不是合法的 JSON", Cause: err}
	}
	if raw.Schedules == nil {
		return nil, ErrMissingSchedules
	}

	payload := &SchedulePayload{Schedules: *raw.Schedules}
	for i, week := range payload.Schedules {
		if _, err := ParseWeekStart(week.WeekStartDate); err != nil {
			return nil, &StructuralError{
				Reason: fmt.Sprintf("第 %d 周起始日期 %q 无法解析", i+1, week.WeekStartDate),
				Cause:  err,
			}
		}
	}
	return payload, nil
}
