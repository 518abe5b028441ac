package schedule

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/DJStompZone/paycorbot/internal/model"
	"github.com/DJStompZone/paycorbot/internal/parser"
)

// ParseError 班次时段解析失败
// 携带原始时段文本与锚定日期，供人工更正时展示
type ParseError struct {
	Token  string
	Anchor time.Time
	Cause  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("时段 %q（%s）解析失败: %v", e.Token, e.Anchor.Format("2006-01-02"), e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// ResolveShift 将 "开始/结束" 时段文本与锚定日期组合为班次记录
//
// 结束时刻不晚于开始时刻时按跨夜班处理，结束时间顺延一个日历日（仅顺延一次）；
// ShiftDate 取锚定日的日期部分，与结束时间所在日无关
func ResolveShift(token string, anchor time.Time) (model.ShiftRecord, error) {
	halves := strings.Split(token, "/")
	if len(halves) != 2 {
		return model.ShiftRecord{}, &ParseError{
			Token:  token,
			Anchor: anchor,
			Cause:  fmt.Errorf("时段应为 开始/结束 两段，实际 %d 段", len(halves)),
		}
	}

	start, err := parser.ParseClock(halves[0])
	if err != nil {
		return model.ShiftRecord{}, &ParseError{Token: token, Anchor: anchor, Cause: err}
	}
	end, err := parser.ParseClock(halves[1])
	if err != nil {
		return model.ShiftRecord{}, &ParseError{Token: token, Anchor: anchor, Cause: err}
	}

	return combineShift(start, end, anchor), nil
}

// combineShift 把两个时刻装配到锚定日上并应用跨夜规则
func combineShift(start, end, anchor time.Time) model.ShiftRecord {
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
	startAt := day.Add(clockOffset(start))
	endAt := day.Add(clockOffset(end))
	if !endAt.After(startAt) {
		endAt = endAt.AddDate(0, 0, 1)
	}
	return model.ShiftRecord{
		ShiftDate:     day,
		StartTime:     startAt,
		EndTime:       endAt,
		DurationHours: round2(endAt.Sub(startAt).Hours()),
	}
}

// clockOffset 时刻相对当日零点的偏移
func clockOffset(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}

// round2 四舍五入保留两位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
