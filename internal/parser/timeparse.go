package parser

import (
	"regexp"
	"strings"
	"time"
)

// WeekStartLayout 周起始日期的固定文本格式（门户载荷中形如 "Mar-04-2024"）
const WeekStartLayout = "Jan-02-2006"

// clockLayouts 依次尝试的时刻布局：小时:分钟+上下午、仅小时+上下午
// 首个匹配生效
var clockLayouts = []string{"3:04pm", "3pm"}

// hourMinutePattern 已带 "时:分" 结构的时刻文本
var hourMinutePattern = regexp.MustCompile(`^\d+:\d+`)

// NormalizeClockText 将随手书写的时刻文本规整为统一可解析形式
// 门户数据混杂 "9a"、"9 a.m."、"9:00am"、"9am" 等写法，统一漏斗到两种布局之一：
//  1. 去首尾空白、转小写、去句点与内部空格
//  2. 裸 "a"/"p" 结尾补全为 "am"/"pm"
//  3. 无 "时:分" 结构时在上下午后缀前注入 ":00"
//
// 纯函数，永不失败，总是返回尽力而为的结果；对已规整文本幂等
func NormalizeClockText(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, " ", "")
	if strings.HasSuffix(s, "a") || strings.HasSuffix(s, "p") {
		s += "m"
	}
	if !hourMinutePattern.MatchString(s) && len(s) > 2 {
		s = s[:len(s)-2] + ":00" + s[len(s)-2:]
	}
	return s
}

// ParseClock 解析时刻文本为当日时刻（仅时分有效，日期部分为零值）
// 两种布局都不匹配时返回 *TimeError，携带规整后的文本便于诊断
func ParseClock(raw string) (time.Time, error) {
	s := NormalizeClockText(raw)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &TimeError{Text: s}
}

// ParseWeekStart 解析周起始日期文本
func ParseWeekStart(text string) (time.Time, error) {
	t, err := time.Parse(WeekStartLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// ParseMonthName 将完整英文月份名解析为月份
// 仅接受完整月份名（大小写不敏感），无法识别时返回 *MonthError
func ParseMonthName(name string) (time.Month, error) {
	trimmed := strings.TrimSpace(name)
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), trimmed) {
			return m, nil
		}
	}
	return 0, &MonthError{Name: trimmed}
}
