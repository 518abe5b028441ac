package parser

import (
	"errors"
	"testing"
)

func TestNormalizeClockText_Funnel(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"9a":         "9:00am",
		"9 a.m.":     "9:00am",
		"9am":        "9:00am",
		"9:00am":     "9:00am",
		"9:00 a.m.":  "9:00am",
		"5:30p.":     "5:30pm",
		"11p":        "11:00pm",
		"12:15 P.M.": "12:15pm",
	}
	for raw, want := range cases {
		if got := NormalizeClockText(raw); got != want {
			t.Fatalf("NormalizeClockText(%q) want=%q got=%q", raw, want, got)
		}
	}
}

func TestNormalizeClockText_Idempotent(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"9:00am", "9pm", "12:30pm", "11:00am"} {
		once := NormalizeClockText(token)
		twice := NormalizeClockText(once)
		if once != twice {
			t.Fatalf("%q: once=%q twice=%q", token, once, twice)
		}
	}
}

func TestParseClock_EquivalentForms(t *testing.T) {
	t.Parallel()

	// 同一时刻的各种随手写法应解析到同一结果
	for _, raw := range []string{"9a", "9 a.m.", "9am", "9:00am", "9:00 a.m."} {
		got, err := ParseClock(raw)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", raw, err)
		}
		if got.Hour() != 9 || got.Minute() != 0 {
			t.Fatalf("ParseClock(%q) = %02d:%02d, want 09:00", raw, got.Hour(), got.Minute())
		}
	}
}

func TestParseClock_Afternoon(t *testing.T) {
	t.Parallel()

	got, err := ParseClock("5:30p")
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	if got.Hour() != 17 || got.Minute() != 30 {
		t.Fatalf("want 17:30 got %02d:%02d", got.Hour(), got.Minute())
	}
}

func TestParseClock_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseClock("garbage")
	if err == nil {
		t.Fatalf("expected error")
	}
	var timeErr *TimeError
	if !errors.As(err, &timeErr) {
		t.Fatalf("expected *TimeError, got %T", err)
	}
	if timeErr.Text == "" {
		t.Fatalf("TimeError should carry normalized text")
	}
}

func TestParseWeekStart(t *testing.T) {
	t.Parallel()

	got, err := ParseWeekStart("Mar-04-2024")
	if err != nil {
		t.Fatalf("ParseWeekStart: %v", err)
	}
	if got.Year() != 2024 || got.Month() != 3 || got.Day() != 4 {
		t.Fatalf("unexpected date: %v", got)
	}

	if _, err := ParseWeekStart("2024-03-04"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}

func TestParseMonthName(t *testing.T) {
	t.Parallel()

	m, err := ParseMonthName("April")
	if err != nil {
		t.Fatalf("ParseMonthName: %v", err)
	}
	if m != 4 {
		t.Fatalf("want April(4) got %v", m)
	}

	if _, err := ParseMonthName("Avril"); err == nil {
		t.Fatalf("expected error for unknown month name")
	}
	// 缩写不接受，要求完整月份名
	if _, err := ParseMonthName("Apr"); err == nil {
		t.Fatalf("expected error for abbreviated month name")
	}
}
