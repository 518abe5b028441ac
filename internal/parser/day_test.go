package parser

import (
	"errors"
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func TestExtractDay_Plain(t *testing.T) {
	t.Parallel()

	markup := `<td><div class="indv-sch-sch-sten">9a/5:30p</div></td>`
	frag, err := ExtractDay(markup, mustDate(t, "2024-03-04"))
	if err != nil {
		t.Fatalf("ExtractDay: %v", err)
	}
	if frag.Off {
		t.Fatalf("unexpected off marker")
	}
	if len(frag.Tokens) != 1 || frag.Tokens[0] != "9a/5:30p" {
		t.Fatalf("unexpected tokens: %v", frag.Tokens)
	}
	if !frag.Date.Equal(mustDate(t, "2024-03-04")) {
		t.Fatalf("expected default date, got %v", frag.Date)
	}
}

func TestExtractDay_DateOverride(t *testing.T) {
	t.Parallel()

	// 三月的周里带四月覆盖：月、日覆盖，年份沿用默认日期
	markup := `<td>
		<span class="indv-sch-cell-date-month">April</span>
		<span class="indv-sch-cell-date-dom">3</span>
		<div class="indv-sch-sch-sten">9am/5pm</div>
	</td>`
	frag, err := ExtractDay(markup, mustDate(t, "2024-03-30"))
	if err != nil {
		t.Fatalf("ExtractDay: %v", err)
	}
	if frag.OverrideErr != nil {
		t.Fatalf("unexpected override error: %v", frag.OverrideErr)
	}
	if frag.Date.Year() != 2024 || frag.Date.Month() != 4 || frag.Date.Day() != 3 {
		t.Fatalf("unexpected effective date: %v", frag.Date)
	}
}

func TestExtractDay_DOMOnlyOverride(t *testing.T) {
	t.Parallel()

	// 只有月内日时，覆盖默认月份中的日
	markup := `<td>
		<span class="indv-sch-cell-date-dom">15</span>
		<div class="indv-sch-sch-sten">11a/7p</div>
	</td>`
	frag, err := ExtractDay(markup, mustDate(t, "2024-03-04"))
	if err != nil {
		t.Fatalf("ExtractDay: %v", err)
	}
	if frag.Date.Month() != 3 || frag.Date.Day() != 15 {
		t.Fatalf("unexpected effective date: %v", frag.Date)
	}
}

func TestExtractDay_UnknownMonthFallsBack(t *testing.T) {
	t.Parallel()

	markup := `<td>
		<span class="indv-sch-cell-date-month">Avril</span>
		<span class="indv-sch-cell-date-dom">3</span>
		<div class="indv-sch-sch-sten">9am/5pm</div>
	</td>`
	defaultDate := mustDate(t, "2024-03-30")
	frag, err := ExtractDay(markup, defaultDate)
	if err != nil {
		t.Fatalf("ExtractDay: %v", err)
	}
	if frag.OverrideErr == nil {
		t.Fatalf("expected override error")
	}
	var monthErr *MonthError
	if !errors.As(frag.OverrideErr, &monthErr) {
		t.Fatalf("expected *MonthError, got %T", frag.OverrideErr)
	}
	if !frag.Date.Equal(defaultDate) {
		t.Fatalf("expected fallback to default date, got %v", frag.Date)
	}
	if len(frag.Tokens) != 1 {
		t.Fatalf("tokens should survive the fallback: %v", frag.Tokens)
	}
}

func TestExtractDay_OffMarker(t *testing.T) {
	t.Parallel()

	markup := `<td><div class="indv-sch-sch-off">Off</div></td>`
	frag, err := ExtractDay(markup, mustDate(t, "2024-03-04"))
	if err != nil {
		t.Fatalf("ExtractDay: %v", err)
	}
	if !frag.Off {
		t.Fatalf("expected off marker")
	}
	if len(frag.Tokens) != 0 {
		t.Fatalf("off day should carry no tokens: %v", frag.Tokens)
	}
}

func TestExtractDay_SplitShift(t *testing.T) {
	t.Parallel()

	markup := `<td>
		<div class="indv-sch-sch-sten">9a/1p</div>
		<div class="indv-sch-sch-sten">5p/9p</div>
	</td>`
	frag, err := ExtractDay(markup, mustDate(t, "2024-03-04"))
	if err != nil {
		t.Fatalf("ExtractDay: %v", err)
	}
	if len(frag.Tokens) != 2 {
		t.Fatalf("want 2 tokens got %v", frag.Tokens)
	}
	if frag.Tokens[0] != "9a/1p" || frag.Tokens[1] != "5p/9p" {
		t.Fatalf("tokens out of order: %v", frag.Tokens)
	}
}

func TestExtractDay_Empty(t *testing.T) {
	t.Parallel()

	frag, err := ExtractDay("<td></td>", mustDate(t, "2024-03-04"))
	if err != nil {
		t.Fatalf("ExtractDay: %v", err)
	}
	if frag.Off || len(frag.Tokens) != 0 {
		t.Fatalf("empty fragment should be no-data: %+v", frag)
	}
}
