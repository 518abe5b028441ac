package parser

import (
	"errors"
	"testing"
)

func TestDecodePayload_OK(t *testing.T) {
	t.Parallel()

	data := []byte(`{
		"Schedules": [
			{
				"WeekStartDate": "Mar-04-2024",
				"Day0": "<td><div class=\"indv-sch-sch-sten\">9a/5p</div></td>"
			}
		]
	}`)
	payload, err := DecodePayload(data)
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if len(payload.Schedules) != 1 {
		t.Fatalf("want 1 week got %d", len(payload.Schedules))
	}
	if payload.Schedules[0].Slot(0) == "" {
		t.Fatalf("Day0 missing")
	}
	if payload.Schedules[0].Slot(1) != "" {
		t.Fatalf("Day1 should be empty")
	}
}

func TestDecodePayload_MissingSchedules(t *testing.T) {
	t.Parallel()

	_, err := DecodePayload([]byte(`{"other": []}`))
	if !errors.Is(err, ErrMissingSchedules) {
		t.Fatalf("want ErrMissingSchedules got %v", err)
	}
}

func TestDecodePayload_EmptySchedulesIsValid(t *testing.T) {
	t.Parallel()

	// 空集合结构上合法，只是没有数据
	payload, err := DecodePayload([]byte(`{"Schedules": []}`))
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if len(payload.Schedules) != 0 {
		t.Fatalf("want empty schedules")
	}
}

func TestDecodePayload_BadWeekStart(t *testing.T) {
	t.Parallel()

	_, err := DecodePayload([]byte(`{"Schedules": [{"WeekStartDate": "03/04/2024"}]}`))
	if err == nil {
		t.Fatalf("expected structural error")
	}
	var structural *StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("expected *StructuralError, got %T", err)
	}
}

func TestDecodePayload_NotJSON(t *testing.T) {
	t.Parallel()

	_, err := DecodePayload([]byte(`<html>`))
	var structural *StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("expected *StructuralError, got %v", err)
	}
}
