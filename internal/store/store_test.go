package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DJStompZone/paycorbot/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "paycorbot.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(id string, at time.Time) model.RunRecord {
	return model.RunRecord{
		ID:           id,
		CreatedAt:    at,
		Source:       "payload.json",
		Mode:         "unattended",
		ShiftCount:   2,
		SkippedCount: 1,
		ReportPath:   "/tmp/report.xlsx",
		Status:       "ok",
	}
}

func TestRecordAndListRuns(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	base := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	if err := s.RecordRun(sampleRun("run-1", base), nil); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := s.RecordRun(sampleRun("run-2", base.Add(time.Hour)), nil); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	runs, err := s.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("want 2 runs got %d", len(runs))
	}
	// 按时间倒序
	if runs[0].ID != "run-2" || runs[1].ID != "run-1" {
		t.Fatalf("runs out of order: %v", runs)
	}
	if runs[1].SkippedCount != 1 || runs[1].ShiftCount != 2 {
		t.Fatalf("counts lost: %+v", runs[1])
	}
	if !runs[1].CreatedAt.Equal(base) {
		t.Fatalf("created_at lost precision: %v", runs[1].CreatedAt)
	}
}

func TestRunShifts_RoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	shifts := []model.ShiftRecord{
		{
			ShiftDate:     day,
			StartTime:     day.Add(21 * time.Hour),
			EndTime:       day.Add(29 * time.Hour), // 跨夜
			DurationHours: 8.00,
		},
		{
			ShiftDate:     day.AddDate(0, 0, 2),
			StartTime:     day.AddDate(0, 0, 2).Add(9 * time.Hour),
			EndTime:       day.AddDate(0, 0, 2).Add(17 * time.Hour),
			DurationHours: 8.00,
		},
	}
	if err := s.RecordRun(sampleRun("run-1", time.Now().UTC()), shifts); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	got, err := s.RunShifts("run-1")
	if err != nil {
		t.Fatalf("RunShifts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 shifts got %d", len(got))
	}
	if !got[0].EndTime.Equal(shifts[0].EndTime) {
		t.Fatalf("end time mangled: %v vs %v", got[0].EndTime, shifts[0].EndTime)
	}
	if got[0].DurationHours != 8.00 {
		t.Fatalf("duration mangled: %v", got[0].DurationHours)
	}
	// 保持插入顺序
	if got[1].ShiftDate.Before(got[0].ShiftDate) {
		t.Fatalf("shifts out of order")
	}
}

func TestGetRun_NotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.GetRun("nope")
	if !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("want ErrRunNotFound got %v", err)
	}
}
