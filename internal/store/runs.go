package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DJStompZone/paycorbot/internal/model"
)

// 时间字段统一按 RFC 3339 存取
const timeLayout = time.RFC3339

// ErrRunNotFound 运行记录不存在
var ErrRunNotFound = errors.New("run not found")

// RecordRun 归档一次运行及其全部班次记录
func (s *Store) RecordRun(run model.RunRecord, shifts []model.ShiftRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, created_at, source, mode, shift_count, skipped_count, report_path, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(timeLayout), run.Source, run.Mode,
		run.ShiftCount, run.SkippedCount, run.ReportPath, run.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, shift := range shifts {
		_, err = tx.Exec(`
			INSERT INTO shifts (run_id, shift_date, start_time, end_time, duration_hours)
			VALUES (?, ?, ?, ?, ?)`,
			run.ID, shift.ShiftDate.Format(timeLayout), shift.StartTime.Format(timeLayout),
			shift.EndTime.Format(timeLayout), shift.DurationHours,
		)
		if err != nil {
			return fmt.Errorf("failed to insert shift: %w", err)
		}
	}

	return tx.Commit()
}

// ListRuns 按时间倒序列出最近的运行记录
func (s *Store) ListRuns(limit int) ([]model.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, created_at, source, mode, shift_count, skipped_count, report_path, status
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []model.RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun 获取单条运行记录
func (s *Store) GetRun(id string) (model.RunRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, created_at, source, mode, shift_count, skipped_count, report_path, status
		FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RunRecord{}, ErrRunNotFound
	}
	return run, err
}

// RunShifts 获取一次运行归档的全部班次，保持插入顺序
func (s *Store) RunShifts(runID string) ([]model.ShiftRecord, error) {
	rows, err := s.db.Query(`
		SELECT shift_date, start_time, end_time, duration_hours
		FROM shifts WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []model.ShiftRecord
	for rows.Next() {
		var dateText, startText, endText string
		var shift model.ShiftRecord
		if err := rows.Scan(&dateText, &startText, &endText, &shift.DurationHours); err != nil {
			return nil, err
		}
		if shift.ShiftDate, err = time.Parse(timeLayout, dateText); err != nil {
			return nil, fmt.Errorf("failed to parse shift_date: %w", err)
		}
		if shift.StartTime, err = time.Parse(timeLayout, startText); err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		if shift.EndTime, err = time.Parse(timeLayout, endText); err != nil {
			return nil, fmt.Errorf("failed to parse end_time: %w", err)
		}
		shifts = append(shifts, shift)
	}
	return shifts, rows.Err()
}

// scanRun 从行扫描运行记录
func scanRun(row interface{ Scan(dest ...any) error }) (model.RunRecord, error) {
	var run model.RunRecord
	var createdText string
	err := row.Scan(&run.ID, &createdText, &run.Source, &run.Mode,
		&run.ShiftCount, &run.SkippedCount, &run.ReportPath, &run.Status)
	if err != nil {
		return model.RunRecord{}, err
	}
	if run.CreatedAt, err = time.Parse(timeLayout, createdText); err != nil {
		return model.RunRecord{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return run, nil
}
