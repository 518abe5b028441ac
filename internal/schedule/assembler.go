package schedule

import (
	"strings"
	"time"

	"github.com/DJStompZone/paycorbot/internal/model"
	"github.com/DJStompZone/paycorbot/internal/parser"
)

// Assembler 排班汇编器
// 遍历周数据，对每个日槽位应用日提取与班次解析，产出按周序、周内日序排列的班次记录。
// 单线程使用；一次 Assemble 调用对应一份载荷
type Assembler struct {
	diag       Diagnostics
	interactor Interactor

	skipped int // 最近一次汇编中放弃的班次数
}

// NewAssembler 创建汇编器
// diag 为 nil 时走标准日志；interactor 为 nil 表示非值守模式
func NewAssembler(diag Diagnostics, interactor Interactor) *Assembler {
	if diag == nil {
		diag = LogDiagnostics{}
	}
	return &Assembler{diag: diag, interactor: interactor}
}

// Skipped 最近一次汇编中因解析失败被放弃的班次数
// 非值守调用方若需要严格校验，应检查该计数与诊断输出，而不只看结果条数
func (a *Assembler) Skipped() int { return a.skipped }

// Assemble 汇编全部周数据为有序班次记录
//
// 第 i 个日槽位锚定在 周起始日 + i 天（i = 0..6）；休息日与无数据槽位不产出记录。
// 班次级错误在日内恢复或跳过，绝不中止整次运行；只有结构性错误返回非 nil error
func (a *Assembler) Assemble(payload *parser.SchedulePayload) ([]model.ShiftRecord, error) {
	if payload == nil || payload.Schedules == nil {
		return nil, parser.ErrMissingSchedules
	}
	a.skipped = 0

	var result []model.ShiftRecord
	for _, week := range payload.Schedules {
		weekStart, err := parser.ParseWeekStart(week.WeekStartDate)
		if err != nil {
			return nil, &parser.StructuralError{
				Reason: "周起始日期 " + week.WeekStartDate + " 无法解析",
				Cause:  err,
			}
		}
		for slot := 0; slot < model.DaysPerWeek; slot++ {
			markup := week.Slot(slot)
			if strings.TrimSpace(markup) == "" {
				continue
			}
			anchor := weekStart.AddDate(0, 0, slot)
			result = append(result, a.assembleDay(markup, anchor)...)
		}
	}
	return result, nil
}

// AssembleGrid 网格页源变体
// 整页网格中的单元格只携带月内日，年月由调用方给定；走同一套解析与恢复路径
func (a *Assembler) AssembleGrid(pageSource string, year int, month time.Month) ([]model.ShiftRecord, error) {
	cells, err := parser.ParseGridSource(pageSource)
	if err != nil {
		return nil, &parser.StructuralError{Reason: "网格页源无法读取", Cause: err}
	}
	a.skipped = 0

	var result []model.ShiftRecord
	for _, cell := range cells {
		anchor := time.Date(year, month, cell.DayOfMonth, 0, 0, 0, 0, time.Local)
		rec, err := ResolveShift(cell.Token, anchor)
		if err != nil {
			if recovered, ok := a.recoverShift(cell.Token, anchor, err); ok {
				result = append(result, recovered)
			}
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

// assembleDay 处理单日片段，返回该日的全部班次记录
// 班次级失败在这里收束：要么恢复出记录，要么记诊断后跳过
func (a *Assembler) assembleDay(markup string, anchor time.Time) []model.ShiftRecord {
	frag, err := parser.ExtractDay(markup, anchor)
	if err != nil {
		a.diag.Reportf("日期 %s 的片段无法读取: %v", anchor.Format("2006-01-02"), err)
		return nil
	}
	if frag.OverrideErr != nil {
		a.diag.Reportf("日期 %s 的日期覆盖无效，沿用默认日期: %v", anchor.Format("2006-01-02"), frag.OverrideErr)
	}
	if frag.Off {
		// 休息日不产出记录；报表层可按需补 OFF 占位行
		return nil
	}

	var records []model.ShiftRecord
	for _, token := range frag.Tokens {
		rec, err := ResolveShift(token, frag.Date)
		if err != nil {
			if recovered, ok := a.recoverShift(token, frag.Date, err); ok {
				records = append(records, recovered)
			}
			continue
		}
		records = append(records, rec)
	}
	return records
}

// recoverShift 对解析失败的班次执行恢复流程
// 值守模式反复提示直到输入有效或操作员放弃；非值守模式记诊断后跳过
func (a *Assembler) recoverShift(token string, anchor time.Time, cause error) (model.ShiftRecord, bool) {
	if a.interactor == nil {
		a.skipped++
		a.diag.Reportf("跳过无法解析的时段 %q（%s）: %v", token, anchor.Format("2006-01-02"), cause)
		return model.ShiftRecord{}, false
	}

	for {
		input := a.interactor.PromptCorrection(token, anchor, cause)
		if input == "" {
			a.skipped++
			a.diag.Reportf("操作员放弃更正时段 %q（%s）", token, anchor.Format("2006-01-02"))
			return model.ShiftRecord{}, false
		}
		rec, err := resolveCorrection(input, anchor)
		if err != nil {
			cause = err
			continue
		}
		return rec, true
	}
}
