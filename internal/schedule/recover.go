package schedule

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/DJStompZone/paycorbot/internal/model"
	"github.com/DJStompZone/paycorbot/internal/parser"
)

// Interactor 人工纠错交互能力
// 值守运行时注入终端实现；非值守运行传 nil，解析失败的班次直接跳过。
// 交互能力显式注入而不是在失败现场探测终端，两条分支都能确定性测试
type Interactor interface {
	// PromptCorrection 报告一次解析失败并请求人工更正
	// 返回 "开始-结束" 形式的更正文本；返回空串表示放弃该班次
	PromptCorrection(token string, anchor time.Time, cause error) string
}

// TerminalInteractor 终端交互实现，阻塞等待操作员输入
type TerminalInteractor struct {
	out     io.Writer
	scanner *bufio.Scanner
}

// NewTerminalInteractor 基于标准输入输出创建终端交互
func NewTerminalInteractor() *TerminalInteractor {
	return NewTerminalInteractorWith(os.Stdin, os.Stdout)
}

// NewTerminalInteractorWith 基于指定读写端创建终端交互（测试用）
func NewTerminalInteractorWith(in io.Reader, out io.Writer) *TerminalInteractor {
	return &TerminalInteractor{out: out, scanner: bufio.NewScanner(in)}
}

func (t *TerminalInteractor) PromptCorrection(token string, anchor time.Time, cause error) string {
	fmt.Fprintf(t.out, "时段 %q（%s）解析失败: %v\n", token, anchor.Format("2006-01-02"), cause)
	fmt.Fprintf(t.out, "请输入更正时段（格式 开始-结束，如 9:00am-5:00pm，直接回车跳过）: ")
	if !t.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(t.scanner.Text())
}

// resolveCorrection 解析 "开始-结束" 形式的人工更正
// 时刻解析与跨夜规则同 ResolveShift
func resolveCorrection(input string, anchor time.Time) (model.ShiftRecord, error) {
	halves := strings.Split(input, "-")
	if len(halves) != 2 {
		return model.ShiftRecord{}, &ParseError{
			Token:  input,
			Anchor: anchor,
			Cause:  fmt.Errorf("更正应为 开始-结束 两段，实际 %d 段", len(halves)),
		}
	}
	start, err := parser.ParseClock(halves[0])
	if err != nil {
		return model.ShiftRecord{}, &ParseError{Token: input, Anchor: anchor, Cause: err}
	}
	end, err := parser.ParseClock(halves[1])
	if err != nil {
		return model.ShiftRecord{}, &ParseError{Token: input, Anchor: anchor, Cause: err}
	}
	return combineShift(start, end, anchor), nil
}
