package schedule

import "log"

// Diagnostics 诊断信息通道
// 引擎内所有可恢复错误走注入的通道上报，测试可以确定性地断言输出，
// 不依赖任何全局调试开关
type Diagnostics interface {
	Reportf(format string, args ...any)
}

// LogDiagnostics 默认诊断通道，走标准日志
type LogDiagnostics struct{}

func (LogDiagnostics) Reportf(format string, args ...any) {
	log.Printf(format, args...)
}
