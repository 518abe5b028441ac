package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DJStompZone/paycorbot/internal/creds"
	"github.com/DJStompZone/paycorbot/internal/model"
	"github.com/DJStompZone/paycorbot/internal/parser"
	"github.com/DJStompZone/paycorbot/internal/report"
	"github.com/DJStompZone/paycorbot/internal/schedule"
)

// Response 通用响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// collectDiagnostics 把引擎诊断收进响应，供调用方检查数据丢失
type collectDiagnostics struct {
	messages []string
}

func (d *collectDiagnostics) Reportf(format string, args ...any) {
	d.messages = append(d.messages, fmt.Sprintf(format, args...))
}

// getCredentials 查询凭据配置状态（不回传密码）
func (s *Server) getCredentials(c *gin.Context) {
	cred, err := creds.Load(s.cfg.Credentials.EnvPath)
	if err != nil {
		errorResponse(c, 5001, err.Error())
		return
	}
	success(c, gin.H{
		"username":   cred.Username,
		"configured": cred.Configured(),
	})
}

// saveCredentials 保存 Paycor 凭据到 .env
func (s *Server) saveCredentials(c *gin.Context) {
	var cred creds.Credentials
	if err := c.ShouldBind(&cred); err != nil {
		errorResponse(c, 4001, "请求格式错误: "+err.Error())
		return
	}
	if err := creds.Save(s.cfg.Credentials.EnvPath, cred); err != nil {
		errorResponse(c, 5002, err.Error())
		return
	}
	success(c, nil)
}

// uploadPayload 上传捕获到的排班 JSON
func (s *Server) uploadPayload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		errorResponse(c, 4002, "缺少上传文件: "+err.Error())
		return
	}

	name := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), filepath.Base(file.Filename))
	dst := filepath.Join(s.dataDir, "payloads", name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		errorResponse(c, 5003, "保存载荷失败: "+err.Error())
		return
	}
	success(c, gin.H{"payload": name})
}

// runRequest 运行参数
type runRequest struct {
	// Payload 指定载荷文件名，留空取最近上传的一份
	Payload string `json:"payload"`
}

// runPipeline 非值守解析一份载荷并渲染报表
func (s *Server) runPipeline(c *gin.Context) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	var req runRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, 4003, "请求格式错误: "+err.Error())
			return
		}
	}

	payloadName := req.Payload
	if payloadName == "" {
		latest, err := s.latestPayload()
		if err != nil {
			errorResponse(c, 4004, err.Error())
			return
		}
		payloadName = latest
	}
	payloadPath := filepath.Join(s.dataDir, "payloads", filepath.Base(payloadName))

	data, err := os.ReadFile(payloadPath)
	if err != nil {
		errorResponse(c, 4005, "读取载荷失败: "+err.Error())
		return
	}

	payload, err := parser.DecodePayload(data)
	if err != nil {
		// 结构性错误对整次运行致命
		errorResponse(c, 4006, err.Error())
		return
	}

	diag := &collectDiagnostics{}
	assembler := schedule.NewAssembler(diag, nil)
	records, err := assembler.Assemble(payload)
	if err != nil {
		errorResponse(c, 4006, err.Error())
		return
	}

	runID := uuid.NewString()
	reportName := s.cfg.Schedule.ReportName
	if reportName == "" {
		reportName = report.DefaultReportName(time.Now())
	}
	reportPath := filepath.Join(s.dataDir, "exports", runID+"_"+reportName)

	exporter := &report.Exporter{FillDaysOff: s.cfg.Schedule.FillDaysOff}
	if err := exporter.ExportToFile(records, reportPath); err != nil {
		errorResponse(c, 5004, err.Error())
		return
	}

	run := model.RunRecord{
		ID:           runID,
		CreatedAt:    time.Now(),
		Source:       payloadName,
		Mode:         "unattended",
		ShiftCount:   len(records),
		SkippedCount: assembler.Skipped(),
		ReportPath:   reportPath,
		Status:       "ok",
	}
	if err := s.store.RecordRun(run, records); err != nil {
		errorResponse(c, 5005, "归档运行失败: "+err.Error())
		return
	}

	success(c, gin.H{
		"run":         run,
		"diagnostics": diag.messages,
	})
}

// latestPayload 取最近上传的载荷文件名
func (s *Server) latestPayload() (string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dataDir, "payloads"))
	if err != nil {
		return "", fmt.Errorf("读取载荷目录失败: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return "", fmt.Errorf("还没有上传任何载荷")
	}
	// 文件名带上传时间戳前缀，字典序即时间序
	sort.Strings(names)
	return names[len(names)-1], nil
}

// listRuns 最近的运行记录
func (s *Server) listRuns(c *gin.Context) {
	runs, err := s.store.ListRuns(20)
	if err != nil {
		errorResponse(c, 5006, err.Error())
		return
	}
	success(c, runs)
}

// runShifts 一次运行归档的班次
func (s *Server) runShifts(c *gin.Context) {
	shifts, err := s.store.RunShifts(c.Param("id"))
	if err != nil {
		errorResponse(c, 5007, err.Error())
		return
	}
	success(c, shifts)
}

// downloadReport 下载一次运行的报表
func (s *Server) downloadReport(c *gin.Context) {
	run, err := s.store.GetRun(c.Param("id"))
	if err != nil {
		errorResponse(c, 4007, err.Error())
		return
	}
	if _, err := os.Stat(run.ReportPath); err != nil {
		errorResponse(c, 4008, "报表文件不存在")
		return
	}
	c.FileAttachment(run.ReportPath, filepath.Base(run.ReportPath))
}
