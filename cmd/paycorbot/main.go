package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/DJStompZone/paycorbot/internal/config"
	"github.com/DJStompZone/paycorbot/internal/parser"
	"github.com/DJStompZone/paycorbot/internal/report"
	"github.com/DJStompZone/paycorbot/internal/schedule"
	"github.com/DJStompZone/paycorbot/internal/server"
	"github.com/DJStompZone/paycorbot/internal/util"
)

var (
	port       = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode    = flag.Bool("dev", false, "开发模式")
	dataDir    = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
	inFile     = flag.String("in", "", "输入排班 JSON；指定后执行一次性解析，不启动服务")
	outFile    = flag.String("out", "", "输出 Excel 路径 (配合 -in，留空按日期生成)")
	unattended = flag.Bool("unattended", false, "非值守模式：解析失败直接跳过，不提示人工更正")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Paycorbot - 排班报表工具")
	fmt.Println("==========================================")

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	if *inFile != "" {
		if err := runOnce(cfg, *inFile, *outFile); err != nil {
			log.Fatalf("解析失败: %v", err)
		}
		return
	}

	runServer(cfg)
}

// runOnce 命令行一次性解析：读载荷、重建班次、写报表
func runOnce(cfg *config.AppConfig, inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("读取载荷失败: %w", err)
	}

	payload, err := parser.DecodePayload(data)
	if err != nil {
		return err
	}

	// 操作员守在交互终端时才走人工纠错
	var interactor schedule.Interactor
	if !*unattended && isatty.IsTerminal(os.Stdin.Fd()) {
		interactor = schedule.NewTerminalInteractor()
	}

	assembler := schedule.NewAssembler(nil, interactor)
	records, err := assembler.Assemble(payload)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("载荷中没有解析出任何班次")
		return nil
	}
	if skipped := assembler.Skipped(); skipped > 0 {
		log.Printf("有 %d 个时段解析失败被跳过，请检查诊断输出", skipped)
	}

	if outPath == "" {
		outPath = report.DefaultReportName(records[0].ShiftDate)
	}
	exporter := &report.Exporter{FillDaysOff: cfg.Schedule.FillDaysOff}
	if err := exporter.ExportToFile(records, outPath); err != nil {
		return err
	}

	fmt.Printf("共 %d 条班次记录，报表已写入 %s\n", len(records), outPath)
	return nil
}

// runServer 本地服务模式：启动 gin 服务并打开浏览器
func runServer(cfg *config.AppConfig) {
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("创建服务失败: %v", err)
	}
	defer srv.Close()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("正在打开浏览器: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Printf("开发模式: 请访问 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
}
