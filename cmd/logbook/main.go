package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"logbook/internal/config"
	"logbook/internal/server"
	"logbook/internal/util"
)

var (
	port         = flag.Int("port", 0, "서비스 포트 (config.toml 우선, port 가 명시되지 않았을 때만 적용)")
	devMode      = flag.Bool("dev", false, "개발 모드")
	templatePath = flag.String("template", "", "운행기록부 템플릿 파일 경로 (설정 파일보다 우선)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  업무용 승용차 운행기록부 생성기")
	fmt.Println("==========================================")

	// 설정 로드
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("설정 로드 실패, 기본 설정을 사용합니다: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 명령행 인자가 설정을 덮어쓴다
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *templatePath != "" {
		cfg.Template.Path = *templatePath
	}

	// 데이터 디렉터리 보장
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Printf("데이터 디렉터리 생성 실패: %v", err)
	} else {
		fmt.Printf("데이터 디렉터리: %s\n", dataDir)
	}

	// 서버 생성 (템플릿 확보 포함, 실패 시 즉시 종료)
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("서버 초기화 실패: %v", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	// 서버 시작
	go func() {
		fmt.Printf("서비스 시작, 포트 %d 에서 대기 중 ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("서비스 시작 실패: %v", err)
		}
	}()

	// 브라우저 열기
	if !cfg.Server.DevMode {
		fmt.Printf("브라우저를 여는 중: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("브라우저를 자동으로 열 수 없습니다. 직접 접속해주세요: %s\n", url)
		}
	} else {
		fmt.Printf("개발 모드: %s 로 접속해주세요\n", url)
	}

	fmt.Println("\nCtrl+C 를 누르면 서비스가 종료됩니다...")

	// 종료 신호 대기
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n서비스를 종료합니다...")
}
