package server

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"logbook/internal/calendar"
	"logbook/internal/config"
	"logbook/internal/server/handlers"
	"logbook/internal/template"
)

//go:embed static
var staticFiles embed.FS

// Server HTTP 서버
type Server struct {
	router   *gin.Engine
	handlers *handlers.Handlers
}

// NewServer 서버 생성. 템플릿 확보 실패는 치명 오류로 바로 반환한다.
func NewServer(cfg *config.AppConfig) (*Server, error) {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 템플릿은 세션 시작 시 1회 확보하고 바이트로 캐시한다
	templates, err := template.NewLoader(cfg.Template.Path, cfg.Template.URL)
	if err != nil {
		return nil, err
	}

	cal := calendar.New(buildHolidaySet(cfg.Calendar))

	s := &Server{
		router:   gin.Default(),
		handlers: handlers.NewHandlers(templates, cal),
	}

	s.setupRoutes()

	return s, nil
}

// buildHolidaySet 설정에서 공휴일 집합 구성
func buildHolidaySet(cfg config.CalendarConfig) calendar.HolidaySet {
	set := calendar.KoreaHolidays(cfg.Years...)
	for _, date := range cfg.ExtraHolidays {
		set.Add(date, "추가 공휴일")
	}
	return set
}

// setupRoutes 라우트 설정
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// API 라우트
	api := s.router.Group("/api")
	{
		s.handlers.RegisterRoutes(api)
	}

	// 입력 폼 페이지
	sub, _ := fs.Sub(staticFiles, "static")
	s.router.GET("/", func(c *gin.Context) {
		data, err := fs.ReadFile(sub, "index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	})
	s.router.NoRoute(func(c *gin.Context) {
		data, _ := fs.ReadFile(sub, "index.html")
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	})
}

// Run 서버 시작
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router 내부 라우터 (테스트용)
func (s *Server) Router() *gin.Engine {
	return s.router
}
