package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"logbook/internal/batch"
	"logbook/internal/calendar"
	"logbook/internal/exporter"
	"logbook/internal/mileage"
	"logbook/internal/model"
	"logbook/internal/template"
)

const (
	singleDownloadName = "업무용_승용차_운행기록부.xlsx"
	batchDownloadName  = "업무용_승용차_운행기록부_일괄생성.xlsx"

	downloadTTL = 10 * time.Minute
	maxUpload   = 10 * 1024 * 1024
)

// Handlers API 처리기
type Handlers struct {
	templates *template.Loader
	cal       *calendar.Calendar
	exporter  *exporter.Exporter
	downloads *downloadStore
}

// NewHandlers 처리기 생성
func NewHandlers(templates *template.Loader, cal *calendar.Calendar) *Handlers {
	return &Handlers{
		templates: templates,
		cal:       cal,
		exporter:  exporter.NewExporter(templates, mileage.NewEngine(cal)),
		downloads: newDownloadStore(),
	}
}

// RegisterRoutes API 라우트 등록
func (h *Handlers) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	// 운행기록부 생성
	router.POST("/logbook", h.GenerateSingle)
	router.POST("/logbook/batch", h.GenerateBatch)
	router.GET("/logbook/batch/example", h.DownloadBatchExample)
	router.GET("/logbook/download/:token", h.DownloadLogbook)

	// 기간 사전 점검
	router.GET("/calendar/working-days", h.CountWorkingDays)
}

// Response 공통 응답
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

// GetStatus 서비스 상태
// GET /api/status
func (h *Handlers) GetStatus(c *gin.Context) {
	success(c, gin.H{
		"service":        "logbook",
		"templateSource": h.templates.Source(),
	})
}

// generateRequest 단일 생성 입력 폼
type generateRequest struct {
	CarModel    string  `json:"carModel"`
	PlateNumber string  `json:"plateNumber"`
	Department  string  `json:"department"`
	DriverName  string  `json:"driverName"`
	StartDate   string  `json:"startDate"` // "2006-01-02"
	EndDate     string  `json:"endDate"`
	StartOdo    float64 `json:"startOdometer"`
	FinalOdo    float64 `json:"finalOdometer"`
}

func (r *generateRequest) toRecord() (model.LogbookRecord, error) {
	start, err := time.Parse("2006-01-02", strings.TrimSpace(r.StartDate))
	if err != nil {
		return model.LogbookRecord{}, fmt.Errorf("사용 시작일자 형식이 잘못되었습니다: %q", r.StartDate)
	}
	end, err := time.Parse("2006-01-02", strings.TrimSpace(r.EndDate))
	if err != nil {
		return model.LogbookRecord{}, fmt.Errorf("사용 종료일자 형식이 잘못되었습니다: %q", r.EndDate)
	}
	return model.LogbookRecord{
		CarModel:    strings.TrimSpace(r.CarModel),
		PlateNumber: strings.TrimSpace(r.PlateNumber),
		Department:  strings.TrimSpace(r.Department),
		DriverName:  strings.TrimSpace(r.DriverName),
		StartDate:   start,
		EndDate:     end,
		StartOdo:    r.StartOdo,
		FinalOdo:    r.FinalOdo,
	}, nil
}

// GenerateSingle 운행기록부 단일 생성
// POST /api/logbook
func (h *Handlers) GenerateSingle(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, 1001, "파라미터 오류")
		return
	}

	rec, err := req.toRecord()
	if err != nil {
		errorResponse(c, 1001, err.Error())
		return
	}

	f, summary, err := h.exporter.GenerateSingle(rec)
	if err != nil {
		var noDays *mileage.NoWorkingDaysError
		if errors.As(err, &noDays) {
			errorResponse(c, 3001, "선택한 기간에 평일(Working Day)이 없습니다. 날짜를 다시 선택해주세요")
			return
		}
		var loadErr *template.LoadError
		if errors.As(err, &loadErr) {
			errorResponse(c, 5001, loadErr.Error())
			return
		}
		errorResponse(c, 1002, err.Error())
		return
	}
	defer f.Close()

	token, err := h.stashWorkbook(f, singleDownloadName)
	if err != nil {
		errorResponse(c, 5002, "생성 파일 저장 실패: "+err.Error())
		return
	}

	var warnings []string
	if summary.DroppedWorkingDays > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"기록 가능 행(%d행)을 초과한 평일 %d일이 기록되지 않았습니다",
			model.LogbookLayout.Capacity(), summary.DroppedWorkingDays))
	}

	success(c, gin.H{
		"downloadUrl": "/api/logbook/download/" + token,
		"summary":     summary,
		"warnings":    warnings,
	})
}

// GenerateBatch 운행기록부 일괄 생성 (업로드 파일 기반)
// POST /api/logbook/batch
func (h *Handlers) GenerateBatch(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		errorResponse(c, 1001, "업로드 파일이 필요합니다")
		return
	}
	defer file.Close()

	if header.Size > maxUpload {
		errorResponse(c, 1003, "파일이 너무 큽니다. 최대 10MB 까지 지원합니다")
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" {
		errorResponse(c, 1002, ".xlsx 형식만 지원합니다")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		errorResponse(c, 1002, "파일 읽기 실패")
		return
	}

	parser := batch.NewParser()
	if err := parser.LoadFile(bytes.NewReader(content)); err != nil {
		errorResponse(c, 1002, "파일 해석 실패: "+err.Error())
		return
	}
	defer parser.Close()

	records, parseWarnings, err := parser.ParseRecords()
	if err != nil {
		errorResponse(c, 1002, "파일 해석 실패: "+err.Error())
		return
	}
	if len(records) == 0 {
		errorResponse(c, 1002, "처리할 레코드가 없습니다")
		return
	}

	f, result, err := h.exporter.GenerateBatch(records)
	if err != nil {
		if errors.Is(err, exporter.ErrNoSheetsGenerated) {
			msg := err.Error()
			if result != nil && len(result.Warnings) > 0 {
				msg += ": " + strings.Join(result.Warnings, "; ")
			}
			errorResponse(c, 3002, msg)
			return
		}
		errorResponse(c, 5002, "일괄 생성 실패: "+err.Error())
		return
	}
	defer f.Close()

	token, err := h.stashWorkbook(f, batchDownloadName)
	if err != nil {
		errorResponse(c, 5002, "생성 파일 저장 실패: "+err.Error())
		return
	}

	warnings := append(parseWarnings, result.Warnings...)
	for _, w := range warnings {
		log.Printf("일괄 생성 경고 (%s): %s", parser.FileID(), w)
	}

	success(c, gin.H{
		"fileId":      parser.FileID(),
		"downloadUrl": "/api/logbook/download/" + token,
		"sheets":      result.Sheets,
		"skipped":     result.Skipped,
		"warnings":    warnings,
	})
}

// stashWorkbook 워크북을 임시 파일로 저장하고 1회용 토큰을 발급한다
func (h *Handlers) stashWorkbook(f *excelize.File, downloadName string) (string, error) {
	tempPath := filepath.Join(os.TempDir(),
		fmt.Sprintf("logbook_%d_%d.xlsx", time.Now().UnixNano(), os.Getpid()))
	if err := f.SaveAs(tempPath); err != nil {
		_ = os.Remove(tempPath)
		return "", err
	}
	return h.downloads.put(tempPath, downloadName, downloadTTL), nil
}

// DownloadLogbook 생성된 워크북 다운로드 (1회용)
// GET /api/logbook/download/:token
func (h *Handlers) DownloadLogbook(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		errorResponse(c, 1001, "token 이 없습니다")
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		errorResponse(c, 4001, "다운로드 링크가 만료되었습니다")
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		errorResponse(c, 4002, "생성 파일이 존재하지 않습니다")
		return
	}

	c.Header("Content-Disposition", buildContentDisposition(item.fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}

// DownloadBatchExample 일괄 생성용 업로드 양식 예시 다운로드
// GET /api/logbook/batch/example
func (h *Handlers) DownloadBatchExample(c *gin.Context) {
	f, err := batch.BuildExampleWorkbook()
	if err != nil {
		errorResponse(c, 5002, "예시 파일 생성 실패: "+err.Error())
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", buildContentDisposition("운행기록부_일괄생성_예시.xlsx"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		log.Printf("예시 파일 전송 실패: %v", err)
	}
}

// CountWorkingDays 기간의 평일 수 사전 점검
// GET /api/calendar/working-days?start=2025-01-01&end=2025-12-31
func (h *Handlers) CountWorkingDays(c *gin.Context) {
	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		errorResponse(c, 1001, "start 형식이 잘못되었습니다 (2006-01-02)")
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		errorResponse(c, 1001, "end 형식이 잘못되었습니다 (2006-01-02)")
		return
	}

	count := h.cal.CountWorkingDays(start, end)
	success(c, gin.H{
		"workingDays":    count,
		"effectiveStart": h.cal.NextWorkingDay(start).Format("2006-01-02"),
	})
}

// buildContentDisposition 한글 파일 이름을 위한 RFC 5987 표기 포함
func buildContentDisposition(fileName string) string {
	fallback := "logbook.xlsx"
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s",
		fallback, url.PathEscape(fileName))
}
