// Package batch 일괄 생성용 업로드 파일(xlsx) 해석기.
//
// 업로드 표의 한 행이 운행기록부 레코드 하나가 되며, 행 순서가 출력 시트
// 순서를 결정한다.
package batch

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"logbook/internal/model"
)

// 업로드 표의 필수 열 (공백 제거 후 비교)
const (
	colCarModel = "차종"
	colPlate    = "자동차등록번호"
	colStart    = "사용시작일자"
	colEnd      = "사용종료일자"
	colDept     = "부서"
	colDriver   = "성명"
	colStartOdo = "시작주행거리"
	colFinalOdo = "최종주행거리"
)

var requiredColumns = []string{
	colCarModel, colPlate, colStart, colEnd,
	colDept, colDriver, colStartOdo, colFinalOdo,
}

// Parser 업로드 파일 해석기
type Parser struct {
	file   *excelize.File
	fileID string
}

// NewParser 해석기 생성
func NewParser() *Parser {
	return &Parser{fileID: uuid.New().String()}
}

// FileID 업로드 파일 식별자
func (p *Parser) FileID() string {
	return p.fileID
}

// LoadFile 업로드된 xlsx 를 연다
func (p *Parser) LoadFile(reader io.Reader) error {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return fmt.Errorf("엑셀 파일 열기 실패: %w", err)
	}
	p.file = file
	return nil
}

// Close 내부 워크북 자원 해제
func (p *Parser) Close() error {
	if p.file == nil {
		return nil
	}
	return p.file.Close()
}

// ParseRecords 첫 번째 시트를 레코드 목록으로 해석한다.
//
// 빈 행은 건너뛴다. 해석할 수 없는 행은 행 번호가 붙은 경고를 남기고
// 건너뛰며, 나머지 행의 처리는 계속된다. 필수 열이 빠진 파일은 오류다.
func (p *Parser) ParseRecords() ([]model.LogbookRecord, []string, error) {
	if p.file == nil {
		return nil, nil, errors.New("업로드 파일이 로드되지 않았습니다")
	}

	sheets := p.file.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("시트가 없는 파일입니다")
	}
	sheet := sheets[0]

	rows, err := p.file.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("시트 읽기 실패: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, errors.New("빈 시트입니다")
	}

	colIndex := make(map[string]int)
	for i, col := range rows[0] {
		colIndex[normalizeHeader(col)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := colIndex[name]; !ok {
			return nil, nil, fmt.Errorf("필수 열 '%s' 이(가) 없습니다", name)
		}
	}

	var records []model.LogbookRecord
	var warnings []string
	for i, row := range rows[1:] {
		rowNo := i + 2 // 시트 상의 행 번호 (머리글 다음부터)
		if isBlankRow(row) {
			continue
		}
		rec, err := p.parseRow(row, colIndex)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%d행: %v — 건너뜁니다", rowNo, err))
			continue
		}
		records = append(records, rec)
	}
	return records, warnings, nil
}

func (p *Parser) parseRow(row []string, colIndex map[string]int) (model.LogbookRecord, error) {
	getValue := func(name string) string {
		idx := colIndex[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	startDate, err := p.parseDate(getValue(colStart))
	if err != nil {
		return model.LogbookRecord{}, fmt.Errorf("사용 시작일자: %w", err)
	}
	endDate, err := p.parseDate(getValue(colEnd))
	if err != nil {
		return model.LogbookRecord{}, fmt.Errorf("사용 종료일자: %w", err)
	}
	startOdo, err := parseDistance(getValue(colStartOdo))
	if err != nil {
		return model.LogbookRecord{}, fmt.Errorf("시작 주행거리: %w", err)
	}
	finalOdo, err := parseDistance(getValue(colFinalOdo))
	if err != nil {
		return model.LogbookRecord{}, fmt.Errorf("최종 주행거리: %w", err)
	}

	return model.LogbookRecord{
		CarModel:    getValue(colCarModel),
		PlateNumber: getValue(colPlate),
		Department:  getValue(colDept),
		DriverName:  getValue(colDriver),
		StartDate:   startDate,
		EndDate:     endDate,
		StartOdo:    startOdo,
		FinalOdo:    finalOdo,
	}, nil
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"2006-1-2",
	"2006/1/2",
	"01-02-06", // 엑셀 날짜 셀의 표시 문자열(mm-dd-yy)
	"1/2/06",
}

// parseDate 날짜 문자열 또는 엑셀 날짜 일련번호를 해석한다
func (p *Parser) parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("값이 비어 있습니다")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			// 시각 성분은 버리고 날짜만 취한다
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("날짜 형식을 해석할 수 없습니다: %q", value)
}

// parseDistance 천단위 구분자/단위 표기가 섞인 거리값을 해석한다
func parseDistance(value string) (float64, error) {
	if value == "" {
		return 0, errors.New("값이 비어 있습니다")
	}
	cleaned := strings.NewReplacer(",", "", " ", "", "km", "", "KM", "").Replace(value)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("숫자를 해석할 수 없습니다: %q", value)
	}
	return v, nil
}

func normalizeHeader(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "")
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
