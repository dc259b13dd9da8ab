// Package exporter 운행기록부 워크북 생성기.
//
// 템플릿 원본 바이트에서 매번 새로 파싱한 워크북에만 쓰기 때문에 레코드 간
// 상태가 섞이지 않는다. 시트 작성 자체는 Filler 가 담당한다.
package exporter

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"logbook/internal/mileage"
	"logbook/internal/model"
	"logbook/internal/template"
)

// Exporter 단일/일괄 운행기록부 생성기
type Exporter struct {
	templates *template.Loader
	engine    *mileage.Engine
	filler    *Filler
}

// NewExporter 생성기 생성
func NewExporter(templates *template.Loader, engine *mileage.Engine) *Exporter {
	return &Exporter{
		templates: templates,
		engine:    engine,
		filler:    NewFiller(engine.Calendar()),
	}
}

// SheetSummary 생성된 시트 하나의 요약
type SheetSummary struct {
	SheetName          string  `json:"sheetName"`
	WorkingDays        int     `json:"workingDays"`
	TotalDistance      float64 `json:"totalDistance"`
	AvgDaily           float64 `json:"avgDailyDistance"`
	RowsWritten        int     `json:"rowsWritten"`
	DroppedWorkingDays int     `json:"droppedWorkingDays,omitempty"`
}

// GenerateSingle 레코드 하나로 시트 하나짜리 워크북을 만든다.
// 기간에 평일이 없으면 *mileage.NoWorkingDaysError 를 반환한다.
func (e *Exporter) GenerateSingle(rec model.LogbookRecord) (*excelize.File, *SheetSummary, error) {
	if err := rec.Validate(); err != nil {
		return nil, nil, err
	}

	enriched, err := e.engine.Enrich(rec)
	if err != nil {
		return nil, nil, err
	}

	f, err := e.templates.Open()
	if err != nil {
		return nil, nil, err
	}

	starter := f.GetSheetName(f.GetActiveSheetIndex())
	sheetName := rec.SheetName()
	if err := f.SetSheetName(starter, sheetName); err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("시트 이름 변경 실패: %w", err)
	}

	result, err := e.filler.Fill(f, sheetName, enriched)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}

	f.SetActiveSheet(0)
	return f, summarize(sheetName, enriched, result), nil
}

// BatchResult 일괄 생성 결과
type BatchResult struct {
	Sheets   []SheetSummary `json:"sheets"`
	Skipped  int            `json:"skipped"`
	Warnings []string       `json:"warnings,omitempty"`
}

// ErrNoSheetsGenerated 일괄 생성에서 단 한 건도 시트를 만들지 못함
var ErrNoSheetsGenerated = errors.New("생성된 운행기록부 시트가 없습니다")

// GenerateBatch 레코드 목록으로 레코드당 시트 하나씩 담긴 워크북을 만든다.
//
// 평일이 없는 레코드는 시트를 만들지 않고 경고만 남긴 뒤 다음 레코드로
// 진행한다. 모든 레코드 처리 후 템플릿의 시작 시트는 제거되며, 시트 순서는
// 입력 행 순서를 따른다.
func (e *Exporter) GenerateBatch(records []model.LogbookRecord) (*excelize.File, *BatchResult, error) {
	if len(records) == 0 {
		return nil, nil, errors.New("처리할 레코드가 없습니다")
	}

	f, err := e.templates.Open()
	if err != nil {
		return nil, nil, err
	}

	starter := f.GetSheetName(f.GetActiveSheetIndex())
	starterIdx, err := f.GetSheetIndex(starter)
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("시작 시트 조회 실패: %w", err)
	}

	result := &BatchResult{}
	usedNames := map[string]bool{starter: true}

	for i, rec := range records {
		rowNo := i + 1

		if err := rec.Validate(); err != nil {
			result.Skipped++
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%d번째 행: %v — 해당 시트는 생성되지 않습니다", rowNo, err))
			continue
		}

		enriched, err := e.engine.Enrich(rec)
		if err != nil {
			var noDays *mileage.NoWorkingDaysError
			if errors.As(err, &noDays) {
				result.Skipped++
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%d번째 행에 해당하는 기간에 평일이 없습니다. 해당 시트는 생성되지 않습니다", rowNo))
				continue
			}
			_ = f.Close()
			return nil, nil, err
		}

		sheetName := uniqueSheetName(rec.SheetName(), usedNames)
		newIdx, err := f.NewSheet(sheetName)
		if err != nil {
			_ = f.Close()
			return nil, nil, fmt.Errorf("%d번째 행 시트 생성 실패: %w", rowNo, err)
		}
		if err := f.CopySheet(starterIdx, newIdx); err != nil {
			_ = f.Close()
			return nil, nil, fmt.Errorf("%d번째 행 시트 복사 실패: %w", rowNo, err)
		}

		fillResult, err := e.filler.Fill(f, sheetName, enriched)
		if err != nil {
			_ = f.Close()
			return nil, nil, fmt.Errorf("%d번째 행 시트 작성 실패: %w", rowNo, err)
		}

		summary := summarize(sheetName, enriched, fillResult)
		if fillResult.DroppedWorkingDays > 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%d번째 행: 기록 가능 행(%d행)을 초과한 평일 %d일이 기록되지 않았습니다",
					rowNo, model.LogbookLayout.Capacity(), fillResult.DroppedWorkingDays))
		}
		result.Sheets = append(result.Sheets, *summary)
	}

	if len(result.Sheets) == 0 {
		_ = f.Close()
		return nil, result, ErrNoSheetsGenerated
	}

	if err := f.DeleteSheet(starter); err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("시작 시트 제거 실패: %w", err)
	}
	f.SetActiveSheet(0)
	return f, result, nil
}

func summarize(sheetName string, rec *model.EnrichedRecord, fill *FillResult) *SheetSummary {
	return &SheetSummary{
		SheetName:          sheetName,
		WorkingDays:        rec.WorkingDays,
		TotalDistance:      rec.TotalDistance,
		AvgDaily:           rec.AvgDaily,
		RowsWritten:        fill.RowsWritten,
		DroppedWorkingDays: fill.DroppedWorkingDays,
	}
}

// uniqueSheetName 이미 쓰인 이름과 겹치지 않는 시트 이름을 만든다
func uniqueSheetName(base string, used map[string]bool) string {
	name := base
	for n := 2; used[name]; n++ {
		suffix := fmt.Sprintf("(%d)", n)
		runes := []rune(base)
		if len(runes)+len(suffix) > 31 {
			runes = runes[:31-len(suffix)]
		}
		name = string(runes) + suffix
	}
	used[name] = true
	return name
}
