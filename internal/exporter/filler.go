package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"logbook/internal/calendar"
	"logbook/internal/model"
)

// Filler 운행기록부 시트 작성기.
//
// 고정 좌표 계약(model.SheetLayout)에 따라 헤더와 평일별 행을 채운다.
// 같은 템플릿 사본에 같은 레코드를 채우면 결과 행 데이터는 항상 동일하다.
type Filler struct {
	cal    *calendar.Calendar
	layout model.SheetLayout
}

// NewFiller 작성기 생성 (2025년 양식 좌표 사용)
func NewFiller(cal *calendar.Calendar) *Filler {
	return &Filler{cal: cal, layout: model.LogbookLayout}
}

// FillResult 시트 작성 결과
type FillResult struct {
	RowsWritten        int // 기록된 평일 행 수
	DroppedWorkingDays int // 밴드 용량 초과로 기록하지 못한 평일 수
}

type fillStyles struct {
	number  int // #,##0
	left    int // 왼쪽 정렬
	percent int // #,###%
}

func newFillStyles(f *excelize.File) (*fillStyles, error) {
	number, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return nil, fmt.Errorf("숫자 서식 생성 실패: %w", err)
	}
	left, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left"},
	})
	if err != nil {
		return nil, fmt.Errorf("정렬 서식 생성 실패: %w", err)
	}
	percentFmt := "#,###%"
	percent, err := f.NewStyle(&excelize.Style{CustomNumFmt: &percentFmt})
	if err != nil {
		return nil, fmt.Errorf("백분율 서식 생성 실패: %w", err)
	}
	return &fillStyles{number: number, left: left, percent: percent}, nil
}

// truncOdo 계기판 표시값 정수 변환.
// 음수가 아닌 거리값에 대한 0 방향 절사로, 원 양식의 표시 정책이다.
func truncOdo(v float64) int64 {
	return int64(v)
}

// Fill 레코드 하나를 시트에 채운다.
//
// 행 루프 순서는 다음 불변식을 지킨다.
//   - 주말/공휴일은 행을 소비하지 않고 날짜만 전진한다.
//   - 주행 후 거리는 최종 주행거리를 넘지 않는다 (초과분은 절단).
//   - 일일 주행거리는 절사된 정수값끼리의 차이로 계산한다.
func (w *Filler) Fill(f *excelize.File, sheet string, rec *model.EnrichedRecord) (*FillResult, error) {
	styles, err := newFillStyles(f)
	if err != nil {
		return nil, err
	}

	// 열 너비는 매번 고정값으로 재적용
	if err := f.SetColWidth(sheet, "B", "B", 18); err != nil {
		return nil, fmt.Errorf("열 너비 설정 실패: %w", err)
	}
	if err := f.SetColWidth(sheet, "C", "C", 8); err != nil {
		return nil, fmt.Errorf("열 너비 설정 실패: %w", err)
	}
	if err := f.SetColWidth(sheet, "D", "D", 8); err != nil {
		return nil, fmt.Errorf("열 너비 설정 실패: %w", err)
	}

	if err := w.fillHeader(f, sheet, rec, styles); err != nil {
		return nil, err
	}

	result, err := w.fillRows(f, sheet, rec, styles)
	if err != nil {
		return nil, err
	}

	if err := w.fillSummary(f, sheet, styles); err != nil {
		return nil, err
	}
	return result, nil
}

func (w *Filler) fillHeader(f *excelize.File, sheet string, rec *model.EnrichedRecord, styles *fillStyles) error {
	layout := w.layout

	if err := f.SetCellValue(sheet, layout.CarModelCell, rec.CarModel); err != nil {
		return fmt.Errorf("차종 기록 실패: %w", err)
	}
	if err := f.SetCellValue(sheet, layout.PlateCell, rec.PlateNumber); err != nil {
		return fmt.Errorf("자동차등록번호 기록 실패: %w", err)
	}
	if err := f.SetCellValue(sheet, layout.DeptCell, rec.Department); err != nil {
		return fmt.Errorf("부서 기록 실패: %w", err)
	}
	if err := f.SetCellValue(sheet, layout.DriverCell, rec.DriverName); err != nil {
		return fmt.Errorf("성명 기록 실패: %w", err)
	}

	headerNums := []struct {
		cell  string
		value int64
	}{
		{layout.StartOdoCell, truncOdo(rec.StartOdo)},
		{layout.AvgDailyCell, truncOdo(rec.AvgDaily)},
		{layout.CombinedCell, truncOdo(rec.StartOdo + rec.AvgDaily)},
	}
	for _, h := range headerNums {
		if err := f.SetCellValue(sheet, h.cell, h.value); err != nil {
			return fmt.Errorf("헤더 수치(%s) 기록 실패: %w", h.cell, err)
		}
		if err := f.SetCellStyle(sheet, h.cell, h.cell, styles.number); err != nil {
			return fmt.Errorf("헤더 서식(%s) 적용 실패: %w", h.cell, err)
		}
	}
	return nil
}

func (w *Filler) fillRows(f *excelize.File, sheet string, rec *model.EnrichedRecord, styles *fillStyles) (*FillResult, error) {
	layout := w.layout

	setLeftText := func(col, row int, value string) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
		return f.SetCellStyle(sheet, cell, cell, styles.left)
	}
	setNumber := func(col, row int, value int64) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
		return f.SetCellStyle(sheet, cell, cell, styles.number)
	}

	result := &FillResult{}
	prevAfter := rec.StartOdo
	currentDate := rec.EffectiveStart
	row := layout.RowStart

	for row <= layout.RowEnd && !currentDate.After(rec.EndDate) {
		if !w.cal.IsWorkingDay(currentDate) {
			// 주말/공휴일은 행도 평균 거리도 소비하지 않는다
			currentDate = currentDate.AddDate(0, 0, 1)
			continue
		}

		if err := setLeftText(layout.DateCol, row, calendar.FormatDateLabel(currentDate)); err != nil {
			return nil, fmt.Errorf("%d행 사용일자 기록 실패: %w", row, err)
		}
		if err := setLeftText(layout.DeptCol, row, rec.Department); err != nil {
			return nil, fmt.Errorf("%d행 부서 기록 실패: %w", row, err)
		}
		if err := setLeftText(layout.DriverCol, row, rec.DriverName); err != nil {
			return nil, fmt.Errorf("%d행 성명 기록 실패: %w", row, err)
		}

		before := truncOdo(prevAfter)
		if err := setNumber(layout.BeforeCol, row, before); err != nil {
			return nil, fmt.Errorf("%d행 주행 전 거리 기록 실패: %w", row, err)
		}

		afterOdo := prevAfter + rec.AvgDaily
		if afterOdo > rec.FinalOdo {
			afterOdo = rec.FinalOdo
		}
		after := truncOdo(afterOdo)
		if err := setNumber(layout.AfterCol, row, after); err != nil {
			return nil, fmt.Errorf("%d행 주행 후 거리 기록 실패: %w", row, err)
		}

		// 절사된 정수값끼리 차를 구하므로 실수 평균으로는 복원되지 않는다
		daily := after - before
		if err := setNumber(layout.DailyCol, row, daily); err != nil {
			return nil, fmt.Errorf("%d행 일일 주행거리 기록 실패: %w", row, err)
		}
		if err := setNumber(layout.BusinessCol, row, daily); err != nil {
			return nil, fmt.Errorf("%d행 업무 사용거리 기록 실패: %w", row, err)
		}

		prevAfter = afterOdo
		result.RowsWritten++
		row++
		currentDate = currentDate.AddDate(0, 0, 1)
	}

	// 밴드 용량 초과로 남은 평일 수를 집계해 호출자에게 알린다
	if !currentDate.After(rec.EndDate) {
		result.DroppedWorkingDays = w.cal.CountWorkingDays(currentDate, rec.EndDate)
	}
	return result, nil
}

func (w *Filler) fillSummary(f *excelize.File, sheet string, styles *fillStyles) error {
	layout := w.layout

	dailyCol, err := excelize.ColumnNumberToName(layout.DailyCol)
	if err != nil {
		return err
	}
	businessCol, err := excelize.ColumnNumberToName(layout.BusinessCol)
	if err != nil {
		return err
	}

	// 합계는 수식으로 남겨 사용자가 행을 손으로 고쳐도 뷰어에서 재계산된다
	dailySum := fmt.Sprintf("SUM(%s%d:%s%d)", dailyCol, layout.RowStart, dailyCol, layout.RowEnd)
	if err := f.SetCellFormula(sheet, layout.DailySumCell, dailySum); err != nil {
		return fmt.Errorf("일일 주행거리 합계 수식 실패: %w", err)
	}
	if err := f.SetCellStyle(sheet, layout.DailySumCell, layout.DailySumCell, styles.number); err != nil {
		return err
	}

	businessSum := fmt.Sprintf("SUM(%s%d:%s%d)", businessCol, layout.RowStart, businessCol, layout.RowEnd)
	if err := f.SetCellFormula(sheet, layout.BusinessSumCell, businessSum); err != nil {
		return fmt.Errorf("업무 사용거리 합계 수식 실패: %w", err)
	}
	if err := f.SetCellStyle(sheet, layout.BusinessSumCell, layout.BusinessSumCell, styles.number); err != nil {
		return err
	}

	ratio := fmt.Sprintf("%s/%s", layout.BusinessSumCell, layout.DailySumCell)
	if err := f.SetCellFormula(sheet, layout.RatioCell, ratio); err != nil {
		return fmt.Errorf("업무사용비율 수식 실패: %w", err)
	}
	if err := f.SetCellStyle(sheet, layout.RatioCell, layout.RatioCell, styles.percent); err != nil {
		return err
	}
	return nil
}
