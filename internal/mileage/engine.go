// Package mileage 기간·주행거리 입력으로부터 일평균 주행거리 파생값을 계산한다.
package mileage

import (
	"fmt"
	"time"

	"logbook/internal/calendar"
	"logbook/internal/model"
)

// NoWorkingDaysError 기간 내 평일이 하루도 없는 레코드.
// 단일 생성은 이 오류로 중단하고, 일괄 생성은 해당 레코드만 건너뛴다.
type NoWorkingDaysError struct {
	Start time.Time
	End   time.Time
}

func (e *NoWorkingDaysError) Error() string {
	return fmt.Sprintf("기간(%s ~ %s)에 평일이 없습니다",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

// Engine 일평균 주행거리 분배 계산기
type Engine struct {
	cal *calendar.Calendar
}

// NewEngine 계산기 생성
func NewEngine(cal *calendar.Calendar) *Engine {
	return &Engine{cal: cal}
}

// Enrich 레코드에 파생값을 채운다.
//
// 총 주행거리 = 최종 - 시작, 평일 수 = CountWorkingDays(시작, 종료),
// 일평균 = 총 주행거리 / 평일 수 (이 단계에서는 반올림하지 않는다).
// 행 출력 시작일은 시작일자를 다음 평일로 보정한 날짜이며, 종료일자는
// 보정하지 않는다.
func (e *Engine) Enrich(rec model.LogbookRecord) (*model.EnrichedRecord, error) {
	workingDays := e.cal.CountWorkingDays(rec.StartDate, rec.EndDate)
	if workingDays == 0 {
		return nil, &NoWorkingDaysError{Start: rec.StartDate, End: rec.EndDate}
	}

	total := rec.FinalOdo - rec.StartOdo
	return &model.EnrichedRecord{
		LogbookRecord:  rec,
		EffectiveStart: e.cal.NextWorkingDay(rec.StartDate),
		TotalDistance:  total,
		WorkingDays:    workingDays,
		AvgDaily:       total / float64(workingDays),
	}, nil
}

// Calendar 내부 달력 노출 (워크시트 작성기가 같은 달력을 쓰도록)
func (e *Engine) Calendar() *calendar.Calendar {
	return e.cal
}
