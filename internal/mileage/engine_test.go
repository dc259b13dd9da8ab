package mileage_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"logbook/internal/calendar"
	"logbook/internal/mileage"
	"logbook/internal/model"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return d
}

func newEngine(t *testing.T) *mileage.Engine {
	t.Helper()
	return mileage.NewEngine(calendar.New(calendar.KoreaHolidays(2024, 2025)))
}

func TestEnrichFullWeek(t *testing.T) {
	// 2025-01-06(월) ~ 2025-01-10(금), 공휴일 없음
	rec := model.LogbookRecord{
		CarModel:    "쏘나타",
		PlateNumber: "12가3456",
		Department:  "총무부",
		DriverName:  "김철수",
		StartDate:   date(t, "2025-01-06"),
		EndDate:     date(t, "2025-01-10"),
		StartOdo:    1000,
		FinalOdo:    1500,
	}

	enriched, err := newEngine(t).Enrich(rec)
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}
	if enriched.WorkingDays != 5 {
		t.Fatalf("WorkingDays=%d, want 5", enriched.WorkingDays)
	}
	if enriched.TotalDistance != 500 {
		t.Fatalf("TotalDistance=%v, want 500", enriched.TotalDistance)
	}
	if enriched.AvgDaily != 100 {
		t.Fatalf("AvgDaily=%v, want 100", enriched.AvgDaily)
	}
	if !enriched.EffectiveStart.Equal(rec.StartDate) {
		t.Fatalf("EffectiveStart=%s, want start date unchanged", enriched.EffectiveStart.Format("2006-01-02"))
	}
}

func TestEnrichSlidesWeekendStart(t *testing.T) {
	// 토요일 시작 -> 첫 기록일은 다음 월요일
	rec := model.LogbookRecord{
		StartDate: date(t, "2025-01-04"),
		EndDate:   date(t, "2025-01-10"),
		StartOdo:  0,
		FinalOdo:  500,
	}

	enriched, err := newEngine(t).Enrich(rec)
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}
	if !enriched.EffectiveStart.Equal(date(t, "2025-01-06")) {
		t.Fatalf("EffectiveStart=%s, want 2025-01-06", enriched.EffectiveStart.Format("2006-01-02"))
	}
	// 주말은 평일 수에 들어가지 않는다
	if enriched.WorkingDays != 5 {
		t.Fatalf("WorkingDays=%d, want 5", enriched.WorkingDays)
	}
}

func TestEnrichHolidayExcludedFromAverage(t *testing.T) {
	// 2024-12-30(월) ~ 2025-01-03(금), 2025-01-01 신정 제외 -> 평일 4일
	rec := model.LogbookRecord{
		StartDate: date(t, "2024-12-30"),
		EndDate:   date(t, "2025-01-03"),
		StartOdo:  1000,
		FinalOdo:  1400,
	}

	enriched, err := newEngine(t).Enrich(rec)
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}
	if enriched.WorkingDays != 4 {
		t.Fatalf("WorkingDays=%d, want 4", enriched.WorkingDays)
	}
	if math.Abs(enriched.AvgDaily-100) > 1e-9 {
		t.Fatalf("AvgDaily=%v, want 100", enriched.AvgDaily)
	}
}

func TestEnrichNoWorkingDays(t *testing.T) {
	// 주말 하루짜리 기간
	rec := model.LogbookRecord{
		StartDate: date(t, "2025-01-04"),
		EndDate:   date(t, "2025-01-04"),
	}

	_, err := newEngine(t).Enrich(rec)
	if err == nil {
		t.Fatalf("Enrich succeeded, want NoWorkingDaysError")
	}
	var noDays *mileage.NoWorkingDaysError
	if !errors.As(err, &noDays) {
		t.Fatalf("error type=%T, want *NoWorkingDaysError", err)
	}
	if !noDays.Start.Equal(rec.StartDate) || !noDays.End.Equal(rec.EndDate) {
		t.Fatalf("error carries wrong period: %v", noDays)
	}
}

func TestEnrichFractionalAverage(t *testing.T) {
	// 3 평일에 100km -> 평균은 반올림 없이 실수로 유지
	rec := model.LogbookRecord{
		StartDate: date(t, "2025-01-06"),
		EndDate:   date(t, "2025-01-08"),
		StartOdo:  0,
		FinalOdo:  100,
	}

	enriched, err := newEngine(t).Enrich(rec)
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}
	if math.Abs(enriched.AvgDaily-100.0/3.0) > 1e-12 {
		t.Fatalf("AvgDaily=%v, want 100/3 unrounded", enriched.AvgDaily)
	}
}
