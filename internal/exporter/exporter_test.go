package exporter_test

import (
	"errors"
	"strings"
	"testing"

	"logbook/internal/exporter"
	"logbook/internal/mileage"
	"logbook/internal/model"
	"logbook/internal/template"
)

func newExporter(t *testing.T) *exporter.Exporter {
	t.Helper()
	loader, err := template.NewLoader("", "")
	if err != nil {
		t.Fatalf("NewLoader failed: %v", err)
	}
	return exporter.NewExporter(loader, mileage.NewEngine(testCalendar(t)))
}

func TestGenerateSingle(t *testing.T) {
	exp := newExporter(t)

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

	f, summary, err := exp.GenerateSingle(rec)
	if err != nil {
		t.Fatalf("GenerateSingle failed: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "김철수_12가3456" {
		t.Fatalf("sheets=%v, want [김철수_12가3456]", sheets)
	}
	if summary.WorkingDays != 5 || summary.RowsWritten != 5 {
		t.Fatalf("summary=%+v, want 5 working days / 5 rows", summary)
	}
	if summary.AvgDaily != 100 {
		t.Fatalf("AvgDaily=%v, want 100", summary.AvgDaily)
	}

	if got := cellString(t, f, sheets[0], "B15"); got != "2025-01-06(월)" {
		t.Fatalf("B15=%q, want 2025-01-06(월)", got)
	}
}

func TestGenerateSingleNoWorkingDays(t *testing.T) {
	exp := newExporter(t)

	rec := model.LogbookRecord{
		PlateNumber: "12가3456",
		DriverName:  "김철수",
		StartDate:   date(t, "2025-01-04"), // 토
		EndDate:     date(t, "2025-01-05"), // 일
		FinalOdo:    100,
	}

	_, _, err := exp.GenerateSingle(rec)
	var noDays *mileage.NoWorkingDaysError
	if !errors.As(err, &noDays) {
		t.Fatalf("error=%v, want *NoWorkingDaysError", err)
	}
}

func TestGenerateSingleRejectsInvalidRecord(t *testing.T) {
	exp := newExporter(t)

	rec := model.LogbookRecord{
		PlateNumber: "12가3456",
		DriverName:  "김철수",
		StartDate:   date(t, "2025-01-06"),
		EndDate:     date(t, "2025-01-10"),
		StartOdo:    2000,
		FinalOdo:    1500, // 최종 < 시작
	}
	if _, _, err := exp.GenerateSingle(rec); err == nil {
		t.Fatalf("GenerateSingle accepted final < start odometer")
	}
}

func TestGenerateBatchSkipsWeekendOnlyRecord(t *testing.T) {
	exp := newExporter(t)

	records := []model.LogbookRecord{
		{
			CarModel: "쏘나타", PlateNumber: "12가3456",
			Department: "총무부", DriverName: "김철수",
			StartDate: date(t, "2025-01-06"), EndDate: date(t, "2025-01-10"),
			StartOdo: 10000, FinalOdo: 12500,
		},
		{
			// 토요일 하루짜리 기간 -> 평일 없음, 건너뜀
			CarModel: "그랜저", PlateNumber: "78나9012",
			Department: "영업부", DriverName: "이영희",
			StartDate: date(t, "2025-01-04"), EndDate: date(t, "2025-01-04"),
			StartOdo: 15000, FinalOdo: 18000,
		},
		{
			CarModel: "아반떼", PlateNumber: "34다5678",
			Department: "개발부", DriverName: "박지훈",
			StartDate: date(t, "2025-02-03"), EndDate: date(t, "2025-02-28"),
			StartOdo: 20000, FinalOdo: 22500,
		},
	}

	f, result, err := exp.GenerateBatch(records)
	if err != nil {
		t.Fatalf("GenerateBatch failed: %v", err)
	}
	defer f.Close()

	// 건너뛴 레코드는 시트를 만들지 않고, 입력 순서가 시트 순서가 된다
	sheets := f.GetSheetList()
	want := []string{"김철수_12가3456", "박지훈_34다5678"}
	if len(sheets) != len(want) {
		t.Fatalf("sheets=%v, want %v", sheets, want)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Fatalf("sheets[%d]=%q, want %q", i, sheets[i], want[i])
		}
	}

	if result.Skipped != 1 {
		t.Fatalf("Skipped=%d, want 1", result.Skipped)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "2번째") {
		t.Fatalf("Warnings=%v, want one warning about row 2", result.Warnings)
	}

	// 시작 시트(템플릿)는 제거되어야 한다
	for _, s := range sheets {
		if s == template.StarterSheetName {
			t.Fatalf("starter sheet %q still present", s)
		}
	}
}

func TestGenerateBatchAllSkipped(t *testing.T) {
	exp := newExporter(t)

	records := []model.LogbookRecord{
		{
			PlateNumber: "12가3456", DriverName: "김철수",
			StartDate: date(t, "2025-01-04"), EndDate: date(t, "2025-01-05"),
			FinalOdo: 100,
		},
	}

	_, result, err := exp.GenerateBatch(records)
	if !errors.Is(err, exporter.ErrNoSheetsGenerated) {
		t.Fatalf("error=%v, want ErrNoSheetsGenerated", err)
	}
	if result == nil || result.Skipped != 1 {
		t.Fatalf("result=%+v, want Skipped=1", result)
	}
}

func TestGenerateBatchDeduplicatesSheetNames(t *testing.T) {
	exp := newExporter(t)

	rec := model.LogbookRecord{
		CarModel: "쏘나타", PlateNumber: "12가3456",
		Department: "총무부", DriverName: "김철수",
		StartDate: date(t, "2025-01-06"), EndDate: date(t, "2025-01-10"),
		StartOdo: 1000, FinalOdo: 1500,
	}

	f, result, err := exp.GenerateBatch([]model.LogbookRecord{rec, rec})
	if err != nil {
		t.Fatalf("GenerateBatch failed: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("sheets=%v, want 2 sheets", sheets)
	}
	if sheets[0] == sheets[1] {
		t.Fatalf("duplicate sheet names: %v", sheets)
	}
	if len(result.Sheets) != 2 {
		t.Fatalf("summaries=%d, want 2", len(result.Sheets))
	}
}
