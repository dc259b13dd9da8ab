package batch_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"logbook/internal/batch"
)

func buildUploadWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName failed: %v", err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

var uploadHeader = []interface{}{
	"차종", "자동차등록번호", "사용 시작일자", "사용 종료일자",
	"부서", "성명", "시작 주행거리", "최종 주행거리",
}

func TestParseRecords(t *testing.T) {
	reader := buildUploadWorkbook(t, [][]interface{}{
		uploadHeader,
		{"쏘나타", "12가3456", "2025-01-01", "2025-06-30", "총무부", "김철수", 10000, 12500},
		{"그랜저", "78나9012", "2025-03-01", "2025-08-31", "영업부", "이영희", "15,000", "18,000"},
	})

	p := batch.NewParser()
	if err := p.LoadFile(reader); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	defer p.Close()

	records, warnings, err := p.ParseRecords()
	if err != nil {
		t.Fatalf("ParseRecords failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings=%v, want none", warnings)
	}
	if len(records) != 2 {
		t.Fatalf("records=%d, want 2", len(records))
	}

	first := records[0]
	if first.CarModel != "쏘나타" || first.PlateNumber != "12가3456" {
		t.Fatalf("first record=%+v", first)
	}
	if got := first.StartDate.Format("2006-01-02"); got != "2025-01-01" {
		t.Fatalf("StartDate=%s, want 2025-01-01", got)
	}
	if first.StartOdo != 10000 || first.FinalOdo != 12500 {
		t.Fatalf("odometers=%v/%v, want 10000/12500", first.StartOdo, first.FinalOdo)
	}

	// 천단위 구분자 허용
	if records[1].StartOdo != 15000 {
		t.Fatalf("comma-separated odometer=%v, want 15000", records[1].StartOdo)
	}

	if p.FileID() == "" {
		t.Fatalf("FileID is empty")
	}
}

func TestParseRecordsSkipsBlankAndBrokenRows(t *testing.T) {
	reader := buildUploadWorkbook(t, [][]interface{}{
		uploadHeader,
		{"쏘나타", "12가3456", "2025-01-01", "2025-06-30", "총무부", "김철수", 10000, 12500},
		{"", "", "", "", "", "", "", ""},
		{"그랜저", "78나9012", "날짜아님", "2025-08-31", "영업부", "이영희", 15000, 18000},
	})

	p := batch.NewParser()
	if err := p.LoadFile(reader); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	defer p.Close()

	records, warnings, err := p.ParseRecords()
	if err != nil {
		t.Fatalf("ParseRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records=%d, want 1 (blank and broken rows skipped)", len(records))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "4행") {
		t.Fatalf("warnings=%v, want one warning for sheet row 4", warnings)
	}
}

func TestParseRecordsMissingColumn(t *testing.T) {
	reader := buildUploadWorkbook(t, [][]interface{}{
		{"차종", "자동차등록번호", "사용 시작일자", "사용 종료일자", "부서", "성명", "시작 주행거리"},
	})

	p := batch.NewParser()
	if err := p.LoadFile(reader); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	defer p.Close()

	if _, _, err := p.ParseRecords(); err == nil || !strings.Contains(err.Error(), "최종주행거리") {
		t.Fatalf("error=%v, want missing column 최종주행거리", err)
	}
}

func TestExampleWorkbookRoundTrip(t *testing.T) {
	f, err := batch.BuildExampleWorkbook()
	if err != nil {
		t.Fatalf("BuildExampleWorkbook failed: %v", err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}

	// 예시 파일은 그대로 다시 업로드할 수 있어야 한다
	p := batch.NewParser()
	if err := p.LoadFile(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	defer p.Close()

	records, warnings, err := p.ParseRecords()
	if err != nil {
		t.Fatalf("ParseRecords failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings=%v, want none", warnings)
	}
	if len(records) != 3 {
		t.Fatalf("records=%d, want 3", len(records))
	}
	if records[0].DriverName != "김철수" || records[2].DriverName != "박지훈" {
		t.Fatalf("record order broken: %+v", records)
	}
}
