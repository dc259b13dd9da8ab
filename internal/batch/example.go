package batch

import (
	"github.com/xuri/excelize/v2"
)

// exampleSheet 예시 파일의 시트 이름
const exampleSheet = "일괄생성 예시"

// BuildExampleWorkbook 일괄 생성용 업로드 양식 예시 파일을 만든다.
// 머리글과 예시 3행은 사용자가 받아서 내용만 바꿔 올리는 용도다.
func BuildExampleWorkbook() (*excelize.File, error) {
	f := excelize.NewFile()

	if _, err := f.NewSheet(exampleSheet); err != nil {
		f.Close()
		return nil, err
	}
	if defaultSheet := f.GetSheetName(0); defaultSheet != exampleSheet {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			f.Close()
			return nil, err
		}
	}

	header := []interface{}{
		"차종", "자동차등록번호", "사용 시작일자", "사용 종료일자",
		"부서", "성명", "시작 주행거리", "최종 주행거리",
	}
	if err := f.SetSheetRow(exampleSheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}

	samples := [][]interface{}{
		{"쏘나타", "12가3456", "2025-01-01", "2025-06-30", "총무부", "김철수", 10000, 12500},
		{"그랜저", "78나9012", "2025-03-01", "2025-08-31", "영업부", "이영희", 15000, 18000},
		{"아반떼", "34다5678", "2025-05-01", "2025-10-31", "개발부", "박지훈", 20000, 22500},
	}
	for i, sample := range samples {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := sample
		if err := f.SetSheetRow(exampleSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetColWidth(exampleSheet, "A", "H", 14)
	f.SetActiveSheet(0)
	return f, nil
}
