package template

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"logbook/internal/model"
)

// StarterSheetName 템플릿 시트 이름. 생성 시 레코드별 이름으로 바뀐다.
const StarterSheetName = "운행기록부"

// BuildBuiltin 내장 운행기록부 템플릿을 코드로 생성한다.
//
// 외부 템플릿(2025년 국세청 양식 파일)이 없을 때의 대체 양식으로, 셀 좌표는
// model.LogbookLayout 계약과 동일하다. 서식은 외부 양식보다 단순하다.
func BuildBuiltin() (*excelize.File, error) {
	f := excelize.NewFile()

	if _, err := f.NewSheet(StarterSheetName); err != nil {
		f.Close()
		return nil, err
	}
	defaultSheet := f.GetSheetName(0)
	if defaultSheet != StarterSheetName {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			f.Close()
			return nil, err
		}
	}
	sheet := StarterSheetName

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	headStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	// 제목
	if err := f.MergeCell(sheet, "B2", "L2"); err != nil {
		f.Close()
		return nil, err
	}
	f.SetCellValue(sheet, "B2", "업무용 승용차 운행기록부")
	f.SetCellStyle(sheet, "B2", "L2", titleStyle)

	// 차량 정보 블록
	f.SetCellValue(sheet, "A9", "차종")
	f.SetCellValue(sheet, "D9", "자동차등록번호")
	f.SetCellStyle(sheet, "A9", "A9", headStyle)
	f.SetCellStyle(sheet, "D9", "D9", headStyle)

	// 데이터 밴드 열 머리글 (데이터는 15행부터)
	layout := model.LogbookLayout
	headers := map[int]string{
		layout.DateCol:     "사용일자(요일)",
		layout.DeptCol:     "부서",
		layout.DriverCol:   "성명",
		layout.BeforeCol:   "주행 전\n계기판 거리(km)",
		layout.AfterCol:    "주행 후\n계기판 거리(km)",
		layout.DailyCol:    "일일\n주행거리(km)",
		layout.BusinessCol: "출퇴근용\n업무 사용거리(km)",
	}
	headerRow := layout.RowStart - 2
	for col, label := range headers {
		cell, err := excelize.CoordinatesToCellName(col, headerRow)
		if err != nil {
			f.Close()
			return nil, err
		}
		f.SetCellValue(sheet, cell, label)
		f.SetCellStyle(sheet, cell, cell, headStyle)
	}
	f.SetCellValue(sheet, fmt.Sprintf("F%d", headerRow), "시작 주행거리(km)")
	f.SetCellValue(sheet, fmt.Sprintf("H%d", headerRow), "시작+일평균(km)")
	f.SetCellValue(sheet, fmt.Sprintf("J%d", headerRow), "일평균 주행거리(km)")

	// 합계 행
	sumRow := layout.RowEnd + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", sumRow), "합계")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", sumRow), "총 주행거리(km)")
	f.SetCellValue(sheet, fmt.Sprintf("K%d", sumRow), "업무 사용거리(km)")
	f.SetCellValue(sheet, fmt.Sprintf("P%d", sumRow), "업무사용비율")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", sumRow), fmt.Sprintf("A%d", sumRow), headStyle)

	f.SetColWidth(sheet, "B", "B", 18)
	f.SetColWidth(sheet, "C", "D", 8)
	f.SetColWidth(sheet, "E", "L", 14)

	f.SetActiveSheet(0)
	return f, nil
}

// BuiltinBytes 내장 템플릿을 직렬화한 바이트
func BuiltinBytes() ([]byte, error) {
	f, err := BuildBuiltin()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
