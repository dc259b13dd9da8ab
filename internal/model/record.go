package model

import (
	"fmt"
	"strings"
	"time"
)

// LogbookRecord 운행기록부 1건의 입력 레코드 (차량/운전자/기간 단위)
type LogbookRecord struct {
	CarModel    string    `json:"carModel"`    // 차종
	PlateNumber string    `json:"plateNumber"` // 자동차등록번호
	Department  string    `json:"department"`  // 부서
	DriverName  string    `json:"driverName"`  // 성명
	StartDate   time.Time `json:"startDate"`   // 사용 시작일자
	EndDate     time.Time `json:"endDate"`     // 사용 종료일자
	StartOdo    float64   `json:"startOdometer"` // 시작 주행거리 (km)
	FinalOdo    float64   `json:"finalOdometer"` // 최종 주행거리 (km)
}

// Validate 레코드 필드 검증
func (r *LogbookRecord) Validate() error {
	if strings.TrimSpace(r.DriverName) == "" {
		return fmt.Errorf("성명이 비어 있습니다")
	}
	if strings.TrimSpace(r.PlateNumber) == "" {
		return fmt.Errorf("자동차등록번호가 비어 있습니다")
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return fmt.Errorf("사용 시작일자/종료일자가 비어 있습니다")
	}
	if r.EndDate.Before(r.StartDate) {
		return fmt.Errorf("사용 종료일자가 시작일자보다 빠릅니다")
	}
	if r.StartOdo < 0 {
		return fmt.Errorf("시작 주행거리는 0 이상이어야 합니다")
	}
	if r.FinalOdo < r.StartOdo {
		return fmt.Errorf("최종 주행거리가 시작 주행거리보다 작습니다")
	}
	return nil
}

// SheetName 출력 시트 이름: <성명>_<자동차등록번호>
func (r *LogbookRecord) SheetName() string {
	return SanitizeSheetName(fmt.Sprintf("%s_%s", strings.TrimSpace(r.DriverName), strings.TrimSpace(r.PlateNumber)))
}

// EnrichedRecord 파생값이 계산된 레코드. 워크시트 작성기가 1회 소비한다.
//
// AvgDaily 는 (시작/종료일자, 시작/최종 주행거리)로부터 매번 새로 계산되며
// 독립적으로 저장하지 않는다.
type EnrichedRecord struct {
	LogbookRecord

	EffectiveStart time.Time // 행 출력이 시작되는 날짜 (시작일자를 다음 평일로 보정)
	TotalDistance  float64   // 최종 - 시작 주행거리
	WorkingDays    int       // [시작, 종료] 구간의 평일 수
	AvgDaily       float64   // 일평균 주행거리 = TotalDistance / WorkingDays
}

// 엑셀 시트 이름 제약: 31자 이내, :\/?*[] 사용 불가
var sheetNameReplacer = strings.NewReplacer(
	":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// SanitizeSheetName 엑셀 시트 이름 규칙에 맞게 정리
func SanitizeSheetName(name string) string {
	name = sheetNameReplacer.Replace(strings.TrimSpace(name))
	if name == "" {
		name = "운행기록부"
	}
	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	return name
}
