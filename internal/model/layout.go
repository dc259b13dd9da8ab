package model

// SheetLayout 운행기록부 템플릿의 고정 좌표 계약.
//
// 템플릿(업무용 승용차 운행기록부 2025년 양식)과의 계약이므로 좌표를 바꾸면
// 기존 양식 파일과 호환되지 않는다.
type SheetLayout struct {
	// 상단 헤더 셀
	CarModelCell string // 차종
	PlateCell    string // 자동차등록번호
	DeptCell     string // 부서 (헤더)
	DriverCell   string // 성명 (헤더)
	StartOdoCell string // 시작 주행거리
	AvgDailyCell string // 일평균 주행거리
	CombinedCell string // 시작 + 일평균 (첫 행의 주행 후 예상값)

	// 평일 1일당 1행을 쓰는 데이터 밴드
	RowStart int
	RowEnd   int

	// 데이터 밴드 열 (1-base)
	DateCol     int // 사용일자(요일)
	DeptCol     int // 부서
	DriverCol   int // 성명
	BeforeCol   int // 주행 전 계기판 거리
	AfterCol    int // 주행 후 계기판 거리
	DailyCol    int // 일일 주행거리
	BusinessCol int // 출퇴근용 업무 사용거리

	// 데이터 밴드 아래 합계 수식 셀
	DailySumCell    string // =SUM(일일 주행거리)
	BusinessSumCell string // =SUM(업무 사용거리)
	RatioCell       string // 업무 사용 비율(%)
}

// Capacity 데이터 밴드가 담을 수 있는 최대 행 수
func (l SheetLayout) Capacity() int {
	return l.RowEnd - l.RowStart + 1
}

// LogbookLayout 2025년 양식의 고정 좌표
var LogbookLayout = SheetLayout{
	CarModelCell: "B9",
	PlateCell:    "E9",
	DeptCell:     "C15",
	DriverCell:   "E15",
	StartOdoCell: "G15",
	AvgDailyCell: "K15",
	CombinedCell: "I15",

	RowStart: 15,
	RowEnd:   264,

	DateCol:     2,  // B
	DeptCol:     3,  // C
	DriverCol:   5,  // E
	BeforeCol:   7,  // G
	AfterCol:    9,  // I
	DailyCol:    11, // K
	BusinessCol: 12, // L

	DailySumCell:    "G266",
	BusinessSumCell: "L266",
	RatioCell:       "Q266",
}
