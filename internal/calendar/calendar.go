// Package calendar 평일(working day) 판정 달력.
//
// 평일 = 월~금 그리고 공휴일이 아닌 날. 공휴일 집합은 생성 시점에 주입되는
// 불변 값이며, 생성 후에는 순수한 조회 구조로만 쓰인다.
package calendar

import "time"

const dateKeyLayout = "2006-01-02"

// HolidaySet 공휴일 집합. 키는 "2006-01-02", 값은 공휴일 이름.
type HolidaySet map[string]string

// Add 공휴일 추가 (빌드 단계에서만 사용)
func (s HolidaySet) Add(date, name string) {
	s[date] = name
}

// Merge 다른 집합을 병합한 새 집합 반환
func (s HolidaySet) Merge(other HolidaySet) HolidaySet {
	merged := make(HolidaySet, len(s)+len(other))
	for k, v := range s {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Calendar 평일 판정기
type Calendar struct {
	holidays HolidaySet
}

// New 달력 생성. holidays 는 호출 이후 수정하지 않는 것을 전제로 한다.
func New(holidays HolidaySet) *Calendar {
	if holidays == nil {
		holidays = HolidaySet{}
	}
	return &Calendar{holidays: holidays}
}

// IsWorkingDay 평일 여부. 토/일 또는 공휴일이면 false.
func (c *Calendar) IsWorkingDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := c.holidays[t.Format(dateKeyLayout)]
	return !holiday
}

// HolidayName 공휴일 이름 조회
func (c *Calendar) HolidayName(t time.Time) (string, bool) {
	name, ok := c.holidays[t.Format(dateKeyLayout)]
	return name, ok
}

// NextWorkingDay 가장 가까운 평일. t 가 이미 평일이면 그대로 반환.
// 주말 판정만으로도 7일 이내 종료가 보장되므로 상한은 두지 않는다.
func (c *Calendar) NextWorkingDay(t time.Time) time.Time {
	for !c.IsWorkingDay(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// CountWorkingDays [start, end] 구간(양끝 포함)의 평일 수. start > end 면 0.
func (c *Calendar) CountWorkingDays(start, end time.Time) int {
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if c.IsWorkingDay(d) {
			count++
		}
	}
	return count
}

var koreanWeekdays = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// KoreanWeekday 한국어 요일 약칭 (일/월/화/수/목/금/토)
func KoreanWeekday(t time.Time) string {
	return koreanWeekdays[int(t.Weekday())]
}

// FormatDateLabel 운행기록부 사용일자 표기: "2025-01-06(월)"
func FormatDateLabel(t time.Time) string {
	return t.Format(dateKeyLayout) + "(" + KoreanWeekday(t) + ")"
}
