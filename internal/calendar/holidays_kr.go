package calendar

import "fmt"

// 대한민국 공휴일.
//
// 양력 고정 공휴일은 연도와 무관하게 계산하고, 음력 명절(설날/추석/부처님
// 오신날)과 대체공휴일·임시공휴일·선거일은 연도별 표로 관리한다. 표에 없는
// 연도는 고정 공휴일만 적용되며, 필요하면 config 의 extra_holidays 로
// 보충한다.

type fixedHoliday struct {
	month int
	day   int
	name  string
}

var krFixedHolidays = []fixedHoliday{
	{1, 1, "신정"},
	{3, 1, "삼일절"},
	{5, 5, "어린이날"},
	{6, 6, "현충일"},
	{8, 15, "광복절"},
	{10, 3, "개천절"},
	{10, 9, "한글날"},
	{12, 25, "기독탄신일"},
}

// 연도별 음력 명절·대체공휴일·임시공휴일·선거일
var krMovableHolidays = map[int]map[string]string{
	2024: {
		"2024-02-09": "설날 연휴",
		"2024-02-10": "설날",
		"2024-02-11": "설날 연휴",
		"2024-02-12": "대체공휴일(설날)",
		"2024-04-10": "제22대 국회의원선거",
		"2024-05-06": "대체공휴일(어린이날)",
		"2024-05-15": "부처님오신날",
		"2024-09-16": "추석 연휴",
		"2024-09-17": "추석",
		"2024-09-18": "추석 연휴",
		"2024-10-01": "국군의 날(임시공휴일)",
	},
	2025: {
		"2025-01-27": "임시공휴일",
		"2025-01-28": "설날 연휴",
		"2025-01-29": "설날",
		"2025-01-30": "설날 연휴",
		"2025-03-03": "대체공휴일(삼일절)",
		"2025-05-05": "부처님오신날",
		"2025-05-06": "대체공휴일(어린이날)",
		"2025-06-03": "제21대 대통령선거",
		"2025-10-05": "추석 연휴",
		"2025-10-06": "추석",
		"2025-10-07": "추석 연휴",
		"2025-10-08": "대체공휴일(추석)",
	},
	2026: {
		"2026-02-16": "설날 연휴",
		"2026-02-17": "설날",
		"2026-02-18": "설날 연휴",
		"2026-03-02": "대체공휴일(삼일절)",
		"2026-05-24": "부처님오신날",
		"2026-05-25": "대체공휴일(부처님오신날)",
		"2026-06-03": "전국동시지방선거",
		"2026-08-17": "대체공휴일(광복절)",
		"2026-09-24": "추석 연휴",
		"2026-09-25": "추석",
		"2026-09-26": "추석 연휴",
		"2026-10-05": "대체공휴일(개천절)",
	},
}

// KoreaHolidays 주어진 연도들의 대한민국 공휴일 집합
func KoreaHolidays(years ...int) HolidaySet {
	set := HolidaySet{}
	for _, year := range years {
		for _, h := range krFixedHolidays {
			set.Add(fmt.Sprintf("%04d-%02d-%02d", year, h.month, h.day), h.name)
		}
		for date, name := range krMovableHolidays[year] {
			set.Add(date, name)
		}
	}
	return set
}

// HasMovableTable 해당 연도의 음력 명절 표 보유 여부
func HasMovableTable(year int) bool {
	_, ok := krMovableHolidays[year]
	return ok
}
