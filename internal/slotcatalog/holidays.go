package slotcatalog

// Статический календарь государственных праздников (ISO даты)
// Поддерживается вручную, раз в год
var holidays = map[string]struct{}{
	"2026-01-01": {}, // 신정
	"2026-02-17": {}, // 설날
	"2026-02-18": {},
	"2026-02-19": {},
	"2026-03-01": {}, // 삼일절
	"2026-05-05": {}, // 어린이날
	"2026-05-24": {}, // 부처님오신날
	"2026-06-06": {}, // 현충일
	"2026-08-15": {}, // 광복절
	"2026-09-24": {}, // 추석
	"2026-09-25": {},
	"2026-09-26": {},
	"2026-10-03": {}, // 개천절
	"2026-10-09": {}, // 한글날
	"2026-12-25": {}, // 성탄절
}
