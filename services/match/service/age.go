package service

import "time"

// AgeAt는 UTC 달력 기준으로 만 나이를 계산합니다. 생일 당일에 한 살 늘어납니다.
func AgeAt(birthday, now time.Time) int {
	b := birthday.UTC()
	n := now.UTC()

	age := n.Year() - b.Year()
	if n.Month() < b.Month() || (n.Month() == b.Month() && n.Day() < b.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
