package service

import (
	"strings"

	"spark/pkg/models"
	"spark/pkg/preference"
)

// Party는 호환성 판단에 필요한 한쪽 사용자 정보입니다
type Party struct {
	Gender string
	Prefs  preference.Preferences
}

func PartyOf(u models.User) Party {
	return Party{Gender: u.Gender, Prefs: u.Preferences}
}

// Compatible은 피드와 호환성 조회가 함께 쓰는 단일 판정입니다.
// 서로의 성별을 받아들여야 하고, 양쪽 모두 적은 경우에만 관계 의도와 성적 지향이 같아야 합니다.
func Compatible(a, b Party) bool {
	if !a.Prefs.Accepts(b.Gender) || !b.Prefs.Accepts(a.Gender) {
		return false
	}
	if !sameWhenBothSet(a.Prefs.RelationshipIntent, b.Prefs.RelationshipIntent) {
		return false
	}
	return sameWhenBothSet(a.Prefs.SexualOrientation, b.Prefs.SexualOrientation)
}

func sameWhenBothSet(x, y string) bool {
	x = strings.ToLower(strings.TrimSpace(x))
	y = strings.ToLower(strings.TrimSpace(y))
	if x == "" || y == "" {
		return true
	}
	return x == y
}
