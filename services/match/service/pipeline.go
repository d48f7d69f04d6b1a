package service

import (
	"time"

	"spark/pkg/dto"
	"spark/pkg/geo"
	"spark/pkg/models"

	"github.com/samber/lo"
)

// Pipeline은 후보 페이지에 순서대로 필터를 적용하고 카드로 변환합니다.
// 점수 계산은 없고 입력 순서를 유지합니다.
type Pipeline struct {
	DefaultMaxDistanceKm float64
	EnforceAgeRange      bool
}

// candidateCheck는 하나라도 false 면 후보를 제외합니다
type candidateCheck func(viewer, candidate *models.User) bool

func (p Pipeline) checks(now time.Time, disliked, liked map[int]struct{}) []candidateCheck {
	checks := []candidateCheck{
		// 1. 활성 싫어요 제외
		func(_, c *models.User) bool {
			_, ok := disliked[c.ID]
			return !ok
		},
		// 2. 이미 좋아요한 후보 제외 (쿼리에서도 제외하지만 한 번 더 확인)
		func(_, c *models.User) bool {
			_, ok := liked[c.ID]
			return !ok
		},
		// 3. 상호 관심 호환성
		func(v, c *models.User) bool {
			return Compatible(PartyOf(*v), PartyOf(*c))
		},
		// 4. 거리 (위치를 모르면 통과)
		func(v, c *models.User) bool {
			return geo.WithinRadius(v.CurrentLocation, c.CurrentLocation, v.Preferences.MaxDistanceKm(p.DefaultMaxDistanceKm))
		},
	}

	if p.EnforceAgeRange {
		checks = append(checks, func(v, c *models.User) bool {
			return withinAgeRange(v, c, now)
		})
	}
	return checks
}

func withinAgeRange(viewer, candidate *models.User, now time.Time) bool {
	s := viewer.Preferences.Settings
	if s.MinAge == nil && s.MaxAge == nil {
		return true
	}
	// 생일이 없으면 판단할 수 없으므로 통과
	if candidate.Birthday == nil {
		return true
	}
	age := AgeAt(*candidate.Birthday, now)
	if s.MinAge != nil && age < *s.MinAge {
		return false
	}
	if s.MaxAge != nil && age > *s.MaxAge {
		return false
	}
	return true
}

// Run은 viewer 와 후보 목록에 필터를 적용해 카드 목록을 돌려줍니다
func (p Pipeline) Run(viewer models.User, candidates []models.User, liked map[int]struct{}, now time.Time) []dto.FeedCard {
	disliked := viewer.Preferences.ActiveDislikes(now)
	checks := p.checks(now, disliked, liked)

	cards := make([]dto.FeedCard, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if c.ID == viewer.ID {
			continue
		}
		if !lo.EveryBy(checks, func(check candidateCheck) bool { return check(&viewer, c) }) {
			continue
		}
		cards = append(cards, ProjectCard(viewer, *c, now))
	}
	return cards
}

// ProjectCard는 후보를 피드 카드로 변환합니다
func ProjectCard(viewer, candidate models.User, now time.Time) dto.FeedCard {
	card := dto.FeedCard{
		ID:              candidate.ID,
		Name:            candidate.Name,
		SecondaryPhotos: []string{},
		Tags:            []string{},
		Bio:             candidate.Bio,
		Work:            candidate.Work,
	}

	if candidate.Birthday != nil {
		age := AgeAt(*candidate.Birthday, now)
		card.Age = &age
	}

	if len(candidate.Photos) > 0 {
		card.PrimaryPhoto = candidate.Photos[0]
		card.SecondaryPhotos = append(card.SecondaryPhotos, candidate.Photos[1:]...)
	}
	if len(candidate.Tags) > 0 {
		card.Tags = append(card.Tags, candidate.Tags...)
	}

	if km, ok := geo.Distance(viewer.CurrentLocation, candidate.CurrentLocation); ok {
		card.DistanceKm = &km
		card.DistanceLabel = geo.DistanceLabel(km)
	}
	return card
}
