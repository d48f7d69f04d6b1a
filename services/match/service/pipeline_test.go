package service

import (
	"testing"
	"time"

	"spark/pkg/dto"
	"spark/pkg/models"
	"spark/pkg/preference"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pipelineNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func cardIDs(cards []dto.FeedCard) []int {
	return lo.Map(cards, func(c dto.FeedCard, _ int) int { return c.ID })
}

func TestPipelineExclusions(t *testing.T) {
	viewer := models.User{ID: 1, Gender: "Man", Preferences: preference.Preferences{
		DislikedProfiles: []preference.DislikeEntry{
			{UserID: 2, ExpiresAt: pipelineNow.Add(time.Hour)},
			{UserID: 3, ExpiresAt: pipelineNow.Add(-time.Hour)},
		},
	}}
	candidates := []models.User{{ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}, {ID: 1}}
	liked := map[int]struct{}{4: {}}

	cards := Pipeline{DefaultMaxDistanceKm: 50}.Run(viewer, candidates, liked, pipelineNow)
	assert.Equal(t, []int{3, 5}, cardIDs(cards))
}

func TestPipelineInterest(t *testing.T) {
	viewer := models.User{ID: 1, Gender: "Man", Preferences: preference.Preferences{InterestedIn: []string{"Women"}}}
	candidates := []models.User{{ID: 2, Gender: "Woman"}, {ID: 3, Gender: "Man"}}

	cards := Pipeline{DefaultMaxDistanceKm: 50}.Run(viewer, candidates, nil, pipelineNow)
	assert.Equal(t, []int{2}, cardIDs(cards))
}

func TestPipelineRadius(t *testing.T) {
	viewer := models.User{ID: 1, CurrentLocation: "0,0"}
	candidates := []models.User{
		{ID: 2, CurrentLocation: "0,1"},
		{ID: 3, CurrentLocation: "somewhere"},
		{ID: 4, CurrentLocation: "0,0.1"},
	}

	cards := Pipeline{DefaultMaxDistanceKm: 50}.Run(viewer, candidates, nil, pipelineNow)
	assert.Equal(t, []int{3, 4}, cardIDs(cards))

	far := 200.0
	viewer.Preferences.Settings.MaxDistance = &far
	cards = Pipeline{DefaultMaxDistanceKm: 50}.Run(viewer, candidates, nil, pipelineNow)
	assert.Equal(t, []int{2, 3, 4}, cardIDs(cards))
}

func TestPipelineAgeRangeOptIn(t *testing.T) {
	min, max := 25, 30
	viewer := models.User{ID: 1, Preferences: preference.Preferences{Settings: preference.Settings{MinAge: &min, MaxAge: &max}}}
	young := pipelineNow.AddDate(-20, 0, 0)
	fit := pipelineNow.AddDate(-27, 0, 0)
	candidates := []models.User{{ID: 2, Birthday: &young}, {ID: 3, Birthday: &fit}, {ID: 4}}

	cards := Pipeline{DefaultMaxDistanceKm: 50}.Run(viewer, candidates, nil, pipelineNow)
	assert.Equal(t, []int{2, 3, 4}, cardIDs(cards))

	cards = Pipeline{DefaultMaxDistanceKm: 50, EnforceAgeRange: true}.Run(viewer, candidates, nil, pipelineNow)
	assert.Equal(t, []int{3, 4}, cardIDs(cards))
}

func TestProjectCard(t *testing.T) {
	birthday := pipelineNow.AddDate(-31, 0, 0)
	viewer := models.User{ID: 1, CurrentLocation: "0,0"}
	candidate := models.User{
		ID:              2,
		Name:            "Sora",
		Birthday:        &birthday,
		Photos:          []string{"p1.jpg", "p2.jpg", "p3.jpg"},
		Tags:            []string{"jazz"},
		Bio:             "hi",
		Work:            "Designer",
		CurrentLocation: "0,0.2",
	}

	card := ProjectCard(viewer, candidate, pipelineNow)
	require.NotNil(t, card.Age)
	assert.Equal(t, 31, *card.Age)
	assert.Equal(t, "p1.jpg", card.PrimaryPhoto)
	assert.Equal(t, []string{"p2.jpg", "p3.jpg"}, card.SecondaryPhotos)
	assert.Equal(t, []string{"jazz"}, card.Tags)
	require.NotNil(t, card.DistanceKm)
	assert.InDelta(t, 22.2, *card.DistanceKm, 0.5)
	assert.Equal(t, "22 km away", card.DistanceLabel)

	bare := ProjectCard(viewer, models.User{ID: 3, CurrentLocation: "?"}, pipelineNow)
	assert.Nil(t, bare.Age)
	assert.Empty(t, bare.PrimaryPhoto)
	assert.NotNil(t, bare.SecondaryPhotos)
	assert.Nil(t, bare.DistanceKm)
	assert.Empty(t, bare.DistanceLabel)
}
