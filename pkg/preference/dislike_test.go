package preference

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestActiveDislikes(t *testing.T) {
	p := Preferences{DislikedProfiles: []DislikeEntry{
		{UserID: 1, ExpiresAt: now.Add(time.Hour)},
		{UserID: 2, ExpiresAt: now.Add(-time.Hour)},
		{UserID: 3},
		{UserID: 4, ExpiresAt: now},
	}}

	active := p.ActiveDislikes(now)
	assert.Len(t, active, 1)
	assert.Contains(t, active, 1)
}

func TestPruneDislikesIdempotent(t *testing.T) {
	p := Preferences{DislikedProfiles: []DislikeEntry{
		{UserID: 1, ExpiresAt: now.Add(time.Hour)},
		{UserID: 2, ExpiresAt: now.Add(-time.Hour)},
		{UserID: 3},
	}}

	assert.Equal(t, 2, p.PruneDislikes(now))
	assert.Equal(t, []DislikeEntry{{UserID: 1, ExpiresAt: now.Add(time.Hour)}}, p.DislikedProfiles)
	assert.Equal(t, 0, p.PruneDislikes(now))

	assert.Equal(t, 1, p.PruneDislikes(now.Add(2*time.Hour)))
	assert.Nil(t, p.DislikedProfiles)
}

func TestAddDislikeRefreshes(t *testing.T) {
	var p Preferences
	p.AddDislike(7, now, 72*time.Hour)
	p.AddDislike(8, now, 72*time.Hour)
	later := now.Add(24 * time.Hour)
	entry := p.AddDislike(7, later, 72*time.Hour)

	assert.Equal(t, later.Add(72*time.Hour), entry.ExpiresAt)
	assert.Len(t, p.DislikedProfiles, 2)

	active := p.ActiveDislikes(now.Add(80 * time.Hour))
	assert.Contains(t, active, 7)
	assert.NotContains(t, active, 8)
}
