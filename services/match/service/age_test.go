package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeAtBirthdayBoundary(t *testing.T) {
	today := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	birthday := today.AddDate(-30, 0, 0)

	assert.Equal(t, 30, AgeAt(birthday, today))
	assert.Equal(t, 29, AgeAt(birthday, today.AddDate(0, 0, -1)))
}

func TestAgeAtLeapDay(t *testing.T) {
	birthday := time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 25, AgeAt(birthday, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 26, AgeAt(birthday, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestAgeAtFuture(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, AgeAt(now.AddDate(1, 0, 0), now))
}
