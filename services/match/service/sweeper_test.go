package service

import (
	"context"
	"testing"
	"time"

	"spark/pkg/db/dbtest"
	"spark/pkg/models"
	"spark/pkg/preference"
	"spark/pkg/redis"
	userrepo "spark/services/user/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepOnce(t *testing.T) {
	gdb := dbtest.New(t)
	mr := miniredis.RunT(t)
	locker := redis.NewFromAddr(mr.Addr())
	t.Cleanup(func() { _ = locker.Close() })

	expired := preference.Preferences{DislikedProfiles: []preference.DislikeEntry{
		{UserID: 90, ExpiresAt: testNow.Add(-time.Hour)},
		{UserID: 91, ExpiresAt: testNow.Add(time.Hour)},
	}}
	users := []models.User{
		{Name: "a", Preferences: expired},
		{Name: "b"},
		{Name: "c", Preferences: preference.Preferences{DislikedProfiles: []preference.DislikeEntry{{UserID: 92}}}},
	}
	require.NoError(t, gdb.Create(&users).Error)

	sweeper := NewSweeper(locker, userrepo.NewUserRepository(gdb), userrepo.NewPreferenceRepository(gdb), time.Minute)
	sweeper.now = func() time.Time { return testNow }

	pruned, ran, err := sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 2, pruned)
	assert.False(t, mr.Exists(sweepLockKey), "lock released")

	var a models.User
	require.NoError(t, gdb.First(&a, users[0].ID).Error)
	require.Len(t, a.Preferences.DislikedProfiles, 1)
	assert.Equal(t, 91, a.Preferences.DislikedProfiles[0].UserID)

	pruned, _, err = sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, pruned)
}

func TestSweepOnceSkipsWhenLocked(t *testing.T) {
	gdb := dbtest.New(t)
	mr := miniredis.RunT(t)
	locker := redis.NewFromAddr(mr.Addr())
	t.Cleanup(func() { _ = locker.Close() })

	require.NoError(t, mr.Set(sweepLockKey, "other-instance"))

	sweeper := NewSweeper(locker, userrepo.NewUserRepository(gdb), userrepo.NewPreferenceRepository(gdb), time.Minute)
	_, ran, err := sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.False(t, ran)

	v, err := mr.Get(sweepLockKey)
	require.NoError(t, err)
	assert.Equal(t, "other-instance", v)
}

func TestSweeperRunDisabled(t *testing.T) {
	sweeper := NewSweeper(nil, nil, nil, 0)
	done := make(chan struct{})
	go func() {
		sweeper.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return when interval is zero")
	}
}
