package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_ZeroValue(t *testing.T) {
	s := NewStore()

	snap := s.Snapshot()
	assert.False(t, snap.Authenticated)
	assert.False(t, snap.HasToken())
	assert.Nil(t, snap.UserID)
	assert.Equal(t, int64(0), snap.UserIDOrZero())
}

func TestSignIn_KeepsKnownFields(t *testing.T) {
	s := NewStore()
	s.SetUser(42, "Ann", "ann@example.org")

	s.SignIn(Identity{AccessToken: "tok"})

	snap := s.Snapshot()
	assert.True(t, snap.Authenticated)
	assert.Equal(t, "tok", snap.AccessToken)
	assert.Equal(t, "Ann", snap.UserName)
	assert.Equal(t, "ann@example.org", snap.UserEmail)
	assert.Equal(t, int64(42), snap.UserIDOrZero())
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := NewStore()
	s.SetUser(1, "a", "a@b")

	snap := s.Snapshot()
	*snap.UserID = 99

	assert.Equal(t, int64(1), s.Snapshot().UserIDOrZero())
}

func TestSetAccessToken_And_Clear(t *testing.T) {
	s := NewStore()
	s.SignIn(Identity{UserEmail: "a@b", AccessToken: "old"})
	s.SetAccessToken("new")
	require.Equal(t, "new", s.Snapshot().AccessToken)

	s.Clear()
	assert.Equal(t, Snapshot{}, s.Snapshot())
}

func TestClearUser_KeepsToken(t *testing.T) {
	s := NewStore()
	s.SetUser(7, "Bob", "bob@example.com")
	s.SetAccessToken("at")

	s.ClearUser()

	snap := s.Snapshot()
	assert.Nil(t, snap.UserID)
	assert.Empty(t, snap.UserName)
	assert.Empty(t, snap.UserEmail)
	assert.Equal(t, "at", snap.AccessToken)
	assert.True(t, snap.Authenticated)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	s.SignIn(Identity{UserEmail: "a@b", AccessToken: "t0"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetAccessToken("t1")
		}()
		go func() {
			defer wg.Done()
			snap := s.Snapshot()
			assert.Contains(t, []string{"t0", "t1"}, snap.AccessToken)
		}()
	}
	wg.Wait()
}
