package session_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capoo/capoo/pkg/session"
)

func validSession() session.Session {
	return session.Session{ID: "u1", Username: "ann", Email: "a@x.com"}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*session.Session)
		wantErr bool
	}{
		{"valid", func(*session.Session) {}, false},
		{"missing id", func(s *session.Session) { s.ID = "" }, true},
		{"missing username", func(s *session.Session) { s.Username = "" }, true},
		{"malformed email", func(s *session.Session) { s.Email = "not-an-email" }, true},
		{"empty email", func(s *session.Session) { s.Email = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSession()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, session.ErrInvalidSession)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCache_LoginLogout(t *testing.T) {
	cache := session.NewCache()

	_, ok := cache.Current()
	assert.False(t, ok)

	require.NoError(t, cache.Login(validSession()))
	got, ok := cache.Current()
	require.True(t, ok)
	assert.Equal(t, validSession(), got)

	cache.Logout()
	_, ok = cache.Current()
	assert.False(t, ok)
}

func TestCache_InvalidLoginKeepsPreviousIdentity(t *testing.T) {
	cache := session.NewCache()
	require.NoError(t, cache.Login(validSession()))

	err := cache.Login(session.Session{ID: "u2", Username: "bob", Email: "broken"})
	assert.ErrorIs(t, err, session.ErrInvalidSession)

	got, ok := cache.Current()
	require.True(t, ok)
	assert.Equal(t, validSession(), got)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := session.NewCache()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = cache.Login(validSession())
		}()
		go func() {
			defer wg.Done()
			cache.Current()
		}()
	}
	wg.Wait()
}

func TestContext_RoundTrip(t *testing.T) {
	cache := session.NewCache()
	ctx := session.WithCache(context.Background(), cache)

	got, ok := session.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, cache, got)
	assert.Same(t, cache, session.MustFromContext(ctx))
}

func TestContext_MustFailsFastOutsideScope(t *testing.T) {
	_, ok := session.FromContext(context.Background())
	assert.False(t, ok)

	assert.PanicsWithValue(t, "session: cache accessed outside WithCache scope", func() {
		session.MustFromContext(context.Background())
	})
}
