package sessions

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"tripform/form"
)

func newTestStore(ttl time.Duration) (*Store, *time.Time) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(ttl, func() *form.Form { return form.New(nil, nil, nil) })
	s.now = func() time.Time { return now }
	return s, &now
}

func TestGetCreatesAndReusesSessions(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	id, f := s.Get("")
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	again, same := s.Get(id)
	require.Equal(t, id, again)
	require.Same(t, f, same)

	other, otherForm := s.Get("not-a-session")
	require.NotEqual(t, id, other)
	require.NotSame(t, f, otherForm)
	require.Equal(t, 2, s.Len())
}

func TestGetExpiresIdleSessions(t *testing.T) {
	s, now := newTestStore(time.Hour)

	id, f := s.Get("")
	*now = now.Add(30 * time.Minute)
	_, kept := s.Get(id)
	require.Same(t, f, kept)

	*now = now.Add(61 * time.Minute)
	newID, fresh := s.Get(id)
	require.NotEqual(t, id, newID)
	require.NotSame(t, f, fresh)
	require.Equal(t, 1, s.Len())
}

func TestGetSweepsAtMostOncePerInterval(t *testing.T) {
	s, now := newTestStore(time.Hour)
	start := *now

	stale, staleForm := s.Get("")
	*now = start.Add(50 * time.Minute)
	live, _ := s.Get("")

	// stale is past its ttl but the last sweep was 11 minutes ago.
	*now = start.Add(61 * time.Minute)
	_, _ = s.Get(live)
	require.Equal(t, 2, s.Len())

	replaced, fresh := s.Get(stale)
	require.NotEqual(t, stale, replaced)
	require.NotSame(t, staleForm, fresh)
	require.Equal(t, 2, s.Len())

	*now = start.Add(122 * time.Minute)
	_, _ = s.Get("")
	require.Equal(t, 1, s.Len())
}
