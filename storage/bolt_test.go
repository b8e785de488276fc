package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notenexus/models"
)

func newTestBolt(t *testing.T) *BoltStore {
	t.Helper()
	s, err := NewBoltStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBoltStoreRoundTripsSlots(t *testing.T) {
	s := newTestBolt(t)

	user := models.User{ID: "u1", Email: "u1@example.com", DisplayName: "U One"}
	require.NoError(t, s.Save(SlotUser, user))

	var got models.User
	require.NoError(t, s.Load(SlotUser, &got))
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.DisplayName, got.DisplayName)
}

func TestBoltStoreLoadMissingSlot(t *testing.T) {
	s := newTestBolt(t)

	var mode models.ViewMode
	err := s.Load(SlotViewMode, &mode)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestBoltStoreDeleteClearsSlot(t *testing.T) {
	s := newTestBolt(t)

	require.NoError(t, s.Save(SlotViewMode, models.ViewModeList))
	require.NoError(t, s.Delete(SlotViewMode))

	var mode models.ViewMode
	assert.ErrorIs(t, s.Load(SlotViewMode, &mode), ErrSlotNotFound)
}

func TestBoltStoreDeleteMissingSlotIsNoop(t *testing.T) {
	s := newTestBolt(t)
	assert.NoError(t, s.Delete("never-written"))
}

func TestBoltStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewBoltStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save(SlotViewMode, models.ViewModeList))
	require.NoError(t, s.Close())

	s, err = NewBoltStore(dir)
	require.NoError(t, err)
	defer s.Close()

	var mode models.ViewMode
	require.NoError(t, s.Load(SlotViewMode, &mode))
	assert.Equal(t, models.ViewModeList, mode)
}

func TestSessionStorageGetSetDelete(t *testing.T) {
	s := newTestBolt(t)
	sessions, err := NewSessionStorage(s.DB())
	require.NoError(t, err)

	got, err := sessions.Get("absent")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, sessions.Set("sid", []byte("payload"), 0))
	got, err = sessions.Get("sid")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	require.NoError(t, sessions.Delete("sid"))
	got, err = sessions.Get("sid")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStorageExpiry(t *testing.T) {
	s := newTestBolt(t)
	sessions, err := NewSessionStorage(s.DB())
	require.NoError(t, err)

	require.NoError(t, sessions.Set("short", []byte("x"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	got, err := sessions.Get("short")
	require.NoError(t, err)
	assert.Nil(t, got, "expired sessions read as absent")
}

func TestSessionStorageReset(t *testing.T) {
	s := newTestBolt(t)
	sessions, err := NewSessionStorage(s.DB())
	require.NoError(t, err)

	require.NoError(t, sessions.Set("a", []byte("1"), 0))
	require.NoError(t, sessions.Set("b", []byte("2"), 0))
	require.NoError(t, sessions.Reset())

	for _, key := range []string{"a", "b"} {
		got, err := sessions.Get(key)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
}

func TestMemoryStoreMatchesContract(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	var mode models.ViewMode
	assert.ErrorIs(t, s.Load(SlotViewMode, &mode), ErrSlotNotFound)

	require.NoError(t, s.Save(SlotViewMode, models.ViewModeGrid))
	require.NoError(t, s.Load(SlotViewMode, &mode))
	assert.Equal(t, models.ViewModeGrid, mode)

	require.NoError(t, s.Delete(SlotViewMode))
	assert.ErrorIs(t, s.Load(SlotViewMode, &mode), ErrSlotNotFound)
}
