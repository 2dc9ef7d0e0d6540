package score

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBackend struct{ MemoryBackend }

func (f *failingBackend) SaveItem(string, []byte) error { return errors.New("disk full") }

func newTestStore(t *testing.T, backend Backend, limit int) *Store {
	t.Helper()
	s, err := New(backend, limit)
	require.NoError(t, err)
	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return s
}

func TestSubmitRanksAndPersists(t *testing.T) {
	backend := &MemoryBackend{}
	s := newTestStore(t, backend, 3)

	rank, err := s.Submit("ann", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	rank, err = s.Submit("bob", 30)
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	rank, err = s.Submit("cid", 10)
	require.NoError(t, err)
	assert.Equal(t, 3, rank, "ties rank after older entries")

	rank, err = s.Submit("dan", 5)
	require.NoError(t, err)
	assert.Equal(t, 0, rank, "below the table")

	assert.Equal(t, 30, s.Best())

	reopened, err := New(backend, 3)
	require.NoError(t, err)
	top := reopened.Top(10)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"bob", "ann", "cid"}, []string{top[0].Name, top[1].Name, top[2].Name})
}

func TestZeroPointsNotRecorded(t *testing.T) {
	s := newTestStore(t, &MemoryBackend{}, 5)
	rank, err := s.Submit("ann", 0)
	require.NoError(t, err)
	assert.Zero(t, rank)
	assert.Empty(t, s.Top(5))
}

func TestNilStore(t *testing.T) {
	var s *Store
	_, err := s.Submit("ann", 10)
	assert.ErrorIs(t, err, ErrNoStore)
	assert.Zero(t, s.Best())
	assert.Nil(t, s.Top(3))

	_, err = New(nil, 3)
	assert.ErrorIs(t, err, ErrNoStore)
}

func TestSaveFailureIsWrapped(t *testing.T) {
	s := newTestStore(t, &failingBackend{}, 5)
	rank, err := s.Submit("ann", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save scores")
	assert.Equal(t, 1, rank)
}

func TestCorruptDataFails(t *testing.T) {
	backend := &MemoryBackend{}
	require.NoError(t, backend.SaveItem(itemKey, []byte("{")))
	_, err := New(backend, 5)
	assert.Error(t, err)
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  ann  ", "ann"},
		{"", "anonymous"},
		{"\x1b[31mred", "[31mred"},
		{"abcdefghijklmnopqrstuvwxyz", "abcdefghijklmnop"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanName(tt.in), "input %q", tt.in)
	}
}

func TestConcurrentSubmit(t *testing.T) {
	s, err := New(&MemoryBackend{}, DefaultLimit)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Submit(fmt.Sprintf("p%d", i), i)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Best())
	assert.Len(t, s.Top(100), DefaultLimit)
}
