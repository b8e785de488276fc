package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commitRecorder struct {
	mu     sync.Mutex
	values []string
}

func (r *commitRecorder) commit(v string) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
}

func (r *commitRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestDebouncerCoalescesTriggers(t *testing.T) {
	rec := &commitRecorder{}
	d := NewDebouncer(20*time.Millisecond, rec.commit)
	defer d.Stop()

	d.Trigger("h")
	d.Trigger("he")
	d.Trigger("hello")

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"hello"}, rec.snapshot(), "only the last value commits")

	// Quiet period: nothing else fires
	time.Sleep(60 * time.Millisecond)
	assert.Len(t, rec.snapshot(), 1)
}

func TestDebouncerFlushCommitsImmediately(t *testing.T) {
	rec := &commitRecorder{}
	d := NewDebouncer(time.Hour, rec.commit)
	defer d.Stop()

	d.Trigger("now")
	d.Flush()

	assert.Equal(t, []string{"now"}, rec.snapshot())

	// Flush with nothing pending is a no-op
	d.Flush()
	assert.Len(t, rec.snapshot(), 1)
}

func TestDebouncerCancelDropsPending(t *testing.T) {
	rec := &commitRecorder{}
	d := NewDebouncer(20*time.Millisecond, rec.commit)
	defer d.Stop()

	d.Trigger("dropped")
	d.Cancel()

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, rec.snapshot())

	// Cancel does not kill the debouncer
	d.Trigger("alive")
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"alive"}, rec.snapshot())
}

func TestDebouncerStopPreventsCommitsAfterDisposal(t *testing.T) {
	rec := &commitRecorder{}
	d := NewDebouncer(20*time.Millisecond, rec.commit)

	d.Trigger("too late")
	d.Stop()

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, rec.snapshot(), "no commit lands after teardown")

	d.Trigger("ignored")
	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}
