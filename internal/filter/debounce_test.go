package filter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type emission struct {
	at    time.Duration
	value string
}

func newRecorded(clock *fakeClock) (*Debouncer, *[]emission) {
	var out []emission
	d := NewDebouncer(300*time.Millisecond, clock.AfterFunc, func(v string) {
		out = append(out, emission{at: clock.Now(), value: v})
	})
	return d, &out
}

func TestDebouncer_RapidTypingEmitsOnceAfterQuietPeriod(t *testing.T) {
	clock := &fakeClock{}
	d, out := newRecorded(clock)

	d.Push("j")
	clock.AdvanceTo(50 * time.Millisecond)
	d.Push("ja")
	clock.AdvanceTo(100 * time.Millisecond)
	d.Push("jan")
	clock.AdvanceTo(310 * time.Millisecond)
	d.Push("x")
	assert.Empty(t, *out)

	// 静默期从最后一次输入开始计算
	clock.AdvanceTo(609 * time.Millisecond)
	assert.Empty(t, *out)

	clock.AdvanceTo(2 * time.Second)
	require.Len(t, *out, 1)
	assert.Equal(t, emission{at: 610 * time.Millisecond, value: "x"}, (*out)[0])
	assert.False(t, d.Pending())
}

func TestDebouncer_DeduplicatesAgainstPreviousEmission(t *testing.T) {
	clock := &fakeClock{}
	d, out := newRecorded(clock)

	d.Push("doe")
	clock.AdvanceTo(time.Second)
	d.Push("doe")
	clock.AdvanceTo(2 * time.Second)
	d.Push("do")
	d.Push("doe")
	clock.AdvanceTo(3 * time.Second)
	d.Push("")
	clock.AdvanceTo(4 * time.Second)

	require.Len(t, *out, 2)
	assert.Equal(t, "doe", (*out)[0].value)
	assert.Equal(t, "", (*out)[1].value)
}

func TestDebouncer_SyncResetsDeduplication(t *testing.T) {
	clock := &fakeClock{}
	var got []string
	d := NewDebouncer(300*time.Millisecond, clock.AfterFunc, func(v string) { got = append(got, v) })

	d.Push("a")
	clock.AdvanceTo(300 * time.Millisecond)
	d.Sync("ab")

	d.Push("a")
	clock.AdvanceTo(600 * time.Millisecond)
	d.Push("a")
	clock.AdvanceTo(time.Second)

	assert.Equal(t, []string{"a", "a"}, got)
}

func TestDebouncer_CloseCancelsPending(t *testing.T) {
	clock := &fakeClock{}
	d, out := newRecorded(clock)

	d.Push("a")
	assert.True(t, d.Pending())
	d.Close()
	d.Push("b")
	clock.AdvanceTo(time.Second)
	assert.Empty(t, *out)
}

func TestDebouncer_RealTimerDoesNotLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	var (
		mu  sync.Mutex
		got []string
	)
	done := make(chan struct{})
	d := NewDebouncer(5*time.Millisecond, nil, func(v string) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
		close(done)
	})

	d.Push("a")
	d.Push("ab")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced value was not emitted")
	}
	d.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"ab"}, got)
}
