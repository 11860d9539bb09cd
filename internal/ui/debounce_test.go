package ui

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDelay = 30 * time.Millisecond

func TestDebouncerCollapsesBurst(t *testing.T) {
	d := NewDebouncer(testDelay)

	var mu sync.Mutex
	var calls []string
	for _, v := range []string{"d", "de", "del", "dell"} {
		v := v
		d.Trigger(func() {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, v)
		})
		time.Sleep(testDelay / 6)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(3 * testDelay)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"dell"}, calls)
	assert.False(t, d.Pending())
}

func TestDebouncerSeparateWindows(t *testing.T) {
	d := NewDebouncer(testDelay)
	var n atomic.Int32

	d.Trigger(func() { n.Add(1) })
	require.Eventually(t, func() bool { return n.Load() == 1 }, time.Second, 5*time.Millisecond)

	d.Trigger(func() { n.Add(1) })
	require.Eventually(t, func() bool { return n.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(testDelay)
	var n atomic.Int32

	d.Trigger(func() { n.Add(1) })
	assert.True(t, d.Pending())
	d.Stop()
	assert.False(t, d.Pending())

	time.Sleep(3 * testDelay)
	assert.Zero(t, n.Load())
}

func TestDebouncerDefaultDelay(t *testing.T) {
	assert.Equal(t, DefaultDebounce, NewDebouncer(0).Delay())
	assert.Equal(t, 300*time.Millisecond, DefaultDebounce)
}
