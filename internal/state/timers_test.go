package state

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerRegistry_FiresAndForgets(t *testing.T) {
	tr := NewTimerRegistry()
	defer tr.Close()

	var fired atomic.Int32
	tr.After(5*time.Millisecond, func() { fired.Add(1) })

	assert.Eventually(t, func() bool {
		return fired.Load() == 1 && tr.Pending() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestTimerRegistry_Cancel(t *testing.T) {
	tr := NewTimerRegistry()
	defer tr.Close()

	var fired atomic.Int32
	id := tr.After(20*time.Millisecond, func() { fired.Add(1) })
	tr.Cancel(id)

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
	assert.Equal(t, 0, tr.Pending())
}

func TestTimerRegistry_CloseCancelsAll(t *testing.T) {
	tr := NewTimerRegistry()

	var fired atomic.Int32
	for i := 0; i < 5; i++ {
		tr.After(20*time.Millisecond, func() { fired.Add(1) })
	}
	tr.Close()

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
	assert.Equal(t, 0, tr.Pending())

	// Registrations after Close never run.
	id := tr.After(time.Millisecond, func() { fired.Add(1) })
	assert.Equal(t, 0, id)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}
