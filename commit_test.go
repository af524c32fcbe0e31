package scarlettd

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSchedulerArmFiresAfterDelay(t *testing.T) {
	var fired atomic.Bool
	s := newSaveScheduler(func() { fired.Store(true) })
	s.Arm()

	require.Eventually(t, fired.Load, configSaveDelay+200*time.Millisecond, 2*time.Millisecond)
}

func TestSaveSchedulerCancelPreventsFire(t *testing.T) {
	var fired atomic.Bool
	s := newSaveScheduler(func() { fired.Store(true) })
	s.Arm()
	s.Cancel()

	time.Sleep(configSaveDelay + 20*time.Millisecond)
	assert.False(t, fired.Load())
}

func TestSaveSchedulerArmCoalescesRepeatedCalls(t *testing.T) {
	var count atomic.Int32
	s := newSaveScheduler(func() { count.Add(1) })

	for i := 0; i < 5; i++ {
		s.Arm()
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(configSaveDelay + 50*time.Millisecond)
	assert.EqualValues(t, 1, count.Load())
}
