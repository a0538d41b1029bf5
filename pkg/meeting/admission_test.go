package meeting_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/meetbot/pkg/logging"
	"github.com/entrhq/meetbot/pkg/meeting"
)

const pollTick = 5 * time.Millisecond

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition never met: %s", msg)
}

func TestAdmissionPollerStopsPermanentlyOnceAdmitted(t *testing.T) {
	var calls atomic.Int64
	poller := meeting.NewAdmissionPoller(pollTick, func() (bool, error) {
		// Admit on the third iteration.
		return calls.Add(1) >= 3, nil
	}, logging.Discard())

	poller.Start()
	waitFor(t, poller.Admitted, "poller should infer admission")

	assert.False(t, poller.Active(), "stop flag must be observably false after admission")
	settled := calls.Load()

	// No further attempts occur after admission.
	time.Sleep(10 * pollTick)
	assert.Equal(t, settled, calls.Load())

	// Restarting an admitted poller is refused.
	poller.Start()
	assert.False(t, poller.Active())
}

func TestAdmissionPollerStopIsIdempotent(t *testing.T) {
	poller := meeting.NewAdmissionPoller(pollTick, func() (bool, error) {
		return false, nil
	}, logging.Discard())

	poller.Start()
	waitFor(t, func() bool { return poller.Attempts() >= 1 }, "at least one attempt")

	poller.Stop()
	poller.Stop()
	poller.Stop()

	assert.False(t, poller.Active())
	assert.False(t, poller.Admitted())
}

func TestAdmissionPollerStopWithoutStart(t *testing.T) {
	poller := meeting.NewAdmissionPoller(pollTick, func() (bool, error) {
		return false, nil
	}, logging.Discard())

	// Cleanup paths stop pollers that may never have started.
	poller.Stop()
	poller.Stop()
	assert.False(t, poller.Active())
}

func TestAdmissionPollerContinuesPastIterationErrors(t *testing.T) {
	var calls atomic.Int64
	poller := meeting.NewAdmissionPoller(pollTick, func() (bool, error) {
		n := calls.Add(1)
		if n < 3 {
			return false, assert.AnError
		}
		return true, nil
	}, logging.Discard())

	poller.Start()
	waitFor(t, poller.Admitted, "errors must not kill the loop")
	require.GreaterOrEqual(t, calls.Load(), int64(3))
}

func TestAdmissionPollerNoWorkAfterStop(t *testing.T) {
	var calls atomic.Int64
	poller := meeting.NewAdmissionPoller(pollTick, func() (bool, error) {
		calls.Add(1)
		return false, nil
	}, logging.Discard())

	poller.Start()
	waitFor(t, func() bool { return calls.Load() >= 1 }, "loop is running")
	poller.Stop()

	settled := calls.Load()
	time.Sleep(10 * pollTick)
	assert.Equal(t, settled, calls.Load(), "no iteration may run after Stop returns")
}
