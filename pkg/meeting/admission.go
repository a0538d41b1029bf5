package meeting

import (
	"sync"
	"time"

	"github.com/entrhq/meetbot/pkg/logging"
)

// DefaultAdmissionInterval is how often organizer sessions look for
// participants waiting to be admitted.
const DefaultAdmissionInterval = 5 * time.Second

// AdmissionPoller drives a recurring host-admission check on a fixed
// interval. Exactly one iteration runs at a time: the next tick is not
// considered until the previous check returns, so iterations never
// overlap. The check callback returns admitted=true once it has
// observed a previously clicked admit control disappear; the poller
// then records the admission and stops permanently.
//
// Stop is idempotent and cooperative: it flips the active flag, cancels
// the pending tick, and waits for any in-flight iteration to return. It
// never interrupts one.
type AdmissionPoller struct {
	interval time.Duration
	check    func() (admitted bool, err error)
	log      *logging.Logger

	mu       sync.Mutex
	active   bool
	admitted bool
	attempts int
	stop     chan struct{}
	done     chan struct{}
}

// NewAdmissionPoller creates a poller that invokes check every
// interval once started. A non-positive interval falls back to
// DefaultAdmissionInterval.
func NewAdmissionPoller(interval time.Duration, check func() (bool, error), log *logging.Logger) *AdmissionPoller {
	if interval <= 0 {
		interval = DefaultAdmissionInterval
	}
	return &AdmissionPoller{interval: interval, check: check, log: log}
}

// Start launches the polling loop. Starting an already-active poller is
// a no-op.
func (p *AdmissionPoller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	// Once an admission has been inferred the loop is permanently done.
	if p.active || p.admitted {
		return
	}
	p.active = true
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	go p.run(p.stop, p.done)
}

func (p *AdmissionPoller) run(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		// The stop flag is re-checked at the top of every iteration:
		// a tick that raced with Stop must not do any work.
		if !p.Active() {
			return
		}

		p.mu.Lock()
		p.attempts++
		p.mu.Unlock()

		admitted, err := p.check()
		if err != nil {
			// Iteration errors are best-effort failures: log and keep
			// polling unless the stop condition is separately met.
			p.log.Warnf("admission poll iteration failed: %v", err)
			continue
		}
		if admitted {
			p.mu.Lock()
			p.admitted = true
			p.active = false
			p.mu.Unlock()
			admissionsInferred.Inc()
			p.log.Infof("participant admitted, admission polling stopped")
			return
		}
	}
}

// Stop cancels the polling loop and waits for any in-flight iteration
// to finish. Safe to call multiple times and after the loop has already
// stopped itself.
func (p *AdmissionPoller) Stop() {
	p.mu.Lock()
	stop, done := p.stop, p.done
	p.active = false
	p.stop = nil
	p.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	if done != nil {
		<-done
	}
}

// Active reports whether the loop is still scheduled to run.
func (p *AdmissionPoller) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Admitted reports whether an admission has been inferred.
func (p *AdmissionPoller) Admitted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.admitted
}

// Attempts returns how many poll iterations have run.
func (p *AdmissionPoller) Attempts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attempts
}
