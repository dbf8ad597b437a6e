package connectivity

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

const defaultProbeInterval = 15 * time.Second

// Probe reports nil when the network path to the rate service is usable.
type Probe func(ctx context.Context) error

// Monitor keeps the result of the latest connectivity probe.
// It reports online until a probe has failed.
type Monitor struct {
	probe         Probe
	probeInterval time.Duration
	probeTimeout  time.Duration

	online atomic.Bool
	mu     sync.Mutex
	sched  gocron.Scheduler
}

func (m *Monitor) Online() bool { return m.online.Load() }

// Check runs the probe once and records the result.
func (m *Monitor) Check(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, m.probeTimeout)
	defer cancel()

	err := m.probe(probeCtx)
	online := err == nil
	if previous := m.online.Swap(online); previous != online {
		if online {
			logrus.Info("Connectivity to rate service restored")
		} else {
			logrus.WithError(err).Warn("Rate service unreachable, conversions will report offline")
		}
	}
	return online
}

// Start probes once synchronously, then keeps probing until ctx is canceled or Shutdown is called.
func (m *Monitor) Start(ctx context.Context) error {
	m.Check(ctx)

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(m.probeInterval),
		gocron.NewTask(func(jobCtx context.Context) { m.Check(jobCtx) }),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	m.mu.Lock()
	m.sched = scheduler
	m.mu.Unlock()
	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := m.Shutdown(); sdErr != nil {
			logrus.Errorf("Connectivity monitor shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (m *Monitor) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sched == nil {
		return nil
	}
	err := m.sched.Shutdown()
	m.sched = nil
	return err
}

func (m *Monitor) running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sched != nil
}

func NewMonitor(probe Probe, probeInterval time.Duration, probeTimeout time.Duration) *Monitor {
	if probeInterval <= 0 {
		probeInterval = defaultProbeInterval
	}
	if probeTimeout <= 0 || probeTimeout > probeInterval {
		probeTimeout = probeInterval
	}
	m := &Monitor{probe: probe, probeInterval: probeInterval, probeTimeout: probeTimeout}
	m.online.Store(true)
	return m
}
