package conversion

import (
	"context"
	"fmt"
	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"math"
	"sync"

	"github.com/google/uuid"
)

// Session holds the converter state of one UI instance.
//
// The rate is valid only while rateFor equals the selected (source, target) pair.
// The output amount is never stored on its own: it is recomputed from input and rate
// after every mutation.
type Session struct {
	id uuid.UUID

	rates        adapters.RateClient
	connectivity adapters.ConnectivityChecker

	mu       sync.Mutex
	source   string
	target   string
	rate     float64
	rateFor  *domain.RatePair
	input    float64
	output   float64
	inflight map[domain.RatePair]int
	lastErr  error

	subs    map[int]chan struct{}
	nextSub int
}

// State is a point-in-time copy of a session.
type State struct {
	ID           uuid.UUID
	Source       string
	Target       string
	Rate         float64
	RateValid    bool
	InputAmount  float64
	OutputAmount float64
	Fetching     bool
	Err          error
}

func (s *Session) ID() uuid.UUID { return s.id }

// SelectCurrency changes one side of the pair. Any held rate is dropped and the input is reset.
func (s *Session) SelectCurrency(role domain.Role, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch role {
	case domain.RoleSource:
		s.source = code
	case domain.RoleTarget:
		s.target = code
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownRole, role)
	}

	s.rateFor = nil
	s.input = 0
	s.lastErr = nil
	s.recomputeLocked()
	s.notifyLocked()
	return nil
}

// Swap exchanges source and target. A valid rate is inverted and stays valid,
// the last output becomes the new input.
func (s *Session) Swap() {
	s.mu.Lock()
	defer s.mu.Unlock()

	valid := s.rateValidLocked()
	s.source, s.target = s.target, s.source
	if valid {
		s.rate = 1 / s.rate
		reversed := s.rateFor.Reversed()
		s.rateFor = &reversed
	} else {
		s.rateFor = nil
	}

	s.input = s.output
	s.lastErr = nil
	s.recomputeLocked()
	s.notifyLocked()
}

// SetInputAmount stores a new input. Negative and non-finite values are coerced to 0.
func (s *Session) SetInputAmount(amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.input = sanitizeAmount(amount)
	s.lastErr = nil
	s.recomputeLocked()
	s.notifyLocked()
}

// RequestRate fetches the rate for the currently selected pair.
//
// The lock is not held during the network call. The response is applied only if the
// pair it was requested for is still the selected one, otherwise ErrStaleRate is returned.
// A session reports Fetching only while a request for its current pair is outstanding.
func (s *Session) RequestRate(ctx context.Context) error {
	s.mu.Lock()
	if s.input <= 0 {
		s.lastErr = domain.ErrInvalidAmount
		s.notifyLocked()
		s.mu.Unlock()
		return domain.ErrInvalidAmount
	}
	if s.connectivity != nil && !s.connectivity.Online() {
		s.lastErr = domain.ErrOffline
		s.notifyLocked()
		s.mu.Unlock()
		return domain.ErrOffline
	}
	pair := s.pairLocked()
	s.inflight[pair]++
	s.lastErr = nil
	s.notifyLocked()
	s.mu.Unlock()

	rate, err := s.rates.GetPairRate(ctx, pair.Base, pair.Quote)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.notifyLocked()
	s.inflight[pair]--
	if s.inflight[pair] <= 0 {
		delete(s.inflight, pair)
	}

	current := s.pairLocked()
	if err == nil && (rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0)) {
		err = fmt.Errorf("unusable rate %v for pair %q", rate, pair.String())
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrServiceError, err)
		if current == pair {
			s.lastErr = err
		}
		return err
	}
	if current != pair {
		return fmt.Errorf("%w: fetched %s, selected %s", domain.ErrStaleRate, pair, current)
	}

	s.rate = rate
	s.rateFor = &pair
	s.lastErr = nil
	s.recomputeLocked()
	return nil
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		ID:           s.id,
		Source:       s.source,
		Target:       s.target,
		Rate:         s.rate,
		RateValid:    s.rateValidLocked(),
		InputAmount:  s.input,
		OutputAmount: s.output,
		Fetching:     s.inflight[s.pairLocked()] > 0,
		Err:          s.lastErr,
	}
}

// Subscribe returns a channel signalled after every state change and a func to stop listening.
// Signals are coalesced: a slow reader sees one pending signal, not one per change.
func (s *Session) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs == nil {
		s.subs = make(map[int]chan struct{})
	}
	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
		})
	}
}

func (s *Session) pairLocked() domain.RatePair {
	return domain.RatePair{Base: s.source, Quote: s.target}
}

func (s *Session) rateValidLocked() bool {
	return s.rateFor != nil && *s.rateFor == s.pairLocked()
}

func (s *Session) recomputeLocked() {
	if !s.rateValidLocked() {
		s.output = 0
		return
	}
	s.output = convertAmount(s.input, s.rate)
}

func (s *Session) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func NewSession(id uuid.UUID, defaults domain.RatePair, rates adapters.RateClient, connectivity adapters.ConnectivityChecker) *Session {
	return &Session{
		id:           id,
		rates:        rates,
		connectivity: connectivity,
		source:       defaults.Base,
		target:       defaults.Quote,
		inflight:     make(map[domain.RatePair]int),
	}
}
