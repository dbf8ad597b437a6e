package conversion

import (
	"context"
	"errors"
	"fmt"
	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const rateRequestTimeout = 15 * time.Second

type SessionStore interface {
	Get(id uuid.UUID) (*Session, bool)
	Set(id uuid.UUID, session *Session) error
	Delete(id uuid.UUID)
}

type CurrencyValidator interface {
	Validate(code string) error
}

type MetricsRecorder interface {
	SessionCreated()
	RateRequested(outcome string, elapsed time.Duration)
}

// Rate request outcomes reported to MetricsRecorder.
const (
	OutcomeSuccess       = "success"
	OutcomeInvalidAmount = "invalid_amount"
	OutcomeOffline       = "offline"
	OutcomeServiceError  = "service_error"
	OutcomeStale         = "stale"
)

// Service owns the live sessions and translates UI events into session calls.
type Service struct {
	store        SessionStore
	validator    CurrencyValidator
	presenter    *Presenter
	rates        adapters.RateClient
	connectivity adapters.ConnectivityChecker
	metrics      MetricsRecorder
	defaults     domain.RatePair
}

func (s *Service) Create(_ context.Context) (View, error) {
	session := NewSession(uuid.New(), s.defaults, s.rates, s.connectivity)
	if err := s.store.Set(session.ID(), session); err != nil {
		return View{}, fmt.Errorf("failed to store session: %w", err)
	}
	if s.metrics != nil {
		s.metrics.SessionCreated()
	}
	logrus.WithField("session_id", session.ID()).Debug("Session created")
	return s.presenter.Present(session.Snapshot()), nil
}

func (s *Service) Session(id uuid.UUID) (*Session, error) {
	session, ok := s.store.Get(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *Service) View(id uuid.UUID) (View, error) {
	session, err := s.Session(id)
	if err != nil {
		return View{}, err
	}
	return s.presenter.Present(session.Snapshot()), nil
}

func (s *Service) Delete(id uuid.UUID) error {
	if _, err := s.Session(id); err != nil {
		return err
	}
	s.store.Delete(id)
	return nil
}

func (s *Service) SelectCurrency(id uuid.UUID, role domain.Role, code string) (View, error) {
	session, err := s.Session(id)
	if err != nil {
		return View{}, err
	}
	if err = s.validator.Validate(code); err != nil {
		return View{}, err
	}
	if err = session.SelectCurrency(role, code); err != nil {
		return View{}, err
	}
	return s.presenter.Present(session.Snapshot()), nil
}

// SetAmount accepts the raw text of the amount field.
func (s *Service) SetAmount(id uuid.UUID, rawText string) (View, error) {
	session, err := s.Session(id)
	if err != nil {
		return View{}, err
	}
	session.SetInputAmount(ParseAmount(rawText))
	return s.presenter.Present(session.Snapshot()), nil
}

func (s *Service) Swap(id uuid.UUID) (View, error) {
	session, err := s.Session(id)
	if err != nil {
		return View{}, err
	}
	session.Swap()
	return s.presenter.Present(session.Snapshot()), nil
}

// Convert requests a fresh rate. The returned view reflects the outcome even when err != nil.
//
// The fetch is detached from ctx cancellation: a request already sent is never aborted
// because the caller went away.
func (s *Service) Convert(ctx context.Context, id uuid.UUID) (View, error) {
	session, err := s.Session(id)
	if err != nil {
		return View{}, err
	}

	reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rateRequestTimeout)
	defer cancel()

	started := time.Now()
	err = session.RequestRate(reqCtx)
	elapsed := time.Since(started)
	state := session.Snapshot()
	outcome := outcomeOf(err)
	if s.metrics != nil {
		s.metrics.RateRequested(outcome, elapsed)
	}

	entry := logrus.WithFields(logrus.Fields{
		"session_id": id,
		"pair":       state.Source + "/" + state.Target,
		"outcome":    outcome,
		"elapsed":    elapsed,
	})
	switch outcome {
	case OutcomeSuccess:
		entry.Debug("Rate request completed")
	case OutcomeServiceError:
		entry.WithError(err).Warn("Rate request failed")
	default:
		entry.WithError(err).Info("Rate request rejected")
	}

	return s.presenter.Present(state), err
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, domain.ErrInvalidAmount):
		return OutcomeInvalidAmount
	case errors.Is(err, domain.ErrOffline):
		return OutcomeOffline
	case errors.Is(err, domain.ErrStaleRate):
		return OutcomeStale
	default:
		return OutcomeServiceError
	}
}

type ServiceDeps struct {
	Store        SessionStore
	Validator    CurrencyValidator
	Presenter    *Presenter
	Rates        adapters.RateClient
	Connectivity adapters.ConnectivityChecker
	Metrics      MetricsRecorder
	Defaults     domain.RatePair
}

func NewService(deps ServiceDeps) *Service {
	presenter := deps.Presenter
	if presenter == nil {
		presenter = NewPresenter(nil, nil)
	}
	return &Service{
		store:        deps.Store,
		validator:    deps.Validator,
		presenter:    presenter,
		rates:        deps.Rates,
		connectivity: deps.Connectivity,
		metrics:      deps.Metrics,
		defaults:     deps.Defaults,
	}
}

// Watch subscribes to changes of one session.
func (s *Service) Watch(id uuid.UUID) (<-chan struct{}, func(), error) {
	session, err := s.Session(id)
	if err != nil {
		return nil, nil, err
	}
	changes, stop := session.Subscribe()
	return changes, stop, nil
}
