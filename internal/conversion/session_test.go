package conversion

import (
	"context"
	"errors"
	"testing"
	"time"

	"fxconvert/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Testify mocks ---

type MockRateClient struct{ mock.Mock }

func (m *MockRateClient) GetPairRate(ctx context.Context, base string, quote string) (float64, error) {
	args := m.Called(ctx, base, quote)
	rate, _ := args.Get(0).(float64)
	return rate, args.Error(1)
}

type stubConnectivity struct{ online bool }

func (s *stubConnectivity) Online() bool { return s.online }

// blockingRateClient holds every call until release is closed.
type blockingRateClient struct {
	started chan domain.RatePair
	release chan struct{}
	rate    float64
}

func (c *blockingRateClient) GetPairRate(_ context.Context, base string, quote string) (float64, error) {
	c.started <- domain.RatePair{Base: base, Quote: quote}
	<-c.release
	return c.rate, nil
}

var usdPhp = domain.RatePair{Base: "USD", Quote: "PHP"}

func newTestSession(client *MockRateClient) *Session {
	return NewSession(uuid.New(), usdPhp, client, &stubConnectivity{online: true})
}

// sessionWithRate returns a USD/PHP session holding amount 100 and a valid rate of 56.
func sessionWithRate(t *testing.T) (*Session, *MockRateClient) {
	t.Helper()
	client := new(MockRateClient)
	s := newTestSession(client)
	s.SetInputAmount(100)
	client.On("GetPairRate", mock.Anything, "USD", "PHP").Return(56.0, nil).Once()
	require.NoError(t, s.RequestRate(context.Background()))
	return s, client
}

func TestNewSession_Defaults(t *testing.T) {
	s := newTestSession(new(MockRateClient))
	state := s.Snapshot()

	require.Equal(t, "USD", state.Source)
	require.Equal(t, "PHP", state.Target)
	require.False(t, state.RateValid)
	require.Zero(t, state.InputAmount)
	require.Zero(t, state.OutputAmount)
	require.False(t, state.Fetching)
	require.NoError(t, state.Err)
}

// --- RequestRate ---

func TestSession_RequestRate_EndToEnd(t *testing.T) {
	s, client := sessionWithRate(t)

	state := s.Snapshot()
	require.True(t, state.RateValid)
	require.InDelta(t, 56.0, state.Rate, 1e-9)
	require.Equal(t, 5600.0, state.OutputAmount)
	require.Equal(t, "5,600.00", FormatAmount(state.OutputAmount))
	client.AssertExpectations(t)
}

func TestSession_RequestRate_ZeroAmount_NoNetworkCall(t *testing.T) {
	client := new(MockRateClient)
	s := newTestSession(client)

	err := s.RequestRate(context.Background())

	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	require.ErrorIs(t, s.Snapshot().Err, domain.ErrInvalidAmount)
	client.AssertNotCalled(t, "GetPairRate", mock.Anything, mock.Anything, mock.Anything)
}

func TestSession_RequestRate_Offline_LeavesRateUntouched(t *testing.T) {
	s, client := sessionWithRate(t)
	before := s.Snapshot()

	s.connectivity = &stubConnectivity{online: false}
	err := s.RequestRate(context.Background())

	require.ErrorIs(t, err, domain.ErrOffline)
	after := s.Snapshot()
	require.Equal(t, before.RateValid, after.RateValid)
	require.Equal(t, before.Rate, after.Rate)
	require.Equal(t, before.OutputAmount, after.OutputAmount)
	require.ErrorIs(t, after.Err, domain.ErrOffline)
	client.AssertNumberOfCalls(t, "GetPairRate", 1)
}

func TestSession_RequestRate_ServiceError_KeepsPreviousRate(t *testing.T) {
	s, client := sessionWithRate(t)

	client.On("GetPairRate", mock.Anything, "USD", "PHP").Return(0.0, errors.New("503 from upstream")).Once()
	err := s.RequestRate(context.Background())

	require.ErrorIs(t, err, domain.ErrServiceError)
	require.Contains(t, err.Error(), "503 from upstream")
	state := s.Snapshot()
	require.True(t, state.RateValid)
	require.InDelta(t, 56.0, state.Rate, 1e-9)
	require.Equal(t, 5600.0, state.OutputAmount)
	require.ErrorIs(t, state.Err, domain.ErrServiceError)
	client.AssertExpectations(t)
}

func TestSession_RequestRate_UnusableRateIsServiceError(t *testing.T) {
	client := new(MockRateClient)
	s := newTestSession(client)
	s.SetInputAmount(10)

	client.On("GetPairRate", mock.Anything, "USD", "PHP").Return(-1.0, nil).Once()
	err := s.RequestRate(context.Background())

	require.ErrorIs(t, err, domain.ErrServiceError)
	require.False(t, s.Snapshot().RateValid)
}

func TestSession_RequestRate_NilConnectivityMeansOnline(t *testing.T) {
	client := new(MockRateClient)
	s := NewSession(uuid.New(), usdPhp, client, nil)
	s.SetInputAmount(2)

	client.On("GetPairRate", mock.Anything, "USD", "PHP").Return(56.0, nil).Once()
	require.NoError(t, s.RequestRate(context.Background()))
	require.Equal(t, 112.0, s.Snapshot().OutputAmount)
}

func TestSession_RequestRate_DiscardsStaleResponse(t *testing.T) {
	client := &blockingRateClient{
		started: make(chan domain.RatePair, 1),
		release: make(chan struct{}),
		rate:    56,
	}
	s := NewSession(uuid.New(), usdPhp, client, &stubConnectivity{online: true})
	s.SetInputAmount(100)

	errCh := make(chan error, 1)
	go func() { errCh <- s.RequestRate(context.Background()) }()

	require.Equal(t, usdPhp, <-client.started)
	require.True(t, s.Snapshot().Fetching)

	require.NoError(t, s.SelectCurrency(domain.RoleTarget, "EUR"))
	// the outstanding request is for USD/PHP and no longer counts as fetching
	require.False(t, s.Snapshot().Fetching)
	close(client.release)

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, domain.ErrStaleRate)
	case <-time.After(2 * time.Second):
		t.Fatal("RequestRate did not return")
	}

	state := s.Snapshot()
	require.Equal(t, "EUR", state.Target)
	require.False(t, state.RateValid)
	require.False(t, state.Fetching)
	require.Zero(t, state.OutputAmount)
	require.NoError(t, state.Err)
}

func TestSession_RequestRate_ResponseAfterSwapIsStale(t *testing.T) {
	client := &blockingRateClient{
		started: make(chan domain.RatePair, 1),
		release: make(chan struct{}),
		rate:    56,
	}
	s := NewSession(uuid.New(), usdPhp, client, &stubConnectivity{online: true})
	s.SetInputAmount(100)

	errCh := make(chan error, 1)
	go func() { errCh <- s.RequestRate(context.Background()) }()
	<-client.started

	s.Swap()
	close(client.release)

	require.ErrorIs(t, <-errCh, domain.ErrStaleRate)
	state := s.Snapshot()
	require.Equal(t, "PHP", state.Source)
	require.False(t, state.RateValid)
}

func TestSession_Fetching_FollowsSelectedPair(t *testing.T) {
	client := &blockingRateClient{
		started: make(chan domain.RatePair, 1),
		release: make(chan struct{}),
		rate:    56,
	}
	s := NewSession(uuid.New(), usdPhp, client, &stubConnectivity{online: true})
	s.SetInputAmount(100)
	p := NewPresenter(nil, nil)

	errCh := make(chan error, 1)
	go func() { errCh <- s.RequestRate(context.Background()) }()
	<-client.started
	require.Equal(t, StatusFetching, p.Present(s.Snapshot()).Status)

	require.NoError(t, s.SelectCurrency(domain.RoleTarget, "EUR"))
	require.Equal(t, StatusNoRate, p.Present(s.Snapshot()).Status)

	// selecting the fetched pair again makes the outstanding request current
	require.NoError(t, s.SelectCurrency(domain.RoleTarget, "PHP"))
	require.True(t, s.Snapshot().Fetching)

	s.SetInputAmount(100)
	close(client.release)
	require.NoError(t, <-errCh)

	state := s.Snapshot()
	require.False(t, state.Fetching)
	require.True(t, state.RateValid)
	require.Equal(t, 5600.0, state.OutputAmount)
}

// --- SetInputAmount ---

func TestSession_SetInputAmount_RecomputesWithValidRate(t *testing.T) {
	s, _ := sessionWithRate(t)

	for _, amount := range []float64{0, 0.01, 1, 12.345, 999999.99} {
		s.SetInputAmount(amount)
		require.Equal(t, Round2(amount*56), s.Snapshot().OutputAmount)
	}
}

func TestSession_SetInputAmount_WithoutRate_OutputStaysZero(t *testing.T) {
	s := newTestSession(new(MockRateClient))
	s.SetInputAmount(100)

	state := s.Snapshot()
	require.Equal(t, 100.0, state.InputAmount)
	require.Zero(t, state.OutputAmount)
	require.False(t, state.RateValid)
}

func TestSession_SetInputAmount_NegativeCoercedToZero(t *testing.T) {
	s, _ := sessionWithRate(t)

	s.SetInputAmount(-5)

	state := s.Snapshot()
	require.Zero(t, state.InputAmount)
	require.Zero(t, state.OutputAmount)
	require.GreaterOrEqual(t, state.OutputAmount, 0.0)
}

// --- SelectCurrency ---

func TestSession_SelectCurrency_AlwaysInvalidates(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleSource, domain.RoleTarget} {
		t.Run(string(role), func(t *testing.T) {
			s, _ := sessionWithRate(t)

			// re-selecting the same code still drops the rate
			code := "USD"
			if role == domain.RoleTarget {
				code = "PHP"
			}
			require.NoError(t, s.SelectCurrency(role, code))

			state := s.Snapshot()
			require.False(t, state.RateValid)
			require.Zero(t, state.InputAmount)
			require.Zero(t, state.OutputAmount)
		})
	}
}

func TestSession_SelectCurrency_AllowsIdenticalPair(t *testing.T) {
	s := newTestSession(new(MockRateClient))
	require.NoError(t, s.SelectCurrency(domain.RoleTarget, "USD"))

	state := s.Snapshot()
	require.Equal(t, "USD", state.Source)
	require.Equal(t, "USD", state.Target)
}

func TestSession_SelectCurrency_UnknownRole(t *testing.T) {
	s := newTestSession(new(MockRateClient))
	err := s.SelectCurrency(domain.Role("middle"), "EUR")
	require.ErrorIs(t, err, domain.ErrUnknownRole)
	require.Equal(t, "PHP", s.Snapshot().Target)
}

// --- Swap ---

func TestSession_Swap_InvertsRateWithoutFetch(t *testing.T) {
	s, client := sessionWithRate(t)

	s.Swap()

	state := s.Snapshot()
	require.Equal(t, "PHP", state.Source)
	require.Equal(t, "USD", state.Target)
	require.True(t, state.RateValid)
	require.InDelta(t, 0.017857, state.Rate, 1e-6)
	require.Equal(t, 5600.0, state.InputAmount)
	require.Equal(t, 100.0, state.OutputAmount)
	client.AssertNumberOfCalls(t, "GetPairRate", 1)
}

func TestSession_Swap_TwiceRestores(t *testing.T) {
	s, client := sessionWithRate(t)
	before := s.Snapshot()

	s.Swap()
	s.Swap()

	after := s.Snapshot()
	require.Equal(t, before.Source, after.Source)
	require.Equal(t, before.Target, after.Target)
	require.True(t, after.RateValid)
	require.InDelta(t, before.Rate, after.Rate, 1e-9)
	client.AssertNumberOfCalls(t, "GetPairRate", 1)
}

func TestSession_Swap_WithoutRate(t *testing.T) {
	s := newTestSession(new(MockRateClient))
	s.SetInputAmount(100)

	s.Swap()

	state := s.Snapshot()
	require.Equal(t, "PHP", state.Source)
	require.Equal(t, "USD", state.Target)
	require.False(t, state.RateValid)
	// no rate means no output to carry forward
	require.Zero(t, state.InputAmount)
	require.Zero(t, state.OutputAmount)
}

// --- Subscribe ---

func TestSession_Subscribe_SignalsChanges(t *testing.T) {
	s := newTestSession(new(MockRateClient))
	changes, stop := s.Subscribe()

	s.SetInputAmount(5)
	select {
	case <-changes:
	case <-time.After(time.Second):
		t.Fatal("expected change signal")
	}

	stop()
	stop() // idempotent
	s.SetInputAmount(6)
	select {
	case <-changes:
		t.Fatal("unexpected signal after unsubscribe")
	default:
	}
}

func TestSession_Subscribe_CoalescesSignals(t *testing.T) {
	s := newTestSession(new(MockRateClient))
	changes, stop := s.Subscribe()
	defer stop()

	s.SetInputAmount(1)
	s.SetInputAmount(2)
	s.Swap()

	<-changes
	select {
	case <-changes:
		t.Fatal("signals should be coalesced")
	default:
	}
}
