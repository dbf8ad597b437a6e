package conversion

import (
	"errors"
	"fmt"
	"testing"

	"fxconvert/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAssetResolver struct{ mock.Mock }

func (m *MockAssetResolver) Resolve(code string) (domain.CurrencyAsset, error) {
	args := m.Called(code)
	asset, _ := args.Get(0).(domain.CurrencyAsset)
	return asset, args.Error(1)
}

func TestPresenter_Present_Ready(t *testing.T) {
	assets := new(MockAssetResolver)
	assets.On("Resolve", "USD").Return(domain.CurrencyAsset{Code: "USD", Name: "US Dollar", FlagKey: "US"}, nil).Once()
	assets.On("Resolve", "PHP").Return(domain.CurrencyAsset{Code: "PHP", Name: "Philippine Peso", FlagKey: "PH"}, nil).Once()
	p := NewPresenter(nil, assets)

	id := uuid.New()
	view := p.Present(State{
		ID: id, Source: "USD", Target: "PHP",
		Rate: 56, RateValid: true, InputAmount: 100, OutputAmount: 5600,
	})

	require.Equal(t, id.String(), view.SessionID)
	require.Equal(t, "US Dollar", view.Source.Name)
	require.Equal(t, "PH", view.Target.FlagKey)
	require.Equal(t, "100", view.InputText)
	require.Equal(t, "5,600.00", view.OutputText)
	require.NotNil(t, view.Rate)
	require.InDelta(t, 56.0, *view.Rate, 1e-9)
	require.Equal(t, "1 USD = 56.0000 PHP", view.RateText)
	require.Equal(t, StatusReady, view.Status)
	require.Empty(t, view.Message)
	assets.AssertExpectations(t)
}

func TestPresenter_Present_NoRate(t *testing.T) {
	p := NewPresenter(nil, nil)

	view := p.Present(State{Source: "USD", Target: "PHP", InputAmount: 100, Rate: 56})

	require.Equal(t, "0.00", view.OutputText)
	require.Nil(t, view.Rate)
	require.Empty(t, view.RateText)
	require.Equal(t, StatusNoRate, view.Status)
	require.Equal(t, msgNoRate, view.Message)
	require.Equal(t, domain.CurrencyAsset{Code: "USD"}, view.Source)
}

func TestPresenter_Present_FetchingWinsOverError(t *testing.T) {
	p := NewPresenter(nil, nil)

	view := p.Present(State{Source: "USD", Target: "PHP", Fetching: true, Err: domain.ErrOffline})

	require.Equal(t, StatusFetching, view.Status)
	require.Equal(t, msgFetching, view.Message)
}

func TestPresenter_Present_Error(t *testing.T) {
	p := NewPresenter(nil, nil)

	view := p.Present(State{Source: "USD", Target: "PHP", Err: domain.ErrInvalidAmount})

	require.Equal(t, StatusError, view.Status)
	require.Equal(t, msgInvalidAmount, view.Message)
}

func TestPresenter_Present_AssetFailureIsNotFatal(t *testing.T) {
	assets := new(MockAssetResolver)
	assets.On("Resolve", "USD").Return(domain.CurrencyAsset{}, domain.ErrCurrencyNotFound).Once()
	assets.On("Resolve", "XAU").Return(domain.CurrencyAsset{}, domain.ErrCurrencyNotFound).Once()
	p := NewPresenter(nil, assets)

	view := p.Present(State{Source: "USD", Target: "XAU"})

	require.Equal(t, domain.CurrencyAsset{Code: "USD"}, view.Source)
	require.Equal(t, domain.CurrencyAsset{Code: "XAU"}, view.Target)
}

func TestErrorMessage(t *testing.T) {
	require.Equal(t, msgInvalidAmount, ErrorMessage(domain.ErrInvalidAmount))
	require.Equal(t, msgOffline, ErrorMessage(domain.ErrOffline))
	require.Equal(t, msgServiceError, ErrorMessage(fmt.Errorf("%w: timeout", domain.ErrServiceError)))
	require.Equal(t, "boom", ErrorMessage(errors.New("boom")))
}
