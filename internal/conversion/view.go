package conversion

import (
	"errors"
	"fxconvert/internal/domain"
)

type Status string

const (
	StatusNoRate   Status = "no_rate"
	StatusFetching Status = "fetching"
	StatusReady    Status = "ready"
	StatusError    Status = "error"
)

const (
	msgNoRate        = "exchange rate not fetched yet"
	msgFetching      = "fetching exchange rate..."
	msgInvalidAmount = "enter an amount greater than zero"
	msgOffline       = "no network connection, check your connection and try again"
	msgServiceError  = "couldn't fetch the exchange rate, try again"
)

// View is everything the UI renders for a session.
type View struct {
	SessionID    string               `json:"session_id" example:"77b5d9f5-0569-47e3-aee2-f659d59fbd97"`
	Source       domain.CurrencyAsset `json:"source"`
	Target       domain.CurrencyAsset `json:"target"`
	InputAmount  float64              `json:"input_amount" example:"100"`
	InputText    string               `json:"input_text" example:"100"`
	OutputAmount float64              `json:"output_amount" example:"5600"`
	OutputText   string               `json:"output_text" example:"5,600.00"`
	Rate         *float64             `json:"rate,omitempty" example:"56"`
	RateText     string               `json:"rate_text,omitempty" example:"1 USD = 56.0000 PHP"`
	Status       Status               `json:"status" example:"ready"`
	Message      string               `json:"message,omitempty"`
}

type AssetResolver interface {
	Resolve(code string) (domain.CurrencyAsset, error)
}

// Presenter turns session state into display strings.
type Presenter struct {
	formatter *Formatter
	assets    AssetResolver
}

func (p *Presenter) Present(state State) View {
	view := View{
		SessionID:   state.ID.String(),
		Source:      p.asset(state.Source),
		Target:      p.asset(state.Target),
		InputAmount: state.InputAmount,
		InputText:   p.formatter.FormatNumber(state.InputAmount),
		OutputText:  p.formatter.FormatAmount(0),
	}

	if state.RateValid {
		rate := state.Rate
		view.Rate = &rate
		view.RateText = p.formatter.FormatRate(state.Source, rate, state.Target)
		view.OutputAmount = state.OutputAmount
		view.OutputText = p.formatter.FormatAmount(state.OutputAmount)
	}

	switch {
	case state.Fetching:
		view.Status, view.Message = StatusFetching, msgFetching
	case state.Err != nil:
		view.Status, view.Message = StatusError, ErrorMessage(state.Err)
	case state.RateValid:
		view.Status = StatusReady
	default:
		view.Status, view.Message = StatusNoRate, msgNoRate
	}
	return view
}

// asset resolution failures are not fatal, the code alone is still rendered
func (p *Presenter) asset(code string) domain.CurrencyAsset {
	if p.assets == nil {
		return domain.CurrencyAsset{Code: code}
	}
	asset, err := p.assets.Resolve(code)
	if err != nil {
		return domain.CurrencyAsset{Code: code}
	}
	return asset
}

// ErrorMessage maps a conversion failure to the text shown to the user.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return msgInvalidAmount
	case errors.Is(err, domain.ErrOffline):
		return msgOffline
	case errors.Is(err, domain.ErrServiceError):
		return msgServiceError
	default:
		return err.Error()
	}
}

func NewPresenter(formatter *Formatter, assets AssetResolver) *Presenter {
	if formatter == nil {
		formatter = defaultFormatter
	}
	return &Presenter{formatter: formatter, assets: assets}
}
