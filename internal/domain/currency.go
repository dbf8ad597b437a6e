package domain

import "fmt"

type Currency struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	FlagKey string `json:"flag_key"`
}

// Role tells which side of a conversion a currency selection applies to.
type Role string

const (
	RoleSource Role = "source"
	RoleTarget Role = "target"
)

func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleSource, RoleTarget:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, raw)
	}
}

// CurrencyAsset is what the UI needs to render one side of the converter.
type CurrencyAsset struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	FlagKey string `json:"flag_key"`
	FlagURL string `json:"flag_url"`
}
