package domain

import "errors"

var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrOffline       = errors.New("no network connectivity")
	ErrServiceError  = errors.New("rate service error")
	ErrStaleRate     = errors.New("rate response no longer matches selected currencies")

	ErrSessionNotFound  = errors.New("session not found")
	ErrCurrencyNotFound = errors.New("currency not found")
	ErrUnknownRole      = errors.New("unknown currency role")
)
