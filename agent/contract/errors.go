package contract

import "errors"

var (
	ErrGateway      = errors.New("gateway request failed")
	ErrNoFixedPrice = errors.New("no fixed price available")
	ErrValidation   = errors.New("validation failed")
)
