package ai

import (
	"context"
	"errors"
)

// ErrDisabled is returned by the Disabled provider on every call.
var ErrDisabled = errors.New("completion provider disabled: no API key configured")

// Disabled is a provider used when no API key is configured. Every call
// fails, which routes generation onto the fallback template.
type Disabled struct{}

func NewDisabled() *Disabled {
	return &Disabled{}
}

func (d *Disabled) Complete(_ context.Context, _ Request) (string, error) {
	return "", ErrDisabled
}
