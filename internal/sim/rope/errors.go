package rope

import (
	"errors"
	"fmt"

	"ropesim/internal/protocol"
)

var (
	ErrTooShort      = errors.New("rope needs at least a head and a tail")
	ErrNoPolicy      = errors.New("follow policy is required")
	ErrUnknownPolicy = errors.New("unknown follow policy")
)

// ConfigError rejects a rope before any simulation runs.
type ConfigError struct {
	Param string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config: %s=%v: %v", e.Param, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
func (e *ConfigError) Code() string  { return protocol.ErrConfig }
