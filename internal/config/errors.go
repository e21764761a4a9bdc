package config

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks malformed command input: bad word lists, bad
// part-of-speech annotations, unsupported languages or modes. It is always
// fatal to the invocation and is reported before any case is processed.
var ErrConfiguration = errors.New("configuration error")

// Errorf returns an error wrapping ErrConfiguration.
func Errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
