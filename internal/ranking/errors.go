package ranking

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is wrapped by every validation failure of the engine.
var ErrInvalidParameter = errors.New("invalid parameter")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
