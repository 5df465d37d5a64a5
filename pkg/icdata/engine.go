package icdata

import (
	stderrors "errors"
	"fmt"

	"github.com/matzehuels/icview/pkg/errors"
	"github.com/matzehuels/icview/pkg/layout"
)

var engineCodes = []struct {
	sentinel error
	code     errors.Code
}{
	{layout.ErrSessionClosed, errors.ErrCodeSessionClosed},
	{layout.ErrCellNotFound, errors.ErrCodeCellNotFound},
	{layout.ErrLayerNotFound, errors.ErrCodeLayerNotFound},
	{layout.ErrLayerExists, errors.ErrCodeInvalidInput},
}

// engineError attaches an error code to an engine failure. The engine error
// stays the cause, so errors.Is against layout sentinels still matches.
// Failures that already carry a code are only annotated; anything else is
// reported as internal.
func engineError(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	for _, e := range engineCodes {
		if stderrors.Is(err, e.sentinel) {
			return errors.Wrap(e.code, err, "%s", msg)
		}
	}
	if errors.GetCode(err) != "" {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "%s", msg)
}
