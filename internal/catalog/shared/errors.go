package shared

import (
	"fmt"

	"github.com/foliohq/folio/internal/platform/httpx"
)

// The catalog sentinels alias the httpx taxonomy so repository and service
// errors map straight onto problem responses without per-handler bridging.
var (
	ErrNotFound   = httpx.ErrNotFound
	ErrDuplicate  = httpx.ErrDuplicate
	ErrValidation = httpx.ErrValidation

	ErrInvalidID     = fmt.Errorf("%w: invalid ID", ErrValidation)
	ErrRequiredField = fmt.Errorf("%w: missing required field", ErrValidation)
)
