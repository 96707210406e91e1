package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownStorefront is fatal to a run: it is reported before any
// network activity takes place.
var ErrUnknownStorefront = errors.New("unknown storefront code(s)")

// StorefrontError marks a fetch that failed partway through a single
// storefront. Results accumulated before the failure are preserved and
// returned alongside it; the rest of the run continues.
type StorefrontError struct {
	Storefront string
	Err        error
}

func (e *StorefrontError) Error() string {
	return fmt.Sprintf("storefront %s: %v", e.Storefront, e.Err)
}

func (e *StorefrontError) Unwrap() error { return e.Err }
