package progression

import "errors"

// Error kinds returned by the engine. Details are attached with fmt.Errorf("%w: ...") so
// callers match with errors.Is.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotOwned         = errors.New("pokemon not owned")
	ErrOutOfStock       = errors.New("item out of stock")
	ErrInsufficientGold = errors.New("insufficient gold")
	ErrAlreadyChosen    = errors.New("starter already chosen")
	ErrCatalogExhausted = errors.New("catalog exhausted")

	// ErrPersistence marks commit failures not attributable to caller input.
	ErrPersistence = errors.New("persistence failure")
)
