package apperr

import "errors"

// Sentinel errors for the ledger domain. Callers classify with errors.Is;
// the originating layer wraps these with fmt.Errorf("%w: ...") for context.
var (
	ErrNotFound              = errors.New("record not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrInsufficientSupply    = errors.New("not enough supplies available")
	ErrCorruption            = errors.New("supply quantity exceeds purchased amount")
	ErrStorageFailure        = errors.New("storage failure")
)
