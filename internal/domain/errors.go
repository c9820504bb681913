package domain

import "github.com/pkg/errors"

// Error message constants shared by services and commands.
const (
	ErrMsgSizeNotPositive    = "combination size must be at least 1"
	ErrMsgEmptyCombination   = "combination has no items"
	ErrMsgDuplicateInCombo   = "combination references item %s more than once"
	ErrMsgDuplicateItemID    = "duplicate item id %s"
	ErrMsgNegativeStock      = "item %s has negative stock %d"
	ErrMsgItemsMissing       = "items no longer in inventory: %v"
	ErrMsgUnknownColumn      = "unknown column %q"
	ErrMsgEnumerationFailure = "Failed to fetch combinations. Please try again later."
)

var (
	// ErrInvalidArgument is returned when a caller violates an input contract.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInconsistentState is returned when a combination references items
	// that are no longer in the inventory it is committed against.
	ErrInconsistentState = errors.New("inconsistent state")

	// ErrCancelled marks an enumeration superseded by a newer request.
	// It is not a failure and must never be reported as an empty result.
	ErrCancelled = errors.New("enumeration cancelled")

	// ErrCatalogFormat is returned when a catalog file cannot be decoded.
	ErrCatalogFormat = errors.New("catalog format")
)

// InvalidArgumentf wraps ErrInvalidArgument with a formatted message.
func InvalidArgumentf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

// InconsistentStatef wraps ErrInconsistentState with a formatted message.
func InconsistentStatef(format string, args ...any) error {
	return errors.Wrapf(ErrInconsistentState, format, args...)
}

// CatalogFormatf wraps ErrCatalogFormat with a formatted message.
func CatalogFormatf(format string, args ...any) error {
	return errors.Wrapf(ErrCatalogFormat, format, args...)
}
