package game

import "errors"

var (
	// ErrCatalogUnavailable is returned when a draw is requested before a
	// catalog has been loaded, or when the catalog has no cards.
	ErrCatalogUnavailable = errors.New("card catalog unavailable")

	// ErrEmptyPoolRecovered marks a pool that came out empty after filtering
	// and was replaced by the unweighted catalog. It is logged, never returned.
	ErrEmptyPoolRecovered = errors.New("draw pool empty after filtering, using full catalog")

	// ErrInvalidCard is returned when a card violates its operation's numeric
	// precondition, such as a zero divisor.
	ErrInvalidCard = errors.New("invalid card")

	// ErrInvalidSelection is returned when a selection is out of range, refers
	// to a stale draw, or is made while no game is being played.
	ErrInvalidSelection = errors.New("invalid selection")
)
