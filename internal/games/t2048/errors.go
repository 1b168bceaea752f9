package t2048

import "errors"

// Engine errors. All of them signal a broken caller contract rather than a
// normal game condition: swiping into a wall is never an error.
var (
	// ErrOutOfBounds is returned when a position lies outside the board.
	ErrOutOfBounds = errors.New("t2048: position out of bounds")

	// ErrBoardFull is returned when a tile must be spawned on a full board.
	ErrBoardFull = errors.New("t2048: board is full")

	// ErrInvalidDirection is returned for direction values outside Up/Down/Left/Right.
	ErrInvalidDirection = errors.New("t2048: invalid direction")

	// ErrSessionOver is returned when a direction is applied to a won or lost session.
	ErrSessionOver = errors.New("t2048: session is over")

	// ErrInvalidConfig is returned by NewSession for unusable settings.
	ErrInvalidConfig = errors.New("t2048: invalid config")
)
