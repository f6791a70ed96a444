package board

import "errors"

// Sentinel errors returned by the parsers in this package. Callers should
// test for them with errors.Is.
var (
	// ErrInvalidFEN indicates a malformed position string.
	ErrInvalidFEN = errors.New("invalid FEN")

	// ErrInvalidSquare indicates malformed algebraic square notation.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidMove indicates malformed coordinate move notation.
	ErrInvalidMove = errors.New("invalid move")

	// ErrInvalidSAN indicates SAN text that matches no legal move.
	ErrInvalidSAN = errors.New("invalid SAN move")
)
