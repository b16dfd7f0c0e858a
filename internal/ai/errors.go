package ai

import "errors"

// Protocol violations: the controller broke the NextShot/ReportResult contract.
var (
	// ErrAlreadyShot is returned when a shot is reported as AlreadyShot.
	// Engines only ever return unresolved tiles, so this means the pending
	// target bookkeeping and the grid disagree.
	ErrAlreadyShot = errors.New("ai: shot reported as already taken")

	// ErrNoFreeTiles is returned by NextShot when every tile is resolved.
	ErrNoFreeTiles = errors.New("ai: no unresolved tiles left")

	// ErrUnexpectedShot is returned when a result arrives for a coordinate
	// other than the one most recently returned by NextShot.
	ErrUnexpectedShot = errors.New("ai: result for a shot that was not requested")

	// ErrGameOver is returned when the engine is used after a GameOver result.
	ErrGameOver = errors.New("ai: game is over")
)

// Internal faults: the engine's own state is inconsistent.
var (
	// ErrInvalidState is returned when the state machine holds an unmodeled value.
	ErrInvalidState = errors.New("ai: invalid state")

	// ErrTargetsExhausted is returned when a targeting state has no pending targets left.
	ErrTargetsExhausted = errors.New("ai: pending targets exhausted while targeting")

	// ErrStaleHistory is returned when the destroy walk cannot find the next
	// hit of the sunk ship in the hit history.
	ErrStaleHistory = errors.New("ai: hit history does not match destroyed ship")
)
