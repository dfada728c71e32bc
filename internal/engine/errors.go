package engine

import "errors"

// Rejection sentinels. Every rejected action leaves the game state
// untouched; callers match with errors.Is.
var (
	ErrWrongPhase  = errors.New("action not valid in this phase")
	ErrNotYourTurn = errors.New("not your turn")
	ErrIllegalBid  = errors.New("illegal bid")
	ErrForcedBid   = errors.New("last active seat must bid")
	ErrIllegalCard = errors.New("illegal card")
	ErrBadAction   = errors.New("invalid action")
)
