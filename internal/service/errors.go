package service

import "errors"

var (
	ErrBattleNotFound        = errors.New("battle not found")
	ErrBattleNotInProgress   = errors.New("battle is not in progress")
	ErrActionsLocked         = errors.New("actions are locked; resolving current turn")
	ErrPlayerNotInBattle     = errors.New("player not in battle")
	ErrActionAlreadyDeclared = errors.New("action already declared for this turn")
	ErrCaptureRequiresWild   = errors.New("capture is only allowed in wild battles")

	ErrPlayerNotFound   = errors.New("player not found")
	ErrCreatureNotFound = errors.New("creature not found")
	ErrNotOwner         = errors.New("creature is not owned by this player")
	ErrEmptyParty       = errors.New("party must contain at least one creature")
	ErrPartyTooLarge    = errors.New("party exceeds the six-creature limit")
)
