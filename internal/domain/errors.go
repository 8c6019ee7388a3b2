package domain

import "errors"

// Domain errors
var (
	ErrNameRequired       = errors.New("name required (letters A-Z only)")
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomFull           = errors.New("room is full (max 20)")
	ErrNameTaken          = errors.New("name already taken in this room")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrNotEnoughPlayers   = errors.New("need at least 3 players")
	ErrNotHost            = errors.New("only host can perform this action")
)
