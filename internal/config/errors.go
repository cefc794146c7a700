package config

import "errors"

var (
	ErrInvalidArena       = errors.New("config: arena too small")
	ErrInvalidPhysics     = errors.New("config: invalid physics parameters")
	ErrInvalidRestitution = errors.New("config: restitution outside [0, 1]")
	ErrInvalidWall        = errors.New("config: invalid wall")
	ErrInvalidBody        = errors.New("config: invalid body")
	ErrInvalidScript      = errors.New("config: invalid script event")
)
