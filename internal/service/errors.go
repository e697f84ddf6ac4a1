package service

import "errors"

// Business-rule sentinels. Controllers map these to HTTP statuses with
// errors.Is; everything else surfaces as an internal error.
var (
	ErrNotFound            = errors.New("not found")
	ErrUserExists          = errors.New("username already taken")
	ErrSelfRequest         = errors.New("cannot send a friend request to yourself")
	ErrRelationExists      = errors.New("relation already exists for this pair")
	ErrAlreadyInSession    = errors.New("pair is not available for a new session")
	ErrInvalidVoteSequence = errors.New("vote sequence shorter than or divergent from previous submission")
	ErrOracleUnavailable   = errors.New("recommendation oracle unavailable")
)
