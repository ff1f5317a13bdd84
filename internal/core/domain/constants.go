package domain

import "errors"

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrMissingIdentity    = errors.New("missing identity")
	ErrHandleTooShort     = errors.New("handle too short")
	ErrHandleTaken        = errors.New("handle already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrOwnerRoleLocked    = errors.New("owner role can not be changed")
	ErrStorage            = errors.New("storage error")
	ErrMissingArgument    = errors.New("missing argument")
)

// MinHandleLength is the shortest handle a user can register, in runes.
const MinHandleLength = 3
