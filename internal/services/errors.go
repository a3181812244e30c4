package services

import (
	"github.com/pkg/errors"
)

// Error taxonomy for the vote engine. Handlers map these to HTTP statuses
// with errors.Is; anything not in this list is an internal storage failure.
var (
	// ErrInvalidVoteValue: requested value outside {-1, 0, 1} or a malformed target.
	ErrInvalidVoteValue = errors.New("vote value must be -1, 0 or 1")

	// ErrNotFound: the target content or the vote record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSelfVote: the voter authored the target content.
	ErrSelfVote = errors.New("cannot vote on own content")

	// ErrVoteConflict: transaction contention on the same (voter, target)
	// pair; the caller may retry with the same value.
	ErrVoteConflict = errors.New("concurrent vote conflict")
)
