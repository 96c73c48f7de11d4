package domain

import "errors"

var (
	ErrPollNotFound  = errors.New("poll not found")
	ErrPollEnded     = errors.New("poll has ended")
	ErrInvalidOption = errors.New("invalid option for this poll")
)

// ValidationError marks malformed caller input so handlers can translate it
// to a 4xx response.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
