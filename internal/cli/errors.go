package cli

import (
	"errors"

	"github.com/fdg312/culinary-hub/internal/auth"
)

// userError carries a message meant for the person at the terminal while
// keeping the cause for errors.Is and --verbose logging.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

func failed(action string, err error) error {
	return &userError{msg: action + " failed. Please try again.", err: err}
}

func authMessage(err error) error {
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		return &userError{msg: "No account found with this email.", err: err}
	case errors.Is(err, auth.ErrWrongPassword):
		return &userError{msg: "Incorrect password. Please try again.", err: err}
	case errors.Is(err, auth.ErrEmailTaken):
		return &userError{msg: "An account with this email already exists.", err: err}
	default:
		return err
	}
}
