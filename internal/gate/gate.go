// Package gate checks fixed-length numeric codes.
package gate

import (
	"crypto/subtle"
	"errors"
	"fmt"
)

// ErrBadSecret is returned by New for an empty or non-numeric secret.
var ErrBadSecret = errors.New("gate: secret must be a non-empty digit string")

// Result is the outcome of a submission.
type Result struct {
	Accepted bool
	// Message is the retry prompt shown after a rejection.
	Message string
}

// Rejected reports whether the submission failed.
func (r Result) Rejected() bool { return !r.Accepted }

// Gate holds one secret. Submissions never mutate it.
type Gate struct {
	secret string
	reject string
}

// New creates a Gate. reject is the message returned with every rejection.
func New(secret, reject string) (Gate, error) {
	if !Digits(secret) {
		return Gate{}, fmt.Errorf("%w: %q", ErrBadSecret, secret)
	}
	return Gate{secret: secret, reject: reject}, nil
}

// Len is the number of digits a submission must have.
func (g Gate) Len() int { return len(g.secret) }

// Submit checks digits against the secret. Input of the wrong length or with
// non-digit characters is rejected like a wrong code.
func (g Gate) Submit(digits string) Result {
	if g.secret == "" || len(digits) != len(g.secret) || !Digits(digits) {
		return Result{Message: g.reject}
	}
	if subtle.ConstantTimeCompare([]byte(digits), []byte(g.secret)) != 1 {
		return Result{Message: g.reject}
	}
	return Result{Accepted: true}
}

// Digits reports whether s is a non-empty string of ASCII digits.
func Digits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
