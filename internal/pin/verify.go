package pin

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrIncomplete = errors.New("pin incomplete")
	ErrIncorrect  = errors.New("pin incorrect")
)

// Message returns the on-screen text for a verification error.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrIncomplete):
		return "Please complete the PIN"
	case errors.Is(err, ErrIncorrect):
		return "Incorrect PIN"
	default:
		return "PIN check failed"
	}
}

// Verifier decides whether a complete PIN is correct.
type Verifier interface {
	Verify(pin string) error
}

type literal struct {
	want []byte
}

// Literal verifies against a plain PIN string.
func Literal(want string) Verifier {
	return literal{want: []byte(want)}
}

func (l literal) Verify(pin string) error {
	if subtle.ConstantTimeCompare([]byte(pin), l.want) != 1 {
		return ErrIncorrect
	}
	return nil
}

type hashed struct {
	hash []byte
}

// Hashed verifies against a bcrypt hash produced by HashPIN.
func Hashed(hash string) Verifier {
	return hashed{hash: []byte(hash)}
}

func (h hashed) Verify(pin string) error {
	err := bcrypt.CompareHashAndPassword(h.hash, []byte(pin))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrIncorrect
	}
	if err != nil {
		return fmt.Errorf("compare pin hash: %w", err)
	}
	return nil
}

// HashPIN returns a bcrypt hash of pin suitable for Hashed.
func HashPIN(pin string) (string, error) {
	if len(Digits(pin)) != len(pin) || pin == "" {
		return "", fmt.Errorf("pin must be digits only")
	}
	out, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}
	return string(out), nil
}

// Check verifies c with v. Incomplete codes never reach the verifier.
func Check(v Verifier, c *Code) error {
	if !c.Complete() {
		return ErrIncomplete
	}
	return v.Verify(c.String())
}

// Mask renders the slots of c, replacing digits with mask and empty slots
// with a space. A zero mask shows digits as typed.
func Mask(c *Code, mask rune) []string {
	out := make([]string, c.Len())
	for i := range out {
		r, ok := c.At(i)
		switch {
		case !ok:
			out[i] = " "
		case mask != 0:
			out[i] = string(mask)
		default:
			out[i] = string(r)
		}
	}
	return out
}

// Redacted shows which slots are filled without exposing digits.
func Redacted(c *Code) string {
	return strings.Join(Mask(c, '•'), "")
}
