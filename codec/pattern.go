// Package codec converts between time.Time and the Joda/Java date patterns
// used by date, time and timestamp matching rules (e.g. "yyyy-MM-dd'T'HH:mm:ss").
// The pattern itself is passed through to the verifier unchanged.
package codec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vjeantet/jodaTime"
)

// Default patterns for the date, time and datetime constructors.
const (
	DatePattern     = "yyyy-MM-dd"
	TimePattern     = "HH:mm:ss"
	DatetimePattern = "yyyy-MM-dd'T'HH:mm:ss"
)

// ErrUnsupportedPattern reports a pattern that cannot be formatted at all:
// an empty pattern or an unterminated quoted literal.
var ErrUnsupportedPattern = errors.New("codec: unsupported date pattern")

// Pattern is a checked date/time pattern.
type Pattern struct {
	src string
}

// Compile checks pattern. Letters are not validated; unknown ones are left
// for the verifier.
func Compile(pattern string) (Pattern, error) {
	if pattern == "" {
		return Pattern{}, fmt.Errorf("%w: empty pattern", ErrUnsupportedPattern)
	}
	if strings.Count(pattern, "'")%2 != 0 {
		return Pattern{}, fmt.Errorf("%w: unterminated quote in %q", ErrUnsupportedPattern, pattern)
	}
	return Pattern{src: pattern}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string) Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source pattern.
func (p Pattern) String() string { return p.src }

// Format renders t.
func (p Pattern) Format(t time.Time) string { return jodaTime.Format(p.src, t) }

// Parse reads s according to the pattern.
func (p Pattern) Parse(s string) (time.Time, error) { return jodaTime.Parse(p.src, s) }

// Format compiles pattern and renders t.
func Format(pattern string, t time.Time) (string, error) {
	p, err := Compile(pattern)
	if err != nil {
		return "", err
	}
	return p.Format(t), nil
}

// Parse compiles pattern and reads s.
func Parse(pattern, s string) (time.Time, error) {
	p, err := Compile(pattern)
	if err != nil {
		return time.Time{}, err
	}
	return p.Parse(s)
}
