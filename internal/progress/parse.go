package progress

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ActivePrefix marks an in-progress playlist status text,
// e.g. "Downloading 4 of 10".
const ActivePrefix = "Downloading"

// countOffset is where the downloaded count starts: len("Downloading ").
const countOffset = len(ActivePrefix) + 1

// ErrMalformed is wrapped by every ParseError.
var ErrMalformed = errors.New("malformed status text")

// ParseError describes status text that matches neither known format.
type ParseError struct {
	Text   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse status %q: %s: %v", e.Text, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse status %q: %s", e.Text, e.Reason)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformed}
	}
	return []error{ErrMalformed, e.Err}
}

// Counts is the structured form of a status text. Downloaded is zero for
// terminal texts, which only carry the total.
type Counts struct {
	Downloaded int
	Total      int
}

// IsActiveText reports whether text carries segment counts of a running playlist.
func IsActiveText(text string) bool {
	return strings.HasPrefix(text, ActivePrefix)
}

// ParseActive parses "Downloading <downloaded> of <total>".
// The downloaded count is read from a fixed offset up to the space before "of",
// the total from three bytes after "of" to the end of the text.
func ParseActive(text string) (Counts, error) {
	if !IsActiveText(text) {
		return Counts{}, &ParseError{Text: text, Reason: "missing " + ActivePrefix + " prefix"}
	}
	i := strings.Index(text, "of")
	if i < 0 {
		return Counts{}, &ParseError{Text: text, Reason: `missing "of" marker`}
	}
	if i-1 <= countOffset || i+3 > len(text) {
		return Counts{}, &ParseError{Text: text, Reason: "counts out of place"}
	}
	downloaded, err := strconv.Atoi(strings.TrimSpace(text[countOffset : i-1]))
	if err != nil {
		return Counts{}, &ParseError{Text: text, Reason: "downloaded count", Err: err}
	}
	total, err := strconv.Atoi(strings.TrimSpace(text[i+3:]))
	if err != nil {
		return Counts{}, &ParseError{Text: text, Reason: "total count", Err: err}
	}
	if downloaded < 0 || total < 0 {
		return Counts{}, &ParseError{Text: text, Reason: "negative count"}
	}
	return Counts{Downloaded: downloaded, Total: total}, nil
}

// ParseTerminal parses the parenthesized total of a finished job,
// e.g. "Files downloaded(10) with 1 fails".
func ParseTerminal(text string) (Counts, error) {
	open := strings.Index(text, "(")
	if open < 0 {
		return Counts{}, &ParseError{Text: text, Reason: `missing "("`}
	}
	closing := strings.Index(text, ")")
	if closing < open {
		return Counts{}, &ParseError{Text: text, Reason: `missing ")"`}
	}
	total, err := strconv.Atoi(strings.TrimSpace(text[open+1 : closing]))
	if err != nil {
		return Counts{}, &ParseError{Text: text, Reason: "total count", Err: err}
	}
	if total < 0 {
		return Counts{}, &ParseError{Text: text, Reason: "negative count"}
	}
	return Counts{Total: total}, nil
}
