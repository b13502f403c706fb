package core

import (
	"errors"
	"fmt"
)

// Parse failure taxonomy - centralized error definitions.
//
// Low-confidence scoring results are never errors: scorers report them as
// "not found" sentinels and the orchestrator translates an exhausted strategy
// chain into one of these. Only genuinely exceptional conditions (malformed
// source bytes, I/O failure) abort a parse attempt.
var (
	// ErrFileUnreadable means the source could not be opened or parsed as a
	// spreadsheet at all.
	ErrFileUnreadable = errors.New("source is not readable as a spreadsheet")

	// ErrNoSuitableSheet means no worksheet produced a header-like row above
	// the confidence threshold during sheet selection.
	ErrNoSuitableSheet = errors.New("no suitable worksheet found")

	// ErrHeaderNotFound means every header-scoring strategy failed to clear
	// its confidence threshold on the chosen sheet.
	ErrHeaderNotFound = errors.New("header row not found")
)

// Error constructors with context
func NewFileUnreadableError(cause error) error {
	return fmt.Errorf("%w: %v", ErrFileUnreadable, cause)
}

func NewSheetReadError(sheet string, cause error) error {
	return fmt.Errorf("%w: sheet %q: %v", ErrNoSuitableSheet, sheet, cause)
}

// Error checking helpers
func IsFileUnreadable(err error) bool {
	return errors.Is(err, ErrFileUnreadable)
}

func IsNoSuitableSheet(err error) bool {
	return errors.Is(err, ErrNoSuitableSheet)
}

func IsHeaderNotFound(err error) bool {
	return errors.Is(err, ErrHeaderNotFound)
}
