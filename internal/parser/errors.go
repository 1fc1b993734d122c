package parser

import (
	"errors"
	"fmt"
)

// Parser error types
var (
	ErrLanguageLoad = errors.New("failed to load yaml grammar")
	ErrQueryCompile = errors.New("failed to compile query")
	ErrParse        = errors.New("failed to parse document")
)

// ParseError represents a syntax error reported by the grammar.
// Line and Column are 1-based.
type ParseError struct {
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// QueryError provides detailed information about a query that failed to compile
type QueryError struct {
	Name    string
	Row     uint
	Column  uint
	Message string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: query %q at %d:%d: %s", ErrQueryCompile, e.Name, e.Row+1, e.Column+1, e.Message)
}

func (e *QueryError) Unwrap() error {
	return ErrQueryCompile
}

// IsFatal reports whether err means the grammar or its queries are unusable.
// Such errors abort startup; they are never produced by a particular document.
func IsFatal(err error) bool {
	return errors.Is(err, ErrLanguageLoad) || errors.Is(err, ErrQueryCompile)
}
