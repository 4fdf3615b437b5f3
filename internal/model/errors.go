package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrFileNotFound = errors.New("file not found")
	ErrParse        = errors.New("parse error")
	ErrRender       = errors.New("render error")
	ErrConfig       = errors.New("invalid config")
	ErrInternal     = errors.New("internal error")
)

// Kind is a coarse-grained categorization for errors.
type Kind string

const (
	KindFileNotFound Kind = "file_not_found"
	KindParse        Kind = "parse"
	KindRender       Kind = "render"
	KindConfig       Kind = "config"
	KindInternal     Kind = "internal"
)

var kindSentinels = map[Kind]error{
	KindFileNotFound: ErrFileNotFound,
	KindParse:        ErrParse,
	KindRender:       ErrRender,
	KindConfig:       ErrConfig,
	KindInternal:     ErrInternal,
}

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind Kind
	Path string // optional
	Line int    // optional, 1-based
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		if e.Line > 0 {
			base += fmt.Sprintf(" (%s:%d)", e.Path, e.Line)
		} else {
			base += fmt.Sprintf(" (%s)", e.Path)
		}
	} else if e.Line > 0 {
		base += fmt.Sprintf(" (line %d)", e.Line)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is match an OpError against the sentinel for its kind.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// NewError builds an OpError. Err may be nil.
func NewError(op string, kind Kind, err error) *OpError {
	return &OpError{Op: op, Kind: kind, Err: err}
}

// IsKind reports whether err (or anything it wraps) is an OpError of the given kind.
func IsKind(err error, kind Kind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
