package card

import (
	"errors"
	"fmt"
)

//FailureKind identifies the stage of card generation that failed
type FailureKind int

//Card failure kinds
const (
	FailureAvatarFetch FailureKind = iota
	FailureAvatarDecode
	FailureDraw
	FailureEncode
)

func (k FailureKind) String() string {
	switch k {
	case FailureAvatarFetch:
		return "avatar fetch"
	case FailureAvatarDecode:
		return "avatar decode"
	case FailureDraw:
		return "draw"
	case FailureEncode:
		return "encode"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

//RenderError is returned when no card could be produced
type RenderError struct {
	Kind FailureKind
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("card render failed (%v): %v", e.Kind, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

//NewRenderError wraps err as a card failure of the given kind
func NewRenderError(kind FailureKind, err error) *RenderError {
	return &RenderError{Kind: kind, Err: err}
}

//IsFailure returns true iff err is a RenderError of the given kind
func IsFailure(err error, kind FailureKind) bool {
	var renderErr *RenderError
	return errors.As(err, &renderErr) && renderErr.Kind == kind
}
