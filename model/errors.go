package model

import (
	"errors"
	"fmt"
)

var (
	ErrQuantization = errors.New("quantization error")
	ErrPolyphony    = errors.New("polyphony error")
	ErrValue        = errors.New("value error")
	ErrContent      = errors.New("content error")
)

// QuantizationError is returned when timing data is missing or when an operation
// needs quantized input and doesn't get it.
type QuantizationError struct {
	Msg string
}

func (e *QuantizationError) Error() string        { return ErrQuantization.Error() + ": " + e.Msg }
func (e *QuantizationError) Is(target error) bool { return target == ErrQuantization }

// PolyphonyError is returned when an operation needs monophonic input.
type PolyphonyError struct {
	Msg string
}

func (e *PolyphonyError) Error() string        { return ErrPolyphony.Error() + ": " + e.Msg }
func (e *PolyphonyError) Is(target error) bool { return target == ErrPolyphony }

// ValueError covers out of range pitches, bad note names, durations that can't
// be expressed and corrupted carry notes.
type ValueError struct {
	Msg string
}

func (e *ValueError) Error() string        { return ErrValue.Error() + ": " + e.Msg }
func (e *ValueError) Is(target error) bool { return target == ErrValue }

// ContentError reports structural problems that would break an exporter, such
// as zero-length beats or measures.
type ContentError struct {
	Msg string
}

func (e *ContentError) Error() string        { return ErrContent.Error() + ": " + e.Msg }
func (e *ContentError) Is(target error) bool { return target == ErrContent }

func NewQuantizationError(format string, args ...any) error {
	return &QuantizationError{Msg: fmt.Sprintf(format, args...)}
}

func NewPolyphonyError(format string, args ...any) error {
	return &PolyphonyError{Msg: fmt.Sprintf(format, args...)}
}

func NewValueError(format string, args ...any) error {
	return &ValueError{Msg: fmt.Sprintf(format, args...)}
}

func NewContentError(format string, args ...any) error {
	return &ContentError{Msg: fmt.Sprintf(format, args...)}
}
