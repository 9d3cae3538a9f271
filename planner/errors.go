package planner

import "fmt"

// InvalidEncodeParameterError reports a rate-control, preset or thread value
// outside the domain accepted by the encoder.
type InvalidEncodeParameterError struct {
	Field    string
	Value    any
	Expected string
}

func (e *InvalidEncodeParameterError) Error() string {
	return fmt.Sprintf("invalid encode parameter %s=%v: expected %s", e.Field, e.Value, e.Expected)
}

// UnsupportedContainerForCopyError reports that a stream cannot be copied
// into the destination container as-is. It is recoverable: the planner
// re-encodes the stream instead and surfaces the error as a warning.
type UnsupportedContainerForCopyError struct {
	Stream    StreamKind
	Codec     string
	Container string
}

func (e *UnsupportedContainerForCopyError) Error() string {
	return fmt.Sprintf("%s codec %q cannot be stream-copied into %s; re-encoding %s",
		e.Stream, e.Codec, e.Container, e.Stream)
}
