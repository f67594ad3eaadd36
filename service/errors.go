package service

import "fmt"

// Failure kinds produced while handling one instruction. Each kind maps to
// one wire result code; none of them unwinds the session loop. Only setup
// failures (key generation, key rebuild, transport establishment) are
// allowed to end a session, and those surface as plain errors from the
// session constructors and Run methods.

// DecodeFailure: the frame did not parse as an instruction mapping, or the
// instruction field is missing. Wire result 1.
type DecodeFailure struct {
	Err error
}

func (f *DecodeFailure) Error() string {
	return fmt.Sprintf("failed to decode instruction: %v", f.Err)
}

func (f *DecodeFailure) Unwrap() error {
	return f.Err
}

// ExecFailure: a well-formed instruction whose execution failed (store
// error, unknown id, malformed or non-numeric payload field). Wire result 2.
type ExecFailure struct {
	Err error
}

func (f *ExecFailure) Error() string {
	return fmt.Sprintf("failed to execute instruction: %v", f.Err)
}

func (f *ExecFailure) Unwrap() error {
	return f.Err
}

// SemanticFailure: a well-formed instruction with a code this server does
// not recognize. Wire result 21; the message is the only error detail that
// crosses the wire.
type SemanticFailure struct {
	Message string
}

func (f *SemanticFailure) Error() string {
	return f.Message
}
