package models

import (
	"fmt"
	"strconv"
)

// InstructionCode identifies the operation a client asks the server to run.
type InstructionCode int

const (
	InstructionQuit    InstructionCode = 0
	InstructionList    InstructionCode = 1
	InstructionAdd     InstructionCode = 2
	InstructionCompare InstructionCode = 3
	InstructionSum     InstructionCode = 4
)

func (c InstructionCode) String() string {
	switch c {
	case InstructionQuit:
		return "quit"
	case InstructionList:
		return "list tables"
	case InstructionAdd:
		return "add employee"
	case InstructionCompare:
		return "compare salaries"
	case InstructionSum:
		return "sum salaries"
	}
	return fmt.Sprintf("unknown(%d)", int(c))
}

// Wire returns the decimal string form used in frames.
func (c InstructionCode) Wire() string {
	return strconv.Itoa(int(c))
}

// ParseInstructionCode converts the wire form back into a code. Any integer
// parses; whether it names a known instruction is the dispatcher's decision.
func ParseInstructionCode(s string) (InstructionCode, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("non-numeric instruction code %q", s)
	}
	return InstructionCode(v), nil
}

// ResultCode classifies the outcome of one instruction round.
type ResultCode int

const (
	ResultOK                 ResultCode = 0
	ResultReadFailed         ResultCode = 1
	ResultExecFailed         ResultCode = 2
	ResultSendFailed         ResultCode = 3
	ResultUnknownInstruction ResultCode = 21
)

func (c ResultCode) Wire() string {
	return strconv.Itoa(int(c))
}

func ParseResultCode(s string) (ResultCode, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("non-numeric result code %q", s)
	}
	return ResultCode(v), nil
}
