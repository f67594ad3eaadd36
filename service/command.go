package service

import (
	"math/big"

	"payroll-backend/models"
)

// Command is one operator request before encryption: the instruction code
// plus whichever inputs that code needs. Salary stays plaintext only inside
// the client process; the session encrypts it before anything is sent.
type Command struct {
	Code   models.InstructionCode
	Salary *big.Int // ADD only
	ID1    int64    // COMPARE and SUM
	ID2    int64
}

// CommandSource yields the next operator command. The interactive stdin
// implementation lives in cmd/client; tests use scripted sources. Next
// returns io.EOF when the operator input is exhausted, which the session
// treats as a quit.
type CommandSource interface {
	Next() (Command, error)
}
