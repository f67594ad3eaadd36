package service

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/big"
	"net"

	"github.com/google/uuid"

	"payroll-backend/encryption"
	"payroll-backend/models"
	"payroll-backend/protocol"
)

// ClientSession drives the client half of the protocol: it announces the
// public key once, then turns operator commands into instruction frames and
// blocks for exactly one result per instruction. Salaries are encrypted
// before leaving the process, and the SUM result is the only payload the
// session decrypts.
type ClientSession struct {
	id     uuid.UUID
	conn   *protocol.FrameConn
	keys   *encryption.KeyPair
	source CommandSource
	out    io.Writer
	logger *log.Logger
	stats  *SessionStats
}

func NewClientSession(conn net.Conn, keys *encryption.KeyPair, source CommandSource, out io.Writer, logger *log.Logger) *ClientSession {
	return &ClientSession{
		id:     uuid.New(),
		conn:   protocol.NewFrameConn(conn),
		keys:   keys,
		source: source,
		out:    out,
		logger: logger,
		stats:  NewSessionStats(),
	}
}

// Run blocks until the operator quits or the transport fails.
func (s *ClientSession) Run() error {
	defer s.logger.Printf("session %s: %s", s.id, s.stats.Summary())

	announcement := protocol.PublicKeyAnnouncement{N: s.keys.PublicView()}
	if err := s.conn.WriteFrame(announcement); err != nil {
		return fmt.Errorf("failed to send public key: %v", err)
	}
	s.logger.Printf("session %s: public key sent", s.id)

	for {
		command, err := s.source.Next()
		if errors.Is(err, io.EOF) {
			command = Command{Code: models.InstructionQuit}
		} else if err != nil {
			s.logger.Printf("failed to read command: %v", err)
			continue
		}

		instruction, err := s.buildInstruction(command)
		if err != nil {
			s.logger.Printf("failed to build instruction: %v", err)
			continue
		}
		s.stats.RecordInstruction(command.Code)

		if err := s.conn.WriteFrame(instruction); err != nil {
			return fmt.Errorf("session %s: %v", s.id, err)
		}

		raw, err := s.conn.ReadFrame()
		if err != nil {
			return fmt.Errorf("session %s: %v", s.id, err)
		}
		s.handleResult(command, raw)

		if command.Code == models.InstructionQuit {
			return nil
		}
	}
}

// buildInstruction encrypts whatever the command needs and assembles the
// wire payload. No plaintext salary ever reaches the frame.
func (s *ClientSession) buildInstruction(command Command) (protocol.Instruction, error) {
	instruction := protocol.Instruction{Code: command.Code.Wire()}

	switch command.Code {
	case models.InstructionQuit, models.InstructionList:
		// no payload
	case models.InstructionAdd:
		if command.Salary == nil {
			return instruction, fmt.Errorf("add command carries no salary")
		}
		value, err := s.keys.EncryptValue(command.Salary)
		if err != nil {
			return instruction, err
		}
		instruction.Data = map[string]string{
			protocol.FieldAdditiveSalary: value.Additive.String(),
			protocol.FieldOrderSalary:    value.Order.String(),
		}
	case models.InstructionCompare, models.InstructionSum:
		instruction.Data = map[string]string{
			protocol.FieldFirstID:  fmt.Sprintf("%d", command.ID1),
			protocol.FieldSecondID: fmt.Sprintf("%d", command.ID2),
		}
	default:
		// sent as-is so the server can answer with its semantic error
	}

	return instruction, nil
}

// handleResult decodes one result frame and either prints the payload or
// logs which failure class the server reported. Only the SUM payload is
// decrypted; everything else is displayed verbatim.
func (s *ClientSession) handleResult(command Command, raw []byte) {
	var result protocol.Result
	if err := protocol.DecodeFrame(raw, &result); err != nil {
		s.logger.Printf("failed to read result: %v", err)
		return
	}

	code, err := models.ParseResultCode(result.Code)
	if err != nil {
		s.logger.Printf("unreadable result code: %v", err)
		return
	}

	switch code {
	case models.ResultOK:
		s.display(command, result.Data)
	case models.ResultReadFailed:
		s.stats.RecordFailure(code)
		s.logger.Println("server failed to read instruction")
	case models.ResultExecFailed:
		s.stats.RecordFailure(code)
		s.logger.Println("server failed to execute instruction")
	case models.ResultSendFailed:
		s.stats.RecordFailure(code)
		s.logger.Println("server failed to send result")
	case models.ResultUnknownInstruction:
		s.stats.RecordFailure(code)
		s.logger.Printf("server error: %v", result.Data)
	default:
		s.logger.Printf("unknown result code: %d", int(code))
	}
}

func (s *ClientSession) display(command Command, data any) {
	if command.Code != models.InstructionSum {
		fmt.Fprintf(s.out, "%v\n", data)
		return
	}

	ciphertext, ok := data.(string)
	if !ok {
		s.logger.Printf("sum result is not a ciphertext string: %v", data)
		return
	}
	combined, ok := new(big.Int).SetString(ciphertext, 10)
	if !ok {
		s.logger.Printf("sum result is not a decimal ciphertext: %q", ciphertext)
		return
	}

	sum, err := s.keys.DecryptAdditive(combined)
	if err != nil {
		s.logger.Printf("failed to decrypt sum: %v", err)
		return
	}
	fmt.Fprintf(s.out, "%s\n", sum)
}
