package service

import (
	"errors"
	"fmt"
	"log"
	"math/big"
	"strconv"

	"payroll-backend/encryption"
	"payroll-backend/models"
	"payroll-backend/protocol"
	"payroll-backend/storage"
)

// Dispatcher routes one decoded instruction to its handler and converts the
// outcome into a wire result. It holds everything a handler needs: the
// store, the rebuilt public key and the session logger. It never holds
// decryption capability.
type Dispatcher struct {
	store     storage.EmployeeStore
	publicKey *encryption.RemotePublicKey
	logger    *log.Logger
	stats     *SessionStats
}

func NewDispatcher(store storage.EmployeeStore, publicKey *encryption.RemotePublicKey, logger *log.Logger, stats *SessionStats) *Dispatcher {
	return &Dispatcher{
		store:     store,
		publicKey: publicKey,
		logger:    logger,
		stats:     stats,
	}
}

// Dispatch processes one raw frame and returns the result to send plus
// whether this instruction ends the session. Every failure is absorbed here
// and expressed as a result code; nothing unwinds past this boundary.
func (d *Dispatcher) Dispatch(raw []byte) (protocol.Result, bool) {
	var instruction protocol.Instruction
	if err := protocol.DecodeFrame(raw, &instruction); err != nil {
		return d.failure(&DecodeFailure{Err: err}), false
	}
	if instruction.Code == "" {
		return d.failure(&DecodeFailure{Err: fmt.Errorf("instruction field is missing")}), false
	}

	data, err := d.execute(instruction)
	if err != nil {
		return d.failure(err), false
	}

	// execute succeeded, so the code is known to parse
	code, _ := models.ParseInstructionCode(instruction.Code)
	return protocol.Result{Code: models.ResultOK.Wire(), Data: data}, code == models.InstructionQuit
}

func (d *Dispatcher) execute(instruction protocol.Instruction) (any, error) {
	code, err := models.ParseInstructionCode(instruction.Code)
	if err != nil {
		return nil, &ExecFailure{Err: err}
	}

	switch code {
	case models.InstructionQuit:
		d.record(code)
		d.logger.Println("instruction received: quit")
		return "quit", nil
	case models.InstructionList:
		d.record(code)
		d.logger.Println("instruction received: show tables")
		return d.listTables()
	case models.InstructionAdd:
		d.record(code)
		d.logger.Println("instruction received: add a new employee")
		return d.addEmployee(instruction.Data)
	case models.InstructionCompare:
		d.record(code)
		d.logger.Println("instruction received: compare two salaries")
		return d.compareEmployees(instruction.Data)
	case models.InstructionSum:
		d.record(code)
		d.logger.Println("instruction received: sum two salaries")
		return d.sumSalaries(instruction.Data)
	}

	d.logger.Printf("wrong instruction value: %d", int(code))
	return nil, &SemanticFailure{Message: "wrong instruction value"}
}

func (d *Dispatcher) listTables() (any, error) {
	names, err := d.store.TableNames()
	if err != nil {
		return nil, &ExecFailure{Err: err}
	}
	return names, nil
}

func (d *Dispatcher) addEmployee(data map[string]string) (any, error) {
	additive, err := ciphertextField(data, protocol.FieldAdditiveSalary)
	if err != nil {
		return nil, &ExecFailure{Err: err}
	}
	order, err := ciphertextField(data, protocol.FieldOrderSalary)
	if err != nil {
		return nil, &ExecFailure{Err: err}
	}

	if err := d.store.InsertEmployee(additive.String(), order.String()); err != nil {
		return nil, &ExecFailure{Err: err}
	}
	return "OK", nil
}

func (d *Dispatcher) compareEmployees(data map[string]string) (any, error) {
	id1, id2, err := idFields(data)
	if err != nil {
		return nil, &ExecFailure{Err: err}
	}

	winner, err := d.store.HigherOrderOf(id1, id2)
	if err != nil {
		return nil, &ExecFailure{Err: err}
	}
	return fmt.Sprintf("Id %d has a higher value", winner), nil
}

func (d *Dispatcher) sumSalaries(data map[string]string) (any, error) {
	id1, id2, err := idFields(data)
	if err != nil {
		return nil, &ExecFailure{Err: err}
	}

	first, err := d.store.GetEmployee(id1)
	if err != nil {
		return nil, &ExecFailure{Err: err}
	}
	second, err := d.store.GetEmployee(id2)
	if err != nil {
		return nil, &ExecFailure{Err: err}
	}

	a, ok := new(big.Int).SetString(first.AdditiveCiphertext, 10)
	if !ok {
		return nil, &ExecFailure{Err: fmt.Errorf("corrupt additive ciphertext for employee %d", id1)}
	}
	b, ok := new(big.Int).SetString(second.AdditiveCiphertext, 10)
	if !ok {
		return nil, &ExecFailure{Err: fmt.Errorf("corrupt additive ciphertext for employee %d", id2)}
	}

	// the combined value stays encrypted; only the client can open it
	return d.publicKey.Combine(a, b).String(), nil
}

func (d *Dispatcher) failure(err error) protocol.Result {
	var semantic *SemanticFailure
	if errors.As(err, &semantic) {
		d.logger.Printf("instruction rejected: %v", err)
		d.stats.RecordFailure(models.ResultUnknownInstruction)
		return protocol.Result{Code: models.ResultUnknownInstruction.Wire(), Data: semantic.Message}
	}

	var decode *DecodeFailure
	if errors.As(err, &decode) {
		d.logger.Printf("failed to read instruction: %v", decode.Err)
		d.stats.RecordFailure(models.ResultReadFailed)
		return protocol.Result{Code: models.ResultReadFailed.Wire()}
	}

	d.logger.Printf("failed to execute instruction: %v", err)
	d.stats.RecordFailure(models.ResultExecFailed)
	return protocol.Result{Code: models.ResultExecFailed.Wire()}
}

func (d *Dispatcher) record(code models.InstructionCode) {
	d.stats.RecordInstruction(code)
}

func ciphertextField(data map[string]string, field string) (*big.Int, error) {
	raw, ok := data[field]
	if !ok || raw == "" {
		return nil, fmt.Errorf("payload field %s is missing", field)
	}
	value, ok := new(big.Int).SetString(raw, 10)
	if !ok || value.Sign() < 0 {
		return nil, fmt.Errorf("payload field %s is not a non-negative decimal", field)
	}
	return value, nil
}

func idFields(data map[string]string) (int64, int64, error) {
	id1, err := idField(data, protocol.FieldFirstID)
	if err != nil {
		return 0, 0, err
	}
	id2, err := idField(data, protocol.FieldSecondID)
	if err != nil {
		return 0, 0, err
	}
	return id1, id2, nil
}

func idField(data map[string]string, field string) (int64, error) {
	raw, ok := data[field]
	if !ok {
		return 0, fmt.Errorf("payload field %s is missing", field)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("payload field %s is not numeric: %v", field, err)
	}
	return id, nil
}
