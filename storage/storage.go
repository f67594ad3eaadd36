package storage

import (
	"errors"

	"payroll-backend/models"
)

// ErrNotFound reports a referenced employee id with no record behind it.
var ErrNotFound = errors.New("storage: employee not found")

// EmployeeStore is the CRUD surface the instruction handlers run against.
// The store only ever sees ciphertext columns; all writes are inserts and
// every insert is committed before any later read in the same session, so
// COMPARE and SUM observe records added earlier in the session.
type EmployeeStore interface {
	// Setup creates the Employees table when absent.
	Setup() error

	// TableNames lists the tables visible in the store.
	TableNames() ([]string, error)

	// InsertEmployee persists a new record; the store assigns the next
	// sequential id.
	InsertEmployee(additiveCiphertext, orderCiphertext string) error

	// GetEmployee fetches one record by id, or ErrNotFound.
	GetEmployee(id int64) (*models.EmployeeRecord, error)

	// HigherOrderOf returns the id whose order ciphertext is numerically
	// larger, comparing as arbitrary-precision integers. When the two
	// ciphertexts are equal the lower id wins. ErrNotFound when either id
	// has no record.
	HigherOrderOf(id1, id2 int64) (int64, error)

	Close() error
}
