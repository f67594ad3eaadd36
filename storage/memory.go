package storage

import (
	"fmt"
	"math/big"
	"sync"

	"payroll-backend/models"
)

// MemoryStore keeps the employee table in process memory. It backs tests
// and the server's -memory mode, and mirrors the MySQL store's semantics:
// sequential ids, insert-only records, numeric ordering with the lower id
// winning ties.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[int64]*models.EmployeeRecord
	nextID  int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[int64]*models.EmployeeRecord),
		nextID:  1,
	}
}

func (s *MemoryStore) Setup() error {
	return nil
}

func (s *MemoryStore) TableNames() ([]string, error) {
	return []string{"Employees"}, nil
}

func (s *MemoryStore) InsertEmployee(additiveCiphertext, orderCiphertext string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[s.nextID] = &models.EmployeeRecord{
		ID:                 s.nextID,
		AdditiveCiphertext: additiveCiphertext,
		OrderCiphertext:    orderCiphertext,
	}
	s.nextID++
	return nil
}

func (s *MemoryStore) GetEmployee(id int64) (*models.EmployeeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (s *MemoryStore) HigherOrderOf(id1, id2 int64) (int64, error) {
	first, err := s.GetEmployee(id1)
	if err != nil {
		return 0, err
	}
	second, err := s.GetEmployee(id2)
	if err != nil {
		return 0, err
	}

	a, ok := new(big.Int).SetString(first.OrderCiphertext, 10)
	if !ok {
		return 0, fmt.Errorf("corrupt order ciphertext for employee %d", id1)
	}
	b, ok := new(big.Int).SetString(second.OrderCiphertext, 10)
	if !ok {
		return 0, fmt.Errorf("corrupt order ciphertext for employee %d", id2)
	}

	switch a.Cmp(b) {
	case 1:
		return id1, nil
	case -1:
		return id2, nil
	}
	// equal ciphertexts: lower id wins
	if id1 < id2 {
		return id1, nil
	}
	return id2, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
