package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"

	"payroll-backend/models"
)

// MySQLStore backs the employee table with MySQL. Statements run in
// autocommit mode, so each insert is durable before the next read.
type MySQLStore struct {
	db     *sql.DB
	logger *log.Logger
}

// NewMySQLStore opens and pings a MySQL connection from a DSN of the form
// user:password@tcp(host:port)/database.
func NewMySQLStore(dsn string, logger *log.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	return &MySQLStore{db: db, logger: logger}, nil
}

func (s *MySQLStore) Setup() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS Employees (
		id INT AUTO_INCREMENT PRIMARY KEY,
		phe_salary TEXT,
		ope_salary TEXT)`)
	if err != nil {
		return fmt.Errorf("failed to create Employees table: %v", err)
	}

	s.logger.Println("Employees table ready")
	return nil
}

func (s *MySQLStore) TableNames() ([]string, error) {
	rows, err := s.db.Query("SHOW TABLES")
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *MySQLStore) InsertEmployee(additiveCiphertext, orderCiphertext string) error {
	_, err := s.db.Exec(
		"INSERT INTO Employees (phe_salary, ope_salary) VALUES (?, ?)",
		additiveCiphertext, orderCiphertext,
	)
	if err != nil {
		return fmt.Errorf("failed to insert employee: %v", err)
	}
	return nil
}

func (s *MySQLStore) GetEmployee(id int64) (*models.EmployeeRecord, error) {
	var record models.EmployeeRecord
	err := s.db.QueryRow(
		"SELECT id, phe_salary, ope_salary FROM Employees WHERE id = ?", id,
	).Scan(&record.ID, &record.AdditiveCiphertext, &record.OrderCiphertext)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employee %d: %v", id, err)
	}
	return &record, nil
}

// HigherOrderOf orders the decimal TEXT column numerically: the ciphertexts
// are non-negative decimals without leading zeros, so a longer string is a
// larger number and equal-length strings compare lexicographically.
func (s *MySQLStore) HigherOrderOf(id1, id2 int64) (int64, error) {
	rows, err := s.db.Query(
		`SELECT id FROM Employees WHERE id IN (?, ?)
		 ORDER BY LENGTH(ope_salary) DESC, ope_salary DESC, id ASC`,
		id1, id2,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to compare employees %d and %d: %v", id1, id2, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to scan employee id: %v", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	want := 2
	if id1 == id2 {
		want = 1
	}
	if len(ids) < want {
		return 0, ErrNotFound
	}
	return ids[0], nil
}

func (s *MySQLStore) Close() error {
	return s.db.Close()
}
