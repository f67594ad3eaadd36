package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"math/big"
	"net"
	"os"
	"strconv"
	"strings"

	"payroll-backend/encryption"
	"payroll-backend/models"
	"payroll-backend/service"
)

type Config struct {
	Addr    string
	Port    int
	KeyBits int
}

func parseFlags() *Config {
	config := &Config{}

	flag.StringVar(&config.Addr, "addr", "127.0.0.1", "Server address")
	flag.IntVar(&config.Port, "port", 1337, "Server port")
	flag.IntVar(&config.KeyBits, "keybits", 2048, "Paillier modulus size in bits")

	flag.Parse()
	return config
}

const menu = `
Commands list:
    0 - Quit
    1 - Read database content
    2 - Add an employee to database
    3 - Compare two employees salaries
    4 - Get sum of two employees salaries
Command: `

// promptSource reads operator commands from the console. Any integer code
// passes through so the server's own semantic check answers unknown ones.
type promptSource struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPromptSource() *promptSource {
	return &promptSource{
		scanner: bufio.NewScanner(os.Stdin),
		out:     os.Stdout,
	}
}

func (p *promptSource) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

func (p *promptSource) readID(prompt string) (int64, error) {
	line, err := p.readLine(prompt)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("wrong input type: %q is not an id", line)
	}
	return id, nil
}

func (p *promptSource) Next() (service.Command, error) {
	line, err := p.readLine(menu)
	if err != nil {
		return service.Command{}, err
	}

	code, err := strconv.Atoi(line)
	if err != nil {
		return service.Command{}, fmt.Errorf("wrong input type: %q is not a command", line)
	}
	command := service.Command{Code: models.InstructionCode(code)}

	switch command.Code {
	case models.InstructionAdd:
		line, err := p.readLine("New employee's salary: ")
		if err != nil {
			return service.Command{}, err
		}
		salary, ok := new(big.Int).SetString(line, 10)
		if !ok || salary.Sign() < 0 {
			return service.Command{}, fmt.Errorf("salary must be a non-negative integer, got %q", line)
		}
		command.Salary = salary
	case models.InstructionCompare, models.InstructionSum:
		if command.ID1, err = p.readID("Employee 1: "); err != nil {
			return service.Command{}, err
		}
		if command.ID2, err = p.readID("Employee 2: "); err != nil {
			return service.Command{}, err
		}
	}

	return command, nil
}

func main() {
	logger := log.New(os.Stderr, "client ", log.LstdFlags)
	config := parseFlags()

	// keys exist before any network I/O; a generation failure aborts here
	logger.Println("generating keys")
	keys, err := encryption.GenerateKeyPair(config.KeyBits)
	if err != nil {
		logger.Fatalf("Failed to generate keys: %v", err)
	}
	logger.Printf("keys generated (order key %s)", keys.OrderKeyFingerprint())

	target := fmt.Sprintf("%s:%d", config.Addr, config.Port)
	conn, err := net.Dial("tcp", target)
	if err != nil {
		logger.Fatalf("Failed to connect to %s: %v", target, err)
	}
	defer conn.Close()
	logger.Printf("connected to %s", target)

	session := service.NewClientSession(conn, keys, newPromptSource(), os.Stdout, logger)
	if err := session.Run(); err != nil {
		logger.Fatalf("Session error: %v", err)
	}
	logger.Println("session ended")
}
