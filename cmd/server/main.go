package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strings"

	"golang.org/x/term"

	"payroll-backend/service"
	"payroll-backend/storage"
)

type Config struct {
	Port   int
	DBHost string
	DBName string
	Memory bool
}

func parseFlags() *Config {
	config := &Config{}

	flag.IntVar(&config.Port, "port", 1337, "Listening port")
	flag.StringVar(&config.DBHost, "dbhost", "127.0.0.1:3306", "MySQL host:port")
	flag.StringVar(&config.DBName, "dbname", "db_security", "MySQL database name")
	flag.BoolVar(&config.Memory, "memory", false, "Use an in-memory store instead of MySQL")

	flag.Parse()
	return config
}

// readCredentials prompts for the MySQL user and password on the operator
// console. The password is not echoed when stdin is a terminal.
func readCredentials() (string, string, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("DB user: ")
	user, err := reader.ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("failed to read DB user: %v", err)
	}
	user = strings.TrimSpace(user)

	fmt.Print("DB password: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", "", fmt.Errorf("failed to read DB password: %v", err)
		}
		return user, string(secret), nil
	}

	password, err := reader.ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("failed to read DB password: %v", err)
	}
	return user, strings.TrimSpace(password), nil
}

func setupStore(config *Config, logger *log.Logger) (storage.EmployeeStore, error) {
	if config.Memory {
		logger.Println("using in-memory store")
		return storage.NewMemoryStore(), nil
	}

	user, password, err := readCredentials()
	if err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s", user, password, config.DBHost, config.DBName)
	logger.Printf("connecting to MySQL on %s as %s", config.DBHost, user)
	return storage.NewMySQLStore(dsn, logger)
}

func main() {
	logger := log.New(os.Stderr, "server ", log.LstdFlags)
	config := parseFlags()

	store, err := setupStore(config, logger)
	if err != nil {
		logger.Fatalf("Failed to set up store: %v", err)
	}
	defer store.Close()

	if err := store.Setup(); err != nil {
		logger.Fatalf("Failed to prepare store: %v", err)
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%d", config.Port))
	if err != nil {
		logger.Fatalf("Failed to listen on port %d: %v", config.Port, err)
	}
	defer listener.Close()
	logger.Printf("listening on 0.0.0.0:%d", config.Port)

	// one connection for the whole process lifetime; no re-accept
	conn, err := listener.Accept()
	if err != nil {
		logger.Fatalf("Failed to accept connection: %v", err)
	}
	defer conn.Close()
	logger.Printf("connection accepted from %s", conn.RemoteAddr())

	session := service.NewServerSession(conn, store, logger)
	if err := session.Run(); err != nil {
		logger.Fatalf("Session error: %v", err)
	}
	logger.Println("session ended")
}
