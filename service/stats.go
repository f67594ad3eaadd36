package service

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"payroll-backend/models"
)

// SessionStats counts per-instruction activity for one session. The session
// controllers record into it and log the summary once at teardown.
type SessionStats struct {
	mu           sync.Mutex
	started      time.Time
	instructions map[models.InstructionCode]int
	failures     map[models.ResultCode]int
}

func NewSessionStats() *SessionStats {
	return &SessionStats{
		started:      time.Now(),
		instructions: make(map[models.InstructionCode]int),
		failures:     make(map[models.ResultCode]int),
	}
}

// RecordInstruction counts one dispatched instruction.
func (s *SessionStats) RecordInstruction(code models.InstructionCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instructions[code]++
}

// RecordFailure counts one non-success result.
func (s *SessionStats) RecordFailure(code models.ResultCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[code]++
}

// Summary renders one line for the session teardown log.
func (s *SessionStats) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	var parts []string
	for code, count := range s.instructions {
		total += count
		parts = append(parts, fmt.Sprintf("%s=%d", code, count))
	}
	sort.Strings(parts)

	failed := 0
	for _, count := range s.failures {
		failed += count
	}

	elapsed := time.Since(s.started).Round(time.Millisecond)
	if len(parts) == 0 {
		return fmt.Sprintf("0 instructions in %s", elapsed)
	}
	return fmt.Sprintf("%d instructions in %s (%s), %d failed",
		total, elapsed, strings.Join(parts, " "), failed)
}
