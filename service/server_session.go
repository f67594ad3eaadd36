package service

import (
	"fmt"
	"log"
	"net"

	"github.com/google/uuid"

	"payroll-backend/encryption"
	"payroll-backend/models"
	"payroll-backend/protocol"
	"payroll-backend/storage"
)

// ServerSession drives the server half of one connection: the one-time
// public key exchange, then the read-dispatch-send loop until a quit
// instruction or a transport failure. A server process serves exactly one
// session and does not re-accept afterwards.
type ServerSession struct {
	id     uuid.UUID
	conn   *protocol.FrameConn
	store  storage.EmployeeStore
	logger *log.Logger
	stats  *SessionStats
}

func NewServerSession(conn net.Conn, store storage.EmployeeStore, logger *log.Logger) *ServerSession {
	return &ServerSession{
		id:     uuid.New(),
		conn:   protocol.NewFrameConn(conn),
		store:  store,
		logger: logger,
		stats:  NewSessionStats(),
	}
}

// Run blocks until the session ends. A returned error means the session
// died on a setup or transport failure; nil means the client quit cleanly.
func (s *ServerSession) Run() error {
	defer s.logger.Printf("session %s: %s", s.id, s.stats.Summary())

	s.logger.Printf("session %s: waiting for public key announcement", s.id)
	publicKey, err := s.exchangeKey()
	if err != nil {
		return err
	}
	s.logger.Printf("session %s: public key rebuilt", s.id)

	dispatcher := NewDispatcher(s.store, publicKey, s.logger, s.stats)
	for {
		raw, err := s.conn.ReadFrame()
		if err != nil {
			return fmt.Errorf("session %s: %v", s.id, err)
		}

		result, quit := dispatcher.Dispatch(raw)
		s.sendResult(result)
		if quit {
			s.logger.Printf("session %s: quit", s.id)
			return nil
		}
	}
}

// exchangeKey reads the announcement frame and rebuilds the public-only key
// view. No instruction is accepted before this completes, and any failure
// here is fatal: without a valid modulus there is no crypto context to
// operate under.
func (s *ServerSession) exchangeKey() (*encryption.RemotePublicKey, error) {
	raw, err := s.conn.ReadFrame()
	if err != nil {
		return nil, fmt.Errorf("failed to receive public key announcement: %v", err)
	}

	var announcement protocol.PublicKeyAnnouncement
	if err := protocol.DecodeFrame(raw, &announcement); err != nil {
		return nil, fmt.Errorf("failed to parse public key announcement: %v", err)
	}

	publicKey, err := encryption.RebuildPublicKey(announcement.N)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild public key: %v", err)
	}
	return publicKey, nil
}

// sendResult delivers one result, falling back to a single degraded code-3
// attempt when the real result cannot be sent. If that also fails the
// failure goes unreported and the next read will surface the broken
// transport.
func (s *ServerSession) sendResult(result protocol.Result) {
	if err := s.conn.WriteFrame(result); err == nil {
		return
	}

	s.logger.Printf("session %s: failed to send result, sending degraded notice", s.id)
	s.stats.RecordFailure(models.ResultSendFailed)
	degraded := protocol.Result{Code: models.ResultSendFailed.Wire()}
	if err := s.conn.WriteFrame(degraded); err != nil {
		s.logger.Printf("session %s: degraded notice lost: %v", s.id, err)
	}
}
