package protocol

import (
	"fmt"
	"net"
)

// FrameConn exchanges bounded single-frame messages over a stream
// connection. Reads block with no timeout; an unresponsive peer stalls the
// session, which is an accepted limitation of the single-client design.
type FrameConn struct {
	conn net.Conn
	buf  [MaxFrameBytes]byte
}

func NewFrameConn(conn net.Conn) *FrameConn {
	return &FrameConn{conn: conn}
}

// ReadFrame performs a single read and returns its payload. The protocol
// assumes one write on the peer side arrives as exactly one read here.
func (f *FrameConn) ReadFrame() ([]byte, error) {
	n, err := f.conn.Read(f.buf[:])
	if err != nil {
		return nil, fmt.Errorf("failed to read frame: %v", err)
	}

	frame := make([]byte, n)
	copy(frame, f.buf[:n])
	return frame, nil
}

// WriteFrame encodes v and sends it as one frame.
func (f *FrameConn) WriteFrame(v any) error {
	data, err := EncodeFrame(v)
	if err != nil {
		return err
	}

	if _, err := f.conn.Write(data); err != nil {
		return fmt.Errorf("failed to write frame: %v", err)
	}
	return nil
}

func (f *FrameConn) Close() error {
	return f.conn.Close()
}

// RemoteAddr exposes the peer address for logging.
func (f *FrameConn) RemoteAddr() net.Addr {
	return f.conn.RemoteAddr()
}
