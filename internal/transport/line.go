package transport

import (
	"bufio"
	"net"
	"time"
)

// writeTimeout bounds a single frame write so a stalled peer cannot wedge
// the writer goroutine forever.
const writeTimeout = 5 * time.Second

// lineFramer frames messages as newline-delimited text on a byte stream.
// Partial reads are buffered until a full line arrives; several frames in
// one read are split.
type lineFramer struct {
	nc net.Conn
	sc *bufio.Scanner
}

func newLineFramer(nc net.Conn) *lineFramer {
	sc := bufio.NewScanner(nc)
	sc.Buffer(make([]byte, 0, 4096), MaxFrameSize)
	return &lineFramer{nc: nc, sc: sc}
}

func (l *lineFramer) ReadFrame() ([]byte, error) {
	if !l.sc.Scan() {
		if err := l.sc.Err(); err != nil {
			return nil, err
		}
		return nil, ErrClosed
	}
	return append([]byte(nil), l.sc.Bytes()...), nil
}

func (l *lineFramer) WriteFrame(frame []byte) error {
	_ = l.nc.SetWriteDeadline(time.Now().Add(writeTimeout))
	buf := make([]byte, 0, len(frame)+1)
	buf = append(buf, frame...)
	buf = append(buf, '\n')
	_, err := l.nc.Write(buf)
	return err
}

func (l *lineFramer) Close() error { return l.nc.Close() }

func (l *lineFramer) RemoteAddr() net.Addr { return l.nc.RemoteAddr() }

// NewStreamConn wraps an established byte stream in line framing.
func NewStreamConn(nc net.Conn) Conn {
	return newPumpConn(newLineFramer(nc), "tcp")
}

// Pipe returns two connected in-memory endpoints.
func Pipe() (Conn, Conn) {
	a, b := net.Pipe()
	return newPumpConn(newLineFramer(a), "pipe"), newPumpConn(newLineFramer(b), "pipe")
}
