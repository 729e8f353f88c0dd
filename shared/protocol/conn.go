package protocol

import (
	"errors"
	"io"
	"net"

	"github.com/automoto/boxninja/shared/messages"
)

// Conn frames the text protocol over a stream connection. Each Send is one
// write and each Recv one read of at most MaxMessageSize bytes; peers strictly
// alternate, so a read never spans two messages.
type Conn struct {
	conn net.Conn
	buf  []byte
}

func NewConn(c net.Conn) *Conn {
	return &Conn{conn: c, buf: make([]byte, MaxMessageSize)}
}

// Send encodes msg and writes it.
func (c *Conn) Send(msg messages.Message) error {
	raw, err := Encode(msg)
	if err != nil {
		return err
	}
	return c.SendRaw(raw)
}

// SendRaw writes raw as-is.
func (c *Conn) SendRaw(raw string) error {
	_, err := c.conn.Write([]byte(raw))
	return err
}

// Recv reads the next message.
func (c *Conn) Recv() (string, error) {
	n, err := c.conn.Read(c.buf)
	if n > 0 {
		return string(c.buf[:n]), nil
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	return "", err
}

func (c *Conn) Close() error {
	return c.conn.Close()
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// IsDisconnect reports whether err means the peer is gone for good rather
// than a transient read failure.
func IsDisconnect(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, net.ErrClosed)
}
