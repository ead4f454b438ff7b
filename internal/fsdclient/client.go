// Package fsdclient streams FSD lines from a TCP server.
package fsdclient

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"fsd_recorder/internal/fsd"
	"fsd_recorder/internal/models"
)

// ErrNotConnected is returned by Send while no connection is up
var ErrNotConnected = errors.New("fsd client not connected")

// Client keeps a connection to an FSD server open and emits every line it
// receives. It reconnects with exponential backoff until its context ends.
type Client struct {
	addr         string
	hello        string
	maxRetries   int
	retryBackoff time.Duration
	maxBackoff   time.Duration
	dialTimeout  time.Duration
	readTimeout  time.Duration

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
}

// New creates a client for addr. hello, when not empty, is written as the
// first line of every connection.
func New(addr, hello string) *Client {
	return &Client{
		addr:         addr,
		hello:        hello,
		maxRetries:   -1, // -1 means infinite retries
		retryBackoff: 1 * time.Second,
		maxBackoff:   30 * time.Second,
		dialTimeout:  5 * time.Second,
		readTimeout:  1 * time.Second,
	}
}

// connect establishes a TCP connection to the FSD server
func (c *Client) connect(ctx context.Context) error {
	dialer := net.Dialer{
		Timeout: c.dialTimeout,
	}

	conn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.addr, err)
	}

	if c.hello != "" {
		if _, err := io.WriteString(conn, c.hello+"\r\n"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to send hello to %s: %w", c.addr, err)
		}
	}

	c.mu.Lock()
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	c.mu.Unlock()
	return nil
}

func (c *Client) connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Stream connects and sends every received line to out until ctx is done.
// It only returns on cancellation or when maxRetries is exceeded.
func (c *Client) Stream(ctx context.Context, out chan<- models.Line) error {
	retryCount := 0
	backoff := c.retryBackoff

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !c.connected() {
			if err := c.connect(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				retryCount++
				if c.maxRetries > 0 && retryCount > c.maxRetries {
					return fmt.Errorf("max retries (%d) exceeded", c.maxRetries)
				}
				slog.Warn("Failed to connect to FSD server", "addr", c.addr, "retry", retryCount, "error", err)

				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(backoff):
				}
				// 1s, 2s, 4s, 8s, capped at maxBackoff
				backoff *= 2
				if backoff > c.maxBackoff {
					backoff = c.maxBackoff
				}
				continue
			}
			retryCount = 0
			backoff = c.retryBackoff
			slog.Info("Connected to FSD server", "addr", c.addr)
		}

		err := c.readLines(ctx, out)
		if err != nil && ctx.Err() == nil {
			slog.Warn("Connection error, reconnecting", "addr", c.addr, "error", err)
			c.closeConnection()
			continue
		}

		return ctx.Err()
	}
}

// readLines reads until the connection fails or ctx is done. A read that
// times out keeps the partial line and resumes.
func (c *Client) readLines(ctx context.Context, out chan<- models.Line) error {
	c.mu.Lock()
	conn, reader := c.conn, c.reader
	c.mu.Unlock()

	var partial strings.Builder
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return fmt.Errorf("failed to set read deadline: %w", err)
		}

		chunk, err := reader.ReadString('\n')
		partial.WriteString(chunk)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("connection closed")
			}
			return fmt.Errorf("failed to read line: %w", err)
		}

		raw := strings.TrimRight(partial.String(), "\r\n")
		partial.Reset()
		if raw == "" {
			continue
		}

		select {
		case out <- models.Line{ReceivedAt: time.Now().UTC(), Raw: raw}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Send writes msg on the live connection
func (c *Client) Send(msg fsd.Message) error {
	return c.SendLine(msg.String())
}

// SendLine writes one raw line on the live connection
func (c *Client) SendLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNotConnected
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.dialTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}
	if _, err := io.WriteString(c.conn, line+"\r\n"); err != nil {
		return fmt.Errorf("failed to send line: %w", err)
	}
	return nil
}

// closeConnection closes the current connection
func (c *Client) closeConnection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
		c.reader = nil
	}
}

// Close closes the connection
func (c *Client) Close() error {
	c.closeConnection()
	return nil
}
