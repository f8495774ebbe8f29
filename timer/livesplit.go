package timer

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"net"
	"strings"
	"sync"
	"time"
)

// DefaultLiveSplitAddress is where the LiveSplit Server component listens by
// default.
const DefaultLiveSplitAddress = "localhost:16834"

// LiveSplitClient drives LiveSplit through its server component, a
// line-based text protocol over TCP.
//
// The client connects lazily and reconnects after failures. While LiveSplit
// cannot be reached, the lifecycle is reported as Unknown and commands are
// dropped.
type LiveSplitClient struct {
	addr    string
	timeout time.Duration
	logger  *log.Logger
	dial    func(network, addr string, timeout time.Duration) (net.Conn, error)

	mu        sync.Mutex
	conn      net.Conn
	rd        *bufio.Reader
	connected bool
}

// NewLiveSplitClient creates a client for the server at addr.
func NewLiveSplitClient(addr string, logger *log.Logger) *LiveSplitClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &LiveSplitClient{
		addr:    addr,
		timeout: time.Second,
		logger:  logger,
		dial:    net.DialTimeout,
	}
}

// WithTimeout sets the timeout of every network operation.
func (c *LiveSplitClient) WithTimeout(d time.Duration) *LiveSplitClient {
	c.timeout = d
	return c
}

// Lifecycle asks LiveSplit for the current timer phase.
func (c *LiveSplitClient) Lifecycle() Lifecycle {
	rsp, err := c.query("getcurrenttimerphase")
	if err != nil {
		return Unknown
	}

	l, ok := ParseLifecycle(rsp)
	if !ok {
		c.logger.Printf("timer: LiveSplit reported unknown phase %q", rsp)
	}

	return l
}

// Start implements Timer.
func (c *LiveSplitClient) Start() { c.send("starttimer") }

// Pause implements Timer.
func (c *LiveSplitClient) Pause() { c.send("pause") }

// Resume implements Timer.
func (c *LiveSplitClient) Resume() { c.send("resume") }

// Split implements Timer.
func (c *LiveSplitClient) Split() { c.send("split") }

// Reset implements Timer.
func (c *LiveSplitClient) Reset() { c.send("reset") }

// PauseGameTime implements Timer.
func (c *LiveSplitClient) PauseGameTime() { c.send("pausegametime") }

// ResumeGameTime implements Timer.
func (c *LiveSplitClient) ResumeGameTime() { c.send("unpausegametime") }

// SetGameTime implements Timer.
func (c *LiveSplitClient) SetGameTime(d time.Duration) {
	c.send("setgametime " + FormatDuration(d))
}

// Close closes the connection, if any.
func (c *LiveSplitClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.disconnect()
}

// FormatDuration formats d the way LiveSplit parses time spans.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond

	return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, s, ms)
}

func (c *LiveSplitClient) send(cmd string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.write(cmd); err != nil {
		c.fail(err)
	}
}

func (c *LiveSplitClient) query(cmd string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.write(cmd); err != nil {
		c.fail(err)
		return "", err
	}

	line, err := c.rd.ReadString('\n')
	if err != nil {
		c.fail(err)
		return "", err
	}

	return strings.TrimSpace(line), nil
}

func (c *LiveSplitClient) write(cmd string) error {
	if err := c.connect(); err != nil {
		return err
	}

	deadline := time.Now().Add(c.timeout)
	if err := c.conn.SetDeadline(deadline); err != nil {
		return err
	}

	_, err := io.WriteString(c.conn, cmd+"\r\n")

	return err
}

func (c *LiveSplitClient) connect() error {
	if c.conn != nil {
		return nil
	}

	conn, err := c.dial("tcp", c.addr, c.timeout)
	if err != nil {
		return err
	}

	c.conn = conn
	c.rd = bufio.NewReader(conn)

	if !c.connected {
		c.logger.Printf("timer: connected to LiveSplit at %s", c.addr)
		c.connected = true
	}

	return nil
}

// fail drops the connection. Only the first failure after a successful
// connection is logged, so that an absent LiveSplit does not flood the log.
func (c *LiveSplitClient) fail(err error) {
	if c.connected {
		c.logger.Printf("timer: lost LiveSplit at %s: %v", c.addr, err)
		c.connected = false
	}

	_ = c.disconnect()
}

func (c *LiveSplitClient) disconnect() error {
	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	c.conn = nil
	c.rd = nil

	return err
}

var _ Timer = (*LiveSplitClient)(nil)
