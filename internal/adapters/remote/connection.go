package remote

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/bft-labs/pdfship/internal/domain"
	"github.com/bft-labs/pdfship/internal/ports"
)

// State is the lifecycle state of a Connection.
type State int

const (
	StateClosed State = iota
	StateOpen
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "Closed"
	case StateOpen:
		return "Open"
	default:
		return "Unknown"
	}
}

// Connection owns one SSH transport and the SFTP channel opened over it.
// It implements ports.Connector.
type Connection struct {
	cfg    Config
	logger ports.Logger
	dial   func(ctx context.Context, network, addr string) (net.Conn, error)

	mu        sync.Mutex
	state     State
	transport io.Closer
	channel   io.Closer
	remote    *Remote
}

var _ ports.Connector = (*Connection)(nil)

// NewConnection creates a closed connection. Nothing is dialed until Connect.
func NewConnection(cfg Config, logger ports.Logger) *Connection {
	cfg = cfg.WithDefaults()
	d := &net.Dialer{Timeout: cfg.Timeout}
	return &Connection{
		cfg:    cfg,
		logger: logger,
		dial:   d.DialContext,
	}
}

// State returns the current lifecycle state.
func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect dials the device, authenticates and opens the SFTP channel.
// On failure every partially acquired resource is released and a
// *domain.ConnectionError is returned. Connect on an open connection
// returns the existing remote.
func (c *Connection) Connect(ctx context.Context) (ports.RemoteFS, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateOpen {
		return c.remote, nil
	}

	if err := c.open(ctx); err != nil {
		c.logger.Error("connection failed",
			ports.String("host", c.cfg.Host),
			ports.Int("port", c.cfg.Port),
			ports.Err(err),
		)
		// The handshake closes the raw conn itself on failure, so close
		// errors here are expected and only worth a debug line.
		if rerr := c.release(); rerr != nil {
			c.logger.Debug("cleanup after failed connect", ports.Err(rerr))
		}
		return nil, err
	}

	c.state = StateOpen
	c.logger.Info("connected",
		ports.String("host", c.cfg.Host),
		ports.Int("port", c.cfg.Port),
		ports.String("user", c.cfg.Username),
	)
	return c.remote, nil
}

func (c *Connection) open(ctx context.Context) error {
	hostKey, err := hostKeyCallback(c.cfg, c.logger)
	if err != nil {
		return c.fail("host_key", err)
	}

	addr := c.cfg.Addr()
	conn, err := c.dial(ctx, "tcp", addr)
	if err != nil {
		return c.fail("dial", err)
	}
	c.transport = conn

	// The SSH handshake takes no context; bound it with a deadline and
	// expire it early if ctx is cancelled.
	_ = conn.SetDeadline(time.Now().Add(c.cfg.Timeout))
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Unix(1, 0))
	})
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, &ssh.ClientConfig{
		User:            c.cfg.Username,
		Auth:            authMethods(c.cfg),
		HostKeyCallback: hostKey,
		Timeout:         c.cfg.Timeout,
	})
	if !stop() && err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return c.fail("handshake", err)
	}
	_ = conn.SetDeadline(time.Time{})

	client := ssh.NewClient(sshConn, chans, reqs)
	c.transport = client

	sc, err := sftp.NewClient(client)
	if err != nil {
		return c.fail("sftp", err)
	}
	c.channel = sc
	c.remote = NewRemote(sc)
	return nil
}

func (c *Connection) fail(stage string, err error) error {
	return &domain.ConnectionError{Host: c.cfg.Host, Port: c.cfg.Port, Stage: stage, Err: err}
}

// Disconnect closes the SFTP channel and then the SSH transport. The two
// releases are independent: a failure closing the channel never prevents
// the transport from being closed. Safe to call repeatedly or on a
// connection that was never opened.
func (c *Connection) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.release()
	if err != nil {
		c.logger.Warn("disconnect reported errors",
			ports.String("host", c.cfg.Host),
			ports.Int("port", c.cfg.Port),
			ports.Err(err),
		)
	}
	c.logger.Info("disconnected",
		ports.String("host", c.cfg.Host),
		ports.Int("port", c.cfg.Port),
	)
	return err
}

// release must be called with c.mu held.
func (c *Connection) release() (err error) {
	var errs *multierror.Error
	defer func() {
		c.state = StateClosed
		err = errs.ErrorOrNil()
	}()
	defer c.closeTransport(&errs)

	if c.remote != nil {
		c.remote.invalidate()
		c.remote = nil
	}
	c.closeChannel(&errs)
	return nil
}

func (c *Connection) closeChannel(errs **multierror.Error) {
	if c.channel == nil {
		return
	}
	ch := c.channel
	c.channel = nil
	if err := ch.Close(); err != nil {
		*errs = multierror.Append(*errs, fmt.Errorf("close sftp channel: %w", err))
	}
}

func (c *Connection) closeTransport(errs **multierror.Error) {
	if c.transport == nil {
		return
	}
	t := c.transport
	c.transport = nil
	if err := t.Close(); err != nil {
		*errs = multierror.Append(*errs, fmt.Errorf("close ssh transport: %w", err))
	}
}
