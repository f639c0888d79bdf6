package remote

import (
	"net"
	"strconv"
	"time"
)

// Config holds the connection settings for the device.
type Config struct {
	// Host is the device hostname or IP address.
	Host string

	// Port is the SSH port (default 22).
	Port int

	// Username and Password authenticate the session.
	Username string
	Password string

	// KnownHostsFile pins the device host key. When empty any host key
	// is accepted.
	KnownHostsFile string

	// InsecureIgnoreHostKey accepts any host key even if KnownHostsFile is set.
	InsecureIgnoreHostKey bool

	// Timeout bounds the TCP dial and the SSH handshake (default 30s).
	Timeout time.Duration
}

// WithDefaults returns a copy of the config with default values applied.
func (c Config) WithDefaults() Config {
	if c.Port == 0 {
		c.Port = 22
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	return c
}

// Addr returns host:port, bracketing IPv6 literals.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
