package remote

import (
	"fmt"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/bft-labs/pdfship/internal/ports"
)

// authMethods offers the password directly and through keyboard-interactive,
// which some embedded SSH servers use for password logins.
func authMethods(cfg Config) []ssh.AuthMethod {
	return []ssh.AuthMethod{
		ssh.Password(cfg.Password),
		ssh.KeyboardInteractive(func(user, instruction string, questions []string, echos []bool) ([]string, error) {
			answers := make([]string, len(questions))
			for i := range answers {
				answers[i] = cfg.Password
			}
			return answers, nil
		}),
	}
}

func hostKeyCallback(cfg Config, logger ports.Logger) (ssh.HostKeyCallback, error) {
	if cfg.KnownHostsFile != "" && !cfg.InsecureIgnoreHostKey {
		callback, err := knownhosts.New(cfg.KnownHostsFile)
		if err != nil {
			return nil, fmt.Errorf("load known_hosts file %s: %w", cfg.KnownHostsFile, err)
		}
		return callback, nil
	}

	logger.Warn("host key verification disabled",
		ports.String("host", cfg.Host),
		ports.Int("port", cfg.Port),
	)
	return ssh.InsecureIgnoreHostKey(), nil
}
