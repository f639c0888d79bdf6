package ports

import (
	"context"
	"io"
	"os"
)

// RemoteFS is the file-transfer channel of an open connection.
// Implementations return domain.ErrNotConnected once the connection is closed.
type RemoteFS interface {
	// ReadDir lists the entries of a remote directory.
	ReadDir(ctx context.Context, dir string) ([]os.FileInfo, error)

	// Upload writes everything from src to remotePath, truncating any
	// existing file, and returns the number of bytes written. It returns
	// only after the remote file has been closed.
	Upload(ctx context.Context, src io.Reader, remotePath string) (int64, error)
}

// Connector establishes and tears down the session behind a RemoteFS.
type Connector interface {
	// Connect opens the session. On failure all partial resources are
	// released before the error is returned.
	Connect(ctx context.Context) (RemoteFS, error)

	// Disconnect releases the session. Safe to call repeatedly or
	// without a prior Connect.
	Disconnect() error
}
