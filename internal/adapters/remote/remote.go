package remote

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pkg/sftp"

	"github.com/bft-labs/pdfship/internal/domain"
)

// Remote implements ports.RemoteFS over an SFTP client. It stops working
// as soon as the owning connection is closed.
type Remote struct {
	mu     sync.RWMutex
	client *sftp.Client
}

// NewRemote wraps an open SFTP client.
func NewRemote(client *sftp.Client) *Remote {
	return &Remote{client: client}
}

// ReadDir lists the entries of dir.
func (r *Remote) ReadDir(ctx context.Context, dir string) ([]os.FileInfo, error) {
	client, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := client.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read remote dir %s: %w", dir, err)
	}
	return entries, nil
}

// Upload copies src into remotePath, creating or truncating it.
func (r *Remote) Upload(ctx context.Context, src io.Reader, remotePath string) (int64, error) {
	client, err := r.acquire(ctx)
	if err != nil {
		return 0, err
	}

	dst, err := client.Create(remotePath)
	if err != nil {
		return 0, fmt.Errorf("create remote file %s: %w", remotePath, err)
	}

	n, err := io.Copy(dst, &ctxReader{ctx: ctx, r: src})
	if err != nil {
		dst.Close()
		return n, fmt.Errorf("write remote file %s: %w", remotePath, err)
	}
	if err := dst.Close(); err != nil {
		return n, fmt.Errorf("close remote file %s: %w", remotePath, err)
	}
	return n, nil
}

func (r *Remote) acquire(ctx context.Context) (*sftp.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.client == nil {
		return nil, domain.ErrNotConnected
	}
	return r.client, nil
}

// invalidate detaches the client; later calls fail with ErrNotConnected.
func (r *Remote) invalidate() {
	r.mu.Lock()
	r.client = nil
	r.mu.Unlock()
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
