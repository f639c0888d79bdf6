package pdfship_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/pdfship/pkg/log"
	"github.com/bft-labs/pdfship/pkg/pdfship"
)

// memRemote is a RemoteFS over an in-memory filesystem.
type memRemote struct {
	fs afero.Fs
}

func (r memRemote) ReadDir(ctx context.Context, dir string) ([]os.FileInfo, error) {
	return afero.ReadDir(r.fs, dir)
}

func (r memRemote) Upload(ctx context.Context, src io.Reader, remotePath string) (int64, error) {
	f, err := r.fs.Create(remotePath)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func (r memRemote) has(name string) bool {
	ok, _ := afero.Exists(r.fs, path.Join("/documents", name))
	return ok
}

// fakeConnector hands out a memRemote and tracks session usage.
type fakeConnector struct {
	remote     memRemote
	connectErr error
	hold       time.Duration

	mu          sync.Mutex
	connects    int
	disconnects int
	active      int
	maxActive   int
}

func newFakeConnector(t *testing.T) *fakeConnector {
	t.Helper()
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/documents", 0o755))
	return &fakeConnector{remote: memRemote{fs: mem}}
}

func (c *fakeConnector) Connect(ctx context.Context) (pdfship.RemoteFS, error) {
	c.mu.Lock()
	c.connects++
	if c.connectErr != nil {
		c.mu.Unlock()
		return nil, c.connectErr
	}
	c.active++
	if c.active > c.maxActive {
		c.maxActive = c.active
	}
	c.mu.Unlock()

	if c.hold > 0 {
		time.Sleep(c.hold)
	}
	return c.remote, nil
}

func (c *fakeConnector) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disconnects++
	if c.active > 0 {
		c.active--
	}
	return nil
}

func (c *fakeConnector) counts() (connects, disconnects, maxActive int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connects, c.disconnects, c.maxActive
}

func validConfig() pdfship.Config {
	cfg := pdfship.DefaultConfig()
	cfg.Host = "192.168.15.244"
	cfg.Username = "root"
	cfg.Password = "secret"
	cfg.SourceDir = "/home/reader/pdfs"
	cfg.DestDir = "/documents"
	cfg.LedgerPath = "/home/reader/sent_log.txt"
	return cfg
}

func localFs(t *testing.T, names ...string) afero.Fs {
	t.Helper()
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/home/reader/pdfs", 0o755))
	for _, n := range names {
		require.NoError(t, afero.WriteFile(mem, path.Join("/home/reader/pdfs", n), []byte("%PDF "+n), 0o644))
	}
	return mem
}

func TestNew_RelativeDestFolderFailsBeforeConnect(t *testing.T) {
	cfg := validConfig()
	cfg.DestDir = "documents"
	conn := newFakeConnector(t)

	s, err := pdfship.New(cfg, pdfship.WithFs(localFs(t)), pdfship.WithConnector(conn))
	require.Error(t, err)
	assert.Nil(t, s)

	assert.ErrorIs(t, err, pdfship.ErrInvalidConfig)
	var cerr *pdfship.ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "dest_folder", cerr.Field)

	connects, _, _ := conn.counts()
	assert.Zero(t, connects)
}

func TestNew_ReportsEveryViolation(t *testing.T) {
	_, err := pdfship.New(pdfship.Config{Port: 70000}, pdfship.WithFs(afero.NewMemMapFs()))
	require.Error(t, err)
	assert.ErrorIs(t, err, pdfship.ErrInvalidConfig)

	for _, field := range []string{"host", "port", "username", "password", "source_folder", "dest_folder"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestNew_SourceFolderMustBeDirectory(t *testing.T) {
	mem := localFs(t)
	require.NoError(t, afero.WriteFile(mem, "/home/reader/file.pdf", []byte("x"), 0o644))

	tests := []struct {
		name string
		dir  string
	}{
		{"missing", "/home/reader/absent"},
		{"regular file", "/home/reader/file.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.SourceDir = tt.dir
			_, err := pdfship.New(cfg, pdfship.WithFs(mem))
			var cerr *pdfship.ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, "source_folder", cerr.Field)
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := pdfship.Config{}
	cfg.SetDefaults()
	assert.Equal(t, 22, cfg.Port)
	assert.Equal(t, "sent_log.txt", cfg.LedgerPath)
	assert.Equal(t, 30*time.Second, cfg.DialTimeout)
	assert.False(t, cfg.SkipVerify)
	assert.False(t, pdfship.DefaultConfig().SkipVerify)
}

func TestRun_ZeroConfigVerifies(t *testing.T) {
	cfg := pdfship.Config{
		Host:       "192.168.15.244",
		Username:   "root",
		Password:   "secret",
		SourceDir:  "/home/reader/pdfs",
		DestDir:    "/documents",
		LedgerPath: "/home/reader/sent_log.txt",
	}
	conn := newFakeConnector(t)
	s, err := pdfship.New(cfg, pdfship.WithFs(localFs(t, "a.pdf")), pdfship.WithConnector(conn))
	require.NoError(t, err)

	report, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Verifications, 1)
	assert.Equal(t, pdfship.VerifyPresent, report.Verifications[0].Status)

	cfg.SkipVerify = true
	s, err = pdfship.New(cfg, pdfship.WithFs(localFs(t, "b.pdf")), pdfship.WithConnector(newFakeConnector(t)))
	require.NoError(t, err)
	report, err = s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b.pdf"}, report.Sent)
	assert.Empty(t, report.Verifications)
}

func TestRun_SendsRecordsAndDisconnects(t *testing.T) {
	mem := localFs(t, "a.pdf", "b.pdf")
	conn := newFakeConnector(t)
	logger := log.NewRecordingLogger()

	s, err := pdfship.New(validConfig(),
		pdfship.WithFs(mem),
		pdfship.WithConnector(conn),
		pdfship.WithLogger(logger),
	)
	require.NoError(t, err)

	report, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, report.Sent)
	assert.Empty(t, report.Unverified())
	assert.True(t, conn.remote.has("a.pdf"))
	assert.True(t, conn.remote.has("b.pdf"))

	ledger, err := afero.ReadFile(mem, "/home/reader/sent_log.txt")
	require.NoError(t, err)
	assert.Equal(t, "a.pdf\nb.pdf\n", string(ledger))

	connects, disconnects, _ := conn.counts()
	assert.Equal(t, 1, connects)
	assert.Equal(t, 1, disconnects)

	_, ok := logger.Find("sync finished")
	assert.True(t, ok)

	again, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, again.Sent)
}

func TestRun_ConnectFailure(t *testing.T) {
	conn := newFakeConnector(t)
	conn.connectErr = &pdfship.ConnectionError{Host: "kindle", Port: 22, Stage: "dial", Err: errors.New("no route to host")}

	s, err := pdfship.New(validConfig(), pdfship.WithFs(localFs(t, "a.pdf")), pdfship.WithConnector(conn))
	require.NoError(t, err)

	_, err = s.Run(context.Background())
	assert.ErrorIs(t, err, pdfship.ErrConnection)
	_, disconnects, _ := conn.counts()
	assert.Zero(t, disconnects)
}

func TestRun_TransferFailureStillDisconnects(t *testing.T) {
	conn := newFakeConnector(t)
	conn.remote.fs = afero.NewReadOnlyFs(conn.remote.fs)

	s, err := pdfship.New(validConfig(), pdfship.WithFs(localFs(t, "a.pdf")), pdfship.WithConnector(conn))
	require.NoError(t, err)

	_, err = s.Run(context.Background())
	assert.ErrorIs(t, err, pdfship.ErrTransfer)
	_, disconnects, _ := conn.counts()
	assert.Equal(t, 1, disconnects)
}

func TestRun_Serialized(t *testing.T) {
	conn := newFakeConnector(t)
	conn.hold = 10 * time.Millisecond

	s, err := pdfship.New(validConfig(), pdfship.WithFs(localFs(t, "a.pdf")), pdfship.WithConnector(conn))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Run(context.Background())
		}()
	}
	wg.Wait()

	connects, disconnects, maxActive := conn.counts()
	assert.Equal(t, 5, connects)
	assert.Equal(t, 5, disconnects)
	assert.Equal(t, 1, maxActive)
}

func TestRun_DryRun(t *testing.T) {
	mem := localFs(t, "a.pdf")
	conn := newFakeConnector(t)
	cfg := validConfig()
	cfg.DryRun = true

	s, err := pdfship.New(cfg, pdfship.WithFs(mem), pdfship.WithConnector(conn))
	require.NoError(t, err)

	report, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf"}, report.ToSend)
	assert.Empty(t, report.Sent)
	assert.False(t, conn.remote.has("a.pdf"))

	exists, err := afero.Exists(mem, "/home/reader/sent_log.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}
