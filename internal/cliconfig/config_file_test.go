package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true
	falseVal := false

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				Host:                  "192.168.15.244",
				Port:                  2222,
				Username:              "root",
				Password:              "secret",
				SourceFolder:          "/books",
				DestFolder:            "/mnt/us/documents",
				LedgerFile:            "/state/sent_log.txt",
				KnownHosts:            "/etc/ssh/known_hosts",
				InsecureIgnoreHostKey: &falseVal,
				DialTimeout:           "10s",
				Verify:                &falseVal,
				DryRun:                &trueVal,
				Watch:                 &trueVal,
				Debounce:              "1s",
				LogFile:               "/var/log/pdfship.log",
				LogLevel:              "warn",
			},
			changed: map[string]bool{},
			initial: Config{Verify: true},
			expected: Config{
				Host:           "192.168.15.244",
				Port:           2222,
				Username:       "root",
				Password:       "secret",
				SourceDir:      "/books",
				DestDir:        "/mnt/us/documents",
				LedgerPath:     "/state/sent_log.txt",
				KnownHostsFile: "/etc/ssh/known_hosts",
				DialTimeout:    10 * time.Second,
				Verify:         false,
				DryRun:         true,
				Watch:          true,
				Debounce:       time.Second,
				LogFile:        "/var/log/pdfship.log",
				LogLevel:       "warn",
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				Host:       "10.0.0.1",
				DestFolder: "/file/documents",
				Verify:     &falseVal,
			},
			changed: map[string]bool{"host": true, "verify": true},
			initial: Config{
				Host:   "10.0.0.9",
				Verify: true,
			},
			expected: Config{
				Host:    "10.0.0.9", // unchanged because flag was set
				DestDir: "/file/documents",
				Verify:  true,
			},
		},
		{
			name:       "unset bools leave defaults",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			initial:    DefaultConfig(),
			expected:   DefaultConfig(),
		},
		{
			name: "returns error for invalid duration",
			fileConfig: FileConfig{
				Debounce: "soon",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyFileConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg != tt.expected {
				t.Errorf("ApplyFileConfig() =\n%+v\nwant\n%+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	mem := afero.NewMemMapFs()
	content := `
host = "192.168.15.244"
port = 22
username = "root"
password = "secret"
source_folder = "~/books"
dest_folder = "/mnt/us/documents"
verify = false
debounce = "5s"
`
	if err := afero.WriteFile(mem, "/etc/pdfship/config.toml", []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadFileConfig(mem, "/etc/pdfship/config.toml")
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}
	if fc.Host != "192.168.15.244" || fc.Port != 22 || fc.Username != "root" {
		t.Errorf("connection fields = %+v", fc)
	}
	if fc.SourceFolder != "~/books" || fc.DestFolder != "/mnt/us/documents" {
		t.Errorf("folders = %q, %q", fc.SourceFolder, fc.DestFolder)
	}
	if fc.Verify == nil || *fc.Verify {
		t.Errorf("Verify = %v, want explicit false", fc.Verify)
	}
	if fc.DryRun != nil {
		t.Errorf("DryRun = %v, want unset", *fc.DryRun)
	}
	if fc.Debounce != "5s" {
		t.Errorf("Debounce = %q", fc.Debounce)
	}
}

func TestLoadFileConfig_Errors(t *testing.T) {
	mem := afero.NewMemMapFs()

	if _, err := LoadFileConfig(mem, "/missing.toml"); err == nil {
		t.Error("expected error for missing file")
	}

	if err := afero.WriteFile(mem, "/bad.toml", []byte("host = \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFileConfig(mem, "/bad.toml"); err == nil {
		t.Error("expected error for malformed TOML")
	}

	if err := afero.WriteFile(mem, "/typed.toml", []byte("port = \"twenty-two\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFileConfig(mem, "/typed.toml"); err == nil {
		t.Error("expected error for string port")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	home, err := os.UserHomeDir()
	if err != nil {
		if path != "" {
			t.Errorf("DefaultConfigPath() = %v, want empty without home", path)
		}
		return
	}
	if path != filepath.Join(home, ".pdfship", "config.toml") {
		t.Errorf("DefaultConfigPath() = %v", path)
	}
	if !strings.HasSuffix(path, "config.toml") {
		t.Errorf("DefaultConfigPath() = %v, want config.toml suffix", path)
	}
}

func TestFileExists(t *testing.T) {
	mem := afero.NewMemMapFs()
	if err := afero.WriteFile(mem, "/cfg/config.toml", []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(mem, "/cfg/config.toml") {
		t.Error("FileExists() = false for existing file")
	}
	if FileExists(mem, "/cfg") {
		t.Error("FileExists() = true for a directory")
	}
	if FileExists(mem, "/cfg/other.toml") {
		t.Error("FileExists() = true for missing file")
	}
}
