package domain

import (
	"errors"
	"io"
	"reflect"
	"testing"
)

func TestFileSet_Minus(t *testing.T) {
	local := NewFileSet("a.pdf", "b.pdf", "c.pdf", "d.pdf")
	remote := NewFileSet("a.pdf")
	ledger := NewFileSet("d.pdf", "zzz.pdf")

	got := local.Minus(remote, ledger).Sorted()
	want := []string{"b.pdf", "c.pdf"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Minus = %v, want %v", got, want)
	}

	// Operands are untouched.
	if local.Len() != 4 {
		t.Errorf("local mutated: %v", local.Sorted())
	}
}

func TestFileSet_NilSafe(t *testing.T) {
	var empty FileSet
	if empty.Has("a.pdf") {
		t.Error("nil set reported membership")
	}
	got := NewFileSet("a.pdf").Minus(empty, nil)
	if !got.Has("a.pdf") || got.Len() != 1 {
		t.Errorf("Minus with nil sets = %v", got.Sorted())
	}
}

func TestFileSet_DuplicatesCollapse(t *testing.T) {
	s := NewFileSet("a.pdf", "a.pdf", "b.pdf")
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	s.Add("a.pdf")
	if s.Len() != 2 {
		t.Errorf("Len after re-add = %d, want 2", s.Len())
	}
}

func TestFileSet_IntersectAndSorted(t *testing.T) {
	s := NewFileSet("c.pdf", "a.pdf", "b.pdf")
	if got := s.Sorted(); !reflect.DeepEqual(got, []string{"a.pdf", "b.pdf", "c.pdf"}) {
		t.Errorf("Sorted = %v", got)
	}
	both := s.Intersect(NewFileSet("b.pdf", "x.pdf"))
	if !reflect.DeepEqual(both.Sorted(), []string{"b.pdf"}) {
		t.Errorf("Intersect = %v", both.Sorted())
	}
}

func TestErrors_Is(t *testing.T) {
	cause := io.ErrUnexpectedEOF

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"config", &ConfigError{Field: "dest_folder", Reason: "must be absolute"}, ErrInvalidConfig},
		{"connection", &ConnectionError{Host: "kindle", Port: 22, Stage: "dial", Err: cause}, ErrConnection},
		{"transfer", &TransferError{File: "a.pdf", RemotePath: "/documents/a.pdf", Err: cause}, ErrTransfer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
			}
			if tt.name != "config" && !errors.Is(tt.err, cause) {
				t.Errorf("cause not reachable from %v", tt.err)
			}
		})
	}
}

func TestConnectionError_Message(t *testing.T) {
	err := &ConnectionError{Host: "192.168.15.244", Port: 22, Stage: "handshake", Err: errors.New("auth")}
	want := "pdfship: connection failed: handshake 192.168.15.244:22: auth"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestReport_Unverified(t *testing.T) {
	r := Report{Verifications: []Verification{
		{Name: "a.pdf", Status: VerifyPresent, Size: 10},
		{Name: "b.pdf", Status: VerifyMissing},
		{Name: "c.pdf", Status: VerifyEmpty},
	}}
	bad := r.Unverified()
	if len(bad) != 2 || bad[0].Name != "b.pdf" || bad[1].Name != "c.pdf" {
		t.Errorf("Unverified = %+v", bad)
	}
}
