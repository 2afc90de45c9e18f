package git

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"frec/internal/errors"
	"frec/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
		Output: &bytes.Buffer{},
	})
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}

// initRepo creates a temp repository with identity configured
func initRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)
	dir := t.TempDir()
	runGit(t, dir, "init", "-q")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test")
	return dir
}

// commitFiles writes the given files and commits them in one commit
func commitFiles(t *testing.T, dir, message string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	runGit(t, dir, "add", "-A")
	runGit(t, dir, "commit", "-q", "-m", message)
}

func TestNewAdapterNotARepo(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()

	_, err := NewAdapter(dir, Options{}, testLogger())
	if err == nil {
		t.Fatal("expected error for non-repository directory")
	}
	var fe *errors.FrecError
	if !stderrors.As(err, &fe) || fe.Code != errors.RepositoryUnavailable {
		t.Errorf("error = %v, want REPOSITORY_UNAVAILABLE", err)
	}
}

func TestNewAdapterResolvesRoot(t *testing.T) {
	dir := initRepo(t)
	commitFiles(t, dir, "initial", map[string]string{"src/lib.go": "package lib\n"})

	// The adapter resolves the enclosing root from a nested directory.
	adapter, err := NewAdapter(filepath.Join(dir, "src"), Options{}, testLogger())
	if err != nil {
		t.Fatalf("NewAdapter failed: %v", err)
	}

	got, _ := filepath.EvalSymlinks(adapter.Root())
	want, _ := filepath.EvalSymlinks(dir)
	if got != want {
		t.Errorf("Root() = %q, want %q", got, want)
	}
}

func TestParseRenamePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    RenamePolicy
		wantErr bool
	}{
		{"both", RenameBoth, false},
		{"new-only", RenameNewOnly, false},
		{"", "", true},
		{"either", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRenamePolicy(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRenamePolicy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseRenamePolicy(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestHead(t *testing.T) {
	dir := initRepo(t)
	commitFiles(t, dir, "initial", map[string]string{"a.txt": "a\n"})

	adapter, err := NewAdapter(dir, Options{}, testLogger())
	if err != nil {
		t.Fatalf("NewAdapter failed: %v", err)
	}

	head, err := adapter.Head(context.Background())
	if err != nil {
		t.Fatalf("Head failed: %v", err)
	}
	if len(head) != 40 {
		t.Errorf("Head() = %q, want 40-char hash", head)
	}
}
