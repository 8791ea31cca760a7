package runtime

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestPythonMissingOverride(t *testing.T) {
	p := &Pip{PythonBin: "definitely-not-a-python-binary"}
	if _, err := p.Python(); err == nil {
		t.Fatal("expected lookup error for bogus interpreter name")
	}
}

func TestInstallMissingRequirements(t *testing.T) {
	p := &Pip{}
	dir := t.TempDir()

	_, err := p.Install(context.Background(), dir)
	if err == nil {
		t.Fatal("expected error when requirements.txt is absent")
	}
}

func TestInstallCapturesOutput(t *testing.T) {
	// Skip if no interpreter is available.
	p := &Pip{}
	if _, err := p.Python(); err != nil {
		t.Skip("python not available, skipping")
	}

	dir := t.TempDir()
	// An empty requirements file makes pip a cheap no-op.
	if err := os.WriteFile(filepath.Join(dir, "requirements.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	p.Stdout = &stdout
	p.Stderr = &stderr

	out, err := p.Install(context.Background(), dir)
	if err != nil {
		t.Fatalf("Install() error: %v", err)
	}
	if out.Stdout != stdout.String() {
		t.Error("captured stdout does not match streamed stdout")
	}
}

func TestAvailableMissingPython(t *testing.T) {
	if _, err := exec.LookPath("python3"); err == nil {
		t.Skip("python3 present, cannot test missing interpreter path")
	}
	if _, err := exec.LookPath("python"); err == nil {
		t.Skip("python present, cannot test missing interpreter path")
	}

	p := &Pip{}
	if err := p.Available(context.Background()); err == nil {
		t.Fatal("expected error when no interpreter exists")
	}
}
