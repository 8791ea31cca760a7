package runtime

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Output captures the result of a pip invocation.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Pip runs the local Python toolchain.
type Pip struct {
	// PythonBin overrides the interpreter; defaults to the first of
	// python3/python found on PATH.
	PythonBin string

	// Stdout and Stderr can be set for testing; default to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// pythonCandidates is the PATH lookup order for the interpreter.
var pythonCandidates = []string{"python3", "python"}

// Python resolves the interpreter binary.
func (p *Pip) Python() (string, error) {
	if p.PythonBin != "" {
		return exec.LookPath(p.PythonBin)
	}
	for _, name := range pythonCandidates {
		if bin, err := exec.LookPath(name); err == nil {
			return bin, nil
		}
	}
	return "", fmt.Errorf("no python interpreter found on PATH (tried %s)",
		strings.Join(pythonCandidates, ", "))
}

// Available reports whether both python and pip can be invoked. Used by
// the doctor command.
func (p *Pip) Available(ctx context.Context) error {
	bin, err := p.Python()
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, bin, "-m", "pip", "--version")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("pip is not usable via %s: %s", bin, strings.TrimSpace(string(out)))
	}
	return nil
}

// Install runs `python -m pip install -r requirements.txt` inside agentDir,
// streaming output while also capturing it.
func (p *Pip) Install(ctx context.Context, agentDir string) (*Output, error) {
	reqFile := filepath.Join(agentDir, "requirements.txt")
	if _, err := os.Stat(reqFile); err != nil {
		return nil, fmt.Errorf("requirements file not found at %s: %w", reqFile, err)
	}

	bin, err := p.Python()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, bin, "-m", "pip", "install", "-r", "requirements.txt")
	cmd.Dir = agentDir

	stdout := p.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := p.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(stdout, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	err = cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return output, fmt.Errorf("running pip install: %w", err)
	}

	return output, nil
}
