// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package soffice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeExecutor substitutes for the real LibreOffice process.
type fakeExecutor struct {
	lookPathErr error
	run         func(ctx context.Context, stderr io.Writer, name string, args ...string) error
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.lookPathErr != nil {
		return "", f.lookPathErr
	}
	return "/usr/bin/" + file, nil
}

func (f *fakeExecutor) Run(ctx context.Context, stderr io.Writer, name string, args ...string) error {
	if f.run != nil {
		return f.run(ctx, stderr, name, args...)
	}
	return nil
}

// runArgs picks apart the converter invocation: the value following --outdir
// and the trailing positional input path.
func runArgs(t *testing.T, args []string) (outdir, input string) {
	t.Helper()
	for i, a := range args {
		if a == "--outdir" && i+1 < len(args) {
			outdir = args[i+1]
		}
	}
	if outdir == "" {
		t.Fatalf("no --outdir in args: %v", args)
	}
	return outdir, args[len(args)-1]
}

// assertNoWorkspaces fails if any scratch directory survived under dir.
func assertNoWorkspaces(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		t.Errorf("leftover workspace: %s", e.Name())
	}
}

func TestConvertSuccess(t *testing.T) {
	tmp := t.TempDir()
	exec := &fakeExecutor{
		run: func(ctx context.Context, stderr io.Writer, name string, args ...string) error {
			if name != binLibreOffice {
				return fmt.Errorf("unexpected binary %q", name)
			}
			outdir, input := runArgs(t, args)

			// The input must be staged before the process runs.
			staged, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("input not staged: %w", err)
			}
			if string(staged) != "legacy bytes" {
				return fmt.Errorf("staged input = %q", staged)
			}

			return os.WriteFile(filepath.Join(outdir, outputName), []byte("container bytes"), 0o644)
		},
	}

	c := newConverter(Config{TempDir: tmp}, exec)
	out, err := c.Convert(context.Background(), []byte("legacy bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "container bytes" {
		t.Errorf("output = %q, want %q", out, "container bytes")
	}
	assertNoWorkspaces(t, tmp)
}

func TestConvertConverterUnavailable(t *testing.T) {
	tmp := t.TempDir()
	exec := &fakeExecutor{
		lookPathErr: errors.New("not found: libreoffice"),
		run: func(ctx context.Context, stderr io.Writer, name string, args ...string) error {
			t.Error("process must not run when the binary is unavailable")
			return nil
		},
	}

	c := newConverter(Config{TempDir: tmp}, exec)
	_, err := c.Convert(context.Background(), []byte("legacy"))
	if !errors.Is(err, ErrConverterUnavailable) {
		t.Fatalf("error = %v, want ErrConverterUnavailable", err)
	}
	// No workspace is created before the PATH probe passes.
	assertNoWorkspaces(t, tmp)
}

func TestConvertTimeout(t *testing.T) {
	tmp := t.TempDir()
	exec := &fakeExecutor{
		run: func(ctx context.Context, stderr io.Writer, name string, args ...string) error {
			// Simulate a hung process: block until the deadline fires.
			<-ctx.Done()
			return ctx.Err()
		},
	}

	c := newConverter(Config{TempDir: tmp, Timeout: 20 * time.Millisecond}, exec)
	_, err := c.Convert(context.Background(), []byte("legacy"))
	if !errors.Is(err, ErrConversionTimeout) {
		t.Fatalf("error = %v, want ErrConversionTimeout", err)
	}
	assertNoWorkspaces(t, tmp)
}

func TestConvertNonZeroExit(t *testing.T) {
	tmp := t.TempDir()
	exec := &fakeExecutor{
		run: func(ctx context.Context, stderr io.Writer, name string, args ...string) error {
			fmt.Fprintln(stderr, "Error: source file could not be loaded")
			return errors.New("exit status 1")
		},
	}

	c := newConverter(Config{TempDir: tmp}, exec)
	_, err := c.Convert(context.Background(), []byte("legacy"))
	if !errors.Is(err, ErrConversionFailed) {
		t.Fatalf("error = %v, want ErrConversionFailed", err)
	}
	if !strings.Contains(err.Error(), "source file could not be loaded") {
		t.Errorf("error should carry stderr diagnostics, got: %v", err)
	}
	assertNoWorkspaces(t, tmp)
}

func TestConvertNoOutputProduced(t *testing.T) {
	tmp := t.TempDir()
	exec := &fakeExecutor{
		run: func(ctx context.Context, stderr io.Writer, name string, args ...string) error {
			return nil // exit zero without writing the output file
		},
	}

	c := newConverter(Config{TempDir: tmp}, exec)
	_, err := c.Convert(context.Background(), []byte("legacy"))
	if !errors.Is(err, ErrConversionFailed) {
		t.Fatalf("error = %v, want ErrConversionFailed", err)
	}
	if !strings.Contains(err.Error(), "no output produced") {
		t.Errorf("error = %v, want mention of missing output", err)
	}
	assertNoWorkspaces(t, tmp)
}

func TestConvertCancelled(t *testing.T) {
	tmp := t.TempDir()
	exec := &fakeExecutor{
		run: func(ctx context.Context, stderr io.Writer, name string, args ...string) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	c := newConverter(Config{TempDir: tmp}, exec)
	_, err := c.Convert(ctx, []byte("legacy"))
	if err == nil {
		t.Fatal("expected error on cancellation")
	}
	if errors.Is(err, ErrConversionTimeout) {
		t.Errorf("cancellation must not be reported as a timeout: %v", err)
	}
	assertNoWorkspaces(t, tmp)
}

func TestConvertConcurrentWorkspacesIsolated(t *testing.T) {
	tmp := t.TempDir()
	exec := &fakeExecutor{
		run: func(ctx context.Context, stderr io.Writer, name string, args ...string) error {
			outdir, input := runArgs(t, args)
			staged, err := os.ReadFile(input)
			if err != nil {
				return err
			}
			// Output derived from this call's own staged input.
			return os.WriteFile(filepath.Join(outdir, outputName), append([]byte("docx:"), staged...), 0o644)
		},
	}

	c := newConverter(Config{TempDir: tmp}, exec)

	const n = 8
	var wg sync.WaitGroup
	results := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := c.Convert(context.Background(), []byte(fmt.Sprintf("doc-%d", i)))
			results[i], errs[i] = string(out), err
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("conversion %d failed: %v", i, errs[i])
		}
		want := fmt.Sprintf("docx:doc-%d", i)
		if results[i] != want {
			t.Errorf("conversion %d = %q, want %q (cross-contamination)", i, results[i], want)
		}
	}
	assertNoWorkspaces(t, tmp)
}
