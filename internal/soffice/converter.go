// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package soffice converts legacy binary .doc files into the zipped-XML .docx
// container by driving a headless LibreOffice child process. Each conversion
// stages its input and output in a private scratch directory that is removed
// on every exit path.
package soffice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrConverterUnavailable is returned when the libreoffice binary is not
	// on PATH. No workspace is created in that case.
	ErrConverterUnavailable = errors.New("soffice: libreoffice not found")

	// ErrConversionTimeout is returned when the child process exceeds the
	// wall-clock bound. The process is killed before this is returned.
	ErrConversionTimeout = errors.New("soffice: conversion timed out")

	// ErrConversionFailed is returned when the child process exits non-zero
	// or produces no output file.
	ErrConversionFailed = errors.New("soffice: conversion failed")
)

const (
	binLibreOffice = "libreoffice"

	// Fixed staging names inside the workspace. LibreOffice writes the
	// converted file next to the input with the target extension.
	inputName  = "input.doc"
	outputName = "input.docx"

	// DefaultTimeout bounds a single conversion's wall-clock time.
	DefaultTimeout = 60 * time.Second
)

// executor abstracts binary lookup and child-process execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, stderr io.Writer, name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec. Run is subject to
// the context: on expiry the child process is killed and Run returns.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(ctx context.Context, stderr io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec executor = osExecutor{}

// Config holds converter settings.
type Config struct {
	// Timeout bounds the child process wall-clock time (default DefaultTimeout).
	Timeout time.Duration

	// TempDir is the parent directory for scratch workspaces (default os.TempDir()).
	TempDir string

	// Logger receives cleanup warnings (default slog.Default()).
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Converter transcodes legacy documents with a headless LibreOffice process.
// It holds no per-request state; concurrent Convert calls each get their own
// workspace and never collide on disk.
type Converter struct {
	cfg  Config
	exec executor
}

// New creates a Converter with the given configuration.
func New(cfg Config) *Converter {
	return newConverter(cfg, defaultExec)
}

func newConverter(cfg Config, exec executor) *Converter {
	cfg.defaults()
	return &Converter{cfg: cfg, exec: exec}
}

// Convert transcodes a legacy .doc buffer into .docx bytes. It does not retry;
// retries, if any, are the caller's prerogative.
func (c *Converter) Convert(ctx context.Context, doc []byte) ([]byte, error) {
	if _, err := c.exec.LookPath(binLibreOffice); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConverterUnavailable, err)
	}

	workspace, err := os.MkdirTemp(c.cfg.TempDir, "soffice-*")
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}
	defer func() {
		// Cleanup failures are logged but never mask the conversion result.
		if err := os.RemoveAll(workspace); err != nil {
			c.cfg.Logger.Warn("workspace cleanup failed", "dir", workspace, "error", err)
		}
	}()

	inputPath := filepath.Join(workspace, inputName)
	if err := os.WriteFile(inputPath, doc, 0o644); err != nil {
		return nil, fmt.Errorf("writing input file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var stderr bytes.Buffer
	runErr := c.exec.Run(ctx, &stderr, binLibreOffice,
		"--headless", "--convert-to", "docx", "--outdir", workspace, inputPath)

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return nil, fmt.Errorf("%w after %v", ErrConversionTimeout, c.cfg.Timeout)
	case ctx.Err() != nil:
		// Caller cancellation (e.g. client disconnect); the child was killed.
		return nil, fmt.Errorf("conversion cancelled: %w", ctx.Err())
	case runErr != nil:
		return nil, fmt.Errorf("%w: %v: %s", ErrConversionFailed, runErr, strings.TrimSpace(stderr.String()))
	}

	out, err := os.ReadFile(filepath.Join(workspace, outputName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no output produced", ErrConversionFailed)
		}
		return nil, fmt.Errorf("reading output file: %w", err)
	}

	return out, nil
}
