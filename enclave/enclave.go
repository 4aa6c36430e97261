// Copyright 2021 Braden Nicholson. All rights reserved.

// Package enclave manages the temporary on-disk workspace one request owns
// exclusively for the duration of its pipeline.
package enclave

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Enclave represents a per-request directory under the temp root. Every
// artifact the pipeline produces (source, tests, intermediates, runner) is
// written beneath Path, and Close removes all of it.
type Enclave struct {
	Path string

	log *zap.Logger
}

// New allocates a fresh directory named by a random identifier under root.
func New(root string, log *zap.Logger) (*Enclave, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	p, err := filepath.Abs(filepath.Join(root, id.String()))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(p, os.ModePerm); err != nil {
		return nil, err
	}
	return &Enclave{Path: p, log: log}, nil
}

// Join resolves a path relative to the enclave root.
func (e *Enclave) Join(rel string) string {
	return filepath.Join(e.Path, rel)
}

// WriteFile places a file inside the enclave, creating parent directories as
// needed.
func (e *Enclave) WriteFile(rel string, data []byte) error {
	p := e.Join(rel)
	if err := os.MkdirAll(filepath.Dir(p), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

// ReadFile reads a file from inside the enclave.
func (e *Enclave) ReadFile(rel string) ([]byte, error) {
	return os.ReadFile(e.Join(rel))
}

// Close removes the enclave directory and everything under it. A missing
// directory is fine; any other removal failure is logged and otherwise
// ignored, since it must not alter the request's result.
func (e *Enclave) Close() {
	err := os.RemoveAll(e.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		e.log.Error("enclave teardown failed", zap.String("path", e.Path), zap.Error(err))
	}
}
