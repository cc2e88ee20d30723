// Package bpfile reads and writes blueprint files: a gzip-compressed
// binary NBT compound, the export format of the original mod. Parsing
// into and out of the blueprint model is the codec's job; this package
// only moves tag trees between bytes and files.
package bpfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
)

// Parse decodes a blueprint blob into a tag tree. Uncompressed NBT is
// accepted too; the gzip magic decides.
func Parse(b []byte) (map[string]any, error) {
	if len(b) >= 2 && b[0] == 0x1f && b[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("gunzip: %w", err)
		}
		defer zr.Close()
		raw, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("gunzip: %w", err)
		}
		b = raw
	}
	var root map[string]any
	if err := nbt.Unmarshal(b, &root); err != nil {
		return nil, fmt.Errorf("parse nbt: %w", err)
	}
	return root, nil
}

// Encode is the inverse of Parse; output is always gzip-compressed.
func Encode(root map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := nbt.NewEncoder(zw).Encode(root, ""); err != nil {
		return nil, fmt.Errorf("encode nbt: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return buf.Bytes(), nil
}

// Read loads a blueprint tag tree from disk.
func Read(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// Write stores a blueprint tag tree to disk.
func Write(path string, root map[string]any) error {
	b, err := Encode(root)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return os.WriteFile(path, b, 0o644)
}
