// Package publish keeps a stable "latest" path pointing at the newest
// report artifact. It is the only place with platform-specific link logic.
package publish

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Mode selects how the latest path tracks the newest artifact
type Mode string

const (
	ModeSymlink Mode = "symlink"
	ModeCopy    Mode = "copy"
	ModeSkip    Mode = "skip"
)

// ParseMode resolves a mode name from configuration.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSymlink, ModeCopy, ModeSkip:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown latest-result mode %q (expected one of symlink, copy, skip)", s)
}

// Publish makes latestPath reflect artifactPath according to mode. A stale
// link, file, or copy at latestPath from an earlier run is replaced; the
// replacement goes through a temporary name and a rename so concurrent
// readers never observe a broken intermediate state.
func Publish(artifactPath, latestPath string, mode Mode) error {
	switch mode {
	case ModeSkip:
		return nil
	case ModeSymlink:
		return publishSymlink(artifactPath, latestPath)
	case ModeCopy:
		return publishCopy(artifactPath, latestPath)
	}
	return fmt.Errorf("unknown latest-result mode %q", mode)
}

func publishSymlink(artifactPath, latestPath string) error {
	target := artifactPath
	if filepath.Dir(artifactPath) == filepath.Dir(latestPath) {
		// Keep the link relative when both live in the output directory, so
		// the directory can be moved or mounted elsewhere without breaking it.
		target = filepath.Base(artifactPath)
	}

	tmp := latestPath + ".tmp"
	if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale temp link %s: %w", tmp, err)
	}
	if err := os.Symlink(target, tmp); err != nil {
		return fmt.Errorf("failed to create symlink to %s: %w", target, err)
	}
	if err := os.Rename(tmp, latestPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace latest link %s: %w", latestPath, err)
	}
	return nil
}

func publishCopy(artifactPath, latestPath string) error {
	src, err := os.Open(artifactPath)
	if err != nil {
		return fmt.Errorf("failed to open artifact %s: %w", artifactPath, err)
	}
	defer src.Close()

	tmp := latestPath + ".tmp"
	// A leftover symlink at latestPath or tmp from a previous symlink-mode
	// run must not redirect the copy.
	if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale temp file %s: %w", tmp, err)
	}
	dst, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create temp file %s: %w", tmp, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to copy artifact to %s: %w", tmp, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close temp file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, latestPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace latest copy %s: %w", latestPath, err)
	}
	return nil
}
