package site

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/docrender/internal/errors"
)

// WritePage writes content to relativePath under outDir, replacing any
// existing file.
//
// The path must stay inside outDir. Parent directories are created with
// 0o750 and files are written with 0o600.
func WritePage(outDir, relativePath string, content []byte) (string, error) {
	if outDir == "" {
		return "", derrors.InvalidArgument("outDir", "must not be empty")
	}
	if relativePath == "" {
		return "", derrors.InvalidArgument("path", "must not be empty")
	}

	cleanRel := filepath.Clean(filepath.FromSlash(relativePath))
	if filepath.IsAbs(cleanRel) || cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", derrors.InvalidArgument("path", "must be relative to the output directory: "+relativePath)
	}

	fullPath := filepath.Join(outDir, cleanRel)
	rel, err := filepath.Rel(outDir, fullPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", derrors.InvalidArgument("path", "escapes the output directory: "+relativePath)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", derrors.OutputError("create page directory", err).WithContext("path", fullPath)
	}
	if err := os.WriteFile(fullPath, content, 0o600); err != nil {
		return "", derrors.OutputError("write page", err).WithContext("path", fullPath)
	}
	return fullPath, nil
}

// cleanOutput removes outDir. The filesystem root, the working directory and
// protectDir are never removed.
func cleanOutput(outDir, protectDir string) error {
	abs, err := filepath.Abs(outDir)
	if err != nil {
		return derrors.OutputError("resolve output directory", err)
	}
	refuse := []string{filepath.VolumeName(abs) + string(filepath.Separator)}
	if wd, err := os.Getwd(); err == nil {
		refuse = append(refuse, wd)
	}
	if protectDir != "" {
		if p, err := filepath.Abs(protectDir); err == nil {
			refuse = append(refuse, p)
		}
	}
	for _, r := range refuse {
		if abs == r {
			return derrors.ConfigInvalid("output.directory", "refusing to clean "+abs)
		}
	}
	if err := os.RemoveAll(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		return derrors.OutputError("clean output directory", err).WithContext("path", abs)
	}
	return nil
}
