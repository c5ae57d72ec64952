package service

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"printer-service/internal/apperror"
)

// ResolveUpload maps a client supplied file reference to an absolute path
// inside uploadDir. References escaping the directory, directly or through
// symlinks, are rejected.
func ResolveUpload(uploadDir, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", apperror.PayloadInvalid("File path is required", nil)
	}

	root, err := filepath.Abs(uploadDir)
	if err != nil {
		return "", apperror.Internal("Upload directory is not usable", err)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	path = filepath.Clean(path)

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", apperror.PayloadInvalid("Uploaded file not found", nil)
		}
		return "", apperror.PayloadInvalid("Uploaded file is not readable", err)
	}

	rel, err := filepath.Rel(root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", apperror.PayloadInvalid("File path is outside the upload directory", nil)
	}

	info, err := os.Stat(resolved)
	if err != nil || info.IsDir() {
		return "", apperror.PayloadInvalid("Uploaded file is not a regular file", err)
	}
	return resolved, nil
}
