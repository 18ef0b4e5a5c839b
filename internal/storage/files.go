package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadDir resolves the directory for stored document files.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads/user_documents"
}

// EnsureUploadDir creates the upload directory if it does not exist.
func EnsureUploadDir() error {
	return os.MkdirAll(UploadDir(), 0o755)
}

// DocumentPath builds an opaque storage path for an uploaded file. The
// original name is discarded except for its extension; file bytes are opaque
// to the verification core.
func DocumentPath(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return filepath.Join(UploadDir(), uuid.NewString()+ext)
}
