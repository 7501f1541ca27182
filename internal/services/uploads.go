package services

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"codama/internal/storage"
	"codama/internal/utils"
)

// Upload is a file received with a create or update request.
type Upload struct {
	Filename string
	Body     io.Reader
}

// Upload directories on the storage disk.
const (
	DesignDir  = "designs"
	GalleryDir = "galleries"
	ProofDir   = "proofs"
)

var (
	imageExtensions  = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"}
	designExtensions = append([]string{".pdf", ".ai", ".psd", ".eps", ".cdr", ".zip"}, imageExtensions...)
)

func store(disk storage.Disk, dir string, up *Upload, allowed []string) (string, error) {
	ext := strings.ToLower(filepath.Ext(up.Filename))
	if !utils.Contains(allowed, ext) {
		return "", validationError("file type %q is not allowed", ext)
	}
	p, err := disk.Put(dir, up.Filename, up.Body)
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return p, nil
}
