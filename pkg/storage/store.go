// Package storage persists uploaded images and returns the public URL the
// SPA renders them from. Three backends are available: local disk,
// S3-compatible object storage (DigitalOcean Spaces) and MongoDB GridFS.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	pkgerrors "hostel-drishti/backend/pkg/errors"
)

// Folders images are grouped under
const (
	FolderHostels = "hostels"
	FolderDaily   = "daily"
)

// ErrObjectNotFound no stored image with that id
var ErrObjectNotFound = errors.New("image not found")

// Object an image ready to be stored
type Object struct {
	Folder      string
	Filename    string // original client filename, informational only
	ContentType string
	Ext         string // ".jpg" or ".png"
	Data        []byte
}

// Key unique object key under the folder
func (o Object) Key() string {
	return fmt.Sprintf("%s/%s%s", o.Folder, uuid.New().String(), o.Ext)
}

// Store persists an image and returns its public URL
type Store interface {
	Save(ctx context.Context, obj Object) (string, error)
	Name() string
}

// Opener serves images back for stores that are not publicly reachable
type Opener interface {
	Open(ctx context.Context, id string) (data []byte, contentType string, err error)
}

// ── upload validation ──

var allowedExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ReadUpload reads and validates a multipart image part.
// Only jpeg/jpg/png are accepted, by both extension and sniffed content.
func ReadUpload(fh *multipart.FileHeader, folder string, maxBytes int64) (Object, error) {
	if fh == nil {
		return Object{}, pkgerrors.Validation("image file is required")
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return Object{}, pkgerrors.Validation("%s exceeds the %d MB limit", fh.Filename, maxBytes>>20)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	want, ok := allowedExt[ext]
	if !ok {
		return Object{}, pkgerrors.Validation("Images only (jpeg, jpg, png)")
	}

	f, err := fh.Open()
	if err != nil {
		return Object{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	reader := io.Reader(f)
	if maxBytes > 0 {
		reader = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return Object{}, fmt.Errorf("read upload: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return Object{}, pkgerrors.Validation("%s exceeds the %d MB limit", fh.Filename, maxBytes>>20)
	}

	if sniffed := http.DetectContentType(data); sniffed != want {
		return Object{}, pkgerrors.Validation("Images only (jpeg, jpg, png)")
	}

	if ext == ".jpeg" {
		ext = ".jpg"
	}

	return Object{
		Folder:      folder,
		Filename:    filepath.Base(fh.Filename),
		ContentType: want,
		Ext:         ext,
		Data:        data,
	}, nil
}
