// Package files handles submission attachments: allow-list validation,
// collision-resistant naming and storage behind a small Store interface.
package files

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// PublicPath is the URL prefix stored files are served under.
const PublicPath = "/uploads"

var (
	ErrFileType = errors.New("only images (JPEG, PNG) and documents (PDF, ZIP) are allowed")
	ErrFileSize = errors.New("file exceeds the maximum allowed size")

	// One combined allow-list for both the image and the document field,
	// applied to the extension and the declared content type alike.
	allowedTypes = regexp.MustCompile(`(?i)(jpeg|jpg|png|pdf|zip)`)
)

// Store saves an uploaded file and returns its public URL path.
type Store interface {
	Save(fh *multipart.FileHeader) (string, error)
}

// LocalStore writes uploads to a local directory served as statics.
type LocalStore struct {
	dir     string
	maxSize int64
}

var _ Store = (*LocalStore)(nil)

func NewLocalStore(dir string, maxSize int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating upload dir %s", dir)
	}
	return &LocalStore{dir: dir, maxSize: maxSize}, nil
}

// Save validates the file against the allow-list and size cap, then writes it
// under a collision-resistant name: <unix-millis>-<uuid><ext>.
func (s *LocalStore) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.maxSize {
		return "", ErrFileSize
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedTypes.MatchString(ext) || !allowedTypes.MatchString(fh.Header.Get("Content-Type")) {
		return "", ErrFileType
	}

	src, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(err, "opening upload")
	}
	defer func() { _ = src.Close() }()

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", errors.Wrap(err, "creating file")
	}
	defer func() { _ = dst.Close() }()

	if _, err = io.Copy(dst, src); err != nil {
		return "", errors.Wrap(err, "writing file")
	}
	return PublicPath + "/" + name, nil
}
