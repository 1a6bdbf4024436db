package files

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileHeader(t *testing.T, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := multipart.NewReader(&buf, w.Boundary())
	form, err := r.ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File["file"], 1)
	return form.File["file"][0]
}

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, 1<<10)
	require.NoError(t, err)

	tests := []struct {
		name        string
		fileName    string
		contentType string
		content     []byte
		wantErr     error
	}{
		{"png ok", "shot.png", "image/png", []byte("img"), nil},
		{"jpg ok", "photo.JPG", "image/jpeg", []byte("img"), nil},
		{"pdf ok", "report.pdf", "application/pdf", []byte("%PDF"), nil},
		{"zip ok", "code.zip", "application/zip", []byte("PK"), nil},
		{"exe rejected", "tool.exe", "application/octet-stream", []byte("MZ"), ErrFileType},
		{"ext ok but type mismatched", "sneaky.png", "application/octet-stream", []byte("MZ"), ErrFileType},
		{"no extension", "README", "text/plain", []byte("hi"), ErrFileType},
		{"too large", "big.png", "image/png", make([]byte, 2<<10), ErrFileSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fh := newFileHeader(t, tt.fileName, tt.contentType, tt.content)
			url, err := store.Save(fh)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(url, PublicPath+"/"), url)
			assert.True(t, strings.HasSuffix(url, strings.ToLower(filepath.Ext(tt.fileName))), url)

			// the file landed in the directory under its new name
			data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, PublicPath+"/")))
			require.NoError(t, err)
			assert.Equal(t, tt.content, data)
		})
	}
}

func TestLocalStoreUniqueNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), 1<<10)
	require.NoError(t, err)

	fh := newFileHeader(t, "same.png", "image/png", []byte("img"))
	first, err := store.Save(fh)
	require.NoError(t, err)
	second, err := store.Save(fh)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
