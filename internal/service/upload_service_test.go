package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "confusion/internal/errors"
	"confusion/internal/storage"
)

func multipartFile(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/imageUpload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File[field][0]
}

func TestUploadService_UploadImage(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewDiskStore(dir)
	require.NoError(t, err)
	svc := NewUploadService(store)

	tests := []struct {
		name     string
		filename string
		wantErr  error
	}{
		{"png", "buffet.png", nil},
		{"jpeg", "alberto.jpeg", nil},
		{"gif", "spin.gif", nil},
		{"pdf rejected", "menu.pdf", apperrors.ErrInvalidImage},
		{"extension must be last", "trick.png.exe", apperrors.ErrInvalidImage},
		{"uppercase rejected", "LOUD.PNG", apperrors.ErrInvalidImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fh := multipartFile(t, "imageFile", tt.filename, []byte("data"))

			got, err := svc.UploadImage(context.Background(), "imageFile", fh)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.NoFileExists(t, filepath.Join(dir, tt.filename))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "imageFile", got.FieldName)
			assert.Equal(t, tt.filename, got.OriginalName)
			assert.Equal(t, tt.filename, got.Filename)
			assert.Equal(t, int64(4), got.Size)

			data, err := os.ReadFile(got.Path)
			require.NoError(t, err)
			assert.Equal(t, "data", string(data))
		})
	}
}
