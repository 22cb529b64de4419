package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"regexp"

	apperrors "confusion/internal/errors"
	"confusion/internal/storage"
)

var imageName = regexp.MustCompile(`\.(jpg|jpeg|png|gif)$`)

// UploadedFile describes a stored upload.
type UploadedFile struct {
	FieldName    string `json:"fieldname"`
	OriginalName string `json:"originalname"`
	MimeType     string `json:"mimetype"`
	Destination  string `json:"destination"`
	Filename     string `json:"filename"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
}

// UploadService accepts image files for the menu.
type UploadService interface {
	UploadImage(ctx context.Context, field string, file *multipart.FileHeader) (*UploadedFile, error)
}

type uploadService struct {
	store storage.ImageStore
}

// NewUploadService builds an UploadService on top of an image store.
func NewUploadService(store storage.ImageStore) UploadService {
	return &uploadService{store: store}
}

// UploadImage stores file under its original name; only jpg, jpeg, png and gif are accepted.
func (s *uploadService) UploadImage(ctx context.Context, field string, file *multipart.FileHeader) (*UploadedFile, error) {
	if !imageName.MatchString(file.Filename) {
		return nil, apperrors.ErrInvalidImage
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mimeType := file.Header.Get("Content-Type")
	obj, err := s.store.Save(ctx, file.Filename, mimeType, src, file.Size)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	return &UploadedFile{
		FieldName:    field,
		OriginalName: file.Filename,
		MimeType:     mimeType,
		Destination:  obj.Destination,
		Filename:     obj.Filename,
		Path:         obj.Path,
		Size:         file.Size,
	}, nil
}
