package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
)

var (
	// ErrImageTooLarge indicates the payload exceeded the configured limit.
	ErrImageTooLarge = errors.New("image exceeds maximum allowed size")
	// ErrImageTypeNotAllowed indicates the payload is not an image.
	ErrImageTypeNotAllowed = errors.New("file type not allowed, expected an image")
)

// FileStorage abstracts the external profile image store.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// ProfileImageService validates and stores profile images, replacing the
// previous asset when one exists.
type ProfileImageService interface {
	Replace(ctx context.Context, file *multipart.FileHeader, previousURL string) (string, error)
}

type profileImageService struct {
	storage    FileStorage
	defaultURL string
	maxSize    int64
	logger     zerolog.Logger
}

// NewProfileImageService constructs the profile image service. defaultURL is
// the placeholder avatar that must never be deleted.
func NewProfileImageService(storage FileStorage, defaultURL string, maxSizeMB int, logger zerolog.Logger) ProfileImageService {
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &profileImageService{
		storage:    storage,
		defaultURL: strings.TrimSpace(defaultURL),
		maxSize:    int64(maxSizeMB) * 1024 * 1024,
		logger:     logger.With().Str("component", "profile_image_service").Logger(),
	}
}

func (s *profileImageService) Replace(ctx context.Context, file *multipart.FileHeader, previousURL string) (string, error) {
	if file == nil {
		return "", errors.New("file is required")
	}

	if file.Size > s.maxSize {
		return "", ErrImageTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		return "", err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		return "", err
	}
	if int64(buf.Len()) > s.maxSize {
		return "", ErrImageTooLarge
	}

	mime := mimetype.Detect(buf.Bytes())
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", ErrImageTypeNotAllowed
	}

	url, err := s.storage.Upload(ctx, file.Filename, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return "", err
	}

	// The old asset goes away unless it is the shared placeholder.
	previous := strings.TrimSpace(previousURL)
	if previous != "" && previous != s.defaultURL {
		if err := s.storage.Delete(ctx, previous); err != nil {
			s.logger.Warn().Err(err).Str("url", previous).Msg("failed to delete previous profile image")
		}
	}

	return url, nil
}
