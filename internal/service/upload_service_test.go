package service

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type storageStub struct {
	uploaded bytes.Buffer
	deleted  []string
}

func (s *storageStub) Upload(_ context.Context, name string, reader io.Reader) (string, error) {
	s.uploaded.Reset()
	if _, err := s.uploaded.ReadFrom(reader); err != nil {
		return "", err
	}
	return "https://cdn.example.com/" + name, nil
}

func (s *storageStub) Delete(_ context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	return nil
}

func TestProfileImageServiceRejectsSize(t *testing.T) {
	storage := &storageStub{}
	svc := NewProfileImageService(storage, "", 1, testLogger())

	file := buildFileHeader(t, "avatar.png", "image/png", bytes.Repeat([]byte("a"), 2*1024*1024))

	_, err := svc.Replace(context.Background(), file, "")
	require.ErrorIs(t, err, ErrImageTooLarge)
}

func TestProfileImageServiceRejectsNonImage(t *testing.T) {
	storage := &storageStub{}
	svc := NewProfileImageService(storage, "", 5, testLogger())

	file := buildFileHeader(t, "notes.txt", "text/plain", []byte("plain text"))

	_, err := svc.Replace(context.Background(), file, "")
	require.ErrorIs(t, err, ErrImageTypeNotAllowed)
}

func TestProfileImageServiceReplacesPrevious(t *testing.T) {
	storage := &storageStub{}
	svc := NewProfileImageService(storage, "https://cdn.example.com/default.png", 5, testLogger())

	file := buildFileHeader(t, "avatar.png", "image/png", pngBytes())

	url, err := svc.Replace(context.Background(), file, "https://cdn.example.com/old.png")
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/avatar.png", url)
	require.Equal(t, []string{"https://cdn.example.com/old.png"}, storage.deleted)
}

func TestProfileImageServiceKeepsPlaceholder(t *testing.T) {
	storage := &storageStub{}
	svc := NewProfileImageService(storage, "https://cdn.example.com/default.png", 5, testLogger())

	file := buildFileHeader(t, "avatar.png", "image/png", pngBytes())

	_, err := svc.Replace(context.Background(), file, "https://cdn.example.com/default.png")
	require.NoError(t, err)
	require.Empty(t, storage.deleted)
}
