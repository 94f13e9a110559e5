package storage

import "context"

// Uploader is the storage surface the media service depends on.
// This interface allows for easy mocking in tests.
type Uploader interface {
	UploadAvatar(ctx context.Context, data []byte, contentType, gender string) (*UploadResult, error)
	DeleteFile(ctx context.Context, key string) error
}

// Ensure S3Uploader implements Uploader
var _ Uploader = (*S3Uploader)(nil)
