package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/therishabh/chai-backend/internal/account/domain UserRepository,AssetUploader

import (
	"context"
	"io"
)

// UserRepository is the credential store. Lookups return (nil, nil) when no
// record matches; UpdateFields applies a single atomic update and returns the
// updated record, or (nil, nil) when the row is gone.
type UserRepository interface {
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdateFields(ctx context.Context, id string, fields map[string]any) (*User, error)
}

// Asset is an uploaded file handed from the transport layer to the uploader.
type Asset struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// AssetUploader stores a binary asset on the media host and returns its
// public URL.
type AssetUploader interface {
	Upload(ctx context.Context, asset Asset) (string, error)
}
