package services

import (
	"io"

	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
)

// MediaStore holds uploaded video files by key. Delete returns an error
// matching pkgerrors.ErrNotFound when nothing is stored under key.
type MediaStore interface {
	Save(dbc dbctx.Context, key string, file io.Reader) error
	Delete(dbc dbctx.Context, key string) error
	URL(key string) string
}
