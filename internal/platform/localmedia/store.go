package localmedia

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/shortsview-backend/internal/pkg/errors"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

// DefaultURLPrefix is the route the HTTP layer serves Dir under.
const DefaultURLPrefix = "/media"

// Store keeps uploaded videos as flat files in one directory.
type Store struct {
	log       *logger.Logger
	dir       string
	urlPrefix string
}

func New(log *logger.Logger, dir, urlPrefix string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("upload dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	urlPrefix = strings.TrimRight(strings.TrimSpace(urlPrefix), "/")
	if urlPrefix == "" {
		urlPrefix = DefaultURLPrefix
	}
	return &Store{
		log:       log.With("service", "LocalMediaStore"),
		dir:       dir,
		urlPrefix: urlPrefix,
	}, nil
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) URLPrefix() string { return s.urlPrefix }

func (s *Store) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || filepath.Base(key) != key || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("media key %q: %w", key, pkgerrors.ErrInvalidArgument)
	}
	return filepath.Join(s.dir, key), nil
}

// Save writes file under key, replacing any previous content. The data is
// written to a temp file first and renamed into place.
func (s *Store) Save(dbc dbctx.Context, key string, file io.Reader) error {
	dst, err := s.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }

	if _, err := io.Copy(tmp, readerWithContext(dbc.Ctx, file)); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		cleanup()
		return fmt.Errorf("move %q into place: %w", key, err)
	}
	s.log.Debug("Media saved", "key", key)
	return nil
}

func (s *Store) Delete(_ dbctx.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("media %q: %w", key, pkgerrors.ErrNotFound)
		}
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

func (s *Store) URL(key string) string {
	return s.urlPrefix + "/" + url.PathEscape(key)
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	if ctx == nil {
		return r
	}
	return &ctxReader{ctx: ctx, r: r}
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
