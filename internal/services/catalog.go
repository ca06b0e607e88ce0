package services

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/shortsview-backend/internal/data/repos"
	types "github.com/yungbote/shortsview-backend/internal/domain"
	"github.com/yungbote/shortsview-backend/internal/domain/catalog"
	"github.com/yungbote/shortsview-backend/internal/normalization"
	"github.com/yungbote/shortsview-backend/internal/observability"
	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/shortsview-backend/internal/pkg/errors"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

// Messages shown on the admin page after an upload or delete.
const (
	MsgNoVideoFile    = "No video file"
	MsgNoSelectedFile = "No selected file"
	MsgFileNotAllowed = "File type not allowed"
	MsgTitleRequired  = "Title is required"
	MsgVideoUploaded  = "Video uploaded successfully"
	MsgVideoDeleted   = "Video deleted successfully"
)

const (
	uploadOutcomeOK       = "ok"
	uploadOutcomeError    = "error"
	uploadOutcomeRejected = "rejected"
)

type UploadInput struct {
	Title string
	// Filename is the client supplied name of the file part.
	Filename string
	// Content is nil when the request carried no file part.
	Content io.Reader
}

type CatalogService interface {
	ListNewestFirst(dbc dbctx.Context) ([]*types.Video, error)
	ListAll(dbc dbctx.Context) ([]*types.Video, error)
	Get(dbc dbctx.Context, id uint) (*types.Video, error)
	Upload(dbc dbctx.Context, in UploadInput) (*types.Video, error)
	Delete(dbc dbctx.Context, id uint) error
}

type catalogService struct {
	db      *gorm.DB
	log     *logger.Logger
	videos  repos.VideoRepo
	views   repos.ViewEventRepo
	samples repos.EmotionSampleRepo
	media   MediaStore
	metrics *observability.Metrics
	now     func() time.Time
}

func NewCatalogService(
	db *gorm.DB,
	log *logger.Logger,
	videos repos.VideoRepo,
	views repos.ViewEventRepo,
	samples repos.EmotionSampleRepo,
	media MediaStore,
	metrics *observability.Metrics,
) CatalogService {
	return &catalogService{
		db:      db,
		log:     log.With("service", "CatalogService"),
		videos:  videos,
		views:   views,
		samples: samples,
		media:   media,
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (cs *catalogService) withURLs(videos []*types.Video) []*types.Video {
	for _, v := range videos {
		if v != nil {
			v.URL = cs.media.URL(v.Filename)
		}
	}
	return videos
}

func (cs *catalogService) ListNewestFirst(dbc dbctx.Context) ([]*types.Video, error) {
	videos, err := cs.videos.ListNewestFirst(dbc)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return cs.withURLs(videos), nil
}

func (cs *catalogService) ListAll(dbc dbctx.Context) ([]*types.Video, error) {
	videos, err := cs.videos.ListAll(dbc)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return cs.withURLs(videos), nil
}

func (cs *catalogService) Get(dbc dbctx.Context, id uint) (*types.Video, error) {
	v, err := cs.videos.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("video %d: %w", id, pkgerrors.ErrNotFound)
	}
	v.URL = cs.media.URL(v.Filename)
	return v, nil
}

// Upload validates the file part, stores the content under its sanitised
// name and creates the Video row. A file with the same sanitised name is
// overwritten.
func (cs *catalogService) Upload(dbc dbctx.Context, in UploadInput) (*types.Video, error) {
	key, err := validateUpload(in)
	if err != nil {
		cs.metrics.IncUpload(uploadOutcomeRejected)
		return nil, err
	}
	if err := cs.media.Save(dbc, key, in.Content); err != nil {
		cs.metrics.IncUpload(uploadOutcomeError)
		cs.log.Error("Saving upload failed", "key", key, "error", err)
		return nil, fmt.Errorf("save media %q: %w", key, err)
	}
	video, err := cs.videos.Create(dbc, &types.Video{
		Title:      strings.TrimSpace(in.Title),
		Filename:   key,
		UploadDate: cs.now(),
	})
	if err != nil {
		cs.metrics.IncUpload(uploadOutcomeError)
		return nil, fmt.Errorf("create video: %w", err)
	}
	video.URL = cs.media.URL(video.Filename)
	cs.metrics.IncUpload(uploadOutcomeOK)
	cs.log.Info("Video uploaded", "video_id", video.ID, "key", key)
	return video, nil
}

func validateUpload(in UploadInput) (string, error) {
	if in.Content == nil {
		return "", pkgerrors.Validation(MsgNoVideoFile)
	}
	if strings.TrimSpace(in.Filename) == "" {
		return "", pkgerrors.Validation(MsgNoSelectedFile)
	}
	if !catalog.AllowedFile(in.Filename) {
		return "", pkgerrors.Validation(MsgFileNotAllowed)
	}
	if strings.TrimSpace(in.Title) == "" {
		return "", pkgerrors.Validation(MsgTitleRequired)
	}
	key := normalization.SanitizeFilename(in.Filename)
	if key == "" || !catalog.AllowedFile(key) {
		return "", pkgerrors.Validation(MsgFileNotAllowed)
	}
	return key, nil
}

// Delete removes the stored media, then the video row together with its view
// events and emotion samples. Missing media is logged and skipped.
func (cs *catalogService) Delete(dbc dbctx.Context, id uint) error {
	video, err := cs.Get(dbc, id)
	if err != nil {
		return err
	}

	if err := cs.media.Delete(dbc, video.Filename); err != nil {
		if !errors.Is(err, pkgerrors.ErrNotFound) {
			return fmt.Errorf("delete media %q: %w", video.Filename, err)
		}
		cs.log.Warn("Media already gone", "video_id", id, "key", video.Filename)
	}

	deleteRows := func(inner dbctx.Context) error {
		if _, err := cs.views.DeleteByVideo(inner, id); err != nil {
			return fmt.Errorf("delete view events: %w", err)
		}
		if _, err := cs.samples.DeleteByVideo(inner, id); err != nil {
			return fmt.Errorf("delete emotion samples: %w", err)
		}
		n, err := cs.videos.Delete(inner, id)
		if err != nil {
			return fmt.Errorf("delete video: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("video %d: %w", id, pkgerrors.ErrNotFound)
		}
		return nil
	}

	if dbc.Tx != nil {
		err = deleteRows(dbc)
	} else {
		err = cs.db.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
			return deleteRows(dbctx.Context{Ctx: dbc.Ctx, Tx: tx})
		})
	}
	if err != nil {
		cs.log.Warn("Video delete failed", "video_id", id, "error", err)
		return err
	}
	cs.log.Info("Video deleted", "video_id", id, "key", video.Filename)
	return nil
}
