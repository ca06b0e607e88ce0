package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/shortsview-backend/internal/data/repos"
	"github.com/yungbote/shortsview-backend/internal/data/repos/testutil"
	types "github.com/yungbote/shortsview-backend/internal/domain"
	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/shortsview-backend/internal/pkg/errors"
)

func newTestCatalog(t *testing.T) (CatalogService, *memMedia, dbctx.Context) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	media := newMemMedia()
	svc := NewCatalogService(
		db,
		log,
		repos.NewVideoRepo(db, log),
		repos.NewViewEventRepo(db, log),
		repos.NewEmotionSampleRepo(db, log),
		media,
		nil,
	)
	return svc, media, dbctx.Context{Ctx: context.Background(), Tx: tx}
}

func TestCatalogUploadValidation(t *testing.T) {
	svc, media, dbc := newTestCatalog(t)

	cases := []struct {
		name string
		in   UploadInput
		want string
	}{
		{name: "no file part", in: UploadInput{Title: "t"}, want: MsgNoVideoFile},
		{name: "empty filename", in: UploadInput{Title: "t", Filename: "", Content: strings.NewReader("x")}, want: MsgNoSelectedFile},
		{name: "bad extension", in: UploadInput{Title: "t", Filename: "clip.exe", Content: strings.NewReader("x")}, want: MsgFileNotAllowed},
		{name: "no extension", in: UploadInput{Title: "t", Filename: "clip", Content: strings.NewReader("x")}, want: MsgFileNotAllowed},
		{name: "blank title", in: UploadInput{Title: "  ", Filename: "clip.mp4", Content: strings.NewReader("x")}, want: MsgTitleRequired},
		{name: "nothing left after sanitising", in: UploadInput{Title: "t", Filename: "../.mp4", Content: strings.NewReader("x")}, want: MsgFileNotAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upload(dbc, tc.in)
			var verr *pkgerrors.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Message != tc.want {
				t.Fatalf("message: got=%q want=%q", verr.Message, tc.want)
			}
		})
	}
	if len(media.files) != 0 {
		t.Fatalf("rejected uploads must not store media, got %v", media.files)
	}
}

func TestCatalogUploadListDelete(t *testing.T) {
	svc, media, dbc := newTestCatalog(t)

	v, err := svc.Upload(dbc, UploadInput{
		Title:    " Cat video ",
		Filename: "My Cat.MP4",
		Content:  strings.NewReader("frames"),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if v.Title != "Cat video" || v.Filename != "My_Cat.MP4" || v.Views != 0 {
		t.Fatalf("Upload: unexpected video %+v", v)
	}
	if v.URL != "/media/My_Cat.MP4" {
		t.Fatalf("Upload: url got=%q", v.URL)
	}
	if !media.has("My_Cat.MP4") {
		t.Fatalf("Upload: media not stored")
	}

	// An older video to check ordering.
	older := testutil.SeedVideo(t, dbc.Ctx, dbc.Tx, "older", 3)
	if err := dbc.Tx.Model(older).Update("upload_date", time.Now().UTC().Add(-48*time.Hour)).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	newest, err := svc.ListNewestFirst(dbc)
	if err != nil {
		t.Fatalf("ListNewestFirst: %v", err)
	}
	if len(newest) != 2 || newest[0].ID != v.ID || newest[1].ID != older.ID {
		t.Fatalf("ListNewestFirst: unexpected order %+v", newest)
	}
	all, err := svc.ListAll(dbc)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 2 || all[0].ID != v.ID {
		t.Fatalf("ListAll: unexpected %+v", all)
	}

	acc := testutil.SeedAccount(t, dbc.Ctx, dbc.Tx, "fay")
	testutil.SeedViewEvent(t, dbc.Ctx, dbc.Tx, acc.ID, v.ID, 3, true)
	testutil.SeedEmotionSample(t, dbc.Ctx, dbc.Tx, acc.ID, v.ID, time.Now(), types.EmotionScores{Happy: 1})
	testutil.SeedViewEvent(t, dbc.Ctx, dbc.Tx, acc.ID, older.ID, 3, true)

	if err := svc.Delete(dbc, v.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if media.has("My_Cat.MP4") {
		t.Fatalf("Delete: media still stored")
	}
	if _, err := svc.Get(dbc, v.ID); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("Get after delete: expected ErrNotFound, got %v", err)
	}
	if n := testutil.CountRows(t, dbc.Ctx, dbc.Tx, &types.ViewEvent{}, "video_id = ?", v.ID); n != 0 {
		t.Fatalf("view events left for deleted video: %d", n)
	}
	if n := testutil.CountRows(t, dbc.Ctx, dbc.Tx, &types.EmotionSample{}, "video_id = ?", v.ID); n != 0 {
		t.Fatalf("emotion samples left for deleted video: %d", n)
	}
	if n := testutil.CountRows(t, dbc.Ctx, dbc.Tx, &types.ViewEvent{}, "video_id = ?", older.ID); n != 1 {
		t.Fatalf("other video's events touched: %d", n)
	}
}

func TestCatalogDeleteEdgeCases(t *testing.T) {
	svc, _, dbc := newTestCatalog(t)

	if err := svc.Delete(dbc, 42); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("Delete unknown: expected ErrNotFound, got %v", err)
	}

	// Media that was never stored is tolerated.
	v := testutil.SeedVideo(t, dbc.Ctx, dbc.Tx, "orphan", 0)
	if err := svc.Delete(dbc, v.ID); err != nil {
		t.Fatalf("Delete with missing media: %v", err)
	}
	if n := testutil.CountRows(t, dbc.Ctx, dbc.Tx, &types.Video{}, "id = ?", v.ID); n != 0 {
		t.Fatalf("video row still present")
	}
}
