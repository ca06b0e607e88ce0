package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/shortsview-backend/internal/http/flash"
	"github.com/yungbote/shortsview-backend/internal/http/response"
	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/shortsview-backend/internal/pkg/errors"
	"github.com/yungbote/shortsview-backend/internal/services"
)

const MsgUploadTooLarge = "Upload is too large"

type CatalogHandler struct {
	catalog        services.CatalogService
	maxUploadBytes int64
}

func NewCatalogHandler(catalog services.CatalogService, maxUploadBytes int64) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, maxUploadBytes: maxUploadBytes}
}

// GET /
func (h *CatalogHandler) Index(c *gin.Context) {
	videos, err := h.catalog.ListNewestFirst(dbctx.New(c.Request.Context()))
	if err != nil {
		response.RespondServiceError(c, err, "")
		return
	}
	render(c, http.StatusOK, "index.html", Page{Title: "Videos", Videos: videos})
}

// GET /admin
func (h *CatalogHandler) Admin(c *gin.Context) {
	videos, err := h.catalog.ListAll(dbctx.New(c.Request.Context()))
	if err != nil {
		response.RespondServiceError(c, err, "")
		return
	}
	render(c, http.StatusOK, "admin.html", Page{Title: "Admin", Videos: videos})
}

// POST /upload
func (h *CatalogHandler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	in, closeFile, err := uploadInput(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			flash.Add(c, flash.CategoryError, MsgUploadTooLarge)
			c.Redirect(http.StatusFound, "/admin")
			return
		}
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	defer closeFile()

	_, err = h.catalog.Upload(dbctx.New(c.Request.Context()), in)
	var verr *pkgerrors.ValidationError
	if errors.As(err, &verr) {
		flash.Add(c, flash.CategoryError, verr.Message)
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	if err != nil {
		response.RespondServiceError(c, err, "")
		return
	}
	flash.Add(c, flash.CategoryInfo, services.MsgVideoUploaded)
	c.Redirect(http.StatusFound, "/admin")
}

// uploadInput reads the multipart form. A "video" part sent without a file
// name (an empty file input) comes back with an empty Filename and non-nil
// Content; no "video" part at all leaves Content nil.
func uploadInput(c *gin.Context) (services.UploadInput, func(), error) {
	noop := func() {}
	form, err := c.MultipartForm()
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return services.UploadInput{}, noop, fmt.Errorf("parse upload: %w", err)
	}
	in := services.UploadInput{Title: c.PostForm("title")}
	if form == nil {
		return in, noop, nil
	}
	if files := form.File["video"]; len(files) > 0 {
		fh := files[0]
		f, err := fh.Open()
		if err != nil {
			return in, noop, fmt.Errorf("open upload: %w", err)
		}
		in.Filename = fh.Filename
		in.Content = f
		return in, func() { _ = f.Close() }, nil
	}
	if _, ok := form.Value["video"]; ok {
		in.Content = strings.NewReader("")
	}
	return in, noop, nil
}

// GET /delete_video/:id
func (h *CatalogHandler) DeleteVideo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		render(c, http.StatusNotFound, "not_found.html", Page{Title: "Not found"})
		return
	}
	err = h.catalog.Delete(dbctx.New(c.Request.Context()), uint(id))
	if errors.Is(err, pkgerrors.ErrNotFound) {
		render(c, http.StatusNotFound, "not_found.html", Page{
			Title:   "Not found",
			Message: fmt.Sprintf("Video %d does not exist.", id),
		})
		return
	}
	if err != nil {
		response.RespondServiceError(c, err, "")
		return
	}
	flash.Add(c, flash.CategoryInfo, services.MsgVideoDeleted)
	c.Redirect(http.StatusFound, "/admin")
}
