package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/shortsview-backend/internal/domain"
	"github.com/yungbote/shortsview-backend/internal/http/flash"
	"github.com/yungbote/shortsview-backend/internal/platform/ctxutil"
)

// Page is the data handed to every HTML template.
type Page struct {
	Title     string
	User      *ctxutil.RequestData
	Flashes   []flash.Message
	Videos    []*types.Video
	Dashboard any
	Message   string
}

// render fills in the signed-in account and pending flash messages.
func render(c *gin.Context, status int, name string, p Page) {
	if p.User == nil {
		p.User = ctxutil.GetRequestData(c.Request.Context())
	}
	p.Flashes = append(flash.Pop(c), p.Flashes...)
	c.HTML(status, name, p)
}

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

func accountID(c *gin.Context) uint {
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
		return rd.AccountID
	}
	return 0
}
