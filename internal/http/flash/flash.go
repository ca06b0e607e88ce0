// Package flash carries one-shot user messages across a redirect in a cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const cookieName = "flash"

// maxMessages bounds the cookie size.
const maxMessages = 8

const (
	CategoryInfo  = "info"
	CategoryError = "error"
)

type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Add appends a message to the flash cookie on the response. Messages added
// earlier in the same request are kept.
func Add(c *gin.Context, category, text string) {
	msgs := pending(c)
	msgs = append(msgs, Message{Category: category, Text: text})
	if len(msgs) > maxMessages {
		msgs = msgs[len(msgs)-maxMessages:]
	}
	raw, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	c.Set(cookieName, msgs)
	setCookie(c, base64.RawURLEncoding.EncodeToString(raw), 0)
}

// Pop returns the messages carried by the request and clears the cookie.
func Pop(c *gin.Context) []Message {
	msgs := fromRequest(c)
	if len(msgs) > 0 {
		setCookie(c, "", -1)
	}
	return msgs
}

func pending(c *gin.Context) []Message {
	if v, ok := c.Get(cookieName); ok {
		if msgs, ok := v.([]Message); ok {
			return msgs
		}
	}
	return fromRequest(c)
}

func fromRequest(c *gin.Context) []Message {
	val, err := c.Cookie(cookieName)
	if err != nil || val == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(val)
	if err != nil {
		return nil
	}
	var msgs []Message
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil
	}
	return msgs
}

func setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, value, maxAge, "/", "", c.Request.TLS != nil, true)
}
