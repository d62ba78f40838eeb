package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckAPI rejects api calls without the right apikey while api key auth is on.
func (d *Dispatcher) CheckAPI(c *gin.Context) {
	s := d.Settings.Load()
	if !s.UseAPIKey {
		c.Next()
		return
	}
	key := c.Query("apikey")
	if key == "" {
		key = c.PostForm("apikey")
	}
	if s.APIKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(s.APIKey)) != 1 {
		c.String(http.StatusForbidden, "Forbidden")
		c.Abort()
		return
	}
	c.Next()
}

func (d *Dispatcher) API(c *gin.Context) {
	sub := c.Param("sub")
	countRequest("api", sub)
	switch sub {
	case "m3u":
		content, err := d.Channels.M3U()
		if err != nil {
			d.fail("api", sub, err)
			c.Status(http.StatusOK)
			return
		}
		c.Data(http.StatusOK, "application/vnd.apple.mpegurl", []byte(content))
	default:
		c.Status(http.StatusOK)
	}
}
