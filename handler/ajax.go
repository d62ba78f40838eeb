package handler

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/snowie2000/hdhomerun/global"
	"github.com/snowie2000/hdhomerun/util"
)

var errMissingField = errors.New("missing form field")

type ajaxFunc func(c *gin.Context) (any, error)

func (d *Dispatcher) ajaxHandler(sub string) ajaxFunc {
	switch sub {
	case "setting_save":
		return d.settingSave
	case "read_data":
		return d.readData
	case "load_data":
		return d.loadData
	case "load_db":
		return d.loadDB
	case "group_sort":
		return d.groupSort
	case "save":
		return d.save
	case "match_for_epg_name":
		return d.matchForEpgName
	case "delete":
		return d.delete
	case "ip_fix":
		return d.ipFix
	}
	return nil
}

func (d *Dispatcher) Ajax(c *gin.Context) {
	sub := c.Param("sub")
	d.Logger.Printf("[%s] AJAX sub:%s", global.PackageName, sub)
	countRequest("ajax", sub)
	handle := d.ajaxHandler(sub)
	if handle == nil {
		c.Status(http.StatusOK)
		return
	}
	ret, err := handle(c)
	if err != nil {
		d.fail("ajax", sub, err)
		if sub == "setting_save" {
			c.JSON(http.StatusOK, "fail")
		} else {
			c.Status(http.StatusOK)
		}
		return
	}
	c.JSON(http.StatusOK, ret)
}

func postForm(c *gin.Context, key string) (string, error) {
	v, ok := c.GetPostForm(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", errMissingField, key)
	}
	return v, nil
}

func postID(c *gin.Context) (uint, error) {
	raw, err := postForm(c, "id")
	if err != nil {
		return 0, err
	}
	id := util.String2Uint(raw)
	if id == 0 {
		return 0, fmt.Errorf("invalid channel id %q", raw)
	}
	return id, nil
}

// dbEnvelope is the {setting, data} document the channel page renders from.
func (d *Dispatcher) dbEnvelope() (gin.H, error) {
	channels, err := d.Channels.ChannelList(false)
	if err != nil {
		return nil, err
	}
	return gin.H{
		"setting": d.Settings.ToMap(),
		"data":    channels,
	}, nil
}

func (d *Dispatcher) settingSave(c *gin.Context) (any, error) {
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	if err := d.Settings.Save(c.Request.PostForm); err != nil {
		return nil, err
	}
	return true, nil
}

func (d *Dispatcher) readData(c *gin.Context) (any, error) {
	name, err := postForm(c, "data_filename")
	if err != nil {
		return nil, err
	}
	path := filepath.Join(d.DataDir, filepath.Clean("/"+name))
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(content), "\n"), nil
}

func (d *Dispatcher) loadData(c *gin.Context) (any, error) {
	return d.Channels.LoadData(c.Request.Context())
}

func (d *Dispatcher) loadDB(c *gin.Context) (any, error) {
	return d.dbEnvelope()
}

func (d *Dispatcher) groupSort(c *gin.Context) (any, error) {
	groups, err := d.Channels.GroupSort()
	if err != nil {
		return nil, err
	}
	return gin.H{
		"setting": d.Settings.ToMap(),
		"data":    groups,
	}, nil
}

func (d *Dispatcher) save(c *gin.Context) (any, error) {
	payload, err := postForm(c, "data")
	if err != nil {
		return nil, err
	}
	if err := d.Channels.Save(payload); err != nil {
		return nil, err
	}
	return d.dbEnvelope()
}

func (d *Dispatcher) matchForEpgName(c *gin.Context) (any, error) {
	name, err := postForm(c, "for_epg_name")
	if err != nil {
		return nil, err
	}
	id, err := postID(c)
	if err != nil {
		return nil, err
	}
	return d.Channels.MatchForEpgName(id, name)
}

func (d *Dispatcher) delete(c *gin.Context) (any, error) {
	id, err := postID(c)
	if err != nil {
		return nil, err
	}
	ok, err := d.Channels.Delete(id)
	if err != nil {
		return nil, err
	}
	ret, err := d.dbEnvelope()
	if err != nil {
		return nil, err
	}
	ret["ret"] = ok
	return ret, nil
}

func (d *Dispatcher) ipFix(c *gin.Context) (any, error) {
	raw, err := postForm(c, "deviceid")
	if err != nil {
		return nil, err
	}
	deviceID := normalizeDeviceID(raw)
	if err := d.Settings.Set("deviceid", deviceID); err != nil {
		return nil, err
	}
	return d.Channels.IPFix(c.Request.Context(), deviceID)
}
