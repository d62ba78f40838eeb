package handler

import (
	"bufio"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/snowie2000/hdhomerun/global"
	"golang.org/x/text/language"
)

const logTailLines = 300

var langMatcher = language.NewMatcher([]language.Tag{
	language.Korean,
	language.English,
})

var menuTitles = map[string][]MenuItem{
	"ko": {{"setting", "설정"}, {"channel", "채널"}, {"log", "로그"}},
	"en": {{"setting", "Settings"}, {"channel", "Channels"}, {"log", "Log"}},
}

func menuFor(c *gin.Context) []MenuItem {
	tags, _, _ := language.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
	tag, _, _ := langMatcher.Match(tags...)
	base, _ := tag.Base()
	if items, ok := menuTitles[base.String()]; ok {
		return items
	}
	return menuTitles["ko"]
}

func (d *Dispatcher) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, fmt.Sprintf("/%s/channel", global.PackageName))
}

func (d *Dispatcher) FirstMenu(c *gin.Context) {
	sub := c.Param("sub")
	countRequest("page", sub)
	page := gin.H{
		"package": global.PackageName,
		"menu":    menuFor(c),
		"sub":     sub,
	}
	switch sub {
	case "setting":
		s := d.Settings.Load()
		page["arg"] = d.settingArgs()
		page["use_apikey"] = s.UseAPIKey
		page["auto_scan"] = s.AutoScan
		c.HTML(http.StatusOK, global.PackageName+"_setting.html", page)
	case "channel":
		groups, err := d.Channels.Groups()
		if err != nil {
			d.fail("page", sub, err)
		}
		page["arg"] = gin.H{"groups": groups, "status": d.Channels.ScanStatus()}
		c.HTML(http.StatusOK, global.PackageName+"_channel.html", page)
	case "log":
		lines, err := tailFile(d.LogFile, logTailLines)
		if err != nil {
			d.fail("page", sub, err)
		}
		page["lines"] = lines
		c.HTML(http.StatusOK, "log.html", page)
	case "proxy":
		c.Redirect(http.StatusFound, fmt.Sprintf("/%s/proxy/discover.json", global.PackageName))
	default:
		page["title"] = fmt.Sprintf("%s - %s", global.PackageName, sub)
		c.HTML(http.StatusOK, "sample.html", page)
	}
}

// settingArgs is the settings map plus the links a DVR client needs.
func (d *Dispatcher) settingArgs() map[string]string {
	arg := d.Settings.ToMap()
	s := d.Settings.Load()
	arg["m3u"] = s.WithAPIKey(fmt.Sprintf("%s/%s/api/m3u", s.DDNS, global.PackageName))
	arg["xmltv"] = s.WithAPIKey(fmt.Sprintf("%s/epg/api/%s", s.DDNS, global.PackageName))
	arg["proxy"] = fmt.Sprintf("%s/%s/proxy", s.DDNS, global.PackageName)
	return arg
}

func tailFile(path string, n int) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines := make([]string, 0, n)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(lines) == n {
			lines = lines[1:]
		}
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
