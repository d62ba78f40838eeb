package route

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/matryer/is"
	"github.com/snowie2000/hdhomerun/global"
	"github.com/snowie2000/hdhomerun/handler"
	"github.com/snowie2000/hdhomerun/model"
	"github.com/snowie2000/hdhomerun/service"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := global.InitDB(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { global.CloseDB() })

	d := handler.NewDispatcher(&global.ConfigStore{}, service.HDHomeRun{}, nil)
	r := gin.New()
	r.Use(sessions.Sessions("hdhomerun", cookie.NewStore(global.SessionSecret())))
	Register(r, d)
	return r
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestGates(t *testing.T) {
	is := is.New(t)
	r := newRouter(t)

	w := serve(r, http.MethodPost, "/hdhomerun/ajax/save")
	is.Equal(w.Code, http.StatusUnauthorized)

	w = serve(r, http.MethodGet, "/hdhomerun/channel")
	is.Equal(w.Code, http.StatusFound)
	is.Equal(w.Header().Get("Location"), "/login?next=/hdhomerun/channel")

	w = serve(r, http.MethodGet, "/metrics")
	is.Equal(w.Code, http.StatusUnauthorized)

	w = serve(r, http.MethodGet, "/hdhomerun/")
	is.Equal(w.Header().Get("Location"), "/hdhomerun/channel")
}

func TestOpenDiscovery(t *testing.T) {
	is := is.New(t)
	r := newRouter(t)
	is.NoErr(global.SetConfig("ddns", "http://tv.lan:9000"))
	is.NoErr(global.DB.Create(&model.Channel{Use: true, ChNumber: 5, ScanName: "EBS", URL: "http://10.0.0.2:5004/auto/v5"}).Error)

	w := serve(r, http.MethodGet, "/hdhomerun/proxy/discover.json")
	is.Equal(w.Code, http.StatusOK)
	is.True(strings.Contains(w.Body.String(), `"BaseURL":"http://tv.lan:9000/hdhomerun/proxy"`))

	w = serve(r, http.MethodPost, "/hdhomerun/proxy/lineup.json")
	is.Equal(w.Code, http.StatusOK)
	is.Equal(strings.TrimSpace(w.Body.String()), `[{"GuideNumber":"5","GuideName":"EBS","URL":"http://10.0.0.2:5004/auto/v5"}]`)

	req := httptest.NewRequest(http.MethodGet, "/hdhomerun/proxy/lineup_status.json", nil)
	req.Header.Set("Origin", "http://plex.lan")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	is.Equal(w.Header().Get("Access-Control-Allow-Origin"), "*")
}

func TestM3UWithAPIKey(t *testing.T) {
	is := is.New(t)
	r := newRouter(t)
	is.NoErr(global.DB.Create(&model.Channel{Use: true, ChNumber: 5, ScanName: "EBS", URL: "http://10.0.0.2:5004/auto/v5"}).Error)
	is.NoErr(global.SetConfig("auth_use_apikey", "True"))
	key, err := global.GetConfig("auth_apikey")
	is.NoErr(err)
	is.True(key != "")

	w := serve(r, http.MethodGet, "/hdhomerun/api/m3u")
	is.Equal(w.Code, http.StatusForbidden)

	w = serve(r, http.MethodGet, "/hdhomerun/api/m3u?apikey="+key)
	is.Equal(w.Code, http.StatusOK)
	is.True(strings.HasPrefix(w.Body.String(), "#EXTM3U"))
	is.True(strings.Contains(w.Body.String(), "http://10.0.0.2:5004/auto/v5"))
}
