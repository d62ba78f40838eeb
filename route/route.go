package route

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/snowie2000/hdhomerun/global"
	"github.com/snowie2000/hdhomerun/handler"
)

// Register mounts the login pages and every route under the plugin prefix.
// The sessions middleware must already be installed on r.
func Register(r *gin.Engine, d *handler.Dispatcher) {
	r.SetHTMLTemplate(handler.Templates())

	r.GET("/", d.Home)
	r.GET("/login", d.LoginView)
	r.POST("/login", d.LoginAction)
	r.GET("/logout", d.Logout)
	r.GET("/captcha", handler.CaptchaHandler)
	r.GET("/metrics", handler.LoginRequired, handler.Metrics)

	g := r.Group("/" + global.PackageName)
	g.GET("/", d.Home)
	g.GET("/:sub", handler.PageLoginRequired, d.FirstMenu)

	ajax := g.Group("/ajax", handler.LoginRequired)
	ajax.GET("/:sub", d.Ajax)
	ajax.POST("/:sub", d.Ajax)

	api := g.Group("/api", d.CheckAPI)
	api.GET("/:sub", d.API)
	api.POST("/:sub", d.API)

	// DVR clients probe these from other origins and never log in
	proxy := g.Group("/proxy", cors.Default())
	proxy.GET("/:sub", d.Proxy)
	proxy.POST("/:sub", d.Proxy)
}
