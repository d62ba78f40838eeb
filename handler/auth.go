package handler

import (
	"crypto/subtle"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snowie2000/hdhomerun/global"
	"github.com/snowie2000/hdhomerun/recaptcha"
)

func logined(c *gin.Context) bool {
	return sessions.Default(c).Get("logined") == true
}

// LoginRequired guards ajax and metrics routes.
func LoginRequired(c *gin.Context) {
	if !logined(c) {
		c.String(http.StatusUnauthorized, "Unauthorized")
		c.Abort()
		return
	}
	c.Next()
}

// PageLoginRequired sends anonymous browsers to the login form.
func PageLoginRequired(c *gin.Context) {
	if !logined(c) {
		c.Redirect(http.StatusFound, "/login?next="+c.Request.URL.Path)
		c.Abort()
		return
	}
	c.Next()
}

func (d *Dispatcher) renderLogin(c *gin.Context, status int, errMsg string) {
	session := sessions.Default(c)
	crsfToken := uuid.NewString()
	session.Set("crsfToken", crsfToken)
	if err := session.Save(); err != nil {
		d.fail("login", "session", err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	captcha, err := recaptcha.DefaultCaptcha.GenerateCaptcha()
	if err != nil {
		d.fail("login", "captcha", err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.HTML(status, "login.html", gin.H{
		"package": global.PackageName,
		"Crsf":    crsfToken,
		"Captcha": captcha,
		// data: urls are otherwise rewritten to #ZgotmplZ
		"CaptchaImg": template.URL(captcha.Data),
		"Next":       c.Query("next"),
		"ErrMsg":     errMsg,
	})
}

func (d *Dispatcher) LoginView(c *gin.Context) {
	d.renderLogin(c, http.StatusOK, "")
}

func (d *Dispatcher) LoginAction(c *gin.Context) {
	session := sessions.Default(c)
	crsfToken := c.PostForm("crsf")
	if crsfToken == "" || crsfToken != session.Get("crsfToken") {
		c.String(http.StatusBadRequest, "bad request")
		return
	}
	// captcha first so a wrong guess costs a fresh captcha
	if !recaptcha.DefaultCaptcha.Verify(&recaptcha.CaptchaData{
		CaptchaId: c.PostForm("captcha_id"),
		Answer:    c.PostForm("answer"),
	}) {
		d.renderLogin(c, http.StatusForbidden, "Invalid captcha")
		return
	}
	cfgPass, err := d.Settings.Get("password")
	if err != nil {
		d.fail("login", "password", err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	if subtle.ConstantTimeCompare([]byte(c.PostForm("password")), []byte(cfgPass)) != 1 {
		d.renderLogin(c, http.StatusForbidden, "Password error!")
		return
	}
	session.Set("logined", true)
	session.Delete("crsfToken")
	if err := session.Save(); err != nil {
		d.fail("login", "session", err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	next := c.PostForm("next")
	if !isLocalPath(next) {
		next = fmt.Sprintf("/%s/channel", global.PackageName)
	}
	c.Redirect(http.StatusFound, next)
}

func (d *Dispatcher) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete("logined")
	if err := session.Save(); err != nil {
		d.fail("logout", "session", err)
	}
	c.Redirect(http.StatusFound, "/login")
}

func CaptchaHandler(c *gin.Context) {
	if logined(c) {
		c.String(http.StatusOK, "{}")
		return
	}
	captcha, err := recaptcha.DefaultCaptcha.GenerateCaptcha()
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, captcha)
}

// isLocalPath only lets the login form redirect within this server.
func isLocalPath(p string) bool {
	return len(p) > 1 && p[0] == '/' && p[1] != '/' && p[1] != '\\'
}
