package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"yatube/internal/middleware"
	"yatube/internal/service"

	"github.com/gin-gonic/gin"
)

// render 给每个页面补上 year 和当前访问者
func render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["year"] = time.Now().Year()
	data["viewer"] = middleware.Username(c)
	data["viewer_id"] = middleware.UserID(c)
	data["path"] = c.Request.URL.Path
	if _, ok := data["errors"]; !ok {
		data["errors"] = map[string]string{}
	}
	c.HTML(code, name, data)
}

// fail 按 ErrorMap 渲染 404 或 500 页面
func fail(c *gin.Context, err error) {
	code := service.StatusOf(err)
	if code == http.StatusNotFound {
		render(c, http.StatusNotFound, "core/404.html", nil)
		return
	}
	slog.ErrorContext(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "err", err)
	render(c, http.StatusInternalServerError, "core/500.html", nil)
}

// NotFound 未匹配的路由
func NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "core/404.html", nil)
}

// Recovery panic 时渲染 500 页面
func Recovery(c *gin.Context, recovered any) {
	slog.ErrorContext(c.Request.Context(), "panic recovered", "path", c.Request.URL.Path, "panic", recovered)
	render(c, http.StatusInternalServerError, "core/500.html", nil)
	c.Abort()
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

func postIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || id == 0 {
		NotFound(c)
		return 0, false
	}
	return id, true
}

func postURL(id uint64) string {
	return "/posts/" + strconv.FormatUint(id, 10) + "/"
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}
