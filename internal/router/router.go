package router

import (
	"html/template"
	"net/http"
	"time"

	"yatube/internal/cache"
	"yatube/internal/handler"
	"yatube/internal/middleware"
	"yatube/internal/pkg/logger"
	"yatube/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	Templates  *template.Template
	Auth       middleware.Authenticator
	RefreshTTL time.Duration
	PageCache  cache.PageCache
	IndexTTL   time.Duration
	// MediaRoot 非空时由本服务提供 /media/ 下的文件
	MediaRoot string
	MediaURL  string

	Post   *handler.PostHandler
	Follow *handler.FollowHandler
	User   *handler.UserHandler
}

func InitRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.TraceMiddleware())
	logger.SetupGin(r)
	r.Use(gin.CustomRecovery(handler.Recovery))
	r.Use(middleware.Metrics())
	r.SetHTMLTemplate(opts.Templates)
	r.RedirectTrailingSlash = true

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	if opts.MediaRoot != "" {
		r.StaticFS(opts.MediaURL, http.Dir(opts.MediaRoot))
	}

	site := r.Group("/")
	site.Use(middleware.AuthOptional(opts.Auth, opts.RefreshTTL))

	post, follow, user := opts.Post, opts.Follow, opts.User
	login := middleware.LoginRequired()

	// 帖子相关页面
	site.GET("/", middleware.CachePage(opts.PageCache, "index", opts.IndexTTL), post.Index)
	site.GET("/group/:slug/", post.GroupPosts)
	site.GET("/profile/:username/", post.Profile)
	site.GET("/posts/:post_id/", post.PostDetail)
	site.GET("/create/", login, post.PostCreate)
	site.POST("/create/", login, post.PostCreate)
	site.GET("/posts/:post_id/edit/", login, post.PostEdit)
	site.POST("/posts/:post_id/edit/", login, post.PostEdit)
	site.POST("/posts/:post_id/delete/", login, post.PostDelete)
	site.GET("/posts/:post_id/comment/", login, post.AddComment)
	site.POST("/posts/:post_id/comment/", login, post.AddComment)

	// 关注相关页面
	site.GET("/follow/", login, post.FollowIndex)
	site.GET("/profile/:username/follow/", login, follow.Follow)
	site.GET("/profile/:username/unfollow/", login, follow.Unfollow)

	// 用户相关页面
	auth := site.Group("/auth")
	{
		auth.GET("/signup/", user.Signup)
		auth.POST("/signup/", user.Signup)
		auth.GET("/login/", user.Login)
		auth.POST("/login/", user.Login)
		auth.GET("/logout/", user.Logout)
		auth.POST("/logout/", user.Logout)
		auth.GET("/password_change/", login, user.PasswordChange)
		auth.POST("/password_change/", login, user.PasswordChange)
		auth.GET("/password_reset/", user.PasswordReset)
		auth.POST("/password_reset/", user.PasswordReset)
		auth.GET("/password_reset/confirm/", user.PasswordResetConfirm)
		auth.POST("/password_reset/confirm/", user.PasswordResetConfirm)
	}

	about := site.Group("/about")
	{
		about.GET("/author/", handler.AboutAuthor)
		about.GET("/tech/", handler.AboutTech)
	}

	r.NoRoute(middleware.AuthOptional(opts.Auth, opts.RefreshTTL), handler.NotFound)
	return r
}
