package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"yatube/internal/pkg"
	"yatube/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"

	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"

	LoginURL = "/auth/login/"
)

// Authenticator 由 token 得到会话
type Authenticator interface {
	Authenticate(ctx context.Context, access, refresh string) (*service.Session, error)
}

func bearer(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// AuthOptional 解析 cookie 中的会话, 未登录时 user_id 为 0
func AuthOptional(auth Authenticator, refreshTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		access := bearer(c)
		if access == "" {
			access, _ = c.Cookie(AccessCookie)
		}
		refresh, _ := c.Cookie(RefreshCookie)

		if access == "" && refresh == "" {
			c.Set(ContextUserIDKey, uint64(0))
			c.Next()
			return
		}

		sess, err := auth.Authenticate(c.Request.Context(), access, refresh)
		if err != nil {
			if !errors.Is(err, service.ErrUnauthorized) && !errors.Is(err, service.ErrSessionReplaced) {
				slog.WarnContext(c.Request.Context(), "authenticate failed", "err", err)
			}
			ClearSessionCookies(c)
			c.Set(ContextUserIDKey, uint64(0))
			c.Next()
			return
		}
		if sess.Pair != nil {
			SetSessionCookies(c, sess.Pair, refreshTTL)
		}

		// 注入 user_id
		c.Set(ContextUserIDKey, sess.UserID)
		c.Set(ContextUsernameKey, sess.Username)
		c.Next()
	}
}

// LoginRequired 未登录跳转到登录页, next 为原路径
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == 0 {
			c.Redirect(http.StatusFound, LoginRedirectURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

func LoginRedirectURL(next string) string {
	return LoginURL + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

func UserID(c *gin.Context) uint64 {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok2 := v.(uint64); ok2 {
			return id
		}
	}
	return 0
}

func Username(c *gin.Context) string {
	return c.GetString(ContextUsernameKey)
}

func SetSessionCookies(c *gin.Context, pair *pkg.Pair, refreshTTL time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	maxAge := int(refreshTTL / time.Second)
	c.SetCookie(AccessCookie, pair.AccessToken, maxAge, "/", "", false, true)
	c.SetCookie(RefreshCookie, pair.RefreshToken, maxAge, "/", "", false, true)
}

func ClearSessionCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, "", -1, "/", "", false, true)
	c.SetCookie(RefreshCookie, "", -1, "/", "", false, true)
}
