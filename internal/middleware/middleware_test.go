package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"yatube/internal/cache"
	"yatube/internal/pkg"
	"yatube/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuth struct {
	sessions map[string]*service.Session
}

func (f *fakeAuth) Authenticate(_ context.Context, access, _ string) (*service.Session, error) {
	if s, ok := f.sessions[access]; ok {
		return s, nil
	}
	return nil, service.ErrUnauthorized
}

func TestLoginRedirectURL(t *testing.T) {
	assert.Equal(t, "/auth/login/?next=/posts/1/edit/", LoginRedirectURL("/posts/1/edit/"))
	assert.Equal(t, "/auth/login/?next=/follow/%3Fpage%3D2", LoginRedirectURL("/follow/?page=2"))
}

func TestAuthOptionalAndLoginRequired(t *testing.T) {
	auth := &fakeAuth{sessions: map[string]*service.Session{
		"good":    {UserID: 7, Username: "leo"},
		"rotated": {UserID: 8, Username: "anna", Pair: &pkg.Pair{AccessToken: "a2", RefreshToken: "r2"}},
	}}
	r := gin.New()
	r.Use(AuthOptional(auth, time.Hour))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, "%d:%s", UserID(c), Username(c))
	})
	r.GET("/private/", LoginRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	do := func(target, access string, bearerHeader bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if access != "" {
			if bearerHeader {
				req.Header.Set("Authorization", "Bearer "+access)
			} else {
				req.AddCookie(&http.Cookie{Name: AccessCookie, Value: access})
			}
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, "0:", do("/whoami", "", false).Body.String())
	assert.Equal(t, "7:leo", do("/whoami", "good", false).Body.String())
	assert.Equal(t, "7:leo", do("/whoami", "good", true).Body.String())

	w := do("/whoami", "bad", false)
	assert.Equal(t, "0:", w.Body.String())
	cleared := false
	for _, ck := range w.Result().Cookies() {
		if ck.Name == AccessCookie && ck.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)

	w = do("/whoami", "rotated", false)
	assert.Equal(t, "8:anna", w.Body.String())
	var access string
	for _, ck := range w.Result().Cookies() {
		if ck.Name == AccessCookie {
			access = ck.Value
			assert.True(t, ck.HttpOnly)
		}
	}
	assert.Equal(t, "a2", access)

	w = do("/private/", "", false)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=/private/", w.Header().Get("Location"))
	assert.Equal(t, "ok", do("/private/", "good", false).Body.String())
}

func TestCachePage(t *testing.T) {
	pc := cache.NewLocalPageCache(16, time.Minute)
	calls := 0
	status := http.StatusOK

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextUserIDKey, uint64(0))
		c.Next()
	})
	r.GET("/", CachePage(pc, "index", time.Minute), func(c *gin.Context) {
		calls++
		c.String(status, "body %d", calls)
	})
	get := func(target string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		return w
	}

	assert.Equal(t, "body 1", get("/").Body.String())
	w := get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "body 1", w.Body.String())
	assert.Equal(t, 1, calls)

	// page 缺省和 page=1 是同一页
	assert.Equal(t, "body 1", get("/?page=1").Body.String())
	assert.Equal(t, "body 2", get("/?page=2").Body.String())

	body, ok, err := pc.Get(context.Background(), cache.Key("index", 2, 0))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "body 2", string(body))

	status = http.StatusInternalServerError
	assert.Equal(t, "body 3", get("/?page=3").Body.String())
	_, ok, err = pc.Get(context.Background(), cache.Key("index", 3, 0))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTraceMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(TraceMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", "abc")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get("X-Trace-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get("X-Trace-ID"), 36)
}
