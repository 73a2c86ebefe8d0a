package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates(func(key string) string { return "/media/" + key })
	require.NoError(t, err)

	for _, name := range []string{
		"posts/index.html", "posts/group_list.html", "posts/profile.html",
		"posts/post_detail.html", "posts/create_post.html", "posts/follow.html",
		"users/login.html", "users/signup.html", "core/404.html", "core/500.html",
		"about/author.html", "about/tech.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "core/404.html", map[string]any{"year": 2024, "path": "/x/"}))
	assert.Contains(t, buf.String(), "/x/")
}

func TestFuncs(t *testing.T) {
	assert.Equal(t, "5 марта 2024 г.", formatDate(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "a<br>&lt;b&gt;", string(linebreaksbr("a\n<b>")))
	assert.Equal(t, "one two …", truncateWords("one two three", 2))
	assert.Equal(t, "one two", truncateWords("one two", 2))
}
