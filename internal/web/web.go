// Package web 页面模板
package web

import (
	"embed"
	"html/template"
	"strconv"
	"strings"
	"time"
)

//go:embed templates
var FS embed.FS

// Templates 解析全部页面, mediaURL 把图片相对路径转成访问地址
func Templates(mediaURL func(string) string) (*template.Template, error) {
	return template.New("").Funcs(Funcs(mediaURL)).ParseFS(FS, "templates/*/*.html")
}

func Funcs(mediaURL func(string) string) template.FuncMap {
	return template.FuncMap{
		"mediaURL":     mediaURL,
		"date":         formatDate,
		"linebreaksbr": linebreaksbr,
		"truncate":     truncateWords,
		"pageURL":      func(n int) string { return "?page=" + strconv.Itoa(n) },
		"selected": func(groupID *uint64, id uint64) bool {
			return groupID != nil && *groupID == id
		},
		"field": func(name, label, typ string, value any, err string) map[string]any {
			return map[string]any{"name": name, "label": label, "type": typ, "value": value, "error": err}
		},
	}
}

var months = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strconv.Itoa(t.Day()) + " " + months[t.Month()-1] + " " + strconv.Itoa(t.Year()) + " г."
}

func linebreaksbr(s string) template.HTML {
	escaped := template.HTMLEscapeString(strings.ReplaceAll(s, "\r\n", "\n"))
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ") + " …"
}
