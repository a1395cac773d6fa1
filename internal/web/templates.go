package web

import (
	"embed"
	"html/template"

	"github.com/railway_station/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"roleLabel": func(r models.Role) string {
		if r == models.RoleAdmin {
			return "Administrator"
		}
		return "User"
	},
}

// Templates 解析内嵌的页面模板，模板名即文件名（如 index.html）
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// MustTemplates 解析失败时 panic，用于启动阶段
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
