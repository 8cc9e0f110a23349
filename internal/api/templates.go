package api

import (
	"embed"
	"html/template"
	"strconv"
)

//go:embed templates/*.html
var templatesFS embed.FS

func LoadTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		// percent renders a progress percentage for CSS widths
		"percent": func(f float64) string {
			return strconv.FormatFloat(f, 'f', 2, 64) + "%"
		},
	}
	return template.New("base").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
}
