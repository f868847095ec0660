package web

import (
	"embed"
	"html/template"
	"strings"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"join":  strings.Join,
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}

// LoadTemplates parses the embedded page templates
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

// page is the data every template receives. Model holds the page specific view model.
type page struct {
	Title     string
	User      *accounts.UserAccount
	CSRFToken string
	CSRFField string
	Flash     string
	Model     interface{}
}

func render(c *gin.Context, status int, name, title string, model interface{}) {
	p := page{
		Title:     title,
		User:      currentUser(c),
		CSRFField: csrfFormField,
		Flash:     popFlash(c),
		Model:     model,
	}
	if s := currentSession(c); s != nil {
		p.CSRFToken = s.CSRFToken
	}
	c.HTML(status, name, p)
}
