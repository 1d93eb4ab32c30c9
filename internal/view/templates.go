package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/Werneck0live/lista-empresas/internal/board"
	"github.com/Werneck0live/lista-empresas/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// Section é um dos dois blocos da página (红榜 / 黑榜).
type Section struct {
	Title string
	Type  string
	Icon  string
	Items any
}

type PageData struct {
	board.View
	Sections []Section
}

func NewPageData(v board.View) PageData {
	return PageData{
		View: v,
		Sections: []Section{
			{Title: "红榜 (推荐)", Type: "red", Icon: "fa-heart", Items: v.Red},
			{Title: "黑榜 (避雷)", Type: "black", Icon: "fa-skull", Items: v.Black},
		},
	}
}

// NewEngine parses embedded templates.
func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"rating": func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		},
		"joinTags": func(tags []string) string {
			return strings.Join(tags, ", ")
		},
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executa no buffer primeiro: erro de template não sai como página pela metade.
func (e *Engine) Render(w http.ResponseWriter, name string, data any) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}
