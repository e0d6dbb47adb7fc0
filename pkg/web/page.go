package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"regexp"
	"strings"

	"github.com/slangscope/slangscope/internal"
)

var log = internal.GetLogger()

var LayoutTemplates = []string{
	"templates/layout/*.html",
	"templates/components/*.html",
}

//go:embed static/*
var StaticFS embed.FS

//go:embed templates/*
var TemplatesFS embed.FS

func NewPage(
	title, subTitle, path string,
	templates []string,
	data interface{},
) *Page {
	return &Page{
		Title:     title,
		SubTitle:  subTitle,
		MenuItems: menuItems,
		Templates: templates,
		Path:      path,
		Slug:      slugify(title),
		Data:      data,
	}
}

type Page struct {
	Title     string
	SubTitle  string
	MenuItems []MenuItem
	Templates []string
	Path      string
	Slug      string
	Data      interface{}
}

// Render writes the page. htmx requests (HX-Request header) get the content
// template only, direct loads get the full layout.
func (p *Page) Render(w http.ResponseWriter, r *http.Request) {
	p.RenderStatus(w, r, http.StatusOK)
}

// RenderStatus is Render with an explicit status code.
func (p *Page) RenderStatus(w http.ResponseWriter, r *http.Request, status int) {
	partial := r.Header.Get("HX-Request") == "true"

	templates := p.Templates
	name := "Layout"
	if partial {
		name = "Content"
		templates = append([]string{"templates/components/*.html"}, templates...)
	} else {
		templates = append(append([]string{}, LayoutTemplates...), templates...)
	}

	tmpl, err := template.New(p.Title).Funcs(templateFuncs()).ParseFS(
		TemplatesFS,
		templates...,
	)
	if err != nil {
		log.Errorf("Failed to parse template: %s", err)
		http.Error(w, "Failed to parse template", http.StatusInternalServerError)
		return
	}

	// render into a buffer so a failed template doesn't leave a half written page
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, p); err != nil {
		log.Errorf("Failed to execute template: %s", err)
		http.Error(w, "Failed to execute template", http.StatusInternalServerError)
		return
	}

	if partial && p.Path != "" {
		w.Header().Set("HX-Push", p.Path)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Errorf("Failed to write page: %s", err)
	}
}

// slugify converts a string to an alpha-only lowercase string
func slugify(s string) string {
	reg := regexp.MustCompile("[^a-zA-Z]+")
	processedString := reg.ReplaceAllString(s, "")
	return strings.ToLower(processedString)
}

type MenuItem struct {
	Name string
	URL  string
}

var menuItems = []MenuItem{
	{
		Name: "Analyzer",
		URL:  "/",
	},
	{
		Name: "History",
		URL:  "/history",
	},
}
