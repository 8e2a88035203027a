package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"partsite/internal/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"index", "listing", "part", "error"}

type renderer struct {
	pages  map[string]*template.Template
	policy *bluemonday.Policy
}

func newRenderer() (*renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &renderer{pages: pages, policy: bluemonday.UGCPolicy()}, nil
}

// render executes the named page into a buffer so template errors never
// produce a half-written response.
func (r *renderer) render(w http.ResponseWriter, status int, name string, data page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

type link struct {
	Title  string
	URL    string
	Active bool
}

type navigation struct {
	Systems []link
	Devices []link
	Models  []link
}

type partView struct {
	UUID        string
	Title       string
	URL         string
	SystemTitle string
	DeviceTitle string
	Author      string
	Class       string
	License     string
	Fits        []link
	Description template.HTML
}

type page struct {
	Title   string
	Nav     navigation
	Parts   []partView
	Part    *partView
	Counter *catalog.Counter
	Message string
}

func (r *renderer) partView(p *catalog.Part) partView {
	fits := make([]link, 0, len(p.Fits))
	for _, model := range p.Fits {
		fits = append(fits, link{Title: model, URL: modelURL(p.Key.System, model)})
	}
	return partView{
		UUID:        p.UUID,
		Title:       titleize(p.Key.Part),
		URL:         partURL(p.Key),
		SystemTitle: titleize(p.Key.System),
		DeviceTitle: titleize(p.Key.Device),
		Author:      p.Author,
		Class:       p.Class,
		License:     p.License,
		Fits:        fits,
		Description: template.HTML(r.policy.Sanitize(p.Description)),
	}
}

var titleReplacer = strings.NewReplacer("-", " ", "_", " ", ".", " ")

// titleize turns a path segment such as "a-button" into "A Button". Existing
// capitals are kept so "NES" stays "NES".
func titleize(name string) string {
	words := strings.Fields(titleReplacer.Replace(name))
	if len(words) == 0 {
		return name
	}
	return cases.Title(language.Und, cases.NoLower).String(strings.Join(words, " "))
}

func systemURL(system string) string {
	return "/system/" + url.PathEscape(system) + "/"
}

func deviceURL(system, device string) string {
	return "/device/" + url.PathEscape(system) + "/" + url.PathEscape(device)
}

func modelURL(system, model string) string {
	return "/model/" + url.PathEscape(system) + "/" + url.PathEscape(model)
}

func partURL(key catalog.NaturalKey) string {
	return "/part/" + url.PathEscape(key.System) + "/" + url.PathEscape(key.Device) + "/" + url.PathEscape(key.Part)
}
