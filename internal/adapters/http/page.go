package httpadapter

import (
	"bytes"
	_ "embed"
	"html/template"
	"io"
	"strconv"

	"github.com/yuin/goldmark"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
)

//go:embed templates/page.html
var pageSource string

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"number":   formatNumber,
	"percent":  formatPercent,
	"score":    formatScore,
	"barWidth": barWidth,
}).Parse(pageSource))

type pageRenderer struct {
	title string
	intro template.HTML
}

// newPageRenderer renders the schema description as markdown once. goldmark
// escapes raw HTML by default, so the output is safe to embed.
func newPageRenderer(schema domain.Schema) *pageRenderer {
	var buf bytes.Buffer
	intro := template.HTML(template.HTMLEscapeString(schema.Description))
	if err := goldmark.Convert([]byte(schema.Description), &buf); err == nil {
		intro = template.HTML(buf.String())
	}
	title := schema.Title
	if title == "" {
		title = "Clasificación jurídica de proyectos"
	}
	return &pageRenderer{title: title, intro: intro}
}

type pageData struct {
	Title       string
	Intro       template.HTML
	AllSubjects string
	Result      *domain.BrowseResult
	MaxCount    int
}

// ExportHref links to the download of the current view. The query is built
// with url.Values, so it is marked as a trusted URL.
func (d pageData) ExportHref(format string) template.URL {
	values := filterQuery(d.Result.Filter)
	values.Set("format", format)
	return template.URL("/v1/export?" + values.Encode())
}

func (p *pageRenderer) Render(w io.Writer, result *domain.BrowseResult) error {
	maxCount := 0
	for _, item := range result.Distribution {
		if item.Count > maxCount {
			maxCount = item.Count
		}
	}
	return pageTemplate.Execute(w, pageData{
		Title:       p.title,
		Intro:       p.intro,
		AllSubjects: domain.AllSubjects,
		Result:      result,
		MaxCount:    maxCount,
	})
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPercent(v *float64) string {
	if v == nil {
		return "—"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64) + "%"
}

func formatScore(v *float64) string {
	if v == nil {
		return "—"
	}
	return strconv.FormatFloat(*v, 'f', 3, 64)
}

func barWidth(count, maxCount int) int {
	if maxCount <= 0 || count <= 0 {
		return 0
	}
	return count * 100 / maxCount
}
