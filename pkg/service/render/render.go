package render

import (
	"html/template"
	"io"
	"io/fs"
	textTemplate "text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/waterlens/tapcheck/frontend"
	"github.com/waterlens/tapcheck/pkg/domain/model"
)

// Contaminant list shown first on a report page
const (
	ViewExceeding = "exceeding"
	ViewOthers    = "others"
)

// Page is the data passed to the HTML page templates
type Page struct {
	Zip    string
	View   string
	Error  string
	Result *model.ZipReport
}

// Renderer renders reports for browsers and terminals
type Renderer struct {
	index  *template.Template
	report *template.Template
	text   *textTemplate.Template
}

var funcs = map[string]any{
	"dict": dict,
}

// New parses the embedded templates
func New() (*Renderer, error) {
	return NewWithFS(frontend.Templates())
}

// NewWithFS parses templates from fsys
func NewWithFS(fsys fs.FS) (*Renderer, error) {
	index, err := template.New("index").Funcs(funcs).ParseFS(fsys, "layout.html.tmpl", "index.html.tmpl")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse index template")
	}

	report, err := template.New("report").Funcs(funcs).ParseFS(fsys, "layout.html.tmpl", "report.html.tmpl")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse report template")
	}

	text, err := textTemplate.New("text").ParseFS(fsys, "report.txt.tmpl")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse text report template")
	}

	return &Renderer{index: index, report: report, text: text}, nil
}

// Index renders the search page
func (r *Renderer) Index(w io.Writer, page Page) error {
	if err := r.index.ExecuteTemplate(w, "layout", page); err != nil {
		return goerr.Wrap(err, "failed to render index page")
	}
	return nil
}

// Report renders a report page. A page with Error set shows only the
// message; no partial report is rendered.
func (r *Renderer) Report(w io.Writer, page Page) error {
	if page.View != ViewOthers {
		page.View = ViewExceeding
	}
	if page.Error == "" && (page.Result == nil || page.Result.Report == nil) {
		return goerr.New("report page has neither a result nor an error")
	}

	if err := r.report.ExecuteTemplate(w, "layout", page); err != nil {
		return goerr.Wrap(err, "failed to render report page", goerr.V("zip", page.Zip))
	}
	return nil
}

// Text renders a plain-text report for terminals
func (r *Renderer) Text(w io.Writer, result *model.ZipReport) error {
	if result == nil || result.Report == nil {
		return goerr.New("nothing to render")
	}
	if err := r.text.ExecuteTemplate(w, "report", result); err != nil {
		return goerr.Wrap(err, "failed to render text report")
	}
	return nil
}

func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, goerr.New("dict requires key/value pairs", goerr.V("len", len(pairs)))
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, goerr.New("dict key must be a string", goerr.V("key", pairs[i]))
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
