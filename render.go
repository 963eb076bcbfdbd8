package mailmerge

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
)

// Renderer turns a Job into an HTML document using a parsed page template.
// A Renderer is immutable after construction and safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// addressView is the template-facing form of an Address.
// Absent optional fields are empty strings so templates can test them with if.
type addressView struct {
	Name     string
	Address1 string
	Address2 string
	City     string
	State    string
	PostCode string
	Country  string
}

// pageData is the data passed to the page template.
type pageData struct {
	Page       PageSize
	PageCSS    template.CSS
	StyleCSS   template.CSS
	Sender     addressView
	Recipients []addressView
}

// NewRenderer parses tmplContent as an html/template page template.
func NewRenderer(tmplContent string) (*Renderer, error) {
	tmpl, err := template.New("page").Option("missingkey=error").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render produces the HTML document for job: one page per recipient, in the
// order given, each carrying the sender's return address. css is appended
// after the page geometry rules.
func (r *Renderer) Render(ctx context.Context, job *Job, css string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page := job.PageSize()
	data := pageData{
		Page:       page,
		PageCSS:    template.CSS(buildPageCSS(page)),
		StyleCSS:   template.CSS(sanitizeCSS(css)), // #nosec G203 -- closing sequences escaped by sanitizeCSS
		Sender:     newAddressView(job.Sender),
		Recipients: make([]addressView, len(job.Addresses)),
	}
	for i, a := range job.Addresses {
		data.Recipients[i] = newAddressView(a)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}

func newAddressView(a Address) addressView {
	return addressView{
		Name:     optional(a.Name),
		Address1: a.Address1,
		Address2: optional(a.Address2),
		City:     a.City,
		State:    optional(a.State),
		PostCode: a.PostCode,
		Country:  a.Country,
	}
}

// buildPageCSS sizes the printed page and each envelope section so that
// every recipient lands on its own page.
func buildPageCSS(p PageSize) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@page { size: %s; margin: 0; }\n", p)
	fmt.Fprintf(&b, "html, body { width: %dmm; margin: 0; padding: 0; }\n", p.WidthMM)
	fmt.Fprintf(&b, ".envelope { width: %dmm; height: %dmm; page-break-after: always; break-after: page; }\n", p.WidthMM, p.HeightMM)
	b.WriteString(".envelope:last-child { page-break-after: auto; break-after: auto; }\n")
	return b.String()
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
