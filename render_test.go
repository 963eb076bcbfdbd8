package mailmerge

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func builtinTemplate(t *testing.T, name string) string {
	t.Helper()
	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}
	tmpl, err := loader.LoadTemplate(name)
	if err != nil {
		t.Fatalf("LoadTemplate(%q) error = %v", name, err)
	}
	return tmpl
}

func testJob() *Job {
	sender := Address{Name: strPtr("ACME Corp"), Address1: "1 Road", City: "Town", PostCode: "12345", Country: "USA"}
	return NewJob(sender, []Address{
		{Name: strPtr("Jane Doe"), Address1: "221B Baker St", City: "London", PostCode: "NW1 6XE", Country: "UK"},
		{Address1: "1600 Amphitheatre Pkwy", Address2: strPtr("Bldg 40"), City: "Mountain View", State: strPtr("CA"), PostCode: "94043", Country: "USA"},
	})
}

// ---------------------------------------------------------------------------
// TestNewRenderer - Template parsing
// ---------------------------------------------------------------------------

func TestNewRenderer(t *testing.T) {
	t.Parallel()

	if _, err := NewRenderer(builtinTemplate(t, DefaultTemplate)); err != nil {
		t.Errorf("NewRenderer(default) error = %v", err)
	}
	if _, err := NewRenderer("{{range}"); !errors.Is(err, ErrTemplateParse) {
		t.Errorf("NewRenderer(bad) error = %v, want ErrTemplateParse", err)
	}
}

// ---------------------------------------------------------------------------
// TestRenderer_Render - Built-in envelope template output
// ---------------------------------------------------------------------------

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(builtinTemplate(t, DefaultTemplate))
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	t.Run("one section per recipient in order", func(t *testing.T) {
		t.Parallel()

		html, err := r.Render(context.Background(), testJob(), "")
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if n := strings.Count(html, `<section class="envelope">`); n != 2 {
			t.Errorf("sections = %d, want 2", n)
		}
		london := strings.Index(html, "London")
		mv := strings.Index(html, "Mountain View")
		if london < 0 || mv < 0 || london > mv {
			t.Errorf("recipients out of order: London at %d, Mountain View at %d", london, mv)
		}
		if n := strings.Count(html, "ACME Corp"); n != 2 {
			t.Errorf("sender appears %d times, want once per page", n)
		}
	})

	t.Run("reordered input reorders pages", func(t *testing.T) {
		t.Parallel()

		job := testJob()
		job.Addresses[0], job.Addresses[1] = job.Addresses[1], job.Addresses[0]
		html, err := r.Render(context.Background(), job, "")
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if strings.Index(html, "Mountain View") > strings.Index(html, "London") {
			t.Error("Mountain View should come first after reordering")
		}
	})

	t.Run("absent optional fields leave no placeholder", func(t *testing.T) {
		t.Parallel()

		job := NewJob(
			Address{Address1: "1 Road", City: "Town", PostCode: "12345", Country: "USA"},
			[]Address{{Address1: "9 Lane", City: "Springfield", PostCode: "99999", Country: "USA"}},
		)
		html, err := r.Render(context.Background(), job, "")
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		for _, bad := range []string{"null", "<nil>", `class="name"`, `class="state"`} {
			if strings.Contains(html, bad) {
				t.Errorf("output should not contain %q", bad)
			}
		}
		if strings.Count(html, `<span class="line">`) != 2 {
			t.Errorf("want one street line per address, got:\n%s", html)
		}
	})

	t.Run("present optional fields rendered", func(t *testing.T) {
		t.Parallel()

		html, err := r.Render(context.Background(), testJob(), "")
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		for _, want := range []string{"Jane Doe", "Bldg 40", `<span class="state">CA</span>`} {
			if !strings.Contains(html, want) {
				t.Errorf("output should contain %q", want)
			}
		}
	})

	t.Run("field values are escaped", func(t *testing.T) {
		t.Parallel()

		job := NewJob(
			Address{Address1: "1 Road", City: "Town", PostCode: "1", Country: "USA"},
			[]Address{{Name: strPtr("<script>alert(1)</script>"), Address1: "Smith & Sons", City: "X", PostCode: "1", Country: "USA"}},
		)
		html, err := r.Render(context.Background(), job, "")
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if strings.Contains(html, "<script>") {
			t.Error("name should be HTML-escaped")
		}
		if !strings.Contains(html, "Smith &amp; Sons") {
			t.Error("ampersand should be escaped")
		}
	})

	t.Run("page CSS uses landscape size", func(t *testing.T) {
		t.Parallel()

		job := testJob()
		job.Width, job.Height = 110, 220
		html, err := r.Render(context.Background(), job, "")
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(html, "size: 220mm 110mm") {
			t.Errorf("missing landscape @page rule in:\n%s", html)
		}
	})

	t.Run("style cannot close the style element", func(t *testing.T) {
		t.Parallel()

		html, err := r.Render(context.Background(), testJob(), "body{color:red}</style><script>x()</script>")
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if strings.Contains(html, "</style><script>") {
			t.Error("style content broke out of <style>")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := r.Render(ctx, testJob(), ""); !errors.Is(err, context.Canceled) {
			t.Errorf("Render() error = %v, want context.Canceled", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRenderer_Render_CustomTemplate - Missing keys fail loudly
// ---------------------------------------------------------------------------

func TestRenderer_Render_CustomTemplate(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(`{{range .Recipients}}[{{.City}}]{{end}}`)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	html, err := r.Render(context.Background(), testJob(), "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if html != "[London][Mountain View]" {
		t.Errorf("Render() = %q", html)
	}

	bad, err := NewRenderer(`{{.Nope}}`)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	if _, err := bad.Render(context.Background(), testJob(), ""); !errors.Is(err, ErrTemplateRender) {
		t.Errorf("Render() error = %v, want ErrTemplateRender", err)
	}
}

// ---------------------------------------------------------------------------
// TestBuildPageCSS - Page geometry rules
// ---------------------------------------------------------------------------

func TestBuildPageCSS(t *testing.T) {
	t.Parallel()

	css := buildPageCSS(PageSize{WidthMM: 162, HeightMM: 114})
	for _, want := range []string{
		"@page { size: 162mm 114mm; margin: 0; }",
		".envelope { width: 162mm; height: 114mm;",
		"break-after: page",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("buildPageCSS() missing %q in:\n%s", want, css)
		}
	}
}
