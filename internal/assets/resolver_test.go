package assets

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !resolver.HasCustomLoader() {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_EmbeddedOnly(t *testing.T) {
	t.Parallel()

	resolver, err := NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	if css, err := resolver.LoadStyle(DefaultStyleName); err != nil || css == "" {
		t.Errorf("LoadStyle(%q) = %d bytes, %v", DefaultStyleName, len(css), err)
	}
	if tmpl, err := resolver.LoadTemplate(DefaultTemplateName); err != nil || !strings.Contains(tmpl, ".Recipients") {
		t.Errorf("LoadTemplate(%q) = %d bytes, %v", DefaultTemplateName, len(tmpl), err)
	}
	if _, err := resolver.LoadTemplate("letterhead"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(letterhead) error = %v, want ErrTemplateNotFound", err)
	}
}

func TestAssetResolver_CustomWithFallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "styles", "default.css", "/* override */")
	writeFile(t, dir, "templates", "label.html", "<p>label</p>")

	resolver, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	t.Run("custom overrides embedded", func(t *testing.T) {
		t.Parallel()

		css, err := resolver.LoadStyle(DefaultStyleName)
		if err != nil || css != "/* override */" {
			t.Errorf("LoadStyle() = %q, %v; want override", css, err)
		}
	})

	t.Run("custom-only template", func(t *testing.T) {
		t.Parallel()

		tmpl, err := resolver.LoadTemplate("label")
		if err != nil || tmpl != "<p>label</p>" {
			t.Errorf("LoadTemplate(label) = %q, %v", tmpl, err)
		}
	})

	t.Run("falls back for names the directory lacks", func(t *testing.T) {
		t.Parallel()

		if _, err := resolver.LoadStyle("plain"); err != nil {
			t.Errorf("LoadStyle(plain) error = %v", err)
		}
		if _, err := resolver.LoadTemplate("postcard"); err != nil {
			t.Errorf("LoadTemplate(postcard) error = %v", err)
		}
	})

	t.Run("validation errors are not fallen back", func(t *testing.T) {
		t.Parallel()

		if _, err := resolver.LoadStyle("../secret"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle() error = %v, want ErrInvalidAssetName", err)
		}
		if _, err := resolver.LoadTemplate("../secret"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadTemplate() error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestAssetResolver_ImplementsAssetLoader(t *testing.T) {
	t.Parallel()

	var _ AssetLoader = (*AssetResolver)(nil)
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"ErrStyleNotFound", ErrStyleNotFound, true},
		{"ErrTemplateNotFound", ErrTemplateNotFound, true},
		{"wrapped ErrStyleNotFound", fmt.Errorf("%w: %q", ErrStyleNotFound, "x"), true},
		{"ErrInvalidAssetName", ErrInvalidAssetName, false},
		{"ErrAssetRead", ErrAssetRead, false},
		{"generic error", errors.New("some error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isNotFoundError(tt.err); got != tt.want {
				t.Errorf("isNotFoundError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
