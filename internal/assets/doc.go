// Package assets provides the HTML templates and CSS styles used to lay out
// envelopes and postcards.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in layouts)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the converter when a custom asset
// directory is configured. It tries the custom directory first and falls
// back to the embedded assets when a name is not found there, so a user can
// override a single template while keeping the default styles.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # CSS styles (e.g., default.css)
//	└── templates/
//	    └── {name}.html          # Page templates (e.g., envelope.html)
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
