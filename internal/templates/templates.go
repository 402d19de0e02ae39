package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/vango-dev/universal/internal/config"
	"github.com/vango-dev/universal/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string

	// Selector is the app root tag, e.g. "app-root".
	Selector string

	// Addr is the listen address written to the config.
	Addr string
}

// Template represents a project template.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"full":    fullTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E145").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: full, minimal")
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create generates a project from the template. It refuses to overwrite
// an existing configuration unless force is set.
func (t *Template) Create(dir string, cfg Config, force bool) error {
	if !force && config.Exists(dir) {
		return errors.New("E146").WithDetail("Found a configuration file in " + dir)
	}
	if cfg.Selector == "" {
		cfg.Selector = "app-root"
	}
	if cfg.Addr == "" {
		cfg.Addr = config.DefaultAddr
	}
	if cfg.ProjectName == "" {
		cfg.ProjectName = filepath.Base(dir)
	}

	paths := make([]string, 0, len(t.Files))
	for p := range t.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, relPath := range paths {
		tmpl, err := template.New(relPath).Delims("[[", "]]").Parse(t.Files[relPath])
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0o644); err != nil {
			return err
		}
	}

	return nil
}

func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "A config file and one template",
		Files: map[string]string{
			"universal.yaml": `appSelector: <[[.Selector]]></[[.Selector]]>
module:
  template: app.html
server:
  addr: "[[.Addr]]"
`,
			"app.html": `<h1>[[.ProjectName]]</h1>
<p>Rendered {{URL}}</p>
`,
		},
	}
}

func fullTemplate() *Template {
	return &Template{
		Name:        "full",
		Description: "Document shell, stylesheet, asset manifest and watch mode",
		Files: map[string]string{
			"universal.yaml": `appSelector: <[[.Selector]]></[[.Selector]]>
document: |
  <!DOCTYPE html>
  <html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <link rel="icon" href="/favicon.ico">
  </head>
  <body>
    <[[.Selector]]></[[.Selector]]>
    <script src="/main.js" defer></script>
  </body>
  </html>
module:
  id: [[.ProjectName]]
  template: app.html
  styles:
    - app.css
stabilityTimeout: 10s
cache:
  maxEntries: 64
resources:
  root: src
  manifest: src/manifest.json
server:
  addr: "[[.Addr]]"
watch: true
logLevel: info
`,
			"src/app.html": `<header><h1>[[.ProjectName]]</h1></header>
<main>
  <p>You are at <code>{{URL}}</code> on {{ORIGIN_URL}}.</p>
</main>
`,
			"src/app.css": `body { font-family: system-ui, sans-serif; max-width: 800px; margin: 0 auto; padding: 2rem; }
h1 { color: #2563eb; }
`,
			"src/manifest.json": `{
  "app.css": "app.css"
}
`,
		},
	}
}
