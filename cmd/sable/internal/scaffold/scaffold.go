// Package scaffold creates new Sable application projects.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// templateData contains the data for template substitution.
type templateData struct {
	ModulePath string
	AppName    string
}

// Project creates a new application directory with go.mod, main.go, and
// sable.yaml. The module path is validated before anything is written.
func Project(dir, modulePath, appName string) error {
	if err := module.CheckPath(modulePath); err != nil {
		// Bare names like "myapp" are valid local module paths even though
		// they fail the registry-path check.
		if err2 := module.CheckImportPath(modulePath); err2 != nil {
			return fmt.Errorf("invalid module path %q: %w", modulePath, err)
		}
	}

	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("directory %s already exists", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	if err := writeGoMod(dir, modulePath); err != nil {
		return err
	}

	data := templateData{ModulePath: modulePath, AppName: appName}
	if err := writeTemplate(filepath.Join(dir, "main.go"), mainTemplate, data); err != nil {
		return err
	}
	return writeTemplate(filepath.Join(dir, "sable.yaml"), configTemplate, data)
}

func writeGoMod(dir, modulePath string) error {
	f := new(modfile.File)
	if err := f.AddModuleStmt(modulePath); err != nil {
		return fmt.Errorf("failed to build go.mod: %w", err)
	}
	if err := f.AddGoStmt("1.24.0"); err != nil {
		return fmt.Errorf("failed to build go.mod: %w", err)
	}
	data, err := f.Format()
	if err != nil {
		return fmt.Errorf("failed to format go.mod: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "go.mod"), data, 0o644)
}

func writeTemplate(path, tmpl string, data templateData) error {
	t, err := template.New(filepath.Base(path)).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return t.Execute(f, data)
}

const mainTemplate = `package main

import (
	"fmt"
	"os"

	"github.com/go-sable/sable/pkg/dom"
	"github.com/go-sable/sable/pkg/events"
	"github.com/go-sable/sable/pkg/refdata"
	"github.com/go-sable/sable/pkg/runtime"
)

type model struct {
	Clicks int
}

func render(data *refdata.Ref, layout *events.LayoutContext) *dom.Dom {
	m, _ := refdata.Access[model](data)
	return dom.Body().
		Append(dom.Text(fmt.Sprintf("Clicks: %d", m.Clicks)))
}

func main() {
	app := runtime.NewApp(refdata.Pack(model{}))
	defer app.Shutdown()

	if _, err := app.CreateWindow(runtime.WindowOptions{
		Title:  "{{.AppName}}",
		Width:  800,
		Height: 600,
		Render: render,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
`

const configTemplate = `app:
  name: {{.AppName}}
  window_title: {{.AppName}}
  window_width: 800
  window_height: 600
debug:
  port: 0
`
