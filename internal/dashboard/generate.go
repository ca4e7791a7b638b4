// Package dashboard renders Grafana dashboards over the GreptimeDB mission tables.
package dashboard

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Params names the tables the dashboard queries.
type Params struct {
	Database    string
	LogTable    string
	ResultTable string
}

// Render executes every dashboard template into outDir and returns the
// written paths. The Grafana datasource uid is read from
// GREPTIMEDB_DATASOURCE_UID.
func Render(outDir string, p Params) ([]string, error) {
	funcMap := template.FuncMap{
		"env": func(key string) (string, error) {
			v := os.Getenv(key)
			if v == "" {
				return "", fmt.Errorf("environment variable %s not set", key)
			}
			return v, nil
		},
	}

	tpl, err := template.New("dashboards").Funcs(funcMap).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	var paths []string
	for _, t := range tpl.Templates() {
		if !strings.HasSuffix(t.Name(), ".tmpl") {
			continue
		}
		outPath := filepath.Join(outDir, strings.TrimSuffix(t.Name(), ".tmpl"))
		f, err := os.Create(outPath)
		if err != nil {
			return paths, err
		}
		if err := t.Execute(f, p); err != nil {
			f.Close()
			return paths, err
		}
		if err := f.Close(); err != nil {
			return paths, err
		}
		paths = append(paths, outPath)
	}
	return paths, nil
}
