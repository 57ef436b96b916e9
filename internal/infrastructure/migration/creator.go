package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"
)

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
	// VersionLayout orders migration files by creation time
	VersionLayout = "20060102150405"
)

var (
	upTemplate = template.Must(template.New("up").Parse(`-- Migration: {{.Name}}
-- Description: {{.Description}}

`))
	downTemplate = template.Must(template.New("down").Parse(`-- Migration: {{.Name}} (Rollback)

`))
)

// File is a pair of up/down SQL scripts sharing a version
type File struct {
	Version     string
	Name        string
	Description string
	UpPath      string
	DownPath    string
}

// CreateMigration writes an empty up/down pair named after name into dir,
// creating dir when needed
func CreateMigration(dir, name, description string, now time.Time) (*File, error) {
	slug := sanitizeName(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	version := now.UTC().Format(VersionLayout)
	base := version + "_" + slug
	f := &File{
		Version:     version,
		Name:        slug,
		Description: description,
		UpPath:      filepath.Join(dir, base+upSuffix),
		DownPath:    filepath.Join(dir, base+downSuffix),
	}
	if err := writeScript(f.UpPath, upTemplate, f); err != nil {
		return nil, err
	}
	if err := writeScript(f.DownPath, downTemplate, f); err != nil {
		_ = os.Remove(f.UpPath)
		return nil, err
	}
	return f, nil
}

func writeScript(path string, tmpl *template.Template, f *File) error {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer out.Close()
	if err := tmpl.Execute(out, f); err != nil {
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	return nil
}

// sanitizeName lowercases name and joins its words with underscores
func sanitizeName(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			pendingSep = true
		}
	}
	return b.String()
}

// ListMigrations returns the base names of the migrations in dir in version
// order. A missing directory has no migrations. A script without its
// counterpart is an error.
func ListMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	ups := make(map[string]bool)
	downs := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, upSuffix):
			ups[strings.TrimSuffix(name, upSuffix)] = true
		case strings.HasSuffix(name, downSuffix):
			downs[strings.TrimSuffix(name, downSuffix)] = true
		}
	}

	names := make([]string, 0, len(ups))
	for base := range ups {
		if !downs[base] {
			return nil, fmt.Errorf("migration %s has no %s script", base, downSuffix)
		}
		names = append(names, base)
	}
	for base := range downs {
		if !ups[base] {
			return nil, fmt.Errorf("migration %s has no %s script", base, upSuffix)
		}
	}
	sort.Strings(names)
	return names, nil
}
