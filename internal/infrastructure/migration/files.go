package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Pair is the up/down file pair of one migration
type Pair struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

// Create writes an empty up/down migration pair into dir. The version
// prefix is the current timestamp so files sort in creation order.
func Create(dir, name, description string) (*Pair, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	now := time.Now()
	p := &Pair{
		Version: now.Format("20060102150405"),
		Name:    slugify(name),
	}
	if p.Name == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	base := p.Version + "_" + p.Name
	p.UpPath = filepath.Join(dir, base+".up.sql")
	p.DownPath = filepath.Join(dir, base+".down.sql")

	header := fmt.Sprintf("-- Migration: %s\n-- Created: %s\n", p.Name, now.Format(time.RFC3339))
	if description != "" {
		header += "-- Description: " + description + "\n"
	}

	if err := os.WriteFile(p.UpPath, []byte(header+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", p.UpPath, err)
	}
	if err := os.WriteFile(p.DownPath, []byte(header+"\n"), 0o644); err != nil {
		os.Remove(p.UpPath)
		return nil, fmt.Errorf("write %s: %w", p.DownPath, err)
	}
	return p, nil
}

// List returns the base names of the migrations in dir, sorted
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if base, ok := strings.CutSuffix(entry.Name(), ".up.sql"); ok && !entry.IsDir() {
			names = append(names, base)
		}
	}
	sort.Strings(names)
	return names, nil
}

// slugify lowercases a migration name and keeps [a-z0-9_] only
func slugify(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, c := range strings.ToLower(name) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteRune(c)
			lastUnderscore = false
		case c == ' ', c == '-', c == '_':
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
