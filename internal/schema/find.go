package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry describes one schema file found in a directory.
type Entry struct {
	Path    string
	Name    string
	Title   string
	Steps   int
	ModTime time.Time
	Err     error
}

// IsSchemaFile reports whether name has a schema extension.
func IsSchemaFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// List loads every schema file in dir. Files that fail to load are listed
// with Err set.
func List(dir string) ([]Entry, error) {
	files, err := schemaFiles(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		e := Entry{Path: f}
		if info, err := os.Stat(f); err == nil {
			e.ModTime = info.ModTime()
		}
		p, err := Load(f)
		if err != nil {
			e.Err = err
		} else {
			e.Name = p.Name
			e.Title = p.DisplayTitle()
			e.Steps = len(p.Steps)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// FindLatest returns the most recently modified schema file in dir.
func FindLatest(dir string) (string, error) {
	files, err := schemaFiles(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no schema files found in %s", dir)
	}

	// Sort by modification time (newest first)
	sort.SliceStable(files, func(i, j int) bool {
		infoI, _ := os.Stat(files[i])
		infoJ, _ := os.Stat(files[j])
		if infoI == nil || infoJ == nil {
			return infoJ == nil && infoI != nil
		}
		return infoI.ModTime().After(infoJ.ModTime())
	})

	return files[0], nil
}

// GeneratePath creates a timestamped schema filename in dir.
func GeneratePath(dir, name string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.json", name, timestamp))
}

func schemaFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read presentations directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && IsSchemaFile(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
