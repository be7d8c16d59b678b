package checker

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/afs/url"

	"github.com/dak2/methodray/diagnostics"
)

// projectMarkers denote a Ruby project root, probed upward from the start
// directory.
var projectMarkers = []string{"Gemfile", ".methodray.yml", ".git"}

// FindProjectRoot climbs from start toward the filesystem root looking for a
// project marker; without one the start directory itself is the root.
func FindProjectRoot(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return start
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for probe := dir; ; {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(probe, marker)); err == nil {
				return probe
			}
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			return dir
		}
		probe = parent
	}
}

// CheckProject analyzes every .rb file under the project root containing
// dir, aggregating diagnostics across files. Directories named .git, vendor,
// node_modules and tmp are not descended into.
func (c *Checker) CheckProject(ctx context.Context, dir string) ([]diagnostics.Diagnostic, error) {
	root := FindProjectRoot(dir)

	var files []string
	err := c.fs.Walk(ctx, root, func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		name := info.Name()
		if info.IsDir() {
			if name == ".git" || name == "vendor" || name == "node_modules" || name == "tmp" {
				return false, nil
			}
			return true, nil
		}
		if strings.HasSuffix(name, ".rb") {
			files = append(files, url.Join(baseURL, parent, name))
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var all []diagnostics.Diagnostic
	for _, file := range files {
		diags, err := c.CheckFile(ctx, file)
		if err != nil {
			return all, err
		}
		all = append(all, diags...)
	}
	return all, nil
}
