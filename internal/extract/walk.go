package extract

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// WalkOptions filter the batch traversal.
type WalkOptions struct {
	// Include globs (doublestar syntax). Empty means every supported file.
	Include []string
	// Exclude globs, applied after Include.
	Exclude []string
	// MaxBytes skips files larger than this. Zero means no limit.
	MaxBytes int64
}

// Skipped directories nobody wants document scans inside of.
var defaultDirExcludes = map[string]bool{
	".git":         true,
	"node_modules": true,
	".venv":        true,
	"__pycache__":  true,
}

// Walk traverses root and invokes handle with the extracted text of each
// eligible document. Unreadable or undecodable files are skipped, not
// fatal; only context cancellation stops the walk early.
func Walk(ctx context.Context, root string, opts WalkOptions, handle func(path, text string)) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if defaultDirExcludes[d.Name()] || strings.HasPrefix(d.Name(), ".") && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		rel, _ := filepath.Rel(root, p)
		if !SupportedExt(rel) {
			return nil
		}
		if !allowedByGlobs(rel, opts) {
			return nil
		}
		if opts.MaxBytes > 0 {
			if info, err := d.Info(); err == nil && info.Size() > opts.MaxBytes {
				return nil
			}
		}
		text, err := Text(p)
		if err != nil {
			return nil
		}
		handle(rel, text)
		return nil
	})
}

func allowedByGlobs(rel string, opts WalkOptions) bool {
	rel = filepath.ToSlash(rel)
	if len(opts.Include) > 0 && !matchAnyGlob(rel, opts.Include) {
		return false
	}
	return !matchAnyGlob(rel, opts.Exclude)
}

func matchAnyGlob(rel string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}
