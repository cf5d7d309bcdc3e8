package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/tendera/internal/core/domain"
)

// collectFiles turns command arguments into source files in argument order.
// Directories are walked recursively in lexical order and hidden entries
// are skipped. file:// prefixes are accepted.
func collectFiles(args []string) ([]domain.SourceFile, error) {
	var files []domain.SourceFile
	for _, arg := range args {
		path := strings.TrimPrefix(arg, "file://")

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, domain.NewSourceFile(path, ""))
			continue
		}

		var found []string
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if p != path && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() {
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", arg, err)
		}
		sort.Strings(found)
		for _, p := range found {
			rel, relErr := filepath.Rel(path, p)
			if relErr != nil {
				rel = filepath.Base(p)
			}
			files = append(files, domain.NewSourceFile(p, filepath.ToSlash(rel)))
		}
	}
	return files, nil
}
