package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/logger"
)

// walkZIP calls visit for every regular file in the archive.
func walkZIP(path string, visit func(name string, r io.Reader) error) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			continue
		}
		name := memberName(f)

		rc, err := f.Open()
		if err != nil {
			logger.Warn("zip member %s: %v", name, err)
			continue
		}
		err = visit(name, rc)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// memberName decodes names written without the UTF-8 flag. Archives made
// by Windows tools in Russian locales store them in CP866.
func memberName(f *zip.File) string {
	if !f.NonUTF8 {
		return f.Name
	}
	decoded, err := charmap.CodePage866.NewDecoder().String(f.Name)
	if err != nil {
		return f.Name
	}
	return decoded
}
