package archive

import (
	"errors"
	"fmt"
	"io"

	"github.com/nwaples/rardecode/v2"

	"github.com/custodia-labs/tendera/internal/core/domain"
)

// walkRAR calls visit for every regular file in the archive.
// Multi-volume archives are followed when their volumes sit alongside.
func walkRAR(path string, visit func(name string, r io.Reader) error) error {
	rc, err := rardecode.OpenReader(path)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	defer rc.Close()

	for {
		hdr, err := rc.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
		}
		if hdr.IsDir {
			continue
		}
		if err := visit(hdr.Name, rc); err != nil {
			return err
		}
	}
}
