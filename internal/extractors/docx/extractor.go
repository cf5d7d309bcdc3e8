package docx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

const documentPart = "word/document.xml"

// Extractor handles DOCX documents.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".docx"}
}

// Extract returns the body text of a DOCX file.
// Paragraphs become lines. Table rows become lines with tab-separated cells.
func (e *Extractor) Extract(_ context.Context, file domain.SourceFile) (string, error) {
	reader, err := zip.OpenReader(file.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	defer reader.Close()

	return extractDocumentText(&reader.Reader)
}

// extractDocumentText extracts text from word/document.xml.
func extractDocumentText(reader *zip.Reader) (string, error) {
	for _, file := range reader.File {
		if file.Name != documentPart {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
		}
		defer rc.Close()

		text, err := parseDocumentXML(rc)
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
		}
		return text, nil
	}
	return "", nil
}

// parseDocumentXML walks the WordprocessingML token stream.
func parseDocumentXML(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		out       strings.Builder
		line      strings.Builder
		inText    bool
		inProps   int
		cellDepth int
	)

	flush := func() {
		out.WriteString(strings.TrimRight(line.String(), " \t"))
		out.WriteByte('\n')
		line.Reset()
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "pPr", "rPr", "tblPr", "sectPr":
				inProps++
			case "tab":
				if inProps == 0 {
					line.WriteByte('\t')
				}
			case "br", "cr":
				if cellDepth > 0 {
					line.WriteByte(' ')
				} else {
					flush()
				}
			case "tc":
				cellDepth++
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "pPr", "rPr", "tblPr", "sectPr":
				inProps--
			case "p":
				if cellDepth > 0 {
					line.WriteByte(' ')
				} else {
					flush()
				}
			case "tc":
				cellDepth--
				trimmed := strings.TrimRight(line.String(), " ")
				line.Reset()
				line.WriteString(trimmed)
				line.WriteByte('\t')
			case "tr":
				flush()
			}
		case xml.CharData:
			if inText {
				line.Write(t)
			}
		}
	}
	if line.Len() > 0 {
		flush()
	}

	return strings.TrimSpace(out.String()), nil
}
