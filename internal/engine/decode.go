package engine

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	pdf "github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// DefaultFallbackEncoding is used to decode non-UTF-8 content when no
// fallback is configured.
const DefaultFallbackEncoding = "latin-1"

var errBinaryContent = errors.New("binary content")

// decodeContent turns raw file bytes into scannable text. UTF-8 passes
// through; PDF and DOCX content is reduced to plain text; other
// recognized binary formats and NUL-bearing content are rejected;
// anything else is decoded with the configured single-byte fallback
// encoding.
func decodeContent(b []byte, fallback string) (string, error) {
	if kind, _ := filetype.Match(b); kind != filetype.Unknown {
		switch kind {
		case matchers.TypePdf:
			return extractPDFText(b)
		case matchers.TypeDocx:
			return extractDOCXText(b)
		}
		return "", fmt.Errorf("%w (%s)", errBinaryContent, kind.MIME.Value)
	}
	if bytes.IndexByte(b, 0) >= 0 {
		return "", errBinaryContent
	}
	if utf8.Valid(b) {
		return string(b), nil
	}
	enc, err := fallbackEncoding(fallback)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode as %s: %w", fallback, err)
	}
	return string(out), nil
}

func fallbackEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "windows-1251", "cp1251":
		return charmap.Windows1251, nil
	case "koi8-r":
		return charmap.KOI8R, nil
	}
	return nil, fmt.Errorf("unsupported fallback encoding %q", name)
}

// maxPDFPages caps per-file PDF extraction cost.
const maxPDFPages = 50

// extractPDFText pulls plain text out of a PDF, page by page. Extraction
// failures are reported as undecodable content by the caller.
func extractPDFText(b []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", fmt.Errorf("pdf: %w", err)
	}
	pages := r.NumPage()
	if pages > maxPDFPages {
		pages = maxPDFPages
	}
	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteByte('\n')
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("pdf: no extractable text")
	}
	return sb.String(), nil
}

// extractDOCXText pulls the text of a Word document out of its zip
// container. It walks the WordprocessingML tokens of
// word/document.xml, so paragraph and table-cell text both come out;
// paragraphs end lines, tabs and breaks keep their shape.
func extractDOCXText(b []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", fmt.Errorf("docx: %w", err)
	}
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", fmt.Errorf("docx: %w", err)
			}
			defer rc.Close()
			return parseWordML(rc)
		}
	}
	return "", fmt.Errorf("docx: no word/document.xml")
}

func parseWordML(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("docx: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("docx: no extractable text")
	}
	return sb.String(), nil
}
