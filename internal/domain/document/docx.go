package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// A .docx file is a zip archive; the body text lives in word/document.xml as
// WordprocessingML. We walk the XML tokens collecting <w:t> runs and emit one
// line per <w:p> paragraph, skipping empty ones.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractError{Kind: KindCorruptFile, Err: err}
	}

	var docXML io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return "", &ExtractError{Kind: KindCorruptFile, Err: err}
			}
			break
		}
	}
	if docXML == nil {
		return "", &ExtractError{Kind: KindCorruptFile, Err: errors.New("word/document.xml not found")}
	}
	defer docXML.Close() //nolint:errcheck

	text, err := wordprocessingText(docXML)
	if err != nil {
		return "", &ExtractError{Kind: KindCorruptFile, Err: err}
	}
	return text, nil
}

func wordprocessingText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		out       []string
		paragraph strings.Builder
		inTextRun bool
	)

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
			if t.Name.Local == "t" {
				inTextRun = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inTextRun = false
			case "p":
				if line := paragraph.String(); line != "" {
					out = append(out, line)
				}
				paragraph.Reset()
			}
		case xml.CharData:
			if inTextRun {
				paragraph.Write(t)
			}
		}
	}

	// Text outside any closed paragraph (malformed but salvageable).
	if line := paragraph.String(); line != "" {
		out = append(out, line)
	}

	return strings.Join(out, "\n"), nil
}
