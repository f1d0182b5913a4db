package docio

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

type packageFacts struct {
	images     int
	pageBreaks int
	hasTOC     bool
}

type relationships struct {
	Rels []relationship `xml:"Relationship"`
}

type relationship struct {
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// inspectPackage reads the parts of the OOXML package that the paragraph
// model does not cover: image relationships, explicit page breaks, and the
// TOC field. A manuscript with no relationships part simply has no images.
func inspectPackage(path string) (packageFacts, error) {
	var facts packageFacts

	zr, err := zip.OpenReader(path)
	if err != nil {
		return facts, fmt.Errorf("open package: %w", err)
	}
	defer zr.Close()

	for _, zf := range zr.File {
		switch zf.Name {
		case "word/_rels/document.xml.rels":
			n, err := countImageRels(zf)
			if err != nil {
				return facts, err
			}
			facts.images = n
		case "word/document.xml":
			rc, err := zf.Open()
			if err != nil {
				return facts, fmt.Errorf("open document part: %w", err)
			}
			data, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return facts, fmt.Errorf("read document part: %w", err)
			}
			facts.pageBreaks = bytes.Count(data, []byte(`w:type="page"`))
			facts.hasTOC = bytes.Contains(data, []byte("instrText")) &&
				bytes.Contains(data, []byte("TOC"))
		}
	}

	return facts, nil
}

func countImageRels(zf *zip.File) (int, error) {
	rc, err := zf.Open()
	if err != nil {
		return 0, fmt.Errorf("open rels part: %w", err)
	}
	defer rc.Close()

	var rels relationships
	if err := xml.NewDecoder(rc).Decode(&rels); err != nil {
		return 0, fmt.Errorf("decode rels part: %w", err)
	}

	n := 0
	for _, rel := range rels.Rels {
		if strings.HasSuffix(rel.Type, "/image") {
			n++
		}
	}
	return n, nil
}
