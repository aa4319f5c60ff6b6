package zip

import (
	"archive/zip"
	"bytes"
)

type Document struct {
	Filename string
	Data     []byte
}

// ArchiveDocuments bundles the documents into a single zip archive in memory.
func ArchiveDocuments(docs []Document) []byte {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, doc := range docs {
		w, err := zw.Create(doc.Filename)
		if err != nil {
			continue
		}
		if _, err := w.Write(doc.Data); err != nil {
			return nil
		}
	}
	_ = zw.Close()
	return buf.Bytes()
}
