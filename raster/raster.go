package raster

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Encoding identifies how a source entry carries its image bytes.
type Encoding string

const (
	// EncodingBase64 marks inline base64 image data.
	EncodingBase64 Encoding = "base64"
	// EncodingFile marks a path or URL referencing the image bytes.
	EncodingFile Encoding = "file"
)

// Source describes one image to print, in print order.
type Source struct {
	Encoding Encoding
	Data     string
}

type sourceJSON struct {
	Format string `json:"format"`
	Data   string `json:"data"`
}

// ParseEncoding maps a descriptor format name to an Encoding. Names match
// case-insensitively and the empty name means a file reference.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(name) {
	case "", string(EncodingFile):
		return EncodingFile, nil
	case string(EncodingBase64):
		return EncodingBase64, nil
	}
	return "", fmt.Errorf("unknown source format %q", name)
}

// ParseSources decodes the JSON descriptor list carried by print requests:
// an array of {"format": ..., "data": ...} entries.
func ParseSources(data []byte) ([]Source, error) {
	var entries []sourceJSON
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse print sources: %w", err)
	}
	sources := make([]Source, 0, len(entries))
	for i, e := range entries {
		enc, err := ParseEncoding(e.Format)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		sources = append(sources, Source{Encoding: enc, Data: e.Data})
	}
	return sources, nil
}
