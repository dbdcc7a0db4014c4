package llm

import (
	"encoding/base64"
	"mime"
	"path/filepath"
	"strings"
)

// EncodeDataURL base64-encodes raw image bytes into a data URI, inferring
// the media type from the filename extension.
func EncodeDataURL(filename string, data []byte) string {
	mt := mimeTypeFor(filename)
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func mimeTypeFor(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}
	switch strings.TrimPrefix(ext, ".") {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
