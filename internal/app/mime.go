package app

import (
	"log"
	"mime"
)

func init() {
	for ext, typ := range map[string]string{
		".css":  "text/css; charset=utf-8",
		".svg":  "image/svg+xml",
		".webp": "image/webp",
		".ico":  "image/x-icon",
	} {
		ensureMimeType(ext, typ)
	}
}

func ensureMimeType(ext, typ string) {
	if mime.TypeByExtension(ext) != "" {
		return
	}
	if err := mime.AddExtensionType(ext, typ); err != nil {
		log.Printf("app: failed to register MIME type for %s: %v", ext, err)
	}
}
