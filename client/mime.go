package client

import (
	"fmt"
	"path"
	"strings"
)

// extensionTypes maps a lowercase filename extension to a content type for
// listings, which carry no content type of their own.
var extensionTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"svg":  "image/svg+xml",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"mp4":  "video/mp4",
	"mpeg": "video/mpeg",
	"ogg":  "video/ogg",
	"webm": "video/webm",
	"mov":  "video/quicktime",
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"aac":  "audio/aac",
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"txt":  "text/plain",
	"rtf":  "application/rtf",
}

// InferContentType guesses a content type from the filename extension,
// falling back to application/octet-stream.
func InferContentType(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ct, ok := extensionTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count for display. A nil size is "Unknown".
func FormatSize(size *int64) string {
	if size == nil || *size <= 0 {
		return "Unknown"
	}
	value := float64(*size)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", value, sizeUnits[unit])
}
