package mediakeep

import "strings"

// Category is a fixed top-level partition of file storage. Every stored
// object belongs to exactly one category, encoded as the key prefix
// "<category>/". Categories are configuration, not runtime state.
type Category int

const (
	CategoryImages Category = iota
	CategoryVideos
	CategoryAudio
	CategoryDocuments
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryImages,
	CategoryVideos,
	CategoryAudio,
	CategoryDocuments,
}

// String returns the lowercase category name used in keys and URLs.
func (c Category) String() string {
	switch c {
	case CategoryImages:
		return "images"
	case CategoryVideos:
		return "videos"
	case CategoryAudio:
		return "audio"
	case CategoryDocuments:
		return "documents"
	default:
		return "unknown"
	}
}

// Prefix returns the storage key prefix for the category, e.g. "images/".
func (c Category) Prefix() string {
	return c.String() + "/"
}

// ParseCategory resolves a category name case-insensitively.
// Returns EINVALIDCATEGORY for anything outside the fixed set.
func ParseCategory(name string) (Category, error) {
	switch strings.ToLower(name) {
	case "images":
		return CategoryImages, nil
	case "videos":
		return CategoryVideos, nil
	case "audio":
		return CategoryAudio, nil
	case "documents":
		return CategoryDocuments, nil
	default:
		return 0, InvalidCategory(name)
	}
}

// allowedTypes maps each category to its content-type allow-list. Matching is
// by exact string compare, no wildcard or prefix matching. The documents list
// is deliberately permissive: it is a superset covering every images, videos,
// and audio entry so that any media file can also live as a document.
var allowedTypes = map[Category][]string{
	CategoryImages: {
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
		"image/svg+xml",
		"image/bmp",
	},
	CategoryVideos: {
		"video/mp4",
		"video/mpeg",
		"video/ogg",
		"video/webm",
		"video/quicktime",
	},
	CategoryAudio: {
		"audio/mpeg",
		"audio/ogg",
		"audio/wav",
		"audio/mp4",
		"audio/webm",
		"audio/aac",
	},
	CategoryDocuments: {
		// Office / documents
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-powerpoint",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation",
		"text/plain",
		"application/rtf",
		"text/csv",

		// Archives / compressed
		"application/zip",
		"application/x-7z-compressed",
		"application/x-rar-compressed",
		"application/gzip",
		"application/x-tar",
		"application/x-bzip2",
		"application/x-xz",

		// Executables / installers
		"application/x-msdownload",
		"application/x-msi",
		"application/vnd.android.package-archive",
		"application/x-sh",
		"application/javascript",
		"application/x-dosexec",

		// Images allowed as documents
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
		"image/bmp",
		"image/tiff",
		"image/svg+xml",

		// Audio / video allowed as documents
		"audio/mpeg",
		"audio/ogg",
		"audio/wav",
		"audio/mp4",
		"audio/webm",
		"audio/aac",
		"video/mp4",
		"video/mpeg",
		"video/ogg",
		"video/webm",
		"video/quicktime",

		// Programming / script files
		"application/json",
		"application/xml",
		"application/x-python-code",
		"application/x-ruby",
		"application/x-perl",
		"text/html",
		"text/css",
		"text/javascript",

		// Generic binary
		"application/octet-stream",
		"application/x-binary",

		// Other common formats
		"application/epub+zip",
		"application/x-font-ttf",
		"application/font-woff",
		"application/vnd.oasis.opendocument.text",
		"application/vnd.oasis.opendocument.spreadsheet",
		"application/vnd.oasis.opendocument.presentation",
		"application/x-ms-shortcut",
	},
}

// Allows reports whether the content type appears in the category's
// allow-list.
func (c Category) Allows(contentType string) bool {
	for _, t := range allowedTypes[c] {
		if t == contentType {
			return true
		}
	}
	return false
}

// AllowedTypes returns a copy of the category's content-type allow-list.
func (c Category) AllowedTypes() []string {
	types := allowedTypes[c]
	out := make([]string, len(types))
	copy(out, types)
	return out
}
