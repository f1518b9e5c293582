package storage

import (
	"fmt"
	"mime"
	"path"
	"strings"
	"time"
)

// ObjectKey builds the dated key an object is saved under, before any backend prefix.
func ObjectKey(opts SaveOptions) string {
	when := opts.Time
	if when.IsZero() {
		when = time.Now()
	}
	when = when.UTC()

	category := strings.Trim(path.Clean("/"+strings.TrimSpace(opts.Category)), "/")
	segments := make([]string, 0, 4)
	for _, seg := range strings.Split(category, "/") {
		if clean := sanitizeFileBase(seg); clean != "" {
			segments = append(segments, clean)
		}
	}
	if len(segments) == 0 {
		segments = append(segments, "misc")
	}

	base := sanitizeFileBase(opts.BaseName)
	if base == "" {
		base = fmt.Sprintf("%d", when.UnixNano())
	}
	datedir := fmt.Sprintf("%04d/%02d/%02d", when.Year(), when.Month(), when.Day())
	filename := fmt.Sprintf("%s.%s", base, normalizeExtension(opts.Extension))
	return path.Join(path.Join(segments...), datedir, filename)
}

func sanitizePathSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	builder := strings.Builder{}
	builder.Grow(len(value))
	for i := 0; i < len(value); i++ {
		ch := value[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			builder.WriteByte(ch)
		case ch >= 'A' && ch <= 'Z':
			builder.WriteByte(ch + 32)
		case ch == '-', ch == '_':
			builder.WriteByte(ch)
		}
	}
	return builder.String()
}

func normalizeExtension(ext string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if trimmed = sanitizePathSegment(trimmed); trimmed == "" {
		return "bin"
	}
	return trimmed
}

func contentTypeFor(opts SaveOptions) string {
	if ct := strings.TrimSpace(opts.ContentType); ct != "" {
		return ct
	}
	typeName := mime.TypeByExtension("." + normalizeExtension(opts.Extension))
	if typeName == "" {
		return "application/octet-stream"
	}
	return typeName
}

func joinPrefix(prefix, key string) string {
	cleanPrefix := trimPrefix(prefix)
	if cleanPrefix == "" {
		return strings.TrimLeft(key, "/")
	}
	return path.Join(cleanPrefix, strings.TrimLeft(key, "/"))
}

func trimPrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

func sanitizeFileBase(value string) string {
	replaced := strings.ReplaceAll(strings.TrimSpace(value), " ", "-")
	sanitized := sanitizePathSegment(replaced)
	return strings.Trim(sanitized, "-_")
}

func checkPayload(data []byte) error {
	if len(data) == 0 {
		return errEmptyPayload
	}
	return nil
}
