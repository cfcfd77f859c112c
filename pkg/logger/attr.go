package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// TenantID records the tenant identifier under the key "tenant_id".
func TenantID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("tenant_id", id)
}
