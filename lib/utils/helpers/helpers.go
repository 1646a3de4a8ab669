package helpers

import (
	"context"
	"strings"
	"time"
)

const DateTimeFormat = "02/01/2006 15:04"
const DateFormat = "02/01/2006"

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateFormat)
}

func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateTimeFormat)
}

// LikeValue значение для поиска по подстроке без учёта регистра
func LikeValue(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
