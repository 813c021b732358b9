package extract

import (
	"strconv"
	"strings"
	"time"
)

// NormalizeTimestamp converts a UTC epoch and a signed offset, both in
// seconds, into the local HH:MM wall-clock time. It returns "" when either
// value is missing or not an integer.
func NormalizeTimestamp(epoch, offset string) string {
	e, err := strconv.ParseInt(strings.TrimSpace(epoch), 10, 64)
	if err != nil {
		return ""
	}
	o, err := strconv.ParseInt(strings.TrimSpace(offset), 10, 64)
	if err != nil {
		return ""
	}
	return time.Unix(e+o, 0).UTC().Format("15:04")
}
