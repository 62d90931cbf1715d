package subtitle

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseASSTime parses an ASS event timestamp ("H:MM:SS.CC", centisecond
// precision) into milliseconds.
func ParseASSTime(s string) (int64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed timestamp %q", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", s, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", s, err)
	}
	secParts := strings.SplitN(parts[2], ".", 2)
	seconds, err := strconv.Atoi(secParts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", s, err)
	}
	var centis int
	if len(secParts) == 2 {
		centis, err = strconv.Atoi(secParts[1])
		if err != nil {
			return 0, fmt.Errorf("malformed timestamp %q: %w", s, err)
		}
	}
	ms := (int64(hours)*3600+int64(minutes)*60+int64(seconds))*1000 + int64(centis)*10
	return ms, nil
}

// FormatASSTime renders milliseconds as an ASS timestamp. Hours are not
// zero-padded; sub-centisecond remainder is truncated.
func FormatASSTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3600000
	ms %= 3600000
	minutes := ms / 60000
	ms %= 60000
	seconds := ms / 1000
	centis := (ms % 1000) / 10
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}
