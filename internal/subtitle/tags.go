package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Positional override tags carry script-space coordinates, so resampling has
// to rewrite them alongside the style table. Each table entry maps a tag's
// numeric arguments to the axis they scale on. Tags outside the table
// (\fscx, \fad, vector drawings) are resolution-independent or out of scope
// and pass through untouched.
type axis int

const (
	axisX axis = iota
	axisY
)

var positionalTags = []struct {
	re   *regexp.Regexp
	name string
	axes []axis
}{
	{regexp.MustCompile(`\\pos\(([^,()]+),([^,()]+)\)`), `\pos`, []axis{axisX, axisY}},
	{regexp.MustCompile(`\\move\(([^,()]+),([^,()]+),([^,()]+),([^,()]+)\)`), `\move`, []axis{axisX, axisY, axisX, axisY}},
	{regexp.MustCompile(`\\org\(([^,()]+),([^,()]+)\)`), `\org`, []axis{axisX, axisY}},
	{regexp.MustCompile(`\\clip\(([^,()]+),([^,()]+),([^,()]+),([^,()]+)\)`), `\clip`, []axis{axisX, axisY, axisX, axisY}},
}

// \fs only, not \fscx or \fscy: the character class excludes letters.
var fontSizeTagRe = regexp.MustCompile(`\\fs([0-9.]+)`)

// rescaleText rewrites the positional override tags in an event's text
// field. A malformed numeric argument fails the whole call so the transform
// can fall back to the untouched source file.
func rescaleText(text string, scaleX, scaleY float64) (string, error) {
	var firstErr error
	scale := func(raw string, ax axis) string {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("override tag argument %q: %w", raw, err)
			}
			return raw
		}
		if ax == axisX {
			v *= scaleX
		} else {
			v *= scaleY
		}
		return formatScaled(v)
	}

	for _, tag := range positionalTags {
		if !strings.Contains(text, tag.name+"(") {
			continue
		}
		text = tag.re.ReplaceAllStringFunc(text, func(match string) string {
			groups := tag.re.FindStringSubmatch(match)
			args := make([]string, len(tag.axes))
			for i, ax := range tag.axes {
				args[i] = scale(groups[i+1], ax)
			}
			return tag.name + "(" + strings.Join(args, ",") + ")"
		})
	}
	if strings.Contains(text, `\fs`) {
		text = fontSizeTagRe.ReplaceAllStringFunc(text, func(match string) string {
			groups := fontSizeTagRe.FindStringSubmatch(match)
			return `\fs` + scale(groups[1], axisY)
		})
	}
	if firstErr != nil {
		return "", firstErr
	}
	return text, nil
}

// formatScaled renders a scaled coordinate with the fewest digits that
// round-trip, so integer results stay integers.
func formatScaled(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
