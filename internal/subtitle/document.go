package subtitle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const bomMark = "\ufeff"

// fieldLine is a comma-separated value line ("Style: ..." or "Dialogue: ...")
// bound to its Format declaration. Fields are addressed by their lowercased
// Format name. Mutations mark the line dirty; Document.Serialize writes dirty
// lines back and leaves everything else untouched.
type fieldLine struct {
	line   int
	prefix string
	format []string
	values []string
	dirty  bool
}

func (f *fieldLine) index(name string) int {
	for i, field := range f.format {
		if field == name {
			return i
		}
	}
	return -1
}

// Has reports whether the Format declaration includes the named field.
func (f *fieldLine) Has(name string) bool { return f.index(name) >= 0 }

// Get returns the trimmed value of the named field.
func (f *fieldLine) Get(name string) (string, bool) {
	i := f.index(name)
	if i < 0 {
		return "", false
	}
	return strings.TrimSpace(f.values[i]), true
}

// Set replaces the named field, keeping the leading whitespace of the
// original value so the line's visual alignment survives.
func (f *fieldLine) Set(name, value string) bool {
	i := f.index(name)
	if i < 0 {
		return false
	}
	old := f.values[i]
	j := 0
	for j < len(old) && (old[j] == ' ' || old[j] == '\t') {
		j++
	}
	f.values[i] = old[:j] + value
	f.dirty = true
	return true
}

func (f *fieldLine) text() string {
	return f.prefix + strings.Join(f.values, ",")
}

// Style is a typed view of a "Style:" line in a styles section.
type Style struct {
	fieldLine
}

// Name returns the style name, or "" when the Format lacks one.
func (s *Style) Name() string {
	name, _ := s.Get("name")
	return name
}

// Event is a typed view of a "Dialogue:" or "Comment:" line.
type Event struct {
	fieldLine
}

// Document is an ASS/SSA script parsed into its original lines plus typed
// views of the style and event lines. Serialize reproduces the input byte
// for byte except for fields a transform explicitly patched.
type Document struct {
	lines   []string
	bom     string
	newline string

	Info   ScriptInfo
	Styles []Style
	Events []Event

	scriptInfoLine int
	playResXLine   int
	playResYLine   int
	inserts        []string
}

// ParseDocument parses raw ASS/SSA bytes. The script must contain at least
// one section header; style and event lines must match their section's
// Format declaration.
func ParseDocument(data []byte) (*Document, error) {
	doc := &Document{
		newline:        "\n",
		scriptInfoLine: -1,
		playResXLine:   -1,
		playResYLine:   -1,
	}
	content := string(data)
	if strings.HasPrefix(content, bomMark) {
		doc.bom = bomMark
		content = strings.TrimPrefix(content, bomMark)
	}
	if strings.Contains(content, "\r\n") {
		doc.newline = "\r\n"
	}
	doc.lines = strings.Split(content, doc.newline)

	var (
		section     string
		sawSection  bool
		styleFormat []string
		eventFormat []string
	)
	for i, line := range doc.lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section = strings.ToLower(strings.TrimSpace(trimmed[1 : len(trimmed)-1]))
			sawSection = true
			if section == "script info" {
				doc.scriptInfoLine = i
			}
			continue
		}
		colon := strings.Index(line, ":")
		if colon < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:colon]))
		rest := line[colon+1:]

		switch {
		case section == "script info":
			doc.parseInfoField(i, key, strings.TrimSpace(rest))
		case strings.HasSuffix(section, "styles"):
			switch key {
			case "format":
				styleFormat = parseFormat(rest)
			case "style":
				fl, err := parseFieldLine(i, line, colon, styleFormat, rest)
				if err != nil {
					return nil, err
				}
				doc.Styles = append(doc.Styles, Style{fl})
			}
		case section == "events":
			switch key {
			case "format":
				eventFormat = parseFormat(rest)
			case "dialogue", "comment":
				fl, err := parseFieldLine(i, line, colon, eventFormat, rest)
				if err != nil {
					return nil, err
				}
				doc.Events = append(doc.Events, Event{fl})
			}
		}
	}
	if !sawSection {
		return nil, errors.New("not an ASS script: no section headers")
	}
	return doc, nil
}

func (d *Document) parseInfoField(line int, key, value string) {
	switch key {
	case "playresx":
		d.playResXLine = line
		if v, err := strconv.Atoi(value); err == nil {
			d.Info.PlayResX = v
		}
	case "playresy":
		d.playResYLine = line
		if v, err := strconv.Atoi(value); err == nil {
			d.Info.PlayResY = v
		}
	case "timer":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			d.Info.Timer = v
		}
	}
}

func parseFormat(rest string) []string {
	parts := strings.Split(rest, ",")
	fields := make([]string, len(parts))
	for i, part := range parts {
		fields[i] = strings.ToLower(strings.TrimSpace(part))
	}
	return fields
}

func parseFieldLine(line int, raw string, colon int, format []string, rest string) (fieldLine, error) {
	if len(format) == 0 {
		return fieldLine{}, fmt.Errorf("line %d: value line before Format declaration", line+1)
	}
	values := strings.SplitN(rest, ",", len(format))
	if len(values) != len(format) {
		return fieldLine{}, fmt.Errorf("line %d: %d fields, Format declares %d", line+1, len(values), len(format))
	}
	return fieldLine{
		line:   line,
		prefix: raw[:colon+1],
		format: format,
		values: values,
	}, nil
}

// SetPlayRes patches PlayResX/PlayResY in the script header, adding the
// fields when the source script omitted them.
func (d *Document) SetPlayRes(res Resolution) {
	d.setHeaderInt(d.playResXLine, "PlayResX", res.Width)
	d.setHeaderInt(d.playResYLine, "PlayResY", res.Height)
	d.Info.PlayResX = res.Width
	d.Info.PlayResY = res.Height
}

func (d *Document) setHeaderInt(line int, key string, value int) {
	if line >= 0 {
		d.lines[line] = patchHeaderValue(d.lines[line], strconv.Itoa(value))
		return
	}
	d.inserts = append(d.inserts, key+": "+strconv.Itoa(value))
}

func patchHeaderValue(line, value string) string {
	colon := strings.Index(line, ":")
	rest := line[colon+1:]
	j := 0
	for j < len(rest) && (rest[j] == ' ' || rest[j] == '\t') {
		j++
	}
	return line[:colon+1] + rest[:j] + value
}

// Serialize writes the document back out, applying pending field patches and
// header inserts. Untouched lines are emitted exactly as read.
func (d *Document) Serialize() []byte {
	for i := range d.Styles {
		if d.Styles[i].dirty {
			d.lines[d.Styles[i].line] = d.Styles[i].text()
			d.Styles[i].dirty = false
		}
	}
	for i := range d.Events {
		if d.Events[i].dirty {
			d.lines[d.Events[i].line] = d.Events[i].text()
			d.Events[i].dirty = false
		}
	}

	var b strings.Builder
	b.WriteString(d.bom)
	if d.scriptInfoLine < 0 {
		d.writeInserts(&b)
	}
	for i, line := range d.lines {
		if i > 0 {
			b.WriteString(d.newline)
		}
		b.WriteString(line)
		if i == d.scriptInfoLine {
			d.writeInserts(&b)
		}
	}
	return []byte(b.String())
}

func (d *Document) writeInserts(b *strings.Builder) {
	for _, line := range d.inserts {
		if d.scriptInfoLine < 0 {
			b.WriteString(line)
			b.WriteString(d.newline)
		} else {
			b.WriteString(d.newline)
			b.WriteString(line)
		}
	}
}
