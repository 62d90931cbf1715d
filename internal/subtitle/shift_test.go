package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"muxxy/internal/fileutil"
)

func testWorkspace(t *testing.T) *fileutil.Workspace {
	t.Helper()
	return fileutil.NewWorkspace(filepath.Join(t.TempDir(), "work"))
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestShiftZeroFramesIsNoop(t *testing.T) {
	ws := testWorkspace(t)
	shifter := NewShifter(nil, ws)

	path := writeTestFile(t, "sub.ass", sampleScript)
	if got := shifter.Shift(path, 0); got != path {
		t.Errorf("Shift(0 frames) = %q, want input path", got)
	}
	if _, err := os.Stat(ws.Dir()); !os.IsNotExist(err) {
		t.Error("zero-frame shift created workspace output")
	}
}

func TestShiftASSForward(t *testing.T) {
	shifter := NewShifter(nil, testWorkspace(t))

	path := writeTestFile(t, "sub.ass", sampleScript)
	out := shifter.Shift(path, 24)
	if out == path {
		t.Fatal("Shift returned the input path for a real shift")
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read shifted file: %v", err)
	}
	content := string(data)
	// 24 frames at the default 23.976 fps rounds to 1001 ms.
	if !strings.Contains(content, "Dialogue: 0,0:00:02.00,0:00:04.50,") {
		t.Errorf("first event not shifted by 1001ms:\n%s", content)
	}
	if !strings.Contains(content, "Comment: 0,0:00:05.00,0:00:06.00,") {
		t.Errorf("comment events must shift too:\n%s", content)
	}
	if !strings.Contains(content, "Style: Default,Arial,48,") {
		t.Error("style table was modified by a timing shift")
	}
}

func TestShiftASSBackwardClampsAtZero(t *testing.T) {
	shifter := NewShifter(nil, testWorkspace(t))

	path := writeTestFile(t, "sub.ass", sampleScript)
	out := shifter.Shift(path, -48)

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read shifted file: %v", err)
	}
	content := string(data)
	// -48 frames is -2002 ms; the first start (1000 ms) clamps to zero while
	// its end keeps the full shift.
	if !strings.Contains(content, "Dialogue: 0,0:00:00.00,0:00:01.49,") {
		t.Errorf("negative shift not clamped at zero:\n%s", content)
	}
	if !strings.Contains(content, "Dialogue: 0,0:00:02.99,0:00:04.99,") {
		t.Errorf("later event shifted wrong:\n%s", content)
	}
}

func TestShiftASSHonorsTimerHeader(t *testing.T) {
	shifter := NewShifter(nil, testWorkspace(t))

	script := strings.Replace(sampleScript, "Title: Sample\n", "Title: Sample\nTimer: 25.0000\n", 1)
	path := writeTestFile(t, "sub.ass", script)
	out := shifter.Shift(path, 25)

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read shifted file: %v", err)
	}
	// 25 frames at 25 fps is exactly one second.
	if !strings.Contains(string(data), "Dialogue: 0,0:00:02.00,0:00:04.50,") {
		t.Errorf("Timer header frame rate ignored:\n%s", data)
	}
}

func TestShiftSRT(t *testing.T) {
	shifter := NewShifter(nil, testWorkspace(t))

	srt := "1\n00:00:01,000 --> 00:00:03,000\nHello\n\n2\n00:00:05,500 --> 00:00:07,250\nWorld\n"
	path := writeTestFile(t, "sub.srt", srt)
	out := shifter.Shift(path, 24)
	if out == path {
		t.Fatal("Shift returned the input path for a real shift")
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read shifted file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "00:00:02,001 --> 00:00:04,001") {
		t.Errorf("first cue not shifted:\n%s", content)
	}
	if !strings.Contains(content, "00:00:06,501 --> 00:00:08,251") {
		t.Errorf("second cue not shifted:\n%s", content)
	}
	if !strings.Contains(content, "Hello") || !strings.Contains(content, "World") {
		t.Error("cue text lost during shift")
	}
}

func TestShiftSRTClampsAtZero(t *testing.T) {
	shifter := NewShifter(nil, testWorkspace(t))

	srt := "1\n00:00:01,000 --> 00:00:03,000\nHello\n"
	path := writeTestFile(t, "sub.srt", srt)
	out := shifter.Shift(path, -100)

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read shifted file: %v", err)
	}
	if !strings.Contains(string(data), "00:00:00,000 -->") {
		t.Errorf("negative shift not clamped:\n%s", data)
	}
}

func TestShiftFailsOpen(t *testing.T) {
	shifter := NewShifter(nil, testWorkspace(t))

	tests := []struct {
		name string
		file string
		body string
	}{
		{"unsupported format", "sub.sub", "{1}{50}Hello"},
		{"garbage ass", "sub.ass", "this is not a script"},
		{"bad timestamp", "sub.ass", "[Events]\nFormat: Start, End, Text\nDialogue: bogus,0:00:02.00,hi\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestFile(t, tt.file, tt.body)
			if got := shifter.Shift(path, 24); got != path {
				t.Errorf("Shift = %q, want fail-open input path %q", got, path)
			}
		})
	}

	missing := filepath.Join(t.TempDir(), "missing.ass")
	if got := shifter.Shift(missing, 24); got != missing {
		t.Errorf("Shift(missing file) = %q, want input path", got)
	}
}
