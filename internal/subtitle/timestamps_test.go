package subtitle

import "testing"

func TestParseASSTime(t *testing.T) {
	tests := []struct {
		in      string
		ms      int64
		wantErr bool
	}{
		{"0:00:00.00", 0, false},
		{"0:00:01.00", 1000, false},
		{"1:02:03.45", 3723450, false},
		{"0:00:05.5", 5050, false},
		{" 0:00:02.00 ", 2000, false},
		{"0:00:02", 2000, false},
		{"00:02.00", 0, true},
		{"a:00:02.00", 0, true},
		{"0:00:xx.00", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseASSTime(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseASSTime(%q) = %d, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseASSTime(%q): %v", tt.in, err)
			}
			if got != tt.ms {
				t.Errorf("ParseASSTime(%q) = %d, want %d", tt.in, got, tt.ms)
			}
		})
	}
}

func TestFormatASSTime(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0:00:00.00"},
		{1000, "0:00:01.00"},
		{3723450, "1:02:03.45"},
		{61010, "0:01:01.01"},
		{36000000, "10:00:00.00"},
		{-500, "0:00:00.00"},
		{2001, "0:00:02.00"},
	}
	for _, tt := range tests {
		if got := FormatASSTime(tt.ms); got != tt.want {
			t.Errorf("FormatASSTime(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestFrameShiftMs(t *testing.T) {
	if got := frameShiftMs(24, 23.976); got != 1001 {
		t.Errorf("frameShiftMs(24, 23.976) = %d, want 1001", got)
	}
	if got := frameShiftMs(25, 25.0); got != 1000 {
		t.Errorf("frameShiftMs(25, 25) = %d, want 1000", got)
	}
	if got := frameShiftMs(-24, 23.976); got != -1001 {
		t.Errorf("frameShiftMs(-24, 23.976) = %d, want -1001", got)
	}
}
