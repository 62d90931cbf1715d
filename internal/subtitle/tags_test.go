package subtitle

import "testing"

func TestRescaleText(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		scaleX float64
		scaleY float64
		want   string
	}{
		{
			"pos",
			`{\pos(640,360)}Centered`,
			1.5, 1.5,
			`{\pos(960,540)}Centered`,
		},
		{
			"pos anamorphic",
			`{\pos(320,240)}Text`,
			2, 1.5,
			`{\pos(640,360)}Text`,
		},
		{
			"move",
			`{\move(0,10,20,30)}Slide`,
			2, 1.5,
			`{\move(0,15,40,45)}Slide`,
		},
		{
			"org",
			`{\org(100,200)}Rotated`,
			2, 1.5,
			`{\org(200,300)}Rotated`,
		},
		{
			"rect clip",
			`{\clip(0,0,640,480)}Clipped`,
			2, 1.5,
			`{\clip(0,0,1280,720)}Clipped`,
		},
		{
			"font size",
			`{\fs24}Big{\fs12.5}small`,
			2, 1.5,
			`{\fs36}Big{\fs18.75}small`,
		},
		{
			"fscx is not a font size",
			`{\fscx200\fscy200}Wide`,
			2, 2,
			`{\fscx200\fscy200}Wide`,
		},
		{
			"vector clip passes through",
			`{\clip(m 0 0 l 100 0 100 100)}Drawn`,
			2, 2,
			`{\clip(m 0 0 l 100 0 100 100)}Drawn`,
		},
		{
			"no tags",
			"Plain dialogue",
			2, 2,
			"Plain dialogue",
		},
		{
			"fractional result",
			`{\pos(1,1)}Dot`,
			1.5, 1.5,
			`{\pos(1.5,1.5)}Dot`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rescaleText(tt.in, tt.scaleX, tt.scaleY)
			if err != nil {
				t.Fatalf("rescaleText(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("rescaleText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRescaleTextMalformedArgument(t *testing.T) {
	if _, err := rescaleText(`{\pos(abc,360)}Broken`, 1.5, 1.5); err == nil {
		t.Error("rescaleText accepted a non-numeric coordinate")
	}
}

func TestFormatScaled(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{72, "72"},
		{1.5, "1.5"},
		{0, "0"},
		{18.75, "18.75"},
	}
	for _, tt := range tests {
		if got := formatScaled(tt.v); got != tt.want {
			t.Errorf("formatScaled(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
