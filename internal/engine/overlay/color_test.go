package overlay

import "testing"

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#000000", ColorBlack, false},
		{"ffffff", ColorWhite, false},
		{"#f00", ColorRed, false},
		{"#00000080", RGBA(0, 0, 0, 0x80), false},
		{" #00ff00ff ", ColorGreen, false},
		{"#12345", Color{}, true},
		{"#gg0000", Color{}, true},
		{"", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	if got := DefaultColor.Hex(); got != "#00000080" {
		t.Errorf("DefaultColor.Hex() = %q, want #00000080", got)
	}
	c, err := ParseHex("#1a2b3c4d")
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Hex(); got != "#1a2b3c4d" {
		t.Errorf("Hex() = %q, want #1a2b3c4d", got)
	}
}

func TestDefaultColor(t *testing.T) {
	if DefaultColor != (Color{0, 0, 0, 0.5}) {
		t.Errorf("DefaultColor = %v, want black at 50%% alpha", DefaultColor)
	}
}
