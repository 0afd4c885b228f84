package style

import "testing"

func TestDepthColorShift(t *testing.T) {
	tests := []struct {
		name       string
		color      int
		depth      int
		wantBright int
		wantDim    int
	}{
		{name: "black stays black", color: 0, depth: 3, wantBright: 0, wantDim: 0},
		{name: "surface is clamped", color: 255, depth: 0, wantBright: 255, wantDim: 191},
		{name: "deeper is darker", color: 255, depth: 10, wantBright: 167, wantDim: 103},
		{name: "floor of brightness", color: 128, depth: 40, wantBright: brightMin, wantDim: brightMin - dimShift},
		{name: "negative depth counts as surface", color: 200, depth: -3, wantBright: 232, wantDim: 168},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bright, dim := DepthColorShift(tt.color, tt.depth)
			if bright != tt.wantBright || dim != tt.wantDim {
				t.Errorf("DepthColorShift(%d, %d) = %d, %d; want %d, %d", tt.color, tt.depth, bright, dim, tt.wantBright, tt.wantDim)
			}
		})
	}
}

func TestGenerateHexColor(t *testing.T) {
	if got := GenerateHexColor(255, 16, 0); got != "#FF1000" {
		t.Errorf("GenerateHexColor = %s, want #FF1000", got)
	}
}
