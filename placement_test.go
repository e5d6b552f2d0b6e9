package adorn

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestComputePlacement(t *testing.T) {
	host := Vec2{200, 100}
	overlay := func(h HAlign, v VAlign) OverlayMetrics {
		return OverlayMetrics{Desired: Vec2{50, 20}, HAlign: h, VAlign: v}
	}

	tests := []struct {
		name    string
		overlay OverlayMetrics
		cfg     PlacementConfig
		want    Rect
	}{
		{
			name:    "right inside",
			overlay: overlay(HAlignRight, VAlignTop),
			want:    Rect{X: 150, Y: 0, Width: 50, Height: 20},
		},
		{
			name:    "right outside",
			overlay: overlay(HAlignRight, VAlignTop),
			cfg:     PlacementConfig{Horizontal: PlacementOutside},
			want:    Rect{X: 200, Y: 0, Width: 50, Height: 20},
		},
		{
			name:    "left outside",
			overlay: overlay(HAlignLeft, VAlignTop),
			cfg:     PlacementConfig{Horizontal: PlacementOutside},
			want:    Rect{X: -50, Y: 0, Width: 50, Height: 20},
		},
		{
			name:    "center",
			overlay: overlay(HAlignCenter, VAlignCenter),
			want:    Rect{X: 75, Y: 40, Width: 50, Height: 20},
		},
		{
			name:    "bottom outside with offset",
			overlay: overlay(HAlignLeft, VAlignBottom),
			cfg:     PlacementConfig{Vertical: PlacementOutside, OffsetX: 3, OffsetY: 4},
			want:    Rect{X: 3, Y: 104, Width: 50, Height: 20},
		},
		{
			name:    "top outside",
			overlay: overlay(HAlignLeft, VAlignTop),
			cfg:     PlacementConfig{Vertical: PlacementOutside},
			want:    Rect{X: 0, Y: -20, Width: 50, Height: 20},
		},
		{
			name:    "stretch ignores offset and fills host",
			overlay: overlay(HAlignStretch, VAlignStretch),
			cfg:     PlacementConfig{OffsetX: 7, OffsetY: 9, Horizontal: PlacementOutside},
			want:    Rect{X: 0, Y: 0, Width: 200, Height: 100},
		},
		{
			name:    "position override uses desired size on that axis",
			overlay: overlay(HAlignStretch, VAlignBottom),
			cfg:     PlacementConfig{PositionX: Float(12), OffsetX: 100},
			want:    Rect{X: 12, Y: 80, Width: 50, Height: 20},
		},
		{
			name:    "both overrides",
			overlay: overlay(HAlignRight, VAlignBottom),
			cfg:     PlacementConfig{PositionX: Float(-5), PositionY: Float(6)},
			want:    Rect{X: -5, Y: 6, Width: 50, Height: 20},
		},
		{
			name: "canvas children extend trailing inside",
			overlay: OverlayMetrics{
				Desired:    Vec2{0, 0},
				ChildSizes: []Vec2{{24, 24}, {24, 24}, {24, 24}},
				HAlign:     HAlignRight,
				VAlign:     VAlignCenter,
			},
			want: Rect{X: 128, Y: 14, Width: 0, Height: 0},
		},
		{
			name: "canvas children ignored on trailing outside",
			overlay: OverlayMetrics{
				Desired:    Vec2{10, 10},
				ChildSizes: []Vec2{{24, 24}},
				HAlign:     HAlignRight,
				VAlign:     VAlignTop,
			},
			cfg:  PlacementConfig{Horizontal: PlacementOutside},
			want: Rect{X: 200, Y: 0, Width: 10, Height: 10},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePlacement(host, tt.overlay, tt.cfg)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ComputePlacement mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputePlacementAxesIndependent(t *testing.T) {
	host := Vec2{200, 100}
	m := OverlayMetrics{Desired: Vec2{50, 20}, HAlign: HAlignRight, VAlign: VAlignTop}
	a := ComputePlacement(host, m, PlacementConfig{})
	m.VAlign = VAlignBottom
	b := ComputePlacement(host, m, PlacementConfig{Vertical: PlacementOutside})

	if a.X != b.X || a.Width != b.Width {
		t.Errorf("horizontal result changed with vertical config: %v vs %v", a, b)
	}
}

func TestMeasureOverlayIsHostIndependent(t *testing.T) {
	m := OverlayMetrics{Desired: Vec2{500, 400}, HAlign: HAlignStretch}
	if got := MeasureOverlay(m); got != (Vec2{500, 400}) {
		t.Errorf("MeasureOverlay = %v, want {500 400}", got)
	}
}

func TestMetricsOf(t *testing.T) {
	canvas := NewCanvas("c")
	canvas.HAlign = HAlignRight
	canvas.AddChild(NewRect("a", 10, 5, ColorWhite))
	canvas.AddChild(NewRect("b", 20, 15, ColorWhite))

	want := OverlayMetrics{
		Desired:    Vec2{0, 0},
		ChildSizes: []Vec2{{10, 5}, {20, 15}},
		HAlign:     HAlignRight,
	}
	if diff := cmp.Diff(want, MetricsOf(canvas)); diff != "" {
		t.Errorf("MetricsOf(canvas) mismatch (-want +got):\n%s", diff)
	}

	container := NewContainer("box")
	container.AddChild(NewRect("a", 10, 5, ColorWhite))
	got := MetricsOf(container)
	if got.ChildSizes != nil {
		t.Error("only canvases report child sizes")
	}
	if got.Desired != (Vec2{10, 5}) {
		t.Errorf("container desired = %v, want {10 5}", got.Desired)
	}
}

func TestPlacementConfigEqual(t *testing.T) {
	base := PlacementConfig{Horizontal: PlacementOutside, OffsetX: 4, PositionX: Float(10)}
	tests := []struct {
		name  string
		other PlacementConfig
		want  bool
	}{
		{"same override value, different pointer", PlacementConfig{Horizontal: PlacementOutside, OffsetX: 4, PositionX: Float(10)}, true},
		{"override value differs", PlacementConfig{Horizontal: PlacementOutside, OffsetX: 4, PositionX: Float(50)}, false},
		{"override removed", PlacementConfig{Horizontal: PlacementOutside, OffsetX: 4}, false},
		{"override added on y", PlacementConfig{Horizontal: PlacementOutside, OffsetX: 4, PositionX: Float(10), PositionY: Float(0)}, false},
		{"offset differs", PlacementConfig{Horizontal: PlacementOutside, OffsetX: 5, PositionX: Float(10)}, false},
		{"placement differs", PlacementConfig{OffsetX: 4, PositionX: Float(10)}, false},
	}
	for _, tt := range tests {
		if got := base.Equal(tt.other); got != tt.want {
			t.Errorf("%s: Equal = %v, want %v", tt.name, got, tt.want)
		}
		if got := tt.other.Equal(base); got != tt.want {
			t.Errorf("%s: reversed Equal = %v, want %v", tt.name, got, tt.want)
		}
	}
}
