package cloud

import "testing"

func TestWeightAwareInitialSize(t *testing.T) {
	p := WeightAware{Ceiling: 100}
	tests := []struct {
		weight float64
		want   int
	}{
		{1, 100},
		{0, 1},
		{-3, 1},
		{2, 100},
		{0.5, 62},
	}
	for _, tt := range tests {
		if got := p.InitialSize(0, tt.weight); got != tt.want {
			t.Errorf("InitialSize(%v) = %d, want %d", tt.weight, got, tt.want)
		}
	}
}

func TestWeightAwareIsConcave(t *testing.T) {
	p := WeightAware{Ceiling: 1000}
	prev := 0
	for i := 0; i <= 10; i++ {
		w := float64(i) / 10
		got := p.InitialSize(0, w)
		if got < prev {
			t.Fatalf("size fell from %d to %d at weight %v", prev, got, w)
		}
		if w > 0 && w < 1 && float64(got) < w*1000 {
			t.Errorf("size %d at weight %v is below the linear scale", got, w)
		}
		prev = got
	}
}

func TestNewSizingPolicy(t *testing.T) {
	tests := []struct {
		mode    SizingMode
		ceiling int
		cap     bool
		wantErr bool
	}{
		{"", 10, true, false},
		{SizingRankOnly, 10, true, false},
		{SizingWeightAware, 10, false, false},
		{"loud", 10, false, true},
		{SizingRankOnly, 0, false, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			p, err := NewSizingPolicy(tt.mode, tt.ceiling)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && p.CapAtPrevious() != tt.cap {
				t.Errorf("CapAtPrevious() = %v, want %v", p.CapAtPrevious(), tt.cap)
			}
		})
	}
}

func TestParseOrientation(t *testing.T) {
	for in, want := range map[string]Orientation{"h": Horizontal, "Vertical": Vertical, "90": Vertical} {
		got, err := ParseOrientation(in)
		if err != nil || got != want {
			t.Errorf("ParseOrientation(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseOrientation("diagonal"); err == nil {
		t.Error("expected error for unknown orientation")
	}
}
