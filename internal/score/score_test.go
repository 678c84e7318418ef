package score

import "testing"

func TestCompute(t *testing.T) {
	tests := []struct {
		material string
		category string
		want     int
	}{
		{"Polyester", "Tops", 60},
		{"nylon blend", "Jackets", 60},
		{"Synthetic fleece", "Outdoor", 60},
		{"Cotton", "Tops", 85},
		{"100% cotton", "Shirts", 85},
		{"Organic Cotton", "Tops", 95},
		{"Linen", "Summer", 95},
		{"Merino Wool", "Sweaters", 95},
		{"Recycled polyester? no, recycled", "Tops", 95},
		{"Denim", "Casual", 75},
		{"Leather", "Shoes", 100},
		{"", "", 100},
		{"N/A", "N/A", 100},
		{"Cotton", "Fast Fashion", 75},
		{"Polyester", "cheap basics", 50},
		{"", "Fast Fashion", 90},
		{"POLYESTER", "FAST", 50},
	}

	for _, tt := range tests {
		got := Compute(tt.material, tt.category)
		if got != tt.want {
			t.Errorf("Compute(%q, %q) = %d, want %d", tt.material, tt.category, got, tt.want)
		}
	}
}

func TestComputeAlwaysInRange(t *testing.T) {
	garbage := []string{"", "  ", "\x00\xff", "fastfastfastcheap", "polyester denim organic", "ﬀ unicode ☃"}
	for _, mat := range garbage {
		for _, cat := range garbage {
			got := Compute(mat, cat)
			if got < 0 || got > 100 {
				t.Errorf("Compute(%q, %q) = %d, out of range", mat, cat, got)
			}
		}
	}
}

func TestComputeTierOrder(t *testing.T) {
	// Synthetic wins over everything else mentioned alongside it.
	if got := Compute("recycled synthetic blend", ""); got != 60 {
		t.Errorf("expected synthetic tier (60), got %d", got)
	}
	// The cotton tier's organic guard pushes organic cotton into the 95 tier.
	if got := Compute("organic cotton", ""); got != 95 {
		t.Errorf("expected organic tier (95), got %d", got)
	}
}

func TestDecay(t *testing.T) {
	if got := Decay(75, DefaultWearDecay); got != 73 {
		t.Errorf("Decay(75, 2) = %d, want 73", got)
	}
	if got := Decay(1, 5); got != 0 {
		t.Errorf("Decay(1, 5) = %d, want 0", got)
	}
	if got := Decay(0, 5); got != 0 {
		t.Errorf("Decay(0, 5) = %d, want 0 (score stays at 0)", got)
	}
}

func TestRepeatedDecayReachesZeroAndStays(t *testing.T) {
	s := Compute("Denim", "Casual") // 75
	for i := 0; i < 50; i++ {
		s = Decay(s, 5)
	}
	if s != 0 {
		t.Errorf("expected score driven to 0, got %d", s)
	}
}
