package soil

import (
	"strings"
	"testing"
)

func TestStateLookupWins(t *testing.T) {
	a := Estimate("Kerala", "Coastal Plain")

	if a.Type != "Laterite" {
		t.Errorf("Expected Laterite for Kerala, got %s", a.Type)
	}
	if a.NPK.Nitrogen != 160 || a.NPK.Phosphorus != 8 || a.NPK.Potassium != 120 {
		t.Errorf("Unexpected NPK for Kerala: %+v", a.NPK)
	}
	if a.Profile.Texture != "Gravelly" {
		t.Errorf("Expected the laterite profile, got texture %s", a.Profile.Texture)
	}
}

func TestTerrainFallback(t *testing.T) {
	cases := []struct {
		terrain string
		want    string
	}{
		{"Coastal Plain", "Alluvial"},
		{"Plateau", "Black (Regur)"},
		{"Mountain Foothills", "Mountain"},
		{"Low-lying Plain", "Loamy"},
	}
	for _, c := range cases {
		if got := Estimate("Atlantis", c.terrain).Type; got != c.want {
			t.Errorf("Terrain %q: expected %s, got %s", c.terrain, c.want, got)
		}
	}
}

func TestLateriteRecommendationsIncludeLime(t *testing.T) {
	a := Estimate("Kerala", "")

	if !strings.Contains(a.Recommendation, "lime") {
		t.Errorf("Expected lime correction for laterite, got %q", a.Recommendation)
	}
	// Kerala's laterite is nutrient-poor across the board.
	for _, want := range []string{"Urea", "DAP", "potash"} {
		if !strings.Contains(a.Recommendation, want) {
			t.Errorf("Expected %s in recommendation, got %q", want, a.Recommendation)
		}
	}
}

func TestWellBalancedSoilNeedsNoFertilizer(t *testing.T) {
	a := Estimate("Punjab", "")

	// Punjab alluvial: N 280, P 22, K 210 are all above the
	// supplement thresholds and alluvial has no soil-specific advice.
	if a.Recommendation != "Soil is well-balanced" {
		t.Errorf("Expected well-balanced verdict, got %q", a.Recommendation)
	}
}
