// Package soil estimates soil taxonomy and nutrient profiles from
// regional data.
package soil

import "strings"

// NPK is the macro-nutrient content of a soil in kg per hectare.
type NPK struct {
	Nitrogen   int `json:"nitrogen_kg_ha"`
	Phosphorus int `json:"phosphorus_kg_ha"`
	Potassium  int `json:"potassium_kg_ha"`
}

// Profile describes the physical characteristics of a soil type.
type Profile struct {
	Texture        string   `json:"texture"`
	Drainage       string   `json:"drainage"`
	PHMin          float64  `json:"ph_min"`
	PHMax          float64  `json:"ph_max"`
	WaterRetention string   `json:"water_retention"`
	Fertility      string   `json:"fertility"`
	SuitableCrops  []string `json:"suitable_crops"`
}

// Analysis is the complete soil estimate for a location.
type Analysis struct {
	Type           string  `json:"type"`
	NPK            NPK     `json:"npk"`
	Profile        Profile `json:"profile"`
	Recommendation string  `json:"recommendation"`
}

type regionalSoil struct {
	primary string
	npk     NPK
}

// regionalSoilMap maps Indian states to their dominant soil.
var regionalSoilMap = map[string]regionalSoil{
	"Punjab":         {"Alluvial", NPK{280, 22, 210}},
	"Haryana":        {"Alluvial", NPK{260, 18, 200}},
	"Karnataka":      {"Red", NPK{180, 12, 150}},
	"Maharashtra":    {"Black (Regur)", NPK{220, 25, 280}},
	"Kerala":         {"Laterite", NPK{160, 8, 120}},
	"Tamil Nadu":     {"Red", NPK{170, 10, 140}},
	"Andhra Pradesh": {"Black (Regur)", NPK{200, 20, 240}},
	"Gujarat":        {"Black (Regur)", NPK{210, 22, 260}},
	"Rajasthan":      {"Desert", NPK{120, 6, 80}},
	"West Bengal":    {"Alluvial", NPK{290, 24, 220}},
	"Uttar Pradesh":  {"Alluvial", NPK{270, 20, 200}},
	"Madhya Pradesh": {"Black (Regur)", NPK{190, 18, 230}},
}

// profiles holds the physical characteristics per soil type.
var profiles = map[string]Profile{
	"Alluvial": {
		Texture: "Sandy Loam to Silty Clay", Drainage: "Good to Moderate",
		PHMin: 6.5, PHMax: 8.0, WaterRetention: "Moderate", Fertility: "High",
		SuitableCrops: []string{"Rice", "Wheat", "Sugarcane", "Vegetables"},
	},
	"Black (Regur)": {
		Texture: "Clay", Drainage: "Poor",
		PHMin: 7.5, PHMax: 8.5, WaterRetention: "High", Fertility: "High",
		SuitableCrops: []string{"Cotton", "Soybean", "Wheat", "Pulses"},
	},
	"Red": {
		Texture: "Sandy to Loamy", Drainage: "Good",
		PHMin: 6.0, PHMax: 7.0, WaterRetention: "Low", Fertility: "Low to Medium",
		SuitableCrops: []string{"Groundnut", "Millets", "Tobacco", "Vegetables"},
	},
	"Laterite": {
		Texture: "Gravelly", Drainage: "Excessive",
		PHMin: 5.0, PHMax: 6.0, WaterRetention: "Very Low", Fertility: "Low",
		SuitableCrops: []string{"Cashew", "Coconut", "Arecanut", "Rubber"},
	},
	"Desert": {
		Texture: "Sandy", Drainage: "Excessive",
		PHMin: 8.0, PHMax: 8.5, WaterRetention: "Very Low", Fertility: "Very Low",
		SuitableCrops: []string{"Millets", "Guar", "Dates"},
	},
}

// Estimate produces a soil analysis from the state (when known) or the
// terrain classification as fallback.
func Estimate(state, terrain string) Analysis {
	var primary string
	var npk NPK

	if info, ok := regionalSoilMap[state]; ok {
		primary = info.primary
		npk = info.npk
	} else {
		switch {
		case strings.Contains(terrain, "Coastal"):
			primary = "Alluvial"
			npk = NPK{250, 18, 180}
		case strings.Contains(terrain, "Plateau"):
			primary = "Black (Regur)"
			npk = NPK{200, 20, 240}
		case strings.Contains(terrain, "Mountain"):
			primary = "Mountain"
			npk = NPK{150, 10, 130}
		default:
			primary = "Loamy"
			npk = NPK{200, 15, 170}
		}
	}

	return Analysis{
		Type:           primary,
		NPK:            npk,
		Profile:        profiles[primary],
		Recommendation: recommendation(primary, npk),
	}
}

// recommendation builds the fertilizer and management advice for a
// soil estimate.
func recommendation(soilType string, npk NPK) string {
	var recs []string

	if npk.Nitrogen < 200 {
		recs = append(recs, "Apply nitrogen-rich fertilizers (Urea)")
	}
	if npk.Phosphorus < 15 {
		recs = append(recs, "Add phosphorus (DAP or SSP)")
	}
	if npk.Potassium < 150 {
		recs = append(recs, "Supplement with potash (MOP)")
	}

	switch soilType {
	case "Laterite":
		recs = append(recs, "Add lime to correct acidity", "Apply organic matter to improve water retention")
	case "Black (Regur)":
		recs = append(recs, "Ensure proper drainage for monsoon", "Avoid over-irrigation")
	case "Desert":
		recs = append(recs, "Focus on drip irrigation", "Add organic matter extensively")
	}

	if len(recs) == 0 {
		return "Soil is well-balanced"
	}
	return strings.Join(recs, "; ")
}
