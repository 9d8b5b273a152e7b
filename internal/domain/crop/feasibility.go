package crop

import (
	"fmt"
	"math"
	"sort"
)

// Feasibility is one scored recommendation.
type Feasibility struct {
	CropName         string            `json:"crop_name"`
	FeasibilityScore float64           `json:"feasibility_score"`
	ROIEstimate      float64           `json:"roi_estimate"`
	GrowingSeason    string            `json:"growing_season"`
	Requirements     map[string]string `json:"requirements"`
	Risks            []string          `json:"risks"`
}

// Conditions are the environmental inputs to the scoring.
type Conditions struct {
	AvgTemp        float64
	AvgHumidity    float64
	AnnualRainfall float64
	SoilType       string
}

// Engine scores crops against a location's conditions.
type Engine struct {
	crops map[string]Requirements
}

// NewEngine builds an engine over the built-in crop database.
func NewEngine() *Engine {
	return &Engine{crops: Database}
}

// Soils that score partial credit when the exact soil is not listed as
// suitable for a crop.
var similarSoils = map[string][]string{
	"Loamy":    {"Alluvial", "Sandy Loam"},
	"Clay":     {"Black (Regur)"},
	"Sandy":    {"Sandy Loam", "Desert"},
	"Mountain": {"Laterite", "Red"},
}

// Score calculates the 0-100 feasibility of one crop. Weighting:
// temperature 30, humidity 20, rainfall 25, soil 25.
func (e *Engine) Score(crop Requirements, c Conditions) float64 {
	var score float64

	// Temperature (30): full marks inside the range, minus 3 per
	// degree outside it.
	switch {
	case c.AvgTemp >= crop.MinTemp && c.AvgTemp <= crop.MaxTemp:
		score += 30
	case c.AvgTemp < crop.MinTemp:
		score += math.Max(0, 30-(crop.MinTemp-c.AvgTemp)*3)
	default:
		score += math.Max(0, 30-(c.AvgTemp-crop.MaxTemp)*3)
	}

	// Humidity (20): minus 0.5 per point outside the range.
	switch {
	case c.AvgHumidity >= crop.MinHumidity && c.AvgHumidity <= crop.MaxHumidity:
		score += 20
	case c.AvgHumidity < crop.MinHumidity:
		score += math.Max(0, 20-(crop.MinHumidity-c.AvgHumidity)*0.5)
	default:
		score += math.Max(0, 20-(c.AvgHumidity-crop.MaxHumidity)*0.5)
	}

	// Rainfall (25): proportional below the minimum, minus 1 per
	// 100mm of excess above the maximum.
	switch {
	case c.AnnualRainfall >= crop.MinRainfall && c.AnnualRainfall <= crop.MaxRainfall:
		score += 25
	case c.AnnualRainfall < crop.MinRainfall:
		score += 25 * (c.AnnualRainfall / crop.MinRainfall)
	default:
		score += math.Max(0, 25-(c.AnnualRainfall-crop.MaxRainfall)/100)
	}

	// Soil (25): exact match full marks, similar soil 18, anything
	// else 10.
	score += soilScore(crop, c.SoilType)

	return math.Round(score*10) / 10
}

func soilScore(crop Requirements, soilType string) float64 {
	for _, s := range crop.SuitableSoils {
		if s == soilType {
			return 25
		}
	}
	for _, similar := range similarSoils[soilType] {
		for _, s := range crop.SuitableSoils {
			if s == similar {
				return 18
			}
		}
	}
	return 10
}

// Recommend scores every crop and returns the top N by feasibility.
func (e *Engine) Recommend(c Conditions, topN int) []Feasibility {
	if topN <= 0 {
		topN = 5
	}

	recommendations := make([]Feasibility, 0, len(e.crops))
	for name, crop := range e.crops {
		recommendations = append(recommendations, Feasibility{
			CropName:         name,
			FeasibilityScore: e.Score(crop, c),
			ROIEstimate:      roiEstimate(crop),
			GrowingSeason:    crop.GrowingSeason,
			Requirements: map[string]string{
				"temp_range":   fmt.Sprintf("%g-%g°C", crop.MinTemp, crop.MaxTemp),
				"rainfall":     fmt.Sprintf("%g-%gmm", crop.MinRainfall, crop.MaxRainfall),
				"water_need":   crop.WaterNeed,
				"growing_days": fmt.Sprintf("%d", crop.GrowingDays),
			},
			Risks: identifyRisks(crop, c),
		})
	}

	sort.Slice(recommendations, func(i, j int) bool {
		if recommendations[i].FeasibilityScore != recommendations[j].FeasibilityScore {
			return recommendations[i].FeasibilityScore > recommendations[j].FeasibilityScore
		}
		return recommendations[i].CropName < recommendations[j].CropName
	})

	if len(recommendations) > topN {
		recommendations = recommendations[:topN]
	}
	return recommendations
}

// roiEstimate computes return on investment as a percentage. Cost is
// estimated from revenue: 50% for thirsty crops, 40% otherwise.
func roiEstimate(crop Requirements) float64 {
	revenue := crop.YieldPerAcre * crop.MarketPricePerKg
	costRatio := 0.4
	if crop.WaterNeed == "high" {
		costRatio = 0.5
	}
	cost := revenue * costRatio
	if cost <= 0 {
		return 0
	}
	return math.Round((revenue-cost)/cost*100*10) / 10
}

func identifyRisks(crop Requirements, c Conditions) []string {
	var risks []string

	if c.AvgTemp > crop.MaxTemp {
		risks = append(risks, "Heat stress risk")
	}
	if c.AvgTemp < crop.MinTemp {
		risks = append(risks, "Cold damage risk")
	}

	if c.AnnualRainfall < crop.MinRainfall {
		risks = append(risks, "Drought stress - irrigation required")
	}
	if c.AnnualRainfall > crop.MaxRainfall*1.2 {
		risks = append(risks, "Waterlogging risk")
	}

	if c.AvgHumidity > 85 {
		switch crop.Name {
		case "Arecanut", "Coconut", "Black Pepper":
			risks = append(risks, "Koleroga (Fruit Rot) disease risk")
		case "Tomato", "Potato", "Chilli":
			risks = append(risks, "Fungal disease risk (Late Blight)")
		}
	}

	return risks
}
