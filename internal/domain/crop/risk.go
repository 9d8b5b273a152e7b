package crop

// RiskAssessment describes one predicted challenge with its mitigation.
type RiskAssessment struct {
	RiskType    string  `json:"risk_type"`
	Probability float64 `json:"probability"`
	Description string  `json:"description"`
	Mitigation  string  `json:"mitigation"`
}

// riskMitigations maps each known risk to its recommended response.
var riskMitigations = map[string]string{
	"Heat stress risk":                     "Install shade nets; increase irrigation frequency; apply mulch",
	"Cold damage risk":                     "Use frost covers; apply potassium fertilizer to strengthen plants",
	"Drought stress - irrigation required": "Set up drip irrigation; apply organic mulch; consider drought-resistant varieties",
	"Waterlogging risk":                    "Dig drainage trenches; create raised beds; avoid planting in low-lying areas",
	"Koleroga (Fruit Rot) disease risk":    "Apply Bordeaux mixture before monsoon; ensure proper tree spacing; remove infected parts",
	"Fungal disease risk (Late Blight)":    "Apply copper-based fungicides; ensure plant spacing; avoid overhead irrigation",
	"Pest infestation risk":                "Implement integrated pest management; use pheromone traps; encourage natural predators",
}

// MitigationFor returns the recommended response to a named risk.
func MitigationFor(risk string) string {
	return riskMitigations[risk]
}

// AssessRisks predicts the challenges for growing one crop under the
// given conditions.
func AssessRisks(cropName string, c Conditions) []RiskAssessment {
	var risks []RiskAssessment

	if c.AvgHumidity > 85 {
		switch cropName {
		case "Arecanut", "Coconut", "Black Pepper":
			risks = append(risks, RiskAssessment{
				RiskType:    "Disease",
				Probability: 75.0,
				Description: "High risk of Koleroga (Fruit Rot) due to humidity > 85%",
				Mitigation:  riskMitigations["Koleroga (Fruit Rot) disease risk"],
			})
		}
	}

	if (c.SoilType == "Clay" || c.SoilType == "Black (Regur)") && c.AnnualRainfall > 1500 {
		risks = append(risks, RiskAssessment{
			RiskType:    "Waterlogging",
			Probability: 60.0,
			Description: "Clay soil combined with heavy rainfall may cause waterlogging",
			Mitigation:  riskMitigations["Waterlogging risk"],
		})
	}

	if c.AvgTemp > 38 {
		risks = append(risks, RiskAssessment{
			RiskType:    "Heat Stress",
			Probability: 80.0,
			Description: "Temperature exceeds 38°C - crop stress likely",
			Mitigation:  riskMitigations["Heat stress risk"],
		})
	}

	if c.AnnualRainfall < 600 {
		risks = append(risks, RiskAssessment{
			RiskType:    "Drought",
			Probability: 70.0,
			Description: "Annual rainfall below 600mm - irrigation critical",
			Mitigation:  riskMitigations["Drought stress - irrigation required"],
		})
	}

	return risks
}
