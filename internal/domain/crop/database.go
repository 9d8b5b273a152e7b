// Package crop scores crop feasibility against environmental
// conditions and predicts cultivation risks.
package crop

// Requirements describe the growing envelope and economics of one
// crop. Rainfall is annual millimetres; prices are INR per kg; yield
// is kg per acre.
type Requirements struct {
	Name            string   `json:"name"`
	MinTemp         float64  `json:"min_temp"`
	MaxTemp         float64  `json:"max_temp"`
	MinRainfall     float64  `json:"min_rainfall"`
	MaxRainfall     float64  `json:"max_rainfall"`
	MinHumidity     float64  `json:"min_humidity"`
	MaxHumidity     float64  `json:"max_humidity"`
	SuitableSoils   []string `json:"suitable_soils"`
	GrowingSeason   string   `json:"growing_season"`
	WaterNeed       string   `json:"water_requirement"` // low, medium, high
	MarketPricePerKg float64 `json:"market_price_per_kg"`
	YieldPerAcre    float64  `json:"yield_per_acre"`
	GrowingDays     int      `json:"growing_days"`
}

// Database holds the 20 major crops the recommendation engine knows.
var Database = map[string]Requirements{
	"Rice": {
		Name: "Rice", MinTemp: 20, MaxTemp: 35,
		MinRainfall: 1000, MaxRainfall: 2500, MinHumidity: 60, MaxHumidity: 95,
		SuitableSoils: []string{"Alluvial", "Clay", "Black (Regur)"},
		GrowingSeason: "Kharif (June-Nov)", WaterNeed: "high",
		MarketPricePerKg: 25, YieldPerAcre: 2500, GrowingDays: 120,
	},
	"Wheat": {
		Name: "Wheat", MinTemp: 10, MaxTemp: 25,
		MinRainfall: 400, MaxRainfall: 1000, MinHumidity: 40, MaxHumidity: 70,
		SuitableSoils: []string{"Alluvial", "Loamy", "Clay"},
		GrowingSeason: "Rabi (Oct-Mar)", WaterNeed: "medium",
		MarketPricePerKg: 22, YieldPerAcre: 1800, GrowingDays: 140,
	},
	"Cotton": {
		Name: "Cotton", MinTemp: 21, MaxTemp: 35,
		MinRainfall: 500, MaxRainfall: 1200, MinHumidity: 50, MaxHumidity: 75,
		SuitableSoils: []string{"Black (Regur)", "Alluvial"},
		GrowingSeason: "Kharif (June-Dec)", WaterNeed: "medium",
		MarketPricePerKg: 65, YieldPerAcre: 600, GrowingDays: 180,
	},
	"Sugarcane": {
		Name: "Sugarcane", MinTemp: 20, MaxTemp: 40,
		MinRainfall: 1000, MaxRainfall: 2000, MinHumidity: 60, MaxHumidity: 90,
		SuitableSoils: []string{"Alluvial", "Loamy", "Black (Regur)"},
		GrowingSeason: "Year-round", WaterNeed: "high",
		MarketPricePerKg: 3, YieldPerAcre: 35000, GrowingDays: 365,
	},
	"Groundnut": {
		Name: "Groundnut", MinTemp: 20, MaxTemp: 35,
		MinRainfall: 500, MaxRainfall: 1200, MinHumidity: 40, MaxHumidity: 70,
		SuitableSoils: []string{"Red", "Sandy Loam", "Loamy"},
		GrowingSeason: "Kharif/Rabi", WaterNeed: "low",
		MarketPricePerKg: 55, YieldPerAcre: 1200, GrowingDays: 100,
	},
	"Soybean": {
		Name: "Soybean", MinTemp: 20, MaxTemp: 30,
		MinRainfall: 500, MaxRainfall: 1000, MinHumidity: 50, MaxHumidity: 80,
		SuitableSoils: []string{"Black (Regur)", "Loamy"},
		GrowingSeason: "Kharif (June-Oct)", WaterNeed: "medium",
		MarketPricePerKg: 42, YieldPerAcre: 800, GrowingDays: 100,
	},
	"Maize": {
		Name: "Maize", MinTemp: 18, MaxTemp: 32,
		MinRainfall: 500, MaxRainfall: 1200, MinHumidity: 50, MaxHumidity: 80,
		SuitableSoils: []string{"Alluvial", "Loamy", "Red"},
		GrowingSeason: "Kharif/Rabi", WaterNeed: "medium",
		MarketPricePerKg: 18, YieldPerAcre: 2000, GrowingDays: 90,
	},
	"Tomato": {
		Name: "Tomato", MinTemp: 15, MaxTemp: 30,
		MinRainfall: 400, MaxRainfall: 800, MinHumidity: 50, MaxHumidity: 75,
		SuitableSoils: []string{"Loamy", "Alluvial", "Red"},
		GrowingSeason: "Rabi (Oct-Mar)", WaterNeed: "medium",
		MarketPricePerKg: 30, YieldPerAcre: 15000, GrowingDays: 90,
	},
	"Onion": {
		Name: "Onion", MinTemp: 15, MaxTemp: 30,
		MinRainfall: 350, MaxRainfall: 800, MinHumidity: 40, MaxHumidity: 70,
		SuitableSoils: []string{"Loamy", "Alluvial"},
		GrowingSeason: "Rabi (Oct-Mar)", WaterNeed: "low",
		MarketPricePerKg: 25, YieldPerAcre: 12000, GrowingDays: 120,
	},
	"Potato": {
		Name: "Potato", MinTemp: 10, MaxTemp: 25,
		MinRainfall: 400, MaxRainfall: 800, MinHumidity: 50, MaxHumidity: 80,
		SuitableSoils: []string{"Loamy", "Sandy Loam", "Alluvial"},
		GrowingSeason: "Rabi (Oct-Feb)", WaterNeed: "medium",
		MarketPricePerKg: 20, YieldPerAcre: 10000, GrowingDays: 100,
	},
	"Arecanut": {
		Name: "Arecanut", MinTemp: 18, MaxTemp: 35,
		MinRainfall: 2000, MaxRainfall: 4000, MinHumidity: 70, MaxHumidity: 95,
		SuitableSoils: []string{"Laterite", "Alluvial", "Red"},
		GrowingSeason: "Perennial", WaterNeed: "high",
		MarketPricePerKg: 400, YieldPerAcre: 1500, GrowingDays: 365,
	},
	"Coconut": {
		Name: "Coconut", MinTemp: 20, MaxTemp: 35,
		MinRainfall: 1500, MaxRainfall: 3000, MinHumidity: 60, MaxHumidity: 90,
		SuitableSoils: []string{"Laterite", "Alluvial", "Sandy Loam"},
		GrowingSeason: "Perennial", WaterNeed: "medium",
		MarketPricePerKg: 15, YieldPerAcre: 8000, GrowingDays: 365,
	},
	"Coffee": {
		Name: "Coffee", MinTemp: 15, MaxTemp: 28,
		MinRainfall: 1500, MaxRainfall: 2500, MinHumidity: 70, MaxHumidity: 90,
		SuitableSoils: []string{"Laterite", "Red", "Loamy"},
		GrowingSeason: "Perennial", WaterNeed: "medium",
		MarketPricePerKg: 350, YieldPerAcre: 500, GrowingDays: 365,
	},
	"Tea": {
		Name: "Tea", MinTemp: 13, MaxTemp: 28,
		MinRainfall: 1500, MaxRainfall: 3000, MinHumidity: 70, MaxHumidity: 95,
		SuitableSoils: []string{"Red", "Loamy", "Laterite"},
		GrowingSeason: "Perennial", WaterNeed: "high",
		MarketPricePerKg: 250, YieldPerAcre: 800, GrowingDays: 365,
	},
	"Banana": {
		Name: "Banana", MinTemp: 20, MaxTemp: 35,
		MinRainfall: 1000, MaxRainfall: 2500, MinHumidity: 60, MaxHumidity: 90,
		SuitableSoils: []string{"Alluvial", "Loamy", "Red"},
		GrowingSeason: "Year-round", WaterNeed: "high",
		MarketPricePerKg: 30, YieldPerAcre: 25000, GrowingDays: 300,
	},
	"Mango": {
		Name: "Mango", MinTemp: 20, MaxTemp: 40,
		MinRainfall: 800, MaxRainfall: 2500, MinHumidity: 40, MaxHumidity: 80,
		SuitableSoils: []string{"Alluvial", "Loamy", "Red"},
		GrowingSeason: "Perennial (harvest Mar-Jun)", WaterNeed: "low",
		MarketPricePerKg: 60, YieldPerAcre: 5000, GrowingDays: 365,
	},
	"Chilli": {
		Name: "Chilli", MinTemp: 18, MaxTemp: 35,
		MinRainfall: 600, MaxRainfall: 1200, MinHumidity: 50, MaxHumidity: 70,
		SuitableSoils: []string{"Loamy", "Alluvial", "Red"},
		GrowingSeason: "Kharif/Rabi", WaterNeed: "medium",
		MarketPricePerKg: 120, YieldPerAcre: 3000, GrowingDays: 120,
	},
	"Turmeric": {
		Name: "Turmeric", MinTemp: 20, MaxTemp: 35,
		MinRainfall: 1500, MaxRainfall: 2500, MinHumidity: 70, MaxHumidity: 90,
		SuitableSoils: []string{"Alluvial", "Loamy", "Red"},
		GrowingSeason: "Kharif (Jun-Feb)", WaterNeed: "medium",
		MarketPricePerKg: 80, YieldPerAcre: 6000, GrowingDays: 240,
	},
	"Ginger": {
		Name: "Ginger", MinTemp: 20, MaxTemp: 32,
		MinRainfall: 1500, MaxRainfall: 3000, MinHumidity: 70, MaxHumidity: 90,
		SuitableSoils: []string{"Loamy", "Alluvial", "Red"},
		GrowingSeason: "Kharif (Apr-Dec)", WaterNeed: "high",
		MarketPricePerKg: 90, YieldPerAcre: 5000, GrowingDays: 240,
	},
	"Black Pepper": {
		Name: "Black Pepper", MinTemp: 20, MaxTemp: 35,
		MinRainfall: 2000, MaxRainfall: 4000, MinHumidity: 75, MaxHumidity: 95,
		SuitableSoils: []string{"Laterite", "Red", "Loamy"},
		GrowingSeason: "Perennial", WaterNeed: "high",
		MarketPricePerKg: 500, YieldPerAcre: 400, GrowingDays: 365,
	},
}
