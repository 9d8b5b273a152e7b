// Package research composes the deep farm analysis: location, soil,
// live weather, crop recommendations, risks and economics in one scan.
package research

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/agrinexus/farm-twin/internal/domain/alert"
	"github.com/agrinexus/farm-twin/internal/domain/crop"
	"github.com/agrinexus/farm-twin/internal/domain/soil"
	"github.com/agrinexus/farm-twin/internal/engine"
	"github.com/agrinexus/farm-twin/internal/platform/logger"
	"github.com/agrinexus/farm-twin/internal/services/geo"
)

// FullScanRequest asks for a complete analysis of one plot.
type FullScanRequest struct {
	FarmID   string  `json:"farm_id"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	FarmSize float64 `json:"farm_size,omitempty"` // acres
	Budget   float64 `json:"budget,omitempty"`    // INR
	SoilType string  `json:"soil_type,omitempty"` // override the regional estimate
}

// WeatherAnalysis is the live-conditions section of a scan.
type WeatherAnalysis struct {
	Current                 engine.State  `json:"current"`
	EstimatedAnnualRainfall float64       `json:"estimated_annual_rainfall"`
	ClimateZone             string        `json:"climate_zone"`
	CurrentAlerts           []alert.Alert `json:"current_alerts"`
}

// CropProjection is the economics of one recommended crop at the
// requested farm size.
type CropProjection struct {
	Crop               string  `json:"crop"`
	InvestmentRequired float64 `json:"investment_required"`
	ExpectedRevenue    float64 `json:"expected_revenue"`
	ExpectedProfit     float64 `json:"expected_profit"`
	ROIPercentage      float64 `json:"roi_percentage"`
	WithinBudget       bool    `json:"within_budget"`
}

// EconomicAnalysis projects the top recommendations onto the farm.
type EconomicAnalysis struct {
	FarmSizeAcres float64          `json:"farm_size_acres"`
	BudgetINR     float64          `json:"budget_inr"`
	Projections   []CropProjection `json:"projections"`
}

// FullScanResponse is the complete analysis for one plot.
type FullScanResponse struct {
	Location            geo.LookupResult      `json:"location"`
	SoilAnalysis        soil.Analysis         `json:"soil_analysis"`
	WeatherAnalysis     WeatherAnalysis       `json:"weather_analysis"`
	CropRecommendations []crop.Feasibility    `json:"crop_recommendations"`
	Risks               []crop.RiskAssessment `json:"risks"`
	EconomicAnalysis    *EconomicAnalysis     `json:"economic_analysis,omitempty"`
	GeneratedAt         time.Time             `json:"generated_at"`
}

// Service runs full scans against the live simulation.
type Service struct {
	geo      *geo.Service
	crops    *crop.Engine
	registry *engine.Registry
	logger   *logger.Logger
}

// NewService wires the scan dependencies.
func NewService(g *geo.Service, crops *crop.Engine, registry *engine.Registry, log *logger.Logger) *Service {
	return &Service{geo: g, crops: crops, registry: registry, logger: log}
}

// FullScan runs the complete analysis pipeline.
func (s *Service) FullScan(ctx context.Context, req FullScanRequest) (*FullScanResponse, error) {
	s.logger.Info(fmt.Sprintf("Starting full scan for location: %.4f, %.4f", req.Lat, req.Lon))

	location := s.geo.Lookup(ctx, req.Lat, req.Lon)
	soilAnalysis := soil.Estimate(location.State, location.TerrainType)

	soilType := soilAnalysis.Type
	if req.SoilType != "" {
		soilType = req.SoilType
	}

	farmID := req.FarmID
	if farmID == "" {
		farmID = "default"
	}
	eng, err := s.registry.Get(farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain simulation for farm %s: %w", farmID, err)
	}
	current := eng.Snapshot()
	activeAlerts := eng.Alerts()

	rainfall := EstimateAnnualRainfall(location.TerrainType)

	conditions := crop.Conditions{
		AvgTemp:        current.Temperature,
		AvgHumidity:    current.Humidity,
		AnnualRainfall: rainfall,
		SoilType:       soilType,
	}
	recommendations := s.crops.Recommend(conditions, 5)

	var risks []crop.RiskAssessment
	if len(recommendations) > 0 {
		risks = crop.AssessRisks(recommendations[0].CropName, conditions)
	}

	var economics *EconomicAnalysis
	if req.FarmSize > 0 && req.Budget > 0 {
		economics = calculateEconomics(recommendations, req.FarmSize, req.Budget)
	}

	s.logger.Info(fmt.Sprintf("Full scan complete. Found %d crop recommendations.", len(recommendations)))

	return &FullScanResponse{
		Location:     location,
		SoilAnalysis: soilAnalysis,
		WeatherAnalysis: WeatherAnalysis{
			Current:                 current,
			EstimatedAnnualRainfall: rainfall,
			ClimateZone:             ClassifyClimate(current.Temperature, current.Humidity),
			CurrentAlerts:           activeAlerts,
		},
		CropRecommendations: recommendations,
		Risks:               risks,
		EconomicAnalysis:    economics,
		GeneratedAt:         time.Now(),
	}, nil
}

// EstimateAnnualRainfall derives an annual rainfall figure from the
// terrain class. A historical weather API would replace this.
func EstimateAnnualRainfall(terrain string) float64 {
	switch {
	case strings.Contains(terrain, "Coastal"):
		return 2500
	case strings.Contains(terrain, "Desert"):
		return 400
	default:
		return 1200
	}
}

// ClassifyClimate maps temperature and humidity to a climate zone.
func ClassifyClimate(temp, humidity float64) string {
	switch {
	case temp > 30 && humidity > 70:
		return "Tropical Humid"
	case temp > 30 && humidity < 50:
		return "Tropical Dry"
	case temp > 25:
		return "Subtropical"
	case temp > 15:
		return "Temperate"
	default:
		return "Cool/Highland"
	}
}

// calculateEconomics projects the top three recommendations onto the
// farm size, assuming costs run at 45% of revenue.
func calculateEconomics(recs []crop.Feasibility, farmSize, budget float64) *EconomicAnalysis {
	analysis := &EconomicAnalysis{FarmSizeAcres: farmSize, BudgetINR: budget}

	for i, rec := range recs {
		if i >= 3 {
			break
		}
		c, ok := crop.Database[rec.CropName]
		if !ok {
			continue
		}
		totalYield := c.YieldPerAcre * farmSize
		revenue := totalYield * c.MarketPricePerKg
		cost := revenue * 0.45
		profit := revenue - cost

		roi := 0.0
		if cost > 0 {
			roi = math.Round(profit/cost*100*10) / 10
		}

		analysis.Projections = append(analysis.Projections, CropProjection{
			Crop:               rec.CropName,
			InvestmentRequired: cost,
			ExpectedRevenue:    revenue,
			ExpectedProfit:     profit,
			ROIPercentage:      roi,
			WithinBudget:       cost <= budget,
		})
	}

	return analysis
}

// ROIAnalysis is the detailed projection for one crop at one farm
// size.
type ROIAnalysis struct {
	Crop             string  `json:"crop"`
	FarmSizeAcres    float64 `json:"farm_size_acres"`
	YieldPerAcreKg   float64 `json:"yield_per_acre_kg"`
	TotalYieldKg     float64 `json:"total_yield_kg"`
	MarketPricePerKg float64 `json:"market_price_per_kg"`
	GrossRevenue     float64 `json:"gross_revenue"`
	EstimatedCost    float64 `json:"estimated_cost"`
	NetProfit        float64 `json:"net_profit"`
	ROIPercentage    float64 `json:"roi_percentage"`
	GrowingDays      int     `json:"growing_days"`
	InvestmentStatus string  `json:"investment_status"`
	BreakevenPrice   float64 `json:"breakeven_price"`
}

// Irrigation intensity drives the per-acre cost estimate.
var costPerAcre = map[string]float64{
	"low":    15000,
	"medium": 25000,
	"high":   40000,
}

// CalculateROI builds the detailed projection for one named crop.
// The bool reports whether the crop exists.
func CalculateROI(cropName string, acres, budget float64) (*ROIAnalysis, bool) {
	c, ok := crop.Database[cropName]
	if !ok {
		return nil, false
	}

	totalYield := c.YieldPerAcre * acres
	grossRevenue := totalYield * c.MarketPricePerKg

	perAcre, ok := costPerAcre[c.WaterNeed]
	if !ok {
		perAcre = 25000
	}
	totalCost := perAcre * acres
	netProfit := grossRevenue - totalCost

	roi := 0.0
	if totalCost > 0 {
		roi = math.Round(netProfit/totalCost*100*10) / 10
	}
	breakeven := 0.0
	if totalYield > 0 {
		breakeven = math.Round(totalCost/totalYield*100) / 100
	}

	status := "Viable"
	if budget < totalCost {
		status = "Insufficient Budget"
	}

	return &ROIAnalysis{
		Crop:             cropName,
		FarmSizeAcres:    acres,
		YieldPerAcreKg:   c.YieldPerAcre,
		TotalYieldKg:     totalYield,
		MarketPricePerKg: c.MarketPricePerKg,
		GrossRevenue:     grossRevenue,
		EstimatedCost:    totalCost,
		NetProfit:        netProfit,
		ROIPercentage:    roi,
		GrowingDays:      c.GrowingDays,
		InvestmentStatus: status,
		BreakevenPrice:   breakeven,
	}, true
}
