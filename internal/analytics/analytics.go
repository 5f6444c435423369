package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pantrywatch/pantrywatch/internal/inventory"
	"github.com/pantrywatch/pantrywatch/internal/logger"
)

// Approximate cost per item unit by category.
var foodCosts = map[string]float64{
	"dairy":      150,
	"fruits":     60,
	"vegetables": 40,
	"grains":     80,
	"proteins":   200,
	"beverages":  50,
	"snacks":     100,
	"other":      100,
}

// Approximate lifecycle CO2 emissions (kg CO2e per item unit) by category.
var co2Emissions = map[string]float64{
	"dairy":      2.8,
	"fruits":     0.6,
	"vegetables": 0.3,
	"grains":     0.8,
	"proteins":   4.5,
	"beverages":  0.5,
	"snacks":     1.2,
	"other":      1.0,
}

const (
	defaultCost = 100
	defaultCO2  = 1.0

	// Conversion factors used for sustainability equivalents.
	co2PerCarMile     = 0.41 // kg CO2 per mile for an average car
	co2PerTreePerYear = 20   // kg CO2 offset by one tree per year
	litersPerShared   = 50   // rough water footprint avoided per shared item
)

// WasteStats summarizes waste and consumption over a period.
type WasteStats struct {
	PeriodDays       int     `json:"period_days"`
	ItemsWasted      int     `json:"items_wasted"`
	ItemsConsumed    int     `json:"items_consumed"`
	ItemsShared      int     `json:"items_shared"`
	TotalItems       int     `json:"total_items"`
	WasteRatePercent float64 `json:"waste_rate_percent"`
	CostWasted       float64 `json:"cost_wasted"`
	CO2KgWasted      float64 `json:"co2_kg_wasted"`
	SharingCostSaved float64 `json:"sharing_cost_saved"`
}

// MonthStats is one entry in the all-time monthly breakdown.
type MonthStats struct {
	Month            string  `json:"month"`
	Wasted           int     `json:"wasted"`
	Consumed         int     `json:"consumed"`
	Shared           int     `json:"shared"`
	Total            int     `json:"total"`
	WasteRatePercent float64 `json:"waste_rate_percent"`
	CostWasted       float64 `json:"cost_wasted"`
}

// CategoryStats summarizes waste within one food category.
type CategoryStats struct {
	Category         string  `json:"category"`
	TotalItems       int     `json:"total_items"`
	WastedItems      int     `json:"wasted_items"`
	WasteRatePercent float64 `json:"waste_rate_percent"`
	CostWasted       float64 `json:"cost_wasted"`
}

// Impact expresses annual waste in environmental equivalents.
type Impact struct {
	AnnualCO2KgWasted float64 `json:"annual_co2_kg_wasted"`
	CarMilesEquiv     float64 `json:"car_miles_equivalent"`
	WaterSavedLiters  float64 `json:"water_saved_liters"`
	TreesToOffset     float64 `json:"trees_to_offset"`
	AnnualCostWasted  float64 `json:"annual_cost_wasted"`
	WasteAssessment   string  `json:"waste_assessment"`
}

// RiskItem is an active item predicted to be wasted soon.
type RiskItem struct {
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	DaysRemaining  int     `json:"days_remaining"`
	RiskScore      float64 `json:"risk_score"`
	EstimatedCost  float64 `json:"estimated_cost"`
	Recommendation string  `json:"recommendation"`
}

// Engine computes analytics over the inventory store.
type Engine struct {
	store inventory.Store
	log   zerolog.Logger
}

// NewEngine creates an analytics engine backed by the given store.
func NewEngine(store inventory.Store) *Engine {
	return &Engine{store: store, log: logger.WithComponent("analytics")}
}

// outcomeStatuses are the terminal states an item history entry can have.
var outcomeStatuses = []inventory.Status{
	inventory.StatusWasted,
	inventory.StatusConsumed,
	inventory.StatusShared,
}

// WasteStatistics computes waste and consumption metrics for the last
// `days` days, using each item's last update time to place it in the
// period.
func (e *Engine) WasteStatistics(days int, now time.Time) (*WasteStats, error) {
	if days < 1 {
		return nil, fmt.Errorf("period must be at least 1 day, got %d", days)
	}
	cutoff := now.AddDate(0, 0, -days)

	counts := map[inventory.Status][]*inventory.FoodItem{}
	for _, status := range outcomeStatuses {
		items, err := e.store.ListByStatus(status)
		if err != nil {
			return nil, fmt.Errorf("listing %s items: %w", status, err)
		}
		for _, item := range items {
			if !item.UpdatedAt.Before(cutoff) {
				counts[status] = append(counts[status], item)
			}
		}
	}

	wasted := counts[inventory.StatusWasted]
	consumed := counts[inventory.StatusConsumed]
	shared := counts[inventory.StatusShared]
	total := len(wasted) + len(consumed) + len(shared)

	var wasteRate float64
	if total > 0 {
		wasteRate = float64(len(wasted)) / float64(total) * 100
	}

	var wasteCost, wasteCO2, sharedCost float64
	for _, item := range wasted {
		wasteCost += itemCost(item)
		wasteCO2 += itemCO2(item)
	}
	for _, item := range shared {
		sharedCost += itemCost(item)
	}

	return &WasteStats{
		PeriodDays:       days,
		ItemsWasted:      len(wasted),
		ItemsConsumed:    len(consumed),
		ItemsShared:      len(shared),
		TotalItems:       total,
		WasteRatePercent: round2(wasteRate),
		CostWasted:       round2(wasteCost),
		CO2KgWasted:      round2(wasteCO2),
		SharingCostSaved: round2(sharedCost),
	}, nil
}

// MonthlyBreakdown returns all-time waste and consumption counts grouped
// by calendar month, oldest first.
func (e *Engine) MonthlyBreakdown() ([]MonthStats, error) {
	months := map[string]*MonthStats{}

	for _, status := range outcomeStatuses {
		items, err := e.store.ListByStatus(status)
		if err != nil {
			return nil, fmt.Errorf("listing %s items: %w", status, err)
		}
		for _, item := range items {
			if item.UpdatedAt.IsZero() {
				continue
			}
			key := item.UpdatedAt.Format("2006-01")
			stats, ok := months[key]
			if !ok {
				stats = &MonthStats{Month: key}
				months[key] = stats
			}
			switch status {
			case inventory.StatusWasted:
				stats.Wasted++
				stats.CostWasted += itemCost(item)
			case inventory.StatusConsumed:
				stats.Consumed++
			case inventory.StatusShared:
				stats.Shared++
			}
		}
	}

	keys := make([]string, 0, len(months))
	for key := range months {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]MonthStats, 0, len(keys))
	for _, key := range keys {
		stats := months[key]
		stats.Total = stats.Wasted + stats.Consumed + stats.Shared
		if stats.Total > 0 {
			stats.WasteRatePercent = round2(float64(stats.Wasted) / float64(stats.Total) * 100)
		}
		stats.CostWasted = round2(stats.CostWasted)
		out = append(out, *stats)
	}
	return out, nil
}

// CategoryAnalysis returns all-time waste metrics grouped by category,
// sorted by waste rate descending.
func (e *Engine) CategoryAnalysis() ([]CategoryStats, error) {
	categories := map[string]*CategoryStats{}

	for _, status := range outcomeStatuses {
		items, err := e.store.ListByStatus(status)
		if err != nil {
			return nil, fmt.Errorf("listing %s items: %w", status, err)
		}
		for _, item := range items {
			cat := normalizeCategory(item.Category)
			stats, ok := categories[cat]
			if !ok {
				stats = &CategoryStats{Category: cat}
				categories[cat] = stats
			}
			stats.TotalItems++
			if status == inventory.StatusWasted {
				stats.WastedItems++
				stats.CostWasted += itemCost(item)
			}
		}
	}

	out := make([]CategoryStats, 0, len(categories))
	for _, stats := range categories {
		if stats.TotalItems > 0 {
			stats.WasteRatePercent = round2(float64(stats.WastedItems) / float64(stats.TotalItems) * 100)
		}
		stats.CostWasted = round2(stats.CostWasted)
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WasteRatePercent != out[j].WasteRatePercent {
			return out[i].WasteRatePercent > out[j].WasteRatePercent
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

// SustainabilityImpact converts the last year of waste into environmental
// equivalents.
func (e *Engine) SustainabilityImpact(now time.Time) (*Impact, error) {
	annual, err := e.WasteStatistics(365, now)
	if err != nil {
		return nil, err
	}

	assessment := "Needs Improvement"
	if annual.WasteRatePercent < 15 {
		assessment = "Good"
	}

	return &Impact{
		AnnualCO2KgWasted: annual.CO2KgWasted,
		CarMilesEquiv:     round1(annual.CO2KgWasted / co2PerCarMile),
		WaterSavedLiters:  math.Round(float64(annual.ItemsShared) * litersPerShared),
		TreesToOffset:     round1(annual.CO2KgWasted / co2PerTreePerYear),
		AnnualCostWasted:  annual.CostWasted,
		WasteAssessment:   assessment,
	}, nil
}

// PredictWasteItems returns active items expiring within daysAhead days,
// most at-risk first, with a 0-100 risk score and a recommendation.
func (e *Engine) PredictWasteItems(daysAhead int, now time.Time) ([]RiskItem, error) {
	if daysAhead < 1 {
		return nil, fmt.Errorf("prediction window must be at least 1 day, got %d", daysAhead)
	}
	items, err := e.store.ExpiringWithin(daysAhead, now)
	if err != nil {
		return nil, fmt.Errorf("listing at-risk items: %w", err)
	}

	out := make([]RiskItem, 0, len(items))
	for _, item := range items {
		daysLeft := int(math.Floor(item.ExpiryDate.Sub(now).Hours() / 24))
		if daysLeft < 0 {
			daysLeft = 0
		}
		score := (1 - float64(daysLeft)/float64(daysAhead)) * 100
		score = math.Max(0, math.Min(100, score))

		out = append(out, RiskItem{
			Name:           item.Name,
			Category:       item.Category,
			DaysRemaining:  daysLeft,
			RiskScore:      round1(score),
			EstimatedCost:  round2(itemCost(item)),
			Recommendation: recommendation(daysLeft),
		})
	}
	return out, nil
}

// Insights generates short actionable observations from recent history.
func (e *Engine) Insights(now time.Time) ([]string, error) {
	stats, err := e.WasteStatistics(30, now)
	if err != nil {
		return nil, err
	}
	categories, err := e.CategoryAnalysis()
	if err != nil {
		return nil, err
	}

	var insights []string

	switch {
	case stats.WasteRatePercent > 20:
		insights = append(insights, fmt.Sprintf(
			"Warning: your waste rate is %.2f%% over the last 30 days. Consider better meal planning and first-in-first-out storage.",
			stats.WasteRatePercent))
	case stats.TotalItems > 0 && stats.WasteRatePercent < 10:
		insights = append(insights, fmt.Sprintf(
			"Excellent: only %.2f%% waste rate over the last 30 days.",
			stats.WasteRatePercent))
	}

	if len(categories) > 0 && categories[0].WasteRatePercent > 30 {
		worst := categories[0]
		insights = append(insights, fmt.Sprintf(
			"%s is your most wasted category (%.2f%% waste rate). Try buying smaller quantities or better storage.",
			titleCase(worst.Category), worst.WasteRatePercent))
	}

	if stats.ItemsShared > 0 {
		insights = append(insights, fmt.Sprintf(
			"Well done: you shared %d items this month, saving about %.2f.",
			stats.ItemsShared, stats.SharingCostSaved))
	}

	risky, err := e.PredictWasteItems(3, now)
	if err != nil {
		return nil, err
	}
	if len(risky) > 4 {
		insights = append(insights, fmt.Sprintf(
			"Urgent: %d items are expiring in the next 3 days. Time to cook, freeze or share.",
			len(risky)))
	}

	if len(insights) == 0 {
		insights = append(insights, "No major issues detected. Keep logging your items!")
	}
	return insights, nil
}

// Report renders a plain-text summary of the last 30 days plus annual
// impact and insights.
func (e *Engine) Report(now time.Time) (string, error) {
	stats, err := e.WasteStatistics(30, now)
	if err != nil {
		return "", err
	}
	impact, err := e.SustainabilityImpact(now)
	if err != nil {
		return "", err
	}
	insights, err := e.Insights(now)
	if err != nil {
		return "", err
	}
	e.log.Debug().Int("total_items", stats.TotalItems).Float64("waste_rate", stats.WasteRatePercent).Msg("report generated")

	var b strings.Builder
	rule := strings.Repeat("=", 70)
	sub := strings.Repeat("-", 60)

	b.WriteString(rule + "\n")
	b.WriteString("FOOD WASTE & SUSTAINABILITY REPORT\n")
	fmt.Fprintf(&b, "Generated: %s UTC\n", now.UTC().Format("2006-01-02 15:04:05"))
	b.WriteString(rule + "\n\n")

	b.WriteString("LAST 30 DAYS\n" + sub + "\n")
	fmt.Fprintf(&b, "Total tracked items     : %d\n", stats.TotalItems)
	fmt.Fprintf(&b, "  Consumed              : %d\n", stats.ItemsConsumed)
	fmt.Fprintf(&b, "  Shared                : %d\n", stats.ItemsShared)
	fmt.Fprintf(&b, "  Wasted                : %d\n", stats.ItemsWasted)
	fmt.Fprintf(&b, "Waste rate              : %.2f%%\n", stats.WasteRatePercent)
	fmt.Fprintf(&b, "Estimated cost wasted   : %.2f\n\n", stats.CostWasted)

	b.WriteString("ANNUAL ENVIRONMENTAL IMPACT\n" + sub + "\n")
	fmt.Fprintf(&b, "CO2 from waste          : %.2f kg\n", impact.AnnualCO2KgWasted)
	fmt.Fprintf(&b, "Equivalent car travel   : ~%.1f miles\n", impact.CarMilesEquiv)
	fmt.Fprintf(&b, "Water saved by sharing  : %.0f liters\n", impact.WaterSavedLiters)
	fmt.Fprintf(&b, "Trees needed to offset  : ~%.1f\n\n", impact.TreesToOffset)

	b.WriteString("ACTIONABLE INSIGHTS\n" + sub + "\n")
	for i, insight := range insights {
		fmt.Fprintf(&b, "%d. %s\n", i+1, insight)
	}

	b.WriteString("\n" + rule + "\n")
	b.WriteString("Keep tracking - every item logged helps fight food waste!\n")
	b.WriteString(rule)
	return b.String(), nil
}

func itemCost(item *inventory.FoodItem) float64 {
	cost, ok := foodCosts[normalizeCategory(item.Category)]
	if !ok {
		cost = defaultCost
	}
	return cost * item.Quantity
}

func itemCO2(item *inventory.FoodItem) float64 {
	co2, ok := co2Emissions[normalizeCategory(item.Category)]
	if !ok {
		co2 = defaultCO2
	}
	return co2 * item.Quantity
}

func normalizeCategory(category string) string {
	cat := strings.ToLower(strings.TrimSpace(category))
	if cat == "" {
		return "other"
	}
	return cat
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func recommendation(daysLeft int) string {
	switch {
	case daysLeft <= 1:
		return "Use TODAY or SHARE immediately!"
	case daysLeft <= 2:
		return "Plan to use very soon or freeze"
	case daysLeft <= 4:
		return "Prioritize this week"
	default:
		return "Still time to plan"
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
