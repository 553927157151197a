// Package report renders pipeline results and farm notices as short text
// messages suitable for SMS delivery.
package report

import (
	"fmt"
	"strings"
	"time"

	"crop-planner/internal/catalog"
	"crop-planner/internal/pipeline"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TimestampLayout renders times as dd/mm/yyyy hh:mm.
const TimestampLayout = "02/01/2006 15:04"

var printer = message.NewPrinter(language.English)

// FormatSMS condenses r into a crop plan message: the farm, the top ranked
// crop, the season totals and the overall risk.
func FormatSMS(r *pipeline.Report) string {
	var b strings.Builder
	printer.Fprintf(&b, "Crop Plan for %s\n", r.Farmer.Name)
	printer.Fprintf(&b, "Location: %s\n", r.Farmer.Location.State)
	printer.Fprintf(&b, "Land: %s acres\n\n", acres(r.Farmer.Land.TotalAcres))

	if top, ok := r.TopCrop(); ok {
		printer.Fprintf(&b, "Top Crop: %s\n", top.Name)
		printer.Fprintf(&b, "Yield: %.2f tons/acre\n", top.ExpectedYield)
		printer.Fprintf(&b, "Investment: ₹%.0f\n", top.Investment)
		printer.Fprintf(&b, "ROI: %.1f%%\n", top.ROI)
		printer.Fprintf(&b, "Risk: %s\n\n", top.RiskLevel)
	}

	fin := r.Finance
	printer.Fprintf(&b, "Total Investment: ₹%.0f\n", fin.TotalInvestment)
	printer.Fprintf(&b, "Expected Revenue: ₹%.0f\n", fin.TotalRevenue)
	printer.Fprintf(&b, "Net Profit: ₹%.0f\n", fin.NetProfit)
	printer.Fprintf(&b, "Overall ROI: %.1f%%\n\n", fin.ROI)

	level := r.Risk.Overall.Level
	if level == "" {
		level = catalog.Unknown
	}
	printer.Fprintf(&b, "Risk Level: %s\n", level)
	printer.Fprintf(&b, "Risk Score: %.2f\n\n", r.Risk.Overall.Score)

	b.WriteString("Generated: " + r.GeneratedAt.Format(TimestampLayout))
	return b.String()
}

// acres drops the fraction for whole acreages.
func acres(v float64) string {
	if v == float64(int64(v)) {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprintf("%.2f", v)
}

var alertIcons = map[string]string{
	"weather":    "🌦️",
	"pest":       "🐛",
	"disease":    "🦠",
	"market":     "📈",
	"irrigation": "💧",
	"emergency":  "🚨",
}

// FormatAlert formats a free-text alert of the given type issued at.
func FormatAlert(alertType, text string, at time.Time) string {
	icon, ok := alertIcons[strings.ToLower(alertType)]
	if !ok {
		icon = "⚠️"
	}
	return icon + " " + strings.ToUpper(alertType) + " ALERT\n\n" +
		text + "\n\n" +
		"Time: " + at.Format(TimestampLayout)
}

func FormatReminder(crop, activity, due string) string {
	return "🌱 FARMING REMINDER\n\n" +
		"Crop: " + crop + "\n" +
		"Activity: " + activity + "\n" +
		"Due: " + due + "\n\n" +
		"Don't forget this important farming activity for optimal results!"
}

// Weather is a forecast summary. Empty readings print as N/A.
type Weather struct {
	Temperature     string `json:"temperature"`
	Humidity        string `json:"humidity"`
	Rainfall        string `json:"rainfall"`
	WindSpeed       string `json:"windSpeed"`
	Recommendations string `json:"recommendations"`
	Precautions     string `json:"precautions"`
}

func FormatWeatherAlert(w Weather) string {
	return "🌦️ WEATHER ALERT\n\n" +
		"Temp: " + orDefault(w.Temperature, "N/A") + "\n" +
		"Humidity: " + orDefault(w.Humidity, "N/A") + "\n" +
		"Rainfall: " + orDefault(w.Rainfall, "N/A") + "\n" +
		"Wind: " + orDefault(w.WindSpeed, "N/A") + "\n\n" +
		"Recommendations:\n" + orDefault(w.Recommendations, "Monitor conditions") + "\n\n" +
		"Precautions:\n" + orDefault(w.Precautions, "Take necessary precautions")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// FormatMarketUpdate reports the price of crop in rupees per ton and its
// percentage change.
func FormatMarketUpdate(crop string, price, change float64) string {
	icon := "📈"
	if change < 0 {
		icon = "📉"
	}

	var b strings.Builder
	b.WriteString("📊 MARKET UPDATE\n\n")
	b.WriteString("Crop: " + crop + "\n")
	printer.Fprintf(&b, "Price: ₹%.2f/ton\n", price)
	fmt.Fprintf(&b, "Change: %s %+.2f%%\n\n", icon, change)
	b.WriteString("Recommendation:\n" + MarketRecommendation(change))
	return b.String()
}

// MarketRecommendation maps a percentage price change to selling advice.
func MarketRecommendation(change float64) string {
	switch {
	case change > 10:
		return "Strong upward trend. Consider holding produce."
	case change > 5:
		return "Moderate increase. Monitor conditions."
	case change > -5:
		return "Stable prices. Normal conditions."
	case change > -10:
		return "Price decline. Consider selling if storage costs high."
	default:
		return "Significant drop. Evaluate selling strategy carefully."
	}
}
