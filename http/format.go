package http

import "fmt"

const (
	HighRisk = "High Risk"
	LowRisk  = "Low Risk"
)

// RiskMessage returns the risk level shown for a predicted label.
func RiskMessage(label int) string {
	if label == 1 {
		return HighRisk
	}
	return LowRisk
}

// FormatProbability renders a probability as a percentage with two decimals.
func FormatProbability(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}
