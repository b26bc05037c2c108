package alert

import (
	"fmt"
	"math"

	"pulso/internal/models"
)

// breached applies the per-type breach direction: success_rate alerts on
// a value below the threshold, every other type on a value above it.
func breached(alertType string, current, threshold float64) bool {
	if alertType == models.AlertSuccessRate {
		return current < threshold
	}
	return current > threshold
}

// severityFor assigns severity from how far the current value deviates
// from the threshold, relative to the threshold: under 10% is low, under
// 25% medium, under 50% high, anything beyond critical.
func severityFor(current, threshold float64) string {
	if threshold == 0 {
		return models.SeverityCritical
	}
	ratio := math.Abs(current-threshold) / math.Abs(threshold)
	switch {
	case ratio < 0.10:
		return models.SeverityLow
	case ratio < 0.25:
		return models.SeverityMedium
	case ratio < 0.50:
		return models.SeverityHigh
	default:
		return models.SeverityCritical
	}
}

func metricFor(alertType string) string {
	switch alertType {
	case models.AlertSuccessRate:
		return "success_rate"
	case models.AlertHighChargebacks:
		return "chargeback_rate"
	case models.AlertUnusualVolume:
		return "volume_change"
	case models.AlertSystemLatency:
		return "processing_time"
	case models.AlertFraudSuspected:
		return "fraud_score"
	}
	return alertType
}

func titleFor(alertType string) string {
	switch alertType {
	case models.AlertSuccessRate:
		return "Success Rate Below Threshold"
	case models.AlertHighChargebacks:
		return "High Chargeback Rate"
	case models.AlertUnusualVolume:
		return "Unusual Transaction Volume"
	case models.AlertSystemLatency:
		return "High System Latency"
	case models.AlertFraudSuspected:
		return "Potential Fraud Detected"
	}
	return alertType
}

func messageFor(alertType string, current, threshold float64) string {
	switch alertType {
	case models.AlertSuccessRate:
		return fmt.Sprintf("Transaction success rate %.1f%% has dropped below the %.1f%% threshold", current, threshold)
	case models.AlertHighChargebacks:
		return fmt.Sprintf("Chargeback rate %.1f%% has exceeded the %.1f%% threshold", current, threshold)
	case models.AlertUnusualVolume:
		return fmt.Sprintf("Transaction volume deviates %.1f%% from the trailing daily average", current)
	case models.AlertSystemLatency:
		return fmt.Sprintf("Average processing time %.0fms has exceeded the %.0fms threshold", current, threshold)
	case models.AlertFraudSuspected:
		return fmt.Sprintf("Fraud score %.0f has exceeded the %.0f threshold", current, threshold)
	}
	return fmt.Sprintf("%s at %.1f against threshold %.1f", alertType, current, threshold)
}
