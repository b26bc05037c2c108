package alert

import (
	"testing"

	"pulso/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBreached(t *testing.T) {
	tests := []struct {
		name      string
		alertType string
		current   float64
		threshold float64
		want      bool
	}{
		{"success rate below threshold breaches", models.AlertSuccessRate, 90, 95, true},
		{"success rate at threshold does not breach", models.AlertSuccessRate, 95, 95, false},
		{"success rate above threshold does not breach", models.AlertSuccessRate, 99, 95, false},
		{"chargeback rate above threshold breaches", models.AlertHighChargebacks, 1.5, 1, true},
		{"chargeback rate at threshold does not breach", models.AlertHighChargebacks, 1, 1, false},
		{"latency above threshold breaches", models.AlertSystemLatency, 3500, 3000, true},
		{"volume deviation above threshold breaches", models.AlertUnusualVolume, 60, 50, true},
		{"fraud score above threshold breaches", models.AlertFraudSuspected, 85, 80, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, breached(tt.alertType, tt.current, tt.threshold))
		})
	}
}

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		threshold float64
		want      string
	}{
		{"just under threshold is low", 94, 95, models.SeverityLow},
		{"nine percent deviation is low", 95 * 0.915, 95, models.SeverityLow},
		{"fifteen percent deviation is medium", 95 * 0.85, 95, models.SeverityMedium},
		{"thirty percent deviation is high", 95 * 0.70, 95, models.SeverityHigh},
		{"sixty percent deviation is critical", 95 * 0.40, 95, models.SeverityCritical},
		{"deviation above threshold counts the same", 95 * 1.30, 95, models.SeverityHigh},
		{"zero threshold is always critical", 10, 0, models.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, severityFor(tt.current, tt.threshold))
		})
	}
}

func TestMessageFor(t *testing.T) {
	msg := messageFor(models.AlertSuccessRate, 90.5, 95)
	assert.Contains(t, msg, "90.5%")
	assert.Contains(t, msg, "95.0%")

	msg = messageFor(models.AlertSystemLatency, 3500, 3000)
	assert.Contains(t, msg, "3500ms")
	assert.Contains(t, msg, "3000ms")
}
