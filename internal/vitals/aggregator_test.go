package vitals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vital-alert-service/internal/models"
)

func finding(severity models.Severity, label string) models.AbnormalFinding {
	return models.AbnormalFinding{Severity: severity, Label: label}
}

func TestAggregateSeverityTakesMax(t *testing.T) {
	findings := []models.AbnormalFinding{
		finding(models.SeverityMedium, "a"),
		finding(models.SeverityHigh, "b"),
		finding(models.SeverityLow, "c"),
	}
	assert.Equal(t, models.SeverityHigh, AggregateSeverity(findings))
}

func TestAggregateSeverityOrderIndependent(t *testing.T) {
	a := finding(models.SeverityMedium, "a")
	b := finding(models.SeverityHigh, "b")

	assert.Equal(t, AggregateSeverity([]models.AbnormalFinding{a, b}),
		AggregateSeverity([]models.AbnormalFinding{b, a}))
}

func TestAggregateSeverityTies(t *testing.T) {
	findings := []models.AbnormalFinding{
		finding(models.SeverityHigh, "a"),
		finding(models.SeverityHigh, "b"),
	}
	assert.Equal(t, models.SeverityHigh, AggregateSeverity(findings))
}

func TestJoinLabels(t *testing.T) {
	findings := []models.AbnormalFinding{
		finding(models.SeverityHigh, "Huyết áp tâm thu: 190 mmHg"),
		finding(models.SeverityHigh, "SpO2: 85 %"),
	}
	assert.Equal(t, "Huyết áp tâm thu: 190 mmHg, SpO2: 85 %", JoinLabels(findings))
}
