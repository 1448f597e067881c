package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/models"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name         string
		count, total float64
		want         int
	}{
		{name: "eight-of-ten", count: 8, total: 10, want: 80},
		{name: "rounds-half-up", count: 1, total: 8, want: 13},
		{name: "energy-efficiency", count: 85.3, total: 100, want: 85},
		{name: "zero-total", count: 3, total: 0, want: 0},
		{name: "negative-total", count: 3, total: -1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percent(tt.count, tt.total))
		})
	}
}

func TestProbability(t *testing.T) {
	assert.Equal(t, "78%", Probability(0.78))
	assert.Equal(t, "45%", Probability(0.45))
	assert.Equal(t, "0%", Probability(0))
	assert.Equal(t, "100%", Probability(1))
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 4300, want: "$4,300"},
		{in: 12345.5, want: "$12,345.5"},
		{in: 1234567.891, want: "$1,234,567.89"},
		{in: 0, want: "$0"},
		{in: -250, want: "-$250"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.in))
	}
}

func TestFixed1AndNumber(t *testing.T) {
	assert.Equal(t, "72.3", Fixed1(72.34))
	assert.Equal(t, "0.0", Fixed1(0))
	assert.Equal(t, "87.5", Number(87.5))
	assert.Equal(t, "87", Number(87))
}

func TestDateTime(t *testing.T) {
	ts := time.Date(2024, 5, 1, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "May 1, 2024, 2:05:09 PM", DateTime(ts))
	assert.Equal(t, "2024-05-01T14:05:09Z", ISO(ts))
	assert.Equal(t, "—", DateTime(time.Time{}))
	assert.Equal(t, "", ISO(time.Time{}))
}

func TestHealthClass(t *testing.T) {
	assert.Equal(t, "good", HealthClass(80))
	assert.Equal(t, "fair", HealthClass(79.9))
	assert.Equal(t, "fair", HealthClass(60))
	assert.Equal(t, "poor", HealthClass(45.8))
}

func TestStatusAndSeverityClasses(t *testing.T) {
	assert.Equal(t, "status-critical", StatusClass(models.StatusCritical))
	assert.Equal(t, "status-neutral", StatusClass(models.StatusOffline))
	assert.Equal(t, "status-neutral", StatusClass("exploded"))

	assert.Equal(t, "severity-high", SeverityClass(models.SeverityHigh))
	assert.Equal(t, "severity-neutral", SeverityClass("urgent"))
}

func TestHumanLabel(t *testing.T) {
	assert.Equal(t, "Alerts resolved", HumanLabel("alerts_resolved"))
	assert.Equal(t, "", HumanLabel(""))
}

func TestFuncMapPercentAcceptsMixedNumbers(t *testing.T) {
	pct := FuncMap()["percent"].(func(count, total any) int)
	assert.Equal(t, 80, pct(8, 10))
	assert.Equal(t, 85, pct(85.3, 100))
	assert.Equal(t, 0, pct("x", 10))
}
