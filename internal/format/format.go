// Package format turns backend numbers and dates into the strings the
// dashboard templates show.
package format

import (
	"fmt"
	"html/template"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/models"
)

const dateTimeLayout = "Jan 2, 2006, 3:04:05 PM"

// Percent is count as a whole percentage of total. A non-positive total
// yields 0 rather than NaN.
func Percent(count, total float64) int {
	if total <= 0 || math.IsNaN(count) || math.IsNaN(total) {
		return 0
	}
	return int(math.Round(count / total * 100))
}

// Probability renders a 0..1 fraction as a whole percentage, e.g. 0.78 -> "78%".
func Probability(p float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(p*100)))
}

// Currency renders dollars with thousands separators and at most two
// decimals, trailing zeros dropped.
func Currency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	rounded := math.Round(v*100) / 100
	return sign + "$" + humanize.CommafWithDigits(rounded, 2)
}

func Fixed1(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// Number drops a trailing ".0" so integral scores render as "87" not "87.0".
func Number(v float64) string {
	return humanize.FtoaWithDigits(v, 1)
}

func DateTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.UTC().Format(dateTimeLayout)
}

// ISO is the machine-readable form used in <time datetime>.
func ISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func HealthClass(score float64) string {
	switch {
	case score >= 80:
		return "good"
	case score >= 60:
		return "fair"
	default:
		return "poor"
	}
}

func StatusClass(s models.EquipmentStatus) string {
	switch s {
	case models.StatusOperational, models.StatusWarning, models.StatusCritical, models.StatusMaintenance:
		return "status-" + string(s)
	}
	return "status-neutral"
}

func SeverityClass(s models.AlertSeverity) string {
	if s.Valid() {
		return "severity-" + string(s)
	}
	return "severity-neutral"
}

func Upper(s string) string { return strings.ToUpper(s) }

// FuncMap exposes the helpers to html/template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"percent": func(count, total any) int {
			return Percent(toFloat(count), toFloat(total))
		},
		"probability":   Probability,
		"currency":      Currency,
		"fixed1":        Fixed1,
		"number":        Number,
		"datetime":      DateTime,
		"iso":           ISO,
		"healthClass":   HealthClass,
		"statusClass":   StatusClass,
		"severityClass": SeverityClass,
		"upper":         Upper,
		"humanLabel":    HumanLabel,
	}
}

// HumanLabel turns a snake_case key into a label: "alerts_resolved" -> "Alerts resolved".
func HumanLabel(key string) string {
	s := strings.ReplaceAll(key, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	case float32:
		return float64(n)
	}
	return math.NaN()
}
