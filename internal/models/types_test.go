package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampAcceptsZonelessBackendFormat(t *testing.T) {
	var a Alert
	err := json.Unmarshal([]byte(`{"id":"ALT-001","timestamp":"2024-05-01T10:00:00.123456","severity":"critical"}`), &a)
	require.NoError(t, err)

	assert.True(t, time.Date(2024, 5, 1, 10, 0, 0, 123456000, time.UTC).Equal(a.Timestamp.Time))
	assert.True(t, a.Severity.Valid())
}

func TestTimestampAcceptsRFC3339(t *testing.T) {
	ts, err := ParseTimestamp("2024-05-01T10:00:00+02:00")
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC).Equal(ts.Time))
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	err := json.Unmarshal([]byte(`"yesterday"`), &ts)
	assert.Error(t, err)
}

func TestTimestampNullAndZero(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())

	b, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestEquipmentMetrics(t *testing.T) {
	raw := `{
		"id": "COMP-001",
		"name": "Air Compressor Unit 1",
		"status": "operational",
		"health_score": 87.5,
		"last_maintenance": "2024-04-01T08:00:00",
		"next_maintenance": "2024-06-01T08:00:00",
		"metrics": {"temperature": 72.3, "pressure": 120.5, "vibration": 0.8, "efficiency": 89.2, "amps": 40}
	}`
	var eq Equipment
	require.NoError(t, json.Unmarshal([]byte(raw), &eq))

	assert.Equal(t, 72.3, eq.Temperature())
	assert.Equal(t, 120.5, eq.Pressure())
	assert.Equal(t, 0.8, eq.Vibration())

	_, ok := eq.Metric("humidity")
	assert.False(t, ok)

	assert.Equal(t, []NamedMetric{{Name: "amps", Value: 40}, {Name: "efficiency", Value: 89.2}}, eq.ExtraMetrics())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusOffline.Valid())
	assert.False(t, EquipmentStatus("exploded").Valid())
	assert.False(t, AlertSeverity("urgent").Valid())
}

func TestQueryRequestOmitsEmptyEquipment(t *testing.T) {
	b, err := json.Marshal(QueryRequest{Query: "why?"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"why?"}`, string(b))
}
