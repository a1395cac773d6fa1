package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2025-06-01 ")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", d.String())

	_, err = ParseDate("01.06.2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDateComparisonIgnoresClockAndZone(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	a := DateOf(time.Date(2025, 6, 1, 23, 30, 0, 0, loc))
	b := NewDate(2025, 6, 1)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Before(b))
	assert.True(t, b.Before(NewDate(2025, 6, 2)))
	assert.True(t, NewDate(2026, 1, 1).After(NewDate(2025, 12, 31)))
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		When Date `json:"when"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"when":"2025-06-01"}`), &payload))
	assert.Equal(t, NewDate(2025, 6, 1), payload.When)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"when":"2025-06-01"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"when":"June"}`), &payload))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-06-01", d.String())

	require.NoError(t, d.Scan("2025-07-02T00:00:00Z"))
	assert.Equal(t, "2025-07-02", d.String())

	require.NoError(t, d.Scan([]byte("2025-08-03")))
	assert.Equal(t, "2025-08-03", d.String())

	assert.Error(t, d.Scan(42))

	v, err := NewDate(2025, 6, 1).Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", v)
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("9:05")
	require.NoError(t, err)
	assert.Equal(t, Clock("09:05"), c)

	c, err = ParseClock("18:30:00")
	require.NoError(t, err)
	assert.Equal(t, Clock("18:30"), c)

	_, err = ParseClock("25:00")
	assert.ErrorIs(t, err, ErrInvalidClock)

	assert.True(t, Clock("08:00").Before("09:00"))
	assert.True(t, Clock("08:00").Valid())
	assert.False(t, Clock("8:00").Valid())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("ROLE_ROOT").Valid())
}
