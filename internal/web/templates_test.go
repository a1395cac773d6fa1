package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railway_station/internal/models"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	for _, name := range []string{"index.html", "train_form.html", "login.html", "register.html", "admin.html", "stats.html", "about.html", "error.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestStatsTemplateRendersDirections(t *testing.T) {
	tmpl := MustTemplates()
	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "stats.html", map[string]interface{}{
		"Title":    "Statistics",
		"Username": "admin",
		"Stats": &models.SystemStats{
			TotalUsers:        3,
			PopularDirections: []models.DirectionCount{{Direction: "Moscow → Kazan", Count: 2}},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Moscow → Kazan")
	assert.Contains(t, buf.String(), "<strong>3</strong>")
}

func TestAdminTemplateSelectsCurrentRole(t *testing.T) {
	tmpl := MustTemplates()
	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "admin.html", map[string]interface{}{
		"Title":   "Administration",
		"IsAdmin": true,
		"Users":   []models.User{{ID: 2, Username: "user1", Role: models.RoleAdmin}},
		"Roles":   []models.Role{models.RoleUser, models.RoleAdmin},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `<option value="ROLE_ADMIN" selected>Administrator</option>`)
}
