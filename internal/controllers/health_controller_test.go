package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpd/internal/models"
	"cpd/internal/services"
)

func TestHealth(t *testing.T) {
	svc := services.NewPlannerService()
	svc.Dispatch(models.AddPersona{Persona: models.Persona{Name: "p"}})
	svc.Dispatch(models.AddBlog{Blog: models.BlogPost{Title: "b1"}})
	svc.Dispatch(models.AddBlog{Blog: models.BlogPost{Title: "b2"}})
	hc := NewHealthController(svc)

	rr := httptest.NewRecorder()
	hc.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Personas)
	assert.Equal(t, 2, resp.Blogs)
	assert.Equal(t, 0, resp.GptExports)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, 0.0)
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	hc := NewHealthController(services.NewPlannerService())

	rr := httptest.NewRecorder()
	hc.Health(rr, httptest.NewRequest(http.MethodPost, "/health", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h0m42s", formatDuration(42*time.Second))
	assert.Equal(t, "1h1m5s", formatDuration(time.Hour+time.Minute+5*time.Second))
	assert.Equal(t, "25h0m0s", formatDuration(25*time.Hour))
}
