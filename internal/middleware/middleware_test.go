package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/epeers/investdash/internal/metrics"
	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/services"
	"github.com/epeers/investdash/internal/state"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)

func setup(premium bool) (*gin.Engine, *state.Store, *metrics.Metrics) {
	gin.SetMode(gin.TestMode)
	session := models.NewUserSession()
	if premium {
		expiry := now.AddDate(0, 1, 0)
		session.IsPremium = true
		session.PremiumExpiry = &expiry
	}
	store := state.NewStore(state.AppState{
		Session:    session,
		Navigation: models.NavigationState{ActiveView: models.ViewDashboard},
	})
	m := metrics.New()
	nav := services.NewNavigationService(store, func() time.Time { return now }, m)

	router := gin.New()
	router.Use(RequestLogger(m))
	router.GET("/api/ai/chat", RequirePremium(nav, models.ViewAskAI), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.POST("/api/analysis/run", RequirePremium(nav, models.ViewAnalysis), func(c *gin.Context) {
		c.JSON(http.StatusAccepted, gin.H{"ok": true})
	})
	return router, store, m
}

func TestRequirePremium_RejectsActionAndRecordsPending(t *testing.T) {
	router, store, m := setup(false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analysis/run", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusPaymentRequired, w.Code)
	var resp models.UpgradeRequiredResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.UpgradeRequired)
	require.NotNil(t, resp.PendingView)
	assert.Equal(t, models.ViewAnalysis, *resp.PendingView)

	snap := store.Snapshot()
	assert.True(t, snap.UpgradePromptOpen)
	assert.Equal(t, models.ViewDashboard, snap.Navigation.ActiveView)
	require.NotNil(t, snap.Navigation.PendingGatedView)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST", "/api/analysis/run", "402")))
}

func TestRequirePremium_RejectsReadWithoutStateChange(t *testing.T) {
	router, store, m := setup(false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ai/chat", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusPaymentRequired, w.Code)
	var resp models.UpgradeRequiredResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.UpgradeRequired)
	assert.Nil(t, resp.PendingView)

	snap := store.Snapshot()
	assert.False(t, snap.UpgradePromptOpen)
	assert.Nil(t, snap.Navigation.PendingGatedView)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/ai/chat", "402")))
}

func TestRequirePremium_Allows(t *testing.T) {
	router, store, m := setup(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ai/chat", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, store.Snapshot().UpgradePromptOpen)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/ai/chat", "200")))
}

func TestRequestLogger_Unmatched(t *testing.T) {
	router, _, m := setup(true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
}
