package services

import (
	"context"
	"testing"

	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketService_ListAssets(t *testing.T) {
	store, ref := newTestStore(t)
	svc := NewMarketService(store, ref)

	all, err := svc.ListAssets("")
	require.NoError(t, err)
	assert.Len(t, all, 9)

	crypto, err := svc.ListAssets("crypto")
	require.NoError(t, err)
	require.Len(t, crypto, 3)
	assert.Equal(t, "BTC", crypto[0].Code)

	_, err = svc.ListAssets("bond")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMarketService_AssetAndChart(t *testing.T) {
	store, ref := newTestStore(t)
	svc := NewMarketService(store, ref)

	asset, err := svc.Asset("stock", "tlkm")
	require.NoError(t, err)
	assert.Equal(t, "TLKM", asset.Code)

	_, err = svc.Asset("crypto", "TLKM")
	assert.ErrorIs(t, err, repository.ErrAssetNotFound)

	chart, err := svc.Chart("equity", "BMRI")
	require.NoError(t, err)
	assert.Equal(t, 6050.0, chart.LastPrice())
}

func TestMarketService_News(t *testing.T) {
	store, ref := newTestStore(t)
	svc := NewMarketService(store, ref)

	view := svc.News()
	assert.Len(t, view.Articles, 6)
	assert.Nil(t, view.Selected)

	article, err := svc.SelectArticle(context.Background(), 2)
	require.NoError(t, err)

	view = svc.News()
	require.NotNil(t, view.Selected)
	assert.Equal(t, 2, *view.Selected)
	assert.Equal(t, article.Title, view.Article.Title)

	require.NoError(t, svc.BackToNews(context.Background()))
	assert.Nil(t, svc.News().Selected)

	_, err = svc.SelectArticle(context.Background(), 6)
	assert.ErrorIs(t, err, repository.ErrArticleNotFound)
}

func TestDashboardService(t *testing.T) {
	store, ref := newTestStore(t)
	session := NewSessionService(store, NewRiskService(ref), fixedClock(testNow))
	portfolio := NewPortfolioService(store, ref, newTestMetrics())
	svc := NewDashboardService(session, portfolio, ref)

	dash := svc.Dashboard()
	assert.Equal(t, models.DefaultUsername, dash.Profile.DisplayName)
	assert.True(t, dash.Summary.TotalValue.Equal(d("80250000")))
	assert.Len(t, dash.Allocation, 3)
	assert.Equal(t, []float64{1000, 1100, 1250, 1150, 1300, 1350}, dash.ValueHistory)
	assert.Len(t, dash.HistoryLabel, 6)
}
