package handlers

import (
	"net/http"
	"strconv"

	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/services"
	"github.com/gin-gonic/gin"
)

// MarketHandler handles asset, chart and news endpoints
type MarketHandler struct {
	marketSvc *services.MarketService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(marketSvc *services.MarketService) *MarketHandler {
	return &MarketHandler{marketSvc: marketSvc}
}

// ListAssets handles GET /api/market/assets
// @Summary List assets
// @Tags market
// @Produce json
// @Param class query string false "equity or crypto"
// @Success 200 {array} models.AssetDetails
// @Failure 400 {object} models.ErrorResponse
// @Router /api/market/assets [get]
func (h *MarketHandler) ListAssets(c *gin.Context) {
	assets, err := h.marketSvc.ListAssets(c.Query("class"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

// GetAsset handles GET /api/market/assets/:class/:code
// @Summary Get an asset with its fundamentals
// @Tags market
// @Produce json
// @Param class path string true "equity or crypto"
// @Param code path string true "Asset code"
// @Success 200 {object} models.AssetDetails
// @Failure 404 {object} models.ErrorResponse
// @Router /api/market/assets/{class}/{code} [get]
func (h *MarketHandler) GetAsset(c *gin.Context) {
	asset, err := h.marketSvc.Asset(c.Param("class"), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

// GetChart handles GET /api/market/assets/:class/:code/chart
// @Summary Get the price, volume and stochastic series of an asset
// @Tags market
// @Produce json
// @Param class path string true "equity or crypto"
// @Param code path string true "Asset code"
// @Success 200 {object} models.ChartSeries
// @Failure 404 {object} models.ErrorResponse
// @Router /api/market/assets/{class}/{code}/chart [get]
func (h *MarketHandler) GetChart(c *gin.Context) {
	chart, err := h.marketSvc.Chart(c.Param("class"), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chart)
}

// News handles GET /api/news
// @Summary Get the news screen
// @Tags news
// @Produce json
// @Success 200 {object} models.NewsView
// @Router /api/news [get]
func (h *MarketHandler) News(c *gin.Context) {
	c.JSON(http.StatusOK, h.marketSvc.News())
}

// SelectArticle handles POST /api/news/:index/select
// @Summary Open a news article
// @Tags news
// @Produce json
// @Param index path int true "Article position"
// @Success 200 {object} models.NewsArticle
// @Failure 404 {object} models.ErrorResponse
// @Router /api/news/{index}/select [post]
func (h *MarketHandler) SelectArticle(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "invalid article index",
		})
		return
	}

	article, err := h.marketSvc.SelectArticle(c.Request.Context(), index)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// BackToNews handles POST /api/news/back
// @Summary Close the open article
// @Tags news
// @Success 204
// @Router /api/news/back [post]
func (h *MarketHandler) BackToNews(c *gin.Context) {
	if err := h.marketSvc.BackToNews(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
