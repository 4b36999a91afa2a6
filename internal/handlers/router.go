package handlers

import (
	"net/http"

	"github.com/epeers/investdash/internal/cache"
	"github.com/epeers/investdash/internal/metrics"
	"github.com/epeers/investdash/internal/middleware"
	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/services"
	"github.com/epeers/investdash/internal/state"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps is everything the router needs to build its handlers
type Deps struct {
	Store        *state.Store
	Slots        *cache.SlotCache
	Metrics      *metrics.Metrics
	Risk         *services.RiskService
	Session      *services.SessionService
	Navigation   *services.NavigationService
	Subscription *services.SubscriptionService
	Portfolio    *services.PortfolioService
	Dashboard    *services.DashboardService
	Market       *services.MarketService
	AI           *services.AIService
	Analysis     *services.AnalysisService
	CORSOrigins  []string
	// StreamsDone is closed when the server shuts down, ending open event streams.
	StreamsDone  <-chan struct{}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// NewRouter wires every endpoint onto a new gin engine
func NewRouter(d Deps) *gin.Engine {
	sessionHandler := NewSessionHandler(d.Session, d.Risk)
	navHandler := NewNavigationHandler(d.Navigation, d.Subscription, d.Store)
	portfolioHandler := NewPortfolioHandler(d.Portfolio, d.Dashboard, d.AI)
	marketHandler := NewMarketHandler(d.Market)
	aiHandler := NewAIHandler(d.AI, d.Analysis, d.Slots)
	eventsHandler := NewEventsHandler(d.Store, d.StreamsDone)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(d.Metrics))
	router.Use(cors.New(corsConfig(d.CORSOrigins)))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	api.GET("/events", eventsHandler.Stream)
	api.GET("/state", navHandler.State)

	// Session routes
	api.POST("/session/login", sessionHandler.Login)
	api.POST("/session/register", sessionHandler.Register)
	api.PUT("/session/risk-answers", sessionHandler.SetRiskAnswers)
	api.POST("/session/register/complete", sessionHandler.CompleteRegistration)
	api.POST("/session/logout", sessionHandler.Logout)
	api.GET("/session/profile", sessionHandler.Profile)
	api.PUT("/session/profile", sessionHandler.UpdateProfile)
	api.POST("/session/password", sessionHandler.ChangePassword)
	api.GET("/risk/questions", sessionHandler.Questions)

	// Navigation and entitlement routes
	api.GET("/navigation", navHandler.Get)
	api.POST("/navigation", navHandler.Navigate)
	api.POST("/subscription", navHandler.Subscribe)
	api.POST("/subscription/dismiss", navHandler.DismissUpgrade)

	// Portfolio routes
	api.GET("/dashboard", portfolioHandler.Dashboard)
	api.GET("/portfolio", portfolioHandler.Get)
	api.POST("/portfolio/holdings", portfolioHandler.AddHolding)
	api.DELETE("/portfolio/holdings/:index", portfolioHandler.RemoveHolding)
	api.POST("/portfolio/ai-analysis", portfolioHandler.AnalyzeAI)

	// Market and news routes
	api.GET("/market/assets", marketHandler.ListAssets)
	api.GET("/market/assets/:class/:code", marketHandler.GetAsset)
	api.GET("/market/assets/:class/:code/chart", marketHandler.GetChart)
	api.GET("/news", marketHandler.News)
	api.POST("/news/:index/select", marketHandler.SelectArticle)
	api.POST("/news/back", marketHandler.BackToNews)
	api.GET("/slots/:slot", aiHandler.GetSlot)

	// Premium routes
	analysis := api.Group("/analysis", middleware.RequirePremium(d.Navigation, models.ViewAnalysis))
	analysis.GET("/models", aiHandler.Models)
	analysis.POST("/run", aiHandler.RunAnalysis)
	analysis.POST("/deep-dive", aiHandler.DeepDive)

	ai := api.Group("/ai", middleware.RequirePremium(d.Navigation, models.ViewAskAI))
	ai.GET("/chat", aiHandler.GetChat)

	// Ask checks entitlement itself, after discarding empty questions
	api.POST("/ai/chat", aiHandler.Ask)

	return router
}
