package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/epeers/investdash/internal/cache"
	"github.com/epeers/investdash/internal/metrics"
	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/repository"
	"github.com/epeers/investdash/internal/richtext"
	"github.com/epeers/investdash/internal/state"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// DefaultAnalysisDelay is how long a simulated model run takes.
const DefaultAnalysisDelay = 2 * time.Second

// AnalysisService runs the simulated prediction models of the analysis screen.
// Results are random and carry no meaning.
type AnalysisService struct {
	store   *state.Store
	refRepo *repository.ReferenceRepository
	slots   *cache.SlotCache
	jobs    *JobRunner
	nav     *NavigationService
	metrics *metrics.Metrics
	delay   time.Duration
	rand    func() float64
}

// NewAnalysisService creates a new AnalysisService. A nil random source uses math/rand.
func NewAnalysisService(
	store *state.Store,
	refRepo *repository.ReferenceRepository,
	slots *cache.SlotCache,
	jobs *JobRunner,
	nav *NavigationService,
	m *metrics.Metrics,
	delay time.Duration,
	random func() float64,
) *AnalysisService {
	if random == nil {
		random = rand.Float64
	}
	return &AnalysisService{
		store:   store,
		refRepo: refRepo,
		slots:   slots,
		jobs:    jobs,
		nav:     nav,
		metrics: m,
		delay:   delay,
		rand:    random,
	}
}

// Models lists the available analysis models
func (s *AnalysisService) Models() []models.AnalysisModel {
	return s.refRepo.AnalysisModels()
}

// Simulate produces a model run from the last chart price and two uniform
// draws in [0,1): r moves the prediction, acc picks the displayed accuracy.
func Simulate(chart *models.ChartSeries, model models.AnalysisModel, class models.AssetClass, code string, r, acc float64) models.AnalysisResult {
	last := chart.LastPrice()
	prediction := last * (1 + (r-0.45)*0.1)
	action := models.ActionSell
	if prediction > last {
		action = models.ActionBuy
	}
	return models.AnalysisResult{
		ModelID:    model.ID,
		ModelName:  model.Name,
		AssetClass: class,
		Code:       code,
		LastPrice:  last,
		Prediction: prediction,
		Action:     action,
		Accuracy:   fmt.Sprintf("%.1f", 85+acc*10),
	}
}

// ResultText renders a model run in the same markup the AI answers use.
func ResultText(res models.AnalysisResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### Hasil Analisis Model %s\n", res.ModelName)
	fmt.Fprintf(&b, "**Prediksi Harga (%s):** %s\n", res.Code, FormatIDR(decimal.NewFromFloat(res.Prediction).Round(0)))
	fmt.Fprintf(&b, "**Akurasi Model (Simulasi):** %s%%\n", res.Accuracy)
	fmt.Fprintf(&b, "**%s**\n", res.Action)
	b.WriteString("*Disclaimer: Simulasi. Bukan saran finansial.")
	return b.String()
}

// Run starts a simulated model run for an asset. The deep dive of the
// previous run is cleared; the result lands in the analysis slot.
func (s *AnalysisService) Run(ctx context.Context, req models.RunAnalysisRequest) (*models.StartedResponse, error) {
	if _, err := s.nav.RequirePremium(ctx, models.ViewAnalysis); err != nil {
		return nil, err
	}
	class, err := models.ParseAssetClass(req.AssetClass)
	if err != nil {
		return nil, invalid("asset_class", "must be equity or crypto")
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, invalid("code", "is required")
	}
	model, err := s.refRepo.AnalysisModel(req.ModelID)
	if err != nil {
		return nil, err
	}

	s.store.Publish(models.EventSlot, s.slots.Clear(models.SlotDeepDive))
	st := s.slots.Begin(models.SlotAnalysis, "Hasil Analisis Model "+model.Name)
	s.store.Publish(models.EventSlot, st)
	token := st.Token

	started := s.jobs.TryGo("analysis", func(ctx context.Context) {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return
		}
		finishSlot(s.store, s.slots, s.metrics, models.SlotAnalysis, token, s.simulate(class, code, *model))
	})
	if !started {
		finishSlot(s.store, s.slots, s.metrics, models.SlotAnalysis, token, models.SlotResult{Error: ErrBusy.Error(), HTML: richtext.ErrorHTML(ErrBusy.Error())})
		return nil, ErrBusy
	}
	log.Infof("Started %s run for %s %s", model.ID, class, code)
	return &models.StartedResponse{Slot: models.SlotAnalysis, Token: token}, nil
}

func (s *AnalysisService) simulate(class models.AssetClass, code string, model models.AnalysisModel) models.SlotResult {
	chart, err := s.refRepo.Chart(class, code)
	if err != nil {
		msg := fmt.Sprintf("Data chart untuk aset %s tidak ditemukan.", code)
		if !errors.Is(err, repository.ErrChartNotFound) {
			log.Errorf("Chart lookup for %s failed: %v", code, err)
		}
		return models.SlotResult{Error: msg, HTML: richtext.ErrorHTML(msg)}
	}

	res := Simulate(chart, model, class, code, s.rand(), s.rand())
	doc := richtext.Format(ResultText(res))
	return models.SlotResult{HTML: doc.HTML(), Document: doc, Analysis: &res}
}

// Slot returns the display state of slot
func (s *AnalysisService) Slot(slot models.Slot) models.SlotState {
	return s.slots.Get(slot)
}
