package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/epeers/investdash/internal/cache"
	"github.com/epeers/investdash/internal/gemini"
	"github.com/epeers/investdash/internal/metrics"
	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/repository"
	"github.com/epeers/investdash/internal/richtext"
	"github.com/epeers/investdash/internal/state"
	log "github.com/sirupsen/logrus"
)

const (
	chatGreeting       = `Halo! Saya asisten AI Anda. Tanyakan apa saja tentang saham, kripto, atau analisis pasar. Misalnya: "Bagaimana prospek saham BBCA di kuartal berikutnya?"`
	chatPlaceholder    = "..."
	expertInstruction  = "Anda adalah seorang analis keuangan ahli."
	premiumOnlyMessage = "Fitur ini memerlukan akses premium."
	aiErrorPrefix      = "Terjadi kesalahan saat menghubungi AI."

	portfolioAnalysisTitle = "Analisis Portofolio oleh AI"
)

// TextCompleter produces text for a prompt. *gemini.Client implements it.
type TextCompleter interface {
	Complete(ctx context.Context, prompt, systemInstruction string) (string, error)
}

// InitialChat is the conversation a fresh process starts with
func InitialChat() []models.ChatMessage {
	return []models.ChatMessage{{ID: "0", Sender: models.SenderAI, Text: chatGreeting}}
}

// AIService runs AI requests in the background and routes each result to its
// display slot or chat message. Only premium users may use it.
type AIService struct {
	store   *state.Store
	refRepo *repository.ReferenceRepository
	ai      TextCompleter
	slots   *cache.SlotCache
	jobs    *JobRunner
	nav     *NavigationService
	metrics *metrics.Metrics
	now     Clock
	msgSeq  atomic.Uint64
}

// NewAIService creates a new AIService
func NewAIService(
	store *state.Store,
	refRepo *repository.ReferenceRepository,
	ai TextCompleter,
	slots *cache.SlotCache,
	jobs *JobRunner,
	nav *NavigationService,
	m *metrics.Metrics,
	now Clock,
) *AIService {
	if now == nil {
		now = time.Now
	}
	return &AIService{
		store:   store,
		refRepo: refRepo,
		ai:      ai,
		slots:   slots,
		jobs:    jobs,
		nav:     nav,
		metrics: m,
		now:     now,
	}
}

// requirePremium opens the upgrade prompt when the user has no active entitlement.
func (s *AIService) requirePremium() error {
	var denied bool
	_ = s.store.Update(func(st *state.AppState, em *state.Emitter) error {
		if st.Session.HasEntitlement(s.now()) {
			return nil
		}
		denied = true
		if !st.UpgradePromptOpen {
			st.UpgradePromptOpen = true
			em.Emit(models.EventUpgradePrompt, true)
		}
		return nil
	})
	if denied {
		return ErrPremiumRequired
	}
	return nil
}

// Generate asks the model once and formats the answer. Failures come back as
// an error result; nothing is retried.
func (s *AIService) Generate(ctx context.Context, kind, prompt, systemInstruction string) models.SlotResult {
	defer TrackTime("AIService.Generate "+kind, time.Now())
	start := time.Now()

	text, err := s.ai.Complete(ctx, prompt, systemInstruction)
	s.metrics.AILatency.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.AIRequests.WithLabelValues(kind, "error").Inc()
		log.Errorf("AI %s request failed: %v", kind, err)
		msg := AIErrorMessage(err)
		return models.SlotResult{Error: msg, HTML: richtext.ErrorHTML(msg)}
	}

	s.metrics.AIRequests.WithLabelValues(kind, "ok").Inc()
	doc := richtext.Format(text)
	return models.SlotResult{HTML: doc.HTML(), Text: doc.PlainText(), Document: doc}
}

// AIErrorMessage turns a completion error into the message shown to the user.
func AIErrorMessage(err error) string {
	var blocked *gemini.BlockedError
	switch {
	case errors.Is(err, gemini.ErrNotConfigured),
		errors.Is(err, gemini.ErrEmptyResponse),
		errors.As(err, &blocked):
		return err.Error()
	}
	return fmt.Sprintf("%s Detail: %s", aiErrorPrefix, err.Error())
}

// startSlot issues a token for slot and runs the request in the background.
// Its result lands in the slot only if no newer request was started meanwhile.
func (s *AIService) startSlot(slot models.Slot, title, kind, prompt, systemInstruction string) (*models.StartedResponse, error) {
	st := s.slots.Begin(slot, title)
	s.store.Publish(models.EventSlot, st)
	token := st.Token

	started := s.jobs.TryGo(kind, func(ctx context.Context) {
		res := s.Generate(ctx, kind, prompt, systemInstruction)
		res.Title = title
		s.finishSlot(slot, token, res)
	})
	if !started {
		s.finishSlot(slot, token, models.SlotResult{Title: title, Error: ErrBusy.Error(), HTML: richtext.ErrorHTML(ErrBusy.Error())})
		return nil, ErrBusy
	}
	return &models.StartedResponse{Slot: slot, Token: token}, nil
}

// denySlot shows the premium-only message in slot.
func (s *AIService) denySlot(slot models.Slot, title string) {
	st := s.slots.Set(slot, models.SlotResult{Title: title, Error: premiumOnlyMessage, HTML: richtext.ErrorHTML(premiumOnlyMessage)})
	s.store.Publish(models.EventSlot, st)
}

func (s *AIService) finishSlot(slot models.Slot, token uint64, res models.SlotResult) {
	finishSlot(s.store, s.slots, s.metrics, slot, token, res)
}

// finishSlot applies res to slot, or drops it when a newer request owns the slot.
func finishSlot(store *state.Store, slots *cache.SlotCache, m *metrics.Metrics, slot models.Slot, token uint64, res models.SlotResult) {
	st, applied := slots.Complete(slot, token, res)
	if !applied {
		m.StaleResults.WithLabelValues(string(slot)).Inc()
		log.WithFields(log.Fields{
			"code":   models.WarnStaleResultDropped,
			"slot":   slot,
			"token":  token,
			"latest": st.Token,
		}).Warn("Dropped stale result")
		return
	}
	store.Publish(models.EventSlot, st)
}

// AnalyzePortfolio asks for an assessment of the current portfolio against the user's risk profile.
func (s *AIService) AnalyzePortfolio(ctx context.Context) (*models.StartedResponse, error) {
	if err := s.requirePremium(); err != nil {
		s.denySlot(models.SlotPortfolioAnalysis, portfolioAnalysisTitle)
		return nil, err
	}

	var tier models.RiskTier
	var holdings []models.Holding
	s.store.View(func(st *state.AppState) {
		tier = st.Session.RiskProfile
		holdings = append(holdings, st.Holdings...)
	})
	return s.startSlot(models.SlotPortfolioAnalysis, portfolioAnalysisTitle, "portfolio_analysis", PortfolioPrompt(tier, holdings), "")
}

// PortfolioPrompt builds the portfolio analysis prompt.
func PortfolioPrompt(tier models.RiskTier, holdings []models.Holding) string {
	items := make([]string, len(holdings))
	for i, h := range holdings {
		items[i] = fmt.Sprintf("%s %s %s (%s)", h.Quantity.String(), h.AssetClass.UnitName(), h.Code, h.DisplayName)
	}
	return fmt.Sprintf(`Saya adalah seorang investor dengan profil risiko "%s". Portofolio saya saat ini berisi: %s. `+
		`Berikan analisis mendalam tentang portofolio saya, termasuk kekuatan, kelemahan, potensi risiko, `+
		`dan saran diversifikasi atau penyesuaian strategi jika diperlukan. Format jawaban dalam poin-poin dan penjelasan singkat.`,
		tier.Label(), strings.Join(items, ", "))
}

// DeepDive asks for a qualitative follow-up on an asset after a simulated model run.
func (s *AIService) DeepDive(ctx context.Context, req models.DeepDiveRequest) (*models.StartedResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	title := "Wawasan AI Lanjutan untuk " + code

	if err := s.requirePremium(); err != nil {
		s.denySlot(models.SlotDeepDive, title)
		return nil, err
	}
	if _, err := s.refRepo.AnalysisModel(req.ModelID); err != nil {
		return nil, err
	}

	name := code
	if asset, err := s.refRepo.FindAsset(code); err == nil {
		name = asset.DisplayName
	}
	return s.startSlot(models.SlotDeepDive, title, "deep_dive", DeepDivePrompt(name, code, req.ModelID), "")
}

// DeepDivePrompt builds the deep dive prompt.
func DeepDivePrompt(name, code, modelID string) string {
	return fmt.Sprintf(`Berikan analisis kualitatif mendalam untuk aset %s (%s), termasuk sentimen pasar, `+
		`berita terkini yang relevan (jika ada data simulasi), dan faktor-faktor fundamental yang mungkin `+
		`mempengaruhi pergerakannya dalam jangka pendek hingga menengah. Analisis harus mempertimbangkan model %s `+
		`yang baru saja memberikan hasil.`, name, code, modelID)
}

// ChatPrompt builds the prompt for an AskAI question.
func ChatPrompt(question string) string {
	return fmt.Sprintf(`Pengguna bertanya: "%s". Berikan jawaban yang informatif dan relevan dengan konteks finansial atau investasi. %s`,
		question, expertInstruction)
}

// Chat returns the AskAI conversation
func (s *AIService) Chat() []models.ChatMessage {
	var out []models.ChatMessage
	s.store.View(func(st *state.AppState) {
		out = append([]models.ChatMessage{}, st.Chat...)
	})
	return out
}

func (s *AIService) nextMessageID() string {
	return "msg-" + strconv.FormatUint(s.msgSeq.Add(1), 10)
}

// Ask posts a question to the AskAI conversation. The answer replaces a
// placeholder message once the model responds.
func (s *AIService) Ask(ctx context.Context, question string) (*models.StartedResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if _, err := s.nav.RequirePremium(ctx, models.ViewAskAI); err != nil {
		return nil, err
	}

	userMsg := models.ChatMessage{ID: s.nextMessageID(), Sender: models.SenderUser, Text: question}
	placeholder := models.ChatMessage{ID: s.nextMessageID(), Sender: models.SenderAI, Text: chatPlaceholder, IsHTML: true, Pending: true}
	err := s.store.Update(func(st *state.AppState, em *state.Emitter) error {
		st.Chat = append(st.Chat, userMsg, placeholder)
		em.Emit(models.EventChat, append([]models.ChatMessage{}, st.Chat...))
		return nil
	})
	if err != nil {
		return nil, err
	}

	started := s.jobs.TryGo("chat", func(ctx context.Context) {
		res := s.Generate(ctx, "chat", ChatPrompt(question), expertInstruction)
		s.resolveMessage(placeholder.ID, res)
	})
	if !started {
		s.resolveMessage(placeholder.ID, models.SlotResult{Error: ErrBusy.Error(), HTML: richtext.ErrorHTML(ErrBusy.Error())})
		return nil, ErrBusy
	}
	return &models.StartedResponse{ID: placeholder.ID}, nil
}

// resolveMessage replaces the placeholder with id by the finished answer.
func (s *AIService) resolveMessage(id string, res models.SlotResult) {
	_ = s.store.Update(func(st *state.AppState, em *state.Emitter) error {
		for i := range st.Chat {
			if st.Chat[i].ID != id {
				continue
			}
			st.Chat[i] = models.ChatMessage{ID: id, Sender: models.SenderAI, Text: res.HTML, IsHTML: true}
			em.Emit(models.EventChat, append([]models.ChatMessage{}, st.Chat...))
			return nil
		}
		log.Warnf("Chat message %s no longer exists, answer dropped", id)
		return nil
	})
}

// Slot returns the display state of slot
func (s *AIService) Slot(slot models.Slot) models.SlotState {
	return s.slots.Get(slot)
}
