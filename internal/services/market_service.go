package services

import (
	"context"

	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/repository"
	"github.com/epeers/investdash/internal/state"
)

// MarketService serves the static market data and the news screen
type MarketService struct {
	store   *state.Store
	refRepo *repository.ReferenceRepository
}

// NewMarketService creates a new MarketService
func NewMarketService(store *state.Store, refRepo *repository.ReferenceRepository) *MarketService {
	return &MarketService{store: store, refRepo: refRepo}
}

// ListAssets returns the assets of class, or of every class when class is empty.
func (s *MarketService) ListAssets(class string) ([]models.AssetDetails, error) {
	if class == "" {
		return append(s.refRepo.ListAssets(models.AssetClassEquity), s.refRepo.ListAssets(models.AssetClassCrypto)...), nil
	}
	c, err := models.ParseAssetClass(class)
	if err != nil {
		return nil, invalid("class", "must be equity or crypto")
	}
	return s.refRepo.ListAssets(c), nil
}

// Asset returns one asset with its fundamentals
func (s *MarketService) Asset(class, code string) (*models.AssetDetails, error) {
	c, err := models.ParseAssetClass(class)
	if err != nil {
		return nil, invalid("class", "must be equity or crypto")
	}
	return s.refRepo.LookupAsset(c, code)
}

// Chart returns the price series of an asset
func (s *MarketService) Chart(class, code string) (*models.ChartSeries, error) {
	c, err := models.ParseAssetClass(class)
	if err != nil {
		return nil, invalid("class", "must be equity or crypto")
	}
	return s.refRepo.Chart(c, code)
}

// News returns the news screen: the list, plus the open article if there is one.
func (s *MarketService) News() models.NewsView {
	view := models.NewsView{Articles: s.refRepo.News()}
	s.store.View(func(st *state.AppState) {
		if st.SelectedArticle != nil {
			i := *st.SelectedArticle
			view.Selected = &i
		}
	})
	if view.Selected != nil {
		if a, err := s.refRepo.Article(*view.Selected); err == nil {
			view.Article = a
		}
	}
	return view
}

// SelectArticle opens the article at index
func (s *MarketService) SelectArticle(ctx context.Context, index int) (*models.NewsArticle, error) {
	article, err := s.refRepo.Article(index)
	if err != nil {
		return nil, err
	}
	err = s.store.Update(func(st *state.AppState, em *state.Emitter) error {
		i := index
		st.SelectedArticle = &i
		em.Emit(models.EventNews, index)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return article, nil
}

// BackToNews closes the open article
func (s *MarketService) BackToNews(ctx context.Context) error {
	return s.store.Update(func(st *state.AppState, em *state.Emitter) error {
		if st.SelectedArticle == nil {
			return nil
		}
		st.SelectedArticle = nil
		em.Emit(models.EventNews, nil)
		return nil
	})
}
