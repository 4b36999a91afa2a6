package models

// Fundamental is one labelled fundamental figure. Values are either numbers or text ("N/A", "18.8%").
type Fundamental struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

// AssetDetails is the static description of a tradable asset.
type AssetDetails struct {
	AssetClass   AssetClass    `json:"asset_class"`
	Code         string        `json:"code"`
	DisplayName  string        `json:"display_name"`
	CurrentPrice float64       `json:"current_price"`
	Fundamentals []Fundamental `json:"fundamentals"`
}

// ChartSeries is the historical price/volume/oscillator series of an asset.
type ChartSeries struct {
	TimeLabels  []string  `json:"time_labels"`
	Prices      []float64 `json:"prices"`
	Volumes     []float64 `json:"volumes"`
	StochasticK []float64 `json:"stochastic_k"`
	StochasticD []float64 `json:"stochastic_d"`
}

// LastPrice returns the most recent price, or 0 for an empty series.
func (c ChartSeries) LastPrice() float64 {
	if len(c.Prices) == 0 {
		return 0
	}
	return c.Prices[len(c.Prices)-1]
}

// AnalysisModel describes a forecasting model offered on the analysis screen.
type AnalysisModel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewsArticle is a static market news item.
type NewsArticle struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Source   string `json:"source"`
	Date     string `json:"date"`
	Snippet  string `json:"snippet"`
	Image    string `json:"image"`
}

// NewsView is the news screen: the list, or the selected article when one is open.
type NewsView struct {
	Articles []NewsArticle `json:"articles"`
	Selected *int          `json:"selected,omitempty"`
	Article  *NewsArticle  `json:"article,omitempty"`
}
