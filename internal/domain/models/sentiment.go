package models

// SentimentBand is the discrete class of a sentiment score.
type SentimentBand string

const (
	Positive SentimentBand = "Positive"
	Neutral  SentimentBand = "Neutral"
	Negative SentimentBand = "Negative"
)

// Color is the display token every view uses for the band.
func (b SentimentBand) Color() string {
	switch b {
	case Positive:
		return "green"
	case Negative:
		return "red"
	default:
		return "yellow"
	}
}

// Sentiment is a classified score.
type Sentiment struct {
	Band      SentimentBand `json:"band"`
	Color     string        `json:"color"`
	Intensity float64       `json:"intensity"`
}

// NewsItem is a headline attached to a sentiment payload.
type NewsItem struct {
	Title  string `json:"title"`
	Date   string `json:"date"`
	Source string `json:"source"`
}

// MarketMood is the market-wide sentiment with its classification.
type MarketMood struct {
	Score     float64    `json:"score"`
	Label     string     `json:"label"`
	News      []NewsItem `json:"representative_news"`
	Sentiment Sentiment  `json:"sentiment"`
}

// StockSentiment is per-symbol sentiment with its classification.
type StockSentiment struct {
	Symbol    string     `json:"symbol"`
	Score     float64    `json:"score"`
	Label     string     `json:"label"`
	News      []NewsItem `json:"news"`
	Sentiment Sentiment  `json:"sentiment"`
}

// Anomaly is a backend-detected market anomaly.
type Anomaly struct {
	Symbol   string        `json:"symbol"`
	Date     string        `json:"date"`
	Reason   string        `json:"reason"`
	Details  string        `json:"details"`
	Severity string        `json:"severity"`
	Band     SentimentBand `json:"band"`
	Color    string        `json:"color"`
}

// SymbolMove is a gainer or loser entry.
type SymbolMove struct {
	Symbol string  `json:"Symbol"`
	Diff   float64 `json:"diff"`
}

// TrendPoint is one bar of the market volume trend.
type TrendPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MarketSummary is the dashboard summary card payload.
type MarketSummary struct {
	IndexValue      float64      `json:"index_value"`
	IndexChange     float64      `json:"index_change"`
	VolumeValue     string       `json:"volume_value"`
	VolumeChange    float64      `json:"volume_change"`
	GainersCount    int          `json:"gainers_count"`
	LosersCount     int          `json:"losers_count"`
	TopGainers      []SymbolMove `json:"top_gainers"`
	TopLosers       []SymbolMove `json:"top_losers"`
	MarketTrends    []TrendPoint `json:"market_trends"`
	RecentAnomalies []Anomaly    `json:"recent_anomalies"`
}
