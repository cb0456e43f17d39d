package analytics

import (
	"math"
	"strings"

	"TradeLens/internal/domain/models"
	domsvc "TradeLens/internal/domain/service"
)

// bandThreshold separates Neutral from the outer bands. Both bounds are exclusive.
const bandThreshold = 0.1

// Classify maps a sentiment score in [-1, 1] to its band and intensity.
// It is the only place the band thresholds live; market mood, stock
// sentiment and anomaly coloring all go through it.
func Classify(score float64) models.Sentiment {
	if math.IsNaN(score) {
		score = 0
	}
	score = clamp(score, -1, 1)

	band := models.Neutral
	switch {
	case score > bandThreshold:
		band = models.Positive
	case score < -bandThreshold:
		band = models.Negative
	}
	return models.Sentiment{
		Band:      band,
		Color:     band.Color(),
		Intensity: clamp((score+1)/2, 0, 1),
	}
}

// SeverityBand colors an anomaly severity label: High is Negative, anything else Neutral.
func SeverityBand(severity string) models.SentimentBand {
	if strings.EqualFold(strings.TrimSpace(severity), "high") {
		return models.Negative
	}
	return models.Neutral
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// SentimentClassifier exposes Classify and SeverityBand behind the service interface.
type SentimentClassifier struct{}

func NewSentimentClassifier() *SentimentClassifier { return &SentimentClassifier{} }

func (SentimentClassifier) Classify(score float64) models.Sentiment { return Classify(score) }

func (SentimentClassifier) SeverityBand(severity string) models.SentimentBand {
	return SeverityBand(severity)
}

var _ domsvc.SentimentClassifier = (*SentimentClassifier)(nil)
