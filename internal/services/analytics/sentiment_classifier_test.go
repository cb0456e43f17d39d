package analytics

import (
	"math"
	"testing"

	"TradeLens/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Bands(t *testing.T) {
	tests := []struct {
		score float64
		want  models.SentimentBand
	}{
		{0.1, models.Neutral},
		{0.10001, models.Positive},
		{-0.1, models.Neutral},
		{-0.10001, models.Negative},
		{0, models.Neutral},
		{0.8, models.Positive},
		{-0.65, models.Negative},
		{1, models.Positive},
		{-1, models.Negative},
	}
	for _, tt := range tests {
		got := Classify(tt.score)
		assert.Equalf(t, tt.want, got.Band, "score %v", tt.score)
		assert.Equalf(t, tt.want.Color(), got.Color, "score %v", tt.score)
	}
}

func TestClassify_Intensity(t *testing.T) {
	assert.InDelta(t, 0.5, Classify(0).Intensity, 1e-12)
	assert.InDelta(t, 1.0, Classify(1).Intensity, 1e-12)
	assert.InDelta(t, 0.0, Classify(-1).Intensity, 1e-12)
	assert.InDelta(t, 0.75, Classify(0.5).Intensity, 1e-12)
}

func TestClassify_ClampsOutOfRange(t *testing.T) {
	hi := Classify(3.5)
	assert.Equal(t, models.Positive, hi.Band)
	assert.Equal(t, 1.0, hi.Intensity)

	lo := Classify(-42)
	assert.Equal(t, models.Negative, lo.Band)
	assert.Equal(t, 0.0, lo.Intensity)

	nan := Classify(math.NaN())
	assert.Equal(t, models.Neutral, nan.Band)
	assert.Equal(t, 0.5, nan.Intensity)
}

func TestClassify_Idempotent(t *testing.T) {
	c := NewSentimentClassifier()
	assert.Equal(t, c.Classify(0.37), c.Classify(0.37))
}

func TestSeverityBand(t *testing.T) {
	assert.Equal(t, models.Negative, SeverityBand("High"))
	assert.Equal(t, models.Negative, SeverityBand("high "))
	assert.Equal(t, models.Neutral, SeverityBand("Medium"))
	assert.Equal(t, models.Neutral, SeverityBand(""))
	assert.Equal(t, "red", SeverityBand("High").Color())
}
