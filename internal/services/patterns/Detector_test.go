package patterns

import (
	"math"
	"testing"
	"time"

	"SmartMoneyAnalyzer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func bar(o, h, l, c float64) models.Bar {
	return models.Bar{Open: o, High: h, Low: l, Close: c, Volume: 100}
}

// withTail prefixes neutral zero-range bars so only the given bars can match.
func withTail(tail ...models.Bar) models.Series {
	series := make(models.Series, 0, 10+len(tail))
	for i := 0; i < 10; i++ {
		series = append(series, bar(1, 1, 1, 1))
	}
	series = append(series, tail...)
	for i := range series {
		series[i].Timestamp = start.Add(time.Duration(i) * time.Hour)
	}
	return series
}

func types(found []Pattern) []string {
	out := make([]string, len(found))
	for i, p := range found {
		out[i] = p.Type
	}
	return out
}

func TestCandlePatterns(t *testing.T) {
	tests := []struct {
		name      string
		tail      []models.Bar
		kind      string
		direction string
		strength  string
	}{
		{"hammer", []models.Bar{bar(1.0, 1.011, 0.975, 1.01)}, Hammer, DirectionBullish, StrengthModerate},
		{"hanging man", []models.Bar{bar(1.01, 1.0105, 0.96, 1.0)}, HangingMan, DirectionBearish, StrengthStrong},
		{"shooting star", []models.Bar{bar(1.01, 1.05, 0.9995, 1.0)}, ShootingStar, DirectionBearish, StrengthStrong},
		{"inverted hammer", []models.Bar{bar(1.0, 1.035, 0.9995, 1.01)}, InvertedHammer, DirectionBullish, StrengthModerate},
		{"doji", []models.Bar{bar(1.0, 1.01, 0.99, 1.0005)}, Doji, DirectionNeutral, StrengthModerate},
		{"marubozu", []models.Bar{bar(1.0, 1.02, 1.0, 1.02)}, Marubozu, DirectionBullish, StrengthStrong},
		{"bullish engulfing", []models.Bar{
			bar(1.01, 1.011, 0.999, 1.0),
			bar(0.998, 1.016, 0.997, 1.015),
		}, BullishEngulfing, DirectionBullish, StrengthStrong},
		{"bearish harami", []models.Bar{
			bar(1.0, 1.022, 0.998, 1.02),
			bar(1.015, 1.016, 1.009, 1.01),
		}, BearishHarami, DirectionBearish, StrengthModerate},
		{"tweezer top", []models.Bar{
			bar(1.0, 1.02, 0.995, 1.01),
			bar(1.01, 1.02, 0.99, 1.0),
		}, TweezerTop, DirectionBearish, StrengthModerate},
		{"morning star", []models.Bar{
			bar(1.02, 1.021, 0.998, 1.0),
			bar(0.999, 1.0, 0.997, 0.9995),
			bar(1.0, 1.016, 0.999, 1.015),
		}, MorningStar, DirectionBullish, StrengthStrong},
		{"three white soldiers", []models.Bar{
			bar(1.0, 1.012, 0.998, 1.01),
			bar(1.005, 1.017, 1.003, 1.015),
			bar(1.01, 1.022, 1.008, 1.02),
		}, ThreeWhiteSoldiers, DirectionBullish, StrengthStrong},
	}

	detector := NewDetector(DefaultParams())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := withTail(tt.tail...)
			found := detector.DetectAll(series)

			require.Equal(t, []string{tt.kind}, types(found))
			assert.Equal(t, tt.direction, found[0].Direction)
			assert.Equal(t, tt.strength, found[0].Strength)
			assert.Equal(t, len(series)-1, found[0].Index)
			assert.Equal(t, series.Last().Timestamp, found[0].Timestamp)
			assert.NotEmpty(t, found[0].Description)
		})
	}
}

func TestTweezerIgnoresColour(t *testing.T) {
	series := withTail(
		bar(10, 12, 9.5, 11),
		bar(10.5, 12, 10, 11.5),
	)
	found := NewDetector(DefaultParams()).DetectAll(series)

	require.Equal(t, []string{TweezerTop}, types(found))
	assert.Equal(t, 12.0, found[0].Price)
	assert.Equal(t, DirectionBearish, found[0].Direction)
}

func TestTweezerPrices(t *testing.T) {
	series := withTail(
		bar(1.0, 1.02, 0.99, 1.01),
		bar(1.01, 1.0201, 0.9901, 1.0),
	)
	found := NewDetector(DefaultParams()).DetectAll(series)

	require.Equal(t, []string{TweezerTop, TweezerBottom}, types(found))
	assert.Equal(t, 1.0201, found[0].Price)
	assert.Equal(t, 0.99, found[1].Price)
}

func TestDetectAllNeedsHistory(t *testing.T) {
	found := NewDetector(DefaultParams()).DetectAll(withTail()[:9])
	assert.NotNil(t, found)
	assert.Empty(t, found)
}

func TestOverlappingPatternsAreKept(t *testing.T) {
	// The last soldier is also a marubozu; both calls survive in order.
	series := withTail(
		bar(1.0, 1.012, 0.998, 1.01),
		bar(1.005, 1.017, 1.003, 1.015),
		bar(1.01, 1.03, 1.01, 1.03),
	)
	found := NewDetector(DefaultParams()).DetectAll(series)

	assert.Equal(t, []string{Marubozu, ThreeWhiteSoldiers}, types(found))
	assert.Equal(t, found[0].Index, found[1].Index)
}

func TestChartRange(t *testing.T) {
	var tail []models.Bar
	for i := 0; i < 30; i++ {
		if i%2 == 0 {
			tail = append(tail, bar(1.0, 1.01, 1.0, 1.0))
		} else {
			tail = append(tail, bar(1.01, 1.01, 1.0, 1.01))
		}
	}
	found := NewDetector(DefaultParams()).DetectAll(withTail(tail...))

	var rng *Pattern
	for i := range found {
		if found[i].Type == Range {
			rng = &found[i]
		}
	}
	require.NotNil(t, rng)
	assert.Equal(t, DirectionNeutral, rng.Direction)
	assert.Equal(t, 1.01, *rng.Resistance)
	assert.Equal(t, 1.0, *rng.Support)
}

func TestSymmetricTriangle(t *testing.T) {
	series := make(models.Series, 40)
	for i := range series {
		phase := float64(i % 10)
		wave := 1 - phase/2.5
		if phase > 5 {
			wave = -1 + (phase-5)/2.5
		}
		c := 1.0 + 0.02*(1-float64(i)/50)*wave
		series[i] = models.Bar{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Open:      c,
			High:      c + 0.001,
			Low:       c - 0.001,
			Close:     c,
		}
	}

	found := NewDetector(DefaultParams()).DetectAll(series)
	assert.Contains(t, types(found), SymmetricTriangle)
	assert.NotContains(t, types(found), AscendingTriangle)
	assert.NotContains(t, types(found), DescendingTriangle)
}

func TestSwingSlope(t *testing.T) {
	values := []float64{5, 4, 3, 2, 1}

	slope, ok := swingSlope(values, []int{0, 2, 3, 4}, 3)
	assert.True(t, ok)
	assert.InDelta(t, -2, slope, 1e-12)

	_, ok = swingSlope(values, []int{1}, 3)
	assert.False(t, ok)
	assert.False(t, math.IsNaN(slope))
}
