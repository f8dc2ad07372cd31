package smc

import (
	"testing"
	"time"

	"SmartMoneyAnalyzer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func flat(n int, price float64) models.Series {
	series := make(models.Series, n)
	for i := range series {
		series[i] = models.Bar{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Open:      price,
			High:      price,
			Low:       price,
			Close:     price,
			Volume:    100,
		}
	}
	return series
}

func set(series models.Series, i int, o, h, l, c float64) {
	series[i].Open, series[i].High, series[i].Low, series[i].Close = o, h, l, c
}

func TestAnalyzeShortSeriesIsEmpty(t *testing.T) {
	s := NewAnalyzer(DefaultParams()).Analyze(flat(19, 1.0))

	assert.NotNil(t, s.OrderBlocks)
	assert.Empty(t, s.OrderBlocks)
	assert.Empty(t, s.FairValueGaps)
	assert.Empty(t, s.LiquidityZones)
	assert.Empty(t, s.Sessions)
	assert.Nil(t, s.Sweep)
}

func TestOrderBlockAndBreaker(t *testing.T) {
	a := NewAnalyzer(DefaultParams())

	series := flat(30, 1.0)
	set(series, 20, 1.001, 1.0015, 0.9995, 1.0)
	set(series, 21, 1.0, 1.0045, 0.9998, 1.004)

	obs := a.OrderBlocks(series)
	require.Len(t, obs, 1)
	assert.Equal(t, BullishOrderBlock, obs[0].Type)
	assert.Equal(t, 20, obs[0].Index)
	assert.Equal(t, 0.9995, obs[0].Price)
	assert.Equal(t, StrengthStrong, obs[0].Strength)
	assert.Equal(t, StatusFresh, obs[0].Status)
	assert.Empty(t, a.BreakerBlocks(series, obs))

	for i := 22; i < 30; i++ {
		set(series, i, 0.998, 0.998, 0.998, 0.998)
	}
	obs = a.OrderBlocks(series)
	require.Len(t, obs, 1)
	assert.Equal(t, StatusBroken, obs[0].Status)

	breakers := a.BreakerBlocks(series, obs)
	require.Len(t, breakers, 1)
	assert.Equal(t, BearishBreaker, breakers[0].Type)
	assert.Equal(t, 20, breakers[0].Index)
}

func TestOrderBlocksKeepMostRecent(t *testing.T) {
	series := flat(64, 1.0)
	for k := 0; k < 15; k++ {
		set(series, 3+4*k, 1.001, 1.0015, 0.9995, 1.0)
		set(series, 4+4*k, 1.0, 1.0045, 0.9998, 1.004)
	}

	obs := NewAnalyzer(DefaultParams()).OrderBlocks(series)
	require.Len(t, obs, 10)
	assert.Equal(t, 23, obs[0].Index)
	assert.Equal(t, 59, obs[9].Index)
}

func TestFairValueGap(t *testing.T) {
	a := NewAnalyzer(DefaultParams())

	build := func(nextLow float64) models.Series {
		series := flat(30, 1.006)
		for i := 0; i < 10; i++ {
			set(series, i, 1.0, 1.0, 1.0, 1.0)
		}
		set(series, 10, 1.0, 1.002, 1.0, 1.002)
		set(series, 11, 1.003, 1.005, 1.003, 1.005)
		set(series, 12, 1.005, 1.006, nextLow, 1.006)
		return series
	}

	gaps := a.FairValueGaps(build(1.004))
	require.Len(t, gaps, 1)
	assert.Equal(t, BullishFVG, gaps[0].Type)
	assert.Equal(t, 11, gaps[0].Index)
	assert.Equal(t, 1.003, gaps[0].Top)
	assert.Equal(t, 1.002, gaps[0].Bottom)
	assert.Equal(t, 0.001, gaps[0].GapSize)
	assert.Equal(t, StatusFresh, gaps[0].Status)

	gaps = a.FairValueGaps(build(1.0015))
	require.Len(t, gaps, 1)
	assert.Equal(t, StatusFilled, gaps[0].Status)
}

func TestLiquiditySweepReturnsFirstMatch(t *testing.T) {
	a := NewAnalyzer(DefaultParams())

	series := flat(30, 1.0)
	set(series, 26, 1.0, 1.004, 0.9998, 1.0005)
	set(series, 27, 1.0, 1.0002, 0.996, 0.9995)

	sweep := a.LiquiditySweep(series)
	require.NotNil(t, sweep)
	assert.Equal(t, 26, sweep.Index)
	assert.Equal(t, DirectionBearish, sweep.Direction)
	assert.Equal(t, 1.004, sweep.Price)

	set(series, 26, 1.0, 1.0, 1.0, 1.0)
	sweep = a.LiquiditySweep(series)
	require.NotNil(t, sweep)
	assert.Equal(t, 27, sweep.Index)
	assert.Equal(t, DirectionBullish, sweep.Direction)

	// The forming bar alone never counts.
	latest := flat(30, 1.0)
	set(latest, 29, 1.0, 1.004, 0.9998, 1.0005)
	assert.Nil(t, a.LiquiditySweep(latest))
}

func TestDisplacement(t *testing.T) {
	series := flat(30, 1.0)
	set(series, 29, 1.0, 1.01, 1.0, 1.01)

	found := NewAnalyzer(DefaultParams()).Displacement(series)
	require.Len(t, found, 1)
	assert.Equal(t, DirectionBullish, found[0].Direction)
	assert.Equal(t, 30.0, found[0].Multiplier)
	assert.Equal(t, 29, found[0].Index)

	assert.Empty(t, NewAnalyzer(DefaultParams()).Displacement(flat(30, 1.0)))
}

func TestSessionsOverlap(t *testing.T) {
	series := flat(24, 1.0)
	series[14].High = 1.01

	ranges := NewAnalyzer(DefaultParams()).Sessions(series)
	require.Len(t, ranges, 3)

	assert.Equal(t, "asian", ranges[0].Session)
	assert.Equal(t, 8, ranges[0].Bars)
	assert.Zero(t, ranges[0].Range)

	assert.Equal(t, "london", ranges[1].Session)
	assert.Equal(t, 8, ranges[1].Bars)
	assert.Equal(t, 1.01, ranges[1].High)

	assert.Equal(t, "new_york", ranges[2].Session)
	assert.Equal(t, 9, ranges[2].Bars)
	assert.Equal(t, 1.01, ranges[2].High)
	assert.Equal(t, 0.01, ranges[2].Range)
}

func TestSessionsNeedTimestamps(t *testing.T) {
	series := flat(24, 1.0)
	series[5].Timestamp = time.Time{}

	assert.Empty(t, NewAnalyzer(DefaultParams()).Sessions(series))
}

func TestLiquidityZones(t *testing.T) {
	levels := NewAnalyzer(DefaultParams()).LiquidityZones(flat(30, 1.0))

	var psych int
	for _, z := range levels {
		if z.Type == PsychologicalLevel {
			psych++
			assert.Equal(t, 1.0, z.Price)
		}
	}
	assert.Equal(t, 1, psych)

	series := flat(40, 1.0)
	for i := range series {
		c := 1.0 + 0.0001*float64(i)
		set(series, i, c, c, c, c)
	}
	series[20].High = 1.1

	zones := NewAnalyzer(DefaultParams()).LiquidityZones(series)
	var sellSide []Zone
	psych = 0
	for _, z := range zones {
		switch z.Type {
		case SellSideLiquidity:
			sellSide = append(sellSide, z)
		case PsychologicalLevel:
			psych++
		}
	}
	require.Len(t, sellSide, 1)
	assert.Equal(t, 20, sellSide[0].Index)
	assert.Equal(t, 11, psych)
}

func TestDemandZone(t *testing.T) {
	series := flat(30, 1.005)
	for i := 0; i < 10; i++ {
		set(series, i, 1.0, 1.0, 1.0, 1.0)
	}
	for i := 10; i < 16; i++ {
		if i%2 == 0 {
			set(series, i, 1.0, 1.0006, 0.9999, 1.0005)
		} else {
			set(series, i, 1.0005, 1.0006, 0.9999, 1.0)
		}
	}
	set(series, 16, 1.0, 1.002, 1.0, 1.002)
	set(series, 17, 1.002, 1.0035, 1.002, 1.0035)
	set(series, 18, 1.0035, 1.005, 1.0035, 1.005)

	zones := NewAnalyzer(DefaultParams()).SupplyDemandZones(series)
	require.NotEmpty(t, zones)
	for _, z := range zones {
		assert.Equal(t, DemandZone, z.Type)
		assert.Equal(t, StatusFresh, z.Status)
	}
	newest := zones[len(zones)-1]
	assert.Equal(t, 15, newest.Index)
	assert.Equal(t, StrengthStrong, newest.Strength)
	assert.Equal(t, 1.0006, newest.Top)
	assert.Equal(t, 0.9999, newest.Bottom)
}
