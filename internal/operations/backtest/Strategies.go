package backtest

// Strategy is a named preset users can pick. The id is carried into results
// as a label; every preset runs the same confluence pipeline.
type Strategy struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var strategies = []Strategy{
	{ID: "smc_ict", Name: "SMC/ICT Strategy", Description: "Smart Money Concepts with ICT methodology"},
	{ID: "liquidity_grab", Name: "Liquidity Grab", Description: "Asian session liquidity sweep strategy"},
	{ID: "order_block", Name: "Order Block Trading", Description: "Trade based on institutional order blocks"},
	{ID: "fvg_strategy", Name: "Fair Value Gap", Description: "Trade imbalances and fair value gaps"},
	{ID: "breakout_retest", Name: "Breakout & Retest", Description: "Classic breakout with confirmation"},
	{ID: "mean_reversion", Name: "Mean Reversion", Description: "Statistical mean reversion strategy"},
	{ID: "momentum", Name: "Momentum Strategy", Description: "Trend following with momentum indicators"},
	{ID: "multi_timeframe", Name: "Multi-Timeframe", Description: "Confluence across multiple timeframes"},
}

// Strategies returns a copy of the catalog in display order.
func Strategies() []Strategy {
	out := make([]Strategy, len(strategies))
	copy(out, strategies)
	return out
}

// LookupStrategy reports the catalog entry for id. Unknown ids come back
// named after themselves.
func LookupStrategy(id string) (Strategy, bool) {
	for _, s := range strategies {
		if s.ID == id {
			return s, true
		}
	}
	return Strategy{ID: id, Name: id}, false
}
