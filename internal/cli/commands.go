package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"SmartMoneyAnalyzer/internal/handlers"
	"SmartMoneyAnalyzer/internal/operations/backtest"
	"SmartMoneyAnalyzer/internal/operations/price"
	"SmartMoneyAnalyzer/internal/repositories"
	"SmartMoneyAnalyzer/internal/services/analysis"

	"github.com/spf13/cobra"
)

type seriesFlags struct {
	symbol    string
	timeframe string
	limit     int
	source    string
}

func (f *seriesFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.symbol, "symbol", "", "instrument symbol, e.g. BTCUSDT")
	cmd.Flags().StringVar(&f.timeframe, "timeframe", "1h", "bar timeframe")
	cmd.Flags().IntVar(&f.limit, "limit", 200, "number of bars to load")
	cmd.Flags().StringVar(&f.source, "source", "", "series source: binance or store (default from config)")
	_ = cmd.MarkFlagRequired("symbol")
}

func (a *App) analysisHandler(source string, persist bool) (*handlers.AnalysisHandler, error) {
	provider, err := a.provider(source)
	if err != nil {
		return nil, err
	}

	var store handlers.SignalStore
	if persist {
		db, err := a.database()
		if err != nil {
			return nil, err
		}
		store = repositories.NewSignalRepository(db)
	}
	return handlers.NewAnalysisHandler(analysis.NewMarketAnalyzer(a.cfg.Strategy), provider, store, a.metrics, a.log), nil
}

func (a *App) backtestHandler(source string, persist bool) (*handlers.BacktestHandler, error) {
	provider, err := a.provider(source)
	if err != nil {
		return nil, err
	}

	var runs handlers.RunStore
	if persist {
		db, err := a.database()
		if err != nil {
			return nil, err
		}
		runs = repositories.NewBacktestRepository(db)
	}
	bt := backtest.NewBacktester(provider, analysis.NewMarketAnalyzer(a.cfg.Strategy), a.cfg.Backtest)
	return handlers.NewBacktestHandler(bt, runs, a.metrics, a.log), nil
}

func analyzeCmd(app *App) *cobra.Command {
	var (
		flags   seriesFlags
		persist bool
		watch   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full analysis and print it as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := app.analysisHandler(flags.source, persist)
			if err != nil {
				return err
			}

			if watch > 0 {
				h.Watch(cmd.Context(), []string{flags.symbol}, flags.timeframe, flags.limit, watch, persist, func(r analysis.AnalysisResult) {
					if err := writeJSON(cmd.OutOrStdout(), r); err != nil {
						app.log.Error().Err(err).Msg("failed to write analysis")
					}
				})
				return nil
			}

			result, err := h.Analyze(cmd.Context(), flags.symbol, flags.timeframe, flags.limit, persist)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&persist, "persist", false, "store emitted signals")
	cmd.Flags().DurationVar(&watch, "watch", 0, "repeat the analysis at this interval until interrupted")
	return cmd
}

func narrateCmd(app *App) *cobra.Command {
	var flags seriesFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "narrate",
		Short: "Print the live market narration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := app.analysisHandler(flags.source, false)
			if err != nil {
				return err
			}
			result, err := h.Narrate(cmd.Context(), flags.symbol, flags.timeframe, flags.limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Narration)
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full narration result as JSON")
	return cmd
}

func backtestCmd(app *App) *cobra.Command {
	var (
		symbol   string
		strategy string
		capital  float64
		source   string
		persist  bool
	)

	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Replay the signal generator over history and print the result as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := app.backtestHandler(source, persist)
			if err != nil {
				return err
			}
			if capital <= 0 {
				capital = app.cfg.Backtest.InitialCapital
			}
			result, err := h.Run(cmd.Context(), symbol, strategy, capital, persist)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "instrument symbol")
	cmd.Flags().StringVar(&strategy, "strategy", "smc_ict", "strategy label recorded with the result")
	cmd.Flags().Float64Var(&capital, "capital", 0, "initial capital (default from config)")
	cmd.Flags().StringVar(&source, "source", "", "series source: binance or store")
	cmd.Flags().BoolVar(&persist, "persist", false, "store the run and its trades")
	_ = cmd.MarkFlagRequired("symbol")
	return cmd
}

func backtestMultiCmd(app *App) *cobra.Command {
	var (
		symbol     string
		strategy   string
		iterations int
		source     string
		persist    bool
	)

	cmd := &cobra.Command{
		Use:   "backtest-multi",
		Short: "Run the backtest over growing windows and summarize consistency",
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := app.backtestHandler(source, persist)
			if err != nil {
				return err
			}
			result, err := h.RunMultiple(cmd.Context(), symbol, strategy, iterations, persist)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "instrument symbol")
	cmd.Flags().StringVar(&strategy, "strategy", "smc_ict", "strategy label recorded with the result")
	cmd.Flags().IntVar(&iterations, "iterations", 0, "number of runs (default from config)")
	cmd.Flags().StringVar(&source, "source", "", "series source: binance or store")
	cmd.Flags().BoolVar(&persist, "persist", false, "store every run and its trades")
	_ = cmd.MarkFlagRequired("symbol")
	return cmd
}

func strategiesCmd(_ *App) *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the strategy catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
			for _, s := range backtest.Strategies() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Name, s.Description)
			}
			return w.Flush()
		},
	}
}

func ingestCmd(app *App) *cobra.Command {
	var (
		symbols   []string
		timeframe string
		days      int
		follow    bool
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Copy exchange candles into the price store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(symbols) == 0 {
				symbols = app.cfg.Symbols
			}
			if _, ok := price.TimeframeDuration(timeframe); !ok {
				return fmt.Errorf("unsupported timeframe %q", timeframe)
			}

			db, err := app.database()
			if err != nil {
				return err
			}
			recorder := price.NewPriceRecorder(app.binanceProvider(), repositories.NewPriceRepository(db), app.log)

			stored, err := handlers.NewPriceHandler(recorder, app.log).Ingest(cmd.Context(), symbols, timeframe, days, follow)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "stored %d new candles\n", stored)
			return err
		},
	}

	cmd.Flags().StringSliceVar(&symbols, "symbol", nil, "symbols to ingest (default from config)")
	cmd.Flags().StringVar(&timeframe, "timeframe", "1h", "bar timeframe")
	cmd.Flags().IntVar(&days, "days", 7, "days of history to backfill")
	cmd.Flags().BoolVar(&follow, "follow", false, "keep recording new candles until interrupted")
	return cmd
}

func (a *App) historyHandler() (*handlers.HistoryHandler, error) {
	db, err := a.database()
	if err != nil {
		return nil, err
	}
	return handlers.NewHistoryHandler(repositories.NewSignalRepository(db), repositories.NewBacktestRepository(db), a.log), nil
}

func signalsCmd(app *App) *cobra.Command {
	var (
		symbol string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "signals",
		Short: "List stored signals for a symbol, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := app.historyHandler()
			if err != nil {
				return err
			}
			signals, err := h.RecentSignals(cmd.Context(), symbol, limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tTIMEFRAME\tDIRECTION\tGRADE\tSCORE\tENTRY\tSTOP\tTARGET")
			for _, s := range signals {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.5f\t%.5f\t%.5f\n",
					s.SignalTime.UTC().Format(time.RFC3339), s.Timeframe, s.Direction, s.Grade, s.Score,
					s.EntryPrice, s.StopLoss, s.TakeProfit)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "instrument symbol")
	cmd.Flags().IntVar(&limit, "limit", 20, "number of signals to list")
	_ = cmd.MarkFlagRequired("symbol")
	return cmd
}

func runCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run <id>",
		Short: "Print a stored backtest run with its trades as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := app.historyHandler()
			if err != nil {
				return err
			}
			run, err := h.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), run)
		},
	}
}
