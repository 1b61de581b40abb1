package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/roman-kulish/wifi-link-budget/internal/regression"
)

var notationTitles = map[regression.NotationName]string{
	regression.MathNotation:        "Formula",
	regression.SpreadsheetNotation: "Spreadsheet formula (A2 = bandwidth MHz, B2 = SNR dB)",
	regression.PythonNotation:      "Python function",
	regression.GoNotation:          "Go function",
}

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	samples, err := regression.LoadSamples(config.SamplesFile)
	if err != nil {
		return fmt.Errorf("loading samples: %w", err)
	}

	source := config.SamplesFile
	if source == "" {
		source = "built-in WiFi rates"
	}
	logger.Info("fitting polynomial",
		slog.String("samples", source),
		slog.Int("count", len(samples)),
		slog.Int("degree", config.Degree),
		slog.Int("features", regression.FeatureCount(config.Degree)),
	)

	if err = ctx.Err(); err != nil {
		return err
	}

	var opts []regression.FitOption
	if config.Strict {
		opts = append(opts, regression.WithStrictRank())
	}

	poly, err := regression.Fit(samples, config.Degree, opts...)
	if err != nil {
		return fmt.Errorf("fitting polynomial: %w", err)
	}

	if poly.Degenerate() {
		logger.Warn("samples do not identify every coefficient, reporting the minimum norm solution",
			slog.Int("rank", poly.Rank()),
			slog.Int("features", len(poly.Terms())))
	}

	stats, err := poly.Statistics(samples)
	if err != nil {
		return fmt.Errorf("computing error statistics: %w", err)
	}

	logger.Info("fit complete",
		slog.Group("stats",
			slog.String("rmse", humanize.FtoaWithDigits(stats.RootMeanSquaredError, 4)),
			slog.String("mape", fmt.Sprintf("%0.2f%%", stats.MeanAbsolutePercentageError)),
			slog.String("r2", fmt.Sprintf("%0.4f", stats.RSquared)),
		))

	if config.Verbose {
		for _, term := range poly.Terms() {
			c, _ := poly.Coefficient(term.BW, term.SNR)
			logger.Debug("coefficient", slog.String("term", term.String()), slog.Float64("value", c))
		}
	}

	if err = writeStatistics(config.Out, stats); err != nil {
		return err
	}
	return writeFormulas(config.Out, poly, config.Notations)
}

func writeStatistics(w io.Writer, s regression.Statistics) error {
	_, err := fmt.Fprintf(w, `Error Statistics:
Mean Error: %.2f
Mean Absolute Error: %.2f
Root Mean Squared Error: %.2f
Mean Absolute Percentage Error: %.2f%%
Lowest Error: %.2f
Highest Error: %.2f
Lowest Relative Error: %.2f%%
Highest Relative Error: %.2f%%
Standard Deviation of Errors: %.2f
Median Absolute Error: %.2f
R-squared Score: %.4f
`,
		s.MeanError, s.MeanAbsoluteError, s.RootMeanSquaredError, s.MeanAbsolutePercentageError,
		s.MinAbsoluteError, s.MaxAbsoluteError, s.MinRelativeError, s.MaxRelativeError,
		s.StdDevError, s.MedianAbsoluteError, s.RSquared)
	return err
}

func writeFormulas(w io.Writer, poly *regression.Polynomial, notations []regression.Notation) error {
	for _, n := range notations {
		title, ok := notationTitles[n.Name]
		if !ok {
			title = n.Name.String()
		}
		if _, err := fmt.Fprintf(w, "\n%s:\n%s\n", title, poly.Format(n)); err != nil {
			return err
		}
	}
	return nil
}
