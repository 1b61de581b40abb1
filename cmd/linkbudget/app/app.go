package app

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jszwec/csvutil"

	"github.com/roman-kulish/wifi-link-budget/internal/chart"
	"github.com/roman-kulish/wifi-link-budget/internal/linkbudget"
	"github.com/roman-kulish/wifi-link-budget/internal/regression"
)

const (
	chartTitle  = "Throughput vs. Distance"
	chartXLabel = "Distance (meters)"
	chartYLabel = "Throughput (Mbit/s)"

	seriesThroughput = "TCP Throughput"
	seriesPolynomial = "Polynomial Formula"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	wallLoss, err := linkbudget.WallLossDb(config.Walls, config.WallTable())
	if err != nil {
		return fmt.Errorf("computing wall loss: %w", err)
	}

	radio := config.Radio
	radio.WallLossDb += wallLoss

	params, err := linkbudget.New(radio)
	if err != nil {
		return fmt.Errorf("creating radio parameters: %w", err)
	}

	logger.Info("radio parameters",
		slog.Group("radio",
			slog.String("frequency", humanize.SIWithDigits(params.FrequencyHz(), 2, "Hz")),
			slog.String("bandwidth", humanize.SIWithDigits(params.BandwidthHz(), 2, "Hz")),
			slog.String("txPower", fmt.Sprintf("%0.2fdBm", params.TxPowerDbm())),
			slog.String("noise", fmt.Sprintf("%0.2fdBm", params.TotalNoiseDbm())),
			slog.String("wallLoss", fmt.Sprintf("%0.2fdB", params.WallLossDb())),
			slog.Int("spatialStreams", params.SpatialStreams()),
		))

	distances, err := linkbudget.Distances(config.Sweep.Start, config.Sweep.End, config.Sweep.Step)
	if err != nil {
		return err
	}

	points, err := params.Sweep(ctx, distances)
	if err != nil {
		return fmt.Errorf("sweeping distances: %w", err)
	}

	logSummary(points, config.Sweep.SummaryEvery, logger)

	var poly *regression.Polynomial
	if config.Polynomial.Enabled {
		if poly, err = fitPolynomial(&config.Polynomial, logger); err != nil {
			return err
		}
	}

	if config.Chart.Output != "" {
		if err = renderChart(&config.Chart, params, points, poly, logger); err != nil {
			return err
		}
	}

	if config.Table.Output != "" {
		if err = writeTable(config.Table.Output, points); err != nil {
			return fmt.Errorf("writing sweep table: %w", err)
		}
	}

	return nil
}

// logSummary logs the budget at every multiple of the interval.
func logSummary(points []linkbudget.Point, every float64, logger *slog.Logger) {
	if every <= 0 {
		return
	}

	for _, pt := range points {
		if r := math.Mod(pt.DistanceM, every); r > 1e-9 && every-r > 1e-9 {
			continue
		}

		logger.Info("link budget",
			slog.String("distance", fmt.Sprintf("%gm", pt.DistanceM)),
			slog.String("totalPathLoss", fmt.Sprintf("%0.2fdB", pt.TotalPathLossDb)),
			slog.String("rxPower", fmt.Sprintf("%0.2fdBm", pt.RxPowerDbm)),
			slog.String("snr", fmt.Sprintf("%0.2fdB", pt.SNRDb)),
			slog.String("throughput", humanize.SIWithDigits(pt.ThroughputMbps*1e6, 2, "bit/s")),
		)
	}
}

func fitPolynomial(config *PolynomialConfig, logger *slog.Logger) (*regression.Polynomial, error) {
	samples, err := regression.LoadSamples(config.Samples)
	if err != nil {
		return nil, fmt.Errorf("loading samples: %w", err)
	}

	poly, err := regression.Fit(samples, config.Degree)
	if err != nil {
		return nil, fmt.Errorf("fitting polynomial: %w", err)
	}

	if poly.Degenerate() {
		logger.Warn("polynomial fit is rank deficient, coefficients are the minimum norm solution",
			slog.Int("rank", poly.Rank()),
			slog.Int("features", len(poly.Terms())))
	}
	logger.Debug("polynomial formula", slog.String("formula", poly.String()))

	return poly, nil
}

func renderChart(config *ChartConfig, params *linkbudget.RadioParameters, points []linkbudget.Point, poly *regression.Polynomial, logger *slog.Logger) error {
	format, err := chart.ParseImageFormat(string(config.Format))
	if err != nil {
		return err
	}

	data := &chart.Data{
		Title:  chartTitle,
		XLabel: chartXLabel,
		YLabel: chartYLabel,
		Info: []string{fmt.Sprintf("%s, %s channel, %dx%d MIMO, %0.1f dBm Tx, %0.1f dB wall loss",
			humanize.SIWithDigits(params.FrequencyHz(), 2, "Hz"),
			humanize.SIWithDigits(params.BandwidthHz(), 0, "Hz"),
			params.Config().TransmitAntennas, params.Config().ReceiveAntennas,
			params.TxPowerDbm(), params.WallLossDb())},
	}

	throughput := chart.Series{Name: seriesThroughput}
	for _, pt := range points {
		throughput.X = append(throughput.X, pt.DistanceM)
		throughput.Y = append(throughput.Y, pt.ThroughputMbps)
	}
	data.Series = append(data.Series, throughput)

	if poly != nil {
		bw := params.BandwidthHz() / 1e6
		overlay := chart.Series{Name: seriesPolynomial}
		for _, pt := range points {
			overlay.X = append(overlay.X, pt.DistanceM)
			overlay.Y = append(overlay.Y, poly.Evaluate(bw, pt.SNRDb))
		}
		data.Series = append(data.Series, overlay)
	}

	renderer, err := chart.NewRenderer(config.renderConfig())
	if err != nil {
		return fmt.Errorf("creating chart renderer: %w", err)
	}

	outputFile := config.OutputFile()
	logger.Info("rendering chart",
		slog.Group("image",
			slog.String("destination", outputFile),
			slog.String("format", string(format)),
			slog.String("theme", string(config.Theme)),
			slog.Int("series", len(data.Series)),
		))

	img, err := renderer.Render(data)
	if err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer out.Close()

	if err = chart.Encode(out, img, format); err != nil {
		return fmt.Errorf("encoding chart: %w", err)
	}
	return out.Close()
}

func writeTable(output string, points []linkbudget.Point) error {
	data, err := csvutil.Marshal(points)
	if err != nil {
		return err
	}

	if output == TableStdout {
		_, err = os.Stdout.Write(data)
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err = f.Write(data); err != nil {
		return err
	}
	return f.Close()
}
