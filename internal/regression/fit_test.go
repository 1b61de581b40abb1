package regression

import (
	"errors"
	"math"
	"testing"
)

func TestFeaturesOrder(t *testing.T) {
	expected := []Term{
		{0, 0},
		{1, 0}, {0, 1},
		{2, 0}, {1, 1}, {0, 2},
	}

	got := Features(2)
	if len(got) != len(expected) {
		t.Fatalf("Expected %d terms, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Term %d: expected %v, got %v", i, expected[i], got[i])
		}
	}
}

func TestFeaturesInvariant(t *testing.T) {
	for degree := 0; degree <= 7; degree++ {
		terms := Features(degree)
		if len(terms) != FeatureCount(degree) {
			t.Errorf("degree %d: expected %d terms, got %d", degree, FeatureCount(degree), len(terms))
		}

		seen := make(map[Term]bool)
		prevDegree := 0
		for _, term := range terms {
			if term.BW < 0 || term.SNR < 0 || term.Degree() > degree {
				t.Errorf("degree %d: invalid term %v", degree, term)
			}
			if term.Degree() < prevDegree {
				t.Errorf("degree %d: term %v out of order", degree, term)
			}
			if seen[term] {
				t.Errorf("degree %d: duplicate term %v", degree, term)
			}
			seen[term] = true
			prevDegree = term.Degree()
		}
	}

	if n := FeatureCount(DefaultDegree); n != 21 {
		t.Errorf("expected 21 features at degree 5, got %d", n)
	}
}

func TestFitRecoversPolynomial(t *testing.T) {
	truth, err := NewPolynomial(2, 5, map[Term]float64{
		{1, 0}: 0.5,
		{0, 1}: -2,
		{2, 0}: 0.001,
		{1, 1}: 0.01,
		{0, 2}: 0.3,
	})
	if err != nil {
		t.Fatalf("NewPolynomial: %v", err)
	}

	var samples SampleSet
	for _, bw := range []float64{20, 40, 80, 160} {
		for snr := 0.0; snr <= 30; snr += 3 {
			samples = append(samples, Sample{Bandwidth: bw, SNR: snr, Rate: truth.Evaluate(bw, snr)})
		}
	}

	p, err := Fit(samples, 2, WithStrictRank())
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if p.Degenerate() {
		t.Errorf("expected a full rank fit, got rank %d", p.Rank())
	}

	if math.Abs(p.Intercept()-5) > 1e-6 {
		t.Errorf("intercept: expected 5, got %g", p.Intercept())
	}
	for term, expected := range truth.CoefficientMap() {
		got, ok := p.Coefficient(term.BW, term.SNR)
		if !ok {
			t.Fatalf("missing coefficient for %v", term)
		}
		if math.Abs(got-expected) > 1e-6 {
			t.Errorf("coefficient %v: expected %g, got %g", term, expected, got)
		}
	}

	stats, err := p.Statistics(samples)
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.MaxAbsoluteError > 1e-6 || math.Abs(stats.RSquared-1) > 1e-9 {
		t.Errorf("expected an exact fit, got %+v", stats)
	}
}

func TestFitWiFiSamples(t *testing.T) {
	samples := WiFiSamples()
	if len(samples) != 29 {
		t.Fatalf("Expected 29 samples, got %d", len(samples))
	}

	p, err := Fit(samples, DefaultDegree)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	// three distinct bandwidths cannot identify BW^3 and above
	if !p.Degenerate() {
		t.Errorf("expected a rank deficient fit, got rank %d of %d", p.Rank(), len(p.Terms()))
	}

	stats, err := p.Statistics(samples)
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.RSquared < 0.95 {
		t.Errorf("expected R² above 0.95, got %g", stats.RSquared)
	}
	if stats.MinAbsoluteError > stats.MedianAbsoluteError || stats.MedianAbsoluteError > stats.MaxAbsoluteError {
		t.Errorf("inconsistent absolute errors: %+v", stats)
	}
	if stats.MinRelativeError > stats.MaxRelativeError {
		t.Errorf("inconsistent relative errors: %+v", stats)
	}

	// 20 MHz at 11 dB is a training point observed at 28.9 Mbit/s
	predicted := p.Evaluate(20, 11)
	relErr := math.Abs(predicted-28.9) / 28.9 * 100
	if relErr > stats.MaxRelativeError+1e-9 {
		t.Errorf("prediction %g at (20, 11): relative error %g%% exceeds max %g%%", predicted, relErr, stats.MaxRelativeError)
	}
}

func TestFitTooFewSamples(t *testing.T) {
	samples := WiFiSamples()[:10]

	_, err := Fit(samples, DefaultDegree)
	if !errors.Is(err, ErrIllConditionedFit) {
		t.Fatalf("expected ErrIllConditionedFit, got %v", err)
	}

	// the same samples identify a plane
	if _, err = Fit(samples, 1); err != nil {
		t.Errorf("degree 1: unexpected error %v", err)
	}
}

func TestFitHugeDegree(t *testing.T) {
	for _, degree := range []int{len(WiFiSamples()), 100_000, 5_000_000_000, math.MaxInt} {
		if _, err := Fit(WiFiSamples(), degree); !errors.Is(err, ErrIllConditionedFit) {
			t.Errorf("degree %d: expected ErrIllConditionedFit, got %v", degree, err)
		}
	}

	if n := FeatureCount(math.MaxInt); n != math.MaxInt {
		t.Errorf("Expected FeatureCount to saturate at %d, got %d", math.MaxInt, n)
	}
	if n := FeatureCount(5); n != 21 {
		t.Errorf("Expected 21 features for degree 5, got %d", n)
	}
}

func TestFitStrictRank(t *testing.T) {
	_, err := Fit(WiFiSamples(), DefaultDegree, WithStrictRank())
	if !errors.Is(err, ErrIllConditionedFit) {
		t.Fatalf("expected ErrIllConditionedFit, got %v", err)
	}
}

func TestFitCollinearSamples(t *testing.T) {
	var samples SampleSet
	for snr := 0.0; snr < 12; snr++ {
		samples = append(samples, Sample{Bandwidth: 20, SNR: snr, Rate: 3 + 2*snr})
	}

	// a single bandwidth leaves the BW column constant
	if _, err := Fit(samples, 1, WithStrictRank()); !errors.Is(err, ErrIllConditionedFit) {
		t.Fatalf("expected ErrIllConditionedFit, got %v", err)
	}

	p, err := Fit(samples, 1)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if p.Rank() != 1 {
		t.Errorf("expected rank 1, got %d", p.Rank())
	}
	if c, _ := p.Coefficient(1, 0); math.Abs(c) > 1e-12 {
		t.Errorf("expected a zero bandwidth coefficient, got %g", c)
	}
	if got := p.Evaluate(20, 5); math.Abs(got-13) > 1e-9 {
		t.Errorf("expected 13, got %g", got)
	}
}

func TestFitInvalidInput(t *testing.T) {
	if _, err := Fit(nil, 2); !errors.Is(err, ErrInvalidSamples) {
		t.Errorf("nil samples: expected ErrInvalidSamples, got %v", err)
	}
	if _, err := Fit(WiFiSamples(), 0); !errors.Is(err, ErrInvalidPolynomial) {
		t.Errorf("degree 0: expected ErrInvalidPolynomial, got %v", err)
	}

	samples := WiFiSamples()
	samples[3].SNR = math.NaN()
	if _, err := Fit(samples, 2); !errors.Is(err, ErrInvalidSamples) {
		t.Errorf("NaN sample: expected ErrInvalidSamples, got %v", err)
	}
}

func TestStatisticsZeroRate(t *testing.T) {
	p, err := NewPolynomial(1, 1, nil)
	if err != nil {
		t.Fatalf("NewPolynomial: %v", err)
	}

	_, err = p.Statistics(SampleSet{{Bandwidth: 20, SNR: 1, Rate: 0}})
	if !errors.Is(err, ErrInvalidSamples) {
		t.Errorf("expected ErrInvalidSamples, got %v", err)
	}
}

func TestStatisticsKnownErrors(t *testing.T) {
	// constant prediction of 10
	p, err := NewPolynomial(1, 10, nil)
	if err != nil {
		t.Fatalf("NewPolynomial: %v", err)
	}

	samples := SampleSet{
		{Bandwidth: 20, SNR: 1, Rate: 8},
		{Bandwidth: 20, SNR: 2, Rate: 10},
		{Bandwidth: 20, SNR: 3, Rate: 15},
	}
	stats, err := p.Statistics(samples)
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}

	// errors: 2, 0, -5
	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"mean error", stats.MeanError, -1},
		{"MAE", stats.MeanAbsoluteError, 7.0 / 3},
		{"RMSE", stats.RootMeanSquaredError, math.Sqrt(29.0 / 3)},
		{"MAPE", stats.MeanAbsolutePercentageError, (25 + 0 + 100.0/3) / 3},
		{"min abs", stats.MinAbsoluteError, 0},
		{"max abs", stats.MaxAbsoluteError, 5},
		{"min rel", stats.MinRelativeError, 0},
		{"max rel", stats.MaxRelativeError, 100.0 / 3},
		{"std dev", stats.StdDevError, math.Sqrt((9 + 1 + 16) / 3.0)},
		{"median abs", stats.MedianAbsoluteError, 2},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.expected) > 1e-12 {
			t.Errorf("%s: expected %g, got %g", tt.name, tt.expected, tt.got)
		}
	}
}

func TestNewPolynomialRejectsForeignTerms(t *testing.T) {
	_, err := NewPolynomial(2, 0, map[Term]float64{{2, 1}: 1})
	if !errors.Is(err, ErrInvalidPolynomial) {
		t.Errorf("expected ErrInvalidPolynomial, got %v", err)
	}
}
