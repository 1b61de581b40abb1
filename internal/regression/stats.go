package regression

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistics summarises the prediction error of a polynomial over a set of
// samples. Errors are predicted minus observed; relative errors are
// percentages of the observed rate.
type Statistics struct {
	MeanError                   float64
	MeanAbsoluteError           float64
	RootMeanSquaredError        float64
	MeanAbsolutePercentageError float64
	MinAbsoluteError            float64
	MaxAbsoluteError            float64
	MinRelativeError            float64
	MaxRelativeError            float64
	StdDevError                 float64 // population standard deviation
	MedianAbsoluteError         float64
	RSquared                    float64
}

// Statistics evaluates the polynomial against the samples.
func (p *Polynomial) Statistics(samples SampleSet) (Statistics, error) {
	if err := samples.validate(); err != nil {
		return Statistics{}, err
	}

	observed := samples.Rates()
	predicted := p.Predict(samples)

	n := len(samples)
	errs := make([]float64, n)
	absErrs := make([]float64, n)
	relErrs := make([]float64, n)
	var squared float64
	for i := range samples {
		if observed[i] == 0 {
			return Statistics{}, fmt.Errorf("%w: sample %d has a zero rate", ErrInvalidSamples, i)
		}

		errs[i] = predicted[i] - observed[i]
		absErrs[i] = math.Abs(errs[i])
		relErrs[i] = absErrs[i] / math.Abs(observed[i]) * 100
		squared += errs[i] * errs[i]
	}

	mean, std := stat.PopMeanStdDev(errs, nil)

	return Statistics{
		MeanError:                   mean,
		MeanAbsoluteError:           stat.Mean(absErrs, nil),
		RootMeanSquaredError:        math.Sqrt(squared / float64(n)),
		MeanAbsolutePercentageError: stat.Mean(relErrs, nil),
		MinAbsoluteError:            floats.Min(absErrs),
		MaxAbsoluteError:            floats.Max(absErrs),
		MinRelativeError:            floats.Min(relErrs),
		MaxRelativeError:            floats.Max(relErrs),
		StdDevError:                 std,
		MedianAbsoluteError:         median(absErrs),
		RSquared:                    stat.RSquaredFrom(predicted, observed, nil),
	}, nil
}

func median(x []float64) float64 {
	sorted := slices.Clone(x)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
