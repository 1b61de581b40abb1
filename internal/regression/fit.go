package regression

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DefaultDegree is the degree used for the WiFi rate polynomial.
const DefaultDegree = 5

const machineEpsilon = 0x1p-52

type fitOptions struct {
	strictRank bool
}

// FitOption configures Fit.
type FitOption func(*fitOptions)

// WithStrictRank rejects rank deficient design matrices with
// ErrIllConditionedFit instead of returning the minimum norm solution.
func WithStrictRank() FitOption {
	return func(o *fitOptions) {
		o.strictRank = true
	}
}

// Fit fits a polynomial of total degree maxDegree to the samples by
// ordinary least squares.
//
// The design matrix is centred so the intercept is fitted separately, and
// solved through its singular value decomposition. Singular values below
// eps*max(rows, cols) relative to the largest one are treated as zero,
// which yields the minimum norm solution when the samples do not identify
// every coefficient. Too few samples is always an error.
func Fit(samples SampleSet, maxDegree int, options ...FitOption) (*Polynomial, error) {
	var opts fitOptions
	for _, option := range options {
		option(&opts)
	}

	if maxDegree < 1 {
		return nil, fmt.Errorf("%w: degree must be at least 1: %d", ErrInvalidPolynomial, maxDegree)
	}
	if err := samples.validate(); err != nil {
		return nil, err
	}

	// a degree d polynomial has more than d features, so the first test
	// bounds the feature count before it is computed
	rows := len(samples)
	if maxDegree >= rows || rows < FeatureCount(maxDegree) {
		return nil, fmt.Errorf("%w: %d samples for %d features", ErrIllConditionedFit, rows, FeatureCount(maxDegree))
	}

	p := newPolynomial(maxDegree)
	cols := len(p.terms)

	x := mat.NewDense(rows, cols, nil)
	for r, s := range samples {
		for c, t := range p.terms {
			x.Set(r, c, t.Eval(s.Bandwidth, s.SNR))
		}
	}

	means := make([]float64, cols)
	for c := range cols {
		means[c] = stat.Mean(mat.Col(nil, c, x), nil)
		for r := range rows {
			x.Set(r, c, x.At(r, c)-means[c])
		}
	}

	rates := samples.Rates()
	rateMean := stat.Mean(rates, nil)
	y := mat.NewVecDense(rows, nil)
	for r, v := range rates {
		y.SetVec(r, v-rateMean)
	}

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return nil, fmt.Errorf("%w: singular value decomposition did not converge", ErrIllConditionedFit)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	values := svd.Values(nil)

	// values are sorted in descending order
	cutoff := machineEpsilon * float64(max(rows, cols)) * values[0]

	beta := mat.NewVecDense(cols, nil)
	rank := 0
	for i, s := range values {
		if s <= cutoff {
			break
		}
		rank++
		w := mat.Dot(u.ColView(i), y) / s
		beta.AddScaledVec(beta, w, v.ColView(i))
	}

	if opts.strictRank && rank < cols {
		return nil, fmt.Errorf("%w: design matrix rank %d is below %d features", ErrIllConditionedFit, rank+1, cols+1)
	}

	p.rank = rank
	p.intercept = rateMean
	for c := range cols {
		p.coefficients[c] = beta.AtVec(c)
		p.intercept -= means[c] * p.coefficients[c]
	}

	return p, nil
}
