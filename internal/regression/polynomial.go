// Package regression fits a two variable polynomial mapping channel
// bandwidth and SNR to data rate, and renders it as text for use in
// spreadsheets and source code.
package regression

import (
	"fmt"
	"math"
)

// Polynomial is a fitted polynomial in bandwidth and SNR. The intercept is
// kept apart from the coefficients of the other terms.
type Polynomial struct {
	maxDegree    int
	intercept    float64
	terms        []Term // feature order, intercept excluded
	coefficients []float64
	index        map[Term]int

	rank int // numerical rank of the centred design matrix, -1 if not fitted
}

// NewPolynomial builds a polynomial from an intercept and the coefficients
// of the non-constant terms. Terms absent from coefficients are zero.
func NewPolynomial(maxDegree int, intercept float64, coefficients map[Term]float64) (*Polynomial, error) {
	if maxDegree < 1 {
		return nil, fmt.Errorf("%w: degree must be at least 1: %d", ErrInvalidPolynomial, maxDegree)
	}

	p := newPolynomial(maxDegree)
	p.intercept = intercept
	p.rank = -1
	for t, c := range coefficients {
		i, ok := p.index[t]
		if !ok {
			return nil, fmt.Errorf("%w: term %s is not part of a degree %d polynomial", ErrInvalidPolynomial, t, maxDegree)
		}
		p.coefficients[i] = c
	}
	return p, nil
}

func newPolynomial(maxDegree int) *Polynomial {
	terms := Features(maxDegree)[1:]
	index := make(map[Term]int, len(terms))
	for i, t := range terms {
		index[t] = i
	}

	return &Polynomial{
		maxDegree:    maxDegree,
		terms:        terms,
		coefficients: make([]float64, len(terms)),
		index:        index,
	}
}

func (p *Polynomial) MaxDegree() int { return p.maxDegree }

func (p *Polynomial) Intercept() float64 { return p.intercept }

// Terms returns the non-constant terms in feature order.
func (p *Polynomial) Terms() []Term {
	return append([]Term(nil), p.terms...)
}

// Coefficients returns the coefficients of Terms, in the same order.
func (p *Polynomial) Coefficients() []float64 {
	return append([]float64(nil), p.coefficients...)
}

// Coefficient returns the coefficient of BW^bw * SNR^snr. The (0,0) term
// is the intercept.
func (p *Polynomial) Coefficient(bw, snr int) (float64, bool) {
	t := Term{BW: bw, SNR: snr}
	if t == (Term{}) {
		return p.intercept, true
	}
	i, ok := p.index[t]
	if !ok {
		return 0, false
	}
	return p.coefficients[i], true
}

// CoefficientMap returns the coefficients keyed by term, intercept excluded.
func (p *Polynomial) CoefficientMap() map[Term]float64 {
	m := make(map[Term]float64, len(p.terms))
	for i, t := range p.terms {
		m[t] = p.coefficients[i]
	}
	return m
}

// Rank is the numerical rank of the centred design matrix the polynomial
// was fitted on, or -1 if it was built from literal coefficients.
func (p *Polynomial) Rank() int { return p.rank }

// Degenerate reports whether the design matrix was rank deficient, in
// which case the coefficients are the minimum norm least squares solution.
func (p *Polynomial) Degenerate() bool {
	return p.rank >= 0 && p.rank < len(p.terms)
}

// Evaluate returns the predicted rate at bandwidth bw and SNR snr.
func (p *Polynomial) Evaluate(bw, snr float64) float64 {
	y := p.intercept
	for i, t := range p.terms {
		y += p.coefficients[i] * t.Eval(bw, snr)
	}
	return y
}

// Predict evaluates the polynomial at every sample.
func (p *Polynomial) Predict(samples SampleSet) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = p.Evaluate(s.Bandwidth, s.SNR)
	}
	return out
}

// magnitude is the sum of absolute term contributions at (bw, snr), the
// scale against which rounding of the coefficients is measured.
func (p *Polynomial) magnitude(bw, snr float64) float64 {
	m := math.Abs(p.intercept)
	for i, t := range p.terms {
		m += math.Abs(p.coefficients[i] * t.Eval(bw, snr))
	}
	return m
}
