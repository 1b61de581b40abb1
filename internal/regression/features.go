package regression

import (
	"fmt"
	"math"
)

// Term is a monomial BW^BW * SNR^SNR of the feature expansion.
type Term struct {
	BW  int
	SNR int
}

// Degree is the total degree of the term.
func (t Term) Degree() int {
	return t.BW + t.SNR
}

// Eval returns bw^t.BW * snr^t.SNR.
func (t Term) Eval(bw, snr float64) float64 {
	return ipow(bw, t.BW) * ipow(snr, t.SNR)
}

func (t Term) String() string {
	return fmt.Sprintf("BW^%d*SNR^%d", t.BW, t.SNR)
}

// Features returns every term of total degree up to maxDegree, intercept
// first, ordered by total degree and then by descending bandwidth exponent:
// 1, BW, SNR, BW^2, BW*SNR, SNR^2, BW^3, ...
func Features(maxDegree int) []Term {
	if maxDegree < 0 {
		return nil
	}

	terms := make([]Term, 0, FeatureCount(maxDegree))
	for d := 0; d <= maxDegree; d++ {
		for bw := d; bw >= 0; bw-- {
			terms = append(terms, Term{BW: bw, SNR: d - bw})
		}
	}
	return terms
}

// FeatureCount is the number of terms, intercept included, of a two
// variable polynomial of degree maxDegree. It saturates at math.MaxInt.
func FeatureCount(maxDegree int) int {
	if maxDegree < 0 {
		return 0
	}

	n := (float64(maxDegree) + 1) * (float64(maxDegree) + 2) / 2
	if n >= math.MaxInt {
		return math.MaxInt
	}
	return (maxDegree + 1) * (maxDegree + 2) / 2
}

func ipow(x float64, n int) float64 {
	result := 1.0
	for ; n > 0; n-- {
		result *= x
	}
	return result
}
