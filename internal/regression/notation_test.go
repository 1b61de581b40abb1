package regression

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

var (
	spreadsheetPower = regexp.MustCompile(`POWER\((\w+),(\d+)\)`)
	goPower          = regexp.MustCompile(`math\.Pow\((\w+), (\d+)\)`)
)

// evalFormula evaluates a rendered polynomial. It understands exactly the
// sum-of-products shape Format produces.
func evalFormula(t *testing.T, n Notation, formula string, bw, snr float64) float64 {
	t.Helper()

	expr := formula
	switch n.Name {
	case SpreadsheetNotation:
		expr = strings.TrimPrefix(expr, "=")
		expr = spreadsheetPower.ReplaceAllString(expr, "$1^$2")
	case PythonNotation:
		expr = strings.TrimPrefix(expr, "def polynomial_formula(BW, SNR_dB):\n    return ( ")
		expr = strings.TrimSuffix(expr, " )")
		expr = strings.ReplaceAll(expr, "**", "^")
	case GoNotation:
		expr = strings.TrimPrefix(expr, "func PolynomialFormula(bw, snrDb float64) float64 {\n\treturn ")
		expr = strings.TrimSuffix(expr, "\n}")
		expr = goPower.ReplaceAllString(expr, "$1^$2")
	}

	vars := map[string]float64{n.BandwidthVar: bw, n.SNRVar: snr}

	// split on signs that are not part of an exponent
	var terms []string
	start := 0
	for i := 1; i < len(expr); i++ {
		if (expr[i] == '+' || expr[i] == '-') && expr[i-1] != 'e' {
			terms = append(terms, expr[start:i])
			start = i
		}
	}
	terms = append(terms, expr[start:])

	var sum float64
	for _, term := range terms {
		factors := strings.Split(strings.TrimPrefix(term, "+"), "*")
		value, err := strconv.ParseFloat(factors[0], 64)
		if err != nil {
			t.Fatalf("parsing coefficient %q of %q: %v", factors[0], term, err)
		}
		for _, f := range factors[1:] {
			name, exp, found := strings.Cut(f, "^")
			x, ok := vars[name]
			if !ok {
				t.Fatalf("unknown variable %q in %q", name, term)
			}
			k := 1
			if found {
				if k, err = strconv.Atoi(exp); err != nil {
					t.Fatalf("parsing exponent %q: %v", exp, err)
				}
			}
			value *= math.Pow(x, float64(k))
		}
		sum += value
	}
	return sum
}

func TestFormatRoundTrip(t *testing.T) {
	samples := WiFiSamples()
	p, err := Fit(samples, DefaultDegree)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	for _, n := range Notations() {
		t.Run(n.Name.String(), func(t *testing.T) {
			formula := p.Format(n)
			for _, s := range samples {
				expected := p.Evaluate(s.Bandwidth, s.SNR)
				got := evalFormula(t, n, formula, s.Bandwidth, s.SNR)

				// 8 significant digits per coefficient
				tolerance := 1e-7*p.magnitude(s.Bandwidth, s.SNR) + 1e-9
				if math.Abs(got-expected) > tolerance {
					t.Errorf("(%g, %g): expected %g, got %g (tolerance %g)", s.Bandwidth, s.SNR, expected, got, tolerance)
				}
			}
		})
	}
}

func TestFormatTerms(t *testing.T) {
	p, err := NewPolynomial(2, -1.5, map[Term]float64{
		{1, 0}: 2,
		{0, 1}: -0.25,
		{2, 0}: 0,
		{1, 1}: 1e-3,
		{0, 2}: -4,
	})
	if err != nil {
		t.Fatalf("NewPolynomial: %v", err)
	}

	tests := []struct {
		name     NotationName
		expected string
	}{
		{
			MathNotation,
			"=-1.5000000e+00+2.0000000e+00*BW-2.5000000e-01*SNR+0.0000000e+00*BW^2+1.0000000e-03*BW*SNR-4.0000000e+00*SNR^2",
		},
		{
			SpreadsheetNotation,
			"=-1.5000000e+00+2.0000000e+00*A2-2.5000000e-01*B2+0.0000000e+00*POWER(A2,2)+1.0000000e-03*A2*B2-4.0000000e+00*POWER(B2,2)",
		},
		{
			PythonNotation,
			"def polynomial_formula(BW, SNR_dB):\n    return ( -1.5000000e+00+2.0000000e+00*BW-2.5000000e-01*SNR_dB+0.0000000e+00*BW**2+1.0000000e-03*BW*SNR_dB-4.0000000e+00*SNR_dB**2 )",
		},
		{
			GoNotation,
			"func PolynomialFormula(bw, snrDb float64) float64 {\n\treturn -1.5000000e+00+2.0000000e+00*bw-2.5000000e-01*snrDb+0.0000000e+00*math.Pow(bw, 2)+1.0000000e-03*bw*snrDb-4.0000000e+00*math.Pow(snrDb, 2)\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name.String(), func(t *testing.T) {
			n, err := NotationByName(tt.name)
			if err != nil {
				t.Fatalf("NotationByName: %v", err)
			}
			if got := p.Format(n); got != tt.expected {
				t.Errorf("expected\n%s\ngot\n%s", tt.expected, got)
			}
		})
	}

	if got := p.String(); !strings.HasPrefix(got, "=-1.5000000e+00+2.0000000e+00*BW") {
		t.Errorf("String: unexpected rendering %s", got)
	}
}

func TestFormatSameTermOrder(t *testing.T) {
	p, err := Fit(WiFiSamples(), 3)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	coefficients := regexp.MustCompile(`[+-]?\d\.\d{7}e[+-]\d{2}`)
	var reference []string
	for _, n := range Notations() {
		got := coefficients.FindAllString(p.Format(n), -1)
		if len(got) != FeatureCount(3) {
			t.Fatalf("%s: expected %d coefficients, got %d", n.Name, FeatureCount(3), len(got))
		}
		if reference == nil {
			reference = got
			continue
		}
		if fmt.Sprint(got) != fmt.Sprint(reference) {
			t.Errorf("%s: coefficient order differs:\n%v\n%v", n.Name, got, reference)
		}
	}
}

func TestNotationByNameUnknown(t *testing.T) {
	if _, err := NotationByName("latex"); err == nil {
		t.Error("expected an error for an unknown notation")
	}
	if n, err := NotationByName("Spreadsheet"); err != nil || n.Name != SpreadsheetNotation {
		t.Errorf("expected case-insensitive lookup, got %v, %v", n.Name, err)
	}
}
