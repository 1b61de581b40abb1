package regression

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MathNotation        NotationName = "math"
	SpreadsheetNotation NotationName = "spreadsheet"
	PythonNotation      NotationName = "python"
	GoNotation          NotationName = "go"
)

// CoefficientFormat is the precision every rendering uses for coefficients.
const CoefficientFormat = "%.7e"

type NotationName string

func (n NotationName) String() string {
	return string(n)
}

// Notation describes how a single term and the whole expression are
// written. Renderings differ only in these details; the term enumeration
// is shared.
type Notation struct {
	Name         NotationName
	BandwidthVar string
	SNRVar       string
	Multiply     string
	Power        func(variable string, exponent int) string
	Wrap         func(expression string) string
}

var notations = map[NotationName]Notation{
	MathNotation: {
		Name:         MathNotation,
		BandwidthVar: "BW",
		SNRVar:       "SNR",
		Multiply:     "*",
		Power:        infixPower("^"),
		Wrap:         equationPrefix,
	},
	SpreadsheetNotation: {
		Name:         SpreadsheetNotation,
		BandwidthVar: "A2",
		SNRVar:       "B2",
		Multiply:     "*",
		Power: func(variable string, exponent int) string {
			return fmt.Sprintf("POWER(%s,%d)", variable, exponent)
		},
		Wrap: equationPrefix,
	},
	PythonNotation: {
		Name:         PythonNotation,
		BandwidthVar: "BW",
		SNRVar:       "SNR_dB",
		Multiply:     "*",
		Power:        infixPower("**"),
		Wrap: func(expression string) string {
			return fmt.Sprintf("def polynomial_formula(BW, SNR_dB):\n    return ( %s )", expression)
		},
	},
	GoNotation: {
		Name:         GoNotation,
		BandwidthVar: "bw",
		SNRVar:       "snrDb",
		Multiply:     "*",
		Power: func(variable string, exponent int) string {
			return fmt.Sprintf("math.Pow(%s, %d)", variable, exponent)
		},
		Wrap: func(expression string) string {
			return fmt.Sprintf("func PolynomialFormula(bw, snrDb float64) float64 {\n\treturn %s\n}", expression)
		},
	},
}

func equationPrefix(expression string) string {
	return "=" + expression
}

func infixPower(operator string) func(string, int) string {
	return func(variable string, exponent int) string {
		return variable + operator + strconv.Itoa(exponent)
	}
}

// Notations returns the built-in notations in rendering order.
func Notations() []Notation {
	return []Notation{
		notations[MathNotation],
		notations[SpreadsheetNotation],
		notations[PythonNotation],
		notations[GoNotation],
	}
}

// NotationByName looks up a built-in notation.
func NotationByName(name NotationName) (Notation, error) {
	n, ok := notations[NotationName(strings.ToLower(string(name)))]
	if !ok {
		return Notation{}, fmt.Errorf("regression: unknown notation: %s", name)
	}
	return n, nil
}

// Format renders the polynomial. Terms appear in feature order, zero
// exponents are omitted, exponent one is written without a power and a
// plus followed by a negative coefficient collapses to a minus.
func (p *Polynomial) Format(n Notation) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(CoefficientFormat, p.intercept))

	for i, t := range p.terms {
		sb.WriteString("+")
		sb.WriteString(fmt.Sprintf(CoefficientFormat, p.coefficients[i]))
		writeFactor(&sb, n, n.BandwidthVar, t.BW)
		writeFactor(&sb, n, n.SNRVar, t.SNR)
	}

	expression := strings.ReplaceAll(sb.String(), "+-", "-")
	if n.Wrap != nil {
		return n.Wrap(expression)
	}
	return expression
}

func writeFactor(sb *strings.Builder, n Notation, variable string, exponent int) {
	switch {
	case exponent > 1:
		sb.WriteString(n.Multiply)
		sb.WriteString(n.Power(variable, exponent))
	case exponent == 1:
		sb.WriteString(n.Multiply)
		sb.WriteString(variable)
	}
}

// String renders the polynomial in mathematical notation.
func (p *Polynomial) String() string {
	return p.Format(notations[MathNotation])
}
