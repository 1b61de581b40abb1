package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/roman-kulish/wifi-link-budget/internal/regression"
)

// NotationAll prints the formula in every notation
const NotationAll = "all"

type Config struct {
	SamplesFile string // CSV samples, empty selects the built-in WiFi dataset
	Degree      int
	Strict      bool
	Notations   []regression.Notation
	Verbose     bool

	Out io.Writer // report destination
}

func NewConfig() *Config {
	return &Config{
		Degree:    regression.DefaultDegree,
		Notations: regression.Notations(),
		Out:       os.Stdout,
	}
}

func NewConfigFromCLI() (*Config, error) {
	c := NewConfig()

	var notation string
	flag.StringVar(&c.SamplesFile, "samples", "", "Path to a CSV file with bandwidth,snr,rate columns. Built-in WiFi rates if empty")
	flag.IntVar(&c.Degree, "degree", regression.DefaultDegree, "Maximum total degree of the polynomial")
	flag.BoolVar(&c.Strict, "strict", false, "Fail when the samples cannot identify every coefficient")
	flag.StringVar(&notation, "notation", NotationAll, "Formula notation. [all, math, spreadsheet, python, go]")
	flag.BoolVar(&c.Verbose, "verbose", false, "Enable more verbose output")
	flag.Parse()

	var err error
	if c.Notations, err = parseNotations(notation); err == nil && c.Degree < 1 {
		err = errors.New("degree must be at least 1")
	}

	if err != nil {
		flag.Usage()
		return nil, err
	}
	return c, nil
}

func parseNotations(name string) ([]regression.Notation, error) {
	if strings.EqualFold(name, NotationAll) {
		return regression.Notations(), nil
	}

	n, err := regression.NotationByName(regression.NotationName(name))
	if err != nil {
		return nil, fmt.Errorf("invalid notation: %s", name)
	}
	return []regression.Notation{n}, nil
}
