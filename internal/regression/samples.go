package regression

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/jszwec/csvutil"
)

// Sample is one observation of the data rate achieved at a given channel
// bandwidth and SNR.
type Sample struct {
	Bandwidth float64 `csv:"bandwidth"` // MHz
	SNR       float64 `csv:"snr"`       // dB
	Rate      float64 `csv:"rate"`      // Mbit/s
}

// SampleSet is an ordered list of samples. Duplicates are allowed.
type SampleSet []Sample

// Bandwidths returns the bandwidth of every sample.
func (s SampleSet) Bandwidths() []float64 {
	return s.column(func(x Sample) float64 { return x.Bandwidth })
}

// SNRs returns the SNR of every sample.
func (s SampleSet) SNRs() []float64 {
	return s.column(func(x Sample) float64 { return x.SNR })
}

// Rates returns the observed rate of every sample.
func (s SampleSet) Rates() []float64 {
	return s.column(func(x Sample) float64 { return x.Rate })
}

func (s SampleSet) column(fn func(Sample) float64) []float64 {
	out := make([]float64, len(s))
	for i, x := range s {
		out[i] = fn(x)
	}
	return out
}

func (s SampleSet) validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: no samples", ErrInvalidSamples)
	}
	for i, x := range s {
		for _, v := range []float64{x.Bandwidth, x.SNR, x.Rate} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: sample %d is not finite: %+v", ErrInvalidSamples, i, x)
			}
		}
	}
	return nil
}

// LoadSamplesCSV reads samples from CSV with a `bandwidth,snr,rate` header.
func LoadSamplesCSV(r io.Reader) (SampleSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading samples: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty CSV", ErrInvalidSamples)
	}

	var samples SampleSet
	if err = csvutil.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("decoding samples: %w", err)
	}
	if err = samples.validate(); err != nil {
		return nil, err
	}
	return samples, nil
}

// LoadSamples reads a CSV sample file. An empty path selects WiFiSamples.
func LoadSamples(path string) (SampleSet, error) {
	if path == "" {
		return WiFiSamples(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening samples file: %w", err)
	}
	defer f.Close()

	return LoadSamplesCSV(f)
}

// WiFiSamples returns the 802.11n/ac single stream rates at the minimum SNR
// of each MCS for 20, 40 and 80 MHz channels.
func WiFiSamples() SampleSet {
	classes := []struct {
		bandwidth float64
		snr       []float64
		rate      []float64
	}{
		{
			bandwidth: 20,
			snr:       []float64{2, 5, 9, 11, 15, 18, 20, 25, 29},
			rate:      []float64{7.2, 14.4, 21.7, 28.9, 43.3, 57.8, 65, 72.2, 86.7},
		},
		{
			bandwidth: 40,
			snr:       []float64{5, 8, 12, 14, 18, 21, 23, 28, 32, 34},
			rate:      []float64{15, 30, 45, 60, 90, 120, 135, 150, 180, 200},
		},
		{
			bandwidth: 80,
			snr:       []float64{8, 11, 15, 17, 21, 24, 26, 31, 35, 37},
			rate:      []float64{32.5, 65, 97.5, 130, 195, 260, 292.5, 325, 390, 433.4},
		},
	}

	var samples SampleSet
	for _, c := range classes {
		for i := range c.snr {
			samples = append(samples, Sample{Bandwidth: c.bandwidth, SNR: c.snr[i], Rate: c.rate[i]})
		}
	}
	return samples
}
