// Package linkbudget models a point-to-point WiFi link: free-space path
// loss, wall attenuation, noise floor, SNR and the Shannon-bound throughput
// as a function of distance.
package linkbudget

import (
	"fmt"

	"github.com/roman-kulish/wifi-link-budget/internal/units"
)

const (
	SpeedOfLight      = 3e8      // m/s
	BoltzmannConstant = 1.38e-23 // J/K
)

// RadioParameters is an immutable, validated set of radio parameters along
// with the quantities derived from them.
type RadioParameters struct {
	config Config

	wavelength        float64 // m
	thermalNoiseW     float64
	thermalNoiseDbm   float64
	totalNoiseDbm     float64
	beamformingGainDb float64
}

// New validates the configuration and derives the noise floor, wavelength
// and beamforming gain.
func New(config Config) (*RadioParameters, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	p := RadioParameters{config: config}
	p.wavelength = SpeedOfLight / config.FrequencyHz
	p.thermalNoiseW = BoltzmannConstant * config.TemperatureK * config.BandwidthHz
	p.thermalNoiseDbm = units.WToDbm(p.thermalNoiseW)
	p.totalNoiseDbm = units.SumDbm(p.thermalNoiseDbm, config.OtherRFNoiseDbm)
	p.beamformingGainDb = units.AbsoluteToDb(float64(config.ReceiveAntennas))

	return &p, nil
}

// MustNew is like New but panics if the configuration is invalid.
func MustNew(config Config) *RadioParameters {
	p, err := New(config)
	if err != nil {
		panic(fmt.Sprintf("linkbudget: %s", err))
	}
	return p
}

// Config returns a copy of the configuration the parameters were built from.
func (p *RadioParameters) Config() Config { return p.config }

func (p *RadioParameters) TxPowerDbm() float64 { return p.config.TxPowerDbm }
func (p *RadioParameters) BandwidthHz() float64 { return p.config.BandwidthHz }
func (p *RadioParameters) FrequencyHz() float64 { return p.config.FrequencyHz }
func (p *RadioParameters) WallLossDb() float64 { return p.config.WallLossDb }
func (p *RadioParameters) ReceiverLossesDb() float64 { return p.config.ReceiverLossesDb }

// Wavelength in metres.
func (p *RadioParameters) Wavelength() float64 { return p.wavelength }

// ThermalNoiseW is the kTB noise power in Watts.
func (p *RadioParameters) ThermalNoiseW() float64 { return p.thermalNoiseW }

// ThermalNoiseDbm is the kTB noise power in dBm.
func (p *RadioParameters) ThermalNoiseDbm() float64 { return p.thermalNoiseDbm }

// TotalNoiseDbm is the thermal noise combined with the other RF noise floor.
func (p *RadioParameters) TotalNoiseDbm() float64 { return p.totalNoiseDbm }

// BeamformingGainDb is the receive combining gain of all receive antennas.
func (p *RadioParameters) BeamformingGainDb() float64 { return p.beamformingGainDb }

// SpatialStreams is the number of streams both ends can carry.
func (p *RadioParameters) SpatialStreams() int {
	return min(p.config.TransmitAntennas, p.config.ReceiveAntennas)
}

// WithWallLoss returns a copy of the parameters with a different wall loss.
func (p *RadioParameters) WithWallLoss(db float64) (*RadioParameters, error) {
	c := p.config
	c.WallLossDb = db
	return New(c)
}
