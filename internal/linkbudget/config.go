package linkbudget

import (
	"fmt"
	"math"
)

const (
	defaultTxPowerDbm       = 20.0
	defaultBandwidthHz      = 20e6
	defaultTemperatureK     = 290.0
	defaultFrequencyHz      = 2.4e9
	defaultOtherRFNoiseDbm  = -95.0
	defaultReceiverLossesDb = 25.0
	defaultTransmitAntennas = 1
	defaultReceiveAntennas  = 1
)

// Config holds the radio parameters a RadioParameters value is built from.
type Config struct {
	TxPowerDbm       float64 `yaml:"txPowerDbm" json:"txPowerDbm"`             // transmitter output power
	BandwidthHz      float64 `yaml:"bandwidthHz" json:"bandwidthHz"`           // channel bandwidth
	TemperatureK     float64 `yaml:"temperatureK" json:"temperatureK"`         // receiver noise temperature
	FrequencyHz      float64 `yaml:"frequencyHz" json:"frequencyHz"`           // carrier frequency
	TransmitAntennas int     `yaml:"transmitAntennas" json:"transmitAntennas"` // number of transmit chains
	ReceiveAntennas  int     `yaml:"receiveAntennas" json:"receiveAntennas"`   // number of receive chains
	OtherRFNoiseDbm  float64 `yaml:"otherRFNoiseDbm" json:"otherRFNoiseDbm"`   // interference floor added to thermal noise
	ReceiverLossesDb float64 `yaml:"receiverLossesDb" json:"receiverLossesDb"` // cabling, implementation and fade margin
	WallLossDb       float64 `yaml:"wallLossDb" json:"wallLossDb"`             // attenuation of walls on the path
}

// DefaultConfig returns a single stream 2.4 GHz, 20 MHz WiFi link.
func DefaultConfig() Config {
	return Config{
		TxPowerDbm:       defaultTxPowerDbm,
		BandwidthHz:      defaultBandwidthHz,
		TemperatureK:     defaultTemperatureK,
		FrequencyHz:      defaultFrequencyHz,
		TransmitAntennas: defaultTransmitAntennas,
		ReceiveAntennas:  defaultReceiveAntennas,
		OtherRFNoiseDbm:  defaultOtherRFNoiseDbm,
		ReceiverLossesDb: defaultReceiverLossesDb,
	}
}

func (c *Config) Validate() error {
	finite := []struct {
		name  string
		value float64
	}{
		{"tx power", c.TxPowerDbm},
		{"bandwidth", c.BandwidthHz},
		{"temperature", c.TemperatureK},
		{"frequency", c.FrequencyHz},
		{"other RF noise", c.OtherRFNoiseDbm},
		{"receiver losses", c.ReceiverLossesDb},
		{"wall loss", c.WallLossDb},
	}
	for _, f := range finite {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return NewConfigError(fmt.Sprintf("linkbudget.Config: %s must be a finite number: %v", f.name, f.value))
		}
	}

	if c.BandwidthHz <= 0 {
		return NewConfigError(fmt.Sprintf("linkbudget.Config: bandwidth must be positive: %g", c.BandwidthHz))
	}
	if c.TemperatureK <= 0 {
		return NewConfigError(fmt.Sprintf("linkbudget.Config: temperature must be positive: %g", c.TemperatureK))
	}
	if c.FrequencyHz <= 0 {
		return NewConfigError(fmt.Sprintf("linkbudget.Config: frequency must be positive: %g", c.FrequencyHz))
	}
	if c.TransmitAntennas < 1 {
		return NewConfigError(fmt.Sprintf("linkbudget.Config: at least one transmit antenna is required: %d given", c.TransmitAntennas))
	}
	if c.ReceiveAntennas < 1 {
		return NewConfigError(fmt.Sprintf("linkbudget.Config: at least one receive antenna is required: %d given", c.ReceiveAntennas))
	}
	if c.WallLossDb < 0 {
		return NewConfigError(fmt.Sprintf("linkbudget.Config: wall loss must not be negative: %g", c.WallLossDb))
	}

	return nil
}
