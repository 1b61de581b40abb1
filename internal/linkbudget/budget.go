package linkbudget

import (
	"fmt"
	"math"

	"github.com/roman-kulish/wifi-link-budget/internal/units"
)

const (
	// fsplConstantDb folds 20*log10(4*pi/c) into the Friis formula for
	// distance in metres and frequency in Hz.
	fsplConstantDb = 147.55

	// ProtocolEfficiency scales the Shannon bound to what real WiFi
	// framing and MAC overhead deliver.
	ProtocolEfficiency = 0.6
)

func checkDistance(distance float64) error {
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return NewDomainError(fmt.Sprintf("linkbudget: distance must be a finite number: %v", distance))
	}
	if distance <= 0 {
		return NewConfigError(fmt.Sprintf("linkbudget: distance must be positive: %g", distance))
	}
	return nil
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NewDomainError(fmt.Sprintf("linkbudget: %s is not a finite number: %v", name, v))
	}
	return nil
}

// FreeSpacePathLossDb returns the free-space path loss at distance metres.
func (p *RadioParameters) FreeSpacePathLossDb(distance float64) (float64, error) {
	if err := checkDistance(distance); err != nil {
		return 0, err
	}
	return 20*math.Log10(distance) + 20*math.Log10(p.config.FrequencyHz) - fsplConstantDb, nil
}

// DistanceFromPathLoss is the inverse of FreeSpacePathLossDb.
func (p *RadioParameters) DistanceFromPathLoss(pathLossDb float64) (float64, error) {
	if err := checkFinite("path loss", pathLossDb); err != nil {
		return 0, err
	}

	d := math.Pow(10, (pathLossDb+fsplConstantDb-20*math.Log10(p.config.FrequencyHz))/20)
	if err := checkFinite("distance", d); err != nil {
		return 0, err
	}
	return d, nil
}

// TotalPathLossDb is the free-space path loss plus the wall loss.
func (p *RadioParameters) TotalPathLossDb(distance float64) (float64, error) {
	fspl, err := p.FreeSpacePathLossDb(distance)
	if err != nil {
		return 0, err
	}
	return fspl + p.config.WallLossDb, nil
}

// RxPowerDbm is the power at the receiver input after path, wall and
// receiver losses and the beamforming gain.
func (p *RadioParameters) RxPowerDbm(distance float64) (float64, error) {
	pl, err := p.TotalPathLossDb(distance)
	if err != nil {
		return 0, err
	}
	return p.rxPowerDbm(pl), nil
}

func (p *RadioParameters) rxPowerDbm(totalPathLossDb float64) float64 {
	return p.config.TxPowerDbm - totalPathLossDb + p.beamformingGainDb - p.config.ReceiverLossesDb
}

// SNRDb returns the signal to noise ratio at distance metres.
func (p *RadioParameters) SNRDb(distance float64) (float64, error) {
	rx, err := p.RxPowerDbm(distance)
	if err != nil {
		return 0, err
	}

	snr := units.AbsoluteToDb(units.DbmToW(rx) / units.DbmToW(p.totalNoiseDbm))
	if err = checkFinite("SNR", snr); err != nil {
		return 0, err
	}
	return snr, nil
}

// DistanceFromSNR returns the distance at which the link has the given SNR.
func (p *RadioParameters) DistanceFromSNR(snrDb float64) (float64, error) {
	if err := checkFinite("SNR", snrDb); err != nil {
		return 0, err
	}

	rxW := units.DbToAbsolute(snrDb) * units.DbmToW(p.totalNoiseDbm)
	if rxW <= 0 || math.IsInf(rxW, 0) {
		return 0, NewDomainError(fmt.Sprintf("linkbudget: SNR %g dB gives no representable receive power", snrDb))
	}

	rxDbm := units.WToDbm(rxW)
	totalPathLossDb := p.config.TxPowerDbm - rxDbm + p.beamformingGainDb - p.config.ReceiverLossesDb

	return p.DistanceFromPathLoss(totalPathLossDb - p.config.WallLossDb)
}

// ThroughputMbps returns the expected application throughput in Mbit/s:
// the Shannon capacity scaled by the spatial stream gain and the protocol
// efficiency.
func (p *RadioParameters) ThroughputMbps(distance float64) (float64, error) {
	snr, err := p.SNRDb(distance)
	if err != nil {
		return 0, err
	}
	return p.throughputMbps(snr), nil
}

func (p *RadioParameters) throughputMbps(snrDb float64) float64 {
	capacity := p.config.BandwidthHz * math.Log2(1+units.DbToAbsolute(snrDb))
	streamsFactor := math.Log2(1 + float64(p.SpatialStreams()))

	return capacity * ProtocolEfficiency * streamsFactor / 1e6
}

// Point is the link budget evaluated at one distance.
type Point struct {
	DistanceM       float64 `csv:"distance_m"`
	FreeSpaceLossDb float64 `csv:"fspl_db"`
	TotalPathLossDb float64 `csv:"total_path_loss_db"`
	RxPowerDbm      float64 `csv:"rx_power_dbm"`
	SNRDb           float64 `csv:"snr_db"`
	ThroughputMbps  float64 `csv:"throughput_mbps"`
}

// Budget evaluates every quantity of the link budget at distance metres.
func (p *RadioParameters) Budget(distance float64) (Point, error) {
	fspl, err := p.FreeSpacePathLossDb(distance)
	if err != nil {
		return Point{}, err
	}
	snr, err := p.SNRDb(distance)
	if err != nil {
		return Point{}, err
	}

	total := fspl + p.config.WallLossDb
	return Point{
		DistanceM:       distance,
		FreeSpaceLossDb: fspl,
		TotalPathLossDb: total,
		RxPowerDbm:      p.rxPowerDbm(total),
		SNRDb:           snr,
		ThroughputMbps:  p.throughputMbps(snr),
	}, nil
}
