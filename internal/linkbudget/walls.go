package linkbudget

import (
	"fmt"
	"maps"
	"slices"
)

const (
	WallDrywall       WallType = "Drywall"
	WallBookshelf     WallType = "Bookshelf"
	WallExteriorGlass WallType = "Exterior Glass"
	WallSolidWoodDoor WallType = "Solid Wood Door"
	WallMarble        WallType = "Marble"
	WallBrick         WallType = "Brick"
	WallConcrete      WallType = "Concrete"
	WallElevatorShaft WallType = "Elevator Shaft"
)

type WallType string

func (w WallType) String() string {
	return string(w)
}

// WallAttenuations maps a wall type to the attenuation of a single
// traversal in dB.
type WallAttenuations map[WallType]float64

// WallConfig maps a wall type to the number of such walls on the path.
type WallConfig map[WallType]int

// DefaultWallAttenuations returns typical 2.4 GHz attenuation per wall.
func DefaultWallAttenuations() WallAttenuations {
	return WallAttenuations{
		WallDrywall:       3,
		WallBookshelf:     2,
		WallExteriorGlass: 3,
		WallSolidWoodDoor: 6,
		WallMarble:        6,
		WallBrick:         10,
		WallConcrete:      12,
		WallElevatorShaft: 30,
	}
}

// WallLossDb sums the attenuation of all walls in the configuration.
// Every wall type of the configuration must be present in the table; table
// entries missing from the configuration count as zero walls.
func WallLossDb(walls WallConfig, table WallAttenuations) (float64, error) {
	var total float64
	for _, wall := range slices.Sorted(maps.Keys(walls)) {
		count := walls[wall]
		if count < 0 {
			return 0, NewConfigError(fmt.Sprintf("linkbudget.WallConfig: negative count for %q: %d", wall, count))
		}

		attenuation, ok := table[wall]
		if !ok {
			return 0, NewConfigError(fmt.Sprintf("linkbudget.WallConfig: unknown wall type: %q", wall))
		}
		total += float64(count) * attenuation
	}

	return total, nil
}
