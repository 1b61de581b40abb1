package linkbudget

import (
	"errors"
	"testing"
)

func TestWallLossDb(t *testing.T) {
	tests := []struct {
		name     string
		walls    WallConfig
		expected float64
	}{
		{"single drywall", WallConfig{WallDrywall: 1}, 3},
		{"empty", WallConfig{}, 0},
		{"zero counts", WallConfig{WallDrywall: 0, WallBrick: 0}, 0},
		{"mixed", WallConfig{WallDrywall: 2, WallConcrete: 1, WallElevatorShaft: 1}, 48},
		{"every type once", WallConfig{
			WallDrywall: 1, WallBookshelf: 1, WallExteriorGlass: 1, WallSolidWoodDoor: 1,
			WallMarble: 1, WallBrick: 1, WallConcrete: 1, WallElevatorShaft: 1,
		}, 72},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WallLossDb(tt.walls, DefaultWallAttenuations())
			if err != nil {
				t.Fatalf("WallLossDb: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %g dB, got %g dB", tt.expected, got)
			}
		})
	}
}

func TestWallLossDbInvalid(t *testing.T) {
	tests := []struct {
		name  string
		walls WallConfig
	}{
		{"unknown type", WallConfig{"Plasterboard": 1}},
		{"unknown type with zero count", WallConfig{"Plasterboard": 0}},
		{"negative count", WallConfig{WallBrick: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WallLossDb(tt.walls, DefaultWallAttenuations())

			var configErr *ConfigError
			if !errors.As(err, &configErr) {
				t.Errorf("expected ConfigError, got %v", err)
			}
		})
	}
}
