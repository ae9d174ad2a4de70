package config

import (
	"math"
	"sort"
)

var Presets = map[string]map[string]*Config{
	"dispersion": {
		"problem2-3": {
			Figure: "dispersion", Courant: 0.5,
			Range: RangeConfig{Min: 1, Max: 10, Steps: 100}, AttenuationSteps: 100,
		},
		"high-courant": {
			Figure: "dispersion", Courant: 0.9,
			Range: RangeConfig{Min: 1.8, Max: 10, Steps: 100}, AttenuationSteps: 100,
		},
		"low-courant": {
			Figure: "dispersion", Courant: 0.25,
			Range: RangeConfig{Min: 1, Max: 10, Steps: 200}, AttenuationSteps: 200,
		},
	},
	"error1d": {
		"problem2-5": {
			Figure: "error1d", Courant: 0.5,
			Range: RangeConfig{Min: 3, Max: 80, Steps: 100},
		},
		"fine": {
			Figure: "error1d", Courant: 0.5,
			Range: RangeConfig{Min: 10, Max: 1000, Steps: 400},
		},
	},
	"error2d": {
		"problem2-6": {
			Figure: "error2d", Courant: math.Sqrt2 / 2, ThetaDeg: 0,
			Range: RangeConfig{Min: 3, Max: 80, Steps: 100},
		},
		"diagonal": {
			Figure: "error2d", Courant: 0.5, ThetaDeg: 45,
			Range: RangeConfig{Min: 3, Max: 80, Steps: 100},
		},
		"oblique": {
			Figure: "error2d", Courant: 0.5, ThetaDeg: 30,
			Range: RangeConfig{Min: 3, Max: 80, Steps: 100},
		},
	},
}

// GetPreset returns a copy of the named preset with chart and logging
// defaults filled in, or nil.
func GetPreset(figure, preset string) *Config {
	figurePresets, ok := Presets[figure]
	if !ok {
		return nil
	}
	p, ok := figurePresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Figure = p.Figure
	cfg.Courant = p.Courant
	cfg.ThetaDeg = p.ThetaDeg
	cfg.Range = p.Range
	if p.AttenuationSteps != 0 {
		cfg.AttenuationSteps = p.AttenuationSteps
	}
	return cfg
}

// ListPresets returns the preset names of a figure in sorted order.
func ListPresets(figure string) []string {
	figurePresets, ok := Presets[figure]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(figurePresets))
	for name := range figurePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
