package config

import "sort"

// Presets are named parameter sets from the reference cases.
var Presets = map[string]*Config{
	// Steel rod with a 1% modulus spread, the book's baseline case.
	"steel-rod": DefaultConfig(),
	"soft-rod": {
		MonteCarlo: MonteCarloConfig{
			E0: 7.0e10, SigmaE: 2.1e9, Damping: 0.04,
			NumSamples: 2000, NumFreqPoints: 401, FreqMax: 200,
		},
		Chaos: ChaosConfig{
			E0: 7.0e10, SigmaE: 2.1e9, Damping: 0.04,
			Order: 2, NumFreqPoints: 401, FreqMax: 200,
		},
		Oscillator: DefaultConfig().Oscillator,
	},
	// Oscillator with the book's 5% damping and unit natural frequency.
	"book-oscillator": DefaultConfig(),
	"light-damping": {
		MonteCarlo: DefaultConfig().MonteCarlo,
		Chaos:      DefaultConfig().Chaos,
		Oscillator: OscillatorConfig{
			Xi0: 0.01, Omega0: 1.0, SigmaXi: 0.002, SigmaOmega: 0.02,
			FAmplitude: 1.0, MCSamples: 10000,
			NumFreqPoints: 300, FreqMin: 0.01, FreqMax: 3.0,
		},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
