package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nmetrology/uqsim/internal/engine"
)

// Config collects the tunable inputs of every operation. Zero fields fall
// back to the engine defaults during request validation.
type Config struct {
	MonteCarlo MonteCarloConfig `yaml:"monte_carlo"`
	Chaos      ChaosConfig      `yaml:"polynomial_chaos"`
	Oscillator OscillatorConfig `yaml:"linear_oscillator"`
}

type MonteCarloConfig struct {
	E0            float64 `yaml:"e0"`
	SigmaE        float64 `yaml:"sigma_e"`
	Damping       float64 `yaml:"damping"`
	NumSamples    int     `yaml:"num_samples"`
	NumFreqPoints int     `yaml:"num_freq_points"`
	FreqMax       float64 `yaml:"freq_max"`
	Seed          uint64  `yaml:"seed"`
}

type ChaosConfig struct {
	E0            float64 `yaml:"e0"`
	SigmaE        float64 `yaml:"sigma_e"`
	Damping       float64 `yaml:"damping"`
	Order         int     `yaml:"order"`
	NumFreqPoints int     `yaml:"num_freq_points"`
	FreqMax       float64 `yaml:"freq_max"`
}

type OscillatorConfig struct {
	Xi0           float64 `yaml:"xi0"`
	Omega0        float64 `yaml:"omega0"`
	SigmaXi       float64 `yaml:"sigma_xi"`
	SigmaOmega    float64 `yaml:"sigma_omega"`
	FAmplitude    float64 `yaml:"f_amplitude"`
	MCSamples     int     `yaml:"mc_samples"`
	NumFreqPoints int     `yaml:"num_freq_points"`
	FreqMin       float64 `yaml:"freq_min"`
	FreqMax       float64 `yaml:"freq_max"`
	Seed          uint64  `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		MonteCarlo: MonteCarloConfig{
			E0:            engine.DefaultE0,
			SigmaE:        engine.DefaultSigmaE,
			Damping:       engine.DefaultDamping,
			NumSamples:    engine.DefaultSamples,
			NumFreqPoints: engine.DefaultFreqPoints,
			FreqMax:       engine.DefaultFreqMax,
		},
		Chaos: ChaosConfig{
			E0:            engine.DefaultE0,
			SigmaE:        engine.DefaultSigmaE,
			Damping:       engine.DefaultDamping,
			Order:         2,
			NumFreqPoints: engine.DefaultFreqPoints,
			FreqMax:       engine.DefaultFreqMax,
		},
		Oscillator: OscillatorConfig{
			Xi0:           engine.DefaultXi0,
			Omega0:        engine.DefaultOmega0,
			SigmaXi:       engine.DefaultSigmaXi,
			SigmaOmega:    engine.DefaultSigmaOmega,
			FAmplitude:    engine.DefaultFAmplitude,
			MCSamples:     engine.DefaultOscSamples,
			NumFreqPoints: engine.DefaultOscPoints,
			FreqMin:       engine.DefaultOscFreqMin,
			FreqMax:       engine.DefaultOscFreqMax,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// MonteCarloRequest converts the config section to an engine request.
func (c *Config) MonteCarloRequest() engine.MonteCarloRequest {
	m := c.MonteCarlo
	return engine.MonteCarloRequest{
		E0:            m.E0,
		SigmaE:        m.SigmaE,
		Damping:       m.Damping,
		NumSamples:    m.NumSamples,
		NumFreqPoints: m.NumFreqPoints,
		FreqMax:       m.FreqMax,
		Seed:          m.Seed,
	}
}

func (c *Config) ChaosRequest() engine.ChaosRequest {
	h := c.Chaos
	return engine.ChaosRequest{
		E0:            h.E0,
		SigmaE:        h.SigmaE,
		Damping:       h.Damping,
		Order:         h.Order,
		NumFreqPoints: h.NumFreqPoints,
		FreqMax:       h.FreqMax,
	}
}

func (c *Config) OscillatorRequest() engine.OscillatorRequest {
	o := c.Oscillator
	return engine.OscillatorRequest{
		Xi0:           o.Xi0,
		Omega0:        o.Omega0,
		SigmaXi:       o.SigmaXi,
		SigmaOmega:    o.SigmaOmega,
		FAmplitude:    o.FAmplitude,
		MCSamples:     o.MCSamples,
		NumFreqPoints: o.NumFreqPoints,
		FreqMin:       o.FreqMin,
		FreqMax:       o.FreqMax,
		Seed:          o.Seed,
	}
}
