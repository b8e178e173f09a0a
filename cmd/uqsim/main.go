package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nmetrology/uqsim/internal/config"
	"github.com/nmetrology/uqsim/internal/engine"
)

var (
	configFile string
	preset     string
	outFile    string
	verbose    bool

	// monte carlo / chaos
	e0         float64
	sigmaE     float64
	damping    float64
	numSamples int
	freqPoints int
	freqMax    float64
	seed       uint64
	order      int

	// oscillator
	xi0        float64
	omega0     float64
	sigmaXi    float64
	sigmaOmega float64
	amplitude  float64
	freqMin    float64

	// taguchi
	factorSpecs []string

	// pca
	inputFile string
)

var log zerolog.Logger

func main() {
	rootCmd := &cobra.Command{
		Use:           "uqsim",
		Short:         "uncertainty propagation and dimensionality reduction engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset parameters")
	rootCmd.PersistentFlags().StringVar(&outFile, "out", "", "write result JSON to file instead of stdout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	mcCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "rod-mesh monte carlo uncertainty band",
		RunE:  runMonteCarlo,
	}
	mcCmd.Flags().Float64Var(&e0, "e0", 0, "nominal Young's modulus (Pa)")
	mcCmd.Flags().Float64Var(&sigmaE, "sigma-e", 0, "modulus standard deviation (Pa)")
	mcCmd.Flags().Float64Var(&damping, "damping", 0, "damping ratio")
	mcCmd.Flags().IntVar(&numSamples, "samples", 0, "monte carlo sample count")
	mcCmd.Flags().IntVar(&freqPoints, "points", 0, "frequency grid size")
	mcCmd.Flags().Float64Var(&freqMax, "freq-max", 0, "maximum frequency (Hz)")
	mcCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = time-based)")

	chaosCmd := &cobra.Command{
		Use:   "chaos",
		Short: "rod-mesh polynomial chaos surrogate",
		RunE:  runChaos,
	}
	chaosCmd.Flags().Float64Var(&e0, "e0", 0, "nominal Young's modulus (Pa)")
	chaosCmd.Flags().Float64Var(&sigmaE, "sigma-e", 0, "modulus standard deviation (Pa)")
	chaosCmd.Flags().Float64Var(&damping, "damping", 0, "damping ratio")
	chaosCmd.Flags().IntVar(&order, "order", 0, "chaos expansion order")
	chaosCmd.Flags().IntVar(&freqPoints, "points", 0, "frequency grid size")
	chaosCmd.Flags().Float64Var(&freqMax, "freq-max", 0, "maximum frequency (Hz)")

	taguchiCmd := &cobra.Command{
		Use:   "taguchi",
		Short: "L9 orthogonal array design",
		Long: `Generate an L9(3^4) orthogonal array for up to four factors.
Each factor is given as name=level1,level2,level3, for example:

  uqsim taguchi --factor E_modulus=2.0e11,2.1e11,2.2e11 --factor damping=0.02,0.04,0.06`,
		RunE: runTaguchi,
	}
	taguchiCmd.Flags().StringArrayVar(&factorSpecs, "factor", nil, "factor as name=l1,l2,l3 (repeatable)")

	oscCmd := &cobra.Command{
		Use:   "oscillator",
		Short: "damped oscillator: monte carlo vs orthogonal-array dispersion",
		RunE:  runOscillator,
	}
	oscCmd.Flags().Float64Var(&xi0, "xi0", 0, "nominal damping ratio")
	oscCmd.Flags().Float64Var(&omega0, "omega0", 0, "nominal natural frequency (rad/s)")
	oscCmd.Flags().Float64Var(&sigmaXi, "sigma-xi", 0, "damping ratio standard deviation")
	oscCmd.Flags().Float64Var(&sigmaOmega, "sigma-omega", 0, "natural frequency standard deviation")
	oscCmd.Flags().Float64Var(&amplitude, "amplitude", 0, "forcing amplitude")
	oscCmd.Flags().IntVar(&numSamples, "samples", 0, "monte carlo sample count")
	oscCmd.Flags().IntVar(&freqPoints, "points", 0, "frequency grid size")
	oscCmd.Flags().Float64Var(&freqMin, "freq-min", 0, "minimum forcing frequency (rad/s)")
	oscCmd.Flags().Float64Var(&freqMax, "freq-max", 0, "maximum forcing frequency (rad/s)")
	oscCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = time-based)")

	pcaCmd := &cobra.Command{
		Use:   "pca",
		Short: "principal component analysis of a csv matrix",
		RunE:  runPCA,
	}
	pcaCmd.Flags().StringVar(&inputFile, "input", "", "csv file, one observation per row")
	pcaCmd.MarkFlagRequired("input")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named parameter presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(mcCmd, chaosCmd, taguchiCmd, oscCmd, pcaCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves --preset and --config, flags overriding both.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (try: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	return cfg, nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	req := cfg.MonteCarloRequest()
	overrideFloat(cmd, "e0", &req.E0, e0)
	overrideFloat(cmd, "sigma-e", &req.SigmaE, sigmaE)
	overrideFloat(cmd, "damping", &req.Damping, damping)
	overrideInt(cmd, "samples", &req.NumSamples, numSamples)
	overrideInt(cmd, "points", &req.NumFreqPoints, freqPoints)
	overrideFloat(cmd, "freq-max", &req.FreqMax, freqMax)
	if cmd.Flags().Changed("seed") {
		req.Seed = seed
	}

	start := time.Now()
	res, err := engine.RunMonteCarlo(context.Background(), req)
	if err != nil {
		return err
	}
	log.Debug().Int("samples", res.NumSamples).Dur("elapsed", time.Since(start)).Msg("monte carlo done")

	return emit(res)
}

func runChaos(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	req := cfg.ChaosRequest()
	overrideFloat(cmd, "e0", &req.E0, e0)
	overrideFloat(cmd, "sigma-e", &req.SigmaE, sigmaE)
	overrideFloat(cmd, "damping", &req.Damping, damping)
	overrideInt(cmd, "order", &req.Order, order)
	overrideInt(cmd, "points", &req.NumFreqPoints, freqPoints)
	overrideFloat(cmd, "freq-max", &req.FreqMax, freqMax)

	res, err := engine.RunChaos(context.Background(), req)
	if err != nil {
		return err
	}
	log.Debug().Int("evaluations", res.NumEvaluations).Msg("chaos done")

	return emit(res)
}

func runTaguchi(cmd *cobra.Command, args []string) error {
	if len(factorSpecs) == 0 {
		return fmt.Errorf("at least one --factor is required")
	}

	req := engine.TaguchiRequest{}
	for _, spec := range factorSpecs {
		name, rest, ok := strings.Cut(spec, "=")
		if !ok {
			return fmt.Errorf("factor %q: expected name=l1,l2,l3", spec)
		}
		parts := strings.Split(rest, ",")
		levels := make([]float64, 0, len(parts))
		for _, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return fmt.Errorf("factor %q: level %q is not numeric", name, p)
			}
			levels = append(levels, v)
		}
		req.Factors = append(req.Factors, engine.FactorSpec{Name: name, Levels: levels})
	}

	res, err := engine.RunTaguchi(context.Background(), req)
	if err != nil {
		return err
	}
	return emit(res)
}

func runOscillator(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	req := cfg.OscillatorRequest()
	overrideFloat(cmd, "xi0", &req.Xi0, xi0)
	overrideFloat(cmd, "omega0", &req.Omega0, omega0)
	overrideFloat(cmd, "sigma-xi", &req.SigmaXi, sigmaXi)
	overrideFloat(cmd, "sigma-omega", &req.SigmaOmega, sigmaOmega)
	overrideFloat(cmd, "amplitude", &req.FAmplitude, amplitude)
	overrideInt(cmd, "samples", &req.MCSamples, numSamples)
	overrideInt(cmd, "points", &req.NumFreqPoints, freqPoints)
	overrideFloat(cmd, "freq-min", &req.FreqMin, freqMin)
	overrideFloat(cmd, "freq-max", &req.FreqMax, freqMax)
	if cmd.Flags().Changed("seed") {
		req.Seed = seed
	}

	res, err := engine.RunOscillator(context.Background(), req)
	if err != nil {
		return err
	}
	log.Debug().
		Int("mc_samples", res.MonteCarlo.Samples).
		Int("taguchi_points", res.Taguchi.Points).
		Float64("mc_time_s", res.MonteCarlo.TimeS).
		Float64("taguchi_time_s", res.Taguchi.TimeS).
		Msg("oscillator comparison done")

	return emit(res)
}

func runPCA(cmd *cobra.Command, args []string) error {
	matrix, err := readCSVMatrix(inputFile)
	if err != nil {
		return err
	}

	res, err := engine.RunPCA(context.Background(), engine.PCARequest{DataMatrix: matrix})
	if err != nil {
		return err
	}
	log.Debug().Int("observations", res.NObservations).Int("variables", res.NVariables).Msg("pca done")

	return emit(res)
}

func readCSVMatrix(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	matrix := make([][]float64, 0, len(records))
	for i, record := range records {
		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				// A non-numeric first row is treated as a header.
				if i == 0 {
					row = nil
					break
				}
				return nil, fmt.Errorf("row %d column %d: %q is not numeric", i, j, field)
			}
			row[j] = v
		}
		if row != nil {
			matrix = append(matrix, row)
		}
	}
	return matrix, nil
}

func emit(result any) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	if outFile != "" {
		return os.WriteFile(outFile, append(data, '\n'), 0644)
	}
	fmt.Println(string(data))
	return nil
}

func overrideFloat(cmd *cobra.Command, flag string, dst *float64, val float64) {
	if cmd.Flags().Changed(flag) {
		*dst = val
	}
}

func overrideInt(cmd *cobra.Command, flag string, dst *int, val int) {
	if cmd.Flags().Changed(flag) {
		*dst = val
	}
}
