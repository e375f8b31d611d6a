package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"galmag/internal/analysis"
	"galmag/internal/config"
	"galmag/internal/export"
	"galmag/internal/grid"
	"galmag/internal/halo"
	"galmag/internal/storage"
	"galmag/internal/tui"
	"galmag/internal/viz"
)

var (
	dataDir string
	// compute flags
	configFile   string
	preset       string
	runName      string
	dynamoNumber float64
	rAlpha       float64
	diskRadius   float64
	scaleHeight  float64
	haloRadius   float64
	// plot flags
	profileBins int
	profilePNG  string
	heatmapPNG  string
	// spectrum flags
	ringRadius  float64
	ringSamples int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "galmag",
		Short: "galactic magnetic field models",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".galmag", "data directory")

	computeCmd := &cobra.Command{
		Use:   "compute",
		Short: "compute a field on a grid and save the run",
		RunE:  computeField,
	}
	computeCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	computeCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	computeCmd.Flags().StringVar(&runName, "name", "field", "run name")
	computeCmd.Flags().Float64Var(&dynamoNumber, "dynamo", -20.0, "disk dynamo number")
	computeCmd.Flags().Float64Var(&rAlpha, "ralpha", 1.0, "disk alpha effect strength")
	computeCmd.Flags().Float64Var(&diskRadius, "disk-radius", 17.0, "disk radius")
	computeCmd.Flags().Float64Var(&scaleHeight, "scale-height", 0.4, "disk scale height")
	computeCmd.Flags().Float64Var(&haloRadius, "halo-radius", 15.0, "halo radius")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot radial strength profile",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&profileBins, "bins", 20, "radial bins")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "azimuthal mode spectrum at a midplane ring",
		Args:  cobra.ExactArgs(1),
		RunE:  spectrumRun,
	}
	spectrumCmd.Flags().Float64Var(&ringRadius, "radius", 0.5, "ring radius as a fraction of the box")
	spectrumCmd.Flags().IntVar(&ringSamples, "samples", 64, "samples around the ring")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and plots",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&profilePNG, "profile", "", "write radial profile PNG")
	exportCmd.Flags().StringVar(&heatmapPNG, "heatmap", "", "write midplane heatmap PNG")
	exportCmd.Flags().IntVar(&profileBins, "bins", 20, "radial bins")

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "browse field slices interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  viewRun,
	}

	modesCmd := &cobra.Command{
		Use:   "modes",
		Short: "list halo free-decay modes",
		RunE:  listModes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(computeCmd, listCmd, plotCmd, spectrumCmd, exportCmd, viewCmd, modesCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func computeField(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override preset and config file values.
	if cmd.Flags().Changed("dynamo") {
		cfg.Disk.DynamoNumber = dynamoNumber
	}
	if cmd.Flags().Changed("ralpha") {
		cfg.Disk.RAlpha = rAlpha
	}
	if cmd.Flags().Changed("disk-radius") {
		cfg.Disk.Radius = diskRadius
	}
	if cmd.Flags().Changed("scale-height") {
		cfg.Disk.ScaleHeight = scaleHeight
	}
	if cmd.Flags().Changed("halo-radius") {
		cfg.Halo.Radius = haloRadius
	}
	if !cmd.Flags().Changed("data") && cfg.DataDir != "" {
		dataDir = cfg.DataDir
	}

	model, err := cfg.BuildModel()
	if err != nil {
		return err
	}

	fmt.Println("computing field...")
	start := time.Now()

	field, err := model.Evaluate()
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	summary := analysis.Summarize(field.Bx, field.By, field.Bz)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	metrics := map[string]float64{
		"mean_magnitude": summary.MeanMagnitude,
		"max_magnitude":  summary.MaxMagnitude,
		"energy_density": summary.EnergyDensity,
		"invalid":        float64(summary.Invalid),
	}
	runID, err := st.Save(runName, model.Grid(), field, metrics)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Println(viz.RenderSummary(runID, summary))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tGRID\tRESOLUTION\tMEAN |B|")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dx%dx%d\t%.4g\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.GridType,
			run.Resolution[0], run.Resolution[1], run.Resolution[2],
			run.Metrics["mean_magnitude"],
		)
	}
	return w.Flush()
}

func loadRunGrid(meta *storage.RunMetadata) (*grid.Grid, error) {
	return grid.New(meta.Box, meta.Resolution, grid.Type(meta.GridType))
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}

	g, err := loadRunGrid(&run.Meta)
	if err != nil {
		return err
	}

	_, mean, err := export.RadialProfile(g, run.Field, profileBins)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", run.Meta.ID)
	fmt.Println(viz.RenderProfile(mean, 10))

	summary := analysis.Summarize(run.Field.Bx, run.Field.By, run.Field.Bz)
	fmt.Println(viz.RenderSummary(run.Meta.Name, summary))
	return nil
}

// midplaneRing samples |B| at evenly spaced azimuths on the z-slice nearest
// the midplane, using nearest-point lookup on the run's cartesian grid.
func midplaneRing(g *grid.Grid, mags []float64, radius float64, samples int) []float64 {
	box := g.Box()
	res := g.Resolution()

	nearest := func(v float64, axis int) int {
		lo, hi := box[axis][0], box[axis][1]
		if res[axis] == 1 || hi == lo {
			return 0
		}
		i := int(math.Round((v - lo) / (hi - lo) * float64(res[axis]-1)))
		if i < 0 {
			i = 0
		}
		if i >= res[axis] {
			i = res[axis] - 1
		}
		return i
	}

	k := nearest(0, 2)
	ring := make([]float64, samples)
	for s := 0; s < samples; s++ {
		phi := 2 * math.Pi * float64(s) / float64(samples)
		x := radius * math.Cos(phi)
		y := radius * math.Sin(phi)
		ring[s] = mags[g.Idx(nearest(x, 0), nearest(y, 1), k)]
	}
	return ring
}

func spectrumRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}

	g, err := loadRunGrid(&run.Meta)
	if err != nil {
		return err
	}
	if g.Type() != grid.Cartesian {
		return fmt.Errorf("spectrum requires a cartesian run, got %s", g.Type())
	}

	box := g.Box()
	radius := ringRadius * box[0][1]
	ring := midplaneRing(g, run.Field.Magnitude(), radius, ringSamples)

	power := analysis.AzimuthalSpectrum(ring)
	fmt.Printf("run: %s\nring radius: %.4g\n", run.Meta.ID, radius)
	fmt.Println(viz.RenderSpectrum(power[:min(len(power), 9)]))
	fmt.Printf("dominant mode: m=%d\n", analysis.DominantMode(power))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}

	g, err := loadRunGrid(&run.Meta)
	if err != nil {
		return err
	}

	if profilePNG != "" {
		if err := export.SaveProfilePlot(g, run.Field, profileBins, profilePNG); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", profilePNG)
	}
	if heatmapPNG != "" {
		if err := export.SaveMidplaneHeatmap(g, run.Field, heatmapPNG); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", heatmapPNG)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(run.Meta)
}

func viewRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%s  |B| slices", run.Meta.ID)
	return tui.Run(title, run.Meta.Resolution, run.Field.Magnitude())
}

func listModes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tSYMMETRY\tTYPE\tGROWTH RATE")
	for m := halo.S1; m <= halo.A4; m++ {
		symmetry := "antisymmetric"
		if m.Symmetric() {
			symmetry = "symmetric"
		}
		kind := "poloidal"
		if m.Toroidal() {
			kind = "toroidal"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.6g\n", m, symmetry, kind, m.Gamma())
	}
	return w.Flush()
}
