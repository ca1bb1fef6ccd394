package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/stardyn/internal/config"
	"github.com/san-kum/stardyn/internal/dynamics"
	"github.com/san-kum/stardyn/internal/store"
	"github.com/san-kum/stardyn/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	method     string
	ltteOn     bool
	start      float64
	stop       float64
	num        int
	saveRun    bool
	jsonOut    bool
	starName   string
	column     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stardyn",
		Short: "hierarchical multi-star orbital dynamics",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".stardyn", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "compute trajectories for a system",
		RunE:  runCompute,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "system config file (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "binary", "built-in system preset")
	runCmd.Flags().StringVar(&method, "method", "", "dynamics method (keplerian|rk45|bs)")
	runCmd.Flags().BoolVar(&ltteOn, "ltte", false, "light travel time correction")
	runCmd.Flags().Float64Var(&start, "start", 0, "first time (d)")
	runCmd.Flags().Float64Var(&stop, "stop", 10, "last time (d)")
	runCmd.Flags().IntVar(&num, "num", 1001, "number of samples")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "save run to the data directory")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "write result as JSON to stdout")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a trajectory column of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&starName, "star", "", "star name (default: first)")
	plotCmd.Flags().StringVar(&column, "column", "w", "column: u|v|w|vu|vv|vw")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare keplerian and rk45 trajectories",
		RunE:  compareMethods,
	}
	compareCmd.Flags().StringVar(&configFile, "config", "", "system config file (yaml)")
	compareCmd.Flags().StringVar(&preset, "preset", "binary", "built-in system preset")
	compareCmd.Flags().Float64Var(&start, "start", 0, "first time (d)")
	compareCmd.Flags().Float64Var(&stop, "stop", 100, "last time (d)")
	compareCmd.Flags().IntVar(&num, "num", 2001, "number of samples")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "live sky-plane view of a system",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "system config file (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "binary", "built-in system preset")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in system presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, compareCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the --config/--preset pair and applies the time
// and method flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if method != "" {
		cfg.Compute.Method = method
	}
	if cmd.Flags().Changed("ltte") {
		cfg.Compute.LTTE = ltteOn
	}
	if cmd.Flags().Changed("start") || cmd.Flags().Changed("stop") || cmd.Flags().Changed("num") {
		cfg.Compute.Times = config.TimesConfig{Start: start, Stop: stop, Num: num}
	}
	return cfg, nil
}

func runCompute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	res, err := config.RunCompute(cfg)
	if err != nil {
		return err
	}

	if jsonOut {
		return store.ExportJSON(os.Stdout, cfg.Compute.Method, cfg.Compute.LTTE, res)
	}

	if saveRun {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		label := preset
		if configFile != "" {
			label = "config"
		}
		runID, err := st.Save(label, cfg.Compute.Method, cfg.Compute.LTTE, res)
		if err != nil {
			return err
		}
		fmt.Printf("saved run %s\n", runID)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "star\tsamples\tu range (solRad)\trv range (solRad/d)")
	for ci, name := range res.Names {
		uMin, uMax := minMax(res.U[ci])
		rvMin, rvMax := minMax(res.VW[ci])
		fmt.Fprintf(w, "%s\t%d\t[%.3f, %.3f]\t[%.3f, %.3f]\n", name, len(res.Times), uMin, uMax, rvMin, rvMax)
	}
	if res.EnergyDrift > 0 {
		fmt.Fprintf(w, "energy drift\t%.3e\t\t\n", res.EnergyDrift)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := store.New(dataDir).List()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tmethod\tltte\tstars\tsamples\ttimestamp")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%v\t%d\t%d\t%s\n",
			r.ID, r.Method, r.LTTE, len(r.Stars), r.Samples, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	res, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	ci := 0
	if starName != "" {
		if ci = res.BodyIndex(starName); ci < 0 {
			return fmt.Errorf("no star %q in run %s (have %v)", starName, args[0], res.Names)
		}
	}

	var series []float64
	switch column {
	case "u":
		series = res.U[ci]
	case "v":
		series = res.V[ci]
	case "w":
		series = res.W[ci]
	case "vu":
		series = res.VU[ci]
	case "vv":
		series = res.VV[ci]
	case "vw":
		series = res.VW[ci]
	default:
		return fmt.Errorf("unknown column %q", column)
	}

	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(20),
		asciigraph.Width(90),
		asciigraph.Caption(fmt.Sprintf("%s %s vs sample", res.Names[ci], column))))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	res, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	return store.ExportJSON(os.Stdout, meta.Method, meta.LTTE, res)
}

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sys, err := cfg.Hierarchy()
	if err != nil {
		return err
	}
	times := cfg.Compute.Times.Expand()

	kres, err := dynamics.Compute(sys, times, dynamics.Options{Method: dynamics.Keplerian})
	if err != nil {
		return err
	}
	nres, err := dynamics.Compute(sys, times, dynamics.Options{Method: dynamics.NBodyRK45})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "star\tmax |dpos| (solRad)\tmax |dvel| (solRad/d)")
	for ci, name := range kres.Names {
		dpos, dvel := 0.0, 0.0
		for ti := range times {
			dpos = math.Max(dpos, math.Abs(kres.U[ci][ti]-nres.U[ci][ti]))
			dpos = math.Max(dpos, math.Abs(kres.V[ci][ti]-nres.V[ci][ti]))
			dpos = math.Max(dpos, math.Abs(kres.W[ci][ti]-nres.W[ci][ti]))
			dvel = math.Max(dvel, math.Abs(kres.VU[ci][ti]-nres.VU[ci][ti]))
			dvel = math.Max(dvel, math.Abs(kres.VV[ci][ti]-nres.VV[ci][ti]))
			dvel = math.Max(dvel, math.Abs(kres.VW[ci][ti]-nres.VW[ci][ti]))
		}
		fmt.Fprintf(w, "%s\t%.3e\t%.3e\n", name, dpos, dvel)
	}
	fmt.Fprintf(w, "energy drift (rk45)\t%.3e\t\n", nres.EnergyDrift)
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sys, err := cfg.Hierarchy()
	if err != nil {
		return err
	}
	label := preset
	if configFile != "" {
		label = configFile
	}
	return viz.Run(sys, label)
}

func minMax(vals []float64) (float64, float64) {
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
