package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/turbsim/internal/config"
	"github.com/san-kum/turbsim/internal/host"
	"github.com/san-kum/turbsim/internal/monitor"
	"github.com/san-kum/turbsim/internal/registry"
	"github.com/san-kum/turbsim/internal/storage"
	"github.com/san-kum/turbsim/internal/tui"
)

var (
	dataDir     string
	configFile  string
	dt          float64
	duration    float64
	control     string
	omegaTarget float64
	monitorAddr string
	plotVar     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "turbsim",
		Short: "wind turbine controller simulation harness",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".turbsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a closed-loop simulation",
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().StringVar(&control, "control", "", "turbine control stage name")
	runCmd.Flags().Float64Var(&omegaTarget, "target", config.DefaultTarget, "target rotor speed (rad/s)")
	runCmd.Flags().StringVar(&monitorAddr, "monitor", "", "serve live values over HTTP on this address")

	stagesCmd := &cobra.Command{
		Use:   "stages",
		Short: "list registered stage implementations",
		RunE:  listStages,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotVar, "var", "torque", "series column to plot")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with a live terminal dashboard",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	liveCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	liveCmd.Flags().StringVar(&control, "control", "", "turbine control stage name")

	rootCmd.AddCommand(runCmd, stagesCmd, listCmd, plotCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: file if given, defaults
// otherwise, with changed CLI flags overriding either.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("dt") {
		cfg.Sim.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Sim.Duration = duration
	}
	if cmd.Flags().Changed("control") {
		cfg.Stages.TurbineControl = control
	}
	if cmd.Flags().Changed("target") {
		cfg.Control.OmegaTarget = omegaTarget
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	h, err := host.New(cfg)
	if err != nil {
		return err
	}

	var mon *monitor.Monitor
	if monitorAddr != "" {
		mon = monitor.New(monitorAddr)
		mon.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			mon.Shutdown(ctx)
		}()
		fmt.Printf("monitor listening on %s\n", monitorAddr)
	}

	fmt.Printf("running %s for %.1fs at dt=%.3fs...\n",
		cfg.Stages.TurbineControl, cfg.Sim.Duration, cfg.Sim.Dt)
	start := time.Now()

	ticks := 0
	result, err := h.RunWithCallback(context.Background(), func(t host.Tick) bool {
		ticks++
		if mon != nil {
			mon.Update(t.Time, ticks, h.Dynamic())
		}
		return true
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.Ticks)
	if n := len(result.Torque); n > 0 {
		fmt.Printf("final torque demand: %.1f N·m\n", result.Torque[n-1])
	}

	return nil
}

func listStages(cmd *cobra.Command, args []string) error {
	reg, err := registry.Default()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tNAMES")
	fmt.Fprintf(w, "%s\t%v\n", reg.Control.Kind(), reg.Control.Names())
	fmt.Fprintf(w, "%s\t%v\n", reg.Drivetrain.Kind(), reg.Drivetrain.Names())
	fmt.Fprintf(w, "%s\t%v\n", reg.FlowModel.Kind(), reg.FlowModel.Names())
	fmt.Fprintf(w, "%s\t%v\n", reg.Motion.Kind(), reg.Motion.Names())
	fmt.Fprintf(w, "%s\t%v\n", reg.Integrator.Kind(), reg.Integrator.Names())
	fmt.Fprintf(w, "%s\t%v\n", reg.Interface.Kind(), reg.Interface.Names())
	fmt.Fprintf(w, "%s\t%v\n", reg.Entry.Kind(), reg.Entry.Names())
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tCONTROL\tTIME\tDURATION\tDT\tTICKS\tFINAL TORQUE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%.3fs\t%d\t%.1f\n",
			run.ID,
			run.TurbineControl,
			run.Timestamp.Format("2006-01-02 15:04"),
			run.Duration,
			run.Dt,
			run.Ticks,
			run.FinalTorque)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	data, ok := series[plotVar]
	if !ok {
		cols := make([]string, 0, len(series))
		for name := range series {
			cols = append(cols, name)
		}
		return fmt.Errorf("no column %q in run %s (have %v)", plotVar, args[0], cols)
	}
	if len(data) == 0 {
		return fmt.Errorf("column %q of run %s is empty", plotVar, args[0])
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(plotVar),
	)
	fmt.Println(graph)
	fmt.Println()
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	result, err := tui.Run(cfg)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s (%d ticks)\n", runID, result.Ticks)
	return nil
}
