package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"plotdojo/internal/app"
	"plotdojo/internal/content"

	"github.com/spf13/cobra"
)

// flagCfg only receives values from parsed flags; buildConfig copies the
// changed ones over the env-derived config so precedence stays
// defaults < env < flags.
var flagCfg = app.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "plotdojo",
	Short: "plotdojo - figure critique trainer for the terminal",
	Long: `plotdojo renders deliberately flawed plots in the terminal and scores
you on spotting the flaws.

Pick a challenge from the catalog, click (or arrow) onto the region that
looks wrong, claim the issue from the rubric, then check your claims
against the answer key. Some figures are clean; saying "no issue here"
can be the whole exercise.

Run without arguments to open the catalog.`,
	Version:      "0.4.0",
	SilenceUsage: true,
	RunE:         runTUI,
}

var packsCmd = &cobra.Command{
	Use:   "packs",
	Short: "List and validate challenge packs",
	Long: `Loads every pack under the packs directory, runs full schema and
rubric-reference validation, and prints a summary without starting the
TUI. Exits non-zero when any pack fails to validate.`,
	RunE: runPacks,
}

func init() {
	f := rootCmd.PersistentFlags()
	d := app.DefaultConfig()
	f.StringVar(&flagCfg.PacksDir, "packs", d.PacksDir, "Directory containing challenge packs")
	f.StringVar(&flagCfg.PackID, "pack", "", "Open this pack directly instead of the catalog")
	f.StringVar(&flagCfg.LogPath, "log", "", "Append JSON logs to this file")
	f.BoolVar(&flagCfg.Debug, "debug", false, "Log debug events")
	f.BoolVar(&flagCfg.Dev, "dev", false, "Enable the dev endpoint and state snapshots")
	f.StringVar(&flagCfg.DevHTTP, "dev-http", d.DevHTTP, "Listen address for the dev endpoint")
	f.StringVar(&flagCfg.DemoScenario, "demo", "", "Stage a demo scenario on startup (requires --dev)")
	f.BoolVar(&flagCfg.ASCIIOnly, "ascii", false, "Render with ASCII glyphs only")
	f.StringVar(&flagCfg.UI.StyleVariant, "style", d.UI.StyleVariant, "Color theme: studio, chalkboard, or mono")
	f.StringVar(&flagCfg.UI.MotionLevel, "motion", d.UI.MotionLevel, "Animation level: off, reduced, or full")
	f.StringVar(&flagCfg.UI.MouseScope, "mouse", d.UI.MouseScope, "Mouse reporting: off, scoped, or full")

	rootCmd.AddCommand(packsCmd)
}

func buildConfig(cmd *cobra.Command) (app.Config, error) {
	cfg := app.DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, fmt.Errorf("reading environment: %w", err)
	}

	fl := cmd.Flags()
	if fl.Changed("packs") {
		cfg.PacksDir = flagCfg.PacksDir
	}
	if fl.Changed("pack") {
		cfg.PackID = flagCfg.PackID
	}
	if fl.Changed("log") {
		cfg.LogPath = flagCfg.LogPath
	}
	if fl.Changed("debug") {
		cfg.Debug = flagCfg.Debug
	}
	if fl.Changed("dev") {
		cfg.Dev = flagCfg.Dev
	}
	if fl.Changed("dev-http") {
		cfg.DevHTTP = flagCfg.DevHTTP
	}
	if fl.Changed("demo") {
		cfg.DemoScenario = flagCfg.DemoScenario
	}
	if fl.Changed("ascii") {
		cfg.ASCIIOnly = flagCfg.ASCIIOnly
	}
	if fl.Changed("style") {
		cfg.UI.StyleVariant = flagCfg.UI.StyleVariant
	}
	if fl.Changed("motion") {
		cfg.UI.MotionLevel = flagCfg.UI.MotionLevel
	}
	if fl.Changed("mouse") {
		cfg.UI.MouseScope = flagCfg.UI.MouseScope
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		a.OnQuit()
	}()

	return a.Run(ctx)
}

func runPacks(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	packs, err := content.NewLoader().LoadPacks(cmd.Context(), cfg.PacksDir)
	if err != nil {
		return err
	}
	if len(packs) == 0 {
		return fmt.Errorf("no packs under %s", cfg.PacksDir)
	}

	for _, p := range packs {
		fmt.Printf("%s  %q v%s  (%d rubric items)\n", p.PackID, p.Title, p.Version, len(p.Rubric))
		for i, ch := range p.LoadedChallenges {
			fmt.Printf("  %2d. %-8s %-6s %s\n", i+1, ch.Type, ch.Difficulty, ch.Title)
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
