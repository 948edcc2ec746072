package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"satscan/internal/events"
	"satscan/internal/geom"
	"satscan/internal/scene"
)

func newSimulateCmd(g *globalFlags) *cobra.Command {
	var (
		ticks int
		dt    time.Duration
		quiet bool
	)
	cmd := &cobra.Command{
		Use:     "simulate",
		Short:   "Run the scene headless for a fixed number of ticks",
		Example: "  satscan simulate --ticks 600\n  satscan simulate -c scene.yaml --ticks 100 --dt 50ms",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ticks < 0 {
				return fmt.Errorf("--ticks must be >= 0")
			}
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			installLogger(newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogJSON))
			tick := cfg.Tick()
			if dt > 0 {
				tick = dt
			}

			out := cmd.OutOrStdout()
			reg := events.New()
			if !quiet {
				trace := events.SubscriberFunc(func(kind events.Kind, sender events.Sender, payload any) {
					from := ""
					if sender != nil {
						from = sender.ID()
					}
					switch p := payload.(type) {
					case geom.Vec3:
						fmt.Fprintf(out, "event %s from=%s at=(%.3f,%.3f,%.3f)\n", kind, from, p.X, p.Y, p.Z)
					default:
						fmt.Fprintf(out, "event %s from=%s payload=%v\n", kind, from, p)
					}
				})
				for _, k := range events.AllKinds() {
					reg.Subscribe(k, trace)
				}
			}

			mgr, err := scene.NewManager(cfg.Scene, scene.Options{Registry: reg, Tick: tick})
			if err != nil {
				return err
			}
			if err := mgr.RunTicks(ticks, nil); err != nil {
				return err
			}
			status := mgr.Status()
			mgr.Close()

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(status)
		},
	}
	cmd.Flags().IntVar(&ticks, "ticks", 600, "Number of ticks to simulate")
	cmd.Flags().DurationVar(&dt, "dt", 0, "Tick duration (defaults to the config tick_ms)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print events, only the final status")
	return cmd
}
