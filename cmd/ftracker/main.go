package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	ftracker "github.com/lucasjlepore/fit-tracker"
	"github.com/lucasjlepore/fit-tracker/fitimport"
	"github.com/lucasjlepore/fit-tracker/internal/api"
	"github.com/lucasjlepore/fit-tracker/internal/config"
	httptransport "github.com/lucasjlepore/fit-tracker/internal/transport/http"
	"github.com/lucasjlepore/fit-tracker/pipeline"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string
	cfg := &config.Config{}

	root := &cobra.Command{
		Use:           "ftracker",
		Short:         "Fitness tracker training reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			loaded, err := config.Load(envFile)
			if err != nil {
				return err
			}
			*cfg = loaded
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional .env file with FTRACKER_* settings")

	root.AddCommand(newReportCmd())
	root.AddCommand(newDemoCmd())
	root.AddCommand(newRunCmd(cfg))
	root.AddCommand(newFitCmd(cfg))
	root.AddCommand(newServeCmd(cfg))
	return root
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <SWM|RUN|WLK> <value>...",
		Short: "Print the report for one tracker package",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data := make([]float64, 0, len(args)-1)
			for _, raw := range args[1:] {
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return fmt.Errorf("parse value %q: %w", raw, err)
				}
				data = append(data, v)
			}
			return printReport(cmd.OutOrStdout(), ftracker.Package{WorkoutType: args[0], Data: data})
		},
	}
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Print reports for the built-in sample packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			packages := []ftracker.Package{
				{WorkoutType: ftracker.CodeSwimming, Data: []float64{720, 1, 80, 25, 40}},
				{WorkoutType: ftracker.CodeRunning, Data: []float64{15000, 1, 75}},
				{WorkoutType: ftracker.CodeWalking, Data: []float64{9000, 1, 75, 180}},
			}
			for _, pkg := range packages {
				if err := printReport(cmd.OutOrStdout(), pkg); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newRunCmd(cfg *config.Config) *cobra.Command {
	var (
		outDir    string
		format    string
		weightKG  float64
		heightCM  float64
		overwrite bool
	)
	cmd := &cobra.Command{
		Use:   "run <batch.yaml|activity.fit>",
		Short: "Build reports for a batch of packages and write artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("out") {
				outDir = cfg.OutputDir
			}
			if !flags.Changed("format") {
				format = cfg.OutputFormat
			}
			profile := athleteProfile(cmd, cfg, weightKG, heightCM)

			result, err := pipeline.Run(pipeline.Options{
				InputPath: args[0],
				OutDir:    outDir,
				Format:    format,
				Overwrite: overwrite,
				Profile:   profile,
				Logger:    log.New(cmd.ErrOrStderr(), "ftracker: ", 0),
			})
			if err != nil {
				return fmt.Errorf("run failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ftracker run complete\n")
			fmt.Fprintf(out, "Output dir:        %s\n", result.OutputDir)
			fmt.Fprintf(out, "training summary:  %s\n", result.SummaryPath)
			fmt.Fprintf(out, "reports.json:      %s\n", result.ReportsPath)
			fmt.Fprintf(out, "reports table:     %s\n", result.TablePath)
			fmt.Fprintf(out, "reports:           %d (%d rejected)\n", len(result.Reports), len(result.Failures))
			for _, f := range result.Failures {
				fmt.Fprintf(out, "rejected:          #%d %s: %s\n", f.Index, f.WorkoutType, f.Error)
			}
			for _, w := range result.Warnings {
				fmt.Fprintf(out, "warning:           %s\n", w)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default from FTRACKER_OUTPUT_DIR)")
	cmd.Flags().StringVar(&format, "format", "", "Reports table format: parquet|csv")
	cmd.Flags().Float64Var(&weightKG, "weight", 0, "Athlete weight in kg for FIT input")
	cmd.Flags().Float64Var(&heightCM, "height", 0, "Athlete height in cm for FIT input")
	cmd.Flags().BoolVar(&overwrite, "overwrite", true, "Allow writing into non-empty output directories")
	return cmd
}

func newFitCmd(cfg *config.Config) *cobra.Command {
	var weightKG, heightCM float64
	cmd := &cobra.Command{
		Use:   "fit <activity.fit>",
		Short: "Print reports for the sessions of a FIT activity file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imported, err := fitimport.ReadFile(args[0], athleteProfile(cmd, cfg, weightKG, heightCM))
			if err != nil {
				return err
			}
			for _, w := range imported.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}
			for _, pkg := range imported.Packages {
				if err := printReport(cmd.OutOrStdout(), pkg); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&weightKG, "weight", 0, "Athlete weight in kg")
	cmd.Flags().Float64Var(&heightCM, "height", 0, "Athlete height in cm")
	return cmd
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = cfg.HTTPAddress
			}
			logger := log.New(cmd.ErrOrStderr(), "ftracker: ", log.LstdFlags)

			router := mux.NewRouter()
			api.NewHandler(api.WithLogger(logger)).RegisterRoutes(router)
			router.Handle("/metrics", promhttp.Handler())

			server := httptransport.NewServer(httptransport.ServerConfig{
				Address:        addr,
				ReadTimeout:    5 * time.Second,
				WriteTimeout:   10 * time.Second,
				IdleTimeout:    60 * time.Second,
				AllowedOrigins: cfg.AllowedOrigins,
			}, router, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Printf("listening on %s", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("server error: %w", err)
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from FTRACKER_HTTP_ADDRESS)")
	return cmd
}

func athleteProfile(cmd *cobra.Command, cfg *config.Config, weightKG, heightCM float64) fitimport.Profile {
	profile := fitimport.Profile{WeightKG: cfg.WeightKG, HeightCM: cfg.HeightCM}
	if cmd.Flags().Changed("weight") {
		profile.WeightKG = weightKG
	}
	if cmd.Flags().Changed("height") {
		profile.HeightCM = heightCM
	}
	return profile
}

func printReport(w io.Writer, pkg ftracker.Package) error {
	training, err := pkg.Training()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, ftracker.ShowTrainingInfo(training).Message())
	return err
}
