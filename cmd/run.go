package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/coder/serpent"

	"github.com/Emyrk/calltree/calltree"
	"github.com/Emyrk/calltree/calltree/console"
	"github.com/Emyrk/calltree/calltree/reportfile"
	"github.com/Emyrk/calltree/cmd/workdemo"
)

type RunConfig struct {
	Profiler calltree.Options `yaml:"profiler"`
	// Output is the report path. Relative paths land in the user's
	// documents directory.
	Output   string           `yaml:"output"`
	Workload workdemo.Options `yaml:"workload"`
}

// LoadRunConfig reads a YAML config. An empty path yields the zero config.
func LoadRunConfig(path string) (RunConfig, error) {
	var config RunConfig
	if path == "" {
		return config, nil
	}

	yamlData, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read config: %w", err)
	}

	err = yaml.Unmarshal(yamlData, &config)
	if err != nil {
		return config, fmt.Errorf("unmarshal config: %w", err)
	}
	return config, nil
}

func (r *Root) RunCmd() *serpent.Command {
	var (
		configPath     string
		output         string
		metricsAddress string
		iterations     int64
		work           int64
		noConsole      bool
	)
	return &serpent.Command{
		Use:   "run",
		Short: "Profile the demo workload and write the call tree report.",
		Options: serpent.OptionSet{
			serpent.Option{
				Name:          "config",
				Description:   "YAML config file to use.",
				Required:      false,
				Flag:          "config",
				FlagShorthand: "c",
				Value:         serpent.StringOf(&configPath),
			},
			serpent.Option{
				Name:          "output",
				Description:   "Report file. Relative paths are placed in the documents directory.",
				Flag:          "output",
				FlagShorthand: "o",
				Value:         serpent.StringOf(&output),
			},
			serpent.Option{
				Name:        "metrics-address",
				Description: "Serve profiler metrics on this address after the run until interrupted.",
				Flag:        "metrics-address",
				Env:         "CALLTREE_METRICS_ADDRESS",
				Value:       serpent.StringOf(&metricsAddress),
			},
			serpent.Option{
				Name:        "iterations",
				Description: "How many times the call stack chain runs.",
				Flag:        "iterations",
				Value:       serpent.Int64Of(&iterations),
			},
			serpent.Option{
				Name:        "work",
				Description: "Loop iterations spent in every leaf of the workload.",
				Flag:        "work",
				Value:       serpent.Int64Of(&work),
			},
			serpent.Option{
				Name:        "no-console",
				Description: "Do not print the tree to stdout.",
				Flag:        "no-console",
				Value:       serpent.BoolOf(&noConsole),
			},
		},
		Handler: func(i *serpent.Invocation) error {
			logger := r.Logger(i)

			config, err := LoadRunConfig(configPath)
			if err != nil {
				logger.Error().Err(err).Str("config", configPath).Msg("load config")
				return err
			}
			if output != "" {
				config.Output = output
			}
			if iterations > 0 {
				config.Workload.Iterations = int(iterations)
			}
			if work > 0 {
				config.Workload.Work = int(work)
			}

			profiler := calltree.New(config.Profiler, logger.With().Str("service", "profiler").Logger())
			reg := prometheus.NewRegistry()
			err = reg.Register(profiler)
			if err != nil {
				return fmt.Errorf("register profiler: %w", err)
			}

			result := workdemo.New(profiler, config.Workload).Run()
			if err := profiler.Finalize(); err != nil {
				return err
			}

			path, err := reportfile.Path(config.Output)
			if err != nil {
				logger.Error().Err(err).Msg("resolve report path")
				return fmt.Errorf("resolve report path: %w", err)
			}
			if err := reportfile.Write(path, profiler); err != nil {
				logger.Error().Err(err).Str("path", path).Msg("write report")
				return err
			}
			logger.Info().
				Str("path", path).
				Int("nodes", profiler.Len()).
				Int("max_depth", profiler.MaxDepth()).
				Int("result", result).
				Msg("report written")

			if !noConsole {
				if err := console.Render(i.Stdout, profiler); err != nil {
					return fmt.Errorf("render tree: %w", err)
				}
			}

			if metricsAddress == "" {
				return nil
			}
			return serveMetrics(i, logger, reg, metricsAddress)
		},
	}
}

func serveMetrics(i *serpent.Invocation, logger zerolog.Logger, reg *prometheus.Registry, address string) error {
	ctx, cancel := signal.NotifyContext(i.Context(), os.Interrupt)
	defer cancel()

	srv := &http.Server{
		Addr: address,
		Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{
			Registry: reg,
		}),
	}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	logger.Info().Str("address", address).Msg("serving metrics")
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
