package fetch

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/f1log/stint-analyzer-go/log"
	"github.com/f1log/stint-analyzer-go/pkg/analysis"
	"github.com/f1log/stint-analyzer-go/pkg/config"
	"github.com/f1log/stint-analyzer-go/pkg/csvio"
	"github.com/f1log/stint-analyzer-go/pkg/db/postgres"
	"github.com/f1log/stint-analyzer-go/pkg/model"
	lapRepo "github.com/f1log/stint-analyzer-go/pkg/repository/lap"
	sessionRepo "github.com/f1log/stint-analyzer-go/pkg/repository/session"
	"github.com/f1log/stint-analyzer-go/pkg/timing"
)

func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "fetch lap data for one session and write the raw CSV tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&config.Year, "year", 2022,
		"championship year of the session")
	cmd.Flags().StringVar(&config.Event, "event", "Hungary",
		"event name")
	cmd.Flags().StringVar(&config.SessionCode, "session", "R",
		"session code (R for race)")
	cmd.Flags().StringVar(&config.BaseURL, "base-url", timing.DefaultBaseURL,
		"base URL of the timing data provider")
	cmd.Flags().StringVar(&config.CacheDir, "cache-dir", "timing_cache",
		"directory for cached provider responses")
	cmd.Flags().StringVar(&config.SQLLogLevel, "sql-log-level", "info",
		"controls the log level for sql methods")

	return cmd
}

func runFetch(ctx context.Context) error {
	logger := initLogger().Named("fetch")
	log.ResetDefault(logger)

	meta := model.SessionMeta{
		Year:        config.Year,
		Event:       config.Event,
		SessionCode: config.SessionCode,
	}
	client := timing.NewClient(
		timing.WithBaseURL(config.BaseURL),
		timing.WithCache(config.CacheDir),
	)
	data, err := client.Fetch(ctx, meta)
	if err != nil {
		return err
	}
	pits := analysis.PitStops(data.Laps)

	paths := csvio.Paths{DataDir: config.DataDir}
	tag := meta.Tag()
	if err := csvio.WriteLaps(paths.RawLaps(tag), data.Laps); err != nil {
		return err
	}
	if err := csvio.WritePitStops(paths.PitStops(tag), pits); err != nil {
		return err
	}

	drivers := lo.Uniq(lo.Map(data.Laps, func(l model.Lap, _ int) string {
		return l.Driver
	}))
	sort.Strings(drivers)

	logger.Info("session loaded",
		log.String("session", meta.String()), log.String("name", data.Name))
	logger.Info("laps written",
		log.String("file", paths.RawLaps(tag)), log.Int("rows", len(data.Laps)))
	logger.Info("pit stops written",
		log.String("file", paths.PitStops(tag)), log.Int("rows", len(pits)))
	logger.Info("drivers", log.String("drivers", strings.Join(drivers, ", ")))

	if config.DB != "" {
		if err := persist(ctx, meta, data); err != nil {
			return err
		}
	}
	return nil
}

func persist(
	ctx context.Context, meta model.SessionMeta, data *timing.SessionData,
) error {
	logger := log.GetFromContext(ctx).Named("fetch.db")
	pool, err := postgres.InitWithURL(config.DB,
		postgres.WithTracer(log.Default().Named("sql"),
			parseLogLevel(config.SQLLogLevel, log.InfoLevel)))
	if err != nil {
		return err
	}
	defer pool.Close()

	sess, err := sessionRepo.Ensure(ctx, pool, meta, data.Name)
	if err != nil {
		return err
	}
	if _, err := lapRepo.DeleteBySession(ctx, pool, sess.ID, false); err != nil {
		return err
	}
	rows, err := lapRepo.Insert(ctx, pool, sess.ID, data.Laps, false)
	if err != nil {
		return err
	}
	logger.Info("raw laps stored",
		log.String("tag", sess.Tag), log.Int64("rows", rows))
	return nil
}

func initLogger() *log.Logger {
	if config.LogConfig != "" {
		cfg, err := log.LoadConfig(config.LogConfig)
		if err == nil {
			logger, cfgErr := log.NewWithConfig(cfg, os.Stderr, config.LogFormat)
			if cfgErr == nil {
				return logger
			}
			log.Warn("could not apply log config", log.ErrorField(cfgErr))
		} else {
			log.Warn("could not read log config", log.ErrorField(err))
		}
	}
	switch config.LogFormat {
	case "json":
		return log.New(os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true), log.AddCallerSkip(1))
	default:
		return log.DevLogger(os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel))
	}
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}
