package analyze

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/f1log/stint-analyzer-go/log"
	"github.com/f1log/stint-analyzer-go/pkg/analysis"
	"github.com/f1log/stint-analyzer-go/pkg/config"
	"github.com/f1log/stint-analyzer-go/pkg/csvio"
	"github.com/f1log/stint-analyzer-go/pkg/db/postgres"
	"github.com/f1log/stint-analyzer-go/pkg/model"
	lapRepo "github.com/f1log/stint-analyzer-go/pkg/repository/lap"
	resultRepo "github.com/f1log/stint-analyzer-go/pkg/repository/result"
	sessionRepo "github.com/f1log/stint-analyzer-go/pkg/repository/session"
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "clean the raw laps and compute stint summaries and degradation fits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&config.Year, "year", 2022,
		"championship year of the session")
	cmd.Flags().StringVar(&config.Event, "event", "Hungary",
		"event name")
	cmd.Flags().StringVar(&config.SessionCode, "session", "R",
		"session code (R for race)")
	cmd.Flags().StringVar(&config.SQLLogLevel, "sql-log-level", "info",
		"controls the log level for sql methods")

	return cmd
}

type results struct {
	cleaned   []model.Lap
	summaries []model.StintSummary
	fits      []model.CompoundFit
}

func runAnalyze(ctx context.Context) error {
	logger := initLogger().Named("analyze")
	log.ResetDefault(logger)

	meta := model.SessionMeta{
		Year:        config.Year,
		Event:       config.Event,
		SessionCode: config.SessionCode,
	}
	paths := csvio.Paths{DataDir: config.DataDir}
	tag := meta.Tag()

	raw, err := csvio.ReadLaps(paths.RawLaps(tag))
	if err != nil {
		return err
	}

	var res results
	if res.cleaned, err = analysis.CleanLaps(ctx, raw); err != nil {
		return err
	}
	res.summaries = analysis.StintSummaries(res.cleaned)
	if res.fits, err = analysis.FitDegradation(ctx, res.cleaned); err != nil {
		return err
	}

	if err := writeResults(paths, tag, &res, logger); err != nil {
		return err
	}
	if config.DB != "" {
		if err := persist(ctx, meta, &res); err != nil {
			return err
		}
	}
	return nil
}

func writeResults(
	paths csvio.Paths, tag string, res *results, logger *log.Logger,
) error {
	if err := csvio.WriteLaps(paths.CleanLaps(tag), res.cleaned); err != nil {
		return err
	}
	if err := csvio.WriteStintSummaries(
		paths.StintSummary(tag), res.summaries); err != nil {
		return err
	}
	if err := csvio.WriteCompoundFits(
		paths.DegradationFit(tag), res.fits); err != nil {
		return err
	}

	logger.Info("clean laps written",
		log.String("file", paths.CleanLaps(tag)),
		log.Int("rows", len(res.cleaned)))
	logger.Info("stint summary written",
		log.String("file", paths.StintSummary(tag)),
		log.Int("rows", len(res.summaries)))
	logger.Info("degradation fit written",
		log.String("file", paths.DegradationFit(tag)),
		log.Int("rows", len(res.fits)))
	for _, f := range res.fits {
		logger.Info("compound fit",
			log.String("compound", f.Compound),
			log.String("slope", fmt.Sprintf("%.4f s/lap-age", f.SlopePerLap)),
			log.String("rmse", fmt.Sprintf("%.3f", f.RmseS)),
			log.Int("n", f.N))
	}
	return nil
}

func persist(ctx context.Context, meta model.SessionMeta, res *results) error {
	logger := log.GetFromContext(ctx).Named("analyze.db")
	pool, err := postgres.InitWithURL(config.DB,
		postgres.WithTracer(log.Default().Named("sql"),
			parseLogLevel(config.SQLLogLevel, log.InfoLevel)))
	if err != nil {
		return err
	}
	defer pool.Close()

	sess, err := sessionRepo.Ensure(ctx, pool, meta, "")
	if err != nil {
		return err
	}
	if _, err := lapRepo.DeleteBySession(ctx, pool, sess.ID, true); err != nil {
		return err
	}
	if _, err := lapRepo.Insert(ctx, pool, sess.ID, res.cleaned, true); err != nil {
		return err
	}
	if err := resultRepo.ReplaceStintSummaries(
		ctx, pool, sess.ID, res.summaries); err != nil {
		return err
	}
	if err := resultRepo.ReplaceCompoundFits(
		ctx, pool, sess.ID, res.fits); err != nil {
		return err
	}
	logger.Info("results stored", log.String("tag", sess.Tag),
		log.Int("cleanLaps", len(res.cleaned)),
		log.Int("summaries", len(res.summaries)),
		log.Int("fits", len(res.fits)))
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
