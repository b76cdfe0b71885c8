package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/five82/qsoview/internal/config"
	"github.com/five82/qsoview/internal/logfilter"
	"github.com/five82/qsoview/internal/logging"
	"github.com/five82/qsoview/internal/navigator"
	"github.com/five82/qsoview/internal/prefs"
	"github.com/five82/qsoview/internal/ui"
)

// Options configure a qsoview run. Non-empty fields override the config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/qsoview/prefs.toml
	Callsign   string
	InputPath  string
	OutputPath string
	Encoding   string
	DebugLog   string
}

// Summary describes a completed filter pass.
type Summary struct {
	Callsign   string
	InputPath  string
	OutputPath string
	logfilter.Result
}

// Line returns the n-th (1-based) retained line without its line ending.
func (s Summary) Line(n int) (string, bool) {
	line, ok := navigator.New(s.Lines).At(n - 1)
	if !ok {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// Run filters the log and shows the viewer until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := Resolve(opts)
	if err != nil {
		return err
	}

	logger, cleanup, err := logging.Setup(cfg.DebugLog)
	if err != nil {
		return err
	}
	defer cleanup()

	summary, err := filter(ctx, cfg, logger)
	if err != nil {
		return err
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.WithError(err).Warn("using default viewer preferences")
	}

	return ui.Run(ctx, ui.Options{
		Lines:     summary.Lines,
		Viewer:    cfg.Viewer(),
		InputPath: cfg.InputPath,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Logger:    logger,
	})
}

// Filter runs only the filter pass and writes the output file.
func Filter(ctx context.Context, opts Options) (Summary, error) {
	cfg, err := Resolve(opts)
	if err != nil {
		return Summary{}, err
	}

	logger, cleanup, err := logging.Setup(cfg.DebugLog)
	if err != nil {
		return Summary{}, err
	}
	defer cleanup()

	return filter(ctx, cfg, logger)
}

// Resolve loads the config file, applies opts on top and validates the result.
func Resolve(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	if call := strings.TrimSpace(opts.Callsign); call != "" {
		cfg.Callsign = call
	}
	if enc := strings.TrimSpace(opts.Encoding); enc != "" {
		cfg.InputEncoding = enc
	}
	for _, o := range []struct {
		value string
		dst   *string
		name  string
	}{
		{opts.InputPath, &cfg.InputPath, "input"},
		{opts.OutputPath, &cfg.OutputPath, "output"},
		{opts.DebugLog, &cfg.DebugLog, "debug log"},
	} {
		if strings.TrimSpace(o.value) == "" {
			continue
		}
		expanded, err := config.ExpandPath(o.value)
		if err != nil {
			return config.Config{}, fmt.Errorf("%s path: %w", o.name, err)
		}
		*o.dst = expanded
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func filter(ctx context.Context, cfg config.Config, logger *logrus.Logger) (Summary, error) {
	fields := logrus.Fields{
		"callsign": cfg.Callsign,
		"input":    cfg.InputPath,
		"output":   cfg.OutputPath,
	}
	logger.WithFields(fields).Debug("filter starting")

	res, err := logfilter.FilterFile(ctx, logfilter.Options{
		Callsign:   cfg.Callsign,
		InputPath:  cfg.InputPath,
		OutputPath: cfg.OutputPath,
		Encoding:   cfg.InputEncoding,
	})
	if err != nil {
		logger.WithFields(fields).WithError(err).Error("filter failed")
		return Summary{}, fmt.Errorf("filter %s: %w", cfg.InputPath, err)
	}

	logger.WithFields(fields).WithFields(logrus.Fields{
		"scanned":   res.Scanned,
		"kept":      len(res.Lines),
		"discarded": res.Discarded,
		"collapsed": res.Collapsed,
	}).Info("filter complete")

	return Summary{
		Callsign:   cfg.Callsign,
		InputPath:  cfg.InputPath,
		OutputPath: cfg.OutputPath,
		Result:     res,
	}, nil
}
