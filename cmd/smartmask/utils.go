package smartmask

import (
	"runtime/debug"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"go.uber.org/zap"

	"github.com/smartmask/smartmask/internal/config"
	"github.com/smartmask/smartmask/internal/detect"
	"github.com/smartmask/smartmask/internal/ner"
)

func selfUpdate() error {
	v := version
	// Use build info if tag overridden at build-time
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(v) == 0 {
				v = s.Value
			}
		}
	}
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	latest, err := selfupdate.UpdateSelf(semver3.MustParse(ver.String()), "smartmask/smartmask")
	if err != nil {
		return err
	}
	_ = latest
	return nil
}

func newLogger() *zap.Logger {
	if flagVerbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	return zap.NewNop()
}

// newDetector builds the detection pipeline from flags and file config.
// The returned closer releases the model session; it is a no-op when the
// entity pass is off. Model-load failure is the one fatal startup error.
func newDetector(fc config.FileConfig, logger *zap.Logger) (*detect.Detector, func(), error) {
	mc := fc.GetModel()
	if flagNoModel || mc.IsDisabled() {
		return detect.New(nil), func() {}, nil
	}

	engine, err := ner.Load(ner.Config{
		Dir:          pickString(flagModelDir, mc.Dir, nil),
		AutoDownload: flagDownload || mc.IsAutoDownloadEnabled(),
		MaxTokens:    mc.GetMaxTokens(),
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	return detect.New(engine), func() { _ = engine.Close() }, nil
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt64(cli int64, local, global *int64) int64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickFloat(cli float64, local, global *float64) float64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}
