package config

import (
	"fmt"

	"github.com/rileyhilliard/hibou/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	// Check version
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but hibou only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade hibou or lower the 'version' field.")
	}

	if err := validateRefresh(cfg.Refresh); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'refresh' section in your .hibou.yaml.")
	}

	if err := validateSources(cfg.Sources); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'sources' section in your .hibou.yaml.")
	}

	if err := validateFilesystems(cfg.Filesystems); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "List at least one mount path, like '/'.")
	}

	if err := validateThresholds(cfg.Thresholds); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'thresholds' section in your .hibou.yaml.")
	}

	if err := validateOutput(cfg.Output); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'output' section in your .hibou.yaml.")
	}

	return nil
}

func validateRefresh(r RefreshConfig) error {
	if r.FPS < MinFPS || r.FPS > MaxFPS {
		return fmt.Errorf("refresh.fps needs to be %d-%d (got %d)", MinFPS, MaxFPS, r.FPS)
	}
	return nil
}

func validateSources(s SourcesConfig) error {
	for _, src := range []struct{ key, path string }{
		{"present", s.Present},
		{"stat", s.Stat},
		{"meminfo", s.Meminfo},
		{"netdev", s.NetDev},
	} {
		if src.path == "" {
			return fmt.Errorf("sources.%s can't be empty", src.key)
		}
	}
	return nil
}

func validateFilesystems(paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("filesystems needs at least one path")
	}
	for i, p := range paths {
		if p == "" {
			return fmt.Errorf("filesystems[%d] is empty", i)
		}
	}
	return nil
}

// validateThresholds checks bar colour thresholds.
func validateThresholds(thresh ThresholdsConfig) error {
	if thresh.Warning < 0 || thresh.Warning > 100 {
		return fmt.Errorf("thresholds.warning needs to be between 0 and 100 (got %d)", thresh.Warning)
	}
	if thresh.Critical < 0 || thresh.Critical > 100 {
		return fmt.Errorf("thresholds.critical needs to be between 0 and 100 (got %d)", thresh.Critical)
	}
	// Warning should be less than critical (if both are non-zero)
	if thresh.Warning > 0 && thresh.Critical > 0 && thresh.Warning >= thresh.Critical {
		return fmt.Errorf("thresholds.warning (%d%%) should be less than critical (%d%%)", thresh.Warning, thresh.Critical)
	}
	return nil
}

func validateOutput(out OutputConfig) error {
	validColors := map[string]bool{"auto": true, "always": true, "never": true, "": true}
	if !validColors[out.Color] {
		return fmt.Errorf("output.color '%s' isn't valid - use 'auto', 'always', or 'never'", out.Color)
	}
	return nil
}
