package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagRate   = flag.Float64("rate", -1, "Sampling rate in keys per second for cubic splines (0 = default)")
	flagScene  = flag.Int("scene", -1, "Scene index to import the skeleton from")
	flagOut    = flag.String("out", "", "Output directory")
	flagLog    = flag.String("log", "", "Log file path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagRate >= 0 {
		cfg.Import.SamplingRate = float32(*flagRate)
	}
	if *flagScene >= 0 {
		cfg.Import.Scene = *flagScene
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagLog != "" {
		cfg.Logging.LogFile = *flagLog
	}
}
