package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"setlint/internal/config"
	"setlint/internal/diagfmt"
	"setlint/internal/lint"
	"setlint/internal/logx"
	"setlint/internal/prof"
)

const envPrefix = "SETLINT"

// newViper связывает флаги команды с переменными окружения SETLINT_*.
// Порядок: явный флаг > окружение > setlint.toml (SetDefault) > умолчание флага.
func newViper(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	cobra.CheckErr(v.BindPFlags(cmd.Flags()))
	return v
}

// settings is the resolved configuration of one lint run.
type settings struct {
	v          *viper.Viper
	cfg        config.Config
	configPath string

	format         string
	pathMode       diagfmt.PathMode
	maxDiagnostics int
	selected       []string
	ignored        []string
	color          bool
	quiet          bool
}

func loadSettings(cmd *cobra.Command, target string) (*settings, error) {
	v := newViper(cmd)
	st := &settings{v: v, quiet: v.GetBool("quiet")}

	var (
		warnings []config.Warning
		err      error
	)
	if path := v.GetString("config"); path != "" {
		st.cfg, warnings, err = config.Load(path)
		st.configPath = path
	} else {
		st.cfg, st.configPath, warnings, err = config.Discover(target)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	warnings = append(warnings, st.cfg.CheckRules(func(id string) bool {
		_, ok := lint.Lookup(id)
		return ok
	})...)
	if st.configPath != "" {
		slog.Debug("config loaded", "path", st.configPath, "warnings", len(warnings))
	}
	if !st.quiet {
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
	}

	v.SetDefault("format", st.cfg.Output.Format)
	v.SetDefault("path-mode", st.cfg.Output.PathMode)
	v.SetDefault("max-diagnostics", st.cfg.Lint.MaxDiagnostics)
	v.SetDefault("select", st.cfg.Lint.Select)
	v.SetDefault("ignore", st.cfg.Lint.Ignore)
	v.SetDefault("exclude", st.cfg.Lint.Exclude)

	st.format = strings.ToLower(strings.TrimSpace(v.GetString("format")))
	if !isKnownFormat(st.format) {
		return nil, fmt.Errorf("unknown format %q (expected %s)", st.format, strings.Join(config.Formats, "|"))
	}
	st.pathMode, err = diagfmt.ParsePathMode(strings.ToLower(v.GetString("path-mode")))
	if err != nil {
		return nil, err
	}
	st.maxDiagnostics = v.GetInt("max-diagnostics")
	if st.maxDiagnostics < 0 {
		return nil, fmt.Errorf("--max-diagnostics must be >= 0, got %d", st.maxDiagnostics)
	}
	st.selected = splitList(v.GetStringSlice("select"))
	st.ignored = splitList(v.GetStringSlice("ignore"))
	st.cfg.Lint.Exclude = splitList(v.GetStringSlice("exclude"))

	st.color, err = useColor(v.GetString("color"), os.Stdout)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func isKnownFormat(format string) bool {
	for _, f := range config.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// splitList раскрывает "B033,B034" из окружения в отдельные элементы.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func useColor(mode string, f *os.File) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return isTerminal(f), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

var (
	closeLog    func() error
	profSession *prof.Session
)

// setupRun настраивает slog и профилировщики до запуска команды.
func setupRun(cmd *cobra.Command, _ []string) error {
	v := newViper(cmd)
	verbose := v.GetBool("verbose")
	var logger *slog.Logger
	if path := v.GetString("log-file"); path != "" {
		logger, closeLog = logx.New(logx.Options{Path: path, Verbose: verbose})
	} else if verbose {
		logger = logx.NewWriter(os.Stderr, true)
	} else {
		logger = logx.Discard()
	}
	slog.SetDefault(logger)

	profOpts := prof.Options{
		CPU:   v.GetString("cpu-profile"),
		Mem:   v.GetString("mem-profile"),
		Trace: v.GetString("runtime-trace"),
	}
	if profOpts.Enabled() {
		session, err := prof.Start(profOpts)
		if err != nil {
			return err
		}
		profSession = session
	}
	return nil
}

// finishRun вызывается и из PersistentPostRunE, и из main: после ошибки
// RunE cobra post-хуки не запускает.
func finishRun() error {
	var errs []error
	if profSession != nil {
		errs = append(errs, profSession.Stop())
		profSession = nil
	}
	if closeLog != nil {
		errs = append(errs, closeLog())
		closeLog = nil
	}
	return errors.Join(errs...)
}

// stderr returns io.Discard when --quiet is set.
func (st *settings) stderr() io.Writer {
	if st.quiet {
		return io.Discard
	}
	return os.Stderr
}
