package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/uart-console/internal/app"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// Flags holds the effective value of every option, keyed by flag name.
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig      = "UART_CONSOLE_CONFIG"
	envPort        = "UART_CONSOLE_PORT"
	envBaud        = "UART_CONSOLE_BAUD"
	envRates       = "UART_CONSOLE_RATES"
	envReadTimeout = "UART_CONSOLE_READ_TIMEOUT"
	envPoll        = "UART_CONSOLE_POLL"
	envBuffer      = "UART_CONSOLE_BUFFER"
	envCancelKey   = "UART_CONSOLE_CANCEL_KEY"
	envTrace       = "UART_CONSOLE_TRACE"
	envLogFile     = "UART_CONSOLE_LOG_FILE"
)

const (
	flagConfig      = "config"
	flagPort        = "port"
	flagBaud        = "baud"
	flagRates       = "rates"
	flagReadTimeout = "read-timeout"
	flagPoll        = "poll"
	flagBuffer      = "buffer"
	flagCancelKey   = "cancel-key"
	flagTrace       = "trace"
	flagLogFile     = "log-file"
)

// DefaultRates is the baud rate list offered when none is configured.
const DefaultRates = "9600,19200,38400,57600,115200,230400,460800,500000,921600"

var defaults = map[string]string{
	flagConfig:      "",
	flagPort:        "",
	flagBaud:        "115200",
	flagRates:       DefaultRates,
	flagReadTimeout: "10ms",
	flagPoll:        "100ms",
	flagBuffer:      "1024",
	flagCancelKey:   "esc",
	flagTrace:       "false",
	flagLogFile:     "uart-console.log",
}

var envKeys = map[string]string{
	flagConfig:      envConfig,
	flagPort:        envPort,
	flagBaud:        envBaud,
	flagRates:       envRates,
	flagReadTimeout: envReadTimeout,
	flagPoll:        envPoll,
	flagBuffer:      envBuffer,
	flagCancelKey:   envCancelKey,
	flagTrace:       envTrace,
	flagLogFile:     envLogFile,
}

// fileConfig mirrors the YAML configuration file. Absent keys keep the
// lower-precedence value.
type fileConfig struct {
	Port         *string  `yaml:"port"`
	Baud         *uint32  `yaml:"baud"`
	Rates        []uint32 `yaml:"rates"`
	ReadTimeout  *string  `yaml:"read_timeout"`
	PollInterval *string  `yaml:"poll_interval"`
	BufferSize   *int     `yaml:"buffer_size"`
	CancelKey    *string  `yaml:"cancel_key"`
	Trace        *bool    `yaml:"trace"`
	LogFile      *string  `yaml:"log_file"`
}

// Load parses configuration from CLI arguments, environment variables and
// the optional YAML file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Later sources
// win: defaults, then the YAML file, then the environment, then flags.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("uart-console", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String(flagConfig, "", "path to a YAML configuration file")
	fs.String(flagPort, "", "serial port selected at startup")
	fs.String(flagBaud, defaults[flagBaud], "baud rate selected at startup")
	fs.String(flagRates, defaults[flagRates], "comma separated baud rates offered in the rate list")
	fs.String(flagReadTimeout, defaults[flagReadTimeout], "timeout of a single serial read")
	fs.String(flagPoll, defaults[flagPoll], "frame interval for port refresh and draining")
	fs.String(flagBuffer, defaults[flagBuffer], "bytes read from the port per frame")
	fs.String(flagCancelKey, defaults[flagCancelKey], "key that returns focus to the command line")
	fs.Bool(flagTrace, false, "enable verbose JSON trace logging")
	fs.String(flagLogFile, defaults[flagLogFile], "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	explicit := map[string]string{}
	fs.Visit(func(f *flag.Flag) {
		explicit[f.Name] = f.Value.String()
	})

	values := make(map[string]string, len(defaults))
	for k, v := range defaults {
		values[k] = v
	}

	path := envOrDefault(env, envConfig, "")
	if v, ok := explicit[flagConfig]; ok {
		path = v
	}
	if strings.TrimSpace(path) != "" {
		file, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		file.apply(values)
		values[flagConfig] = path
	}
	for name, key := range envKeys {
		if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
			values[name] = v
		}
	}
	for name, v := range explicit {
		values[name] = v
	}

	cfg, err := build(values)
	if err != nil {
		return Config{}, err
	}
	cfg.Flags = values
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	var file fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return file, nil
}

func (f fileConfig) apply(values map[string]string) {
	setString := func(name string, v *string) {
		if v != nil {
			values[name] = *v
		}
	}
	setString(flagPort, f.Port)
	setString(flagReadTimeout, f.ReadTimeout)
	setString(flagPoll, f.PollInterval)
	setString(flagCancelKey, f.CancelKey)
	setString(flagLogFile, f.LogFile)
	if f.Baud != nil {
		values[flagBaud] = strconv.FormatUint(uint64(*f.Baud), 10)
	}
	if len(f.Rates) > 0 {
		rates := make([]string, len(f.Rates))
		for i, r := range f.Rates {
			rates[i] = strconv.FormatUint(uint64(r), 10)
		}
		values[flagRates] = strings.Join(rates, ",")
	}
	if f.BufferSize != nil {
		values[flagBuffer] = strconv.Itoa(*f.BufferSize)
	}
	if f.Trace != nil {
		values[flagTrace] = strconv.FormatBool(*f.Trace)
	}
}

func build(values map[string]string) (Config, error) {
	baud, err := strconv.ParseUint(strings.TrimSpace(values[flagBaud]), 10, 32)
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s %q: %w", flagBaud, values[flagBaud], err)
	}
	readTimeout, err := time.ParseDuration(strings.TrimSpace(values[flagReadTimeout]))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", flagReadTimeout, err)
	}
	poll, err := time.ParseDuration(strings.TrimSpace(values[flagPoll]))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", flagPoll, err)
	}
	buffer, err := strconv.Atoi(strings.TrimSpace(values[flagBuffer]))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s %q: %w", flagBuffer, values[flagBuffer], err)
	}
	trace, err := strconv.ParseBool(strings.TrimSpace(values[flagTrace]))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s %q: %w", flagTrace, values[flagTrace], err)
	}
	return Config{
		App: app.Config{
			Port:         strings.TrimSpace(values[flagPort]),
			Baud:         uint32(baud),
			Rates:        splitRates(values[flagRates]),
			ReadTimeout:  readTimeout,
			PollInterval: poll,
			BufferSize:   buffer,
			CancelKey:    strings.TrimSpace(values[flagCancelKey]),
		},
		Logging: Logging{
			FilePath: values[flagLogFile],
			Trace:    trace,
		},
	}, nil
}

func splitRates(raw string) []string {
	var rates []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			rates = append(rates, part)
		}
	}
	return rates
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects values the session cannot run with.
func Validate(cfg Config) error {
	if cfg.App.Baud == 0 {
		return errors.New("baud must be > 0")
	}
	if len(cfg.App.Rates) == 0 {
		return errors.New("rates must list at least one baud rate")
	}
	for _, rate := range cfg.App.Rates {
		v, err := strconv.ParseUint(rate, 10, 32)
		if err != nil || v == 0 {
			return fmt.Errorf("invalid rate %q: must be a positive integer", rate)
		}
	}
	if cfg.App.ReadTimeout <= 0 {
		return fmt.Errorf("read-timeout must be > 0 (got %s)", cfg.App.ReadTimeout)
	}
	if cfg.App.PollInterval <= 0 {
		return fmt.Errorf("poll must be > 0 (got %s)", cfg.App.PollInterval)
	}
	if cfg.App.BufferSize <= 0 {
		return fmt.Errorf("buffer must be > 0 (got %d)", cfg.App.BufferSize)
	}
	if cfg.App.CancelKey == "" {
		return errors.New("cancel-key must not be empty")
	}
	return nil
}
