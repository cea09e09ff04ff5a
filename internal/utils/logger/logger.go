// Package logger provides a global logger for the application
package logger

import (
	"flag"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"go.uber.org/zap"
)

var (
	Logger *zap.Logger
	mu     sync.Mutex
)

// Options selects the log level. Flags win over Environment.
type Options struct {
	Environment string
	Debug       bool
	Trace       bool
	Info        bool
}

func levelFor(opts Options) (zerolog.Level, string) {
	environment := strings.ToLower(opts.Environment)
	if environment == "" {
		environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	}
	if environment == "" {
		environment = "prod"
	}

	var logLevel zerolog.Level
	switch environment {
	case "dev", "test":
		logLevel = zerolog.TraceLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	if opts.Debug {
		logLevel = zerolog.DebugLevel
	} else if opts.Trace {
		logLevel = zerolog.TraceLevel
	} else if opts.Info {
		logLevel = zerolog.InfoLevel
	}

	return logLevel, environment
}

func initLogger(opts Options) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file loaded")
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Logger()

	logLevel, environment := levelFor(opts)
	zerolog.SetGlobalLevel(logLevel)

	var zl *zap.Logger
	var err error
	if environment == "prod" {
		zl, err = zap.NewProduction()
	} else {
		zl, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Warn().Err(err).Msg("failed to build zap logger, using no-op")
		zl = zap.NewNop()
	}

	mu.Lock()
	Logger = zl
	mu.Unlock()

	switch logLevel {
	case zerolog.DebugLevel:
		log.Debug().Str("environment", environment).Msg("Debug logging enabled")
	case zerolog.TraceLevel:
		log.Trace().Str("environment", environment).Msg("Trace logging enabled")
	default:
		log.Info().Str("environment", environment).Msg("Info logging enabled")
	}
}

// Init initializes the logger from the environment and the command line
// flags --debug, --trace and --info.
// Example usage:
//
//	logger.Init() <- inside whichever main() function in your entrypoint
//
// Then, `go run cmd/server/main.go --debug`
func Init() {
	debug := flag.Bool("debug", false, "sets log level to debug")
	trace := flag.Bool("trace", false, "sets log level to trace")
	info := flag.Bool("info", false, "sets log level to info (default)")
	flag.Parse()

	initLogger(Options{Debug: *debug, Trace: *trace, Info: *info})
}

// InitWithOptions is Init for callers that parse their own flags.
func InitWithOptions(opts Options) {
	initLogger(opts)
}

// Sugar returns a sugared logger for easier use. Before Init it discards.
func Sugar() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	if Logger == nil {
		return zap.NewNop().Sugar()
	}
	return Logger.Sugar()
}
