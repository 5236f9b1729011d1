package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexhholmes/btmap"
	"github.com/alexhholmes/btmap/internal/cli"
	"github.com/alexhholmes/btmap/logger"
)

type config struct {
	logLevel   string
	logFormat  string
	check      bool
	seed       int
	noColor    bool
	autoShow   bool
	historyDir string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run parses args, serves a session over the given streams and returns the
// process exit code. Deferred cleanup has finished by the time it returns.
func run(args []string, stdin io.ReadCloser, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("btmap", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var cfg config
	fs.StringVar(&cfg.logLevel, "log-level", "warn", "Minimum log level (debug, info, warn, error).")
	fs.StringVar(&cfg.logFormat, "log-format", "console", "Log output format (console or json).")
	fs.BoolVar(&cfg.check, "check", false, "Validate the whole tree after every change.")
	fs.IntVar(&cfg.seed, "seed", 0, "Seed the tree with this many random records created with go-faker.")
	fs.BoolVar(&cfg.noColor, "no-color", false, "Disable colored tree output.")
	fs.BoolVar(&cfg.autoShow, "show", false, "Draw the tree after every SET and DEL.")
	fs.StringVar(&cfg.historyDir, "history", "", "Directory for the command history file (default: none).")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	zapLogger := newLogger(cfg.logLevel, cfg.logFormat, stderr)
	defer zapLogger.Sync()

	opts := []btmap.Option{btmap.WithLogger(logger.NewZap(zapLogger))}
	if cfg.check {
		opts = append(opts, btmap.WithCheckInvariants(true))
	}
	tree := btmap.New[string, string](opts...)

	rlCfg := &readline.Config{
		Prompt:          "> ",
		AutoComplete:    cli.Completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           stdin,
		Stdout:          stdout,
		Stderr:          stderr,
	}
	if stdin != os.Stdin {
		// Piped session: no raw mode, no line editing
		rlCfg.FuncIsTerminal = func() bool { return false }
		rlCfg.FuncMakeRaw = func() error { return nil }
		rlCfg.FuncExitRaw = func() error { return nil }
	}
	if cfg.historyDir != "" {
		rlCfg.HistoryFile = filepath.Join(cfg.historyDir, ".btmap_history")
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		zapLogger.Error("failed to start line editor", zap.Error(err))
		return 1
	}
	defer rl.Close()

	demo := cli.NewCli(rl.Stdout(), tree, cli.NewVisualizer(tree, !cfg.noColor), zapLogger)
	demo.AutoShow = cfg.autoShow
	if cfg.seed > 0 {
		demo.ProcessInput(fmt.Sprintf("SEED %d", cfg.seed))
	}

	if err := demo.Start(rl); err != nil {
		zapLogger.Error("session ended with error", zap.Error(err))
		return 1
	}
	return 0
}

// newLogger builds a zap logger writing to w, falling back to the warn level
// when level does not parse.
func newLogger(level, format string, w io.Writer) *zap.Logger {
	atomicLevel := zap.NewAtomicLevel()
	if err := atomicLevel.UnmarshalText([]byte(level)); err != nil {
		atomicLevel.SetLevel(zap.WarnLevel)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if strings.ToLower(format) == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), atomicLevel)
	return zap.New(core, zap.AddCaller()).With(zap.String("service", "btmap"))
}
