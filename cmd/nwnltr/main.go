package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/CTAG07/nwnltr/pkg/ltr"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

const help = `NWN name generator tool
Usage: nwnltr [OPTION] <LTRFILE>
Options:
 -p, --print         Print Markov chain tables for <LTRFILE> in a human readable format
 -b, --build         Build Markov chain tables using words from stdin and store in <LTRFILE>
 -g, --generate=NUM  Generate NUM names from <LTRFILE> and print to stdout. NUM=100 by default
 -s, --seed=NUM      Set the RNG seed to NUM. Current time by default
     --library=PATH  Also keep models in the SQLite library at PATH
     --name=NAME     Model name inside the library. Loading by name skips <LTRFILE>
`

// countFlag is an integer flag that may be given without a value.
type countFlag struct {
	n        int
	fallback int
	bare     bool
}

func (c *countFlag) String() string { return strconv.Itoa(c.n) }

func (c *countFlag) Set(s string) error {
	if s == "true" {
		c.n, c.bare = c.fallback, true
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid count %q", s)
	}
	c.n, c.bare = n, false
	return nil
}

func (c *countFlag) IsBoolFlag() bool { return true }

type options struct {
	print    bool
	build    bool
	generate countFlag
	seed     int64
	library  string
	name     string
	ltrFile  string
}

// parseArgs reads the command line. It returns flag.ErrHelp when help should
// be shown instead of running.
func parseArgs(args []string, config *Config, stderr io.Writer) (*options, error) {
	opts := &options{generate: countFlag{fallback: config.DefaultCount}}

	fs := flag.NewFlagSet("nwnltr", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {}
	fs.BoolVar(&opts.print, "p", false, "")
	fs.BoolVar(&opts.print, "print", false, "")
	fs.BoolVar(&opts.build, "b", false, "")
	fs.BoolVar(&opts.build, "build", false, "")
	fs.Var(&opts.generate, "g", "")
	fs.Var(&opts.generate, "generate", "")
	fs.Int64Var(&opts.seed, "s", config.Seed, "")
	fs.Int64Var(&opts.seed, "seed", config.Seed, "")
	fs.StringVar(&opts.library, "library", config.LibraryPath, "")
	fs.StringVar(&opts.name, "name", config.ModelName, "")

	// flag stops at the first positional argument, so keep parsing after each
	// one to allow options on either side of <LTRFILE>.
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		// "-g NUM" leaves the count as a positional argument.
		if opts.generate.bare {
			opts.generate.bare = false
			if n, err := strconv.Atoi(args[0]); err == nil {
				opts.generate.n = n
				args = args[1:]
				continue
			}
		}
		positional = append(positional, args[0])
		args = args[1:]
	}

	if len(positional) != 1 {
		return nil, flag.ErrHelp
	}
	opts.ltrFile = positional[0]
	return opts, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the tool and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		_, _ = fmt.Fprint(stdout, help)
		return 0
	}

	config, err := LoadConfig()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	opts, err := parseArgs(args, config, stderr)
	if errors.Is(err, flag.ErrHelp) {
		_, _ = fmt.Fprint(stdout, help)
		return 0
	}
	if err != nil {
		return 1
	}
	if !opts.print && !opts.build && opts.generate.n <= 0 {
		_, _ = fmt.Fprint(stdout, "Need at least one of -p, -b, -g\n"+help)
		return 0
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: config.Level()}))
	logger.Debug("Starting nwnltr", "version", Version, "commit", Commit, "build_date", BuildDate)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = execute(ctx, opts, config, logger, stdin, stdout); err != nil {
		logger.Error("nwnltr failed", "error", err)
		return 1
	}
	return 0
}

func execute(ctx context.Context, opts *options, config *Config, logger *slog.Logger, stdin io.Reader, stdout io.Writer) error {
	alphabet, err := ltr.NewAlphabet(config.Alphabet)
	if err != nil {
		return fmt.Errorf("invalid alphabet: %w", err)
	}

	var lib *ltr.Library
	if opts.library != "" {
		db, err := openLibraryDB(opts.library)
		if err != nil {
			return fmt.Errorf("failed to open library: %w", err)
		}
		defer func() {
			_ = db.Close()
		}()
		if err = ltr.SetupSchema(db); err != nil {
			return fmt.Errorf("failed to set up library schema: %w", err)
		}
		if lib, err = ltr.NewLibrary(db, alphabet); err != nil {
			return err
		}
		defer lib.Close()
		lib.SetLogger(logger)
	}

	var model *ltr.Model
	if opts.build {
		trainer := ltr.NewTrainer(alphabet)
		trainer.SetLogger(logger)
		if model, _, err = trainer.Train(ctx, stdin); err != nil {
			return fmt.Errorf("failed to build model: %w", err)
		}
		if err = ltr.SaveFile(opts.ltrFile, model); err != nil {
			return err
		}
		if lib != nil {
			if err = lib.SaveModel(ctx, modelName(opts), model); err != nil {
				return err
			}
		}
	} else if lib != nil && opts.name != "" {
		if model, err = lib.LoadModel(ctx, opts.name); err != nil {
			return fmt.Errorf("failed to load model '%s' from library: %w", opts.name, err)
		}
	} else {
		if model, err = ltr.LoadFile(opts.ltrFile, alphabet); err != nil {
			return err
		}
	}

	if opts.print {
		if err = ltr.WriteDump(stdout, model); err != nil {
			return fmt.Errorf("failed to print tables: %w", err)
		}
	}

	if opts.generate.n > 0 {
		return generate(ctx, model, opts, logger, stdout)
	}
	return nil
}

func generate(ctx context.Context, model *ltr.Model, opts *options, logger *slog.Logger, stdout io.Writer) error {
	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("Generating names", "count", opts.generate.n, "seed", seed)
	src := ltr.NewSource(uint64(seed))

	w := bufio.NewWriter(stdout)
	for i := 0; i < opts.generate.n; i++ {
		name, err := ltr.Generate(ctx, model, src)
		if err != nil {
			_ = w.Flush()
			return fmt.Errorf("failed to generate name %d: %w", i+1, err)
		}
		_, _ = fmt.Fprintln(w, name)
	}
	return w.Flush()
}

// modelName is the library name for a built model: the --name flag, or the
// file name without its extension.
func modelName(opts *options) string {
	if opts.name != "" {
		return opts.name
	}
	base := filepath.Base(opts.ltrFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
