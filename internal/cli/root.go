package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/goliatone/go-docdantic"
	"github.com/goliatone/go-docdantic/pkg/orchestrator"
	"github.com/goliatone/go-docdantic/pkg/render"
	"github.com/goliatone/go-docdantic/pkg/schema"
)

// Option customises the root command, mainly for tests.
type Option func(*app)

// WithSelector replaces the interactive model picker.
func WithSelector(selector Selector) Option {
	return func(a *app) {
		a.selector = selector
	}
}

// WithTerminal overrides terminal detection for stdin.
func WithTerminal(isTerminal func() bool) Option {
	return func(a *app) {
		a.isTerminal = isTerminal
	}
}

type app struct {
	viper      *viper.Viper
	selector   Selector
	isTerminal func() bool

	configPath string
	openapi    []string
	jsonschema []string
}

// NewRootCmd creates the docdantic command tree.
func NewRootCmd(version string, options ...Option) *cobra.Command {
	a := &app{
		viper:    newViper(),
		selector: surveySelector{},
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}

	cmd := &cobra.Command{
		Use:   "docdantic",
		Short: "Render data model declarations as Markdown tables",
		Long: "docdantic expands `!docdantic: namespace.Model` directives in Markdown\n" +
			"documents into tables describing each model's fields.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./docdantic.yaml)")
	flags.StringArrayVar(&a.openapi, "openapi", nil, "register an OpenAPI document as namespace=location (repeatable)")
	flags.StringArrayVar(&a.jsonschema, "jsonschema", nil, "register a JSON Schema document as namespace=location (repeatable)")
	flags.Int("heading-level", 3, "heading level of model sections")
	flags.String("placeholder", render.DefaultPlaceholder, "Default column token for fields without a default")
	flags.Bool("allow-http", false, "allow http(s) source locations")
	flags.Duration("timeout", 0, "timeout for remote sources")
	flags.BoolP("verbose", "v", false, "log directive resolution to stderr")
	bindFlags(a.viper, flags)

	cmd.AddCommand(a.newRenderCmd())
	cmd.AddCommand(a.newTableCmd())
	cmd.AddCommand(a.newListCmd())
	cmd.AddCommand(a.newCheckCmd())
	return cmd
}

// setup resolves configuration and returns an orchestrator with every
// configured source registered.
func (a *app) setup(cmd *cobra.Command) (*orchestrator.Orchestrator, error) {
	cfg, err := loadConfig(a.viper, a.configPath)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	sources := append([]SourceConfig(nil), cfg.Sources...)
	for _, group := range []struct {
		kind   string
		values []string
	}{
		{kind: "openapi", values: a.openapi},
		{kind: "jsonschema", values: a.jsonschema},
	} {
		parsed, err := parseSourceFlags(group.kind, group.values)
		if err != nil {
			return nil, err
		}
		sources = append(sources, parsed...)
	}

	loaderOptions := []docdantic.LoaderOption{docdantic.WithTimeout(cfg.Timeout)}
	if cfg.AllowHTTP {
		loaderOptions = append(loaderOptions, docdantic.WithHTTP(nil))
	}
	orch := docdantic.NewOrchestrator(
		orchestrator.WithLogger(logger),
		orchestrator.WithLoader(docdantic.NewLoader(loaderOptions...)),
		orchestrator.WithRenderOptions(
			render.WithHeadingLevel(cfg.HeadingLevel),
			render.WithPlaceholder(cfg.Placeholder),
		),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	for _, src := range sources {
		location, err := schema.ParseSource(src.Location)
		if err != nil {
			return nil, fmt.Errorf("cli: source %s: %w", src.Namespace, err)
		}
		paths, err := orch.Load(ctx, orchestrator.LoadRequest{
			Namespace: src.Namespace,
			Source:    location,
			Format:    src.Kind,
		})
		if err != nil {
			return nil, fmt.Errorf("cli: source %s=%s: %w", src.Namespace, src.Location, err)
		}
		logger.WithField("namespace", src.Namespace).
			WithField("location", src.Location).
			Infof("registered %d declarations", len(paths))
	}
	return orch, nil
}

func newLogger(out io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
