package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/turtacn/rdkit-go/internal/application/molecule"
	"github.com/turtacn/rdkit-go/internal/config"
	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/rdkit-go/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Output formats accepted by --output.
const (
	OutputText  = "text"
	OutputJSON  = "json"
	OutputTable = "table"
)

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// ServiceFactory builds the molecule service once flags and config are
// known.  The returned func releases whatever the factory opened.
type ServiceFactory func(cfg *config.Config, logger logging.Logger) (molecule.Service, func(), error)

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	LibPath      string
	NoColor      bool
	Timeout      time.Duration
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	Service      molecule.Service
	OutputFormat string
	Timeout      time.Duration

	factory ServiceFactory
	closer  func()
}

// NewRootCommand creates the root command with all global flags and the
// chemistry subcommands.
func NewRootCommand(factory ServiceFactory) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "rdkit",
		Short: "Cheminformatics from the command line, backed by RDKit",
		Long: "rdkit parses molecules from SMILES, SMARTS or molblock text and runs RDKit\n" +
			"operations on them: canonicalization, format conversion, substructure\n" +
			"matching, fingerprints, standardization, descriptors and SVG depiction.\n" +
			"Molecule arguments may be \"-\" to read from standard input.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts, factory)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cliCtx, err := GetCLIContext(cmd); err == nil && cliCtx.closer != nil {
				cliCtx.closer()
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: RDKIT_* environment only)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", OutputText, "output format (text, json, table)")
	pf.StringVar(&opts.LibPath, "lib", "", "path to librdkitcffi, tried before configured paths")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	pf.DurationVar(&opts.Timeout, "timeout", 30*time.Second, "per-command timeout")

	cmd.AddCommand(
		newVersionCmd(),
		newCanonicalCmd(),
		newConvertCmd(),
		newMatchCmd(),
		newFingerprintCmd(),
		newSimilarityCmd(),
		newStandardizeCmd(),
		newFragmentsCmd(),
		newDescriptorsCmd(),
		newDepictCmd(),
		newBatchCmd(),
	)
	return cmd
}

// persistentPreRun loads config and builds the logger, then stores
// CLIContext on the command.  The service is opened by the first command
// that needs it.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions, factory ServiceFactory) error {
	switch strings.ToLower(opts.OutputFormat) {
	case OutputText, OutputJSON, OutputTable:
	default:
		return errors.Newf(errors.ErrCodeBadRequest, "unknown output format %q; expected text, json or table", opts.OutputFormat)
	}
	if opts.NoColor || !strings.EqualFold(opts.OutputFormat, OutputText) {
		color.NoColor = true
	}

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}
	if opts.LibPath != "" {
		cfg.Native.LibraryPaths = append([]string{opts.LibPath}, cfg.Native.LibraryPaths...)
	}

	logger, err := initLogger(opts)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	cliCtx := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		OutputFormat: strings.ToLower(opts.OutputFormat),
		Timeout:      opts.Timeout,
		factory:      factory,
	}
	cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, cliCtx))
	return nil
}

// initLogger creates a console logger on stderr so stdout stays clean for
// results.
func initLogger(opts *RootOptions) (logging.Logger, error) {
	level, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewLogger(logging.LogConfig{
		Level:            level,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New(errors.ErrCodeInternal, "command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.New(errors.ErrCodeInternal, "CLIContext not found in command context")
	}
	return cliCtx, nil
}

// serviceFor opens the service on first use and returns it with a context
// bounded by --timeout.
func serviceFor(cmd *cobra.Command) (molecule.Service, context.Context, context.CancelFunc, error) {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	if cliCtx.Service == nil {
		if cliCtx.factory == nil {
			return nil, nil, nil, errors.Unavailable("rdkit service is not configured")
		}
		svc, closer, err := cliCtx.factory(cliCtx.Config, cliCtx.Logger)
		if err != nil {
			return nil, nil, nil, err
		}
		cliCtx.Service, cliCtx.closer = svc, closer
	}
	ctx, cancel := cmd.Context(), context.CancelFunc(func() {})
	if cliCtx.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, cliCtx.Timeout)
	}
	return cliCtx.Service, ctx, cancel, nil
}

// Execute is the main entry point for the CLI application.
func Execute(factory ServiceFactory) error {
	rootCmd := NewRootCommand(factory)
	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// tableProvider is implemented by results that render as a table.
type tableProvider interface {
	TableHeaders() []string
	TableRows() [][]string
}

// PrintResult outputs data in the format chosen by --output.
func PrintResult(cmd *cobra.Command, data interface{}) error {
	format := OutputText
	if cliCtx, err := GetCLIContext(cmd); err == nil {
		format = cliCtx.OutputFormat
	}

	switch format {
	case OutputJSON:
		return printJSON(cmd.OutOrStdout(), data)
	case OutputTable:
		if tp, ok := data.(tableProvider); ok {
			_, err := fmt.Fprint(cmd.OutOrStdout(), FormatTable(tp.TableHeaders(), tp.TableRows()))
			return err
		}
		return printText(cmd.OutOrStdout(), data)
	default:
		return printText(cmd.OutOrStdout(), data)
	}
}

func printJSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printText(w io.Writer, data interface{}) error {
	var err error
	switch v := data.(type) {
	case string:
		_, err = fmt.Fprintln(w, v)
	case fmt.Stringer:
		_, err = fmt.Fprintln(w, v.String())
	default:
		_, err = fmt.Fprintf(w, "%+v\n", v)
	}
	return err
}

// PrintError writes err to stderr, leading with the error code when there
// is one.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	red := color.New(color.FgRed, color.Bold)
	if ae, ok := errors.AsAppError(err); ok {
		msg := ae.Message
		if ae.Detail != "" {
			msg += ": " + ae.Detail
		}
		red.Fprintf(cmd.ErrOrStderr(), "Error [%s]: ", ae.Code)
		fmt.Fprintln(cmd.ErrOrStderr(), msg)
		return
	}
	red.Fprint(cmd.ErrOrStderr(), "Error: ")
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
}

// PrintSuccess writes a status line to stderr so it never mixes with
// results on stdout.
func PrintSuccess(cmd *cobra.Command, msg string) {
	color.New(color.FgGreen).Fprint(cmd.ErrOrStderr(), "OK: ")
	fmt.Fprintln(cmd.ErrOrStderr(), msg)
}

// FormatTable renders headers and rows as a bordered ASCII table.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
	return sb.String()
}

// readInput returns arg, or all of stdin when arg is "-".
func readInput(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeBadRequest, "failed to read standard input")
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

//Personal.AI order the ending
