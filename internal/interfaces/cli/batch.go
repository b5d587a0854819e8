package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/turtacn/rdkit-go/internal/application/molecule"
	"github.com/turtacn/rdkit-go/pkg/errors"
)

// maxLineSize bounds one input line; molblocks are not accepted here.
const maxLineSize = 1 << 20

type batchOptions struct {
	operation string
	file      string
	query     bool
	format    string
	fp        fpFlags
	steps     []string
	strict    bool
}

func newBatchCmd() *cobra.Command {
	opts := &batchOptions{}
	names := make([]string, len(molecule.BatchOperations))
	for i, op := range molecule.BatchOperations {
		names[i] = string(op)
	}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run one operation over many molecules",
		Long: "Reads one molecule per line from --file, or from standard input when\n" +
			"--file is omitted or \"-\".  Blank lines and lines starting with '#' are\n" +
			"skipped.  Per-molecule failures are reported inline; with --strict the\n" +
			"command exits non-zero when any molecule failed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.operation, "op", string(molecule.BatchCanonical), "operation: "+strings.Join(names, "|"))
	f.StringVarP(&opts.file, "file", "f", "-", "input file, one molecule per line")
	f.BoolVar(&opts.query, "query", false, "parse inputs as SMARTS queries")
	f.StringVarP(&opts.format, "to", "t", string(molecule.FormatSMILES), "target format for --op convert")
	f.StringVarP(&opts.fp.kind, "kind", "k", "morgan", "fingerprint kind for --op fingerprint")
	f.IntVarP(&opts.fp.length, "length", "l", 0, "fingerprint bit length (0 = kind default)")
	f.IntVarP(&opts.fp.radius, "radius", "r", 0, "Morgan radius (0 = default)")
	f.StringSliceVarP(&opts.steps, "steps", "s", nil, "steps for --op standardize")
	f.BoolVar(&opts.strict, "strict", false, "exit non-zero when any molecule fails")
	return cmd
}

func runBatch(cmd *cobra.Command, opts *batchOptions) error {
	svc, ctx, cancel, err := serviceFor(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	molecules, err := readLines(cmd, opts.file)
	if err != nil {
		return err
	}
	if len(molecules) == 0 {
		return errors.InvalidParam("no molecules in input")
	}

	res, err := svc.Batch(ctx, &molecule.BatchInput{
		Operation: opts.operation,
		Molecules: molecules,
		Query:     opts.query,
		Format:    opts.format,
		Kind:      opts.fp.kind,
		Length:    opts.fp.length,
		Radius:    opts.fp.radius,
		Steps:     opts.steps,
	})
	if err != nil {
		return err
	}

	if err := PrintResult(cmd, batchView{res}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d succeeded, %d failed\n", res.Operation, res.Succeeded, res.Failed)
	if opts.strict && res.Failed > 0 {
		return errors.Newf(errors.ErrCodeValidation, "%d of %d molecules failed", res.Failed, len(res.Items))
	}
	return nil
}

// readLines reads non-blank, non-comment lines from path or stdin.
func readLines(cmd *cobra.Command, path string) ([]string, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeBadRequest, "failed to open input file")
		}
		defer f.Close()
		r = f
	}

	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeBadRequest, "failed to read input")
	}
	return lines, nil
}

type batchView struct{ *molecule.BatchResult }

// summarize renders one item's result in a single cell.
func summarize(result interface{}) string {
	switch r := result.(type) {
	case *molecule.CanonicalResult:
		return r.SMILES
	case *molecule.ConvertResult:
		return strings.TrimRight(r.Value, "\n")
	case *molecule.StandardizeResult:
		return r.SMILES
	case *molecule.FingerprintResult:
		return r.Bits
	case *molecule.DescriptorsResult:
		return fmt.Sprintf("atoms=%d heavy=%d", r.NumAtoms, r.NumHeavyAtoms)
	default:
		return fmt.Sprint(r)
	}
}

func (v batchView) String() string {
	lines := make([]string, len(v.Items))
	for i, it := range v.Items {
		if it.Error != nil {
			lines[i] = fmt.Sprintf("%s\t%s %s", it.Input, color.RedString(it.Error.Code), it.Error.Message)
			continue
		}
		lines[i] = fmt.Sprintf("%s\t%s", it.Input, summarize(it.Result))
	}
	return strings.Join(lines, "\n")
}

func (v batchView) TableHeaders() []string { return []string{"#", "Input", "Status", "Result"} }
func (v batchView) TableRows() [][]string {
	rows := make([][]string, len(v.Items))
	for i, it := range v.Items {
		if it.Error != nil {
			rows[i] = []string{strconv.Itoa(it.Index + 1), it.Input, it.Error.Code, it.Error.Message}
			continue
		}
		rows[i] = []string{strconv.Itoa(it.Index + 1), it.Input, "ok", summarize(it.Result)}
	}
	return rows
}

//Personal.AI order the ending
