package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	app "github.com/mohammadpnp/party-onboarding/internal/application/party"
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/spreadsheet"
	"github.com/spf13/cobra"
)

// errRowsRejected makes the process exit non-zero after the report is printed.
var errRowsRejected = errors.New("one or more rows were rejected")

type checkOptions struct {
	partyType      string
	out            string
	contactPattern string
	pincodeLength  int
	quiet          bool
}

func newRootCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "sheetcheck <workbook.xlsx>",
		Short: "Validate a retailer or employee upload workbook without touching the database",
		Long: "sheetcheck decodes the first sheet of a workbook and applies the same row rules as the\n" +
			"bulk upload endpoints, except the duplicate lookup which needs the database.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.partyType, "type", "t", "retailer", "Party type: retailer or employee")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write rejected rows to this xlsx file")
	cmd.Flags().StringVar(&opts.contactPattern, "contact-pattern", app.DefaultContactPattern, "Regular expression a contact number must match")
	cmd.Flags().IntVar(&opts.pincodeLength, "pincode-length", app.DefaultPincodeLength, "Required shop pincode length for retailers")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Print only the summary line")

	cmd.AddCommand(newTemplateCmd())

	return cmd
}

func runCheck(ctx context.Context, w io.Writer, path string, opts checkOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	t, err := domain.ParseType(opts.partyType)
	if err != nil {
		return fmt.Errorf("invalid --type %q: %w", opts.partyType, err)
	}

	validator, err := app.NewRowValidator(app.ValidationRules{
		ContactPattern: opts.contactPattern,
		PincodeLength:  opts.pincodeLength,
	}, nil, nil)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	codec := spreadsheet.NewCodec()
	rows, err := codec.Decode(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var failed []domain.FailedRow
	for _, row := range rows {
		outcome, err := validator.Validate(ctx, t, row)
		if err != nil {
			return err
		}
		if outcome.Valid() {
			continue
		}
		fr := outcome.FailedRow()
		failed = append(failed, fr)
		if !opts.quiet {
			fmt.Fprintf(w, "row %d: %s\n", fr.RowNumber, fr.Reason)
		}
	}

	valid := len(rows) - len(failed)
	fmt.Fprintf(w, "%s: %d rows, %d valid, %d rejected (%s)\n",
		t.Plural(), len(rows), valid, len(failed), domain.SuccessRate(valid, len(rows)))

	if opts.out != "" && len(failed) > 0 {
		if err := writeFailedRows(codec, opts.out, failed); err != nil {
			return err
		}
		fmt.Fprintf(w, "rejected rows written to %s\n", opts.out)
	}

	if len(failed) > 0 {
		return errRowsRejected
	}
	return nil
}

func writeFailedRows(codec *spreadsheet.Codec, path string, failed []domain.FailedRow) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return codec.EncodeFailedRows(out, failed)
}
