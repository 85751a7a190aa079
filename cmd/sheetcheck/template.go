package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	app "github.com/mohammadpnp/party-onboarding/internal/application/party"
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/spreadsheet"
	"github.com/spf13/cobra"
)

const sampleRowCount = 5

var sampleCities = []struct{ city, state, pincode string }{
	{"Jaipur", "Rajasthan", "302001"},
	{"Indore", "Madhya Pradesh", "452001"},
	{"Nagpur", "Maharashtra", "440001"},
	{"Lucknow", "Uttar Pradesh", "226001"},
	{"Surat", "Gujarat", "395003"},
}

var sampleNames = []string{"Anil Sharma", "Priya Verma", "Rahul Gupta", "Sneha Patel", "Vikram Singh"}

func newTemplateCmd() *cobra.Command {
	var (
		partyTypes []string
		dir        string
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write the sample upload workbooks served by the samples endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range partyTypes {
				t, err := domain.ParseType(raw)
				if err != nil {
					return fmt.Errorf("invalid --type %q: %w", raw, err)
				}
				path, err := writeSampleTemplate(dir, t)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&partyTypes, "type", "t", []string{"retailer", "employee"}, "Party types to generate")
	cmd.Flags().StringVarP(&dir, "dir", "d", "./samples", "Directory the workbooks are written to")

	return cmd
}

func writeSampleTemplate(dir string, t domain.Type) (path string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	fields := domain.FieldsFor(t)
	headers := make([]string, 0, len(fields))
	for _, f := range fields {
		headers = append(headers, f.Name)
	}

	rows := make([]map[string]string, 0, sampleRowCount)
	for i := range sampleRowCount {
		rows = append(rows, sampleRow(t, i))
	}

	path = filepath.Join(dir, app.SampleTemplateName(t))
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	return path, spreadsheet.NewCodec().Encode(out, t.Plural(), headers, rows)
}

// sampleRow fills every required column and a few optional ones with values
// that pass the upload rules.
func sampleRow(t domain.Type, i int) map[string]string {
	n := strconv.Itoa(i + 1)
	name := sampleNames[i%len(sampleNames)]
	contact := strconv.Itoa(9876543210 - i*1111)

	if t == domain.TypeEmployee {
		return map[string]string{
			domain.FieldName:     name,
			domain.FieldEmail:    "employee" + n + "@example.com",
			domain.FieldPhone:    contact,
			domain.FieldPosition: "Field Executive",
		}
	}

	loc := sampleCities[i%len(sampleCities)]
	return map[string]string{
		domain.FieldShopName:      name + " General Store",
		domain.FieldShopAddress:   n + " Main Market Road",
		domain.FieldShopCity:      loc.city,
		domain.FieldShopState:     loc.state,
		domain.FieldShopPincode:   loc.pincode,
		domain.FieldBusinessType:  "Kirana",
		domain.FieldOwnershipType: "Proprietorship",
		domain.FieldName:          name,
		domain.FieldPANCard:       "ABCDE" + strconv.Itoa(1234+i) + "F",
		domain.FieldContactNo:     contact,
		domain.FieldEmail:         "retailer" + n + "@example.com",
		domain.FieldCity:          loc.city,
		domain.FieldState:         loc.state,
		domain.FieldBankName:      "State Bank of India",
		domain.FieldAccountNumber: "30000000" + strconv.Itoa(1000+i),
		domain.FieldIFSC:          "SBIN000" + strconv.Itoa(1000+i),
		domain.FieldBranchName:    loc.city + " Main",
		domain.FieldPartOfIndia:   "Y",
	}
}
