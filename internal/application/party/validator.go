package party

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
	"go.uber.org/zap"
)

const (
	DefaultContactPattern = `^[6-9]\d{9}$`
	DefaultPincodeLength  = 6

	ReasonDuplicate      = "Duplicate entry: Email or Contact already exists"
	ReasonInvalidEmail   = "Invalid email format"
	ReasonInvalidContact = "Invalid contact number"
	ReasonInvalidPincode = "Invalid pincode"
	reasonMissingPrefix  = "Missing required fields: "
	reasonTooLongPrefix  = "Field too long: "
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type ValidationRules struct {
	ContactPattern string
	PincodeLength  int
}

// ValidationOutcome carries either the normalized record for the row's party
// type or the reasons it was rejected.
type ValidationOutcome struct {
	Row      domain.UploadRow
	Reasons  []string
	Retailer domain.Retailer
	Employee domain.Employee
}

func (o ValidationOutcome) Valid() bool {
	return len(o.Reasons) == 0
}

func (o ValidationOutcome) FailedRow() domain.FailedRow {
	return domain.NewFailedRow(o.Row, o.Reasons...)
}

// RowValidator applies the row rules in a fixed order and stops at the first
// failing rule. A nil duplicate checker skips the store lookup.
type RowValidator struct {
	contact    *regexp.Regexp
	pincodeLen int
	duplicates domain.DuplicateChecker
	logger     *zap.Logger
}

func NewRowValidator(rules ValidationRules, duplicates domain.DuplicateChecker, logger *zap.Logger) (*RowValidator, error) {
	if rules.ContactPattern == "" {
		rules.ContactPattern = DefaultContactPattern
	}
	if rules.PincodeLength <= 0 {
		rules.PincodeLength = DefaultPincodeLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	contact, err := regexp.Compile(rules.ContactPattern)
	if err != nil {
		return nil, fmt.Errorf("compile contact pattern: %w", err)
	}

	return &RowValidator{
		contact:    contact,
		pincodeLen: rules.PincodeLength,
		duplicates: duplicates,
		logger:     logger,
	}, nil
}

// Validate returns an error only when the duplicate lookup itself fails.
func (v *RowValidator) Validate(ctx context.Context, t domain.Type, row domain.UploadRow) (ValidationOutcome, error) {
	outcome, err := v.validate(ctx, t, row)
	if err != nil {
		return ValidationOutcome{}, err
	}

	if outcome.Valid() {
		v.logger.Debug("row accepted",
			zap.String("party_type", string(t)),
			zap.Int("row", row.Number),
		)
	} else {
		v.logger.Debug("row rejected",
			zap.String("party_type", string(t)),
			zap.Int("row", row.Number),
			zap.Strings("reasons", outcome.Reasons),
		)
	}
	return outcome, nil
}

func (v *RowValidator) validate(ctx context.Context, t domain.Type, row domain.UploadRow) (ValidationOutcome, error) {
	fields := domain.FieldsFor(t)
	values := domain.ResolveValues(fields, row.Get)
	outcome := ValidationOutcome{Row: row}

	if missing := values.Missing(fields); len(missing) > 0 {
		outcome.Reasons = []string{reasonMissingPrefix + strings.Join(missing, ", ")}
		return outcome, nil
	}
	if long := values.TooLong(fields); len(long) > 0 {
		outcome.Reasons = []string{reasonTooLongPrefix + strings.Join(long, ", ")}
		return outcome, nil
	}

	email := values[domain.FieldEmail]
	contact := values[domain.ContactField(t)]

	if v.duplicates != nil {
		exists, err := v.duplicates.ExistsByEmailOrContact(ctx, t, email, contact)
		if err != nil {
			return ValidationOutcome{}, fmt.Errorf("check duplicate for row %d: %w", row.Number, err)
		}
		if exists {
			outcome.Reasons = []string{ReasonDuplicate}
			return outcome, nil
		}
	}

	if !emailPattern.MatchString(email) {
		outcome.Reasons = []string{ReasonInvalidEmail}
		return outcome, nil
	}
	if !v.contact.MatchString(contact) {
		outcome.Reasons = []string{ReasonInvalidContact}
		return outcome, nil
	}

	if t == domain.TypeEmployee {
		employee := domain.NewEmployee(values)
		employee.CreatedBy = domain.CreatedByAdmin
		outcome.Employee = employee
		return outcome, nil
	}

	if utf8.RuneCountInString(values[domain.FieldShopPincode]) != v.pincodeLen {
		outcome.Reasons = []string{ReasonInvalidPincode}
		return outcome, nil
	}

	retailer := domain.NewRetailer(values)
	retailer.CreatedBy = domain.CreatedByAdmin
	outcome.Retailer = retailer
	return outcome, nil
}
