package party

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
	"go.uber.org/zap"
)

const (
	FileOutletPhoto      = "outletPhoto"
	FileGovtIDPhoto      = "govtIdPhoto"
	FilePersonPhoto      = "personPhoto"
	FileRegistrationForm = "registrationFormFile"

	defaultPartOfIndia = "N"
)

// registrationUploads is the order files are sent to the blob store and the
// folder each one lands in.
var registrationUploads = []struct {
	field  string
	folder string
}{
	{FileOutletPhoto, "retailers/outlet_photos"},
	{FileGovtIDPhoto, "retailers/govt_id"},
	{FilePersonPhoto, "retailers/person_photos"},
	{FileRegistrationForm, "retailers/registration_forms"},
}

type RegistrationFile struct {
	FileName    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

type RegisterRetailerInput struct {
	Form  domain.Lookup
	Files map[string]RegistrationFile
}

type RegisterRetailerOutput struct {
	ID       string `json:"id"`
	UniqueID string `json:"uniqueId"`
}

type RegisterRetailer interface {
	Execute(ctx context.Context, in RegisterRetailerInput) (RegisterRetailerOutput, error)
}

type pendingOTPChecker interface {
	Has(ctx context.Context, phone string) (bool, error)
}

// phoneNormalizer yields the national number OTP codes are keyed by.
type phoneNormalizer interface {
	Normalize(raw string) (string, error)
}

type retailerCreator interface {
	CreateRetailer(ctx context.Context, retailer *domain.Retailer) error
}

type registerRetailer struct {
	otps       pendingOTPChecker
	phones     phoneNormalizer
	duplicates domain.DuplicateChecker
	blobs      domain.BlobStore
	repo       retailerCreator
	logger     *zap.Logger
}

func NewRegisterRetailer(
	otps pendingOTPChecker,
	phones phoneNormalizer,
	duplicates domain.DuplicateChecker,
	blobs domain.BlobStore,
	repo retailerCreator,
	logger *zap.Logger,
) RegisterRetailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &registerRetailer{otps: otps, phones: phones, duplicates: duplicates, blobs: blobs, repo: repo, logger: logger}
}

func (uc *registerRetailer) Execute(ctx context.Context, in RegisterRetailerInput) (RegisterRetailerOutput, error) {
	values := domain.ResolveValues(domain.RetailerFields, in.Form)
	email := values[domain.FieldEmail]
	contact := values[domain.FieldContactNo]
	if email == "" || contact == "" {
		return RegisterRetailerOutput{}, ErrInvalidRegistration
	}
	if long := values.TooLong(domain.RetailerFields); len(long) > 0 {
		return RegisterRetailerOutput{}, fmt.Errorf("%w: %s", ErrFieldTooLong, strings.Join(long, ", "))
	}

	// A pending code means the phone was never verified.
	pending, err := uc.otps.Has(ctx, uc.otpKey(contact))
	if err != nil {
		return RegisterRetailerOutput{}, fmt.Errorf("%w: %v", ErrRegisterRetailer, err)
	}
	if pending {
		return RegisterRetailerOutput{}, ErrPhoneNotVerified
	}

	exists, err := uc.duplicates.ExistsByEmailOrContact(ctx, domain.TypeRetailer, email, contact)
	if err != nil {
		return RegisterRetailerOutput{}, fmt.Errorf("%w: %v", ErrRegisterRetailer, err)
	}
	if exists {
		return RegisterRetailerOutput{}, ErrDuplicateParty
	}

	retailer := domain.NewRetailer(values)
	if retailer.PartOfIndia == "" {
		retailer.PartOfIndia = defaultPartOfIndia
	}
	if retailer.CreatedBy == "" {
		retailer.CreatedBy = domain.CreatedByRetailerSelf
	}

	refs := make(map[string]*domain.BlobRef, len(registrationUploads))
	for _, upload := range registrationUploads {
		file, ok := in.Files[upload.field]
		if !ok {
			continue
		}
		ref, err := uc.upload(ctx, upload.folder, file)
		if err != nil {
			return RegisterRetailerOutput{}, fmt.Errorf("%w: upload %s: %v", ErrRegisterRetailer, upload.field, err)
		}
		refs[upload.field] = &ref
	}
	retailer.Shop.OutletPhoto = refs[FileOutletPhoto]
	retailer.GovtIDPhoto = refs[FileGovtIDPhoto]
	retailer.PersonPhoto = refs[FilePersonPhoto]
	retailer.RegistrationForm = refs[FileRegistrationForm]

	retailer.ID = uuid.NewString()
	if err := uc.repo.CreateRetailer(ctx, &retailer); err != nil {
		if errors.Is(err, domain.ErrDuplicateParty) {
			return RegisterRetailerOutput{}, ErrDuplicateParty
		}
		return RegisterRetailerOutput{}, fmt.Errorf("%w: %v", ErrRegisterRetailer, err)
	}

	uc.logger.Info("retailer registered",
		zap.String("retailer_id", retailer.ID),
		zap.String("unique_id", retailer.UniqueID),
		zap.Int("files", len(refs)),
	)

	return RegisterRetailerOutput{ID: retailer.ID, UniqueID: retailer.UniqueID}, nil
}

// otpKey returns the national number codes are stored under. A contact that
// does not parse is checked as given.
func (uc *registerRetailer) otpKey(contact string) string {
	if uc.phones == nil {
		return contact
	}
	if national, err := uc.phones.Normalize(contact); err == nil {
		return national
	}
	return contact
}

func (uc *registerRetailer) upload(ctx context.Context, folder string, file RegistrationFile) (domain.BlobRef, error) {
	content, err := file.Open()
	if err != nil {
		return domain.BlobRef{}, err
	}
	defer content.Close()

	name := uuid.NewString() + strings.ToLower(path.Ext(file.FileName))
	return uc.blobs.Upload(ctx, folder, name, file.ContentType, content)
}
