package party

import "errors"

var (
	ErrForbidden           = errors.New("admin role required")
	ErrMissingFile         = errors.New("spreadsheet file is required")
	ErrDecodeUpload        = errors.New("failed to decode spreadsheet")
	ErrBulkUpload          = errors.New("failed to process bulk upload")
	ErrInvalidRegistration = errors.New("email and contact number are required")
	ErrFieldTooLong        = errors.New("field too long")
	ErrPhoneNotVerified    = errors.New("phone number not verified")
	ErrDuplicateParty      = errors.New("phone or email already registered")
	ErrRegisterRetailer    = errors.New("failed to register retailer")
	ErrListRetailers       = errors.New("failed to list retailers")
	ErrNoFailedRows        = errors.New("no failed rows to export")
	ErrExportFailedRows    = errors.New("failed to export failed rows")
	ErrTemplateNotFound    = errors.New("sample template not found")
	ErrLoadTemplate        = errors.New("failed to load sample template")
)
