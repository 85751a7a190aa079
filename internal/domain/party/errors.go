package party

import "errors"

var (
	ErrInvalidPartyType      = errors.New("invalid party type")
	ErrPartyNotFound         = errors.New("party not found")
	ErrDuplicateParty        = errors.New("email or contact already registered")
	ErrUnreadableSpreadsheet = errors.New("unreadable spreadsheet")
	ErrTemplateNotFound      = errors.New("sample template not found")
)
