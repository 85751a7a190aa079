package party

import (
	"context"
	"io"
)

type RetailerRepository interface {
	CreateRetailer(ctx context.Context, retailer *Retailer) error
	ListRetailers(ctx context.Context) ([]Retailer, error)
	FindRetailerByContact(ctx context.Context, contactNo string) (*Retailer, error)
	FindRetailersByIDs(ctx context.Context, ids []string) ([]Retailer, error)
	UpdateRetailerPassword(ctx context.Context, retailerID, newPassword string) error
}

type EmployeeRepository interface {
	FindEmployeeByID(ctx context.Context, id string) (*Employee, error)
	FindEmployeesByIDs(ctx context.Context, ids []string) ([]Employee, error)
}

// DuplicateChecker answers whether a record of the given type already uses the
// email or the contact number. The answer is a point-in-time hint, not a lock.
type DuplicateChecker interface {
	ExistsByEmailOrContact(ctx context.Context, t Type, email, contact string) (bool, error)
}

// BulkInserter persists records with unordered semantics and returns only the
// records that were stored, with their generated codes filled in.
type BulkInserter interface {
	InsertRetailers(ctx context.Context, retailers []Retailer) ([]Retailer, error)
	InsertEmployees(ctx context.Context, employees []Employee) ([]Employee, error)
}

type BlobStore interface {
	Upload(ctx context.Context, folder, fileName, contentType string, content io.Reader) (BlobRef, error)
}

type UploadBatchRecorder interface {
	Record(ctx context.Context, batch UploadBatch) (string, error)
}
