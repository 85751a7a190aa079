package party_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"sync"

	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
)

type fakeDecoder struct {
	rows []domain.UploadRow
	err  error
}

func (f *fakeDecoder) Decode(r io.Reader) ([]domain.UploadRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

// memoryStore enforces email and contact uniqueness like the real store and
// can be told to drop specific emails at insert time.
type memoryStore struct {
	mu        sync.Mutex
	retailers []domain.Retailer
	employees []domain.Employee
	dropEmail map[string]bool
	lookupErr error
	insertErr error
	seq       int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{dropEmail: map[string]bool{}}
}

func (s *memoryStore) ExistsByEmailOrContact(ctx context.Context, t domain.Type, email, contact string) (bool, error) {
	if s.lookupErr != nil {
		return false, s.lookupErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taken(t, email, contact), nil
}

func (s *memoryStore) taken(t domain.Type, email, contact string) bool {
	if t == domain.TypeEmployee {
		for _, e := range s.employees {
			if e.Email == email || e.Phone == contact {
				return true
			}
		}
		return false
	}
	for _, r := range s.retailers {
		if r.Email == email || r.ContactNo == contact {
			return true
		}
	}
	return false
}

func (s *memoryStore) nextCode() string {
	s.seq++
	return "CODE" + strconv.Itoa(1000+s.seq)
}

func (s *memoryStore) InsertRetailers(ctx context.Context, retailers []domain.Retailer) ([]domain.Retailer, error) {
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored []domain.Retailer
	for _, r := range retailers {
		if s.dropEmail[r.Email] || s.taken(domain.TypeRetailer, r.Email, r.ContactNo) {
			continue
		}
		r.UniqueID = s.nextCode()
		r.RetailerCode = domain.RetailerCodePrefix + s.nextCode()
		s.retailers = append(s.retailers, r)
		stored = append(stored, r)
	}
	return stored, nil
}

func (s *memoryStore) InsertEmployees(ctx context.Context, employees []domain.Employee) ([]domain.Employee, error) {
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored []domain.Employee
	for _, e := range employees {
		if s.dropEmail[e.Email] || s.taken(domain.TypeEmployee, e.Email, e.Phone) {
			continue
		}
		e.UniqueID = s.nextCode()
		e.EmployeeID = domain.EmployeeCodePrefix + s.nextCode()
		s.employees = append(s.employees, e)
		stored = append(stored, e)
	}
	return stored, nil
}

func (s *memoryStore) CreateRetailer(ctx context.Context, retailer *domain.Retailer) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.taken(domain.TypeRetailer, retailer.Email, retailer.ContactNo) {
		return domain.ErrDuplicateParty
	}
	retailer.UniqueID = s.nextCode()
	retailer.RetailerCode = domain.RetailerCodePrefix + s.nextCode()
	s.retailers = append(s.retailers, *retailer)
	return nil
}

func (s *memoryStore) ListRetailers(ctx context.Context) ([]domain.Retailer, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Retailer(nil), s.retailers...), nil
}

type fakeBatchRecorder struct {
	batches []domain.UploadBatch
	err     error
}

func (f *fakeBatchRecorder) Record(ctx context.Context, batch domain.UploadBatch) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.batches = append(f.batches, batch)
	return "batch-" + strconv.Itoa(len(f.batches)), nil
}

type fakeOTPChecker struct {
	pending map[string]bool
	err     error
}

func (f *fakeOTPChecker) Has(ctx context.Context, phone string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.pending[phone], nil
}

type uploadCall struct {
	folder      string
	contentType string
	body        string
}

type fakeBlobStore struct {
	calls []uploadCall
	err   error
}

func (f *fakeBlobStore) Upload(ctx context.Context, folder, fileName, contentType string, content io.Reader) (domain.BlobRef, error) {
	if f.err != nil {
		return domain.BlobRef{}, f.err
	}
	body, err := io.ReadAll(content)
	if err != nil {
		return domain.BlobRef{}, err
	}
	f.calls = append(f.calls, uploadCall{folder: folder, contentType: contentType, body: string(body)})
	return domain.BlobRef{URL: "https://blobs.example.com/" + folder + "/" + fileName, PublicID: folder + "/" + fileName}, nil
}

type fakeEncoder struct {
	got []domain.FailedRow
	err error
}

func (f *fakeEncoder) EncodeFailedRows(w io.Writer, failed []domain.FailedRow) error {
	if f.err != nil {
		return f.err
	}
	f.got = failed
	_, err := w.Write([]byte("xlsx"))
	return err
}

type fakeTemplates struct {
	files map[string]string
	err   error
}

func (f *fakeTemplates) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.files[name]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	return io.NopCloser(bytes.NewBufferString(body)), nil
}

var errStoreDown = errors.New("store down")

func retailerRow(number int, contact, email string) domain.UploadRow {
	data := domain.NewRowData()
	for _, kv := range [][2]string{
		{"shopName", "Shop " + contact},
		{"shopAddress", "12 MG Road"},
		{"shopCity", "Indore"},
		{"shopState", "MP"},
		{"shopPincode", "452001"},
		{"businessType", "Grocery"},
		{"name", "Owner " + contact},
		{"PANCard", "ABCDE1234F"},
		{"contactNo", contact},
		{"email", email},
		{"bankName", "SBI"},
		{"accountNumber", "00012345"},
		{"IFSC", "SBIN0000001"},
		{"branchName", "Indore Main"},
	} {
		if kv[1] == "" {
			continue
		}
		data.Set(kv[0], kv[1])
	}
	return domain.UploadRow{Number: number, Data: data}
}

func employeeRow(number int, phone, email string) domain.UploadRow {
	data := domain.NewRowData()
	data.Set("name", "Employee "+phone)
	data.Set("email", email)
	data.Set("phone", phone)
	data.Set("position", "Field Officer")
	return domain.UploadRow{Number: number, Data: data}
}
