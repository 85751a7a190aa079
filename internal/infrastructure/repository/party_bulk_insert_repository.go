package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/db/models"
	"golang.org/x/sync/errgroup"
)

const DefaultHashWorkers = 4

type bulkTable struct {
	table         string
	staging       string
	columns       []string
	contactColumn string
}

var retailerTable = bulkTable{
	table:   "retailers",
	staging: "stg_retailers",
	columns: []string{
		"id", "unique_id", "retailer_code", "name", "contact_no", "email", "password",
		"dob", "gender", "govt_id_type", "govt_id_number",
		"govt_id_photo_url", "govt_id_photo_id", "person_photo_url", "person_photo_id",
		"registration_form_url", "registration_form_id",
		"address", "city", "state", "lat", "lng",
		"shop_name", "business_type", "ownership_type", "date_of_establishment", "gst_no", "pan_card",
		"outlet_photo_url", "outlet_photo_id",
		"shop_address", "shop_address2", "shop_city", "shop_state", "shop_pincode", "shop_lat", "shop_lng",
		"bank_name", "account_number", "ifsc", "branch_name",
		"part_of_india", "created_by", "phone_verified", "created_at", "updated_at",
	},
	contactColumn: "contact_no",
}

var employeeTable = bulkTable{
	table:   "employees",
	staging: "stg_employees",
	columns: []string{
		"id", "unique_id", "employee_id", "name", "email", "phone", "position", "password",
		"created_by", "created_at", "updated_at",
	},
	contactColumn: "phone",
}

// rowKey identifies a pending row and the natural keys it may clash on.
type rowKey struct {
	id      string
	email   string
	contact string
}

// PartyBulkInsertRepository writes whole upload batches through a staging table.
// A row that clashes with an existing record is skipped without blocking the
// rest of the batch.
type PartyBulkInsertRepository struct {
	pool            *pgxpool.Pool
	codes           domain.CodeSource
	maxCodeAttempts int
	hashWorkers     int
	now             func() time.Time
}

func NewPartyBulkInsertRepository(pool *pgxpool.Pool, maxCodeAttempts, hashWorkers int) *PartyBulkInsertRepository {
	if maxCodeAttempts <= 0 {
		maxCodeAttempts = DefaultMaxCodeAttempts
	}
	if hashWorkers <= 0 {
		hashWorkers = DefaultHashWorkers
	}
	return &PartyBulkInsertRepository{
		pool:            pool,
		codes:           domain.DefaultCodeSource,
		maxCodeAttempts: maxCodeAttempts,
		hashWorkers:     hashWorkers,
		now:             time.Now,
	}
}

// WithCodeSource replaces the source generated codes are drawn from.
func (r *PartyBulkInsertRepository) WithCodeSource(src domain.CodeSource) *PartyBulkInsertRepository {
	if src != nil {
		r.codes = src
	}
	return r
}

func (r *PartyBulkInsertRepository) InsertRetailers(ctx context.Context, retailers []domain.Retailer) ([]domain.Retailer, error) {
	if len(retailers) == 0 {
		return nil, nil
	}

	pending := make([]domain.Retailer, len(retailers))
	copy(pending, retailers)
	for i := range pending {
		pending[i].ID = ensureUUID(pending[i].ID)
		domain.AssignRetailerCodes(&pending[i], r.codes)
	}

	hashed, err := r.hashPasswords(ctx, len(pending), func(i int) string { return pending[i].Password })
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()
	stored, err := r.insertUnordered(ctx, retailerTable, len(pending),
		func(i int) []any {
			row := toRetailerModel(pending[i])
			row.Password = hashed[i]
			return retailerValues(row, now)
		},
		func(i int) rowKey {
			return rowKey{id: pending[i].ID, email: pending[i].Email, contact: pending[i].ContactNo}
		},
		func(i int) { domain.AssignRetailerCodes(&pending[i], r.codes) },
	)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Retailer, 0, len(stored))
	for _, i := range stored {
		retailer := pending[i]
		retailer.Password = hashed[i]
		out = append(out, retailer)
	}
	return out, nil
}

func (r *PartyBulkInsertRepository) InsertEmployees(ctx context.Context, employees []domain.Employee) ([]domain.Employee, error) {
	if len(employees) == 0 {
		return nil, nil
	}

	pending := make([]domain.Employee, len(employees))
	copy(pending, employees)
	for i := range pending {
		pending[i].ID = ensureUUID(pending[i].ID)
		domain.AssignEmployeeCodes(&pending[i], r.codes)
	}

	hashed, err := r.hashPasswords(ctx, len(pending), func(i int) string { return pending[i].Password })
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()
	stored, err := r.insertUnordered(ctx, employeeTable, len(pending),
		func(i int) []any {
			e := pending[i]
			return []any{pgUUID(e.ID), e.UniqueID, e.EmployeeID, e.Name, e.Email, e.Phone, e.Position, hashed[i], e.CreatedBy, now, now}
		},
		func(i int) rowKey {
			return rowKey{id: pending[i].ID, email: pending[i].Email, contact: pending[i].Phone}
		},
		func(i int) { domain.AssignEmployeeCodes(&pending[i], r.codes) },
	)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Employee, 0, len(stored))
	for _, i := range stored {
		employee := pending[i]
		employee.Password = hashed[i]
		out = append(out, employee)
	}
	return out, nil
}

func (r *PartyBulkInsertRepository) hashPasswords(ctx context.Context, n int, plain func(i int) string) ([]string, error) {
	hashed := make([]string, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.hashWorkers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h, err := models.HashPassword(plain(i))
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			hashed[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hashed, nil
}

// insertUnordered stages the pending rows and inserts them with ON CONFLICT DO
// NOTHING. Skipped rows whose email and contact are still free lost on a
// generated code, so they get fresh codes and another attempt. It returns the
// indexes of the stored rows in input order.
func (r *PartyBulkInsertRepository) insertUnordered(
	ctx context.Context,
	tbl bulkTable,
	n int,
	values func(i int) []any,
	key func(i int) rowKey,
	regenerate func(i int),
) ([]int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf(
		"CREATE TEMP TABLE %s (LIKE %s INCLUDING DEFAULTS, row_index INT NOT NULL) ON COMMIT DROP",
		tbl.staging, tbl.table,
	)); err != nil {
		return nil, fmt.Errorf("create %s: %w", tbl.staging, err)
	}

	stored := make([]bool, n)
	pending := make([]int, n)
	for i := range pending {
		pending[i] = i
	}

	for attempt := 1; len(pending) > 0; attempt++ {
		if _, err := tx.Exec(ctx, "TRUNCATE "+tbl.staging); err != nil {
			return nil, fmt.Errorf("truncate %s: %w", tbl.staging, err)
		}

		rows := make([][]any, 0, len(pending))
		for _, i := range pending {
			rows = append(rows, append(values(i), int64(i)))
		}
		if _, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{tbl.staging},
			append(append([]string{}, tbl.columns...), "row_index"),
			pgx.CopyFromRows(rows),
		); err != nil {
			return nil, fmt.Errorf("copy %s staging: %w", tbl.table, err)
		}

		inserted, err := insertFromStaging(ctx, tx, tbl)
		if err != nil {
			return nil, err
		}

		skipped := make([]int, 0)
		for _, i := range pending {
			if _, ok := inserted[key(i).id]; ok {
				stored[i] = true
				continue
			}
			skipped = append(skipped, i)
		}
		if len(skipped) == 0 || attempt >= r.maxCodeAttempts {
			break
		}

		taken, err := takenKeys(ctx, tx, tbl, skipped, key)
		if err != nil {
			return nil, err
		}

		pending = pending[:0]
		for _, i := range skipped {
			k := key(i)
			if _, ok := taken[k.email]; ok {
				continue
			}
			if _, ok := taken[k.contact]; ok {
				continue
			}
			regenerate(i)
			pending = append(pending, i)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit %s batch: %w", tbl.table, err)
	}

	out := make([]int, 0, n)
	for i, ok := range stored {
		if ok {
			out = append(out, i)
		}
	}
	return out, nil
}

func insertFromStaging(ctx context.Context, tx pgx.Tx, tbl bulkTable) (map[string]struct{}, error) {
	columns := strings.Join(tbl.columns, ", ")
	rows, err := tx.Query(ctx, fmt.Sprintf(`
INSERT INTO %s (%s)
SELECT %s
FROM %s
ORDER BY row_index
ON CONFLICT DO NOTHING
RETURNING id::text
`, tbl.table, columns, columns, tbl.staging))
	if err != nil {
		return nil, fmt.Errorf("insert %s from staging: %w", tbl.table, err)
	}
	defer rows.Close()

	inserted := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		inserted[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("insert %s from staging: %w", tbl.table, err)
	}
	return inserted, nil
}

// takenKeys returns the emails and contacts of the skipped rows that already
// belong to a stored record, including rows stored earlier in this batch.
func takenKeys(ctx context.Context, tx pgx.Tx, tbl bulkTable, skipped []int, key func(i int) rowKey) (map[string]struct{}, error) {
	emails := make([]string, 0, len(skipped))
	contacts := make([]string, 0, len(skipped))
	for _, i := range skipped {
		k := key(i)
		emails = append(emails, k.email)
		contacts = append(contacts, k.contact)
	}

	rows, err := tx.Query(ctx, fmt.Sprintf(
		"SELECT email, %[2]s FROM %[1]s WHERE email = ANY($1) OR %[2]s = ANY($2)",
		tbl.table, tbl.contactColumn,
	), emails, contacts)
	if err != nil {
		return nil, fmt.Errorf("lookup taken %s keys: %w", tbl.table, err)
	}
	defer rows.Close()

	taken := make(map[string]struct{})
	for rows.Next() {
		var email, contact string
		if err := rows.Scan(&email, &contact); err != nil {
			return nil, err
		}
		taken[email] = struct{}{}
		taken[contact] = struct{}{}
	}
	return taken, rows.Err()
}

func retailerValues(row models.Retailer, now time.Time) []any {
	return []any{
		pgUUID(row.ID), row.UniqueID, row.RetailerCode, row.Name, row.ContactNo, row.Email, row.Password,
		row.DOB, row.Gender, row.GovtIDType, row.GovtIDNumber,
		row.GovtIDPhotoURL, row.GovtIDPhotoID, row.PersonPhotoURL, row.PersonPhotoID,
		row.RegistrationFormURL, row.RegistrationFormID,
		row.Address, row.City, row.State, row.Lat, row.Lng,
		row.ShopName, row.BusinessType, row.OwnershipType, row.DateOfEstablishment, row.GSTNo, row.PANCard,
		row.OutletPhotoURL, row.OutletPhotoID,
		row.ShopAddress, row.ShopAddress2, row.ShopCity, row.ShopState, row.ShopPincode, row.ShopLat, row.ShopLng,
		row.BankName, row.AccountNumber, row.IFSC, row.BranchName,
		row.PartOfIndia, row.CreatedBy, row.PhoneVerified, now, now,
	}
}

// ensureUUID keeps a caller-assigned id so stored rows can be matched back to
// their source rows.
func ensureUUID(id string) string {
	if _, err := uuid.Parse(id); err == nil {
		return id
	}
	return uuid.NewString()
}

func pgUUID(id string) pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.MustParse(id), Valid: true}
}
