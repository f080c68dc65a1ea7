package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frequencyai/member-platform/internal/domain"
)

type CustomersRepo interface {
	Create(ctx context.Context, userID string, profile domain.Profile, email string) (*domain.Customer, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Customer, error)
	List(ctx context.Context, opts domain.CustomerListOptions) ([]domain.Customer, int, error)
}

type CustomersRepoImpl struct{ pool *pgxpool.Pool }

func NewCustomersRepo(pool *pgxpool.Pool) *CustomersRepoImpl { return &CustomersRepoImpl{pool: pool} }

const customerCols = `id, user_id, first_name, last_name, email, phone_number, sms_opt_in, created_at, updated_at`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Email,
		&c.PhoneNumber, &c.SMSOptIn, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomersRepoImpl) Create(ctx context.Context, userID string, profile domain.Profile, email string) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (id, user_id, first_name, last_name, email, phone_number, sms_opt_in)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING ` + customerCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanCustomer(r.pool.QueryRow(ctx, q,
		uuid.NewString(), userID,
		profile.FirstName, profile.LastName, email, profile.PhoneNumber, profile.SMSOptIn,
	))
}

// FindByUserID is the unique owning-user lookup. No row means no customer,
// not a failure.
func (r *CustomersRepoImpl) FindByUserID(ctx context.Context, userID string) (*domain.Customer, error) {
	const q = `SELECT ` + customerCols + ` FROM customers WHERE user_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	c, err := scanCustomer(r.pool.QueryRow(ctx, q, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

var customerSortCols = map[string]string{
	"first_name": "first_name",
	"last_name":  "last_name",
	"email":      "email",
	"created_at": "created_at",
}

func (r *CustomersRepoImpl) List(ctx context.Context, opts domain.CustomerListOptions) ([]domain.Customer, int, error) {
	limit := opts.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	where := ""
	args := []any{}
	if opts.Search != "" {
		where = ` WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR phone_number ILIKE $1`
		args = append(args, "%"+opts.Search+"%")
	}

	order := "created_at"
	if col, ok := customerSortCols[opts.SortBy]; ok {
		order = col
	}
	dir := "DESC"
	if strings.EqualFold(opts.SortOrder, "asc") {
		dir = "ASC"
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM customers`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`SELECT %s FROM customers%s ORDER BY %s %s LIMIT %d OFFSET %d`,
		customerCols, where, order, dir, limit, offset)
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	cs := make([]domain.Customer, 0, limit)
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Email,
			&c.PhoneNumber, &c.SMSOptIn, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		cs = append(cs, c)
	}
	return cs, total, rows.Err()
}
