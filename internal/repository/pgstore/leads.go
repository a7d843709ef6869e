package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amplyfy/consulting-crm/api/internal/entity"
	"github.com/amplyfy/consulting-crm/api/internal/repository"
)

// LeadsRepository implements repository.LeadsRepository with pgx.
type LeadsRepository struct {
	pool pgxPool
}

// NewLeadsRepository wires a pgx backed leads repository.
func NewLeadsRepository(pool *pgxpool.Pool) *LeadsRepository {
	return &LeadsRepository{pool: pool}
}

var _ repository.LeadsRepository = (*LeadsRepository)(nil)

const leadColumns = `id, business_name, name, email, phone, notes, status, called,
        source, place_id, website, address, rating, review_count, price_level, created_at`

// List returns all leads ordered by creation date (desc).
func (r *LeadsRepository) List(ctx context.Context) ([]entity.Lead, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

// FindByID retrieves a lead by identifier.
func (r *LeadsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrLeadNotFound
		}
		return nil, fmt.Errorf("query lead by id: %w", err)
	}
	return &lead, nil
}

// Insert stores a new lead row. The unique index on place_id turns a
// concurrent duplicate insert into ErrDuplicateLead.
func (r *LeadsRepository) Insert(ctx context.Context, lead *entity.Lead) error {
	if lead == nil {
		return fmt.Errorf("lead payload is nil")
	}

	_, err := r.pool.Exec(ctx, `
        INSERT INTO leads (
            id, business_name, name, email, phone, notes, status, called,
            source, place_id, website, address, rating, review_count, price_level, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
    `,
		lead.ID,
		lead.BusinessName,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Notes,
		string(lead.Status),
		lead.Called,
		lead.Source,
		stringOrNil(lead.PlaceID),
		stringOrNil(lead.Website),
		stringOrNil(lead.Address),
		lead.Rating,
		lead.ReviewCount,
		stringOrNil(lead.PriceLevel),
		lead.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode && strings.Contains(pgErr.ConstraintName, "leads_place_id") {
			return fmt.Errorf("%w: %v", repository.ErrDuplicateLead, pgErr)
		}
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// UpdateStatus sets the lead's temperature.
func (r *LeadsRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.LeadStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE leads SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return repository.ErrLeadNotFound
	}
	return nil
}

// SetCalled flips the called flag.
func (r *LeadsRepository) SetCalled(ctx context.Context, id uuid.UUID, called bool) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE leads SET called = $1 WHERE id = $2`, called, id)
	if err != nil {
		return fmt.Errorf("update lead called flag: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return repository.ErrLeadNotFound
	}
	return nil
}

// Delete removes a lead by id.
func (r *LeadsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return repository.ErrLeadNotFound
	}
	return nil
}

func scanLeads(rows pgx.Rows) ([]entity.Lead, error) {
	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead row: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

func scanLead(row pgx.Row) (entity.Lead, error) {
	var (
		lead        entity.Lead
		status      string
		source      sql.NullString
		placeID     sql.NullString
		website     sql.NullString
		address     sql.NullString
		rating      sql.NullFloat64
		reviewCount sql.NullInt64
		priceLevel  sql.NullString
	)

	err := row.Scan(
		&lead.ID,
		&lead.BusinessName,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Notes,
		&status,
		&lead.Called,
		&source,
		&placeID,
		&website,
		&address,
		&rating,
		&reviewCount,
		&priceLevel,
		&lead.CreatedAt,
	)
	if err != nil {
		return entity.Lead{}, err
	}

	lead.Status = entity.LeadStatus(status)
	if source.Valid {
		lead.Source = source.String
	}
	if placeID.Valid {
		lead.PlaceID = &placeID.String
	}
	if website.Valid {
		lead.Website = &website.String
	}
	if address.Valid {
		lead.Address = &address.String
	}
	if rating.Valid {
		lead.Rating = &rating.Float64
	}
	if reviewCount.Valid {
		count := int(reviewCount.Int64)
		lead.ReviewCount = &count
	}
	if priceLevel.Valid {
		lead.PriceLevel = &priceLevel.String
	}
	return lead, nil
}
