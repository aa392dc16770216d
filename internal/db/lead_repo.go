package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"golfphysics/internal/types"
)

// LeadRepository provides data access for the leads table, which captures
// contact form submissions and self-serve API key requests for sales followup.
type LeadRepository struct {
	db DBTX
}

// NewLeadRepository creates a new LeadRepository backed by the given database
// connection (pool or transaction).
func NewLeadRepository(db DBTX) *LeadRepository {
	return &LeadRepository{db: db}
}

const leadColumns = `id, name, email, company, message, use_case,
	expected_volume, source, priority, status, created_at`

// Create inserts a new lead record.
func (r *LeadRepository) Create(ctx context.Context, lead *types.Lead) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO leads (id, name, email, company, message, use_case,
		 expected_volume, source, priority, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11, NOW()))`,
		lead.ID,
		lead.Name,
		lead.Email,
		nilIfEmptyString(lead.Company),
		nilIfEmptyString(lead.Message),
		nilIfEmptyString(lead.UseCase),
		nilIfEmptyString(lead.ExpectedVolume),
		lead.Source,
		lead.Priority,
		lead.Status,
		nilIfZeroTime(lead.CreatedAt),
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to create lead", err)
	}
	return nil
}

// ListLeadsParams defines filtering options for listing leads.
type ListLeadsParams struct {
	Status   types.LeadStatus
	Priority types.LeadPriority
	Limit    int
}

// List retrieves leads with optional status and priority filters, newest
// first. Used by the admin endpoints.
func (r *LeadRepository) List(ctx context.Context, params ListLeadsParams) ([]*types.Lead, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}
	if params.Priority != "" {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", argIdx))
		args = append(args, params.Priority)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 100
	}

	query := fmt.Sprintf(
		`SELECT %s FROM leads %s ORDER BY created_at DESC LIMIT $%d`,
		leadColumns,
		whereClause,
		argIdx,
	)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to query leads", err)
	}
	defer rows.Close()

	var results []*types.Lead
	for rows.Next() {
		lead, scanErr := scanLead(rows)
		if scanErr != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan lead row", scanErr)
		}
		results = append(results, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "error iterating lead rows", err)
	}
	return results, nil
}

// UpdateStatus transitions a lead through the sales pipeline
// (new -> contacted -> converted/closed).
func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status types.LeadStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE leads SET status = $1 WHERE id = $2`,
		status,
		id,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to update lead status", err)
	}
	if tag.RowsAffected() == 0 {
		return types.NewAppError(types.ErrCodeNotFoundClient, "lead not found", nil)
	}
	return nil
}

func scanLead(rows pgx.Rows) (*types.Lead, error) {
	var l types.Lead
	var company, message, useCase, expectedVolume *string
	err := rows.Scan(
		&l.ID,
		&l.Name,
		&l.Email,
		&company,
		&message,
		&useCase,
		&expectedVolume,
		&l.Source,
		&l.Priority,
		&l.Status,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if company != nil {
		l.Company = *company
	}
	if message != nil {
		l.Message = *message
	}
	if useCase != nil {
		l.UseCase = *useCase
	}
	if expectedVolume != nil {
		l.ExpectedVolume = *expectedVolume
	}
	return &l, nil
}

// GetByID retrieves a single lead. Returns an error wrapping pgx.ErrNoRows
// semantics as a not-found AppError.
func (r *LeadRepository) GetByID(ctx context.Context, id string) (*types.Lead, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = $1`,
		id,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to query lead", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to read lead row", err)
		}
		return nil, types.NewAppError(types.ErrCodeNotFoundClient, "lead not found", nil)
	}
	lead, err := scanLead(rows)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan lead row", err)
	}
	return lead, nil
}
