package business

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dteai/pkg/errors"
)

// Company is the relational company row used to ground chat context.
type Company struct {
	ID           string
	BusinessName string
	DisplayName  string
	RUT          string
	Address      string
	Phone        string
	Email        string
	CreatedAt    time.Time
	IsActive     bool
}

// Stats are the aggregate counts the contextual prompt cites.
type Stats struct {
	TotalUsers     int
	TotalClients   int
	TotalProducts  int
	TotalDocuments int
}

// Summary bundles company info and aggregates for prompt construction.
type Summary struct {
	Company Company
	Stats   Stats
}

// Repository reads company context from the relational store. All access is
// read-only; this service never owns the business schema.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCompanyInfo(ctx context.Context, companyID string) (*Company, error) {
	query := `
		SELECT
			id, business_name, rut,
			COALESCE(address, ''), COALESCE(phone, ''), COALESCE(email, ''),
			created_at, is_active,
			COALESCE(business_name, 'Empresa Sin Nombre') AS display_name
		FROM companies
		WHERE id = $1 AND is_active = true`

	var company Company
	err := r.db.QueryRowContext(ctx, query, companyID).Scan(
		&company.ID,
		&company.BusinessName,
		&company.RUT,
		&company.Address,
		&company.Phone,
		&company.Email,
		&company.CreatedAt,
		&company.IsActive,
		&company.DisplayName,
	)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound.WithMessage(fmt.Sprintf("company %s not found", companyID))
	}
	if err != nil {
		return nil, errors.ErrConnection.WithCause(err).WithMessage("company lookup failed")
	}

	return &company, nil
}

func (r *Repository) GetCompanyStats(ctx context.Context, companyID string) (*Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE company_id = $1) AS total_users,
			(SELECT COUNT(*) FROM clients WHERE company_id = $1) AS total_clients,
			(SELECT COUNT(*) FROM products WHERE company_id = $1) AS total_products,
			(SELECT COUNT(*) FROM documents WHERE company_id = $1) AS total_documents`

	var stats Stats
	err := r.db.QueryRowContext(ctx, query, companyID).Scan(
		&stats.TotalUsers,
		&stats.TotalClients,
		&stats.TotalProducts,
		&stats.TotalDocuments,
	)
	if err != nil {
		return nil, errors.ErrConnection.WithCause(err).WithMessage("company stats query failed")
	}

	return &stats, nil
}

// GetCompanySummary combines company info and aggregates. A missing company
// is reported as ErrNotFound; stats failures degrade to zero counts because
// the prompt can still be built without them.
func (r *Repository) GetCompanySummary(ctx context.Context, companyID string) (*Summary, error) {
	company, err := r.GetCompanyInfo(ctx, companyID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Company: *company}
	if stats, err := r.GetCompanyStats(ctx, companyID); err == nil {
		summary.Stats = *stats
	}

	return summary, nil
}
