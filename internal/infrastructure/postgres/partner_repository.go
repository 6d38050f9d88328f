package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.PartnerRepository = (*PartnerRepo)(nil)

// PartnerRepo implementación del puerto PartnerRepository sobre PostgreSQL.
type PartnerRepo struct {
	pool *pgxpool.Pool
}

// NewPartnerRepository construye el adaptador de persistencia de socios.
func NewPartnerRepository(pool *pgxpool.Pool) *PartnerRepo {
	return &PartnerRepo{pool: pool}
}

// GetAll devuelve los socios en orden de alta.
func (r *PartnerRepo) GetAll() ([]*entity.Partner, error) {
	query := `SELECT id, name, capital, created_at, updated_at FROM partners ORDER BY created_at, id`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()
	var list []*entity.Partner
	for rows.Next() {
		var p entity.Partner
		if err := rows.Scan(&p.ID, &p.Name, &p.Capital, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Add persiste un socio nuevo.
func (r *PartnerRepo) Add(partner *entity.Partner) error {
	if err := insertPartner(context.Background(), r.pool, partner); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

// Update reescribe un socio existente.
func (r *PartnerRepo) Update(partner *entity.Partner) error {
	query := `UPDATE partners SET name = $2, capital = $3, updated_at = $4 WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		partner.ID, partner.Name, partner.Capital, partner.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update partner: %w", err)
	}
	return nil
}

// Delete elimina un socio por ID.
func (r *PartnerRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM partners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete partner: %w", err)
	}
	return nil
}

// BulkPut reemplaza la tabla completa por los socios en memoria.
func (r *PartnerRepo) BulkPut(partners []*entity.Partner) error {
	ctx := context.Background()
	return runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM partners`); err != nil {
			return fmt.Errorf("clear partners: %w", err)
		}
		for _, p := range partners {
			if err := insertPartner(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear vacía la tabla.
func (r *PartnerRepo) Clear() error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM partners`)
	if err != nil {
		return fmt.Errorf("clear partners: %w", err)
	}
	return nil
}

func insertPartner(ctx context.Context, q Querier, p *entity.Partner) error {
	query := `
		INSERT INTO partners (id, name, capital, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := q.Exec(ctx, query, p.ID, p.Name, p.Capital, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert partner: %w", err)
	}
	return nil
}
