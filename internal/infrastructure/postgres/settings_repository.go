package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación del puerto SettingsRepository sobre PostgreSQL.
// La tabla guarda un único registro con los agregados del libro.
type SettingsRepo struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository construye el adaptador de persistencia de agregados.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// Get devuelve el registro de agregados, o nil si aún no existe.
func (r *SettingsRepo) Get() (*entity.Settings, error) {
	query := `SELECT id, cash, total_sales, updated_at FROM settings LIMIT 1`
	var s entity.Settings
	err := r.pool.QueryRow(context.Background(), query).Scan(
		&s.ID, &s.Cash, &s.TotalSales, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Save inserta o actualiza el registro (upsert por ID).
func (r *SettingsRepo) Save(settings *entity.Settings) error {
	query := `
		INSERT INTO settings (id, cash, total_sales, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET cash = $2, total_sales = $3, updated_at = $4`
	_, err := r.pool.Exec(context.Background(), query,
		settings.ID, settings.Cash, settings.TotalSales, settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
