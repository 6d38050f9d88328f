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

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const itemColumns = `id, name, type, quantity, grams, unit_cost, total_value,
	selling_price, milliliters, created_at, updated_at`

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL.
type InventoryRepo struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository construye el adaptador de persistencia del inventario.
func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepo {
	return &InventoryRepo{pool: pool}
}

// GetAll devuelve el inventario completo en orden de alta.
func (r *InventoryRepo) GetAll() ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items ORDER BY created_at, id`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Add persiste un artículo nuevo.
func (r *InventoryRepo) Add(item *entity.InventoryItem) error {
	if err := insertInventoryItem(context.Background(), r.pool, item); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

// Update reescribe un artículo existente.
func (r *InventoryRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET name = $2, type = $3, quantity = $4, grams = $5,
			unit_cost = $6, total_value = $7, selling_price = $8, milliliters = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		item.ID, item.Name, item.Type, item.Quantity, item.Grams,
		item.UnitCost, item.TotalValue, item.SellingPrice, item.Milliliters, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// Delete elimina un artículo por ID.
func (r *InventoryRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}

// BulkPut reemplaza la tabla completa por el inventario en memoria.
func (r *InventoryRepo) BulkPut(items []*entity.InventoryItem) error {
	ctx := context.Background()
	return runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM inventory_items`); err != nil {
			return fmt.Errorf("clear inventory: %w", err)
		}
		for _, item := range items {
			if err := insertInventoryItem(ctx, tx, item); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear vacía la tabla.
func (r *InventoryRepo) Clear() error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM inventory_items`)
	if err != nil {
		return fmt.Errorf("clear inventory: %w", err)
	}
	return nil
}

func insertInventoryItem(ctx context.Context, q Querier, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := q.Exec(ctx, query,
		item.ID, item.Name, item.Type, item.Quantity, item.Grams,
		item.UnitCost, item.TotalValue, item.SellingPrice, item.Milliliters,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.Name, &it.Type, &it.Quantity, &it.Grams,
		&it.UnitCost, &it.TotalValue, &it.SellingPrice, &it.Milliliters,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan inventory item: %w", err)
	}
	return &it, nil
}
