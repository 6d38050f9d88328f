package repository

import "github.com/jhoicas/Contable-api/internal/domain/entity"

// InventoryRepository define el puerto de persistencia del inventario.
type InventoryRepository interface {
	GetAll() ([]*entity.InventoryItem, error)
	Add(item *entity.InventoryItem) error
	Update(item *entity.InventoryItem) error
	Delete(id string) error
	BulkPut(items []*entity.InventoryItem) error
	Clear() error
}
