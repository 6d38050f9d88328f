package repository

import "github.com/jhoicas/Contable-api/internal/domain/entity"

// TransactionRepository define el puerto de persistencia del libro diario.
// El estado en memoria es la fuente de verdad; el servicio de libro llama
// BulkPut después de cada mutación en memoria y GetAll una vez al arranque.
type TransactionRepository interface {
	GetAll() ([]*entity.Transaction, error)
	Add(tx *entity.Transaction) error
	Update(tx *entity.Transaction) error
	Delete(id string) error
	BulkPut(txs []*entity.Transaction) error
	Clear() error
}
