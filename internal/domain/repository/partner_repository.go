package repository

import "github.com/jhoicas/Contable-api/internal/domain/entity"

// PartnerRepository define el puerto de persistencia de socios.
type PartnerRepository interface {
	GetAll() ([]*entity.Partner, error)
	Add(partner *entity.Partner) error
	Update(partner *entity.Partner) error
	Delete(id string) error
	BulkPut(partners []*entity.Partner) error
	Clear() error
}
