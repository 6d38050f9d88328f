package repository

import "github.com/jhoicas/Contable-api/internal/domain/entity"

// SettingsRepository define el puerto del registro singleton de agregados
// (efectivo y ventas acumuladas). Get devuelve nil si aún no existe.
type SettingsRepository interface {
	Get() (*entity.Settings, error)
	Save(settings *entity.Settings) error
}
