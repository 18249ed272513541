package migration

import (
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []any {
	return models.All()
}
