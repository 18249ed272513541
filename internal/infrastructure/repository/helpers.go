package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// updateAll writes every column of model except the key and creation time,
// so zero values such as false flags are persisted too.
func updateAll(tx *gorm.DB, model any, id uint) error {
	return tx.Model(model).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at").
		Updates(model).Error
}

// forUpdate adds SELECT ... FOR UPDATE on dialects that support it.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// displayNameExpr falls back to the username when the display name is blank.
func displayNameExpr(alias string) string {
	return "COALESCE(NULLIF(" + alias + ".name, ''), " + alias + ".username)"
}
