package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every model in this package
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	if err := db.SetupJoinTable(&FileModel{}, "Tags", &FileTagModel{}); err != nil {
		return fmt.Errorf("failed to set up file_tags join table: %w", err)
	}

	if err := db.AutoMigrate(
		&UserModel{},
		&RefreshTokenModel{},
		&FolderModel{},
		&TagModel{},
		&FileModel{},
		&FileTagModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
