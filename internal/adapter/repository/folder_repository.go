package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/domain/repository"
	apperrors "github.com/leondli/gallery/pkg/errors"
)

// FolderModel is the Gorm model for folders table
type FolderModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"size:255;not null"`
	OwnerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FileCount  int64     `gorm:"not null;default:0"`
	TotalBytes int64     `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name
func (FolderModel) TableName() string {
	return "folders"
}

// ToEntity converts FolderModel to entity.Folder
func (m *FolderModel) ToEntity() *entity.Folder {
	return &entity.Folder{
		ID:         m.ID,
		Name:       m.Name,
		OwnerID:    m.OwnerID,
		FileCount:  m.FileCount,
		TotalBytes: m.TotalBytes,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// folderRepository implements repository.FolderRepository
type folderRepository struct {
	db *gorm.DB
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(db *gorm.DB) repository.FolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) Create(ctx context.Context, folder *entity.Folder) error {
	if folder.ID == uuid.Nil {
		folder.ID = uuid.New()
	}
	now := time.Now().UTC()
	folder.CreatedAt = now
	folder.UpdatedAt = now

	return r.db.WithContext(ctx).Create(&FolderModel{
		ID:         folder.ID,
		Name:       folder.Name,
		OwnerID:    folder.OwnerID,
		FileCount:  folder.FileCount,
		TotalBytes: folder.TotalBytes,
		CreatedAt:  folder.CreatedAt,
		UpdatedAt:  folder.UpdatedAt,
	}).Error
}

func (r *folderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Folder, error) {
	var model FolderModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

func (r *folderRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Folder, error) {
	var models []FolderModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	folders := make([]entity.Folder, len(models))
	for i, m := range models {
		folders[i] = *m.ToEntity()
	}
	return folders, nil
}

func (r *folderRepository) AdjustUsage(ctx context.Context, id uuid.UUID, files, bytes int64) error {
	result := r.db.WithContext(ctx).Model(&FolderModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"file_count":  gorm.Expr("file_count + ?", files),
			"total_bytes": gorm.Expr("total_bytes + ?", bytes),
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
