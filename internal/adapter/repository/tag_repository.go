package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/domain/repository"
	apperrors "github.com/leondli/gallery/pkg/errors"
)

// TagModel is the Gorm model for tags table
type TagModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:100;not null"`
	Color     string    `gorm:"size:32"`
	FolderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name
func (TagModel) TableName() string {
	return "tags"
}

// ToEntity converts TagModel to entity.Tag
func (m *TagModel) ToEntity() *entity.Tag {
	return &entity.Tag{
		ID:        m.ID,
		Name:      m.Name,
		Color:     m.Color,
		FolderID:  m.FolderID,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FileTagModel is the Gorm model for file_tags table
type FileTagModel struct {
	FileID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID     uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time
}

// TableName returns the table name
func (FileTagModel) TableName() string {
	return "file_tags"
}

// tagRepository implements repository.TagRepository
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) repository.TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *entity.Tag, attachToFileID *uuid.UUID) error {
	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}
	now := time.Now().UTC()
	tag.CreatedAt = now
	tag.UpdatedAt = now

	model := &TagModel{
		ID:        tag.ID,
		Name:      tag.Name,
		Color:     tag.Color,
		FolderID:  tag.FolderID,
		OwnerID:   tag.OwnerID,
		CreatedAt: tag.CreatedAt,
		UpdatedAt: tag.UpdatedAt,
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		if attachToFileID == nil {
			return nil
		}

		// The file must live in the tag's folder
		var count int64
		if err := tx.Model(&FileModel{}).
			Where("id = ? AND folder_id = ?", *attachToFileID, tag.FolderID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperrors.ErrNotFound
		}

		return tx.Create(&FileTagModel{
			FileID:    *attachToFileID,
			TagID:     tag.ID,
			CreatedAt: now,
		}).Error
	})
}

func (r *tagRepository) FindOwned(ctx context.Context, ids []uuid.UUID, ownerID, folderID uuid.UUID) ([]entity.Tag, error) {
	if len(ids) == 0 {
		return []entity.Tag{}, nil
	}

	var models []TagModel
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND owner_id = ? AND folder_id = ?", ids, ownerID, folderID).
		Find(&models).Error; err != nil {
		return nil, err
	}

	return tagsToEntities(models), nil
}

func (r *tagRepository) ListByFolder(ctx context.Context, folderID uuid.UUID) ([]entity.Tag, error) {
	var models []TagModel
	if err := r.db.WithContext(ctx).
		Where("folder_id = ?", folderID).
		Order("name ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	return tagsToEntities(models), nil
}

func tagsToEntities(models []TagModel) []entity.Tag {
	tags := make([]entity.Tag, len(models))
	for i, m := range models {
		tags[i] = *m.ToEntity()
	}
	return tags
}
