package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/domain/repository"
	apperrors "github.com/leondli/gallery/pkg/errors"
)

// FileModel is the Gorm model for files table
type FileModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FolderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"size:255;not null"`
	MediaType string    `gorm:"size:20;not null"`
	Size      int64     `gorm:"default:0"`
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Tags []TagModel `gorm:"many2many:file_tags;joinForeignKey:FileID;joinReferences:TagID"`
}

// TableName returns the table name
func (FileModel) TableName() string {
	return "files"
}

// ToEntity converts FileModel to entity.File
func (m *FileModel) ToEntity() *entity.File {
	file := &entity.File{
		ID:        m.ID,
		FolderID:  m.FolderID,
		OwnerID:   m.OwnerID,
		Name:      m.Name,
		MediaType: entity.MediaType(m.MediaType),
		Size:      m.Size,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Tags:      tagsToEntities(m.Tags),
	}
	return file
}

// fileRepository implements repository.FileRepository
type fileRepository struct {
	db *gorm.DB
}

// NewFileRepository creates a new file repository
func NewFileRepository(db *gorm.DB) repository.FileRepository {
	return &fileRepository{db: db}
}

// withTags preloads tag associations in a stable order
func withTags(db *gorm.DB) *gorm.DB {
	return db.Preload("Tags", func(db *gorm.DB) *gorm.DB {
		return db.Order("tags.name ASC, tags.id ASC")
	})
}

func (r *fileRepository) Create(ctx context.Context, file *entity.File) error {
	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}
	now := time.Now().UTC()
	file.CreatedAt = now
	file.UpdatedAt = now
	file.Tags = []entity.Tag{}

	model := &FileModel{
		ID:        file.ID,
		FolderID:  file.FolderID,
		OwnerID:   file.OwnerID,
		Name:      file.Name,
		MediaType: string(file.MediaType),
		Size:      file.Size,
		Latitude:  file.Latitude,
		Longitude: file.Longitude,
		CreatedAt: file.CreatedAt,
		UpdatedAt: file.UpdatedAt,
	}
	return r.db.WithContext(ctx).Omit("Tags").Create(model).Error
}

func (r *fileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.File, error) {
	return r.load(r.db.WithContext(ctx), id)
}

func (r *fileRepository) load(db *gorm.DB, id uuid.UUID) (*entity.File, error) {
	var model FileModel
	if err := withTags(db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

func (r *fileRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.File, error) {
	if len(ids) == 0 {
		return []entity.File{}, nil
	}

	var models []FileModel
	if err := withTags(r.db.WithContext(ctx)).
		Where("id IN ?", ids).
		Find(&models).Error; err != nil {
		return nil, err
	}

	return filesToEntities(models), nil
}

func (r *fileRepository) List(ctx context.Context, filter *entity.FileFilter) ([]entity.File, int64, error) {
	scoped := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&FileModel{}).Where("files.folder_id = ?", filter.FolderID)
		if filter.TagID != nil {
			query = query.
				Joins("JOIN file_tags ON file_tags.file_id = files.id").
				Where("file_tags.tag_id = ?", *filter.TagID)
		}
		return query
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	var models []FileModel
	if err := withTags(scoped()).
		Select("files.*").
		Offset(offset).Limit(filter.PageSize).
		Order("files.created_at DESC").
		Find(&models).Error; err != nil {
		return nil, 0, err
	}

	return filesToEntities(models), total, nil
}

func (r *fileRepository) UpdateTags(ctx context.Context, id uuid.UUID, attach, detach []uuid.UUID) (*entity.File, error) {
	var file *entity.File
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&FileModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperrors.ErrNotFound
		}

		if len(attach) > 0 {
			now := time.Now().UTC()
			rows := make([]FileTagModel, len(attach))
			for i, tagID := range attach {
				rows[i] = FileTagModel{FileID: id, TagID: tagID, CreatedAt: now}
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
				return err
			}
		}

		if len(detach) > 0 {
			if err := tx.Where("file_id = ? AND tag_id IN ?", id, detach).
				Delete(&FileTagModel{}).Error; err != nil {
				return err
			}
		}

		var err error
		file, err = r.load(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return file, nil
}

func filesToEntities(models []FileModel) []entity.File {
	files := make([]entity.File, len(models))
	for i, m := range models {
		files[i] = *m.ToEntity()
	}
	return files
}
