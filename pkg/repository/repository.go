package repository

import (
	"context"
	"errors"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/deepscene/det3d/pkg/datamodel"
)

// Repository persists export artifacts and runs.
type Repository interface {
	CreateArtifact(ctx context.Context, artifact *datamodel.ExportArtifact) error
	GetArtifactByUID(ctx context.Context, artifactUID uuid.UUID) (*datamodel.ExportArtifact, error)
	ListArtifacts(ctx context.Context, modelID string) ([]*datamodel.ExportArtifact, error)

	CreateRun(ctx context.Context, run *datamodel.ExportRun) error
	UpdateRun(ctx context.Context, run *datamodel.ExportRun) error
	GetRunByUID(ctx context.Context, runUID uuid.UUID) (*datamodel.ExportRun, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository initiates a repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) CreateArtifact(ctx context.Context, artifact *datamodel.ExportArtifact) error {
	if result := r.db.WithContext(ctx).Model(&datamodel.ExportArtifact{}).Create(artifact); result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *repository) GetArtifactByUID(ctx context.Context, artifactUID uuid.UUID) (*datamodel.ExportArtifact, error) {
	var artifact datamodel.ExportArtifact
	result := r.db.WithContext(ctx).
		Preload(clause.Associations).
		Where("uid = ?", artifactUID).
		First(&artifact)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &artifact, nil
}

func (r *repository) ListArtifacts(ctx context.Context, modelID string) ([]*datamodel.ExportArtifact, error) {
	var artifacts []*datamodel.ExportArtifact
	queryBuilder := r.db.WithContext(ctx).Model(&datamodel.ExportArtifact{}).Order("created_at DESC")
	if modelID != "" {
		queryBuilder = queryBuilder.Where("model_id = ?", modelID)
	}
	if result := queryBuilder.Find(&artifacts); result.Error != nil {
		return nil, result.Error
	}
	return artifacts, nil
}

func (r *repository) CreateRun(ctx context.Context, run *datamodel.ExportRun) error {
	if result := r.db.WithContext(ctx).Model(&datamodel.ExportRun{}).Create(run); result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *repository) UpdateRun(ctx context.Context, run *datamodel.ExportRun) error {
	result := r.db.WithContext(ctx).Model(&datamodel.ExportRun{}).
		Where("uid = ?", run.UID).
		Updates(map[string]interface{}{
			"status":         run.Status,
			"total_duration": run.TotalDuration,
			"end_time":       run.EndTime,
			"error":          run.Error,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) GetRunByUID(ctx context.Context, runUID uuid.UUID) (*datamodel.ExportRun, error) {
	var run datamodel.ExportRun
	result := r.db.WithContext(ctx).Where("uid = ?", runUID).First(&run)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &run, nil
}
