package service

import (
	"context"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"gopkg.in/guregu/null.v4"

	"github.com/deepscene/det3d/pkg/cache"
	"github.com/deepscene/det3d/pkg/datamodel"
	"github.com/deepscene/det3d/pkg/detection"
	"github.com/deepscene/det3d/pkg/registry"
	"github.com/deepscene/det3d/pkg/repository"
)

var nameRegexp = regexp.MustCompile("^[A-Za-z0-9][a-zA-Z0-9_.-]*$")

// ExportModelRequest asks for one registered detector to be serialized.
type ExportModelRequest struct {
	// Registry ID of the detector to export
	ModelID string

	// Optional explicit filename; the detector's save name when empty
	Name string
}

// ExportModelResponse reports the persisted artifact and run.
type ExportModelResponse struct {
	ArtifactUID uuid.UUID
	RunUID      uuid.UUID
	SavePath    string
	Status      datamodel.ExportStatus
}

// Service orchestrates model export: it resolves the detector, drives the
// tracer, and records the artifact and run.
type Service interface {
	ExportModel(ctx context.Context, req *ExportModelRequest) (*ExportModelResponse, error)
	GetRunStatus(ctx context.Context, runUID uuid.UUID) (datamodel.ExportStatus, error)
	ListArtifacts(ctx context.Context, modelID string) ([]*datamodel.ExportArtifact, error)
}

type service struct {
	repository repository.Repository
	tracer     detection.Tracer
	cache      *cache.Cache
	saveDir    string
	logger     *zap.Logger
}

// NewService initiates a service instance
func NewService(r repository.Repository, tracer detection.Tracer, c *cache.Cache, saveDir string, logger *zap.Logger) Service {
	return &service{
		repository: r,
		tracer:     tracer,
		cache:      c,
		saveDir:    saveDir,
		logger:     logger,
	}
}

func (s *service) ExportModel(ctx context.Context, req *ExportModelRequest) (*ExportModelResponse, error) {
	if req.Name != "" && !nameRegexp.MatchString(req.Name) {
		return nil, ErrInvalidName
	}

	d, err := registry.New(req.ModelID)
	if err != nil {
		return nil, ErrModelNotFound
	}

	name := req.Name
	if name == "" {
		name = detection.SaveName(d)
	}

	artifactUID, _ := uuid.NewV4()
	runUID, _ := uuid.NewV4()

	artifact := &datamodel.ExportArtifact{
		UID:      artifactUID,
		ModelID:  registry.Normalize(req.ModelID),
		Sensor:   d.Sensor(),
		BoxDim:   boxDim(d),
		SavePath: filepath.Join(s.saveDir, name),
		Metadata: datamodel.SpecMetadata(d.Inputs(), d.Outputs()),
	}
	if err := s.repository.CreateArtifact(ctx, artifact); err != nil {
		return nil, err
	}

	run := &datamodel.ExportRun{
		UID:        runUID,
		ArtifactID: artifact.ID,
		Status:     datamodel.ExportStatusRunning,
	}
	if err := s.repository.CreateRun(ctx, run); err != nil {
		return nil, err
	}
	s.publishStatus(ctx, runUID, datamodel.ExportStatusRunning)

	start := time.Now()
	savePath, exportErr := detection.Export(ctx, d, s.tracer, s.saveDir, name)

	run.TotalDuration = null.IntFrom(time.Since(start).Milliseconds())
	run.EndTime = null.TimeFrom(time.Now())
	if exportErr != nil {
		run.Status = datamodel.ExportStatusFailed
		run.Error = null.StringFrom(exportErr.Error())
	} else {
		run.Status = datamodel.ExportStatusSucceeded
	}
	if err := s.repository.UpdateRun(ctx, run); err != nil {
		return nil, err
	}
	s.publishStatus(ctx, runUID, run.Status)

	if exportErr != nil {
		return nil, exportErr
	}

	return &ExportModelResponse{
		ArtifactUID: artifactUID,
		RunUID:      runUID,
		SavePath:    savePath,
		Status:      run.Status,
	}, nil
}

func (s *service) GetRunStatus(ctx context.Context, runUID uuid.UUID) (datamodel.ExportStatus, error) {
	if s.cache != nil {
		if status, err := s.cache.GetRunStatus(ctx, runUID.String()); err == nil {
			return status, nil
		}
	}

	run, err := s.repository.GetRunByUID(ctx, runUID)
	if err != nil {
		return "", err
	}
	s.publishStatus(ctx, runUID, run.Status)
	return run.Status, nil
}

func (s *service) ListArtifacts(ctx context.Context, modelID string) ([]*datamodel.ExportArtifact, error) {
	if modelID != "" {
		modelID = registry.Normalize(modelID)
	}
	return s.repository.ListArtifacts(ctx, modelID)
}

// publishStatus is best-effort: a cache outage must not fail an export.
func (s *service) publishStatus(ctx context.Context, runUID uuid.UUID, status datamodel.ExportStatus) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetRunStatus(ctx, runUID.String(), status); err != nil {
		s.logger.Warn("failed to publish run status", zap.String("run", runUID.String()), zap.Error(err))
	}
}

func boxDim(d detection.Detector) int64 {
	for _, out := range d.Outputs() {
		if out.Name == "box3d" && len(out.Shape) == 2 {
			return out.Shape[1]
		}
	}
	return 0
}
