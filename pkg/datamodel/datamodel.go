package datamodel

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/gofrs/uuid"
	"gopkg.in/guregu/null.v4"
	"gorm.io/gorm"

	"github.com/deepscene/det3d/pkg/detection"
)

// ExportStatus is the lifecycle state of an export run, stored as a string
// value.
type ExportStatus string

const (
	ExportStatusPending   ExportStatus = "pending"
	ExportStatusRunning   ExportStatus = "running"
	ExportStatusSucceeded ExportStatus = "succeeded"
	ExportStatusFailed    ExportStatus = "failed"
)

func (v *ExportStatus) Scan(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot scan %T into ExportStatus", value)
	}
	*v = ExportStatus(s)
	return nil
}

func (v ExportStatus) Value() (driver.Value, error) {
	return string(v), nil
}

// ExportArtifact records one serialized model on disk.
type ExportArtifact struct {
	gorm.Model

	UID uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	// Registry ID of the exported detector
	ModelID string `json:"model_id,omitempty"`

	// Sensor modality the detector consumes
	Sensor string `json:"sensor,omitempty"`

	// Number of fields per output box (7, or 9 with velocity)
	BoxDim int64 `json:"box_dim,omitempty"`

	// Base path of the serialized graph and params files
	SavePath string `json:"save_path,omitempty"`

	// Input/output specification captured at export time
	Metadata JSONB `gorm:"type:jsonb"`

	Runs []ExportRun `gorm:"foreignKey:ArtifactID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// ExportRun records one export attempt against an artifact.
type ExportRun struct {
	gorm.Model

	UID uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	ArtifactID uint `json:"artifact_id,omitempty"`

	Status ExportStatus `sql:"type:valid_status"`

	// Wall-clock duration in milliseconds
	TotalDuration null.Int

	EndTime null.Time

	Error null.String
}

// JSONB is a free-form jsonb column.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *JSONB) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

// SpecMetadata packs the detector's input/output specs into the artifact
// metadata column.
func SpecMetadata(inputs, outputs []detection.Spec) JSONB {
	return JSONB{
		"inputs":  specMaps(inputs),
		"outputs": specMaps(outputs),
	}
}

func specMaps(specs []detection.Spec) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(specs))
	for _, s := range specs {
		out = append(out, map[string]interface{}{
			"name":  s.Name,
			"dtype": string(s.DType),
			"shape": s.Shape,
		})
	}
	return out
}
