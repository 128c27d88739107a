//go:build dbtest
// +build dbtest

package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v4"
	"gorm.io/gorm"

	qt "github.com/frankban/quicktest"

	"github.com/deepscene/det3d/config"
	"github.com/deepscene/det3d/pkg/datamodel"
	"github.com/deepscene/det3d/pkg/repository"

	database "github.com/deepscene/det3d/pkg/db"
)

var db *gorm.DB

func TestMain(m *testing.M) {
	if err := config.Init("../../config/config.yaml"); err != nil {
		panic(err)
	}

	db = database.GetConnection()
	if err := db.AutoMigrate(&datamodel.ExportArtifact{}, &datamodel.ExportRun{}); err != nil {
		panic(err)
	}
	exitCode := m.Run()
	database.Close(db)

	os.Exit(exitCode)
}

func TestRepository(t *testing.T) {
	c := qt.New(t)

	ctx := context.Background()
	repo := repository.NewRepository(db)

	artifactUID, _ := uuid.NewV4()
	artifact := &datamodel.ExportArtifact{
		UID:     artifactUID,
		ModelID: "pillar_net",
		Sensor:  "lidar",
		BoxDim:  9,
		Metadata: datamodel.JSONB{
			"inputs": []any{},
		},
	}
	require.NoError(t, repo.CreateArtifact(ctx, artifact))

	got, err := repo.GetArtifactByUID(ctx, artifactUID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.ModelID, qt.Equals, "pillar_net")
	c.Assert(got.BoxDim, qt.Equals, int64(9))

	artifacts, err := repo.ListArtifacts(ctx, "pillar_net")
	c.Assert(err, qt.IsNil)
	c.Assert(len(artifacts) >= 1, qt.IsTrue)

	runUID, _ := uuid.NewV4()
	run := &datamodel.ExportRun{
		UID:        runUID,
		ArtifactID: artifact.ID,
		Status:     datamodel.ExportStatusRunning,
	}
	require.NoError(t, repo.CreateRun(ctx, run))

	run.Status = datamodel.ExportStatusSucceeded
	run.TotalDuration = null.IntFrom(1200)
	run.EndTime = null.TimeFrom(time.Now())
	require.NoError(t, repo.UpdateRun(ctx, run))

	gotRun, err := repo.GetRunByUID(ctx, runUID)
	c.Assert(err, qt.IsNil)
	c.Assert(gotRun.Status, qt.Equals, datamodel.ExportStatusSucceeded)
	c.Assert(gotRun.TotalDuration.Int64, qt.Equals, int64(1200))

	missing, _ := uuid.NewV4()
	_, err = repo.GetRunByUID(ctx, missing)
	c.Assert(err, qt.Equals, repository.ErrNotFound)

	err = repo.UpdateRun(ctx, &datamodel.ExportRun{UID: missing})
	c.Assert(err, qt.Equals, repository.ErrNotFound)
}
