package worker

import (
	"context"
	"time"

	"go.temporal.io/sdk/workflow"

	"github.com/deepscene/det3d/config"
	"github.com/deepscene/det3d/pkg/service"
)

// ExportModelWorkflowRequest identifies the detector to export.
type ExportModelWorkflowRequest struct {
	ModelID string
	Name    string
}

// ExportModelActivityResponse reports where the artifact landed.
type ExportModelActivityResponse struct {
	ArtifactUID string
	RunUID      string
	SavePath    string
}

func (w *worker) ExportModelWorkflow(ctx workflow.Context, param *ExportModelWorkflowRequest) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("ExportModelWorkflow started")

	timeout := config.Config.Export.Timeout.ActivityStartToClose
	if timeout == 0 {
		timeout = 30 * time.Minute
	}
	ao := workflow.ActivityOptions{
		TaskQueue:           TaskQueue,
		StartToCloseTimeout: timeout,
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	if err := workflow.ExecuteActivity(ctx, w.ExportModelActivity, param).Get(ctx, nil); err != nil {
		return err
	}

	logger.Info("ExportModelWorkflow completed")

	return nil
}

func (w *worker) ExportModelActivity(ctx context.Context, param *ExportModelWorkflowRequest) (*ExportModelActivityResponse, error) {
	resp, err := w.service.ExportModel(ctx, &service.ExportModelRequest{
		ModelID: param.ModelID,
		Name:    param.Name,
	})
	if err != nil {
		return nil, err
	}

	return &ExportModelActivityResponse{
		ArtifactUID: resp.ArtifactUID.String(),
		RunUID:      resp.RunUID.String(),
		SavePath:    resp.SavePath,
	}, nil
}
