package worker

import (
	"context"

	"go.temporal.io/sdk/workflow"

	"github.com/deepscene/det3d/pkg/service"
)

// TaskQueue is the Temporal task queue name for det3d
const TaskQueue = "det3d"

// Worker interface
type Worker interface {
	ExportModelWorkflow(ctx workflow.Context, param *ExportModelWorkflowRequest) error
	ExportModelActivity(ctx context.Context, param *ExportModelWorkflowRequest) (*ExportModelActivityResponse, error)
}

// worker represents resources required to run Temporal workflow and activity
type worker struct {
	service service.Service
}

// NewWorker initiates a temporal worker for workflow and activity definition
func NewWorker(s service.Service) Worker {
	return &worker{
		service: s,
	}
}
