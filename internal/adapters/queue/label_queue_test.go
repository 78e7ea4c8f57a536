package queue_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockscan/internal/adapters/queue"
	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/internal/workers"
	"github.com/ammerola/stockscan/test/helpers"
)

type recordingEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (e *recordingEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.tasks = append(e.tasks, task)
	e.opts = append(e.opts, opts)

	info := &asynq.TaskInfo{ID: "generated", Type: task.Type()}
	for _, o := range opts {
		switch o.Type() {
		case asynq.QueueOpt:
			info.Queue = o.Value().(string)
		case asynq.TaskIDOpt:
			info.ID = o.Value().(string)
		case asynq.MaxRetryOpt:
			info.MaxRetry = o.Value().(int)
		}
	}
	return info, nil
}

func optionValue(opts []asynq.Option, typ asynq.OptionType) any {
	for _, o := range opts {
		if o.Type() == typ {
			return o.Value()
		}
	}
	return nil
}

func TestLabelQueue_Print(t *testing.T) {
	enq := &recordingEnqueuer{}
	q := queue.NewLabelQueue(enq, 0, helpers.TestLogger())

	label := domain.Label{Code: "~7|42~", Line1: "Plum Jam", Date: "09/25", ItemID: 7, UnitID: 42}
	require.NoError(t, q.Print(context.Background(), label))

	require.Len(t, enq.tasks, 1)
	assert.Equal(t, workers.TypeLabelPrint, enq.tasks[0].Type())

	var payload workers.LabelPrintPayload
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &payload))
	assert.Equal(t, label, payload.Label)
	assert.False(t, payload.RequestedAt.IsZero())

	assert.Equal(t, workers.QueueLabels, optionValue(enq.opts[0], asynq.QueueOpt))
	assert.Equal(t, 5, optionValue(enq.opts[0], asynq.MaxRetryOpt))
}

func TestLabelQueue_ReprintQueuesAgain(t *testing.T) {
	enq := &recordingEnqueuer{}
	q := queue.NewLabelQueue(enq, 2, helpers.TestLogger())

	label := domain.Label{Code: "~1|1~", ItemID: 1, UnitID: 1}
	require.NoError(t, q.Print(context.Background(), label))
	require.NoError(t, q.Print(context.Background(), label))
	assert.Len(t, enq.tasks, 2)
	assert.Equal(t, 2, optionValue(enq.opts[1], asynq.MaxRetryOpt))
}

func TestLabelQueue_EnqueueFailure(t *testing.T) {
	q := queue.NewLabelQueue(&recordingEnqueuer{err: errors.New("redis: connection refused")}, 0, helpers.TestLogger())

	err := q.Print(context.Background(), domain.Label{Code: "~7|42~", ItemID: 7, UnitID: 42})
	assert.ErrorIs(t, err, domain.ErrIntegration)
}

func TestLabelQueue_EnqueueExport(t *testing.T) {
	enq := &recordingEnqueuer{}
	q := queue.NewLabelQueue(enq, 0, helpers.TestLogger())

	jobID, err := q.EnqueueExport(context.Background(), domain.StockFilter{InStockOnly: true}, "exports/x.xlsx")
	require.NoError(t, err)
	assert.Len(t, jobID, 36)

	require.Len(t, enq.tasks, 1)
	assert.Equal(t, workers.TypeStockExport, enq.tasks[0].Type())

	var payload workers.StockExportPayload
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &payload))
	assert.Equal(t, jobID, payload.JobID)
	assert.Equal(t, "exports/x.xlsx", payload.Key)
	assert.True(t, payload.Filter.InStockOnly)
	assert.Equal(t, workers.QueueDefault, optionValue(enq.opts[0], asynq.QueueOpt))
}
