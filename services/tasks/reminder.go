package tasks

import (
	"encoding/json"
	"time"

	"preen/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// Enqueuer is the slice of asynq.Client the schedule service needs; tests
// substitute a fake.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
