package queue

import (
	"encoding/json"

	"github.com/fuelflow/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusNotify notifies the order creator of a status change.
	TaskOrderStatusNotify = constants.TaskOrderStatusNotify
	// TaskOrderApprovalReminder nudges Management about a stale approval.
	TaskOrderApprovalReminder = constants.TaskOrderApprovalReminder
)

// OrderStatusNotifyPayload carries a status change notification.
type OrderStatusNotifyPayload struct {
	OrderID   uint   `json:"order_id"`
	Status    string `json:"status"`
	ChangedBy string `json:"changed_by"`
}

// ApprovalReminderPayload carries a delayed approval reminder.
type ApprovalReminderPayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderStatusNotifyTask builds a status notification task.
func NewOrderStatusNotifyTask(payload OrderStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusNotify, body), nil
}

// NewApprovalReminderTask builds an approval reminder task.
func NewApprovalReminderTask(payload ApprovalReminderPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderApprovalReminder, body), nil
}
