package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/fuelflow/internal/constants"
	"github.com/fuelflow/internal/logger"
	"github.com/fuelflow/internal/models"
	"github.com/fuelflow/internal/provider"
	"github.com/fuelflow/internal/queue"
	"github.com/fuelflow/internal/repository"
	"github.com/fuelflow/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles the async workflow tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register registers the task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusNotify, c.handleOrderStatusNotify)
	mux.HandleFunc(queue.TaskOrderApprovalReminder, c.handleApprovalReminder)
}

func (c *Consumer) handleOrderStatusNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_status_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_status_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_status_notify_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_status_notify_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_status_notify_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	creator, err := c.UserRepo.GetByID(order.CreatedBy)
	if err != nil {
		logger.Warnw("worker_status_notify_fetch_user_failed", "order_id", order.ID, "user_id", order.CreatedBy, "error", err)
		return err
	}
	if creator == nil || strings.TrimSpace(creator.Email) == "" {
		logger.Debugw("worker_status_notify_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_status_notify_skip_email_service_nil", "order_id", order.ID)
		return nil
	}

	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}
	reason := ""
	switch status {
	case constants.OrderStatusRejected:
		reason = order.RejectionReason
	case constants.OrderStatusDisputed:
		reason = lastDisputeReason(order)
	}

	input := service.StatusNotifyInput{
		OrderID:   order.OrderID,
		Status:    status,
		ChangedBy: payload.ChangedBy,
		Reason:    reason,
	}
	if err := c.EmailService.SendStatusNotify(creator.Email, input); err != nil {
		if errors.Is(err, service.ErrEmailDisabled) {
			logger.Debugw("worker_status_notify_skip_email_disabled", "order_id", order.ID)
			return nil
		}
		logger.Warnw("worker_status_notify_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderID,
			"receiver_email", creator.Email,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

// handleApprovalReminder fires after the configured delay. The order may have
// been decided in the meantime, so the status is re-checked here.
func (c *Consumer) handleApprovalReminder(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_approval_reminder_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ApprovalReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_approval_reminder_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_approval_reminder_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_approval_reminder_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_approval_reminder_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	if order.Status != constants.OrderStatusPendingApproval {
		logger.Debugw("worker_approval_reminder_skip_already_decided", "order_id", order.ID, "status", order.Status)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_approval_reminder_skip_email_service_nil", "order_id", order.ID)
		return nil
	}

	managers, _, err := c.UserRepo.List(repository.UserListFilter{
		Department: constants.DepartmentManagement,
		Status:     constants.UserStatusActive,
	})
	if err != nil {
		logger.Warnw("worker_approval_reminder_fetch_managers_failed", "order_id", order.ID, "error", err)
		return err
	}

	sent := 0
	for i := range managers {
		email := strings.TrimSpace(managers[i].Email)
		if email == "" {
			continue
		}
		if err := c.EmailService.SendApprovalReminder(email, order.OrderID); err != nil {
			if errors.Is(err, service.ErrEmailDisabled) {
				logger.Debugw("worker_approval_reminder_skip_email_disabled", "order_id", order.ID)
				return nil
			}
			logger.Warnw("worker_approval_reminder_send_failed",
				"order_id", order.ID,
				"order_no", order.OrderID,
				"receiver_email", email,
				"error", err,
			)
			continue
		}
		sent++
	}
	if sent == 0 {
		logger.Debugw("worker_approval_reminder_no_receivers", "order_id", order.ID)
	}
	return nil
}

// lastDisputeReason pulls the reason from the latest dispute transition note.
// Notes are preloaded in ascending order.
func lastDisputeReason(order *models.Order) string {
	marker := "to " + constants.OrderStatusDisputed + ". Reason: "
	for i := len(order.Notes) - 1; i >= 0; i-- {
		note := order.Notes[i]
		if note.NoteType != constants.NoteTypeStatusChange {
			continue
		}
		if idx := strings.Index(note.Note, marker); idx >= 0 {
			return note.Note[idx+len(marker):]
		}
	}
	return ""
}
