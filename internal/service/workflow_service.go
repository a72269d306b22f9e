package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fuelflow/internal/cache"
	"github.com/fuelflow/internal/constants"
	"github.com/fuelflow/internal/logger"
	"github.com/fuelflow/internal/models"
	"github.com/fuelflow/internal/queue"
	"github.com/fuelflow/internal/repository"
	"github.com/fuelflow/internal/workflow"

	"gorm.io/gorm"
)

// Actor identifies the user performing a workflow action.
type Actor struct {
	UserID     uint
	Username   string
	Department string
}

// TransitionInput is one workflow action request against one order.
type TransitionInput struct {
	OrderID uint
	Action  string
	Reason  string

	// assignTransport payload
	DriverName        string
	TruckPlate        string
	TransportCompany  string
	EstimatedDelivery *time.Time
}

// WorkflowService executes order status transitions. Legality is decided by
// the workflow package; this service owns persistence, audit notes, dedupe
// and notifications.
type WorkflowService struct {
	db            *gorm.DB
	orderRepo     repository.OrderRepository
	noteRepo      repository.NoteRepository
	queueClient   *queue.Client
	retryAttempts int
	retryBase     time.Duration
}

// NewWorkflowService creates the workflow service.
func NewWorkflowService(db *gorm.DB, orderRepo repository.OrderRepository, noteRepo repository.NoteRepository, queueClient *queue.Client, retryAttempts, retryBaseMS int) *WorkflowService {
	if retryAttempts <= 0 {
		retryAttempts = 3
	}
	if retryBaseMS <= 0 {
		retryBaseMS = 50
	}
	return &WorkflowService{
		db:            db,
		orderRepo:     orderRepo,
		noteRepo:      noteRepo,
		queueClient:   queueClient,
		retryAttempts: retryAttempts,
		retryBase:     time.Duration(retryBaseMS) * time.Millisecond,
	}
}

// Execute runs one workflow action. The status change and its audit note
// commit in one transaction, guarded by a compare-and-set on the current
// status so concurrent submissions cannot both win.
func (s *WorkflowService) Execute(ctx context.Context, actor Actor, input TransitionInput) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}

	transition, err := workflow.Resolve(order, workflow.ResolveInput{
		Action:            input.Action,
		Department:        actor.Department,
		Reason:            input.Reason,
		DriverName:        input.DriverName,
		TruckPlate:        input.TruckPlate,
		TransportCompany:  input.TransportCompany,
		EstimatedDelivery: input.EstimatedDelivery != nil,
	})
	if err != nil {
		return nil, err
	}

	claimKey := cache.TransitionClaimKey(order.ID, transition.To, actor.Username)
	claimed, err := cache.ClaimTransition(ctx, claimKey)
	if err != nil {
		logger.Warnw("workflow_claim_failed",
			"key", claimKey,
			"error", err,
		)
		claimed = true
	}
	if !claimed {
		return nil, fmt.Errorf("%w: duplicate submission", workflow.ErrInvalidTransition)
	}

	now := time.Now()
	updates := s.buildUpdates(transition, actor, input, now)
	note := s.buildNote(order, transition, actor, input, claimKey, now)

	if err := s.commitTransition(order, transition, updates, note); err != nil {
		cache.ReleaseTransition(ctx, claimKey)
		return nil, err
	}

	if err := s.queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{
		OrderID:   order.ID,
		Status:    transition.To,
		ChangedBy: actor.Username,
	}); err != nil {
		logger.Warnw("workflow_enqueue_status_notify_failed",
			"order_id", order.ID,
			"status", transition.To,
			"error", err,
		)
	}

	return s.orderRepo.GetByID(order.ID)
}

// commitTransition writes the status change and audit note atomically,
// retrying transient store failures with growing backoff.
func (s *WorkflowService) commitTransition(order *models.Order, transition workflow.Transition, updates map[string]interface{}, note *models.OrderNote) error {
	var lastErr error
	for attempt := 0; attempt < s.retryAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(s.retryBase << (attempt - 1))
		}

		err := s.db.Transaction(func(tx *gorm.DB) error {
			rows, err := s.orderRepo.WithTx(tx).UpdateStatusFrom(order.ID, transition.From, transition.To, updates)
			if err != nil {
				return err
			}
			if rows == 0 {
				return fmt.Errorf("%w: %s already left %q", workflow.ErrInvalidTransition, order.OrderID, transition.From)
			}
			return s.noteRepo.WithTx(tx).Create(note)
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, workflow.ErrInvalidTransition) {
			return err
		}
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: duplicate submission", workflow.ErrInvalidTransition)
		}
		lastErr = err
		logger.Warnw("workflow_commit_retry",
			"order_id", order.ID,
			"action", transition.Action,
			"attempt", attempt+1,
			"error", err,
		)
	}
	return fmt.Errorf("%w: %v", ErrBackendUnavailable, lastErr)
}

func (s *WorkflowService) buildUpdates(transition workflow.Transition, actor Actor, input TransitionInput, now time.Time) map[string]interface{} {
	updates := map[string]interface{}{
		"updated_by": actor.Username,
	}
	switch transition.Action {
	case constants.ActionApprove:
		updates["approved_by"] = actor.Username
		updates["approval_date"] = now
	case constants.ActionReject:
		updates["rejected_by"] = actor.Username
		updates["rejection_date"] = now
		updates["rejection_reason"] = strings.TrimSpace(input.Reason)
	case constants.ActionAssignTransport:
		updates["driver_name"] = strings.TrimSpace(input.DriverName)
		updates["truck_plate"] = strings.TrimSpace(input.TruckPlate)
		updates["transport_company"] = strings.TrimSpace(input.TransportCompany)
		updates["estimated_delivery"] = input.EstimatedDelivery
	case constants.ActionMarkInWarehouse:
		updates["in_warehouse_at"] = now
	case constants.ActionMarkLoading:
		updates["loading_at"] = now
	case constants.ActionMarkLeftWarehouse:
		updates["left_warehouse_at"] = now
	case constants.ActionMarkDelivered:
		updates["actual_delivery"] = now
	case constants.ActionMarkDisputed:
		updates["disputed_at"] = now
	case constants.ActionResolveDispute:
		updates["resolved_at"] = now
	}
	return updates
}

func (s *WorkflowService) buildNote(order *models.Order, transition workflow.Transition, actor Actor, input TransitionInput, claimKey string, now time.Time) *models.OrderNote {
	text := fmt.Sprintf("Status changed from %s to %s", transition.From, transition.To)
	if reason := strings.TrimSpace(input.Reason); reason != "" {
		text = fmt.Sprintf("%s. Reason: %s", text, reason)
	}
	if transition.Action == constants.ActionAssignTransport {
		text = fmt.Sprintf("%s. Driver %s, truck %s, company %s",
			text, strings.TrimSpace(input.DriverName), strings.TrimSpace(input.TruckPlate), strings.TrimSpace(input.TransportCompany))
	}
	key := claimKey
	return &models.OrderNote{
		OrderRef:       order.ID,
		OrderID:        order.OrderID,
		UserID:         actor.UserID,
		UserName:       actor.Username,
		UserDepartment: actor.Department,
		Note:           text,
		NoteType:       constants.NoteTypeStatusChange,
		DedupeKey:      &key,
		CreatedAt:      now,
	}
}

// isDuplicateKeyError detects a dedupe-key collision from either backend.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique failed") ||
		strings.Contains(msg, "duplicate key")
}
