package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"kindra-backend/application/commands/bus"
	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
	"kindra-backend/domain/events"
	pkgerrors "kindra-backend/pkg/errors"
	"kindra-backend/pkg/utils"
)

// RecordCycleCommand stores a cycle record. An empty ConnectionID records
// the user's own cycle.
type RecordCycleCommand struct {
	CycleID         string     `json:"cycleId" validate:"required,uuid"`
	UserID          string     `json:"userId" validate:"required"`
	ConnectionID    string     `json:"connectionId" validate:"omitempty,uuid"`
	PeriodStartDate time.Time  `json:"periodStartDate" validate:"required"`
	CycleEndDate    *time.Time `json:"cycleEndDate"`
}

// Validate validates the command
func (c RecordCycleCommand) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return err
	}
	if c.CycleEndDate != nil && c.CycleEndDate.Before(c.PeriodStartDate) {
		return pkgerrors.InvalidCycleWindow()
	}
	return nil
}

// RecordCycleHandler handles the RecordCycleCommand
type RecordCycleHandler struct {
	deps Dependencies
}

// NewRecordCycleHandler creates a new handler instance
func NewRecordCycleHandler(deps Dependencies) *RecordCycleHandler {
	return &RecordCycleHandler{deps: deps}
}

// Handle executes the command
func (h *RecordCycleHandler) Handle(ctx context.Context, command bus.Command) error {
	cmd, ok := command.(RecordCycleCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", command)
	}

	userID, err := valueobjects.NewUserID(cmd.UserID)
	if err != nil {
		return err
	}
	id, err := valueobjects.ParseCycleID(cmd.CycleID)
	if err != nil {
		return err
	}

	var connectionID *valueobjects.ConnectionID
	if cmd.ConnectionID != "" {
		cid, err := valueobjects.ParseConnectionID(cmd.ConnectionID)
		if err != nil {
			return err
		}
		if _, err := h.deps.Connections.GetByID(ctx, userID, cid); err != nil {
			return err
		}
		connectionID = &cid
	}

	now := h.deps.now().Now()
	cycle, err := entities.NewCycleRecord(userID, connectionID, cmd.PeriodStartDate, cmd.CycleEndDate, now)
	if err != nil {
		return err
	}
	cycle.ID = id

	if err := h.deps.Cycles.Save(ctx, cycle); err != nil {
		return err
	}

	h.deps.logger().Debug("Cycle recorded",
		zap.String("userId", userID.String()),
		zap.String("cycleId", id.String()),
		zap.Bool("open", cycle.IsOpen()),
	)
	h.deps.afterWrite(ctx, userID, events.NewCycleRecorded(userID, id, connectionID, cycle.PeriodStartDate, now))
	return nil
}
