package commands

import (
	"context"
	"fmt"

	"kindra-backend/application/commands/bus"
	"kindra-backend/domain/core/valueobjects"
	"kindra-backend/domain/events"
	"kindra-backend/pkg/utils"
)

// DeleteMomentCommand removes a logged moment
type DeleteMomentCommand struct {
	UserID   string `json:"userId" validate:"required"`
	MomentID string `json:"momentId" validate:"required,uuid"`
}

// Validate validates the command
func (c DeleteMomentCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// DeleteMomentHandler handles the DeleteMomentCommand
type DeleteMomentHandler struct {
	deps Dependencies
}

// NewDeleteMomentHandler creates a new handler instance
func NewDeleteMomentHandler(deps Dependencies) *DeleteMomentHandler {
	return &DeleteMomentHandler{deps: deps}
}

// Handle executes the command
func (h *DeleteMomentHandler) Handle(ctx context.Context, command bus.Command) error {
	cmd, ok := command.(DeleteMomentCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", command)
	}

	userID, err := valueobjects.NewUserID(cmd.UserID)
	if err != nil {
		return err
	}
	id, err := valueobjects.ParseMomentID(cmd.MomentID)
	if err != nil {
		return err
	}

	if err := h.deps.Moments.Delete(ctx, userID, id); err != nil {
		return err
	}

	h.deps.afterWrite(ctx, userID, events.NewMomentDeleted(userID, id, h.deps.now().Now()))
	return nil
}

// RegisterAll wires every command handler into the bus
func RegisterAll(b *bus.CommandBus, deps Dependencies) error {
	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{CreateConnectionCommand{}, NewCreateConnectionHandler(deps)},
		{RecordMomentCommand{}, NewRecordMomentHandler(deps)},
		{RecordCycleCommand{}, NewRecordCycleHandler(deps)},
		{DeleteMomentCommand{}, NewDeleteMomentHandler(deps)},
	}
	for _, r := range registrations {
		if err := b.Register(r.cmd, r.handler); err != nil {
			return err
		}
	}
	return nil
}
