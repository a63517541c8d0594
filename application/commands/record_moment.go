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
	"kindra-backend/pkg/utils"
)

// RecordMomentCommand logs an interaction with a connection
type RecordMomentCommand struct {
	MomentID     string     `json:"momentId" validate:"required,uuid"`
	UserID       string     `json:"userId" validate:"required"`
	ConnectionID string     `json:"connectionId" validate:"required,uuid"`
	Timestamp    *time.Time `json:"timestamp"`
	Emoji        string     `json:"emoji" validate:"required,max=16"`
	Tags         []string   `json:"tags" validate:"max=20,dive,min=1,max=50"`
	IsIntimate   bool       `json:"isIntimate"`
	Content      string     `json:"content" validate:"max=5000"`
}

// Validate validates the command
func (c RecordMomentCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// RecordMomentHandler handles the RecordMomentCommand
type RecordMomentHandler struct {
	deps Dependencies
}

// NewRecordMomentHandler creates a new handler instance
func NewRecordMomentHandler(deps Dependencies) *RecordMomentHandler {
	return &RecordMomentHandler{deps: deps}
}

// Handle executes the command. The connection must belong to the user.
func (h *RecordMomentHandler) Handle(ctx context.Context, command bus.Command) error {
	cmd, ok := command.(RecordMomentCommand)
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
	connectionID, err := valueobjects.ParseConnectionID(cmd.ConnectionID)
	if err != nil {
		return err
	}
	if _, err := h.deps.Connections.GetByID(ctx, userID, connectionID); err != nil {
		return err
	}

	content, err := valueobjects.NewMomentContent(cmd.Emoji, cmd.Tags, cmd.Content)
	if err != nil {
		return err
	}

	now := h.deps.now().Now()
	moment, err := entities.NewMoment(userID, connectionID, cmd.Timestamp, content, cmd.IsIntimate, now)
	if err != nil {
		return err
	}
	moment.ID = id

	if err := h.deps.Moments.Save(ctx, moment); err != nil {
		return err
	}

	h.deps.logger().Debug("Moment recorded",
		zap.String("userId", userID.String()),
		zap.String("momentId", id.String()),
		zap.String("connectionId", connectionID.String()),
	)
	h.deps.afterWrite(ctx, userID, events.NewMomentRecorded(userID, id, connectionID, moment.Emoji, moment.Tags, now))
	return nil
}
