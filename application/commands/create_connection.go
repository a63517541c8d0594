package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"kindra-backend/application/commands/bus"
	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
	"kindra-backend/domain/events"
	"kindra-backend/pkg/utils"
)

// CreateConnectionCommand starts tracking a new connection
type CreateConnectionCommand struct {
	ConnectionID      string `json:"connectionId" validate:"required,uuid"`
	UserID            string `json:"userId" validate:"required"`
	Name              string `json:"name" validate:"required,min=1,max=100"`
	RelationshipStage string `json:"relationshipStage" validate:"max=50"`
	ZodiacSign        string `json:"zodiacSign" validate:"max=30"`
	LoveLanguage      string `json:"loveLanguage" validate:"max=50"`
}

// Validate validates the command
func (c CreateConnectionCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// CreateConnectionHandler handles the CreateConnectionCommand
type CreateConnectionHandler struct {
	deps Dependencies
}

// NewCreateConnectionHandler creates a new handler instance
func NewCreateConnectionHandler(deps Dependencies) *CreateConnectionHandler {
	return &CreateConnectionHandler{deps: deps}
}

// Handle executes the command
func (h *CreateConnectionHandler) Handle(ctx context.Context, command bus.Command) error {
	cmd, ok := command.(CreateConnectionCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", command)
	}

	userID, err := valueobjects.NewUserID(cmd.UserID)
	if err != nil {
		return err
	}
	id, err := valueobjects.ParseConnectionID(cmd.ConnectionID)
	if err != nil {
		return err
	}

	now := h.deps.now().Now()
	conn, err := entities.NewConnection(userID, cmd.Name, cmd.RelationshipStage, cmd.ZodiacSign, cmd.LoveLanguage, now)
	if err != nil {
		return err
	}
	conn.ID = id

	if err := h.deps.Connections.Save(ctx, conn); err != nil {
		return err
	}

	h.deps.logger().Info("Connection created",
		zap.String("userId", userID.String()),
		zap.String("connectionId", id.String()),
	)
	h.deps.afterWrite(ctx, userID, events.NewConnectionCreated(userID, id, conn.Name, conn.RelationshipStage, now))
	return nil
}
