package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"kindra-backend/application/ports"
	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
	pkgerrors "kindra-backend/pkg/errors"
)

var (
	_ ports.ConnectionRepository = (*ConnectionRepository)(nil)
	_ ports.MomentRepository     = (*MomentRepository)(nil)
	_ ports.CycleRepository      = (*CycleRepository)(nil)
)

func partition(userID valueobjects.UserID, skPrefix string) expression.KeyConditionBuilder {
	return expression.Key("PK").Equal(expression.Value(userPK(userID))).
		And(expression.Key("SK").BeginsWith(skPrefix))
}

// ConnectionRepository implements ports.ConnectionRepository using DynamoDB
type ConnectionRepository struct {
	t table
}

// NewConnectionRepository creates a new ConnectionRepository
func NewConnectionRepository(client Client, tableName string, logger *zap.Logger) *ConnectionRepository {
	return &ConnectionRepository{t: newTable(client, tableName, logger)}
}

// Save creates or replaces a connection
func (r *ConnectionRepository) Save(ctx context.Context, conn *entities.Connection) error {
	item, err := marshalConnection(conn)
	if err != nil {
		return pkgerrors.NewInternalError("failed to encode connection").WithCause(err)
	}
	if err := r.t.put(ctx, item, false); err != nil {
		r.t.logger.Error("Failed to save connection",
			zap.String("connectionId", conn.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// GetByID retrieves a connection owned by the user
func (r *ConnectionRepository) GetByID(ctx context.Context, userID valueobjects.UserID, id valueobjects.ConnectionID) (*entities.Connection, error) {
	result, err := r.t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.t.name),
		Key:       keyOf(userPK(userID), connectionSK(id)),
	})
	if err != nil {
		return nil, translateError("GetItem", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.ConnectionNotFound(id.String())
	}

	conn, err := unmarshalConnection(result.Item)
	if err != nil {
		r.t.logger.Warn("Malformed connection item", zap.String("connectionId", id.String()), zap.Error(err))
		return nil, pkgerrors.ConnectionNotFound(id.String())
	}
	return conn, nil
}

// ListByUser retrieves all connections for a user
func (r *ConnectionRepository) ListByUser(ctx context.Context, userID valueobjects.UserID) ([]*entities.Connection, error) {
	items, err := r.t.query(ctx, partition(userID, skConnection), nil)
	if err != nil {
		return nil, err
	}
	return decodeAll(r.t, items, unmarshalConnection), nil
}

// MomentRepository implements ports.MomentRepository using DynamoDB.
// Sort keys embed the timestamp so partition queries return moments in
// chronological order, untimed ones last.
type MomentRepository struct {
	t table
}

// NewMomentRepository creates a new MomentRepository
func NewMomentRepository(client Client, tableName string, logger *zap.Logger) *MomentRepository {
	return &MomentRepository{t: newTable(client, tableName, logger)}
}

// Save stores a new moment
func (r *MomentRepository) Save(ctx context.Context, moment *entities.Moment) error {
	item, err := marshalMoment(moment)
	if err != nil {
		return pkgerrors.NewInternalError("failed to encode moment").WithCause(err)
	}
	return r.t.put(ctx, item, true)
}

// Delete removes a moment owned by the user. The sort key embeds the
// timestamp, so the item is located by id first.
func (r *MomentRepository) Delete(ctx context.Context, userID valueobjects.UserID, id valueobjects.MomentID) error {
	filter := expression.Name("MomentID").Equal(expression.Value(id.String()))
	items, err := r.t.query(ctx, partition(userID, skMoment), &filter)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return pkgerrors.MomentNotFound(id.String())
	}

	for _, item := range items {
		sk, ok := stringAttr(item, "SK")
		if !ok {
			continue
		}
		if err := r.t.delete(ctx, userPK(userID), sk); err != nil {
			return err
		}
	}
	return nil
}

// ListByUser retrieves all moments for a user
func (r *MomentRepository) ListByUser(ctx context.Context, userID valueobjects.UserID) ([]*entities.Moment, error) {
	items, err := r.t.query(ctx, partition(userID, skMoment), nil)
	if err != nil {
		return nil, err
	}
	return decodeAll(r.t, items, unmarshalMoment), nil
}

// ListByConnection retrieves the moments logged for one connection
func (r *MomentRepository) ListByConnection(ctx context.Context, userID valueobjects.UserID, connectionID valueobjects.ConnectionID) ([]*entities.Moment, error) {
	filter := expression.Name("ConnectionID").Equal(expression.Value(connectionID.String()))
	items, err := r.t.query(ctx, partition(userID, skMoment), &filter)
	if err != nil {
		return nil, err
	}
	return decodeAll(r.t, items, unmarshalMoment), nil
}

// CycleRepository implements ports.CycleRepository using DynamoDB
type CycleRepository struct {
	t table
}

// NewCycleRepository creates a new CycleRepository
func NewCycleRepository(client Client, tableName string, logger *zap.Logger) *CycleRepository {
	return &CycleRepository{t: newTable(client, tableName, logger)}
}

// Save stores a cycle record
func (r *CycleRepository) Save(ctx context.Context, cycle *entities.CycleRecord) error {
	item, err := marshalCycle(cycle)
	if err != nil {
		return pkgerrors.NewInternalError("failed to encode cycle").WithCause(err)
	}
	return r.t.put(ctx, item, true)
}

// ListByUser retrieves every cycle record of the user
func (r *CycleRepository) ListByUser(ctx context.Context, userID valueobjects.UserID) ([]*entities.CycleRecord, error) {
	items, err := r.t.query(ctx, partition(userID, skCycle), nil)
	if err != nil {
		return nil, err
	}
	return decodeAll(r.t, items, unmarshalCycle), nil
}

// ListByConnection retrieves cycles logged for a connection. A nil
// connection selects the user's own cycles.
func (r *CycleRepository) ListByConnection(ctx context.Context, userID valueobjects.UserID, connectionID *valueobjects.ConnectionID) ([]*entities.CycleRecord, error) {
	filter := ownCyclesFilter()
	if connectionID != nil {
		filter = expression.Name("ConnectionID").Equal(expression.Value(connectionID.String()))
	}
	items, err := r.t.query(ctx, partition(userID, skCycle), &filter)
	if err != nil {
		return nil, err
	}
	return decodeAll(r.t, items, unmarshalCycle), nil
}

func ownCyclesFilter() expression.ConditionBuilder {
	return expression.Name("ConnectionID").AttributeNotExists()
}
