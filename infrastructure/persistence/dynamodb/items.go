package dynamodb

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
)

// Entity types stored in the EntityType attribute
const (
	EntityConnection = "CONNECTION"
	EntityMoment     = "MOMENT"
	EntityCycle      = "CYCLE"
)

const (
	skConnection = "CONNECTION#"
	skMoment     = "MOMENT#"
	skCycle      = "CYCLE#"
	untimedKey   = "UNTIMED"
	dateLayout   = "2006-01-02"
)

func userPK(userID valueobjects.UserID) string {
	return "USER#" + userID.String()
}

func connectionSK(id valueobjects.ConnectionID) string {
	return skConnection + id.String()
}

func momentSK(m *entities.Moment) string {
	key := untimedKey
	if m.HasTimestamp() {
		key = m.Timestamp.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("%s%s#%s", skMoment, key, m.ID.String())
}

func cycleSK(c *entities.CycleRecord) string {
	return fmt.Sprintf("%s%s#%s", skCycle, c.PeriodStartDate.UTC().Format(dateLayout), c.ID.String())
}

// connectionItem represents the DynamoDB item structure for a connection
type connectionItem struct {
	PK                string `dynamodbav:"PK"`
	SK                string `dynamodbav:"SK"`
	EntityType        string `dynamodbav:"EntityType"`
	ConnectionID      string `dynamodbav:"ConnectionID"`
	UserID            string `dynamodbav:"UserID"`
	Name              string `dynamodbav:"Name"`
	RelationshipStage string `dynamodbav:"RelationshipStage,omitempty"`
	ZodiacSign        string `dynamodbav:"ZodiacSign,omitempty"`
	LoveLanguage      string `dynamodbav:"LoveLanguage,omitempty"`
	CreatedAt         string `dynamodbav:"CreatedAt"`
}

// momentItem represents the DynamoDB item structure for a moment
type momentItem struct {
	PK           string   `dynamodbav:"PK"`
	SK           string   `dynamodbav:"SK"`
	EntityType   string   `dynamodbav:"EntityType"`
	MomentID     string   `dynamodbav:"MomentID"`
	UserID       string   `dynamodbav:"UserID"`
	ConnectionID string   `dynamodbav:"ConnectionID"`
	Timestamp    string   `dynamodbav:"Timestamp,omitempty"`
	Emoji        string   `dynamodbav:"Emoji"`
	Tags         []string `dynamodbav:"Tags,omitempty"`
	IsIntimate   bool     `dynamodbav:"IsIntimate"`
	Content      string   `dynamodbav:"Content,omitempty"`
	CreatedAt    string   `dynamodbav:"CreatedAt"`
}

// cycleItem represents the DynamoDB item structure for a cycle record.
// A missing ConnectionID marks the user's own cycle.
type cycleItem struct {
	PK              string `dynamodbav:"PK"`
	SK              string `dynamodbav:"SK"`
	EntityType      string `dynamodbav:"EntityType"`
	CycleID         string `dynamodbav:"CycleID"`
	UserID          string `dynamodbav:"UserID"`
	ConnectionID    string `dynamodbav:"ConnectionID,omitempty"`
	PeriodStartDate string `dynamodbav:"PeriodStartDate"`
	CycleEndDate    string `dynamodbav:"CycleEndDate,omitempty"`
	CreatedAt       string `dynamodbav:"CreatedAt"`
}

func marshalConnection(c *entities.Connection) (map[string]types.AttributeValue, error) {
	item := connectionItem{
		PK:                userPK(c.UserID),
		SK:                connectionSK(c.ID),
		EntityType:        EntityConnection,
		ConnectionID:      c.ID.String(),
		UserID:            c.UserID.String(),
		Name:              c.Name,
		RelationshipStage: c.RelationshipStage,
		ZodiacSign:        c.ZodiacSign,
		LoveLanguage:      c.LoveLanguage,
		CreatedAt:         c.CreatedAt.UTC().Format(time.RFC3339),
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal connection: %w", err)
	}
	return av, nil
}

func unmarshalConnection(av map[string]types.AttributeValue) (*entities.Connection, error) {
	var item connectionItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connection: %w", err)
	}
	if item.EntityType != EntityConnection {
		return nil, fmt.Errorf("unexpected entity type %q", item.EntityType)
	}

	id, err := valueobjects.ParseConnectionID(item.ConnectionID)
	if err != nil {
		return nil, err
	}
	userID, err := valueobjects.NewUserID(item.UserID)
	if err != nil {
		return nil, err
	}
	createdAt, err := parseOptionalTime(item.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &entities.Connection{
		ID:                id,
		UserID:            userID,
		Name:              item.Name,
		RelationshipStage: item.RelationshipStage,
		ZodiacSign:        item.ZodiacSign,
		LoveLanguage:      item.LoveLanguage,
		CreatedAt:         createdAt,
	}, nil
}

func marshalMoment(m *entities.Moment) (map[string]types.AttributeValue, error) {
	item := momentItem{
		PK:           userPK(m.UserID),
		SK:           momentSK(m),
		EntityType:   EntityMoment,
		MomentID:     m.ID.String(),
		UserID:       m.UserID.String(),
		ConnectionID: m.ConnectionID.String(),
		Emoji:        m.Emoji,
		Tags:         m.Tags,
		IsIntimate:   m.IsIntimate,
		Content:      m.Content,
		CreatedAt:    m.CreatedAt.UTC().Format(time.RFC3339),
	}
	if m.HasTimestamp() {
		item.Timestamp = m.Timestamp.UTC().Format(time.RFC3339)
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal moment: %w", err)
	}
	return av, nil
}

// unmarshalMoment treats an unparseable timestamp as untimed.
func unmarshalMoment(av map[string]types.AttributeValue) (*entities.Moment, error) {
	var item momentItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal moment: %w", err)
	}
	if item.EntityType != EntityMoment {
		return nil, fmt.Errorf("unexpected entity type %q", item.EntityType)
	}

	id, err := valueobjects.ParseMomentID(item.MomentID)
	if err != nil {
		return nil, err
	}
	userID, err := valueobjects.NewUserID(item.UserID)
	if err != nil {
		return nil, err
	}
	connectionID, err := valueobjects.ParseConnectionID(item.ConnectionID)
	if err != nil {
		return nil, err
	}
	if item.Emoji == "" {
		return nil, fmt.Errorf("moment %s has no emoji", item.MomentID)
	}

	m := &entities.Moment{
		ID:           id,
		UserID:       userID,
		ConnectionID: connectionID,
		Emoji:        item.Emoji,
		Tags:         item.Tags,
		IsIntimate:   item.IsIntimate,
		Content:      item.Content,
	}
	if ts, err := time.Parse(time.RFC3339, item.Timestamp); err == nil && !ts.IsZero() {
		ts = ts.UTC()
		m.Timestamp = &ts
	}
	if m.CreatedAt, err = parseOptionalTime(item.CreatedAt); err != nil {
		return nil, err
	}
	return m, nil
}

func marshalCycle(c *entities.CycleRecord) (map[string]types.AttributeValue, error) {
	item := cycleItem{
		PK:              userPK(c.UserID),
		SK:              cycleSK(c),
		EntityType:      EntityCycle,
		CycleID:         c.ID.String(),
		UserID:          c.UserID.String(),
		PeriodStartDate: c.PeriodStartDate.UTC().Format(time.RFC3339),
		CreatedAt:       c.CreatedAt.UTC().Format(time.RFC3339),
	}
	if c.ConnectionID != nil {
		item.ConnectionID = c.ConnectionID.String()
	}
	if c.CycleEndDate != nil {
		item.CycleEndDate = c.CycleEndDate.UTC().Format(time.RFC3339)
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cycle: %w", err)
	}
	return av, nil
}

// unmarshalCycle does not check the window; inverted records reach the
// engine, which skips them.
func unmarshalCycle(av map[string]types.AttributeValue) (*entities.CycleRecord, error) {
	var item cycleItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cycle: %w", err)
	}
	if item.EntityType != EntityCycle {
		return nil, fmt.Errorf("unexpected entity type %q", item.EntityType)
	}

	id, err := valueobjects.ParseCycleID(item.CycleID)
	if err != nil {
		return nil, err
	}
	userID, err := valueobjects.NewUserID(item.UserID)
	if err != nil {
		return nil, err
	}
	start, err := time.Parse(time.RFC3339, item.PeriodStartDate)
	if err != nil {
		return nil, fmt.Errorf("cycle %s has invalid periodStartDate: %w", item.CycleID, err)
	}

	c := &entities.CycleRecord{
		ID:              id,
		UserID:          userID,
		PeriodStartDate: start.UTC(),
	}
	if item.ConnectionID != "" {
		connectionID, err := valueobjects.ParseConnectionID(item.ConnectionID)
		if err != nil {
			return nil, err
		}
		c.ConnectionID = &connectionID
	}
	if item.CycleEndDate != "" {
		end, err := time.Parse(time.RFC3339, item.CycleEndDate)
		if err != nil {
			return nil, fmt.Errorf("cycle %s has invalid cycleEndDate: %w", item.CycleID, err)
		}
		end = end.UTC()
		c.CycleEndDate = &end
	}
	if c.CreatedAt, err = parseOptionalTime(item.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func parseOptionalTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// decodeAll converts items, skipping the ones that fail with a warning
func decodeAll[T any](t table, items []map[string]types.AttributeValue, decode func(map[string]types.AttributeValue) (T, error)) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		v, err := decode(item)
		if err != nil {
			t.logger.Warn("Skipping malformed item", zap.String("table", t.name), zap.Error(err))
			continue
		}
		out = append(out, v)
	}
	return out
}

func stringAttr(item map[string]types.AttributeValue, name string) (string, bool) {
	v, ok := item[name].(*types.AttributeValueMemberS)
	if !ok {
		return "", false
	}
	return v.Value, true
}
