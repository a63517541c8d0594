package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
	pkgerrors "kindra-backend/pkg/errors"
)

var (
	testUser = valueobjects.MustUserID("alice")
	testTime = time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC)
)

func sampleMoment(ts *time.Time) *entities.Moment {
	return &entities.Moment{
		ID:           valueobjects.NewMomentID(),
		UserID:       testUser,
		ConnectionID: valueobjects.NewConnectionID(),
		Timestamp:    ts,
		Emoji:        "🥰",
		Tags:         []string{"date night", "communication"},
		IsIntimate:   true,
		Content:      "dinner",
		CreatedAt:    testTime,
	}
}

func TestItems_MomentRoundTrip(t *testing.T) {
	ts := testTime.Add(-time.Hour)
	m := sampleMoment(&ts)

	item, err := marshalMoment(m)
	require.NoError(t, err)

	sk, _ := stringAttr(item, "SK")
	assert.Equal(t, "MOMENT#2024-03-01T17:30:00Z#"+m.ID.String(), sk)
	pk, _ := stringAttr(item, "PK")
	assert.Equal(t, "USER#alice", pk)

	got, err := unmarshalMoment(item)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestItems_UntimedMoment(t *testing.T) {
	m := sampleMoment(nil)

	item, err := marshalMoment(m)
	require.NoError(t, err)
	sk, _ := stringAttr(item, "SK")
	assert.Equal(t, "MOMENT#UNTIMED#"+m.ID.String(), sk)
	_, hasTimestamp := item["Timestamp"]
	assert.False(t, hasTimestamp)

	got, err := unmarshalMoment(item)
	require.NoError(t, err)
	assert.Nil(t, got.Timestamp)
}

func TestItems_CycleRoundTrip(t *testing.T) {
	connID := valueobjects.NewConnectionID()
	end := testTime.AddDate(0, 0, 27)
	tests := []struct {
		name  string
		cycle *entities.CycleRecord
	}{
		{"own open cycle", &entities.CycleRecord{ID: valueobjects.NewCycleID(), UserID: testUser, PeriodStartDate: testTime, CreatedAt: testTime}},
		{"partner closed cycle", &entities.CycleRecord{ID: valueobjects.NewCycleID(), UserID: testUser, ConnectionID: &connID, PeriodStartDate: testTime, CycleEndDate: &end, CreatedAt: testTime}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := marshalCycle(tt.cycle)
			require.NoError(t, err)
			sk, _ := stringAttr(item, "SK")
			assert.Equal(t, "CYCLE#2024-03-01#"+tt.cycle.ID.String(), sk)

			got, err := unmarshalCycle(item)
			require.NoError(t, err)
			assert.Equal(t, tt.cycle, got)
		})
	}
}

func TestItems_RejectsMalformed(t *testing.T) {
	good, err := marshalMoment(sampleMoment(nil))
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(map[string]types.AttributeValue)
	}{
		{"wrong entity type", func(i map[string]types.AttributeValue) { i["EntityType"] = &types.AttributeValueMemberS{Value: EntityCycle} }},
		{"bad id", func(i map[string]types.AttributeValue) { i["MomentID"] = &types.AttributeValueMemberS{Value: "nope"} }},
		{"missing emoji", func(i map[string]types.AttributeValue) { delete(i, "Emoji") }},
		{"wrong attribute type", func(i map[string]types.AttributeValue) { i["Tags"] = &types.AttributeValueMemberN{Value: "3"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := make(map[string]types.AttributeValue, len(good))
			for k, v := range good {
				item[k] = v
			}
			tt.mutate(item)
			_, err := unmarshalMoment(item)
			assert.Error(t, err)
		})
	}
}

func TestConnectionRepository_GetByID(t *testing.T) {
	conn := &entities.Connection{ID: valueobjects.NewConnectionID(), UserID: testUser, Name: "Sam", RelationshipStage: "Dating", CreatedAt: testTime}
	item, err := marshalConnection(conn)
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		repo := NewConnectionRepository(&fakeClient{getItem: item}, "kindra", zap.NewNop())
		got, err := repo.GetByID(context.Background(), testUser, conn.ID)
		require.NoError(t, err)
		assert.Equal(t, conn, got)
	})

	t.Run("missing", func(t *testing.T) {
		repo := NewConnectionRepository(&fakeClient{}, "kindra", zap.NewNop())
		_, err := repo.GetByID(context.Background(), testUser, conn.ID)
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestMomentRepository_ListPaginatesAndSkipsMalformed(t *testing.T) {
	m1, m2 := sampleMoment(nil), sampleMoment(nil)
	i1, err := marshalMoment(m1)
	require.NoError(t, err)
	i2, err := marshalMoment(m2)
	require.NoError(t, err)
	broken := map[string]types.AttributeValue{"EntityType": &types.AttributeValueMemberS{Value: EntityMoment}}

	core, logs := observer.New(zap.WarnLevel)
	client := &fakeClient{pages: [][]map[string]types.AttributeValue{{i1, broken}, {i2}}}
	repo := NewMomentRepository(client, "kindra", zap.New(core))

	moments, err := repo.ListByUser(context.Background(), testUser)

	require.NoError(t, err)
	require.Len(t, moments, 2)
	assert.Equal(t, m1.ID, moments[0].ID)
	assert.Equal(t, m2.ID, moments[1].ID)
	assert.Len(t, client.queries, 2)
	assert.Equal(t, 1, logs.FilterMessage("Skipping malformed item").Len())
	assert.True(t, hasStringValue(client.queries[0].ExpressionAttributeValues, "USER#alice"))
	assert.True(t, hasStringValue(client.queries[0].ExpressionAttributeValues, "MOMENT#"))
}

func TestMomentRepository_SaveConflict(t *testing.T) {
	client := &fakeClient{putErr: &types.ConditionalCheckFailedException{Message: aws.String("exists")}}
	repo := NewMomentRepository(client, "kindra", nil)

	err := repo.Save(context.Background(), sampleMoment(nil))

	assert.True(t, pkgerrors.IsConflict(err))
	require.Len(t, client.puts, 1)
	assert.NotNil(t, client.puts[0].ConditionExpression)
}

func TestMomentRepository_Delete(t *testing.T) {
	m := sampleMoment(&testTime)
	item, err := marshalMoment(m)
	require.NoError(t, err)

	t.Run("deletes located item", func(t *testing.T) {
		client := &fakeClient{pages: [][]map[string]types.AttributeValue{{item}}}
		repo := NewMomentRepository(client, "kindra", nil)

		require.NoError(t, repo.Delete(context.Background(), testUser, m.ID))
		require.Len(t, client.deletes, 1)
		assert.Equal(t, keyOf("USER#alice", momentSK(m)), client.deletes[0].Key)
		assert.True(t, hasStringValue(client.queries[0].ExpressionAttributeValues, m.ID.String()))
	})

	t.Run("not found", func(t *testing.T) {
		repo := NewMomentRepository(&fakeClient{}, "kindra", nil)
		err := repo.Delete(context.Background(), testUser, m.ID)
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestCycleRepository_ListByConnectionFilters(t *testing.T) {
	connID := valueobjects.NewConnectionID()

	client := &fakeClient{}
	repo := NewCycleRepository(client, "kindra", nil)

	_, err := repo.ListByConnection(context.Background(), testUser, &connID)
	require.NoError(t, err)
	_, err = repo.ListByConnection(context.Background(), testUser, nil)
	require.NoError(t, err)

	require.Len(t, client.queries, 2)
	assert.True(t, hasStringValue(client.queries[0].ExpressionAttributeValues, connID.String()))
	require.NotNil(t, client.queries[1].FilterExpression)
	assert.Contains(t, *client.queries[1].FilterExpression, "attribute_not_exists")
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"conditional check", &types.ConditionalCheckFailedException{}, pkgerrors.IsConflict},
		{"throttled", &smithy.GenericAPIError{Code: "ThrottlingException"}, pkgerrors.IsUnavailable},
		{"throughput", &types.ProvisionedThroughputExceededException{}, pkgerrors.IsUnavailable},
		{"other", errors.New("boom"), func(err error) bool { return pkgerrors.IsType(err, pkgerrors.ErrorTypeDatabase) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(translateError("PutItem", tt.err)))
		})
	}
}
