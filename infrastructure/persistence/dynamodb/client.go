// Package dynamodb stores connections, moments and cycles in a single
// DynamoDB table partitioned by user.
//
// Key layout:
//
//	PK = USER#<userId>
//	SK = CONNECTION#<connectionId>
//	     MOMENT#<timestamp|UNTIMED>#<momentId>
//	     CYCLE#<periodStart yyyy-mm-dd>#<cycleId>
package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	pkgerrors "kindra-backend/pkg/errors"
)

// Client is the subset of the DynamoDB API the repositories use
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

var _ Client = (*dynamodb.Client)(nil)

// table bundles what every repository needs
type table struct {
	client Client
	name   string
	logger *zap.Logger
}

func newTable(client Client, name string, logger *zap.Logger) table {
	if logger == nil {
		logger = zap.NewNop()
	}
	return table{client: client, name: name, logger: logger}
}

// put writes item, failing with a conflict when guard is set and the key exists
func (t table) put(ctx context.Context, item map[string]types.AttributeValue, guard bool) error {
	input := &dynamodb.PutItemInput{
		TableName: aws.String(t.name),
		Item:      item,
	}

	if guard {
		expr, err := expression.NewBuilder().
			WithCondition(expression.Name("PK").AttributeNotExists()).
			Build()
		if err != nil {
			return fmt.Errorf("failed to build expression: %w", err)
		}
		input.ConditionExpression = expr.Condition()
		input.ExpressionAttributeNames = expr.Names()
	}

	if _, err := t.client.PutItem(ctx, input); err != nil {
		return translateError("PutItem", err)
	}
	return nil
}

// query collects every page of a partition query
func (t table) query(ctx context.Context, key expression.KeyConditionBuilder, filter *expression.ConditionBuilder) ([]map[string]types.AttributeValue, error) {
	builder := expression.NewBuilder().WithKeyCondition(key)
	if filter != nil {
		builder = builder.WithFilter(*filter)
	}
	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(t.name),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	var items []map[string]types.AttributeValue
	paginator := dynamodb.NewQueryPaginator(t.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, translateError("Query", err)
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

func (t table) delete(ctx context.Context, pk, sk string) error {
	_, err := t.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(t.name),
		Key:       keyOf(pk, sk),
	})
	if err != nil {
		return translateError("DeleteItem", err)
	}
	return nil
}

func keyOf(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}
}

// translateError maps DynamoDB API failures onto application errors
func translateError(op string, err error) error {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return pkgerrors.NewConflictError("item already exists").WithCause(err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ConditionalCheckFailedException":
			return pkgerrors.NewConflictError("item already exists").WithCause(err)
		case "ProvisionedThroughputExceededException", "ThrottlingException", "RequestLimitExceeded":
			return pkgerrors.NewUnavailableError("dynamodb").WithCause(err)
		case "ResourceNotFoundException":
			return pkgerrors.NewDatabaseError(op, err).WithCode("TABLE_NOT_FOUND")
		}
	}

	return pkgerrors.NewDatabaseError(op, err)
}
