package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/ansa-dev/ansa/internal/kv"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// api is the subset of the DynamoDB client the store uses.
type api interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// Store manages the persistence of call records in a DynamoDB table keyed by
// (call_id, timestamp), with a global secondary index on (caller_phone,
// timestamp) for history lookups.
type Store struct {
	client     api
	table      string
	phoneIndex string
}

// NewStore creates a new Store on top of an AWS configuration.
func NewStore(cfg aws.Config, table, phoneIndex string) *Store {
	return &Store{
		client:     dynamodb.NewFromConfig(cfg),
		table:      table,
		phoneIndex: phoneIndex,
	}
}

// NewStoreWithClient creates a new Store with an explicit client. Used in tests.
func NewStoreWithClient(client api, table, phoneIndex string) *Store {
	return &Store{client: client, table: table, phoneIndex: phoneIndex}
}

// Close is a no-op; the underlying HTTP client has no resources to release.
func (s *Store) Close() error {
	return nil
}

// PutCallRecord writes a single call record to the table.
func (s *Store) PutCallRecord(ctx context.Context, record *kv.CallRecord) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal call record: %w", kv.ErrSerializationFailed, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to put call record: %w", kv.ErrDBOperationFailed, err)
	}
	return nil
}

// GetCallRecord retrieves the most recent record for a call id.
func (s *Store) GetCallRecord(ctx context.Context, callID string) (*kv.CallRecord, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("call_id = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: callID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query call record: %w", kv.ErrDBOperationFailed, err)
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("%w: call record '%s'", kv.ErrNotFound, callID)
	}

	var record kv.CallRecord
	if err := attributevalue.UnmarshalMap(out.Items[0], &record); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal call record: %w", kv.ErrSerializationFailed, err)
	}
	return &record, nil
}

// ListCallRecords retrieves all call records from the table.
func (s *Store) ListCallRecords(ctx context.Context) ([]*kv.CallRecord, error) {
	var records []*kv.CallRecord
	var startKey map[string]types.AttributeValue

	for {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan call records: %w", kv.ErrDBOperationFailed, err)
		}

		var page []*kv.CallRecord
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("%w: failed to unmarshal call records: %w", kv.ErrSerializationFailed, err)
		}
		records = append(records, page...)

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return records, nil
}

// ListCallRecordsByPhone retrieves all records for a phone number, most
// recent first, via the phone number index.
func (s *Store) ListCallRecordsByPhone(ctx context.Context, phone string) ([]*kv.CallRecord, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		IndexName:              aws.String(s.phoneIndex),
		KeyConditionExpression: aws.String("caller_phone = :phone"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":phone": &types.AttributeValueMemberS{Value: phone},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query call records by phone: %w", kv.ErrDBOperationFailed, err)
	}

	var records []*kv.CallRecord
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &records); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal call records: %w", kv.ErrSerializationFailed, err)
	}
	return records, nil
}

// MarkNotificationSent flips the notification flag on an existing record. The
// condition expression prevents the update from creating a phantom item.
func (s *Store) MarkNotificationSent(ctx context.Context, callID, timestamp string) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"call_id":   &types.AttributeValueMemberS{Value: callID},
			"timestamp": &types.AttributeValueMemberS{Value: timestamp},
		},
		UpdateExpression:    aws.String("SET notification_sent = :val"),
		ConditionExpression: aws.String("attribute_exists(call_id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":val": &types.AttributeValueMemberBOOL{Value: true},
		},
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return fmt.Errorf("%w: call record '%s'", kv.ErrNotFound, callID)
		}
		return fmt.Errorf("%w: failed to update call record: %w", kv.ErrDBOperationFailed, err)
	}
	return nil
}
