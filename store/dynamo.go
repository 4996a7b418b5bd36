package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"game-score-service/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of the DynamoDB client the store calls.
type DynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Tables names the four DynamoDB tables.
type Tables struct {
	Codes       string
	Users       string
	ScoresStats string
	Scores      string
}

// DefaultTables matches the table names the game has always used.
var DefaultTables = Tables{
	Codes:       "codes",
	Users:       "users",
	ScoresStats: "scoresStats",
	Scores:      "scores",
}

type DynamoStore struct {
	client DynamoAPI
	tables Tables
}

func NewDynamoStore(client DynamoAPI, tables Tables) *DynamoStore {
	return &DynamoStore{client: client, tables: tables}
}

// NewDynamoClient loads the default AWS config for region. A non-empty endpoint
// overrides the service URL (DynamoDB Local, LocalStack).
func NewDynamoClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

func stringKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{name: &types.AttributeValueMemberS{Value: value}}
}

func number(n int64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(n, 10)}
}

func isConditionFailure(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

func (s *DynamoStore) GetCode(ctx context.Context, code string) (*models.Code, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tables.Codes),
		Key:            stringKey("code", code),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get code %q: %w", code, err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("code %q: %w", code, ErrNotFound)
	}
	var c models.Code
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, fmt.Errorf("decode code %q: %w", code, err)
	}
	return &c, nil
}

func (s *DynamoStore) CodeExists(ctx context.Context, code string) (bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:                aws.String(s.tables.Codes),
		Key:                      stringKey("code", code),
		ProjectionExpression:     aws.String("#k"),
		ExpressionAttributeNames: map[string]string{"#k": "code"},
		ConsistentRead:           aws.Bool(true),
	})
	if err != nil {
		return false, fmt.Errorf("lookup code %q: %w", code, err)
	}
	return out.Item != nil, nil
}

func (s *DynamoStore) InsertCode(ctx context.Context, code *models.Code) error {
	item, err := attributevalue.MarshalMap(code)
	if err != nil {
		return fmt.Errorf("encode code %q: %w", code.Code, err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(s.tables.Codes),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#k)"),
		ExpressionAttributeNames: map[string]string{"#k": "code"},
	})
	if err != nil {
		if isConditionFailure(err) {
			return fmt.Errorf("code %q: %w", code.Code, ErrAlreadyExists)
		}
		return fmt.Errorf("insert code %q: %w", code.Code, err)
	}
	return nil
}

func (s *DynamoStore) DecrementAvailable(ctx context.Context, code string) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.tables.Codes),
		Key:                 stringKey("code", code),
		UpdateExpression:    aws.String("SET #a = #a - :one"),
		ConditionExpression: aws.String("attribute_exists(#k) AND #a > :zero"),
		ExpressionAttributeNames: map[string]string{
			"#a": "available",
			"#k": "code",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one":  number(1),
			":zero": number(0),
		},
	})
	if err != nil {
		if isConditionFailure(err) {
			return fmt.Errorf("decrement %q: %w", code, ErrConditionFailed)
		}
		return fmt.Errorf("decrement %q: %w", code, err)
	}
	return nil
}

func (s *DynamoStore) CreateUser(ctx context.Context, user *models.User) error {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("encode user %q: %w", user.Pseudo, err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(s.tables.Users),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#p)"),
		ExpressionAttributeNames: map[string]string{"#p": "pseudo"},
	})
	if err != nil {
		if isConditionFailure(err) {
			return fmt.Errorf("user %q: %w", user.Pseudo, ErrAlreadyExists)
		}
		return fmt.Errorf("create user %q: %w", user.Pseudo, err)
	}
	return nil
}

func (s *DynamoStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.scan(ctx, &dynamodb.ScanInput{TableName: aws.String(s.tables.Users)}, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *DynamoStore) PutRedemption(ctx context.Context, r *models.Redemption) error {
	return s.put(ctx, s.tables.ScoresStats, r)
}

func (s *DynamoStore) ScanRedemptions(ctx context.Context, minMillis, maxMillis int64) ([]models.Redemption, error) {
	var out []models.Redemption
	if err := s.scan(ctx, createdBetween(s.tables.ScoresStats, minMillis, maxMillis), &out); err != nil {
		return nil, fmt.Errorf("scan redemptions: %w", err)
	}
	return out, nil
}

func (s *DynamoStore) PutScoreEvent(ctx context.Context, e *models.ScoreEvent) error {
	return s.put(ctx, s.tables.Scores, e)
}

func (s *DynamoStore) ScanScoreEvents(ctx context.Context, minMillis, maxMillis int64) ([]models.ScoreEvent, error) {
	var out []models.ScoreEvent
	if err := s.scan(ctx, createdBetween(s.tables.Scores, minMillis, maxMillis), &out); err != nil {
		return nil, fmt.Errorf("scan score events: %w", err)
	}
	return out, nil
}

func (s *DynamoStore) put(ctx context.Context, table string, v any) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("encode %s item: %w", table, err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put %s item: %w", table, err)
	}
	return nil
}

func createdBetween(table string, minMillis, maxMillis int64) *dynamodb.ScanInput {
	return &dynamodb.ScanInput{
		TableName:                aws.String(table),
		FilterExpression:         aws.String("#c > :min AND #c < :max"),
		ExpressionAttributeNames: map[string]string{"#c": "createdAt"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":min": number(minMillis),
			":max": number(maxMillis),
		},
	}
}

// scan follows LastEvaluatedKey until the table is exhausted and decodes every page into out.
func (s *DynamoStore) scan(ctx context.Context, in *dynamodb.ScanInput, out any) error {
	var items []map[string]types.AttributeValue
	p := dynamodb.NewScanPaginator(s.client, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return err
		}
		items = append(items, page.Items...)
	}
	return attributevalue.UnmarshalListOfMaps(items, out)
}

var _ Store = (*DynamoStore)(nil)
