package dynamo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"geonotes/internal/model"
	"geonotes/internal/note/repository"
	pkgLog "geonotes/pkg/log"
)

const (
	partitionKey = "NOTES"
	sortPrefix   = "NOTE#"
)

// API is the subset of the DynamoDB client the gateway uses.
type API interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// NewClient builds a DynamoDB client from the default AWS credential chain.
// endpoint overrides the service URL, e.g. for dynamodb-local.
func NewClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("dynamo: load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// item is the stored shape of a note. All notes share one partition and sort
// by creation time, so a descending Query returns them newest first.
type item struct {
	PK          string `dynamodbav:"PK"`
	SK          string `dynamodbav:"SK"`
	Title       string `dynamodbav:"Title"`
	Description string `dynamodbav:"Description,omitempty"`
	Date        string `dynamodbav:"Date,omitempty"`
	Photo       string `dynamodbav:"Photo"`
	Position    string `dynamodbav:"Position,omitempty"`
	UpdatedAt   string `dynamodbav:"UpdatedAt"`
}

func (it item) note() model.Note {
	return model.Note{
		Key:         strings.TrimPrefix(it.SK, sortPrefix),
		Title:       it.Title,
		Description: it.Description,
		Date:        it.Date,
		Photo:       it.Photo,
		Position:    it.Position,
	}
}

// keyAttrs is the primary key; it is also the cursor payload.
type keyAttrs struct {
	PK string `dynamodbav:"PK" json:"pk"`
	SK string `dynamodbav:"SK" json:"sk"`
}

type implRepository struct {
	api   API
	table string
	now   func() time.Time
	l     pkgLog.Logger
}

// New creates a Gateway backed by a DynamoDB table with a string PK and SK.
func New(api API, table string, l pkgLog.Logger) repository.Gateway {
	return &implRepository{api: api, table: table, now: time.Now, l: l}
}

func (r *implRepository) FetchPage(ctx context.Context, opt repository.FetchPageOptions) (model.Page, error) {
	if opt.Limit <= 0 {
		return model.Page{}, repository.ErrInvalidLimit
	}

	keyEx := expression.Key("PK").Equal(expression.Value(partitionKey)).
		And(expression.Key("SK").BeginsWith(sortPrefix))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return model.Page{}, fmt.Errorf("%w: build expression: %w", repository.ErrFailedToFetch, err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
		Limit:                     aws.Int32(int32(opt.Limit)),
	}
	if !opt.After.IsZero() {
		startKey, err := DecodeCursor(opt.After)
		if err != nil {
			return model.Page{}, err
		}
		input.ExclusiveStartKey = startKey
	}

	out, err := r.api.Query(ctx, input)
	if err != nil {
		r.l.Errorf(ctx, "note/repository/dynamo.FetchPage: %v", err)
		return model.Page{}, fmt.Errorf("%w: %w", repository.ErrFailedToFetch, err)
	}

	var items []item
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return model.Page{}, fmt.Errorf("%w: unmarshal items: %w", repository.ErrFailedToFetch, err)
	}

	page := model.Page{Notes: make([]model.Note, 0, len(items))}
	for _, it := range items {
		page.Notes = append(page.Notes, it.note())
	}
	if out.LastEvaluatedKey != nil {
		page.Last, err = EncodeCursor(out.LastEvaluatedKey)
		if err != nil {
			return model.Page{}, fmt.Errorf("%w: %w", repository.ErrFailedToFetch, err)
		}
	}
	return page, nil
}

func (r *implRepository) Create(ctx context.Context, opt repository.CreateNoteOptions) (string, error) {
	now := r.now().UTC()
	key := fmt.Sprintf("%020d-%s", now.UnixNano(), uuid.NewString())

	av, err := attributevalue.MarshalMap(item{
		PK:          partitionKey,
		SK:          sortPrefix + key,
		Title:       opt.Title,
		Description: opt.Description,
		Date:        opt.Date,
		Photo:       opt.Photo,
		Position:    opt.Position,
		UpdatedAt:   now.Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal item: %w", repository.ErrFailedToCreate, err)
	}

	cond, err := expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name("PK"))).
		Build()
	if err != nil {
		return "", fmt.Errorf("%w: build expression: %w", repository.ErrFailedToCreate, err)
	}

	if _, err := r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.table),
		Item:                     av,
		ConditionExpression:      cond.Condition(),
		ExpressionAttributeNames: cond.Names(),
	}); err != nil {
		r.l.Errorf(ctx, "note/repository/dynamo.Create: %v", err)
		return "", fmt.Errorf("%w: %w", repository.ErrFailedToCreate, err)
	}
	return key, nil
}

func (r *implRepository) Update(ctx context.Context, n model.Note) error {
	update := expression.Set(expression.Name("Title"), expression.Value(n.Title)).
		Set(expression.Name("Description"), expression.Value(n.Description)).
		Set(expression.Name("Date"), expression.Value(n.Date)).
		Set(expression.Name("Photo"), expression.Value(n.Photo)).
		Set(expression.Name("Position"), expression.Value(n.Position)).
		Set(expression.Name("UpdatedAt"), expression.Value(r.now().UTC().Format(time.RFC3339)))

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name("PK"))).
		Build()
	if err != nil {
		return fmt.Errorf("%w: build expression: %w", repository.ErrFailedToUpdate, err)
	}

	key, err := primaryKey(n.Key)
	if err != nil {
		return fmt.Errorf("%w: %w", repository.ErrFailedToUpdate, err)
	}

	_, err = r.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       key,
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionFailed(err) {
			return repository.ErrNotFound
		}
		r.l.Errorf(ctx, "note/repository/dynamo.Update: %v", err)
		return fmt.Errorf("%w: %w", repository.ErrFailedToUpdate, err)
	}
	return nil
}

func (r *implRepository) Delete(ctx context.Context, key string) error {
	cond, err := expression.NewBuilder().
		WithCondition(expression.AttributeExists(expression.Name("PK"))).
		Build()
	if err != nil {
		return fmt.Errorf("%w: build expression: %w", repository.ErrFailedToDelete, err)
	}

	pk, err := primaryKey(key)
	if err != nil {
		return fmt.Errorf("%w: %w", repository.ErrFailedToDelete, err)
	}

	_, err = r.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(r.table),
		Key:                      pk,
		ConditionExpression:      cond.Condition(),
		ExpressionAttributeNames: cond.Names(),
	})
	if err != nil {
		if isConditionFailed(err) {
			return repository.ErrNotFound
		}
		r.l.Errorf(ctx, "note/repository/dynamo.Delete: %v", err)
		return fmt.Errorf("%w: %w", repository.ErrFailedToDelete, err)
	}
	return nil
}

func (r *implRepository) GetNote(ctx context.Context, key string) (model.Note, error) {
	pk, err := primaryKey(key)
	if err != nil {
		return model.Note{}, fmt.Errorf("%w: %w", repository.ErrFailedToGet, err)
	}

	out, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       pk,
	})
	if err != nil {
		return model.Note{}, fmt.Errorf("%w: %w", repository.ErrFailedToGet, err)
	}
	if out.Item == nil {
		return model.Note{}, repository.ErrNotFound
	}

	var it item
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return model.Note{}, fmt.Errorf("%w: unmarshal item: %w", repository.ErrFailedToGet, err)
	}
	return it.note(), nil
}

func primaryKey(key string) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(keyAttrs{PK: partitionKey, SK: sortPrefix + key})
}

func isConditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// EncodeCursor creates a base64 cursor from DynamoDB's LastEvaluatedKey.
func EncodeCursor(lastEvaluatedKey map[string]types.AttributeValue) (model.Cursor, error) {
	var k keyAttrs
	if err := attributevalue.UnmarshalMap(lastEvaluatedKey, &k); err != nil {
		return "", fmt.Errorf("invalid last evaluated key: %w", err)
	}
	raw, err := json.Marshal(k)
	if err != nil {
		return "", err
	}
	return model.Cursor(base64.URLEncoding.EncodeToString(raw)), nil
}

// DecodeCursor decodes a cursor back to an ExclusiveStartKey.
func DecodeCursor(c model.Cursor) (map[string]types.AttributeValue, error) {
	raw, err := base64.URLEncoding.DecodeString(string(c))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrInvalidCursor, err)
	}

	var k keyAttrs
	if err := json.Unmarshal(raw, &k); err != nil || k.PK != partitionKey || !strings.HasPrefix(k.SK, sortPrefix) {
		return nil, fmt.Errorf("%w: %q", repository.ErrInvalidCursor, c)
	}
	return attributevalue.MarshalMap(k)
}
