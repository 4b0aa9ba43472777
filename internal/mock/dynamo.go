package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type dynamoKey struct {
	artist string
	album  string
}

// DynamoDB is an in-memory single-table stand-in for the DynamoDB client. It
// understands the (Artist, Album) key schema, pages Query and Scan results by
// PageSize, and lets tests inject failures.
type DynamoDB struct {
	// PageSize limits the items per Query/Scan page. Zero means unlimited.
	PageSize int
	// UnprocessedFn, if set, picks which delete requests of a
	// BatchWriteItem call are reported back as unprocessed. call is 1-based.
	UnprocessedFn func(call int, reqs []types.WriteRequest) []types.WriteRequest
	// ErrFn, if set, is consulted before every call; a non-nil result is
	// returned as the call's error.
	ErrFn func(op string) error

	mu         sync.Mutex
	items      map[dynamoKey]map[string]types.AttributeValue
	batchCalls [][]types.WriteRequest
}

// NewDynamoDB returns an empty table.
func NewDynamoDB() *DynamoDB {
	return &DynamoDB{items: map[dynamoKey]map[string]types.AttributeValue{}}
}

// Len returns the number of stored items.
func (d *DynamoDB) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}

// BatchCalls returns the delete requests of every BatchWriteItem call.
func (d *DynamoDB) BatchCalls() [][]types.WriteRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]types.WriteRequest, len(d.batchCalls))
	copy(out, d.batchCalls)
	return out
}

// PutRaw stores an item without any validation, e.g. a corrupt one.
func (d *DynamoDB) PutRaw(item map[string]types.AttributeValue) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items[keyOfItem(item)] = item
}

func (d *DynamoDB) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if err := d.fail(ctx, "PutItem"); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items[keyOfItem(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (d *DynamoDB) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if err := d.fail(ctx, "DeleteItem"); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	k := keyOfItem(in.Key)
	prev, ok := d.items[k]
	delete(d.items, k)
	out := &dynamodb.DeleteItemOutput{}
	if ok && in.ReturnValues == types.ReturnValueAllOld {
		out.Attributes = prev
	}
	return out, nil
}

func (d *DynamoDB) Query(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if err := d.fail(ctx, "Query"); err != nil {
		return nil, err
	}
	artist := stringValue(in.ExpressionAttributeValues[":artist"])
	items, last := d.page(func(k dynamoKey) bool { return k.artist == artist }, in.ExclusiveStartKey)
	return &dynamodb.QueryOutput{Items: items, Count: int32(len(items)), LastEvaluatedKey: last}, nil
}

func (d *DynamoDB) Scan(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if err := d.fail(ctx, "Scan"); err != nil {
		return nil, err
	}
	items, last := d.page(func(dynamoKey) bool { return true }, in.ExclusiveStartKey)
	return &dynamodb.ScanOutput{Items: items, Count: int32(len(items)), LastEvaluatedKey: last}, nil
}

func (d *DynamoDB) BatchWriteItem(ctx context.Context, in *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	if err := d.fail(ctx, "BatchWriteItem"); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	out := &dynamodb.BatchWriteItemOutput{UnprocessedItems: map[string][]types.WriteRequest{}}
	for table, reqs := range in.RequestItems {
		d.batchCalls = append(d.batchCalls, reqs)
		var skipped []types.WriteRequest
		if d.UnprocessedFn != nil {
			skipped = d.UnprocessedFn(len(d.batchCalls), reqs)
		}
		skip := map[dynamoKey]bool{}
		for _, r := range skipped {
			skip[keyOfItem(r.DeleteRequest.Key)] = true
		}
		for _, r := range reqs {
			if r.DeleteRequest == nil {
				continue
			}
			k := keyOfItem(r.DeleteRequest.Key)
			if skip[k] {
				continue
			}
			delete(d.items, k)
		}
		if len(skipped) > 0 {
			out.UnprocessedItems[table] = skipped
		}
	}
	return out, nil
}

func (d *DynamoDB) fail(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.ErrFn != nil {
		return d.ErrFn(op)
	}
	return nil
}

func (d *DynamoDB) page(match func(dynamoKey) bool, start map[string]types.AttributeValue) ([]map[string]types.AttributeValue, map[string]types.AttributeValue) {
	d.mu.Lock()
	defer d.mu.Unlock()

	keys := make([]dynamoKey, 0, len(d.items))
	for k := range d.items {
		if match(k) {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].artist != keys[j].artist {
			return keys[i].artist < keys[j].artist
		}
		return keys[i].album < keys[j].album
	})

	if len(start) > 0 {
		sk := keyOfItem(start)
		idx := sort.Search(len(keys), func(i int) bool {
			return keys[i].artist > sk.artist || (keys[i].artist == sk.artist && keys[i].album > sk.album)
		})
		keys = keys[idx:]
	}

	var last map[string]types.AttributeValue
	if d.PageSize > 0 && len(keys) > d.PageSize {
		keys = keys[:d.PageSize]
		lk := keys[len(keys)-1]
		last = map[string]types.AttributeValue{
			"Artist": &types.AttributeValueMemberS{Value: lk.artist},
			"Album":  &types.AttributeValueMemberS{Value: lk.album},
		}
	}

	items := make([]map[string]types.AttributeValue, 0, len(keys))
	for _, k := range keys {
		items = append(items, d.items[k])
	}
	return items, last
}

func keyOfItem(item map[string]types.AttributeValue) dynamoKey {
	return dynamoKey{artist: stringValue(item["Artist"]), album: stringValue(item["Album"])}
}

func stringValue(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}
