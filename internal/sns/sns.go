// Package sns publishes catalog operations to a topic for fan-out.
package sns

import (
	"album-catalog/internal"
	"album-catalog/internal/awsutil"
	cl "album-catalog/pkg/catelog"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// API is the subset of the SNS client used by the Publisher.
type API interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

var _ API = (*sns.Client)(nil)
var _ internal.Publisher = (*Publisher)(nil)

// Publisher publishes the raw body with the operation in the "http" message
// attribute, which subscriptions filter on.
type Publisher struct {
	api      API
	topicARN string
}

// NewClient builds an SNS client, optionally against a custom endpoint.
func NewClient(cfg aws.Config, endpoint string) *sns.Client {
	return sns.NewFromConfig(cfg, func(o *sns.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

func NewPublisher(api API, topicARN string) *Publisher {
	return &Publisher{api: api, topicARN: topicARN}
}

func (p *Publisher) Publish(ctx context.Context, op cl.Operation, body []byte) (string, error) {
	out, err := p.api.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			cl.OperationAttribute: {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(op)),
			},
		},
	})
	if err != nil {
		return "", awsutil.Error(err, "publish message")
	}
	return aws.ToString(out.MessageId), nil
}
