// Package awsutil builds the shared AWS SDK configuration.
package awsutil

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/pkg/errors"
)

const defaultRegion = "us-east-1"

// Config holds the connection settings shared by every AWS client.
// Static credentials are only used when both keys are set, otherwise the
// default provider chain applies.
type Config struct {
	Region    string
	AccessKey string
	SecretKey string
}

// Load resolves an aws.Config from c.
func Load(ctx context.Context, c Config) (aws.Config, error) {
	region := c.Region
	if region == "" {
		region = defaultRegion
	}
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if c.AccessKey != "" && c.SecretKey != "" {
		creds := credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")
		opts = append(opts, config.WithCredentialsProvider(creds))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, errors.Wrap(err, "load aws config")
	}
	return cfg, nil
}
