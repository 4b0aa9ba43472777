package main

import (
	"album-catalog/internal/awsutil"
	"album-catalog/internal/dynamo"
	"album-catalog/internal/worker"
	cl "album-catalog/pkg/catelog"
	"context"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/kelseyhightower/envconfig"
	"github.com/twitsprout/tools/zap"
)

var version string

type variables struct {
	AppName        string        `required:"false" envconfig:"app_name" default:"album-catalog-lambda"`
	LogLevel       string        `required:"false" envconfig:"log_level" default:"info"`
	AWSRegion      string        `required:"false" envconfig:"aws_region"`
	DynamoEndpoint string        `required:"false" envconfig:"dynamo_endpoint"`
	TableName      string        `required:"true" envconfig:"table_name"`
	QueueOperation string        `required:"false" envconfig:"queue_operation"`
	MessageTimeout time.Duration `required:"false" envconfig:"message_timeout" default:"30s"`
}

func main() {
	var v variables
	envconfig.MustProcess("album-catalog", &v)

	logger := zap.New(v.AppName, version, os.Stdout)
	if err := logger.SetLevel(v.LogLevel); err != nil {
		logger.Error("failed to set log level", "error", err.Error())
	}

	var op cl.Operation
	if v.QueueOperation != "" {
		parsed, err := cl.ParseOperation(v.QueueOperation)
		if err != nil {
			logger.Error("invalid queue operation", "error", err.Error())
			os.Exit(1)
		}
		op = parsed
	}

	// Credentials come from the function's execution role.
	awsCfg, err := awsutil.Load(context.Background(), awsutil.Config{Region: v.AWSRegion})
	if err != nil {
		logger.Error("failed to load aws config", "error", err.Error())
		os.Exit(1)
	}
	store, err := dynamo.New(awsCfg, dynamo.Config{TableName: v.TableName, Endpoint: v.DynamoEndpoint}, logger)
	if err != nil {
		logger.Error("failed to create album store", "error", err.Error())
		os.Exit(1)
	}
	w := worker.New(worker.NewCatalog(store, logger), logger, op)
	w.Timeout = v.MessageTimeout
	lambda.Start(w.HandleSQSEvent)
}
