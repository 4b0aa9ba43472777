package main

import (
	"album-catalog/internal/awsutil"
	"album-catalog/internal/dynamo"
	"album-catalog/internal/sqs"
	"album-catalog/internal/worker"
	cl "album-catalog/pkg/catelog"
	"context"
	"os"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/lifecycle"
	"github.com/twitsprout/tools/queue"
	"github.com/twitsprout/tools/zap"
)

var version string

type variables struct {
	Addr              string        `required:"false" envconfig:"addr"`
	AppName           string        `required:"false" envconfig:"app_name" default:"album-catalog-worker"`
	LogLevel          string        `required:"false" envconfig:"log_level" default:"info"`
	AWSRegion         string        `required:"false" envconfig:"aws_region"`
	AWSAccessKey      string        `required:"false" envconfig:"aws_access_key"`
	AWSSecretKey      string        `required:"false" envconfig:"aws_secret_key"`
	DynamoEndpoint    string        `required:"false" envconfig:"dynamo_endpoint"`
	TableName         string        `required:"true" envconfig:"table_name"`
	QueueURL          string        `required:"true" envconfig:"queue_url"`
	SQSEndpoint       string        `required:"false" envconfig:"sqs_endpoint"`
	QueueOperation    string        `required:"false" envconfig:"queue_operation"`
	NumWorkers        int           `required:"false" envconfig:"num_workers" default:"4"`
	VisibilityTimeout time.Duration `required:"false" envconfig:"visibility_timeout" default:"30s"`
	WaitTime          time.Duration `required:"false" envconfig:"wait_time" default:"20s"`
	MessageTimeout    time.Duration `required:"false" envconfig:"message_timeout" default:"30s"`
}

var v variables

func init() {
	_ = godotenv.Load()
	envconfig.MustProcess("album-catalog", &v)
}

func main() {
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

	ctx := context.Background()
	awsCfg, err := awsutil.Load(ctx, awsutil.Config{
		Region:    v.AWSRegion,
		AccessKey: v.AWSAccessKey,
		SecretKey: v.AWSSecretKey,
	})
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

	consumer := queue.NewConsumer(v.QueueURL, sqs.New(sqs.NewClient(awsCfg, v.SQSEndpoint))).
		WithNumWorkers(v.NumWorkers).
		WithVisibilityTimeout(v.VisibilityTimeout).
		WithWaitTime(v.WaitTime).
		WithErrHandler(func(err error) {
			logger.Error("queue error", "queue_url", v.QueueURL, "details", err.Error())
		})

	lc, ctx := lifecycle.New(ctx, logger)
	lc.Start("album-catalog queue consumer", func() error {
		return consumer.Consume(ctx, w)
	})

	if v.Addr != "" {
		r := mux.NewRouter()
		r.NotFoundHandler = httputils.NotFoundHandler(logger)
		versionHandler := httputils.VersionHandler(v.AppName, version, logger)
		r.Methods("GET").Path("/").Name("root").Handler(versionHandler)
		r.Methods("GET").Path("/version").Name("version").Handler(versionHandler)
		lc.StartServer(httputils.NewServer(v.Addr, r))
	}

	logger.Info("starting album catalog worker",
		"queue_url", v.QueueURL,
		"operation", string(op),
		"workers", v.NumWorkers,
	)
	lc.StartSignals(syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	_ = lc.Wait(15 * time.Second)
}
