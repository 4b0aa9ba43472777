package main

import (
	"album-catalog/internal"
	"album-catalog/internal/awsutil"
	"album-catalog/internal/catalog"
	"album-catalog/internal/dynamo"
	"album-catalog/internal/http"
	"album-catalog/internal/postgres"
	"album-catalog/internal/sns"
	"album-catalog/internal/sqs"
	"album-catalog/internal/users"
	"context"
	"log"
	"os"
	"syscall"
	"time"

	"cloud.google.com/go/compute/metadata"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/lifecycle"
	"github.com/twitsprout/tools/zap"
)

var version string

const (
	ingressSync  = "sync"
	ingressQueue = "queue"
	ingressTopic = "topic"
)

type variables struct {
	Addr               string        `required:"true" envconfig:"addr"`
	AppName            string        `required:"false" envconfig:"app_name" default:"album-catalog"`
	LogLevel           string        `required:"false" envconfig:"log_level"`
	AWSRegion          string        `required:"false" envconfig:"aws_region"`
	AWSAccessKey       string        `required:"false" envconfig:"aws_access_key"`
	AWSSecretKey       string        `required:"false" envconfig:"aws_secret_key"`
	DynamoEndpoint     string        `required:"false" envconfig:"dynamo_endpoint"`
	TableName          string        `required:"true" envconfig:"table_name"`
	RequestTimeout     time.Duration `required:"false" envconfig:"request_timeout" default:"30s"`
	PartialFailureMode string        `required:"false" envconfig:"partial_failure_mode" default:"ignore"`
	IngressMode        string        `required:"false" envconfig:"ingress_mode" default:"sync"`
	QueueURL           string        `required:"false" envconfig:"queue_url"`
	SQSEndpoint        string        `required:"false" envconfig:"sqs_endpoint"`
	TopicARN           string        `required:"false" envconfig:"topic_arn"`
	SNSEndpoint        string        `required:"false" envconfig:"sns_endpoint"`
	PostgresHost       string        `required:"false" envconfig:"postgres_host"`
	PostgresPort       int           `required:"false" envconfig:"postgres_port"`
	PostgresDB         string        `required:"false" envconfig:"postgres_db"`
	PostgresUser       string        `required:"false" envconfig:"postgres_user"`
	PostgresPass       string        `required:"false" envconfig:"postgres_pass"`
}

var v variables

func init() {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	if metadata.OnGCE() {
		port := os.Getenv("PORT")
		err := os.Setenv("ADDR", ":"+port)
		if err != nil {
			log.Fatal(err)
		}
	}

	envconfig.MustProcess("album-catalog", &v)
	if v.LogLevel == "" {
		v.LogLevel = "info"
	}
}

func main() {
	logger := zap.New(v.AppName, version, os.Stdout)
	if err := logger.SetLevel(v.LogLevel); err != nil {
		logger.Error("failed to set log level", "error", err.Error())
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

	svc := catalog.New(store, logger)
	svc.PartialMode, err = catalog.ParsePartialFailureMode(v.PartialFailureMode)
	if err != nil {
		logger.Error("invalid partial failure mode", "error", err.Error())
		os.Exit(1)
	}

	lc, ctx := lifecycle.New(ctx, logger)
	lc.Start("album-catalog root context", func() error {
		<-ctx.Done()
		return ctx.Err()
	})

	h := http.Handler{
		Logger:         logger,
		Version:        version,
		AppName:        v.AppName,
		Catalog:        svc,
		RequestTimeout: v.RequestTimeout,
	}

	pub, err := newPublisher(v, awsCfg)
	if err != nil {
		logger.Error("failed to configure ingress", "mode", v.IngressMode, "error", err.Error())
		os.Exit(1)
	}
	h.Publisher = pub

	if v.PostgresHost != "" {
		pg := newPostgres(v)
		defer pg.Close()
		h.Users = users.New(pg, logger)
	}

	logger.Info("starting album catalog",
		"addr", v.Addr,
		"table", v.TableName,
		"ingress_mode", v.IngressMode,
		"partial_failure_mode", v.PartialFailureMode,
		"users_enabled", h.Users != nil,
	)

	server := httputils.NewServer(v.Addr, h.Handler())
	lc.StartServer(server)
	lc.StartSignals(syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	_ = lc.Wait(15 * time.Second)
}

// newPublisher returns the async transport for the ingress mode, or nil when
// requests are applied synchronously.
func newPublisher(v variables, cfg aws.Config) (internal.Publisher, error) {
	switch v.IngressMode {
	case ingressSync, "":
		return nil, nil
	case ingressQueue:
		if v.QueueURL == "" {
			return nil, errors.New("queue ingress requires QUEUE_URL")
		}
		return sqs.NewPublisher(sqs.NewClient(cfg, v.SQSEndpoint), v.QueueURL), nil
	case ingressTopic:
		if v.TopicARN == "" {
			return nil, errors.New("topic ingress requires TOPIC_ARN")
		}
		return sns.NewPublisher(sns.NewClient(cfg, v.SNSEndpoint), v.TopicARN), nil
	default:
		return nil, errors.Errorf("unknown ingress mode %q", v.IngressMode)
	}
}

func newPostgres(v variables) *postgres.Postgres {
	pgConfig := postgres.Config{
		Host:       v.PostgresHost,
		Name:       v.PostgresDB,
		Password:   v.PostgresPass,
		Username:   v.PostgresUser,
		DisableSSL: true,
	}
	// Only use a Postgres port if one was provided
	if v.PostgresPort > 0 {
		pgConfig.Port = v.PostgresPort
	}
	pg, err := postgres.New(pgConfig)
	if err != nil {
		panic(err)
	}
	return pg
}
