// Where: cli/internal/infra/provider/aws_factory.go
// What: AWS client factory for Lambda and S3.
// Why: Encapsulate SDK configuration for cloud and local endpoints.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/poruru-code/sls-cli/internal/domain/service"
)

const localDummyCredential = "dummy"

// ClientConfig selects region, credentials, and endpoint for a client.
// Local marks a local emulator endpoint, which gets dummy credentials unless
// explicit ones are given.
type ClientConfig struct {
	Region      string
	Profile     string
	Endpoint    string
	Local       bool
	Credentials *service.Credentials
}

// S3API is the subset of the S3 client used for payload files.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type ClientFactory interface {
	Lambda(ctx context.Context, cfg ClientConfig) (LambdaAPI, error)
	S3(ctx context.Context, cfg ClientConfig) (S3API, error)
}

// NewClientFactory returns the SDK-backed ClientFactory.
func NewClientFactory() ClientFactory {
	return awsClientFactory{}
}

type awsClientFactory struct{}

func (awsClientFactory) Lambda(ctx context.Context, cfg ClientConfig) (LambdaAPI, error) {
	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return lambda.NewFromConfig(awsCfg, func(options *lambda.Options) {
		if cfg.Endpoint != "" {
			options.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

func (awsClientFactory) S3(ctx context.Context, cfg ClientConfig) (S3API, error) {
	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		if cfg.Endpoint != "" {
			options.BaseEndpoint = aws.String(cfg.Endpoint)
			options.UsePathStyle = true
		}
	}), nil
}

func loadAWSConfig(ctx context.Context, cfg ClientConfig) (aws.Config, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, configOptions(cfg)...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}

func configOptions(cfg ClientConfig) []func(*config.LoadOptions) error {
	var opts []func(*config.LoadOptions) error
	if region := strings.TrimSpace(cfg.Region); region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	switch {
	case cfg.Credentials != nil:
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Credentials.AccessKeyID,
			cfg.Credentials.SecretAccessKey,
			cfg.Credentials.SessionToken,
		)))
	case cfg.Local:
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(localDummyCredential, localDummyCredential, ""),
		))
	case strings.TrimSpace(cfg.Profile) != "":
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}
	return opts
}
