// Package s3 grants public read on stored objects through per-object ACLs,
// for S3 providers that support them.
package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type Config struct {
	AccessKey    string
	SecretKey    string
	Region       string `yaml:"region"`
	BaseEndpoint string `yaml:"base_endpoint"`
	UsePathStyle bool   `yaml:"use_path_style"`
}

type ACLVisibility struct {
	client *s3.Client
}

func NewACLVisibility(ctx context.Context, cfg Config) (*ACLVisibility, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &ACLVisibility{client: client}, nil
}

func (v *ACLVisibility) MakePublic(ctx context.Context, bucket, key string) error {
	_, err := v.client.PutObjectAcl(ctx, &s3.PutObjectAclInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		ACL:    types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return fmt.Errorf("put object acl: %w", err)
	}

	return nil
}
