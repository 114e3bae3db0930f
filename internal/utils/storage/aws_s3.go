package storage

import (
	"context"
	"fmt"
	"mime/multipart"

	"tastebook/internal/utils"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type AwsS3 interface {
	UploadFile(ctx context.Context, key string, file *multipart.FileHeader) (string, error)
}

type awsS3 struct {
	bucket string
	region string
	client *s3.Client
}

func NewAwsS3() AwsS3 {
	region := utils.GetConfig("AWS_S3_REGION")
	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to load AWS config: %v", err))
	}

	return &awsS3{
		bucket: utils.GetConfig("AWS_S3_BUCKET"),
		region: region,
		client: s3.NewFromConfig(cfg),
	}
}

func (a *awsS3) UploadFile(ctx context.Context, key string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awsv2.String(a.bucket),
		Key:         awsv2.String(key),
		Body:        src,
		ContentType: awsv2.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, key), nil
}
