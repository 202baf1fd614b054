package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// S3StorageService stores uploads in an S3-compatible bucket. A custom
// endpoint switches to path-style addressing (MinIO, R2, ...).
type S3StorageService struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	baseURL string
}

func NewS3StorageService(cfg S3Config) *S3StorageService {
	options := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKeyID != "" {
		accessKeyID, secret := cfg.AccessKeyID, cfg.SecretAccessKey
		options.Credentials = aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     accessKeyID,
				SecretAccessKey: secret,
				Source:          "leefit-env",
			}, nil
		})
	}

	baseURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	if endpoint := strings.TrimRight(cfg.Endpoint, "/"); endpoint != "" {
		options.BaseEndpoint = aws.String(endpoint)
		options.UsePathStyle = true
		baseURL = endpoint + "/" + cfg.Bucket
	}

	client := s3.New(options)
	return &S3StorageService{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}
}

func (s *S3StorageService) UploadFile(ctx context.Context, body io.Reader, filename string, folder string) (string, error) {
	content, err := readUpload(body)
	if err != nil {
		return "", err
	}

	key := path.Join(strings.Trim(folder, "/"), filename)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(http.DetectContentType(content)),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}

	return s.baseURL + "/" + key, nil
}

func (s *S3StorageService) DeleteFile(ctx context.Context, fileURL string) error {
	key, err := s.keyFromURL(fileURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete failed: %w", err)
	}
	return nil
}

func (s *S3StorageService) GetSignedURL(ctx context.Context, fileURL string) (string, error) {
	key, err := s.keyFromURL(fileURL)
	if err != nil {
		return "", err
	}

	presigned, err := s.presign.PresignGetObject(ctx,
		&s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		},
		s3.WithPresignExpires(signedURLExpires),
	)
	if err != nil {
		return "", fmt.Errorf("s3 presign failed: %w", err)
	}
	return presigned.URL, nil
}

func (s *S3StorageService) keyFromURL(fileURL string) (string, error) {
	if !strings.HasPrefix(fileURL, s.baseURL+"/") {
		return "", fmt.Errorf("file url does not belong to configured bucket")
	}
	key, err := url.PathUnescape(strings.TrimPrefix(fileURL, s.baseURL+"/"))
	if err != nil {
		return "", fmt.Errorf("parse file url: %w", err)
	}
	return key, nil
}
