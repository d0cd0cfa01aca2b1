package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gosimple/slug"
)

var mediaClient *s3.Client
var mediaBucket string
var cdnBaseURL string

// InitMediaStore configures the R2 bucket that holds sound-point audio and
// images. Optional: when the R2 env vars are absent the store stays nil and
// MediaConfigured reports false.
func InitMediaStore() error {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("R2_ACCESS_KEY_SECRET")
	mediaBucket = os.Getenv("R2_BUCKET_NAME")
	if accountID == "" || accessKeyID == "" || accessKeySecret == "" || mediaBucket == "" {
		return nil
	}

	cdnBaseURL = os.Getenv("CDN_BASE_URL")
	if cdnBaseURL == "" {
		cdnBaseURL = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
				}, nil
			}),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to load media store config: %w", err)
	}

	mediaClient = s3.NewFromConfig(cfg)
	return nil
}

// MediaConfigured reports whether uploads can be served.
func MediaConfigured() bool { return mediaClient != nil }

// MediaKey builds a stable object key from a folder and an original
// filename, e.g. ("audio", "Fuente Plaza.mp3") -> "audio/fuente-plaza.mp3".
func MediaKey(folder, filename string) string {
	ext := filepath.Ext(filename)
	base := slug.Make(filename[:len(filename)-len(ext)])
	return fmt.Sprintf("%s/%s%s", folder, base, ext)
}

// UploadMedia uploads a multipart file and returns its public CDN URL.
func UploadMedia(ctx context.Context, fileHeader *multipart.FileHeader, key string) (string, error) {
	if mediaClient == nil {
		return "", fmt.Errorf("media store is not configured")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err = mediaClient.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(mediaBucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload media: %w", err)
	}

	return fmt.Sprintf("%s/%s", cdnBaseURL, key), nil
}
