package minio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"marketing-service/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioClient struct {
	client        *minio.Client
	publicBaseURL string
}

var Storage = struct {
	ProjectFiles string
	SiteAssets   string
}{
	ProjectFiles: "project-files",
	SiteAssets:   "site-assets",
}

func NewMinioClient(cfg config.MinioConfig) (*MinioClient, error) {
	isSecure, err := strconv.ParseBool(cfg.MinioSecure)
	if err != nil {
		log.Printf("Invalid value for MinIO secure flag: %v. Defaulting to false.", err)
		isSecure = false
	}
	minioClient, err := minio.New(cfg.MinioUrl, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: isSecure,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to MinIO client: %w", err)
	}

	for _, bucket := range []string{Storage.ProjectFiles, Storage.SiteAssets} {
		if err := ensureBucket(minioClient, bucket, cfg.MinioLocation); err != nil {
			return nil, err
		}
	}

	// Attachment and asset links are handed out as plain URLs, so both
	// buckets carry a public read-only policy.
	for _, bucket := range []string{Storage.ProjectFiles, Storage.SiteAssets} {
		if err := SetPublicBucketPolicy(minioClient, bucket); err != nil {
			log.Printf("Failed to set public policy for bucket %s: %v", bucket, err)
			return nil, err
		}
	}

	publicBase := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if publicBase == "" {
		scheme := "http"
		if isSecure {
			scheme = "https"
		}
		publicBase = fmt.Sprintf("%s://%s", scheme, cfg.MinioUrl)
	}

	return &MinioClient{
		client:        minioClient,
		publicBaseURL: publicBase,
	}, nil
}

func SetPublicBucketPolicy(minioClient *minio.Client, bucketName string) error {
	policy := map[string]any{
		"Version": "2012-10-17",
		"Statement": []map[string]any{
			{
				"Action":    []string{"s3:GetObject"},
				"Effect":    "Allow",
				"Principal": map[string]any{"AWS": []string{"*"}},
				"Resource":  []string{fmt.Sprintf("arn:aws:s3:::%s/*", bucketName)},
			},
		},
	}

	policyBytes, err := json.Marshal(policy)
	if err != nil {
		return fmt.Errorf("error marshalling policy: %w", err)
	}

	err = minioClient.SetBucketPolicy(context.Background(), bucketName, string(policyBytes))
	if err != nil {
		return fmt.Errorf("error setting bucket policy: %w", err)
	}

	return nil
}

func ensureBucket(client *minio.Client, bucketName, location string) error {
	ctx := context.Background()

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		log.Printf("error checking bucket existence: %v", err)
		return err
	}
	if !exists {
		err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
		if err != nil {
			log.Printf("error creating bucket %s: %v", bucketName, err)
			return err
		}
		log.Printf("Bucket created successfully: %s", bucketName)
	}

	return nil
}

// UploadObject stores the object at the given path and returns its public URL.
func (mc *MinioClient) UploadObject(ctx context.Context, bucket, objectPath, contentType string, reader io.Reader, size int64) (string, error) {
	_, err := mc.client.PutObject(ctx, bucket, objectPath, reader, size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", objectPath, err)
	}
	return mc.PublicURL(bucket, objectPath), nil
}

func (mc *MinioClient) PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("%s/%s/%s", mc.publicBaseURL, bucket, objectPath)
}

func (mc *MinioClient) GetObject(ctx context.Context, bucket, objectPath string) (io.Reader, error) {
	object, err := mc.client.GetObject(ctx, bucket, objectPath, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return object, nil
}

func (mc *MinioClient) DeleteObject(ctx context.Context, bucket, objectPath string) error {
	if objectPath == "" {
		return fmt.Errorf("objectPath cannot be empty")
	}
	err := mc.client.RemoveObject(ctx, bucket, objectPath, minio.RemoveObjectOptions{})
	if err != nil {
		log.Printf("failed to delete object from minio: %v", err)
		return fmt.Errorf("failed to delete object %s: %w", objectPath, err)
	}
	return nil
}

// DeleteFolder removes every object under the given prefix.
func (mc *MinioClient) DeleteFolder(ctx context.Context, bucket, folderPath string) error {
	if !strings.HasSuffix(folderPath, "/") {
		folderPath += "/"
	}

	objectsCh := mc.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    folderPath,
		Recursive: true,
	})

	for object := range objectsCh {
		if object.Err != nil {
			return object.Err
		}
		if err := mc.client.RemoveObject(ctx, bucket, object.Key, minio.RemoveObjectOptions{}); err != nil {
			return err
		}
	}
	return nil
}
