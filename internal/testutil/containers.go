package testutil

import (
	"context"
	"testing"

	"github.com/ilkin0/mediagw/internal/config"
	"github.com/ilkin0/mediagw/internal/storage"
	"github.com/minio/minio-go/v7"
	"github.com/testcontainers/testcontainers-go"
	miniocontainer "github.com/testcontainers/testcontainers-go/modules/minio"
)

type TestContainers struct {
	MinioContainer *miniocontainer.MinioContainer
	MinioClient    *storage.MinIOClient
	Cleanup        func()
}

// SetupMinIO starts a throwaway MinIO server. Skipped under -short.
func SetupMinIO(t *testing.T) *TestContainers {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	minioContainer, err := miniocontainer.Run(ctx,
		"minio/minio:latest",
		miniocontainer.WithUsername("minioadmin"),
		miniocontainer.WithPassword("minioadmin"),
	)
	if err != nil {
		t.Fatalf("Failed to start minio container: %v", err)
	}

	endpoint, err := minioContainer.ConnectionString(ctx)
	if err != nil {
		minioContainer.Terminate(ctx)
		t.Fatalf("Failed to get minio endpoint: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(ctx, config.MinIO{
		Endpoint:   endpoint,
		AccessKey:  "minioadmin",
		SecretKey:  "minioadmin",
		BucketName: "mediagw-test",
	})
	if err != nil {
		minioContainer.Terminate(ctx)
		t.Fatalf("Failed to initialize MinIO client: %v", err)
	}

	cleanup := func() {
		CleanMinIO(ctx, minioClient)
		if err := testcontainers.TerminateContainer(minioContainer); err != nil {
			t.Logf("failed to terminate minio container: %v", err)
		}
	}

	return &TestContainers{
		MinioContainer: minioContainer,
		MinioClient:    minioClient,
		Cleanup:        cleanup,
	}
}

func CleanMinIO(ctx context.Context, minioClient *storage.MinIOClient) {
	objectsCh := minioClient.Client.ListObjects(ctx, minioClient.BucketName, minio.ListObjectsOptions{
		Recursive: true,
	})
	for object := range objectsCh {
		if object.Err != nil {
			continue
		}
		minioClient.Client.RemoveObject(ctx, minioClient.BucketName, object.Key, minio.RemoveObjectOptions{})
	}
}
