package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestContainers are the backing services of an integration run
type TestContainers struct {
	DBContainer    testcontainers.Container
	MinIOContainer testcontainers.Container

	DBHost        string
	DBPort        string
	DBDatabase    string
	DBUser        string
	DBPassword    string
	MinIOEndpoint string
	MinIOAccess   string
	MinIOSecret   string
}

// Terminate stops all started containers
func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.MinIOContainer != nil {
		if err := tc.MinIOContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate MinIO: %v", err)
		}
	}
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate PostgreSQL: %v", err)
		}
	}
}

// Env returns the environment a service instance needs to use the containers
func (tc *TestContainers) Env() map[string]string {
	return map[string]string{
		"DB_TYPE":          "postgres",
		"DB_HOST":          tc.DBHost,
		"DB_PORT":          tc.DBPort,
		"DB_DATABASE":      tc.DBDatabase,
		"DB_USER":          tc.DBUser,
		"DB_PASSWORD":      tc.DBPassword,
		"STORAGE_BACKEND":  "minio",
		"MINIO_ENDPOINT":   tc.MinIOEndpoint,
		"MINIO_ACCESS_KEY": tc.MinIOAccess,
		"MINIO_SECRET_KEY": tc.MinIOSecret,
	}
}

// CreateAllTestContainers starts PostgreSQL and MinIO.
// Images and credentials can be overridden with TC_* environment variables.
// t may be nil when called outside of a test.
func CreateAllTestContainers(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	tc := &TestContainers{
		DBDatabase:  getEnv("TC_DB_DATABASE", "shopfloor"),
		DBUser:      getEnv("TC_DB_USER", "shopfloor"),
		DBPassword:  getEnv("TC_DB_PASSWORD", "shopfloor"),
		MinIOAccess: getEnv("TC_MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecret: getEnv("TC_MINIO_SECRET_KEY", "minioadmin"),
	}

	pgPort, err := nat.NewPort("tcp", "5432")
	if err != nil {
		return nil, err
	}
	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        getEnv("TC_DB_IMAGE", "postgres:16-alpine"),
			ExposedPorts: []string{string(pgPort)},
			Env: map[string]string{
				"POSTGRES_DB":       tc.DBDatabase,
				"POSTGRES_USER":     tc.DBUser,
				"POSTGRES_PASSWORD": tc.DBPassword,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start PostgreSQL: %w", err)
	}
	tc.DBContainer = dbContainer

	if tc.DBHost, err = dbContainer.Host(ctx); err != nil {
		tc.Terminate(t)
		return nil, err
	}
	mapped, err := dbContainer.MappedPort(ctx, pgPort)
	if err != nil {
		tc.Terminate(t)
		return nil, err
	}
	tc.DBPort = mapped.Port()
	logMessage(t, "PostgreSQL listening on %s:%s", tc.DBHost, tc.DBPort)

	minioPort, err := nat.NewPort("tcp", "9000")
	if err != nil {
		tc.Terminate(t)
		return nil, err
	}
	minioContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        getEnv("TC_MINIO_IMAGE", "minio/minio:latest"),
			ExposedPorts: []string{string(minioPort)},
			Cmd:          []string{"server", "/data"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     tc.MinIOAccess,
				"MINIO_ROOT_PASSWORD": tc.MinIOSecret,
			},
			WaitingFor: wait.ForHTTP("/minio/health/ready").
				WithPort(minioPort).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		tc.Terminate(t)
		return nil, fmt.Errorf("failed to start MinIO: %w", err)
	}
	tc.MinIOContainer = minioContainer

	minioHost, err := minioContainer.Host(ctx)
	if err != nil {
		tc.Terminate(t)
		return nil, err
	}
	mapped, err = minioContainer.MappedPort(ctx, minioPort)
	if err != nil {
		tc.Terminate(t)
		return nil, err
	}
	tc.MinIOEndpoint = fmt.Sprintf("http://%s:%s", minioHost, mapped.Port())
	logMessage(t, "MinIO listening on %s", tc.MinIOEndpoint)

	return tc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
