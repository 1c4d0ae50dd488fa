package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storage-bridge/core/storage"
	"storage-bridge/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{"BareEndpoint", storage.Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "bridge-assets"}},
		{"HTTPScheme", storage.Config{Endpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s"}},
		{"HTTPSScheme", storage.Config{Endpoint: "https://s3.amazonaws.com", UseSSL: true, Region: "us-east-1"}},
		{"ZeroTimeoutUsesDefault", storage.Config{Endpoint: "localhost:9000", TimeoutSeconds: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestObjectExists(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		info    minio.ObjectInfo
		err     error
		want    bool
		wantErr bool
	}{
		{"Present", minio.ObjectInfo{Key: "catalog.json", LastModified: time.Now()}, nil, true, false},
		{"MissingKey", minio.ObjectInfo{}, mocks.NotFound("catalog.json"), false, false},
		{"MissingBucket", minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchBucket"}, false, false},
		{"Unreachable", minio.ObjectInfo{}, errors.New("connection refused"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.Client)
			client.On("StatObject", mock.Anything, "bucket", "catalog.json", mock.Anything).Return(tt.info, tt.err)

			got, err := storage.ObjectExists(ctx, client, "bucket", "catalog.json")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
