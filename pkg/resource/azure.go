package resource

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

// AzureAPI is the slice of the azblob client the blob resource needs. It
// allows mocking in tests.
type AzureAPI interface {
	DownloadStream(ctx context.Context, containerName, blobName string, o *azblob.DownloadStreamOptions) (azblob.DownloadStreamResponse, error)
}

// NewAzureClient builds an Azure Storage client from a connection string.
func NewAzureClient(connectionString string) (*azblob.Client, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("creating Azure client: %w", err)
	}
	return client, nil
}

// AzureBlob is a blob in an Azure Storage container. Like S3Object, Open
// returns a lazy ReadSeeker backed by ranged downloads.
type AzureBlob struct {
	Client    AzureAPI
	Container string
	Blob      string
}

func (b *AzureBlob) Name() string {
	return fmt.Sprintf("az://%s/%s", b.Container, b.Blob)
}

// Size reports the blob's byte size. The download response carries the
// content length before any of the body is consumed, so the body is closed
// unread.
func (b *AzureBlob) Size(ctx context.Context) (uint64, error) {
	resp, err := b.Client.DownloadStream(ctx, b.Container, b.Blob, nil)
	if err != nil {
		return 0, err
	}
	if resp.Body != nil {
		resp.Body.Close()
	}
	if resp.ContentLength == nil || *resp.ContentLength < 0 {
		return 0, fmt.Errorf("%s: unknown content length", b.Name())
	}
	return uint64(*resp.ContentLength), nil
}

func (b *AzureBlob) Open(ctx context.Context) (io.ReadCloser, error) {
	size, err := b.Size(ctx)
	if err != nil {
		return nil, err
	}
	return &rangeReader{
		ctx:  ctx,
		size: int64(size),
		open: b.openAt,
	}, nil
}

func (b *AzureBlob) openAt(ctx context.Context, off int64) (io.ReadCloser, error) {
	resp, err := b.Client.DownloadStream(ctx, b.Container, b.Blob, &azblob.DownloadStreamOptions{
		Range: blob.HTTPRange{Offset: off},
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
