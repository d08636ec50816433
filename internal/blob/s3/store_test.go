package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-fridge-tracker/internal/blob"
)

type fakeClient struct {
	mu      sync.Mutex
	objects map[string][]byte
	acls    map[string]types.ObjectCannedACL
	failPut bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{objects: map[string][]byte{}, acls: map[string]types.ObjectCannedACL{}}
}

func (f *fakeClient) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failPut {
		return nil, errors.New("connection refused")
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = data
	f.acls[aws.ToString(in.Key)] = in.ACL
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeClient) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeClient) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func TestStorePutIsPublicAndDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newFakeClient()
	store := NewWithClient(client, "photos", "http://minio:9000/photos")

	obj, err := store.Put(ctx, "item_photos/x_cheese.jpg", strings.NewReader("abc"), blob.PutOptions{ContentType: "image/jpeg", Public: true})
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/photos/item_photos/x_cheese.jpg", obj.URL)
	assert.Equal(t, int64(3), obj.Size)
	assert.Equal(t, types.ObjectCannedACLPublicRead, client.acls["item_photos/x_cheese.jpg"])

	exists, err := store.Exists(ctx, obj.Key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, obj.Key))
	require.NoError(t, store.Delete(ctx, obj.Key))

	exists, err = store.Exists(ctx, obj.Key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStorePutFailure(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.failPut = true
	store := NewWithClient(client, "photos", "")

	_, err := store.Put(context.Background(), "item_photos/a.jpg", strings.NewReader("x"), blob.PutOptions{})
	require.ErrorContains(t, err, "connection refused")
}

func TestPublicBaseURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://photos.s3.eu-west-1.amazonaws.com", PublicBaseURL(Config{Bucket: "photos"}, "eu-west-1"))
	assert.Equal(t, "http://localhost:9000/photos", PublicBaseURL(Config{Bucket: "photos", Endpoint: "http://localhost:9000", PathStyle: true}, "us-east-1"))
	assert.Equal(t, "https://photos.minio.local", PublicBaseURL(Config{Bucket: "photos", Endpoint: "https://minio.local"}, "us-east-1"))
	assert.Equal(t, "https://cdn.example.com", PublicBaseURL(Config{Bucket: "photos", PublicBaseURL: "https://cdn.example.com"}, "us-east-1"))
}
