package garagestorages3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"note-share-be/pkg/blobstore"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectAPI struct {
	put       *s3.PutObjectInput
	body      string
	deleted   []string
	deleteErr error
}

func (f *fakeObjectAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = params
	b, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.deleted = append(f.deleted, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestGarageS3_Upload(t *testing.T) {
	api := &fakeObjectAPI{}
	store := New(api, Config{
		Endpoint: "http://garage:3900/",
		Bucket:   "notes-bucket",
	})

	res, err := store.Upload(context.Background(), strings.NewReader("pdf bytes"), blobstore.UploadOptions{
		ResourceType: "raw",
		Folder:       "notes/note",
		PublicID:     "1700000000000_syllabus.pdf",
		FileName:     "syllabus.pdf",
		ContentType:  "application/pdf",
		Size:         9,
	})
	require.NoError(t, err)

	assert.Equal(t, "notes/note/1700000000000_syllabus.pdf", res.PublicID)
	assert.Equal(t, "http://garage:3900/notes-bucket/raw/notes/note/1700000000000_syllabus.pdf", res.SecureURL)
	assert.Equal(t, "notes-bucket", aws.ToString(api.put.Bucket))
	assert.Equal(t, "application/pdf", aws.ToString(api.put.ContentType))
	assert.Equal(t, int64(9), aws.ToInt64(api.put.ContentLength))
	assert.Equal(t, "pdf bytes", api.body)
}

func TestGarageS3_UploadUsesPublicBaseURL(t *testing.T) {
	store := New(&fakeObjectAPI{}, Config{
		Endpoint:      "http://garage:3900",
		Bucket:        "b",
		PublicBaseURL: "https://files.example.com",
	})

	res, err := store.Upload(context.Background(), strings.NewReader("x"), blobstore.UploadOptions{
		ResourceType: "image",
		Folder:       "notes/image",
		PublicID:     "a.png",
		Size:         -1,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/b/image/notes/image/a.png", res.SecureURL)
}

func TestGarageS3_Destroy(t *testing.T) {
	api := &fakeObjectAPI{}
	store := New(api, Config{Endpoint: "http://garage:3900", Bucket: "b"})

	require.NoError(t, store.Destroy(context.Background(), "notes/image/a.png", blobstore.DestroyOptions{ResourceType: "image"}))
	assert.Equal(t, []string{"image/notes/image/a.png"}, api.deleted)

	api.deleteErr = errors.New("boom")
	err := store.Destroy(context.Background(), "notes/x", blobstore.DestroyOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "raw/notes/x")
}

func TestNewGarageClient_RequiresEndpointAndBucket(t *testing.T) {
	_, err := NewGarageClient(Config{Bucket: "b"})
	assert.Error(t, err)

	_, err = NewGarageClient(Config{Endpoint: "http://garage:3900"})
	assert.Error(t, err)
}
