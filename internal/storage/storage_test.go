package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	put       *s3.PutObjectInput
	body      []byte
	del       *s3.DeleteObjectsInput
	putErr    error
	delErr    error
	delOutput *s3.DeleteObjectsOutput
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	f.del = in
	if f.delErr != nil {
		return nil, f.delErr
	}
	if f.delOutput != nil {
		return f.delOutput, nil
	}
	return &s3.DeleteObjectsOutput{}, nil
}

func TestKey(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	assert.Equal(t, "docs/1700000000123-plan.pdf", Key("docs", "plan.pdf", now))
	assert.Equal(t, "docs/1700000000123-plan.pdf", Key("/docs/", "plan.pdf", now))
	assert.Equal(t, "1700000000123-plan.pdf", Key("", "plan.pdf", now))
}

func TestS3Upload(t *testing.T) {
	fake := &fakeS3{}
	s := newS3(fake, "life", "http://minio:9000/life/")

	require.NoError(t, s.Upload(context.Background(), "a/1-x.txt", []byte("hello"), "text/plain"))
	assert.Equal(t, "life", aws.ToString(fake.put.Bucket))
	assert.Equal(t, "a/1-x.txt", aws.ToString(fake.put.Key))
	assert.Equal(t, "text/plain", aws.ToString(fake.put.ContentType))
	assert.Equal(t, []byte("hello"), fake.body)
	assert.Equal(t, "http://minio:9000/life/a/1-x.txt", s.URL("a/1-x.txt"))
}

func TestS3UploadError(t *testing.T) {
	s := newS3(&fakeS3{putErr: errors.New("denied")}, "life", "")
	err := s.Upload(context.Background(), "k", nil, "")
	require.ErrorIs(t, err, apperr.ErrStorage)

	var se *apperr.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "upload", se.Op)
	assert.Equal(t, "k", se.Key)
}

func TestS3Remove(t *testing.T) {
	fake := &fakeS3{}
	s := newS3(fake, "life", "")

	require.NoError(t, s.Remove(context.Background(), "a", "b"))
	require.NotNil(t, fake.del)
	require.Len(t, fake.del.Delete.Objects, 2)
	assert.Equal(t, "b", aws.ToString(fake.del.Delete.Objects[1].Key))
}

func TestS3RemoveNothing(t *testing.T) {
	fake := &fakeS3{}
	s := newS3(fake, "life", "")
	require.NoError(t, s.Remove(context.Background()))
	assert.Nil(t, fake.del)
}

func TestS3RemoveReportsPerKeyErrors(t *testing.T) {
	fake := &fakeS3{delOutput: &s3.DeleteObjectsOutput{
		Errors: []types.Error{{Key: aws.String("a"), Message: aws.String("AccessDenied")}},
	}}
	s := newS3(fake, "life", "")

	err := s.Remove(context.Background(), "a")
	require.ErrorIs(t, err, apperr.ErrStorage)
	assert.Contains(t, err.Error(), "AccessDenied")
}

func TestS3RemoveTransportError(t *testing.T) {
	s := newS3(&fakeS3{delErr: errors.New("timeout")}, "life", "")
	assert.ErrorIs(t, s.Remove(context.Background(), "a"), apperr.ErrStorage)
}

func TestNewS3PublicURL(t *testing.T) {
	cfg := config.Defaults()
	cfg.S3Bucket = "life"
	cfg.S3Endpoint = "http://localhost:9000/"
	cfg.S3AccessKey = "minio"
	cfg.S3SecretKey = "minio123"

	s, err := NewS3(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/life/k", s.URL("k"))

	cfg.S3Endpoint = ""
	s, err = NewS3(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://life.s3.us-east-1.amazonaws.com/k", s.URL("k"))
}

func TestNewS3ConfigError(t *testing.T) {
	orig := loadAWSConfig
	loadAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no region")
	}
	defer func() { loadAWSConfig = orig }()

	_, err := NewS3(context.Background(), config.Defaults())
	assert.ErrorContains(t, err, "no region")
}

func TestMemory(t *testing.T) {
	m := NewMemory("/files/")
	ctx := context.Background()

	require.NoError(t, m.Upload(ctx, "x/1-a.txt", []byte("abc"), "text/plain"))
	data, ct, ok := m.Get("x/1-a.txt")
	require.True(t, ok)
	assert.Equal(t, []byte("abc"), data)
	assert.Equal(t, "text/plain", ct)
	assert.Equal(t, "/files/x/1-a.txt", m.URL("x/1-a.txt"))

	require.NoError(t, m.Remove(ctx, "x/1-a.txt", "missing"))
	_, _, ok = m.Get("x/1-a.txt")
	assert.False(t, ok)
	assert.Zero(t, m.Len())
}

var _ Blobs = (*S3)(nil)
var _ Blobs = (*Memory)(nil)
