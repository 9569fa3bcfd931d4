package export

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeName(t *testing.T) {
	tests := map[string]string{
		"expenses_2024-05.csv":    "expenses_2024-05.csv",
		"../../etc/passwd":        "passwd",
		`..\windows\expenses.csv`: "expenses.csv",
		" report.csv ":            "report.csv",
	}
	for in, want := range tests {
		got, err := SafeName(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "dir/", "..", "a/.."} {
		_, err := SafeName(bad)
		assert.ErrorIs(t, err, ErrInvalidName, bad)
	}
}

func TestFileSink_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	s := NewFileSink(dir)

	loc, err := s.Put(context.Background(), "../expenses_2024-05.csv", "text/csv", []byte("a;b\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "expenses_2024-05.csv"), loc)

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "a;b\n", string(data))
}

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink_Put(t *testing.T) {
	fake := &fakeS3{}
	s := NewS3SinkWithClient(fake, "bucket", "exports/user")

	loc, err := s.Put(context.Background(), "expenses_2024-05.csv", "text/csv", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/exports/user/expenses_2024-05.csv", loc)
	assert.Equal(t, "bucket", aws.ToString(fake.in.Bucket))
	assert.Equal(t, "exports/user/expenses_2024-05.csv", aws.ToString(fake.in.Key))
	assert.Equal(t, "text/csv", aws.ToString(fake.in.ContentType))
	assert.Equal(t, int64(1), aws.ToInt64(fake.in.ContentLength))
	assert.Equal(t, []byte("x"), fake.body)

	fake.err = errors.New("denied")
	_, err = s.Put(context.Background(), "a.csv", "", nil)
	require.ErrorContains(t, err, "put s3://bucket/exports/user/a.csv")
}

func TestNewS3Sink_AppliesConfig(t *testing.T) {
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		require.NotNil(t, lo.Credentials)
		creds, err := lo.Credentials.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "minio", creds.AccessKeyID)
		return aws.Config{Region: lo.Region}, nil
	}

	fake := &fakeS3{}
	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) PutObjectAPI {
		for _, fn := range optFns {
			fn(&opts)
		}
		return fake
	}

	s, err := NewS3Sink(context.Background(), S3Config{
		Region:    "us-east-1",
		AccessKey: "minio",
		SecretKey: "minio123",
		Endpoint:  "http://127.0.0.1:9000",
		Bucket:    "despesas",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)

	_, err = s.Put(context.Background(), "x.csv", "", []byte("1"))
	require.NoError(t, err)
	assert.Equal(t, "x.csv", aws.ToString(fake.in.Key))
}

func TestNewS3Sink_Errors(t *testing.T) {
	_, err := NewS3Sink(context.Background(), S3Config{})
	require.ErrorContains(t, err, "bucket is required")

	origLoad := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = origLoad })
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}
	_, err = NewS3Sink(context.Background(), S3Config{Bucket: "b"})
	require.ErrorContains(t, err, "load aws config")
}
