package file_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filesmanager/pkg/file"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func newS3Storage(t *testing.T, client *MockS3Client) *file.S3Storage {
	t.Helper()
	s, err := file.NewS3Storage(context.Background(), file.S3Config{
		Bucket: "bucket",
		Region: "us-east-1",
		Prefix: "files",
	}, file.WithS3Client(client))
	require.NoError(t, err)
	return s
}

func TestNewS3Storage_InvalidConfig(t *testing.T) {
	t.Parallel()
	_, err := file.NewS3Storage(context.Background(), file.S3Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, file.ErrInvalidConfig)
}

func TestS3Storage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("put uses prefix and content length", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return *in.Bucket == "bucket" && *in.Key == "files/abc_250" && *in.ContentLength == 5
		})).Return(&s3.PutObjectOutput{}, nil).Once()

		obj, err := newS3Storage(t, client).Put(ctx, "abc_250", io.LimitReader(strings.NewReader("hello world"), 5))
		require.NoError(t, err)
		assert.Equal(t, "abc_250", obj.Key)
		assert.Equal(t, int64(5), obj.Size)
		client.AssertExpectations(t)
	})

	t.Run("open returns body", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
			return *in.Key == "files/abc"
		})).Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("data"))}, nil).Once()

		rc, err := newS3Storage(t, client).Open(ctx, "abc")
		require.NoError(t, err)
		data, _ := io.ReadAll(rc)
		assert.Equal(t, "data", string(data))
	})

	t.Run("open missing key", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything).Return(nil, &types.NoSuchKey{}).Once()

		_, err := newS3Storage(t, client).Open(ctx, "abc")
		assert.ErrorIs(t, err, file.ErrFileNotFound)
	})

	t.Run("stat", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
			return *in.Key == "files/present"
		})).Return(&s3.HeadObjectOutput{ContentLength: aws.Int64(15)}, nil).Once()
		client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
			return *in.Key == "files/absent"
		})).Return(nil, &types.NotFound{}).Once()
		client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
			return *in.Key == "files/denied"
		})).Return(nil, &smithy.GenericAPIError{Code: "AccessDenied"}).Once()

		s := newS3Storage(t, client)
		obj, err := s.Stat(ctx, "present")
		require.NoError(t, err)
		assert.Equal(t, &file.Object{Key: "present", Size: 15}, obj)

		_, err = s.Stat(ctx, "absent")
		assert.ErrorIs(t, err, file.ErrFileNotFound)

		_, err = s.Stat(ctx, "denied")
		assert.ErrorIs(t, err, file.ErrAccessDenied)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("DeleteObject", mock.Anything, mock.Anything).Return(nil, errors.New("network down")).Once()

		err := newS3Storage(t, client).Delete(ctx, "abc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "network down")
	})

	t.Run("invalid key never reaches the client", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		_, err := newS3Storage(t, client).Open(ctx, "../secret")
		assert.ErrorIs(t, err, file.ErrInvalidKey)
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything)
	})
}
