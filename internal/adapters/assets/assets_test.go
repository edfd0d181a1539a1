package assets

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/logo.png" {
			_, _ = w.Write([]byte("png-bytes"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(time.Second)
	data, err := f.Fetch(context.Background(), srv.URL+"/logo.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.png")
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestHTTPFetcher_HonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewHTTPFetcher(5*time.Second).Fetch(ctx, srv.URL)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

type MockObjectGetter struct {
	mock.Mock
}

func (m *MockObjectGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func TestS3Fetcher_Fetch(t *testing.T) {
	getter := new(MockObjectGetter)
	getter.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return aws.ToString(in.Bucket) == "brand" && aws.ToString(in.Key) == "logos/acme.png"
	})).Return(&s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader([]byte("img")))}, nil).Once()

	f := &S3Fetcher{client: getter}
	data, err := f.Fetch(context.Background(), "s3://brand/logos/acme.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), data)
	getter.AssertExpectations(t)
}

func TestS3Fetcher_Errors(t *testing.T) {
	getter := new(MockObjectGetter)
	getter.On("GetObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))
	f := &S3Fetcher{client: getter}

	_, err := f.Fetch(context.Background(), "s3://brand/logo.png")
	assert.ErrorIs(t, err, apperrors.ErrUpstream)

	_, err = f.Fetch(context.Background(), "s3://brand/")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

type staticFetcher []byte

func (s staticFetcher) Fetch(context.Context, string) ([]byte, error) { return s, nil }

func TestRouter_DispatchesByScheme(t *testing.T) {
	r := NewRouter(nil, nil).
		Handle("https", staticFetcher("web")).
		Handle("s3", staticFetcher("bucket"))

	data, err := r.Fetch(context.Background(), "HTTPS://cdn.test/logo.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("web"), data)

	data, err = r.Fetch(context.Background(), "s3://b/k")
	require.NoError(t, err)
	assert.Equal(t, []byte("bucket"), data)

	_, err = r.Fetch(context.Background(), "ftp://x/y")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = r.Fetch(context.Background(), "logo.png")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
