package filestorage_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding_memories/internal/storage/filestorage"
)

// fakeS3 accepts path-style PUT and DELETE requests and remembers the bodies.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = body
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(f.objects, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3Storage_PutRemove(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	endpoint := strings.TrimPrefix(srv.URL, "http://")

	st, err := filestorage.NewS3Storage(filestorage.S3Options{
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Region:          "us-east-1",
		Bucket:          "wedding",
		Endpoint:        endpoint,
		UseSSL:          false,
	})
	require.NoError(t, err)

	ctx := context.Background()

	url, err := st.Put(ctx, "photo.jpg", []byte("bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "http://"+endpoint+"/wedding/photo.jpg", url)

	fake.mu.Lock()
	// the body may arrive aws-chunked over plain http
	assert.Contains(t, string(fake.objects["/wedding/photo.jpg"]), "bytes")
	fake.mu.Unlock()

	require.NoError(t, st.Remove(ctx, "photo.jpg"))

	fake.mu.Lock()
	assert.NotContains(t, fake.objects, "/wedding/photo.jpg")
	fake.mu.Unlock()
}

func TestS3Storage_AWSURL(t *testing.T) {
	st, err := filestorage.NewS3Storage(filestorage.S3Options{
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Region:          "ap-south-1",
		Bucket:          "wedding",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://wedding.s3.ap-south-1.amazonaws.com/a.jpg", st.URL("a.jpg"))
}

func TestNewS3Storage_RequiresBucket(t *testing.T) {
	_, err := filestorage.NewS3Storage(filestorage.S3Options{AccessKeyID: "k", SecretAccessKey: "s"})
	assert.Error(t, err)
}
