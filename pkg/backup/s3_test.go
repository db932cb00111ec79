package backup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewS3(t *testing.T) {
	s, err := NewS3(t.Context(), S3Options{
		Bucket:       "bucket",
		Region:       "us-east-1",
		EndpointURL:  "http://127.0.0.1:9000",
		AccessKey:    "access",
		SecretKey:    "secret",
		UsePathStyle: true,
	})
	require.NoError(t, err)
	require.Equal(t, "bucket", s.Bucket)
	require.Equal(t, "dlist/todo.pb", objectKey("dlist/", "todo"))
}
