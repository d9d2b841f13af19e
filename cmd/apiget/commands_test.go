package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestObjectsCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("bucket_name") == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`"No bucket_name present"`))
			return
		}
		w.Write([]byte(`["a.txt","b.txt"]`))
	}))
	defer server.Close()

	t.Run("Prints status and keys", func(t *testing.T) {
		out, err := execute(t, "objects", "--url", server.URL, "--bucket", "zali-catch-all")
		require.NoError(t, err)
		assert.Equal(t, "200\na.txt\nb.txt\n", out)
	})

	t.Run("Bucket flag is required", func(t *testing.T) {
		_, err := execute(t, "objects", "--url", server.URL)
		require.Error(t, err)
	})
}

func TestBucketsCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"statusCode": 200, "body": "[\"alpha\"]"}`))
	}))
	defer server.Close()

	out, err := execute(t, "buckets", "--url", server.URL)
	require.NoError(t, err)
	assert.Equal(t, "200\nalpha\n", out)
}
