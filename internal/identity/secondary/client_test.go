package secondary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storegate/pkg/domain"
)

func TestHTTPClient_UpdatePassword(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "test-key", srv.Client())
	require.NoError(t, c.UpdatePassword(context.Background(), "sec-123", "Str0ng!Pass"))

	assert.Equal(t, "/v1/accounts/sec-123/password", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, map[string]string{"password": "Str0ng!Pass"}, gotBody)
}

func TestHTTPClient_StatusClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"not found", http.StatusNotFound, ErrRemoteNotFound},
		{"rate limited", http.StatusTooManyRequests, ErrRemoteRejected},
		{"bad request", http.StatusBadRequest, ErrRemoteRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL, "", srv.Client())
			err := c.UpdateRole(context.Background(), "sec-123", domain.RoleAdmin)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHTTPClient_ServerErrorIsNotASentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", srv.Client())
	err := c.UpdatePassword(context.Background(), "sec-123", "x")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRemoteNotFound)
	assert.NotErrorIs(t, err, ErrRemoteRejected)
}
