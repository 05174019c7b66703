package verifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPBackendClientSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok, "credentials must travel as basic auth")
		assert.Equal(t, "juan.perez", user)
		assert.Equal(t, "secret", pass)

		_ = json.NewEncoder(w).Encode(Result{
			StatusCode: 200,
			FirstName:  "Juan",
			LastName:   "Pérez",
			Age:        25,
		})
	}))
	defer srv.Close()

	c := NewHTTPBackendClient(srv.URL, time.Second)
	res, err := c.Authenticate(context.Background(), "juan.perez", "secret")
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)
	assert.Equal(t, "Juan", res.FirstName)
}

func TestHTTPBackendClientUserDefinedFault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(BackendFault{Message: "rejected", Detail: "account disabled"})
	}))
	defer srv.Close()

	c := NewHTTPBackendClient(srv.URL, time.Second)
	_, err := c.Authenticate(context.Background(), "juan.perez", "secret")

	var fault *BackendFault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "rejected", fault.Message)
	assert.Equal(t, "account disabled", fault.Detail)
}

func TestHTTPBackendClientTransportStatuses(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusBadGateway, http.StatusServiceUnavailable} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		c := NewHTTPBackendClient(srv.URL, time.Second)
		_, err := c.Authenticate(context.Background(), "juan.perez", "secret")
		srv.Close()

		var terr *TransportError
		require.ErrorAs(t, err, &terr, "status %d", status)
		assert.Equal(t, status, terr.StatusCode)
		assert.Equal(t, status == http.StatusUnauthorized, terr.Unauthorized())
	}
}

func TestHTTPBackendClientConnectionRefused(t *testing.T) {
	c := NewHTTPBackendClient("http://127.0.0.1:1", 100*time.Millisecond)
	_, err := c.Authenticate(context.Background(), "juan.perez", "secret")

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Zero(t, terr.StatusCode)
	assert.Error(t, errors.Unwrap(terr))
}
