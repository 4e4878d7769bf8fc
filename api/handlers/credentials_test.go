package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/BaSui01/ocrflow/api/handlers/mocks"
	"github.com/BaSui01/ocrflow/credentials"
)

func newCredentialRouter(t *testing.T) (*mocks.MockCredentialAdmin, http.Handler) {
	store := mocks.NewMockCredentialAdmin(gomock.NewController(t))
	r := chi.NewRouter()
	r.Route("/api/v1/credentials", NewCredentialHandler(store, nil).Routes)
	return store, r
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCredentialHandler_Put(t *testing.T) {
	store, router := newCredentialRouter(t)
	store.EXPECT().
		Upsert(gomock.Any(), credentials.Credential{Provider: "mindee", APIKey: "key-0123456789", BaseURL: "https://eu.mindee.net"}).
		Return(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPut, "/api/v1/credentials/Mindee",
		`{"api_key":" key-0123456789 ","base_url":"https://eu.mindee.net"}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "key-0123456789")
	assert.Contains(t, w.Body.String(), `"api_key":"***6789"`)
}

func TestCredentialHandler_PutValidation(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
	}{
		{name: "empty key", contentType: "application/json", body: `{"api_key":"  "}`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", contentType: "application/json", body: `{"api_key":"k","secret":1}`, wantStatus: http.StatusBadRequest},
		{name: "wrong content type", contentType: "text/plain", body: `{"api_key":"k"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, router := newCredentialRouter(t)
			req := httptest.NewRequest(http.MethodPut, "/api/v1/credentials/mindee", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCredentialHandler_Get(t *testing.T) {
	store, router := newCredentialRouter(t)
	store.EXPECT().Resolve(gomock.Any(), "mindee").
		Return(credentials.Credential{Provider: "mindee", APIKey: "abcdefgh1234"}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/credentials/mindee", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"api_key":"***1234"`)
	assert.NotContains(t, w.Body.String(), "abcdefgh")
}

func TestCredentialHandler_StoreErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "not found", err: credentials.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "database down", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, router := newCredentialRouter(t)
			store.EXPECT().Disable(gomock.Any(), "mindee").Return(tt.err)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/credentials/mindee", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.NotContains(t, w.Body.String(), "connection reset")
		})
	}
}

func TestCredentialHandler_Delete(t *testing.T) {
	store, router := newCredentialRouter(t)
	store.EXPECT().Disable(gomock.Any(), "mindee").Return(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/credentials/mindee", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}
