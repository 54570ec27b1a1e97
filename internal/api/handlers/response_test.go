package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		CourtID int64 `json:"courtId"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
		want    int64
	}{
		{name: "valid", body: `{"courtId": 3}`, want: 3},
		{name: "empty", body: ``, wantErr: true},
		{name: "unknown field", body: `{"courtId": 3, "userId": 1}`, wantErr: true},
		{name: "malformed", body: `{"courtId":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(r, &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.CourtID)
		})
	}
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondNotFound(w, "корт не найден")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Code: http.StatusNotFound, Message: "корт не найден"}, body)
}

func TestRespondInternalError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondInternalError(w)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), msgInternalError)
}

func TestPathID(t *testing.T) {
	tests := []struct {
		path    string
		want    int64
		wantErr bool
	}{
		{path: "/courts/3", want: 3},
		{path: "/courts/0", wantErr: true},
		{path: "/courts/-2", wantErr: true},
		{path: "/courts/abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var (
				got int64
				err error
			)
			r := mux.NewRouter()
			r.HandleFunc("/courts/{courtId}", func(_ http.ResponseWriter, req *http.Request) {
				got, err = PathID(req, "courtId")
			})
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
