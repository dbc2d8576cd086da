package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshResult_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"data envelope", `{"data":{"accessToken":"A2"}}`, "A2"},
		{"top level", `{"accessToken":"A2"}`, "A2"},
		{"top level beside data object", `{"accessToken":"A2","data":{"user":{"id":"u1"}}}`, "A2"},
		{"top level beside data string", `{"accessToken":"A2","data":"ok"}`, "A2"},
		{"top level beside null data", `{"accessToken":"A2","data":null}`, "A2"},
		{"data wins over top level", `{"accessToken":"A1","data":{"accessToken":"A2"}}`, "A2"},
		{"missing", `{"data":{}}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result RefreshResult
			require.NoError(t, json.Unmarshal([]byte(tt.body), &result))
			assert.Equal(t, tt.want, result.AccessToken)
		})
	}
}

func TestAuthResult_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantAccess  string
		wantRefresh string
		wantUser    string
	}{
		{
			name:        "data envelope",
			body:        `{"data":{"accessToken":"A1","refreshToken":"R1","user":{"id":"u1"}}}`,
			wantAccess:  "A1",
			wantRefresh: "R1",
			wantUser:    `{"id":"u1"}`,
		},
		{
			name:        "top level",
			body:        `{"accessToken":"A1","refreshToken":"R1","user":{"id":"u1"}}`,
			wantAccess:  "A1",
			wantRefresh: "R1",
			wantUser:    `{"id":"u1"}`,
		},
		{
			name:        "tokens at top level, user in data",
			body:        `{"accessToken":"A1","refreshToken":"R1","data":{"user":{"id":"u1"}}}`,
			wantAccess:  "A1",
			wantRefresh: "R1",
			wantUser:    `{"id":"u1"}`,
		},
		{
			name:        "non-object data",
			body:        `{"accessToken":"A1","refreshToken":"R1","data":"ok"}`,
			wantAccess:  "A1",
			wantRefresh: "R1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result AuthResult
			require.NoError(t, json.Unmarshal([]byte(tt.body), &result))
			assert.Equal(t, tt.wantAccess, result.AccessToken)
			assert.Equal(t, tt.wantRefresh, result.RefreshToken)
			if tt.wantUser == "" {
				assert.Nil(t, result.User)
				return
			}
			assert.JSONEq(t, tt.wantUser, string(result.User))
		})
	}
}

func TestAuthResult_UnmarshalJSON_InvalidData(t *testing.T) {
	var result AuthResult
	assert.Error(t, json.Unmarshal([]byte(`{"data":{"accessToken":42}}`), &result))
}
