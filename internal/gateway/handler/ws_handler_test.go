package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	pkgjwt "github.com/RohitPithani026/LiveEvent-Platform-sub000/pkg/jwt"
)

func TestHandshakeRejectedBeforeUpgrade(t *testing.T) {
	verifier := pkgjwt.NewVerifier("secret", "liveevent-platform")
	h := NewWSHandler(nil, nil, nil, verifier)

	cases := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"garbage token", "nonsense"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := httptest.NewRecorder()

			h.HandleWebSocket(rec, req)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	verifier := pkgjwt.NewVerifier("secret", "liveevent-platform")
	h := NewWSHandler(nil, nil, nil, verifier)

	token, err := verifier.Sign("user-1", "", "", -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)
	rec := httptest.NewRecorder()

	h.HandleWebSocket(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerTokenSources(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Authorization", "Bearer abc")
	require.Equal(t, "abc", bearerToken(req))

	req = httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Authorization", "rawtoken")
	require.Equal(t, "rawtoken", bearerToken(req))

	req = httptest.NewRequest(http.MethodGet, "/ws?token=fromquery", nil)
	require.Equal(t, "fromquery", bearerToken(req))

	req = httptest.NewRequest(http.MethodGet, "/ws", nil)
	require.Equal(t, "", bearerToken(req))
}
