package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	app, issuer, _ := newTestApp()
	mux := http.NewServeMux()
	NewService(app).RegisterRoutes(mux, issuer)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestService_SignUpLoginMe(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/user/signup", SignUpRequest{Name: "Kiosk", AccountID: "kiosk_user", Password: "pw"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var signup SignUpResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&signup))
	assert.Equal(t, "kiosk_user", signup.User.AccountID)
	assert.Equal(t, "bearer", signup.TokenType)
	assert.Equal(t, 60, signup.ExpiresInMinutes)

	resp = postJSON(t, srv.URL+"/user/signup", SignUpRequest{Name: "Again", AccountID: "kiosk_user", Password: "pw"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/user/login", LoginRequest{AccountID: "kiosk_user", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/user/login", LoginRequest{AccountID: "ghost", Password: "pw"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/user/login", LoginRequest{AccountID: "kiosk_user", Password: "pw"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tokens TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tokens))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/user/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	me, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer me.Body.Close()
	require.Equal(t, http.StatusOK, me.StatusCode)
	var profile Profile
	require.NoError(t, json.NewDecoder(me.Body).Decode(&profile))
	assert.Equal(t, "Kiosk", profile.Name)
	assert.Equal(t, signup.User.ID, profile.ID)
}

func TestService_Refresh(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/user/signup", SignUpRequest{Name: "Kiosk", AccountID: "kiosk_user", Password: "pw"})
	var signup SignUpResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&signup))

	resp = postJSON(t, srv.URL+"/user/refresh", RefreshRequest{RefreshToken: signup.RefreshToken})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var refreshed TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Empty(t, refreshed.RefreshToken)

	resp = postJSON(t, srv.URL+"/user/refresh", RefreshRequest{RefreshToken: "junk"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestService_MeRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/user/me")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
