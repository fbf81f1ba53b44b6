package oidc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordGrant(t *testing.T) {
	t.Parallel()

	t.Run("sends form-encoded credentials", func(t *testing.T) {
		var gotForm map[string]string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/token", r.URL.Path)
			require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

			require.NoError(t, r.ParseForm())
			gotForm = map[string]string{
				"grant_type": r.PostForm.Get("grant_type"),
				"client_id":  r.PostForm.Get("client_id"),
				"username":   r.PostForm.Get("username"),
				"password":   r.PostForm.Get("password"),
			}

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"access_token": "at-1",
				"refresh_token": "rt-1",
				"token_type": "Bearer",
				"expires_in": 300,
				"refresh_expires_in": 1800
			}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "traveldesk-web")
		resp, err := client.PasswordGrant(context.Background(), "alice", "good")
		require.NoError(t, err)

		require.Equal(t, "password", gotForm["grant_type"])
		require.Equal(t, "traveldesk-web", gotForm["client_id"])
		require.Equal(t, "alice", gotForm["username"])
		require.Equal(t, "good", gotForm["password"])

		require.Equal(t, "at-1", resp.AccessToken)
		require.Equal(t, "rt-1", resp.RefreshToken)
		require.Equal(t, 300, resp.ExpiresIn)
		require.Equal(t, 1800, resp.RefreshExpiresIn)
	})

	t.Run("invalid credentials become a typed error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"bad credentials"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "traveldesk-web")
		_, err := client.PasswordGrant(context.Background(), "alice", "wrong")

		var oerr *OAuth2Error
		require.ErrorAs(t, err, &oerr)
		require.Equal(t, ErrorCodeInvalidGrant, oerr.Code)
		require.Equal(t, http.StatusUnauthorized, oerr.StatusCode)
		require.True(t, oerr.IsInvalidGrant())
	})

	t.Run("non-oauth error body still yields a typed error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream exploded"))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "traveldesk-web")
		_, err := client.PasswordGrant(context.Background(), "alice", "good")

		var oerr *OAuth2Error
		require.ErrorAs(t, err, &oerr)
		require.Equal(t, ErrorCodeServerError, oerr.Code)
		require.Equal(t, http.StatusBadGateway, oerr.StatusCode)
	})
}

func TestRefreshGrant(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		require.Equal(t, "rt-old", r.PostForm.Get("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-2","refresh_token":"rt-2","token_type":"Bearer","expires_in":300}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "traveldesk-web")
	resp, err := client.RefreshGrant(context.Background(), "rt-old")
	require.NoError(t, err)
	require.Equal(t, "at-2", resp.AccessToken)
	require.Equal(t, "rt-2", resp.RefreshToken)
}

func TestRevoke(t *testing.T) {
	t.Parallel()

	t.Run("posts the refresh token to the logout endpoint", func(t *testing.T) {
		var called bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			require.Equal(t, "/logout", r.URL.Path)
			require.NoError(t, r.ParseForm())
			require.Equal(t, "rt-1", r.PostForm.Get("refresh_token"))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "traveldesk-web")
		require.NoError(t, client.Revoke(context.Background(), "rt-1"))
		require.True(t, called)
	})

	t.Run("non-2xx is reported", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_request"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "traveldesk-web")
		require.Error(t, client.Revoke(context.Background(), "rt-1"))
	})
}
