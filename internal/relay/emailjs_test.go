package relay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayload() Payload {
	return Payload{
		Credentials: Credentials{ServiceID: "service_1", TemplateID: "template_1", PublicKey: "pk_1"},
		Variables: TemplateParams{
			FromName:  "Jane",
			FromEmail: "jane@x.com",
			Message:   "Hi",
			ToName:    "Subhan Khan",
		},
	}
}

func TestEmailJSClientSendAccepted(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	client := NewEmailJSClient(WithEndpoint(srv.URL), WithAccessToken("secret"))
	resp, err := client.Send(context.Background(), testPayload())
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, "OK", resp.Text)

	assert.Equal(t, "service_1", got["service_id"])
	assert.Equal(t, "template_1", got["template_id"])
	assert.Equal(t, "pk_1", got["user_id"])
	assert.Equal(t, "secret", got["accessToken"])
	params, ok := got["template_params"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, map[string]interface{}{
		"from_name":  "Jane",
		"from_email": "jane@x.com",
		"message":    "Hi",
		"to_name":    "Subhan Khan",
	}, params)
}

func TestEmailJSClientOmitsEmptyAccessToken(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	_, err := NewEmailJSClient(WithEndpoint(srv.URL)).Send(context.Background(), testPayload())
	require.NoError(t, err)
	_, present := got["accessToken"]
	assert.False(t, present)
}

func TestEmailJSClientSendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("The Public Key is invalid\n"))
	}))
	defer srv.Close()

	resp, err := NewEmailJSClient(WithEndpoint(srv.URL)).Send(context.Background(), testPayload())
	require.Error(t, err)

	var relayErr *Error
	require.True(t, errors.As(err, &relayErr))
	assert.Equal(t, http.StatusBadRequest, relayErr.Status)
	assert.Equal(t, "The Public Key is invalid", relayErr.Message)
	require.NotNil(t, resp)
	assert.False(t, resp.OK())
}

func TestEmailJSClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	resp, err := NewEmailJSClient(WithEndpoint(url)).Send(context.Background(), testPayload())
	assert.Nil(t, resp)

	var relayErr *Error
	require.True(t, errors.As(err, &relayErr))
	assert.Empty(t, relayErr.Message)
	assert.NotNil(t, relayErr.Err)
}

func TestCredentialsComplete(t *testing.T) {
	assert.True(t, Credentials{ServiceID: "s", TemplateID: "t", PublicKey: "p"}.Complete())
	assert.False(t, Credentials{ServiceID: "s", TemplateID: "t"}.Complete())
	assert.False(t, Credentials{ServiceID: "s", PublicKey: "p"}.Complete())
	assert.False(t, Credentials{TemplateID: "t", PublicKey: "p"}.Complete())
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Message: "Network timeout"}, "Network timeout"},
		{&Error{Status: 400, Message: "bad key"}, "relay returned status 400: bad key"},
		{&Error{Err: errors.New("dial tcp")}, "relay request failed: dial tcp"},
		{&Error{Status: 503}, "relay returned status 503"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}
