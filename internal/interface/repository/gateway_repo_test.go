package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"contactdesk-service/internal/domain/entity"
	"contactdesk-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relayReq() *entity.RelayRequest {
	return &entity.RelayRequest{
		Type:    entity.RelayEmail,
		SendTo:  "agent@flydubai.com",
		Subject: "Cargo contacts",
		Text:    "Here are the details.",
	}
}

func TestGateway_AcceptsOkEnvelope(t *testing.T) {
	var received entity.RelayRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	gw := NewGatewayRepository(srv.URL, logger.NewLogger())
	err := gw.Relay(context.Background(), relayReq())

	require.NoError(t, err)
	assert.Equal(t, entity.RelayEmail, received.Type)
	assert.Equal(t, "agent@flydubai.com", received.SendTo)
}

func TestGateway_AcceptsLegacySuccessEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	gw := NewGatewayRepository(srv.URL, logger.NewLogger())
	assert.NoError(t, gw.Relay(context.Background(), relayReq()))
}

func TestGateway_ErrorStringSurfacesVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"ok": false, "error": "SendGrid error"}`))
	}))
	defer srv.Close()

	gw := NewGatewayRepository(srv.URL, logger.NewLogger())
	err := gw.Relay(context.Background(), relayReq())

	require.Error(t, err)
	assert.Equal(t, "SendGrid error", err.Error())
}

func TestGateway_FalseEnvelopeOnTwoHundredStillFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok": false}`))
	}))
	defer srv.Close()

	gw := NewGatewayRepository(srv.URL, logger.NewLogger())
	err := gw.Relay(context.Background(), relayReq())

	require.Error(t, err)
	assert.Equal(t, "relay gateway returned status 200", err.Error())
}

func TestGateway_UndecodableBodyFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	gw := NewGatewayRepository(srv.URL, logger.NewLogger())
	assert.Error(t, gw.Relay(context.Background(), relayReq()))
}
