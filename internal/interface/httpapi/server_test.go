package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"

	"contactdesk-service/internal/domain/entity"
	"contactdesk-service/internal/infrastructure/router"
	"contactdesk-service/internal/interface/repository"
	"contactdesk-service/internal/usecase"
	"contactdesk-service/pkg/logger"
	"contactdesk-service/pkg/metrics"
)

// Shared across this package's tests so the collectors register once.
var testMetrics = metrics.NewMetrics("contactdesk_httpapi_test")

const testSignature = "— Flydubai Contact Centre"

type fakeEmail struct {
	sent []*entity.EmailMessage
	err  error
}

func (f *fakeEmail) SendEmail(ctx context.Context, msg *entity.EmailMessage) error {
	f.sent = append(f.sent, msg)
	return f.err
}

// testHarness stands up the full handler stack against an in-process
// document server.
type testHarness struct {
	mux    *http.ServeMux
	docs   *httptest.Server
	email  *fakeEmail
	server *Server
}

func newTestHarness(allowedOrigins []string) *testHarness {
	log := logger.NewLogger()

	docs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/contacts.json":
			w.Write([]byte(`{
				"GDS Support": {
					"Dubai": {"email": "gds@flydubai.com", "phone": "+97160000", "hours": "08:00-20:00"},
					"Nairobi": {"email": "gds.nbo@flydubai.com"}
				},
				"Baggage Services": {
					"Dubai": {"email": "baggage@flydubai.com"}
				}
			}`))
		case "/cargo.json":
			w.Write([]byte(`{"entries": [
				{"city": "Dubai", "country": "UAE", "iata": "DXB", "emails": ["cargo@flydubai.com"], "phones": ["+9714"], "hours": "09:00-18:00"},
				{"city": "Muscat", "country": "Oman", "iata": "MCT", "email": "cargo.mct@flydubai.com"}
			]}`))
		case "/travel_shops.json":
			w.Write([]byte(`{
				"Dubai (UAE)": {"email": "shop@flydubai.com", "address": "12 Main St", "place_id": "ChIJ123"}
			}`))
		default:
			http.NotFound(w, r)
		}
	}))

	directory := repository.NewHTTPDirectoryRepository(0, testMetrics, log)

	deptRouter := router.NewDepartmentRouter(log)
	deptRouter.Register(usecase.NewSimpleHandler())
	deptRouter.Register(usecase.NewCargoHandler())
	deptRouter.Register(usecase.NewTravelShopHandler(log))

	sources := usecase.SourceURLs{
		entity.SourceContacts:    docs.URL + "/contacts.json",
		entity.SourceCargo:       docs.URL + "/cargo.json",
		entity.SourceTravelShops: docs.URL + "/travel_shops.json",
	}

	session := usecase.NewSession(directory, deptRouter, sources, 0, log)
	composer := usecase.NewComposer(testSignature)
	email := &fakeEmail{}
	relay := usecase.NewRelayOrchestrator(email, nil, nil, 1000, testMetrics, log)

	server := NewServer(session, composer, relay, allowedOrigins, testMetrics, log)
	mux := http.NewServeMux()
	server.Register(mux)

	return &testHarness{mux: mux, docs: docs, email: email, server: server}
}

func (h *testHarness) close() {
	h.docs.Close()
}
