package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contactdesk-service/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(h *testHarness, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestDepartments_FixedSetInDisplayOrder(t *testing.T) {
	h := newTestHarness(nil)
	defer h.close()

	rec := get(h, "/api/v1/departments")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Departments []struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		} `json:"departments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Departments, 6)
	assert.Equal(t, "GDS Support", body.Departments[0].Name)
	assert.Equal(t, "simple", body.Departments[0].Kind)
	assert.Equal(t, "Cargo", body.Departments[4].Name)
	assert.Equal(t, "location", body.Departments[4].Kind)
	assert.Equal(t, "Travel Shop", body.Departments[5].Name)
}

func TestContacts_RequiresDepartment(t *testing.T) {
	h := newTestHarness(nil)
	defer h.close()

	rec := get(h, "/api/v1/contacts")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContacts_LoadsAndAutoSelects(t *testing.T) {
	h := newTestHarness(nil)
	defer h.close()

	rec := get(h, "/api/v1/contacts?department=Cargo")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap usecase.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, usecase.StateSelected, snap.State)
	assert.Equal(t, "Cargo", snap.Department)
	require.Len(t, snap.Records, 2)
	require.NotNil(t, snap.Selected)
	assert.Equal(t, "Dubai", snap.Selected.City)
	assert.Equal(t, "DXB", snap.Selected.Iata)
}

func TestContacts_QueryNarrowsListing(t *testing.T) {
	h := newTestHarness(nil)
	defer h.close()

	rec := get(h, "/api/v1/contacts?department=Cargo&q=mct")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap usecase.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Len(t, snap.Records, 1)
	require.NotNil(t, snap.Selected)
	assert.Equal(t, "Muscat", snap.Selected.City)
}

func TestContacts_UnknownDepartmentIsBadGateway(t *testing.T) {
	h := newTestHarness(nil)
	defer h.close()

	rec := get(h, "/api/v1/contacts?department=Lost+Property")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var snap usecase.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, usecase.StateEmpty, snap.State)
	assert.NotEmpty(t, snap.LoadError)
}

func TestResolve_KnownKey(t *testing.T) {
	h := newTestHarness(nil)
	defer h.close()

	rec := get(h, "/api/v1/contacts/resolve?department=Cargo&key=muscat%7Coman%7Cmct")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap usecase.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.NotNil(t, snap.Selected)
	assert.Equal(t, "Muscat", snap.Selected.City)
}

func TestResolve_UnknownKeyIsNotFound(t *testing.T) {
	h := newTestHarness(nil)
	defer h.close()

	rec := get(h, "/api/v1/contacts/resolve?department=Cargo&key=gone%7Cnowhere%7Cxxx")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "no record selected", body.Error)
}

func TestCompose_FullResponse(t *testing.T) {
	h := newTestHarness(nil)
	defer h.close()

	body := `{"department": "Travel Shop", "key": "dubai|uae|", "passenger": {"phone": "+971 50 111 2222", "note": "Please call ahead"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/compose", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Text        string   `json:"text"`
		Subject     string   `json:"subject"`
		HTML        string   `json:"html"`
		ClickToChat string   `json:"clickToChat"`
		Params      []string `json:"params"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Contains(t, resp.Text, "Here are the official Travel Shop contact details for Dubai, UAE:")
	assert.Contains(t, resp.Text, "• Email: shop@flydubai.com")
	assert.Contains(t, resp.Text, "• Address: 12 Main St")
	assert.Contains(t, resp.Text, "query_place_id=ChIJ123")
	assert.Contains(t, resp.Text, "Note: Please call ahead")
	assert.True(t, strings.HasSuffix(resp.Text, testSignature))

	assert.Equal(t, "[Flydubai Contacts] Travel Shop – Dubai", resp.Subject)
	assert.Contains(t, resp.HTML, "<br>")
	assert.NotContains(t, resp.HTML, "\n")
	assert.True(t, strings.HasPrefix(resp.ClickToChat, "https://wa.me/971501112222?text="))
	assert.Contains(t, resp.ClickToChat, "%20")
	assert.NotContains(t, resp.ClickToChat, "+")

	// Passenger name is blank, so the template vector starts with the
	// default recipient.
	assert.Equal(t, []string{"Customer", "Travel Shop", "Dubai", "shop@flydubai.com", "", "Please call ahead"}, resp.Params)
}

func TestCompose_WithoutSelectionReturnsEmptyText(t *testing.T) {
	h := newTestHarness(nil)
	defer h.close()

	body := `{"department": "Cargo", "key": "gone|nowhere|xxx"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/compose", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Text        string `json:"text"`
		Subject     string `json:"subject"`
		ClickToChat string `json:"clickToChat"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Text)
	assert.Empty(t, resp.Subject)
	assert.Empty(t, resp.ClickToChat)
}
