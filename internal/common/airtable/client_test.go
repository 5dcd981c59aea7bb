package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewClientWithBaseURL("key-123", "appBase", ts.URL, 5*time.Second)
}

func TestQuery_SendsAuthAndParams(t *testing.T) {
	var gotAuth string
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		assert.Equal(t, "/appBase/tblX", r.URL.Path)
		json.NewEncoder(w).Encode(recordPage{Records: []Record{{ID: "rec1"}}})
	})

	got, err := client.Query(context.Background(), "tblX", QueryOptions{
		FilterByFormula: `{Status} = "Active"`,
		MaxRecords:      1,
		Sort:            []SortField{{Field: "GP Record ID", Direction: "asc"}},
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bearer key-123", gotAuth)
	assert.Equal(t, []string{`{Status} = "Active"`}, gotQuery["filterByFormula"])
	assert.Equal(t, []string{"1"}, gotQuery["maxRecords"])
	assert.Equal(t, []string{"GP Record ID"}, gotQuery["sort[0][field]"])
	assert.Equal(t, []string{"asc"}, gotQuery["sort[0][direction]"])
}

func TestQuery_FollowsOffsetPagination(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch r.URL.Query().Get("offset") {
		case "":
			json.NewEncoder(w).Encode(recordPage{
				Records: []Record{{ID: "rec1"}, {ID: "rec2"}},
				Offset:  "page2",
			})
		case "page2":
			json.NewEncoder(w).Encode(recordPage{Records: []Record{{ID: "rec3"}}})
		default:
			t.Fatalf("unexpected offset %q", r.URL.Query().Get("offset"))
		}
	})

	got, err := client.Query(context.Background(), "tblX", QueryOptions{})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, got, 3)
	assert.Equal(t, "rec3", got[2].ID)
}

func TestQuery_MaxRecordsTruncates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(recordPage{
			Records: []Record{{ID: "rec1"}, {ID: "rec2"}, {ID: "rec3"}},
			Offset:  "more",
		})
	})

	got, err := client.Query(context.Background(), "tblX", QueryOptions{MaxRecords: 2})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "rec2", got[1].ID)
}

func TestQuery_UpstreamErrorCarriesStatusAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"error":{"type":"INVALID_FILTER_BY_FORMULA"}}`)
	})

	_, err := client.Query(context.Background(), "tblX", QueryOptions{FilterByFormula: "bogus("})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
	assert.Contains(t, err.Error(), "INVALID_FILTER_BY_FORMULA")
}

func TestCreateRecord_WrapsFieldsInRecordsEnvelope(t *testing.T) {
	var gotBody map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(recordPage{Records: []Record{{ID: "recNew"}}})
	})

	rec, err := client.CreateRecord(context.Background(), "tblInterest", map[string]interface{}{
		"Client Name": "Jane Doe",
	})

	require.NoError(t, err)
	assert.Equal(t, "recNew", rec.ID)
	records := gotBody["records"].([]interface{})
	require.Len(t, records, 1)
	fields := records[0].(map[string]interface{})["fields"].(map[string]interface{})
	assert.Equal(t, "Jane Doe", fields["Client Name"])
}

func TestCreateRecord_UpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":"NOT_AUTHORIZED"}`)
	})

	_, err := client.CreateRecord(context.Background(), "tblInterest", map[string]interface{}{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "NOT_AUTHORIZED")
}

func TestQuery_EscapesTableName(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(recordPage{})
	})

	_, err := client.Query(context.Background(), "Interest Expressions", QueryOptions{})

	require.NoError(t, err)
	assert.Equal(t, "/appBase/Interest%20Expressions", gotPath)
}
