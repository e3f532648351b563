package holiday

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShapes(t *testing.T) {
	many := `{"response":{"header":{"resultCode":"00","resultMsg":"NORMAL SERVICE."},"body":{"items":{"item":[
		{"dateKind":"01","dateName":"설날","isHoliday":"Y","locdate":20240209,"seq":1},
		{"dateKind":"01","dateName":"설날","isHoliday":"Y","locdate":20240210,"seq":1}
	]},"numOfRows":100,"pageNo":1,"totalCount":2}}}`
	holidays, err := parse([]byte(many))
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.Equal(t, time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC), holidays[0].Date)
	assert.Equal(t, "설날", holidays[0].Name)
	assert.True(t, holidays[0].IsHoliday)

	single := `{"response":{"header":{"resultCode":"00"},"body":{"items":{"item":{"dateName":"삼일절","isHoliday":"Y","locdate":20240301}},"totalCount":1}}}`
	holidays, err = parse([]byte(single))
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "삼일절", holidays[0].Name)

	empty := `{"response":{"header":{"resultCode":"00"},"body":{"items":"","totalCount":0}}}`
	holidays, err = parse([]byte(empty))
	require.NoError(t, err)
	assert.Empty(t, holidays)
}

func TestParseErrors(t *testing.T) {
	_, err := parse([]byte(`<OpenAPI_ServiceResponse>SERVICE KEY IS NOT REGISTERED</OpenAPI_ServiceResponse>`))
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = parse([]byte(`{"response":{"header":{"resultCode":"30","resultMsg":"SERVICE_KEY_IS_NOT_REGISTERED_ERROR"}}}`))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/getRestDeInfo", r.URL.Path)
		assert.Equal(t, "2024", r.URL.Query().Get("solYear"))
		assert.Equal(t, "05", r.URL.Query().Get("solMonth"))
		assert.Equal(t, "json", r.URL.Query().Get("_type"))
		_, _ = w.Write([]byte(`{"response":{"header":{"resultCode":"00"},"body":{"items":{"item":{"dateName":"어린이날","isHoliday":"Y","locdate":20240505}}}}}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, ServiceKey: "key"})
	holidays, err := client.Fetch(context.Background(), 2024, 5)
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "어린이날", holidays[0].Name)
}
