package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/activity"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/monthlydonate"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/mydata"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/participation"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/query"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/registration"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/testhelper"
	"github.com/heartmarshall/temple-api/internal/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message *string         `json:"message"`
	Meta    *Meta           `json:"meta"`
	Errors  []string        `json:"errors"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db := testhelper.SetupTestDB(t)
	b := query.NewBuilder(db.Dialect(), query.DefaultLimits)

	return NewRouter(RouterDeps{
		Logger: discard,
		DB:     db,
		Repos: Repos{
			Activities:     activity.New(db, b, discard),
			Registrations:  registration.New(db, b, discard),
			MonthlyDonates: monthlydonate.New(db, b, discard),
			Participations: participation.New(db, b, discard),
			MyData:         mydata.New(db, b, discard),
		},
		CORS:    config.CORSConfig{AllowedOrigins: "*"},
		Version: "test",
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, envelope) {
	t.Helper()

	var rdr *bytes.Reader
	if body != "" {
		rdr = bytes.NewReader([]byte(body))
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec.Code, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func createActivity(t *testing.T, h http.Handler, activityID, date string) map[string]any {
	t.Helper()
	code, env := do(t, h, http.MethodPost, "/api/activities",
		fmt.Sprintf(`{"activityId":%q,"name":"Lantern ceremony","date":%q}`, activityID, date))
	require.Equal(t, http.StatusOK, code, "message: %v", env.Message)
	return decodeData[map[string]any](t, env)
}

// ---------------------------------------------------------------------------
// CRUD flow
// ---------------------------------------------------------------------------

func TestActivities_CRUD(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodPost, "/api/activities",
		`{"activityId":"A-1","name":"Lantern ceremony","date":"2024-04-01","page":2,"createdAt":"ignored"}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	require.NotNil(t, env.Message)
	assert.Equal(t, "activity created successfully", *env.Message)

	created := decodeData[map[string]any](t, env)
	assert.Equal(t, "ceremony", created["itemType"])
	assert.Equal(t, "upcoming", created["state"])
	assert.Equal(t, float64(0), created["participants"])
	assert.Equal(t, created["createdAt"], created["updatedAt"])
	assert.NotContains(t, created, "description")
	assert.NotContains(t, created, "dateCreated")
	id := int64(created["id"].(float64))

	code, env = do(t, h, http.MethodGet, fmt.Sprintf("/api/activities/%d", id), "")
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, env.Message)
	assert.Equal(t, created, decodeData[map[string]any](t, env))

	code, env = do(t, h, http.MethodPatch, fmt.Sprintf("/api/activities/%d", id), `{"state":"completed"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "activity updated successfully", *env.Message)
	updated := decodeData[map[string]any](t, env)
	assert.Equal(t, "completed", updated["state"])
	assert.Equal(t, created["name"], updated["name"])

	code, env = do(t, h, http.MethodDelete, fmt.Sprintf("/api/activities/%d", id), "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "activity deleted successfully", *env.Message)
	assert.Equal(t, "null", string(env.Data))

	code, env = do(t, h, http.MethodGet, fmt.Sprintf("/api/activities/%d", id), "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)

	code, _ = do(t, h, http.MethodDelete, fmt.Sprintf("/api/activities/%d", id), "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestActivities_CreateConflict(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	createActivity(t, h, "A-1", "2024-04-01")

	code, env := do(t, h, http.MethodPost, "/api/activities",
		`{"activityId":"A-1","name":"Again","date":"2024-05-01"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, env.Success)
	assert.Equal(t, "null", string(env.Data))
}

func TestActivities_CreateValidation(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodPost, "/api/activities", `{"name":"no id"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "validation failed", *env.Message)
	assert.ElementsMatch(t, []string{"activityId: required", "date: required"}, env.Errors)

	code, env = do(t, h, http.MethodPost, "/api/activities", `{"activityId":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
}

func TestActivities_EmptyPatch(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	created := createActivity(t, h, "A-1", "2024-04-01")

	code, env := do(t, h, http.MethodPatch, fmt.Sprintf("/api/activities/%v", created["id"]), `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "no fields to update", *env.Message)

	code, _ = do(t, h, http.MethodPatch, "/api/activities/9999", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, h, http.MethodGet, "/api/activities/abc", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestActivities_List(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	for i := range 5 {
		createActivity(t, h, fmt.Sprintf("A-%d", i), fmt.Sprintf("2024-04-0%d", i+1))
	}

	code, env := do(t, h, http.MethodGet, "/api/activities?limit=2&offset=1&sort=date", "")
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, Meta{Total: 5, Limit: 2, Offset: 1}, *env.Meta)

	items := decodeData[[]map[string]any](t, env)
	require.Len(t, items, 2)
	assert.Equal(t, "2024-04-02", items[0]["date"])
	assert.Equal(t, "2024-04-03", items[1]["date"])

	code, env = do(t, h, http.MethodGet, "/api/activities?limit=2&page=3", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, Meta{Total: 5, Limit: 2, Offset: 4}, *env.Meta)

	code, env = do(t, h, http.MethodGet, "/api/activities?state=nothing", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "[]", string(env.Data))
	assert.Equal(t, 0, env.Meta.Total)
}

func TestActivities_ListRejectsBadQuery(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	for _, q := range []string{"sort=name;DROP", "state=%zz", "limit=abc", "offset=-1", "color=red"} {
		code, env := do(t, h, http.MethodGet, "/api/activities?"+q, "")
		assert.Equal(t, http.StatusBadRequest, code, q)
		assert.NotEmpty(t, env.Errors, q)
	}
}

// ---------------------------------------------------------------------------
// Lookups and other entities
// ---------------------------------------------------------------------------

func TestActivities_ByActivityID(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	created := createActivity(t, h, "A-42", "2024-04-01")

	code, env := do(t, h, http.MethodGet, "/api/activities/by-activity-id/A-42", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, created["id"], decodeData[map[string]any](t, env)["id"])

	code, _ = do(t, h, http.MethodGet, "/api/activities/by-activity-id/missing", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestParticipation_ByActivityReturnsList(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	for _, reg := range []int{1, 2} {
		code, _ := do(t, h, http.MethodPost, "/api/participation-records",
			fmt.Sprintf(`{"registrationId":%d,"activityId":7,"items":[{"name":"lamp","qty":1}]}`, reg))
		require.Equal(t, http.StatusOK, code)
	}

	code, env := do(t, h, http.MethodGet, "/api/participation-records/by-activity/7", "")
	require.Equal(t, http.StatusOK, code)
	items := decodeData[[]map[string]any](t, env)
	assert.Len(t, items, 2)
	assert.Equal(t, []any{map[string]any{"name": "lamp", "qty": float64(1)}}, items[0]["items"])

	code, env = do(t, h, http.MethodGet, "/api/participation-records/by-activity/99", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "[]", string(env.Data))

	code, _ = do(t, h, http.MethodGet, "/api/participation-records/by-registration/2", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestMyData_GeneratedIDAndStateLookup(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodPost, "/api/my-data",
		`{"state":"new","formName":"Prayer","contact":{"name":"Lin"}}`)
	require.Equal(t, http.StatusOK, code)
	created := decodeData[map[string]any](t, env)
	id, _ := created["id"].(string)
	assert.Len(t, id, 36)
	assert.Equal(t, map[string]any{"name": "Lin"}, created["contact"])

	code, env = do(t, h, http.MethodPatch, "/api/my-data/"+id, `{"state":"done","userUpdated":"u-9"}`)
	require.Equal(t, http.StatusOK, code)
	updated := decodeData[map[string]any](t, env)
	assert.Equal(t, "done", updated["state"])
	assert.Equal(t, "u-9", updated["userUpdated"])

	code, env = do(t, h, http.MethodGet, "/api/my-data/by-state/done", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeData[[]map[string]any](t, env), 1)
}

func TestRegistrations_JSONFieldsRoundTrip(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodPost, "/api/registrations",
		`{"formId":"F-1","contact":{"phone":"0912","name":"Lin"},"blessing":null}`)
	require.Equal(t, http.StatusOK, code)
	created := decodeData[map[string]any](t, env)
	assert.Equal(t, map[string]any{"phone": "0912", "name": "Lin"}, created["contact"])
	assert.NotContains(t, created, "blessing")

	code, env = do(t, h, http.MethodGet, "/api/registrations/by-form-id/F-1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, created, decodeData[map[string]any](t, env))
}

func TestMonthlyDonates_NameFilterMatchesSubstring(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	for _, name := range []string{"Lamp offering", "Rice offering", "Library"} {
		code, _ := do(t, h, http.MethodPost, "/api/monthly-donates",
			fmt.Sprintf(`{"name":%q,"registrationId":3,"donateItems":[1,2]}`, name))
		require.Equal(t, http.StatusOK, code)
	}

	code, env := do(t, h, http.MethodGet, "/api/monthly-donates?name=offering", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, env.Meta.Total)

	code, env = do(t, h, http.MethodGet, "/api/monthly-donates/by-registration/3", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(3), decodeData[map[string]any](t, env)["registrationId"])
}

// ---------------------------------------------------------------------------
// Operational routes
// ---------------------------------------------------------------------------

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"activityDB"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "temple_"), "expected service metrics")
}
