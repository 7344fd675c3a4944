package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"techcensus/internal/config"
	"techcensus/internal/engine"
	"techcensus/internal/models"

	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() *engine.Dataset {
	return engine.NewDataset([]engine.Record{
		{Region: "Sudeste", StateCode: "SP", StateName: "São Paulo", Dependency: 2, Location: 1, Year: 2023, Course: "Informática", Enrollment: 300},
		{Region: "Sudeste", StateCode: "RJ", StateName: "Rio de Janeiro", Dependency: 1, Location: 1, Year: 2023, Course: "Enfermagem", Enrollment: 200},
		{Region: "Nordeste", StateCode: "PE", StateName: "Pernambuco", Dependency: 3, Location: 2, Year: 2023, Course: "Informática", Enrollment: 100},
	})
}

func newTestServer(ds *engine.Dataset) (*echo.Echo, *Handler) {
	h := NewHandler(ds)
	return NewServer(config.Default(), h, zerolog.Nop()), h
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	return serve(e, httptest.NewRequest(http.MethodGet, target, nil))
}

func TestLoadingState(t *testing.T) {
	e, h := newTestServer(nil)

	rec := get(e, "/api/views/schools-by-region")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = get(e, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"loading"`)

	h.SetData(testDataset())

	rec = get(e, "/api/views/schools-by-region")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = get(e, "/healthz")
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestGetView(t *testing.T) {
	e, _ := newTestServer(testDataset())

	rec := get(e, "/api/views/schools-by-dependency")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	var res models.ViewResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotNil(t, res.Chart)
	assert.Equal(t, models.ChartBar, res.Chart.Kind)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, "Federal", res.Rows[0].Category)
	require.NotNil(t, res.Rows[0].Percent)
}

func TestGetViewStateFilter(t *testing.T) {
	e, _ := newTestServer(testDataset())

	for _, target := range []string{
		"/api/views/students-by-state?states=sp,PE",
		"/api/views/students-by-state?states=SP&states=pe",
	} {
		rec := get(e, target)
		require.Equal(t, http.StatusOK, rec.Code)

		var res models.ViewResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		require.Len(t, res.Rows, 2, target)
		assert.Equal(t, "Pernambuco", res.Rows[0].Category)
		assert.Equal(t, "São Paulo", res.Rows[1].Category)
	}
}

func TestGetViewUnknownAndEmpty(t *testing.T) {
	e, _ := newTestServer(testDataset())

	rec := get(e, "/api/views/bogus")
	require.Equal(t, http.StatusOK, rec.Code)
	var res models.ViewResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Nil(t, res.Chart)
	assert.Empty(t, res.Rows)

	rec = get(e, "/api/views/schools-by-region?states=ZZ")
	require.Equal(t, http.StatusOK, rec.Code)
	res = models.ViewResult{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotNil(t, res.Chart)
	assert.Empty(t, res.Rows)
	assert.Contains(t, rec.Body.String(), `"rows":[]`)
}

func TestGetViewETag(t *testing.T) {
	e, _ := newTestServer(testDataset())

	first := get(e, "/api/views/enrollment-by-course")
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get(headerETag)
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/api/views/enrollment-by-course", nil)
	req.Header.Set(headerIfNoneMatch, etag)
	rec := serve(e, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.Bytes())

	other := get(e, "/api/views/enrollment-by-course?states=PE")
	assert.NotEqual(t, etag, other.Header().Get(headerETag))
}

func TestGetViewArrow(t *testing.T) {
	e, _ := newTestServer(testDataset())

	rec := get(e, "/api/views/top-courses-by-state/arrow")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, engine.ArrowStreamMIME, rec.Header().Get(echo.HeaderContentType))

	r, err := ipc.NewReader(rec.Body)
	require.NoError(t, err)
	defer r.Release()
	require.True(t, r.Next())
	assert.EqualValues(t, 3, r.Record().NumRows())
}

func TestListViewsAndStates(t *testing.T) {
	e, _ := newTestServer(testDataset())

	rec := get(e, "/api/views")
	require.Equal(t, http.StatusOK, rec.Code)
	var views []models.ViewInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	assert.Len(t, views, len(engine.Catalog()))

	rec = get(e, "/api/states")
	require.Equal(t, http.StatusOK, rec.Code)
	var states []models.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &states))
	assert.Equal(t, []models.State{
		{Code: "PE", Name: "Pernambuco"},
		{Code: "RJ", Name: "Rio de Janeiro"},
		{Code: "SP", Name: "São Paulo"},
	}, states)
}

func TestRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Server.RateLimit = 1
	cfg.Server.RateBurst = 1
	e := NewServer(cfg, NewHandler(testDataset()), zerolog.Nop())

	codes := make(map[int]int)
	for i := 0; i < 5; i++ {
		codes[get(e, "/api/views").Code]++
	}
	assert.Positive(t, codes[http.StatusOK])
	assert.Positive(t, codes[http.StatusTooManyRequests])
}
