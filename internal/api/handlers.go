package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"techcensus/internal/engine"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"
)

const (
	headerETag        = "ETag"
	headerIfNoneMatch = "If-None-Match"
)

type Handler struct {
	mu   sync.RWMutex
	data *engine.Dataset
}

// NewHandler accepts a nil dataset; /api answers 503 until SetData is called.
func NewHandler(data *engine.Dataset) *Handler {
	return &Handler{data: data}
}

// SetData publishes a fully loaded dataset.
func (h *Handler) SetData(data *engine.Dataset) {
	h.mu.Lock()
	h.data = data
	h.mu.Unlock()
}

func (h *Handler) dataset() *engine.Dataset {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.data
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api", h.requireData)
	api.GET("/views", h.ListViews)
	api.GET("/states", h.ListStates)
	api.GET("/views/:id", h.GetView)
	api.GET("/views/:id/arrow", h.GetViewArrow)
}

// requireData answers 503 while the dataset is still loading.
func (h *Handler) requireData(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.dataset() == nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "dataset is loading")
		}
		return next(c)
	}
}

// --- HANDLERS ---

// stateParams accepts ?states=PE,SP as well as repeated ?states=PE&states=SP.
func stateParams(c echo.Context) []string {
	var out []string
	for _, v := range c.QueryParams()["states"] {
		for _, s := range strings.Split(v, ",") {
			if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func (h *Handler) Health(c echo.Context) error {
	status := "ok"
	if h.dataset() == nil {
		status = "loading"
	}
	return c.JSON(http.StatusOK, map[string]string{"status": status})
}

func (h *Handler) ListViews(c echo.Context) error {
	return c.JSON(http.StatusOK, engine.Catalog())
}

func (h *Handler) ListStates(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dataset().States())
}

// GetView computes one view. Unknown views return an empty result, not an error.
// The body is tagged with an ETag so unchanged selections can be revalidated.
func (h *Handler) GetView(c echo.Context) error {
	res := engine.Compute(h.dataset(), c.Param("id"), stateParams(c))

	body, err := json.Marshal(res)
	if err != nil {
		return err
	}
	etag := etagFor(body)
	c.Response().Header().Set(headerETag, etag)
	if match := c.Request().Header.Get(headerIfNoneMatch); match == etag {
		return c.NoContent(http.StatusNotModified)
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
}

func (h *Handler) GetViewArrow(c echo.Context) error {
	res := engine.Compute(h.dataset(), c.Param("id"), stateParams(c))

	var buf bytes.Buffer
	if err := engine.WriteArrow(&buf, res); err != nil {
		return err
	}
	return c.Stream(http.StatusOK, engine.ArrowStreamMIME, &buf)
}

func etagFor(body []byte) string {
	return fmt.Sprintf(`"%016x"`, xxh3.Hash(body))
}
