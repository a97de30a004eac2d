package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jhoicas/Franquicias-api/internal/application/dto"
	"github.com/jhoicas/Franquicias-api/internal/application/usecase"
	"github.com/jhoicas/Franquicias-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Franquicias-api/internal/infrastructure/persistence"
	"github.com/jhoicas/Franquicias-api/internal/infrastructure/persistence/sqlite"
	handlers "github.com/jhoicas/Franquicias-api/internal/interfaces/http"
	"github.com/jhoicas/Franquicias-api/internal/platform/workerpool"
	"github.com/jhoicas/Franquicias-api/pkg/logger"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

type downStore struct{}

func (downStore) Ping(context.Context) error { return errors.New("sin conexión") }

func newApp(t *testing.T, pinger handlers.Pinger) *fiber.App {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "http.db"))
	require.NoError(t, err)
	store := persistence.NewStore(db, sqlite.Dialect{})
	require.NoError(t, store.Migrate(ctx))

	pool := workerpool.New(2, 4)
	t.Cleanup(func() {
		_ = pool.Close()
		_ = store.Close()
	})

	runner := persistence.NewTxRunner(store)
	tracer := noop.NewTracerProvider().Tracer("test")
	log := logger.Nop()
	franchiseUC := usecase.NewFranchiseUseCase(pool, runner, tracer, log)

	if pinger == nil {
		pinger = store
	}
	app := fiber.New()
	handlers.Router(app, handlers.RouterDeps{
		FranchiseUC: franchiseUC,
		BranchUC:    usecase.NewBranchUseCase(pool, runner, tracer, log),
		ProductUC:   usecase.NewProductUseCase(pool, runner, tracer, log),
		ReportUC:    usecase.NewReportUseCase(franchiseUC, pdf.NewTopStockPDFGenerator()),
		Store:       pinger,
		Logger:      log,
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) *nethttp.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func decode[T any](t *testing.T, resp *nethttp.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createFranchise(t *testing.T, app *fiber.App, name string) dto.FranchiseResponse {
	t.Helper()
	resp := do(t, app, fiber.MethodPost, "/api/v1/franchises", `{"name":"`+name+`"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.FranchiseResponse](t, resp)
}

// ─────────────────────────────────────────────────────────────────────────────
// Franquicias
// ─────────────────────────────────────────────────────────────────────────────

func TestFranchiseEndpoints_Lifecycle(t *testing.T) {
	app := newApp(t, nil)
	f := createFranchise(t, app, "Acme")
	assert.Positive(t, f.ID)
	assert.NotNil(t, f.Branches)

	resp := do(t, app, fiber.MethodPost, "/api/v1/franchises", `{"name":"Acme"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, handlers.CodeDuplicate, decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, fiber.MethodGet, "/api/v1/franchises", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.FranchiseResponse](t, resp), 1)

	resp = do(t, app, fiber.MethodPut, "/api/v1/franchises/"+itoa(f.ID)+"/name", `{"name":"Acme Corp"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Acme Corp", decode[dto.FranchiseResponse](t, resp).Name)

	resp = do(t, app, fiber.MethodDelete, "/api/v1/franchises/"+itoa(f.ID), "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = do(t, app, fiber.MethodGet, "/api/v1/franchises/"+itoa(f.ID), "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, handlers.CodeNotFound, decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, fiber.MethodDelete, "/api/v1/franchises/"+itoa(f.ID), "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestFranchiseCreate_Validation(t *testing.T) {
	app := newApp(t, nil)
	cases := map[string]string{
		"vacio":      `{"name":""}`,
		"en blanco":  `{"name":"   "}`,
		"muy corto":  `{"name":"A"}`,
		"sin nombre": `{}`,
		"muy largo":  `{"name":"` + strings.Repeat("x", 101) + `"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp := do(t, app, fiber.MethodPost, "/api/v1/franchises", body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			out := decode[dto.ErrorResponse](t, resp)
			assert.Equal(t, handlers.CodeValidation, out.Code)
			assert.Contains(t, out.Message, "name")
		})
	}
}

func TestNames_ValidatedAfterNFCNormalization(t *testing.T) {
	app := newApp(t, nil)

	// "e" + acento combinante: dos runas en el cuerpo, una sola tras NFC.
	resp := do(t, app, fiber.MethodPost, "/api/v1/franchises", `{"name":"e\u0301"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, handlers.CodeValidation, out.Code)
	assert.Contains(t, out.Message, "name")

	resp = do(t, app, fiber.MethodPost, "/api/v1/franchises", `{"name":"Cafe\u0301"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	f := decode[dto.FranchiseResponse](t, resp)
	assert.Equal(t, "Caf\u00e9", f.Name)

	resp = do(t, app, fiber.MethodPost, "/api/v1/franchises", `{"name":"Caf\u00e9"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, "ambas formas son el mismo nombre")

	resp = do(t, app, fiber.MethodPut, "/api/v1/franchises/"+itoa(f.ID)+"/name", `{"name":"o\u0308"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestFranchiseCreate_MalformedBody(t *testing.T) {
	app := newApp(t, nil)
	resp := do(t, app, fiber.MethodPost, "/api/v1/franchises", `{"name":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, handlers.CodeInvalidBody, decode[dto.ErrorResponse](t, resp).Code)
}

func TestFranchiseGet_InvalidID(t *testing.T) {
	app := newApp(t, nil)
	for _, id := range []string{"abc", "0", "-3"} {
		resp := do(t, app, fiber.MethodGet, "/api/v1/franchises/"+id, "")
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, id)
	}
}

func TestTopStockEndpoints(t *testing.T) {
	app := newApp(t, nil)
	f := createFranchise(t, app, "Acme")

	resp := do(t, app, fiber.MethodPost, "/api/v1/branches", `{"name":"North","franchise_id":`+itoa(f.ID)+`}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	b := decode[dto.BranchResponse](t, resp)

	resp = do(t, app, fiber.MethodPost, "/api/v1/products", `{"name":"Widget","stock":9,"branch_id":`+itoa(b.ID)+`}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = do(t, app, fiber.MethodGet, "/api/v1/franchises/"+itoa(f.ID)+"/top-stock-products", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	top := decode[dto.TopStockProductsResponse](t, resp)
	require.Len(t, top.BranchTopProducts, 1)
	assert.EqualValues(t, 9, top.BranchTopProducts[0].Stock)

	resp = do(t, app, fiber.MethodGet, "/api/v1/franchises/9999/top-stock-products", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, usecase.UnknownFranchiseName, decode[dto.TopStockProductsResponse](t, resp).FranchiseName)

	resp = do(t, app, fiber.MethodGet, "/api/v1/franchises/"+itoa(f.ID)+"/top-stock-products/pdf", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "top-stock-franquicia-")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

// ─────────────────────────────────────────────────────────────────────────────
// Sucursales y productos
// ─────────────────────────────────────────────────────────────────────────────

func TestBranchEndpoints(t *testing.T) {
	app := newApp(t, nil)
	f := createFranchise(t, app, "Acme")

	resp := do(t, app, fiber.MethodPost, "/api/v1/branches", `{"name":"North","franchise_id":9999}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = do(t, app, fiber.MethodPost, "/api/v1/branches", `{"name":"North"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Message, "franchise_id")

	resp = do(t, app, fiber.MethodPost, "/api/v1/branches", `{"name":"North","franchise_id":`+itoa(f.ID)+`}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	b := decode[dto.BranchResponse](t, resp)
	assert.Equal(t, "Acme", b.FranchiseName)

	resp = do(t, app, fiber.MethodGet, "/api/v1/branches?franchise_id="+itoa(f.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.BranchResponse](t, resp), 1)

	resp = do(t, app, fiber.MethodGet, "/api/v1/branches", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, fiber.MethodGet, "/api/v1/branches/"+itoa(b.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotNil(t, decode[dto.BranchResponse](t, resp).Products)

	resp = do(t, app, fiber.MethodDelete, "/api/v1/branches/"+itoa(b.ID), "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestProductEndpoints(t *testing.T) {
	app := newApp(t, nil)
	f := createFranchise(t, app, "Acme")
	resp := do(t, app, fiber.MethodPost, "/api/v1/branches", `{"name":"North","franchise_id":`+itoa(f.ID)+`}`)
	b := decode[dto.BranchResponse](t, resp)

	resp = do(t, app, fiber.MethodPost, "/api/v1/products", `{"name":"Widget","stock":-1,"branch_id":`+itoa(b.ID)+`}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Message, "stock")

	resp = do(t, app, fiber.MethodPost, "/api/v1/products", `{"name":"Widget","branch_id":`+itoa(b.ID)+`}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "stock es obligatorio")

	resp = do(t, app, fiber.MethodPost, "/api/v1/products", `{"name":"Widget","stock":0,"branch_id":`+itoa(b.ID)+`}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	p := decode[dto.ProductResponse](t, resp)
	assert.EqualValues(t, 0, p.Stock)
	assert.Equal(t, "North", p.BranchName)

	resp = do(t, app, fiber.MethodPut, "/api/v1/products/"+itoa(p.ID)+"/stock", `{"stock":15}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 15, decode[dto.ProductResponse](t, resp).Stock)

	resp = do(t, app, fiber.MethodPut, "/api/v1/products/"+itoa(p.ID)+"/name", `{"name":"Gadget"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Gadget", decode[dto.ProductResponse](t, resp).Name)

	resp = do(t, app, fiber.MethodGet, "/api/v1/products?branch_id="+itoa(b.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.ProductResponse](t, resp), 1)

	resp = do(t, app, fiber.MethodPut, "/api/v1/products/9999/stock", `{"stock":1}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = do(t, app, fiber.MethodDelete, "/api/v1/products/"+itoa(p.ID), "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

// ─────────────────────────────────────────────────────────────────────────────
// Operativos
// ─────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	resp := do(t, newApp(t, nil), fiber.MethodGet, "/health", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "up", decode[dto.HealthResponse](t, resp).Database)

	resp = do(t, newApp(t, downStore{}), fiber.MethodGet, "/health", "")
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "down", decode[dto.HealthResponse](t, resp).Database)
}

func TestRequestID_GeneratedOrPropagated(t *testing.T) {
	app := newApp(t, nil)

	resp := do(t, app, fiber.MethodGet, "/health", "")
	assert.NotEmpty(t, resp.Header.Get(handlers.HeaderRequestID))

	req := httptest.NewRequest(fiber.MethodGet, "/health", nil)
	req.Header.Set(handlers.HeaderRequestID, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(handlers.HeaderRequestID))
}

func TestMetricsEndpoint_StaysScrapableAfterMixedTraffic(t *testing.T) {
	app := newApp(t, nil)
	f := createFranchise(t, app, "Acme")
	id := itoa(f.ID)

	do(t, app, fiber.MethodPost, "/api/v1/franchises", `{"name":"Acme"}`)
	do(t, app, fiber.MethodPut, "/api/v1/franchises/"+id+"/name", `{"name":"Acme Corp"}`)
	do(t, app, fiber.MethodGet, "/api/v1/franchises/"+id, "")
	do(t, app, fiber.MethodDelete, "/api/v1/franchises/"+id, "")
	do(t, app, fiber.MethodDelete, "/api/v1/franchises/"+id, "")
	do(t, app, fiber.MethodGet, "/health", "")

	for i := 0; i < 2; i++ {
		resp := do(t, app, fiber.MethodGet, "/metrics", "")
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
		assert.Contains(t, string(body), `method="DELETE"`)
		assert.Contains(t, string(body), `method="POST"`)
		assert.Contains(t, string(body), `method="PUT"`)
	}
}
