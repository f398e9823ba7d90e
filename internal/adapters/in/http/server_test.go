package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"mediflow/internal/adapters/out/auth"
	"mediflow/internal/adapters/out/catalog"
	"mediflow/internal/adapters/out/inmem"
	"mediflow/internal/adapters/out/settlement"
	"mediflow/internal/core/application/usecases/commands"
	"mediflow/internal/core/application/usecases/queries"
	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/ports"

	mediflowhttp "mediflow/internal/adapters/in/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct{}

func (memoryStorage) Store(_ context.Context, orderID kernel.UUID, filename string, _ []byte) (string, error) {
	return orderID.String() + "/" + filename, nil
}

type apiFixture struct {
	e        *echo.Echo
	medicine ports.Medicine
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	medicine := ports.Medicine{
		ID:                   kernel.NewUUID(),
		Name:                 "Amoxicillin 500mg",
		Category:             "Antibiotics",
		Price:                decimal.RequireFromString("120.00"),
		RequiresPrescription: true,
	}

	orders := inmem.NewOrderStore()
	queue := inmem.NewQueue()
	stock := catalog.NewStaticCatalogWith([]ports.Medicine{medicine})
	provider := auth.NewProvider(inmem.NewPharmacistStore())
	gateway := settlement.NewSimulator(decimal.RequireFromString("1000.00"))

	server := mediflowhttp.NewServer(
		provider,
		stock,
		commands.NewCreateOrderCommandHandler(orders, queue, stock, commands.RoutingPolicy{}),
		commands.NewAttachPrescriptionCommandHandler(orders, queue, memoryStorage{}),
		commands.NewClaimOrderCommandHandler(orders, queue),
		commands.NewStartConsultationCommandHandler(orders),
		commands.NewFinalizeItemsCommandHandler(orders, stock),
		commands.NewProcessPaymentCommandHandler(orders, gateway),
		commands.NewConfirmFulfillmentCommandHandler(orders),
		commands.NewCancelOrderCommandHandler(orders, queue,
			commands.CancellationPolicy{Customer: true, Pharmacist: true}),
		queries.NewGetPharmacistQueueQueryHandler(orders, queue),
		queries.NewGetCustomerOrdersQueryHandler(orders),
	)

	_, err := provider.SeedPharmacist(t.Context(), "Dr. Mehta", "dr.mehta@example.com", "pharm-secret")
	require.NoError(t, err)

	e := echo.New()
	server.RegisterRoutes(e)

	return &apiFixture{e: e, medicine: medicine}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) upload(t *testing.T, path, token, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var value T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &value))
	return value
}

func (f *apiFixture) registerCustomer(t *testing.T, email string) string {
	t.Helper()

	rec := f.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Asha Rao",
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	return decodeJSON[struct {
		Token string `json:"token"`
	}](t, rec).Token
}

func (f *apiFixture) loginPharmacist(t *testing.T) string {
	t.Helper()

	rec := f.do(t, http.MethodPost, "/api/auth/pharmacist/login", "", map[string]string{
		"email":    "dr.mehta@example.com",
		"password": "pharm-secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	return decodeJSON[struct {
		Token string `json:"token"`
	}](t, rec).Token
}

func TestAPI_AuthAndCatalog(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("catalog is public", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/medicines", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		medicines := decodeJSON[[]map[string]any](t, rec)
		require.Len(t, medicines, 1)
		assert.Equal(t, "Amoxicillin 500mg", medicines[0]["name"])
		assert.Equal(t, "120.00", medicines[0]["price"])
	})

	t.Run("protected routes require a token", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/orders/my-orders", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = f.do(t, http.MethodGet, "/api/orders/my-orders", "garbage-token", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong credentials", func(t *testing.T) {
		f.registerCustomer(t, "asha@example.com")

		rec := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "asha@example.com",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("duplicate registration is a conflict", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"name":     "Asha Again",
			"email":    "asha@example.com",
			"password": "secret2",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("customer token cannot reach pharmacist routes", func(t *testing.T) {
		token := f.registerCustomer(t, "role-check@example.com")

		rec := f.do(t, http.MethodGet, "/api/pharmacist/queue", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAPI_PrescriptionOrderLifecycle(t *testing.T) {
	f := newAPIFixture(t)
	customerToken := f.registerCustomer(t, "asha@example.com")
	pharmacistToken := f.loginPharmacist(t)

	// Create a prescription order.
	rec := f.do(t, http.MethodPost, "/api/orders", customerToken, map[string]any{
		"order_type": "PRESCRIPTION",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	created := decodeJSON[map[string]any](t, rec)
	orderID := created["id"].(string)
	assert.Equal(t, "AwaitingPrescription", created["status"])

	// The queue is empty until the prescription arrives.
	rec = f.do(t, http.MethodGet, "/api/pharmacist/queue", pharmacistToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeJSON[[]map[string]any](t, rec))

	rec = f.upload(t, "/api/orders/"+orderID+"/prescription", customerToken, "rx.pdf", []byte("pdf"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/pharmacist/queue", pharmacistToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decodeJSON[[]map[string]any](t, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, orderID, entries[0]["order_id"])

	// Claim, consult, finalize.
	rec = f.do(t, http.MethodPost, "/api/pharmacist/accept-call/"+orderID, pharmacistToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Claimed", decodeJSON[map[string]any](t, rec)["result"])

	// A repeated claim reports the loss kind with 409.
	rec = f.do(t, http.MethodPost, "/api/pharmacist/accept-call/"+orderID, pharmacistToken, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "AlreadyClaimed", decodeJSON[map[string]any](t, rec)["result"])

	rec = f.do(t, http.MethodPost, "/api/pharmacist/consultation/"+orderID+"/start", pharmacistToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/pharmacist/consultation/"+orderID+"/finalize", pharmacistToken, map[string]any{
		"items": []map[string]any{
			{"medicine_id": f.medicine.ID.String(), "quantity": 2},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Pay and fulfill.
	rec = f.do(t, http.MethodPost, "/api/payment/process", customerToken, map[string]string{
		"order_id":       orderID,
		"payment_method": "UPI",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	payment := decodeJSON[map[string]any](t, rec)
	assert.Equal(t, "paid", payment["status"])
	assert.NotEmpty(t, payment["transaction_ref"])

	// Double payment is a 409, not a second charge.
	rec = f.do(t, http.MethodPost, "/api/payment/process", customerToken, map[string]string{
		"order_id":       orderID,
		"payment_method": "UPI",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/pharmacist/orders/"+orderID+"/fulfill", pharmacistToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The customer sees the final state in the history.
	rec = f.do(t, http.MethodGet, "/api/orders/my-orders", customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decodeJSON[[]map[string]any](t, rec)
	require.Len(t, orders, 1)
	assert.Equal(t, "Fulfilled", orders[0]["status"])
	assert.Equal(t, "PAID", orders[0]["payment_status"])
	assert.Equal(t, "240.00", orders[0]["amount"])
}

func TestAPI_PaymentDeclinedMapsTo402(t *testing.T) {
	f := newAPIFixture(t)
	customerToken := f.registerCustomer(t, "asha@example.com")
	pharmacistToken := f.loginPharmacist(t)

	rec := f.do(t, http.MethodPost, "/api/orders", customerToken, map[string]any{
		"order_type": "PRESCRIPTION",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	orderID := decodeJSON[map[string]any](t, rec)["id"].(string)

	rec = f.upload(t, "/api/orders/"+orderID+"/prescription", customerToken, "rx.pdf", []byte("pdf"))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodPost, "/api/pharmacist/accept-call/"+orderID, pharmacistToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodPost, "/api/pharmacist/consultation/"+orderID+"/start", pharmacistToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Ten units push the amount past the simulator's limit.
	rec = f.do(t, http.MethodPost, "/api/pharmacist/consultation/"+orderID+"/finalize", pharmacistToken, map[string]any{
		"items": []map[string]any{
			{"medicine_id": f.medicine.ID.String(), "quantity": 10},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/payment/process", customerToken, map[string]string{
		"order_id":       orderID,
		"payment_method": "CARD",
	})
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	// A declined payment leaves the order payable.
	recOrders := f.do(t, http.MethodGet, "/api/orders/my-orders", customerToken, nil)
	require.Equal(t, http.StatusOK, recOrders.Code)
	orders := decodeJSON[[]map[string]any](t, recOrders)
	require.Len(t, orders, 1)
	assert.Equal(t, "Fulfillable", orders[0]["status"])
	assert.Equal(t, "FAILED", orders[0]["payment_status"])
}

func TestAPI_CancelOrder(t *testing.T) {
	f := newAPIFixture(t)
	customerToken := f.registerCustomer(t, "asha@example.com")
	otherToken := f.registerCustomer(t, "other@example.com")

	rec := f.do(t, http.MethodPost, "/api/orders", customerToken, map[string]any{
		"order_type": "PRESCRIPTION",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	orderID := decodeJSON[map[string]any](t, rec)["id"].(string)

	t.Run("another customer cannot cancel it", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/orders/"+orderID+"/cancel", otherToken, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("the owner can", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/orders/"+orderID+"/cancel", customerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		recOrders := f.do(t, http.MethodGet, "/api/orders/my-orders", customerToken, nil)
		orders := decodeJSON[[]map[string]any](t, recOrders)
		require.Len(t, orders, 1)
		assert.Equal(t, "Cancelled", orders[0]["status"])
	})

	t.Run("cancelling a terminal order is a 409", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/orders/"+orderID+"/cancel", customerToken, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestAPI_CreateOTCOrder(t *testing.T) {
	f := newAPIFixture(t)
	customerToken := f.registerCustomer(t, "asha@example.com")

	rec := f.do(t, http.MethodPost, "/api/orders", customerToken, map[string]any{
		"order_type": "OTC",
		"items": []map[string]any{
			{"medicine_id": f.medicine.ID.String(), "quantity": 2},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	created := decodeJSON[map[string]any](t, rec)
	assert.Equal(t, "Fulfillable", created["status"])
	assert.Equal(t, "240.00", created["amount"])

	t.Run("unknown order type", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/orders", customerToken, map[string]any{
			"order_type": "MYSTERY",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
