package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/fjod/cozy_storefront/internal/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) toPayment(t *testing.T) {
	t.Helper()
	require.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/api/v1/cart/items", `{"product_id":"p2"}`).Code)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPut, "/api/v1/checkout/contact", `{"name":"Анна","phone":"+79001234567"}`).Code)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/api/v1/checkout/next", "").Code)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPut, "/api/v1/checkout/delivery",
		`{"method":"delivery","address":"ул. Мира 5","entrance":"1","floor":"2","apartment":"3"}`).Code)
	rec := ts.do(t, http.MethodPost, "/api/v1/checkout/next", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "payment", body["step"])
	require.Equal(t, []any{"contact", "delivery"}, body["completedSteps"])
}

func TestCheckout_InitialState(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/checkout/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "contact", body["step"])
	assert.Equal(t, "cash", body["payment"])
	assert.Empty(t, body["items"])
	assert.Equal(t, []any{}, body["completedSteps"])
}

func TestCheckout_ValidationFailure(t *testing.T) {
	ts := newTestServer(t)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPut, "/api/v1/checkout/contact", `{"phone":"+7"}`).Code)

	rec := ts.do(t, http.MethodPost, "/api/v1/checkout/next", "")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "validation_failed", body["code"])
	assert.Equal(t, "name", body["field"])
	assert.Equal(t, "contact", decode(t, ts.do(t, http.MethodGet, "/api/v1/checkout/", ""))["step"])
}

func TestCheckout_IllegalTransition(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/checkout/back", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "illegal_transition", decode(t, rec)["code"])
}

func TestCheckout_BadPaymentMethod(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPut, "/api/v1/checkout/payment", `{"method":"bitcoin"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = ts.do(t, http.MethodPut, "/api/v1/checkout/payment", `{"method":"sbp"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sbp", decode(t, rec)["payment"])
}

func TestCheckout_PlaceOrderAndExport(t *testing.T) {
	ts := newTestServer(t)
	ts.toPayment(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/checkout/export", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "checkout_not_completed", decode(t, rec)["code"])

	rec = ts.do(t, http.MethodPost, "/api/v1/checkout/next", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "success", body["step"])
	conf := body["confirmation"].(map[string]any)
	assert.Equal(t, "ORD-77", conf["orderNumber"])
	assert.Equal(t, float64(1490), conf["totalPrice"])
	assert.Len(t, body["items"], 1)

	require.Len(t, ts.submitter.payload, 1)
	require.NotNil(t, ts.submitter.payload[0].DeliveryAddress)
	assert.Equal(t, "ул. Мира 5, entrance 1, floor 2, apt. 3", *ts.submitter.payload[0].DeliveryAddress)

	cart := decode(t, ts.do(t, http.MethodGet, "/api/v1/cart/", ""))
	assert.Empty(t, cart["items"])

	rec = ts.do(t, http.MethodPost, "/api/v1/checkout/export", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "ORD-77", decode(t, rec)["orderNumber"])
	require.Len(t, ts.exporter.docs, 1)
	assert.Equal(t, "ул. Мира 5", ts.exporter.docs[0].DeliveryData.Address)

	rec = ts.do(t, http.MethodPut, "/api/v1/checkout/contact", `{"name":"x","phone":"y"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "checkout_completed", decode(t, rec)["code"])

	rec = ts.do(t, http.MethodDelete, "/api/v1/checkout/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "contact", decode(t, rec)["step"])
}

func TestCheckout_SubmissionFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.submitter.err = &orders.RejectionError{Status: 503, Message: "order service is down"}
	ts.toPayment(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/checkout/next", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "submission_failed", body["code"])
	assert.Equal(t, "order service is down", body["error"])

	state := decode(t, ts.do(t, http.MethodGet, "/api/v1/checkout/", ""))
	assert.Equal(t, "payment", state["step"])
	assert.Len(t, state["items"], 1)

	ts.submitter.err = nil
	rec = ts.do(t, http.MethodPost, "/api/v1/checkout/next", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", decode(t, rec)["step"])
}

func TestCheckout_ExportFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.exporter.err = errors.New("broker unavailable")
	ts.toPayment(t)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/api/v1/checkout/next", "").Code)

	rec := ts.do(t, http.MethodPost, "/api/v1/checkout/export", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "export_failed", decode(t, rec)["code"])
	assert.Equal(t, "success", decode(t, ts.do(t, http.MethodGet, "/api/v1/checkout/", ""))["step"])
}

func TestCart_LockedWhileOrderInFlight(t *testing.T) {
	ts := newTestServer(t)
	ts.toPayment(t)
	ts.submitter.gate = make(chan struct{})
	ts.submitter.entered = make(chan struct{}, 1)

	done := make(chan int, 1)
	go func() {
		done <- ts.do(t, http.MethodPost, "/api/v1/checkout/next", "").Code
	}()
	<-ts.submitter.entered

	rec := ts.do(t, http.MethodPost, "/api/v1/cart/items", `{"product_id":"p4"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "submission_in_flight", decode(t, rec)["code"])

	rec = ts.do(t, http.MethodDelete, "/api/v1/cart/items/p2", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	close(ts.submitter.gate)
	require.Equal(t, http.StatusOK, <-done)

	rec = ts.do(t, http.MethodPost, "/api/v1/cart/items", `{"product_id":"p4"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["itemCount"])
}
