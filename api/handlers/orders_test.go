package handlers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jong-un-1/mcp-cross-chain/api/handlers"
	"github.com/jong-un-1/mcp-cross-chain/state"
	"github.com/stretchr/testify/suite"
)

type OrderHandlerTestSuite struct {
	HandlerTestSuite

	handler *handlers.OrderHandler
}

func TestRunOrderHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func (s *OrderHandlerTestSuite) SetupTest() {
	s.HandlerTestSuite.SetupTest()
	s.handler = handlers.NewOrderHandler(s.engine)
}

func (s *OrderHandlerTestSuite) create() {
	recorder := httptest.NewRecorder()
	s.handler.HandleCreate(recorder, s.request(http.MethodPost, "/v1/orders", &trader, createOrderParams(), nil))
	s.Equal(http.StatusCreated, recorder.Code)
}

func (s *OrderHandlerTestSuite) fill() {
	recorder := httptest.NewRecorder()
	s.handler.HandleFill(recorder, s.request(http.MethodPost, "/fill", &orchestrator, fillOrderParams(), orderVars()))
	s.Equal(http.StatusAccepted, recorder.Code)
}

func (s *OrderHandlerTestSuite) Test_HandleCreate_MissingCaller() {
	recorder := httptest.NewRecorder()

	s.handler.HandleCreate(recorder, s.request(http.MethodPost, "/v1/orders", nil, createOrderParams(), nil))

	s.Equal(http.StatusUnauthorized, recorder.Code)
}

func (s *OrderHandlerTestSuite) Test_HandleCreate_InvalidCaller() {
	req := s.request(http.MethodPost, "/v1/orders", nil, createOrderParams(), nil)
	req.Header.Set(handlers.CallerIdentityHeader, "trader")
	recorder := httptest.NewRecorder()

	s.handler.HandleCreate(recorder, req)

	s.Equal(http.StatusUnauthorized, recorder.Code)
}

func (s *OrderHandlerTestSuite) Test_HandleCreate_InvalidBody() {
	req := httptest.NewRequest(http.MethodPost, "/v1/orders", bytes.NewReader([]byte(`{"amount": "many"}`)))
	req.Header.Set(handlers.CallerIdentityHeader, trader.Hex())
	recorder := httptest.NewRecorder()

	s.handler.HandleCreate(recorder, req)

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *OrderHandlerTestSuite) Test_HandleCreate_ValidOrder() {
	recorder := httptest.NewRecorder()

	s.handler.HandleCreate(recorder, s.request(http.MethodPost, "/v1/orders", &trader, createOrderParams(), nil))

	s.Equal(http.StatusCreated, recorder.Code)
	order := state.Order{}
	s.decode(recorder, &order)
	s.Equal(orderHash, order.OrderHash)
	s.Equal(trader, order.Trader)
	s.Equal(state.OrderCreated, order.Status)
	s.False(order.Fill.IsSet())
	s.Equal(uint64(80000), s.balance(tokenIn, trader))
	s.Equal(uint64(20000), s.balance(tokenIn, state.VaultAccount))
}

func (s *OrderHandlerTestSuite) Test_HandleCreate_Duplicate() {
	s.create()
	recorder := httptest.NewRecorder()

	s.handler.HandleCreate(recorder, s.request(http.MethodPost, "/v1/orders", &trader, createOrderParams(), nil))

	s.Equal(http.StatusConflict, recorder.Code)
}

func (s *OrderHandlerTestSuite) Test_HandleCreate_FeeTooLow() {
	params := createOrderParams()
	params.Fee = 1
	recorder := httptest.NewRecorder()

	s.handler.HandleCreate(recorder, s.request(http.MethodPost, "/v1/orders", &trader, params, nil))

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *OrderHandlerTestSuite) Test_HandleCreate_InvalidMinAmountOut() {
	for _, minAmountOut := range []string{"1e3", "1.0", "1e2000000000", "100000000000000000000000"} {
		params := createOrderParams()
		params.MinAmountOut = minAmountOut
		recorder := httptest.NewRecorder()

		s.handler.HandleCreate(recorder, s.request(http.MethodPost, "/v1/orders", &trader, params, nil))

		s.Equal(http.StatusBadRequest, recorder.Code, minAmountOut)
	}
	s.Equal(uint64(100000), s.balance(tokenIn, trader))
}

func (s *OrderHandlerTestSuite) Test_HandleCreate_Frozen() {
	s.Nil(s.engine.FreezeGlobalState(freezer))
	recorder := httptest.NewRecorder()

	s.handler.HandleCreate(recorder, s.request(http.MethodPost, "/v1/orders", &trader, createOrderParams(), nil))

	s.Equal(http.StatusLocked, recorder.Code)
}

func (s *OrderHandlerTestSuite) Test_HandleFill_HashMismatch() {
	s.create()
	recorder := httptest.NewRecorder()

	s.handler.HandleFill(recorder, s.request(http.MethodPost, "/fill", &orchestrator, fillOrderParams(), map[string]string{
		"orderHash": "0x0b",
	}))

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *OrderHandlerTestSuite) Test_HandleFill_Unauthorized() {
	s.create()
	recorder := httptest.NewRecorder()

	s.handler.HandleFill(recorder, s.request(http.MethodPost, "/fill", &stranger, fillOrderParams(), orderVars()))

	s.Equal(http.StatusForbidden, recorder.Code)
}

func (s *OrderHandlerTestSuite) Test_HandleFill_UnknownOrder() {
	recorder := httptest.NewRecorder()

	s.handler.HandleFill(recorder, s.request(http.MethodPost, "/fill", &orchestrator, fillOrderParams(), orderVars()))

	s.Equal(http.StatusNotFound, recorder.Code)
}

func (s *OrderHandlerTestSuite) Test_HandleFill_Mismatch() {
	s.create()
	params := fillOrderParams()
	params.Fee = 58
	recorder := httptest.NewRecorder()

	s.handler.HandleFill(recorder, s.request(http.MethodPost, "/fill", &orchestrator, params, orderVars()))

	s.Equal(http.StatusConflict, recorder.Code)
}

func (s *OrderHandlerTestSuite) Test_FullFill() {
	s.create()
	s.fill()
	s.Equal(uint64(19943), s.balance(tokenIn, orchestrator))
	s.Nil(s.engine.Mint(context.Background(), s.ledger, tokenOut, orchestrator, 19500))
	recorder := httptest.NewRecorder()

	s.handler.HandleFillTransfer(recorder, s.request(http.MethodPost, "/transfer", &orchestrator, handlers.FillTransferBody{
		MinAmountOut: 19000,
		PrevBalance:  0,
	}, orderVars()))

	s.Equal(http.StatusOK, recorder.Code)
	order := state.Order{}
	s.decode(recorder, &order)
	s.Equal(state.OrderFilled, order.Status)
	s.Equal(uint64(19500), s.balance(tokenOut, receiver))
}

func (s *OrderHandlerTestSuite) Test_HandleFillTransfer_MinAmountOutNotMet() {
	s.create()
	s.fill()
	s.Nil(s.engine.Mint(context.Background(), s.ledger, tokenOut, orchestrator, 18000))
	recorder := httptest.NewRecorder()

	s.handler.HandleFillTransfer(recorder, s.request(http.MethodPost, "/transfer", &orchestrator, handlers.FillTransferBody{
		MinAmountOut: 19000,
	}, orderVars()))

	s.Equal(http.StatusUnprocessableEntity, recorder.Code)
}

func (s *OrderHandlerTestSuite) Test_HandleFillTransfer_WithoutFill() {
	s.create()
	recorder := httptest.NewRecorder()

	s.handler.HandleFillTransfer(recorder, s.request(http.MethodPost, "/transfer", &orchestrator, handlers.FillTransferBody{
		MinAmountOut: 19000,
	}, orderVars()))

	s.Equal(http.StatusConflict, recorder.Code)
}

func (s *OrderHandlerTestSuite) Test_HandleRevert_RefundsTrader() {
	s.create()
	recorder := httptest.NewRecorder()

	s.handler.HandleRevert(recorder, s.request(http.MethodPost, "/revert", &orchestrator, nil, orderVars()))

	s.Equal(http.StatusOK, recorder.Code)
	order := state.Order{}
	s.decode(recorder, &order)
	s.Equal(state.OrderReverted, order.Status)
	s.Equal(uint64(100000), s.balance(tokenIn, trader))
}

func (s *OrderHandlerTestSuite) Test_HandleRevert_PendingFill() {
	s.create()
	s.fill()
	recorder := httptest.NewRecorder()

	s.handler.HandleRevert(recorder, s.request(http.MethodPost, "/revert", &orchestrator, nil, orderVars()))

	s.Equal(http.StatusOK, recorder.Code)
	order := state.Order{}
	s.decode(recorder, &order)
	s.Equal(state.OrderReverted, order.Status)
	s.False(order.Fill.IsSet())
	s.Equal(uint64(100000), s.balance(tokenIn, trader))
	s.Equal(uint64(0), s.balance(tokenIn, orchestrator))
}

func (s *OrderHandlerTestSuite) Test_HandleRevert_Reverted() {
	s.create()
	s.Nil(s.engine.RevertOrder(context.Background(), orchestrator, orderHash))
	recorder := httptest.NewRecorder()

	s.handler.HandleRevert(recorder, s.request(http.MethodPost, "/revert", &orchestrator, nil, orderVars()))

	s.Equal(http.StatusConflict, recorder.Code)
}

func (s *OrderHandlerTestSuite) Test_HandleGet() {
	s.create()
	recorder := httptest.NewRecorder()

	s.handler.HandleGet(recorder, s.request(http.MethodGet, "/order", nil, nil, orderVars()))

	s.Equal(http.StatusOK, recorder.Code)
	order := state.Order{}
	s.decode(recorder, &order)
	s.Equal(uint64(20000), order.Amount)
	s.Equal("19000", order.MinAmountOut)
}

func (s *OrderHandlerTestSuite) Test_HandleGet_NotFound() {
	recorder := httptest.NewRecorder()

	s.handler.HandleGet(recorder, s.request(http.MethodGet, "/order", nil, nil, orderVars()))

	s.Equal(http.StatusNotFound, recorder.Code)
}

func (s *OrderHandlerTestSuite) Test_HandleGet_InvalidHash() {
	recorder := httptest.NewRecorder()

	s.handler.HandleGet(recorder, s.request(http.MethodGet, "/order", nil, nil, map[string]string{
		"orderHash": "order",
	}))

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *OrderHandlerTestSuite) Test_HandleList() {
	s.create()
	recorder := httptest.NewRecorder()

	s.handler.HandleList(recorder, s.request(http.MethodGet, "/v1/orders", nil, nil, nil))

	s.Equal(http.StatusOK, recorder.Code)
	orders := []state.Order{}
	s.decode(recorder, &orders)
	s.Len(orders, 1)
}
