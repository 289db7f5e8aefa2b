package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/jong-un-1/mcp-cross-chain/api/handlers"
	"github.com/jong-un-1/mcp-cross-chain/engine"
	mock_engine "github.com/jong-un-1/mcp-cross-chain/engine/mock"
	"github.com/jong-un-1/mcp-cross-chain/fees"
	"github.com/jong-un-1/mcp-cross-chain/ledger"
	"github.com/jong-un-1/mcp-cross-chain/state"
	"github.com/jong-un-1/mcp-cross-chain/store"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var (
	admin        = common.HexToHash("0xad")
	freezer      = common.HexToHash("0xf1")
	thawer       = common.HexToHash("0xf2")
	orchestrator = common.HexToHash("0x0c")
	trader       = common.HexToHash("0x7a")
	receiver     = common.HexToHash("0x7b")
	stranger     = common.HexToHash("0x55")

	tokenIn  = common.HexToHash("0x01")
	tokenOut = common.HexToHash("0x02")

	orderHash = common.HexToHash("0x0a")
)

// HandlerTestSuite serves the handlers from an initialized engine on top of
// an in memory database.
type HandlerTestSuite struct {
	suite.Suite

	db     *store.LvlDB
	ledger *ledger.Ledger
	engine *engine.Engine
}

func (s *HandlerTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	mockMetrics := mock_engine.NewMockMetrics(ctrl)
	mockMetrics.EXPECT().TrackOrderCreated(gomock.Any()).AnyTimes()
	mockMetrics.EXPECT().TrackOrderReverted(gomock.Any()).AnyTimes()
	mockMetrics.EXPECT().StartFill(gomock.Any()).AnyTimes()
	mockMetrics.EXPECT().EndFill(gomock.Any()).AnyTimes()
	mockMetrics.EXPECT().AbortFill(gomock.Any()).AnyTimes()
	mockMetrics.EXPECT().TrackFeesClaimed(gomock.Any(), gomock.Any()).AnyTimes()
	mockMetrics.EXPECT().TrackLiquidityRemoved(gomock.Any()).AnyTimes()

	db, err := store.NewMemoryDB()
	s.Nil(err)
	s.db = db
	s.ledger = ledger.NewLedger()
	s.engine = engine.NewEngine(s.db, s.ledger, mockMetrics)

	err = s.engine.Initialize(admin, engine.InitParams{
		FreezeAuthorities:  []common.Hash{freezer},
		ThawAuthorities:    []common.Hash{thawer},
		RebalanceThreshold: 2000,
		CrossChainFeeBps:   20,
		MaxOrderAmount:     1_000_000,
		ProtocolFee:        fees.Fraction{Numerator: 1, Denominator: 4},
		FeeTiers: fees.TierTable{
			{Threshold: 0, Bps: 50},
			{Threshold: 1000, Bps: 30},
			{Threshold: 10000, Bps: 10},
		},
		InsuranceFeeTiers: fees.TierTable{
			{Threshold: 0, Bps: 5},
		},
	})
	s.Nil(err)
	s.Nil(s.engine.SetTargetChainMinFee(admin, 2, 7))
	s.Nil(s.engine.AddOrchestrator(admin, orchestrator, state.Permissions{
		FillOrder:             true,
		RevertOrder:           true,
		RemoveBridgeLiquidity: true,
		ClaimBaseFee:          true,
		ClaimLPFee:            true,
		ClaimProtocolFee:      true,
	}))
	s.Nil(s.engine.Mint(context.Background(), s.ledger, tokenIn, trader, 100_000))
}

func (s *HandlerTestSuite) TearDownTest() {
	_ = s.db.Close()
}

func (s *HandlerTestSuite) request(method string, target string, caller *common.Hash, body interface{}, vars map[string]string) *http.Request {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		s.Nil(err)
	}

	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if caller != nil {
		req.Header.Set(handlers.CallerIdentityHeader, caller.Hex())
	}
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func (s *HandlerTestSuite) balance(token common.Hash, account common.Hash) uint64 {
	balance, err := s.engine.BalanceOf(context.Background(), token, account)
	s.Nil(err)
	return balance
}

func (s *HandlerTestSuite) decode(recorder *httptest.ResponseRecorder, v interface{}) {
	err := json.NewDecoder(recorder.Body).Decode(v)
	s.Nil(err)
}

func createOrderParams() engine.CreateOrderParams {
	return engine.CreateOrderParams{
		Amount:       20000,
		Seed:         common.HexToHash("0x5eed"),
		OrderHash:    orderHash,
		Receiver:     receiver,
		SrcChainID:   1,
		DestChainID:  2,
		TokenIn:      tokenIn,
		Fee:          57,
		MinAmountOut: "19000",
		TokenOut:     tokenOut,
	}
}

func fillOrderParams() engine.FillOrderParams {
	p := createOrderParams()
	return engine.FillOrderParams{
		Amount:       p.Amount,
		Seed:         p.Seed,
		OrderHash:    p.OrderHash,
		Trader:       trader,
		SrcChainID:   p.SrcChainID,
		DestChainID:  p.DestChainID,
		TokenIn:      p.TokenIn,
		Fee:          p.Fee,
		MinAmountOut: p.MinAmountOut,
	}
}

func orderVars() map[string]string {
	return map[string]string{"orderHash": orderHash.Hex()}
}
