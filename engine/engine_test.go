package engine_test

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jong-un-1/mcp-cross-chain/engine"
	mock_engine "github.com/jong-un-1/mcp-cross-chain/engine/mock"
	"github.com/jong-un-1/mcp-cross-chain/fees"
	"github.com/jong-un-1/mcp-cross-chain/ledger"
	"github.com/jong-un-1/mcp-cross-chain/state"
	"github.com/jong-un-1/mcp-cross-chain/store"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	srcChain  = uint32(1)
	destChain = uint32(2)
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

	allPermissions = state.Permissions{
		FillOrder:             true,
		RevertOrder:           true,
		RemoveBridgeLiquidity: true,
		ClaimBaseFee:          true,
		ClaimLPFee:            true,
		ClaimProtocolFee:      true,
	}
)

// EngineTestSuite is embedded by the engine suites. It sets up an initialized
// engine on top of an in memory database with an orchestrator holding every
// permission and a funded trader.
type EngineTestSuite struct {
	suite.Suite

	db          *store.LvlDB
	ledger      *ledger.Ledger
	mockMetrics *mock_engine.MockMetrics
	engine      *engine.Engine
}

func (s *EngineTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockMetrics = mock_engine.NewMockMetrics(ctrl)
	s.mockMetrics.EXPECT().TrackOrderCreated(gomock.Any()).AnyTimes()
	s.mockMetrics.EXPECT().TrackOrderReverted(gomock.Any()).AnyTimes()
	s.mockMetrics.EXPECT().StartFill(gomock.Any()).AnyTimes()
	s.mockMetrics.EXPECT().EndFill(gomock.Any()).AnyTimes()
	s.mockMetrics.EXPECT().AbortFill(gomock.Any()).AnyTimes()
	s.mockMetrics.EXPECT().TrackFeesClaimed(gomock.Any(), gomock.Any()).AnyTimes()
	s.mockMetrics.EXPECT().TrackLiquidityRemoved(gomock.Any()).AnyTimes()

	db, err := store.NewMemoryDB()
	s.Nil(err)
	s.db = db
	s.ledger = ledger.NewLedger()
	s.engine = engine.NewEngine(s.db, s.ledger, s.mockMetrics)

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
	s.Nil(s.engine.SetTargetChainMinFee(admin, destChain, 7))
	s.Nil(s.engine.AddOrchestrator(admin, orchestrator, allPermissions))
	s.Nil(s.engine.Mint(context.Background(), s.ledger, tokenIn, trader, 100_000))
}

func (s *EngineTestSuite) TearDownTest() {
	_ = s.db.Close()
}

func (s *EngineTestSuite) balance(token common.Hash, account common.Hash) uint64 {
	balance, err := s.engine.BalanceOf(context.Background(), token, account)
	s.Nil(err)
	return balance
}

func (s *EngineTestSuite) vault(token common.Hash) *state.Vault {
	vault, err := s.engine.Vault(token)
	s.Nil(err)
	return vault
}

// createOrderParams describes an order of 20000 to the destination chain.
// Its required fee is 37: base 7, 20 of bps fee and 10 of insurance.
func createOrderParams() engine.CreateOrderParams {
	return engine.CreateOrderParams{
		Amount:       20000,
		Seed:         common.HexToHash("0x5eed"),
		OrderHash:    common.HexToHash("0x0a"),
		Receiver:     receiver,
		SrcChainID:   srcChain,
		DestChainID:  destChain,
		TokenIn:      tokenIn,
		Fee:          57,
		MinAmountOut: "19000",
		TokenOut:     tokenOut,
	}
}

func fillOrderParams(p engine.CreateOrderParams) engine.FillOrderParams {
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
