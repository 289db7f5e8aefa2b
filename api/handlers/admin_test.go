package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jong-un-1/mcp-cross-chain/api/handlers"
	"github.com/jong-un-1/mcp-cross-chain/fees"
	"github.com/jong-un-1/mcp-cross-chain/state"
	"github.com/stretchr/testify/suite"
)

type AdminHandlerTestSuite struct {
	HandlerTestSuite

	handler *handlers.AdminHandler
}

func TestRunAdminHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func (s *AdminHandlerTestSuite) SetupTest() {
	s.HandlerTestSuite.SetupTest()
	s.handler = handlers.NewAdminHandler(s.engine)
}

func (s *AdminHandlerTestSuite) global(recorder *httptest.ResponseRecorder) state.GlobalState {
	s.Equal(http.StatusOK, recorder.Code)
	g := state.GlobalState{}
	s.decode(recorder, &g)
	return g
}

func (s *AdminHandlerTestSuite) Test_FreezeAndThaw() {
	recorder := httptest.NewRecorder()
	s.handler.HandleFreeze(recorder, s.request(http.MethodPost, "/v1/global/freeze", &stranger, nil, nil))
	s.Equal(http.StatusForbidden, recorder.Code)

	recorder = httptest.NewRecorder()
	s.handler.HandleFreeze(recorder, s.request(http.MethodPost, "/v1/global/freeze", &freezer, nil, nil))
	s.True(s.global(recorder).Frozen)

	recorder = httptest.NewRecorder()
	s.handler.HandleThaw(recorder, s.request(http.MethodPost, "/v1/global/thaw", &freezer, nil, nil))
	s.Equal(http.StatusForbidden, recorder.Code)

	recorder = httptest.NewRecorder()
	s.handler.HandleThaw(recorder, s.request(http.MethodPost, "/v1/global/thaw", &thawer, nil, nil))
	s.False(s.global(recorder).Frozen)
}

func (s *AdminHandlerTestSuite) Test_HandleUpdateParams() {
	recorder := httptest.NewRecorder()

	s.handler.HandleUpdateParams(recorder, s.request(http.MethodPatch, "/v1/global", &admin, map[string]uint64{
		"maxOrderAmount": 500,
	}, nil))

	g := s.global(recorder)
	s.Equal(uint64(500), g.MaxOrderAmount)
	s.Equal(uint16(2000), g.RebalanceThreshold)
}

func (s *AdminHandlerTestSuite) Test_HandleUpdateParams_InvalidBps() {
	recorder := httptest.NewRecorder()

	s.handler.HandleUpdateParams(recorder, s.request(http.MethodPatch, "/v1/global", &admin, map[string]uint64{
		"crossChainFeeBps": 10001,
	}, nil))

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *AdminHandlerTestSuite) Test_HandleUpdateParams_UnknownField() {
	recorder := httptest.NewRecorder()

	s.handler.HandleUpdateParams(recorder, s.request(http.MethodPatch, "/v1/global", &admin, map[string]uint64{
		"frozen": 1,
	}, nil))

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *AdminHandlerTestSuite) Test_AuthorityHandover() {
	recorder := httptest.NewRecorder()
	s.handler.HandleNominateAuthority(recorder, s.request(http.MethodPost, "/v1/authority/nominate", &admin, handlers.NominateBody{
		Admin: stranger.Hex(),
	}, nil))
	g := s.global(recorder)
	pending, ok := g.PendingAdmin.Get()
	s.True(ok)
	s.Equal(stranger, pending)

	recorder = httptest.NewRecorder()
	s.handler.HandleAcceptAuthority(recorder, s.request(http.MethodPost, "/v1/authority/accept", &trader, nil, nil))
	s.Equal(http.StatusForbidden, recorder.Code)

	recorder = httptest.NewRecorder()
	s.handler.HandleAcceptAuthority(recorder, s.request(http.MethodPost, "/v1/authority/accept", &stranger, nil, nil))
	g = s.global(recorder)
	s.Equal(stranger, g.Admin)
	s.False(g.PendingAdmin.IsSet())
}

func (s *AdminHandlerTestSuite) Test_HandleNominateAuthority_InvalidAdmin() {
	recorder := httptest.NewRecorder()

	s.handler.HandleNominateAuthority(recorder, s.request(http.MethodPost, "/v1/authority/nominate", &admin, handlers.NominateBody{
		Admin: "stranger",
	}, nil))

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *AdminHandlerTestSuite) Test_FreezeAuthorities() {
	vars := map[string]string{"id": stranger.Hex()}

	recorder := httptest.NewRecorder()
	s.handler.HandleAddFreezeAuthority(recorder, s.request(http.MethodPut, "/freeze-authorities", &admin, nil, vars))
	s.Contains(s.global(recorder).FreezeAuthorities, stranger)

	recorder = httptest.NewRecorder()
	s.handler.HandleRemoveFreezeAuthority(recorder, s.request(http.MethodDelete, "/freeze-authorities", &admin, nil, vars))
	s.NotContains(s.global(recorder).FreezeAuthorities, stranger)
}

func (s *AdminHandlerTestSuite) Test_ThawAuthorities() {
	vars := map[string]string{"id": stranger.Hex()}

	recorder := httptest.NewRecorder()
	s.handler.HandleAddThawAuthority(recorder, s.request(http.MethodPut, "/thaw-authorities", &stranger, nil, vars))
	s.Equal(http.StatusForbidden, recorder.Code)

	recorder = httptest.NewRecorder()
	s.handler.HandleAddThawAuthority(recorder, s.request(http.MethodPut, "/thaw-authorities", &admin, nil, vars))
	s.Contains(s.global(recorder).ThawAuthorities, stranger)

	recorder = httptest.NewRecorder()
	s.handler.HandleRemoveThawAuthority(recorder, s.request(http.MethodDelete, "/thaw-authorities", &admin, nil, vars))
	s.NotContains(s.global(recorder).ThawAuthorities, stranger)
}

func (s *AdminHandlerTestSuite) Test_Orchestrators() {
	vars := map[string]string{"id": stranger.Hex()}

	recorder := httptest.NewRecorder()
	s.handler.HandleAddOrchestrator(recorder, s.request(http.MethodPut, "/orchestrators", &admin, state.Permissions{
		RevertOrder: true,
	}, vars))
	s.Equal(http.StatusOK, recorder.Code)
	o, err := s.engine.Orchestrator(stranger)
	s.Nil(err)
	s.True(o.Can(state.PermissionRevertOrder))
	s.False(o.Can(state.PermissionFillOrder))

	recorder = httptest.NewRecorder()
	s.handler.HandleRemoveOrchestrator(recorder, s.request(http.MethodDelete, "/orchestrators", &admin, nil, vars))
	s.Equal(http.StatusOK, recorder.Code)
	o, err = s.engine.Orchestrator(stranger)
	s.Nil(err)
	s.True(o.Removed)
	s.False(o.Can(state.PermissionRevertOrder))
}

func (s *AdminHandlerTestSuite) Test_HandleRemoveOrchestrator_Unknown() {
	recorder := httptest.NewRecorder()

	s.handler.HandleRemoveOrchestrator(recorder, s.request(http.MethodDelete, "/orchestrators", &admin, nil, map[string]string{
		"id": stranger.Hex(),
	}))

	s.Equal(http.StatusNotFound, recorder.Code)
}

func (s *AdminHandlerTestSuite) Test_HandleSetFeeTiers() {
	recorder := httptest.NewRecorder()
	s.handler.HandleSetFeeTiers(recorder, s.request(http.MethodPut, "/v1/fees/tiers", &admin, handlers.TiersBody{
		Thresholds: []uint64{0, 5000},
		Bps:        []uint64{40, 20},
	}, nil))
	s.Equal(fees.TierTable{
		{Threshold: 0, Bps: 40},
		{Threshold: 5000, Bps: 20},
	}, s.global(recorder).FeeTiers)

	recorder = httptest.NewRecorder()
	s.handler.HandleSetFeeTiers(recorder, s.request(http.MethodPut, "/v1/fees/tiers", &admin, handlers.TiersBody{
		Thresholds: []uint64{5000, 0},
		Bps:        []uint64{40, 20},
	}, nil))
	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *AdminHandlerTestSuite) Test_HandleSetInsuranceFeeTiers_LengthMismatch() {
	recorder := httptest.NewRecorder()

	s.handler.HandleSetInsuranceFeeTiers(recorder, s.request(http.MethodPut, "/v1/fees/insurance-tiers", &admin, handlers.TiersBody{
		Thresholds: []uint64{0, 5000},
		Bps:        []uint64{5},
	}, nil))

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *AdminHandlerTestSuite) Test_HandleSetProtocolFee() {
	recorder := httptest.NewRecorder()
	s.handler.HandleSetProtocolFee(recorder, s.request(http.MethodPut, "/v1/fees/protocol", &admin, handlers.FractionBody{
		Numerator:   1,
		Denominator: 2,
	}, nil))
	s.Equal(fees.Fraction{Numerator: 1, Denominator: 2}, s.global(recorder).ProtocolFee)

	recorder = httptest.NewRecorder()
	s.handler.HandleSetProtocolFee(recorder, s.request(http.MethodPut, "/v1/fees/protocol", &admin, handlers.FractionBody{
		Numerator:   1,
		Denominator: 0,
	}, nil))
	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *AdminHandlerTestSuite) Test_HandleSetTargetChainMinFee() {
	recorder := httptest.NewRecorder()

	s.handler.HandleSetTargetChainMinFee(recorder, s.request(http.MethodPut, "/min-fee", &admin, handlers.MinFeeBody{
		MinFee: 11,
	}, map[string]string{"chainId": "5"}))

	s.Equal(http.StatusOK, recorder.Code)
	minFee, err := s.engine.TargetChainMinFee(5)
	s.Nil(err)
	s.Equal(uint64(11), minFee)
}

func (s *AdminHandlerTestSuite) Test_HandleSetTargetChainMinFee_InvalidChain() {
	recorder := httptest.NewRecorder()

	s.handler.HandleSetTargetChainMinFee(recorder, s.request(http.MethodPut, "/min-fee", &admin, handlers.MinFeeBody{
		MinFee: 11,
	}, map[string]string{"chainId": "99999999999"}))

	s.Equal(http.StatusBadRequest, recorder.Code)
}
