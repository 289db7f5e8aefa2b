package engine_test

import (
	"errors"
	"testing"

	"github.com/jong-un-1/mcp-cross-chain/engine"
	"github.com/jong-un-1/mcp-cross-chain/fees"
	"github.com/stretchr/testify/suite"
)

type FeesTestSuite struct {
	EngineTestSuite
}

func TestRunFeesTestSuite(t *testing.T) {
	suite.Run(t, new(FeesTestSuite))
}

func (s *FeesTestSuite) Test_SetFeeTiers() {
	err := s.engine.SetFeeTiers(admin, []uint64{0, 500}, []uint64{40, 20})
	s.Nil(err)

	g, err := s.engine.GlobalState()
	s.Nil(err)
	s.Equal(fees.TierTable{{Threshold: 0, Bps: 40}, {Threshold: 500, Bps: 20}}, g.FeeTiers)
}

func (s *FeesTestSuite) Test_SetFeeTiers_Invalid() {
	err := s.engine.SetFeeTiers(admin, []uint64{0, 500}, []uint64{40})
	s.True(errors.Is(err, engine.ErrFeeTierConfigInvalid))

	err = s.engine.SetFeeTiers(admin, []uint64{500, 500}, []uint64{40, 20})
	s.True(errors.Is(err, engine.ErrFeeTierConfigInvalid))

	err = s.engine.SetInsuranceFeeTiers(admin, []uint64{500, 0}, []uint64{40, 20})
	s.True(errors.Is(err, engine.ErrFeeTierConfigInvalid))

	err = s.engine.SetFeeTiers(stranger, []uint64{0}, []uint64{40})
	s.True(errors.Is(err, engine.ErrUnauthorized))
}

func (s *FeesTestSuite) Test_SetInsuranceFeeTiers() {
	err := s.engine.SetInsuranceFeeTiers(admin, []uint64{0}, []uint64{0})
	s.Nil(err)

	breakdown, err := s.engine.QuoteFee(20000, destChain)
	s.Nil(err)
	s.Equal(uint64(0), breakdown.Insurance)
	s.Equal(uint64(27), breakdown.Total)
}

func (s *FeesTestSuite) Test_SetProtocolFeeFraction() {
	err := s.engine.SetProtocolFeeFraction(admin, 1, 0)
	s.True(errors.Is(err, engine.ErrInvalidAmount))

	err = s.engine.SetProtocolFeeFraction(admin, 3, 2)
	s.True(errors.Is(err, engine.ErrInvalidAmount))

	err = s.engine.SetProtocolFeeFraction(admin, 1, 2)
	s.Nil(err)

	breakdown, err := s.engine.QuoteFee(20000, destChain)
	s.Nil(err)
	s.Equal(uint64(10), breakdown.Protocol)
	s.Equal(uint64(10), breakdown.LP)
}

func (s *FeesTestSuite) Test_QuoteFee() {
	breakdown, err := s.engine.QuoteFee(20000, destChain)

	s.Nil(err)
	s.Equal(fees.Breakdown{
		Base:      7,
		Insurance: 10,
		Protocol:  5,
		LP:        15,
		Total:     37,
	}, breakdown)
}

func (s *FeesTestSuite) Test_QuoteFee_UnknownChainHasNoBaseFee() {
	breakdown, err := s.engine.QuoteFee(500, 99)

	s.Nil(err)
	s.Equal(uint64(0), breakdown.Base)
	s.Equal(uint64(2), breakdown.Total)
}

func (s *FeesTestSuite) Test_QuoteFee_ZeroAmount() {
	_, err := s.engine.QuoteFee(0, destChain)

	s.True(errors.Is(err, engine.ErrInvalidAmount))
}
