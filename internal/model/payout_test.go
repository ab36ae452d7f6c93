package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegalTransition(t *testing.T) {
	cases := []struct {
		from   PayoutStatus
		action PayoutAction
		to     PayoutStatus
		ok     bool
	}{
		{StatusPending, ActionApprove, StatusApproved, true},
		{StatusPending, ActionReject, StatusRejected, true},
		{StatusPending, ActionPay, StatusPaid, true},
		{StatusApproved, ActionPay, StatusPaid, true},
		{StatusApproved, ActionApprove, "", false},
		{StatusApproved, ActionReject, "", false},
		{StatusRejected, ActionApprove, "", false},
		{StatusRejected, ActionPay, "", false},
		{StatusRejected, ActionReject, "", false},
		{StatusPaid, ActionApprove, "", false},
		{StatusPaid, ActionReject, "", false},
		{StatusPaid, ActionPay, "", false},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"/"+string(tc.action), func(t *testing.T) {
			to, err := LegalTransition(tc.from, tc.action)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.to, to)
				return
			}
			assert.ErrorIs(t, err, ErrIllegalTransition)
		})
	}
}

func TestLegalTransition_UnknownAction(t *testing.T) {
	_, err := LegalTransition(StatusPending, PayoutAction("refund"))
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := NewError(CodeWagerNotMet, "wager 5 more").WithShortfall(decimal.NewFromInt(5))
	wrapped := errors.Join(errors.New("submit"), err)

	assert.ErrorIs(t, wrapped, ErrWagerNotMet)
	assert.NotErrorIs(t, wrapped, ErrInsufficientBal)

	derr, ok := AsError(wrapped)
	require.True(t, ok)
	require.NotNil(t, derr.Shortfall)
	assert.True(t, derr.Shortfall.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, ClassInsufficient, derr.Code.Class())
}

func TestAccount_Wager(t *testing.T) {
	a := Account{
		Email:          "p@example.com",
		WagerRequired:  decimal.NewFromInt(100),
		WagerCompleted: decimal.NewFromInt(40),
	}
	assert.False(t, a.WagerMet())
	assert.True(t, a.WagerShortfall().Equal(decimal.NewFromInt(60)))
	assert.True(t, a.EmailOnly())

	a.WagerCompleted = decimal.NewFromInt(100)
	a.WalletAddress = "0xabc"
	assert.True(t, a.WagerMet())
	assert.True(t, a.WagerShortfall().IsZero())
	assert.False(t, a.EmailOnly())
}

func TestSession_HasValue(t *testing.T) {
	s := Session{CreditsIssued: 10, CreditsUsed: 10, TotalWinnings: decimal.NewFromInt(2)}
	assert.True(t, s.HasValue())

	s.Claimed = true
	assert.False(t, s.HasValue())

	s.CreditsUsed = 9
	assert.True(t, s.HasValue())
	assert.Equal(t, int64(1), s.CreditsLeft())
}
