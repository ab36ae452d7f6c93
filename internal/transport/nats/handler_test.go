package nats

import (
	"context"
	"errors"
	"testing"

	"prizeledger/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubWallet struct {
	err error
}

func (s *stubWallet) Redeem(_ context.Context, code string) (*model.SessionView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.SessionView{Code: code, CreditsLeft: 3}, nil
}

func (s *stubWallet) GetSession(context.Context, string) (*model.SessionView, error) {
	return nil, model.ErrSessionNotFound
}

func (s *stubWallet) Play(_ context.Context, req model.PlayRequest) (*model.PlayResult, error) {
	if !req.Bet.Equal(decimal.NewFromInt(2)) {
		return nil, model.ErrInvalidBet
	}
	return &model.PlayResult{PlayID: "p1", Prize: decimal.Zero}, nil
}

func TestHandler_Replies(t *testing.T) {
	wallet := &stubWallet{}
	h := NewHandler(wallet, nil, zap.NewNop())
	ctx := context.Background()

	reply := h.handle(ctx, SubjectRedeem, []byte(`{"code":"001-000000001"}`), h.redeem)
	require.True(t, reply.Success)
	assert.Equal(t, "001-000000001", reply.Data.(*model.SessionView).Code)

	reply = h.handle(ctx, SubjectPlay, []byte(`{"code":"001-000000001","gameId":"slots","bet":2}`), h.play)
	assert.True(t, reply.Success)

	reply = h.handle(ctx, SubjectPlay, []byte(`{"code":"001-000000001","gameId":"slots","bet":3}`), h.play)
	assert.False(t, reply.Success)
	assert.Equal(t, string(model.CodeInvalidBet), reply.Error)
	assert.Nil(t, reply.Data)

	reply = h.handle(ctx, SubjectRedeem, []byte(`nope`), h.redeem)
	assert.Equal(t, string(model.CodeInvalidParams), reply.Error)

	wallet.err = errors.New("connection reset")
	reply = h.handle(ctx, SubjectRedeem, []byte(`{"code":"x"}`), h.redeem)
	assert.Equal(t, "INTERNAL", reply.Error)
	assert.Equal(t, "internal error", reply.Message)

	body, err := json.Marshal(reply)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"INTERNAL","message":"internal error"}`, string(body))
}
