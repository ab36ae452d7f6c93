package grpc

import (
	"context"
	"errors"
	"net"
	"testing"

	"prizeledger/internal/model"
	pb "prizeledger/internal/proto"
	"prizeledger/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

type mockWallet struct {
	redeemed string
	played   model.PlayRequest
	err      error
}

func (m *mockWallet) Redeem(_ context.Context, code string) (*model.SessionView, error) {
	m.redeemed = code
	if m.err != nil {
		return nil, m.err
	}
	return &model.SessionView{Code: code, CreditsLeft: 5}, nil
}

func (m *mockWallet) GetSession(_ context.Context, code string) (*model.SessionView, error) {
	return nil, model.ErrSessionNotFound
}

func (m *mockWallet) Play(_ context.Context, req model.PlayRequest) (*model.PlayResult, error) {
	m.played = req
	res := &model.PlayResult{PlayID: "p1", Prize: decimal.NewFromInt(2), TotalWinnings: decimal.RequireFromString("2.5")}
	if req.AccountID != "" {
		balance := decimal.RequireFromString("98.75")
		res.Balance = &balance
		return res, nil
	}
	left := int64(4)
	res.CreditsLeft = &left
	return res, nil
}

type mockSink struct {
	topic string
	data  []byte
	err   error
}

func (m *mockSink) Handle(_ context.Context, topic string, data []byte) error {
	m.topic, m.data = topic, data
	return m.err
}

var _ service.WalletService = (*Client)(nil)

func TestServer_Publish(t *testing.T) {
	sink := &mockSink{}
	server := &Server{sink: sink, log: zap.NewNop()}

	payload := []byte(`{"account_id":"user123"}`)
	res, err := server.Publish(context.Background(), &pb.EventRequest{Topic: "notifications.twofactor", Payload: payload})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "notifications.twofactor", sink.topic)
	assert.Equal(t, payload, sink.data)

	sink.err = errors.New("mailer down")
	res, err = server.Publish(context.Background(), &pb.EventRequest{Topic: "notifications.twofactor"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "mailer down", res.ErrorMessage)
}

func startBufServer(t *testing.T, wallet service.WalletService, sink EventSink) grpc.DialOption {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := NewServer("bufnet", wallet, sink, zap.NewNop())
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(func() { _ = srv.Stop(context.Background()) })

	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})
}

func TestClient_RoundTrip(t *testing.T) {
	wallet := &mockWallet{}
	dialer := startBufServer(t, wallet, nil)

	client, err := NewClient("passthrough:///bufnet", dialer)
	require.NoError(t, err)
	defer client.Close()
	ctx := context.Background()

	view, err := client.Redeem(ctx, "001-000000001")
	require.NoError(t, err)
	assert.Equal(t, int64(5), view.CreditsLeft)
	assert.Equal(t, "001-000000001", wallet.redeemed)

	res, err := client.Play(ctx, model.PlayRequest{Code: "001-000000001", GameID: "dice", Bet: decimal.NewFromInt(1),
		Params: model.GameParams{Target: decimal.NewFromInt(50)}})
	require.NoError(t, err)
	assert.True(t, res.Prize.Equal(decimal.NewFromInt(2)))
	assert.True(t, res.TotalWinnings.Equal(decimal.RequireFromString("2.5")))
	require.NotNil(t, res.CreditsLeft)
	assert.Equal(t, int64(4), *res.CreditsLeft)
	assert.Nil(t, res.Balance)
	assert.Equal(t, "dice", wallet.played.GameID)
	assert.True(t, wallet.played.Params.Target.Equal(decimal.NewFromInt(50)))

	res, err = client.Play(ctx, model.PlayRequest{AccountID: "acc-1", GameID: "wheel", Bet: decimal.RequireFromString("1.25"),
		Params: model.GameParams{Segments: 10, Pick: 3}})
	require.NoError(t, err)
	require.NotNil(t, res.Balance)
	assert.Equal(t, "98.75", res.Balance.String())
	assert.Nil(t, res.CreditsLeft)
	assert.Equal(t, "acc-1", wallet.played.AccountID)
	assert.True(t, wallet.played.Bet.Equal(decimal.RequireFromString("1.25")))
	assert.Equal(t, 10, wallet.played.Params.Segments)
	assert.Equal(t, 3, wallet.played.Params.Pick)

	_, err = client.GetSession(ctx, "001-000000001")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	wallet.err = errors.New("db down")
	_, err = client.Redeem(ctx, "001-000000002")
	e, ok := model.AsError(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrorCode("INTERNAL"), e.Code)
}

func TestGrpcBus_Publish(t *testing.T) {
	sink := &mockSink{}
	dialer := startBufServer(t, &mockWallet{}, sink)

	bus, cleanup, err := NewGrpcBusFromAddr("passthrough:///bufnet", dialer)
	require.NoError(t, err)
	defer cleanup()

	require.NoError(t, bus.Publish("payouts.settled", []byte(`{"code":"001-000000001"}`)))
	assert.Equal(t, "payouts.settled", sink.topic)
	assert.JSONEq(t, `{"code":"001-000000001"}`, string(sink.data))

	sink.err = errors.New("rejected")
	assert.EqualError(t, bus.Publish("payouts.settled", nil), "rejected")
}

func TestWallet_PlayRejectsMalformedBet(t *testing.T) {
	wallet := &mockWallet{}
	dialer := startBufServer(t, wallet, nil)

	conn, err := dial("passthrough:///bufnet", dialer)
	require.NoError(t, err)
	defer conn.Close()

	reply, err := pb.NewWalletClient(conn).Play(context.Background(), &pb.PlayRequest{Code: "001-000000001", GameId: "dice", Bet: "ten"})
	require.NoError(t, err)
	assert.False(t, reply.GetSuccess())
	assert.Equal(t, string(model.CodeInvalidParams), reply.GetError())
	assert.Empty(t, wallet.played.GameID)
}
