package worker

import (
	"context"
	"testing"
	"time"

	"prizeledger/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingMailer struct {
	codes    []repository.TwoFactorCodeEvent
	receipts []repository.PayoutSettledEvent
}

func (m *recordingMailer) SendTwoFactorCode(_ context.Context, ev repository.TwoFactorCodeEvent) error {
	m.codes = append(m.codes, ev)
	return nil
}

func (m *recordingMailer) SendPayoutReceipt(_ context.Context, ev repository.PayoutSettledEvent) error {
	m.receipts = append(m.receipts, ev)
	return nil
}

type capture struct {
	topic string
	data  []byte
}

func (c *capture) Publish(topic string, data []byte) error {
	c.topic, c.data = topic, data
	return nil
}

func TestProcessor_Dispatch(t *testing.T) {
	mailer := &recordingMailer{}
	proc := NewProcessor(mailer, zap.NewNop())
	ctx := context.Background()

	bus := &capture{}
	require.NoError(t, repository.PublishEvent(bus, repository.TopicTwoFactorCode, repository.TwoFactorCodeEvent{
		AccountID: "acc-1", Email: "maria@example.com", Code: "123456", Amount: decimal.NewFromInt(5),
		ExpiresAt: time.Date(2025, 1, 1, 0, 5, 0, 0, time.UTC),
	}))
	require.NoError(t, proc.Handle(ctx, bus.topic, bus.data))
	require.Len(t, mailer.codes, 1)
	assert.Equal(t, "123456", mailer.codes[0].Code)

	require.NoError(t, repository.PublishEvent(bus, repository.TopicPayoutSettled, repository.PayoutSettledEvent{
		Code: "001-000000001", Amount: decimal.NewFromInt(7),
	}))
	require.NoError(t, proc.Handle(ctx, bus.topic, bus.data))
	require.Len(t, mailer.receipts, 1)
	assert.True(t, mailer.receipts[0].Amount.Equal(decimal.NewFromInt(7)))

	assert.NoError(t, proc.Handle(ctx, repository.TopicPlaySettled, []byte(`{}`)))
	assert.Error(t, proc.Handle(ctx, repository.TopicTwoFactorCode, []byte(`not json`)))
	assert.Error(t, proc.Handle(ctx, repository.TopicTwoFactorCode, []byte(`{"account_id":"acc-1"}`)))
}

func TestLogMailer_MasksCode(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	mailer := NewLogMailer(zap.New(core))

	require.NoError(t, mailer.SendTwoFactorCode(context.Background(), repository.TwoFactorCodeEvent{
		AccountID: "acc-1", Email: "maria@example.com", Code: "123456",
	}))
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "****56", entries[0].ContextMap()["code"])
}
