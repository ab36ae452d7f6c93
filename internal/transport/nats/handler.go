package nats

import (
	"context"

	"prizeledger/internal/model"
	"prizeledger/internal/service"

	jsoniter "github.com/json-iterator/go"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	SubjectRedeem = "wallet.redeem"
	SubjectPlay   = "wallet.play"

	queueGroup = "ledger_group"
)

// Reply is the response body of every wallet command.
type Reply struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Handler answers wallet commands over NATS request/reply.
type Handler struct {
	svc  service.WalletService
	nc   *nats.Conn
	subs []*nats.Subscription
	log  *zap.Logger
}

func NewHandler(svc service.WalletService, nc *nats.Conn, log *zap.Logger) *Handler {
	return &Handler{svc: svc, nc: nc, log: log.Named("nats")}
}

// Start subscribes to command subjects and blocks until ctx is cancelled (graceful shutdown).
func (h *Handler) Start(ctx context.Context) error {
	routes := map[string]func(context.Context, []byte) (any, error){
		SubjectRedeem: h.redeem,
		SubjectPlay:   h.play,
	}
	for subject, fn := range routes {
		sub, err := h.nc.QueueSubscribe(subject, queueGroup, h.respond(ctx, fn))
		if err != nil {
			return err
		}
		h.subs = append(h.subs, sub)
	}

	h.log.Info("NATS command handler is running")
	<-ctx.Done()
	h.log.Info("NATS command handler shutting down, draining subscriptions")

	for _, s := range h.subs {
		_ = s.Drain()
	}
	return nil
}

func (h *Handler) Stop(ctx context.Context) error {
	return nil
}

func (h *Handler) respond(ctx context.Context, fn func(context.Context, []byte) (any, error)) nats.MsgHandler {
	return func(m *nats.Msg) {
		reply := h.handle(ctx, m.Subject, m.Data, fn)
		if m.Reply == "" {
			return
		}
		body, err := json.Marshal(reply)
		if err != nil {
			h.log.Error("encode reply", zap.Error(err))
			return
		}
		if err := m.Respond(body); err != nil {
			h.log.Warn("respond failed", zap.String("subject", m.Subject), zap.Error(err))
		}
	}
}

func (h *Handler) handle(ctx context.Context, subject string, data []byte, fn func(context.Context, []byte) (any, error)) Reply {
	out, err := fn(ctx, data)
	if err == nil {
		return Reply{Success: true, Data: out}
	}
	reply := Reply{}
	if e, ok := model.AsError(err); ok {
		reply.Error, reply.Message = string(e.Code), e.Message
	} else {
		h.log.Error("wallet command failed", zap.String("subject", subject), zap.Error(err))
		reply.Error, reply.Message = "INTERNAL", "internal error"
	}
	return reply
}

func (h *Handler) redeem(ctx context.Context, data []byte) (any, error) {
	var req model.RedeemRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, model.NewError(model.CodeInvalidParams, "invalid JSON body")
	}
	return h.svc.Redeem(ctx, req.Code)
}

func (h *Handler) play(ctx context.Context, data []byte) (any, error) {
	var req model.PlayRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, model.NewError(model.CodeInvalidParams, "invalid JSON body")
	}
	return h.svc.Play(ctx, req)
}
