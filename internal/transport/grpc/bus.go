package grpc

import (
	"context"
	"errors"
	"time"

	"prizeledger/internal/model"
	pb "prizeledger/internal/proto"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const publishTimeout = 5 * time.Second

// GrpcBus publishes events to a remote EventService over gRPC.
// Used when BusProvider == "grpc" in config.
type GrpcBus struct {
	client pb.EventServiceClient
}

// NewGrpcBusFromAddr dials the remote EventService and returns a GrpcBus and a cleanup function.
func NewGrpcBusFromAddr(addr string, opts ...grpc.DialOption) (*GrpcBus, func(), error) {
	conn, err := dial(addr, opts...)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = conn.Close() }
	return &GrpcBus{client: pb.NewEventServiceClient(conn)}, cleanup, nil
}

func dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	base := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	return grpc.NewClient(addr, append(base, opts...)...)
}

// Publish sends an event to the remote EventService.
func (b *GrpcBus) Publish(topic string, data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	resp, err := b.client.Publish(ctx, &pb.EventRequest{Topic: topic, Payload: data})
	if err != nil {
		return err
	}
	if !resp.GetSuccess() {
		return errors.New(resp.GetErrorMessage())
	}
	return nil
}

// Client calls the wallet service of a remote ledger.
type Client struct {
	conn   *grpc.ClientConn
	wallet pb.WalletClient
}

func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	conn, err := dial(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, wallet: pb.NewWalletClient(conn)}, nil
}

func (c *Client) Close() error { return c.conn.Close() }

func replyErr(kind, msg string) error {
	return &model.Error{Code: model.ErrorCode(kind), Message: msg}
}

func (c *Client) Redeem(ctx context.Context, code string) (*model.SessionView, error) {
	reply, err := c.wallet.Redeem(ctx, &pb.CodeRequest{Code: code})
	if err != nil {
		return nil, err
	}
	if !reply.GetSuccess() {
		return nil, replyErr(reply.GetError(), reply.GetMessage())
	}
	return sessionView(reply)
}

func (c *Client) GetSession(ctx context.Context, code string) (*model.SessionView, error) {
	reply, err := c.wallet.GetSession(ctx, &pb.CodeRequest{Code: code})
	if err != nil {
		return nil, err
	}
	if !reply.GetSuccess() {
		return nil, replyErr(reply.GetError(), reply.GetMessage())
	}
	return sessionView(reply)
}

func (c *Client) Play(ctx context.Context, req model.PlayRequest) (*model.PlayResult, error) {
	reply, err := c.wallet.Play(ctx, playRequest(req))
	if err != nil {
		return nil, err
	}
	if !reply.GetSuccess() {
		return nil, replyErr(reply.GetError(), reply.GetMessage())
	}
	return playResult(reply)
}
