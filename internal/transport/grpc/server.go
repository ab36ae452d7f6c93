package grpc

import (
	"context"
	"net"
	"time"

	"prizeledger/internal/model"
	pb "prizeledger/internal/proto"
	"prizeledger/internal/service"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// EventSink receives events published by remote services over EventService.
type EventSink interface {
	Handle(ctx context.Context, topic string, data []byte) error
}

type Server struct {
	pb.UnimplementedWalletServer
	pb.UnimplementedEventServiceServer

	svc  service.WalletService
	sink EventSink
	srv  *grpc.Server
	addr string
	log  *zap.Logger
}

// NewServer registers the wallet service, and the event service when sink is
// set.
func NewServer(addr string, svc service.WalletService, sink EventSink, log *zap.Logger) *Server {
	s := &Server{svc: svc, sink: sink, addr: addr, log: log.Named("grpc")}
	s.srv = grpc.NewServer(grpc.ChainUnaryInterceptor(s.logUnary))
	pb.RegisterWalletServer(s.srv, s)
	if sink != nil {
		pb.RegisterEventServiceServer(s.srv, s)
	}
	return s
}

func (s *Server) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

// Serve runs on an existing listener.
func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("grpc server listening", zap.String("addr", lis.Addr().String()))
	return s.srv.Serve(lis)
}

func (s *Server) Stop(ctx context.Context) error {
	s.srv.GracefulStop()
	return nil
}

func (s *Server) logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	fields := []zap.Field{zap.String("method", info.FullMethod), zap.Duration("took", time.Since(start))}
	if err != nil {
		s.log.Warn("grpc call failed", append(fields, zap.Error(err))...)
	} else {
		s.log.Debug("grpc call", fields...)
	}
	return resp, err
}

// rejection splits err into the in-band kind and message. Non-domain errors
// become INTERNAL and are logged.
func (s *Server) rejection(err error) (string, string) {
	if e, ok := model.AsError(err); ok {
		return string(e.Code), e.Message
	}
	s.log.Error("wallet call failed", zap.Error(err))
	return "INTERNAL", "internal error"
}

func (s *Server) Redeem(ctx context.Context, req *pb.CodeRequest) (*pb.SessionReply, error) {
	view, err := s.svc.Redeem(ctx, req.GetCode())
	if err != nil {
		kind, msg := s.rejection(err)
		return &pb.SessionReply{Error: kind, Message: msg}, nil
	}
	return sessionReply(view), nil
}

func (s *Server) GetSession(ctx context.Context, req *pb.CodeRequest) (*pb.SessionReply, error) {
	view, err := s.svc.GetSession(ctx, req.GetCode())
	if err != nil {
		kind, msg := s.rejection(err)
		return &pb.SessionReply{Error: kind, Message: msg}, nil
	}
	return sessionReply(view), nil
}

// Play trusts account_id: the wallet service is only exposed to internal callers.
func (s *Server) Play(ctx context.Context, req *pb.PlayRequest) (*pb.PlayReply, error) {
	in, err := modelPlay(req)
	if err == nil {
		var res *model.PlayResult
		if res, err = s.svc.Play(ctx, in); err == nil {
			return playReply(res), nil
		}
	}
	kind, msg := s.rejection(err)
	return &pb.PlayReply{Error: kind, Message: msg}, nil
}

func (s *Server) Publish(ctx context.Context, req *pb.EventRequest) (*pb.EventReply, error) {
	if err := s.sink.Handle(ctx, req.GetTopic(), req.GetPayload()); err != nil {
		s.log.Error("event handling failed", zap.String("topic", req.GetTopic()), zap.Error(err))
		return &pb.EventReply{Success: false, ErrorMessage: err.Error()}, nil
	}
	return &pb.EventReply{Success: true}, nil
}
