// Package grpc exposes the graphauth flow controller over gRPC.
package grpc

import (
	"context"
	"errors"
	"net"

	"github.com/dmitrijs2005/graphauth/internal/logging"
	pb "github.com/dmitrijs2005/graphauth/internal/proto"
	"github.com/dmitrijs2005/graphauth/internal/server/services"
	"github.com/dmitrijs2005/graphauth/internal/server/sessions"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	address   string
	auth      *services.AuthService
	sessions  *sessions.Manager
	logger    logging.Logger
	jwtSecret []byte
	limiter   *rate.Limiter
}

var _ pb.GraphAuthServer = (*GRPCServer)(nil)

// NewGRPCServer builds a server bound to address. rateLimit is the number
// of requests per second accepted across all callers; zero disables the
// limit.
func NewGRPCServer(address string, l logging.Logger, as *services.AuthService, sm *sessions.Manager, secretKey string, rateLimit int) (*GRPCServer, error) {
	s := &GRPCServer{
		address:   address,
		logger:    l.With("module", "grpc_server"),
		auth:      as,
		sessions:  sm,
		jwtSecret: []byte(secretKey),
	}
	if rateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(rateLimit), rateLimit)
	}
	return s, nil
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.rateLimitInterceptor, s.accessTokenInterceptor))
	pb.RegisterGraphAuthServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		// a stop that raced ahead of Serve is still a clean shutdown
		if errors.Is(err, grpc.ErrServerStopped) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	return nil
}
