package grpc

import (
	"context"

	"github.com/dmitrijs2005/graphauth/internal/attempt"
	"github.com/dmitrijs2005/graphauth/internal/credential"
	pb "github.com/dmitrijs2005/graphauth/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) CheckUsername(ctx context.Context, req *pb.CheckUsernameRequest) (*pb.CheckUsernameResponse, error) {
	if err := s.auth.CheckUsername(ctx, req.Username); err != nil {
		return nil, toStatus(err)
	}
	return &pb.CheckUsernameResponse{Available: true}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {

	s.logger.Debug(ctx, "Registration request", "username", req.Username)

	user, err := s.auth.Register(ctx, req.Username, req.Credential.ToCredential())
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.RegisterResponse{
		ID:        user.ID,
		Username:  user.Username,
		Method:    user.Method(),
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *GRPCServer) BeginLogin(ctx context.Context, req *pb.BeginLoginRequest) (*pb.BeginLoginResponse, error) {
	login, err := s.auth.BeginLogin(ctx, req.Username)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &pb.BeginLoginResponse{
		SessionID: s.sessions.Add(login),
		Username:  login.Username(),
		Method:    login.Method(),
		Remaining: login.Remaining(),
	}
	if login.Method() == credential.MethodImageSequence {
		resp.Grid = login.Grid()
	} else {
		resp.BackgroundImage = login.BackgroundImage()
	}
	return resp, nil
}

func (s *GRPCServer) Grid(ctx context.Context, req *pb.GridRequest) (*pb.GridResponse, error) {
	login, err := s.sessions.Get(req.SessionID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.GridResponse{Grid: login.Grid()}, nil
}

func (s *GRPCServer) SubmitAttempt(ctx context.Context, req *pb.SubmitAttemptRequest) (*pb.SubmitAttemptResponse, error) {
	login, err := s.sessions.Get(req.SessionID)
	if err != nil {
		return nil, toStatus(err)
	}

	res, err := login.Submit(ctx, req.Attempt.ToCredential())
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &pb.SubmitAttemptResponse{Remaining: res.Remaining, Message: res.Message}
	switch res.Outcome {
	case attempt.StateGranted:
		s.sessions.Remove(req.SessionID)
		resp.Outcome = pb.OutcomeGranted
		resp.Username = res.Grant.Username
		resp.Method = res.Grant.Method
		resp.AccessToken = res.Grant.Token
	case attempt.StateLocked:
		// The session stays until its lockout delay elapses so further
		// submits are refused as locked rather than unknown.
		resp.Outcome = pb.OutcomeLocked
	default:
		resp.Outcome = pb.OutcomeRetry
	}
	return resp, nil
}

func (s *GRPCServer) WhoAmI(ctx context.Context, req *pb.WhoAmIRequest) (*pb.WhoAmIResponse, error) {
	claims, ok := claimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	resp := &pb.WhoAmIResponse{Username: claims.Username, Method: claims.Method}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	return resp, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {

	return &pb.PingResponse{Status: "OK"}, nil

}
