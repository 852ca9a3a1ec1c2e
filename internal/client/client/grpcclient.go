package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/graphauth/internal/common"
	"github.com/dmitrijs2005/graphauth/internal/credential"
	"github.com/dmitrijs2005/graphauth/internal/imagepool"
	pb "github.com/dmitrijs2005/graphauth/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// requestTimeout bounds every call that does not carry its own deadline.
const requestTimeout = 10 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.GraphAuthClient

	mu          sync.RWMutex
	accessToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}

	err := invoker(ctx, method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	// An expired grant cannot be refreshed; the user has to log in again.
	if st, ok := status.FromError(err); ok && st.Code() == codes.Unauthenticated {
		s.setToken("")
	}
	return err
}

func NewGraphAuthClientService(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewGraphAuthClient(conn)
	return nil
}

func (s *GRPCClient) CheckUsername(ctx context.Context, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := s.client.CheckUsername(ctx, &pb.CheckUsernameRequest{Username: username})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Available, nil
}

func (s *GRPCClient) Register(ctx context.Context, username string, c credential.Credential) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req := &pb.RegisterRequest{Username: username, Credential: pb.FromCredential(c)}

	if _, err := s.client.Register(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) BeginLogin(ctx context.Context, username string) (*Challenge, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := s.client.BeginLogin(ctx, &pb.BeginLoginRequest{Username: username})
	if err != nil {
		return nil, s.mapError(err)
	}

	return &Challenge{
		SessionID:       resp.SessionID,
		Username:        resp.Username,
		Method:          resp.Method,
		Remaining:       resp.Remaining,
		BackgroundImage: resp.BackgroundImage,
		Grid:            resp.Grid,
	}, nil
}

func (s *GRPCClient) Grid(ctx context.Context, sessionID string) ([]imagepool.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := s.client.Grid(ctx, &pb.GridRequest{SessionID: sessionID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Grid, nil
}

// SubmitAttempt sends one complete attempt. On a grant the access token is
// kept for later calls.
func (s *GRPCClient) SubmitAttempt(ctx context.Context, sessionID string, c credential.Credential) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req := &pb.SubmitAttemptRequest{SessionID: sessionID, Attempt: pb.FromCredential(c)}

	resp, err := s.client.SubmitAttempt(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	res := &Result{
		Outcome:   Outcome(resp.Outcome),
		Remaining: resp.Remaining,
		Message:   resp.Message,
		Username:  resp.Username,
		Method:    resp.Method,
	}

	if res.Outcome == OutcomeGranted {
		s.setToken(resp.AccessToken)
	}

	return res, nil
}

func (s *GRPCClient) WhoAmI(ctx context.Context) (*Identity, error) {
	if s.token() == "" {
		return nil, ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := s.client.WhoAmI(ctx, &pb.WhoAmIRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &Identity{Username: resp.Username, Method: resp.Method, ExpiresAt: resp.ExpiresAt}, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

// LoggedIn reports whether a grant is held.
func (s *GRPCClient) LoggedIn() bool {
	return s.token() != ""
}

// Logout forgets the access token.
func (s *GRPCClient) Logout() {
	s.setToken("")
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}

	var kind error
	switch st.Code() {
	case codes.Unauthenticated:
		kind = ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.ResourceExhausted:
		kind = ErrRateLimited
	case codes.InvalidArgument, codes.FailedPrecondition:
		kind = ErrRejected
	case codes.NotFound:
		kind = ErrNotFound
	case codes.PermissionDenied:
		kind = ErrLocked
	case codes.AlreadyExists:
		kind = ErrConflict
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
	return &RemoteError{Message: st.Message(), kind: kind}
}
