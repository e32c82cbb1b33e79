package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/postplanner/internal/client/models"
	"github.com/dmitrijs2005/postplanner/internal/common"
	"github.com/dmitrijs2005/postplanner/internal/rpc"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      rpc.PostcardServiceClient
	health      healthpb.HealthClient
}

func withRequestID(ctx context.Context) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	if len(md.Get(common.RequestIDHeaderName)) == 0 {
		md.Set(common.RequestIDHeaderName, uuid.NewString())
	}
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) requestIDInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withRequestID(ctx), method, req, reply, cc, opts...)
}

// NewGRPCClient creates a client for the postcard service at endpointURL.
// A non-positive timeout leaves calls bounded only by their context.
func NewGRPCClient(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.requestIDInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewPostcardServiceClient(conn)
	s.health = healthpb.NewHealthClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) FetchAll(ctx context.Context) ([]models.Postcard, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.List(ctx, &rpc.ListRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}

	items := make([]models.Postcard, 0, len(resp.Postcards))
	for _, p := range resp.Postcards {
		m, err := fromWire(p)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, nil
}

func (s *GRPCClient) Get(ctx context.Context, id string) (*models.Postcard, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Get(ctx, &rpc.GetRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return fromWirePtr(resp.Postcard)
}

func (s *GRPCClient) Insert(ctx context.Context, fields models.Fields) (*models.Postcard, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &rpc.InsertRequest{
		PrimaryContent:   fields.PrimaryContent,
		SecondaryContent: fields.SecondaryContent,
		Template:         string(fields.Template),
		State:            string(fields.State),
		ScheduledDate:    models.FormatDate(fields.ScheduledDate),
	}

	resp, err := s.client.Insert(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return fromWirePtr(resp.Postcard)
}

func (s *GRPCClient) Patch(ctx context.Context, id string, patch models.Patch) (*models.Postcard, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &rpc.PatchRequest{
		ID:               id,
		PrimaryContent:   patch.PrimaryContent,
		SecondaryContent: patch.SecondaryContent,
	}
	if patch.Template != nil {
		t := string(*patch.Template)
		req.Template = &t
	}
	if patch.State != nil {
		st := string(*patch.State)
		req.State = &st
	}
	if patch.ScheduledDate != nil {
		d := models.FormatDate(patch.ScheduledDate)
		req.ScheduledDate = &d
	}

	resp, err := s.client.Patch(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return fromWirePtr(resp.Postcard)
}

func (s *GRPCClient) Remove(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.client.Remove(ctx, &rpc.RemoveRequest{ID: id}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.InvalidArgument, codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func fromWire(p rpc.Postcard) (models.Postcard, error) {
	m := models.Postcard{
		ID:               p.ID,
		PrimaryContent:   p.PrimaryContent,
		SecondaryContent: p.SecondaryContent,
		Template:         models.Template(p.Template),
		State:            models.State(p.State),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.ScheduledDate != "" {
		d, err := models.ParseDate(p.ScheduledDate)
		if err != nil {
			return models.Postcard{}, fmt.Errorf("postcard %s: %w", p.ID, err)
		}
		m.ScheduledDate = &d
	}
	return m, nil
}

func fromWirePtr(p rpc.Postcard) (*models.Postcard, error) {
	m, err := fromWire(p)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
