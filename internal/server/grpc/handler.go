package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/postplanner/internal/common"
	"github.com/dmitrijs2005/postplanner/internal/rpc"
	"github.com/dmitrijs2005/postplanner/internal/server/models"
)

func (s *GRPCServer) List(ctx context.Context, _ *rpc.ListRequest) (*rpc.ListResponse, error) {
	items, err := s.postcards.List(ctx)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}

	out := make([]rpc.Postcard, 0, len(items))
	for _, p := range items {
		out = append(out, p.Wire())
	}
	return &rpc.ListResponse{Postcards: out}, nil
}

func (s *GRPCServer) Get(ctx context.Context, req *rpc.GetRequest) (*rpc.GetResponse, error) {
	p, err := s.postcards.Get(ctx, req.ID)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}
	return &rpc.GetResponse{Postcard: p.Wire()}, nil
}

func (s *GRPCServer) Insert(ctx context.Context, req *rpc.InsertRequest) (*rpc.InsertResponse, error) {
	in := models.Postcard{
		PrimaryContent:   req.PrimaryContent,
		SecondaryContent: req.SecondaryContent,
		Template:         req.Template,
		State:            req.State,
	}
	if req.ScheduledDate != "" {
		d, err := parseDate(req.ScheduledDate)
		if err != nil {
			return nil, s.statusError(ctx, err)
		}
		in.ScheduledDate = &d
	}

	p, err := s.postcards.Insert(ctx, in)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}

	s.logger.Info(ctx, "Postcard inserted", "id", p.ID)
	return &rpc.InsertResponse{Postcard: p.Wire()}, nil
}

func (s *GRPCServer) Patch(ctx context.Context, req *rpc.PatchRequest) (*rpc.PatchResponse, error) {
	patch := models.PostcardPatch{
		PrimaryContent:   req.PrimaryContent,
		SecondaryContent: req.SecondaryContent,
		Template:         req.Template,
		State:            req.State,
	}
	if req.ScheduledDate != nil {
		d, err := parseDate(*req.ScheduledDate)
		if err != nil {
			return nil, s.statusError(ctx, err)
		}
		patch.ScheduledDate = &d
	}

	p, err := s.postcards.Patch(ctx, req.ID, patch)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}
	return &rpc.PatchResponse{Postcard: p.Wire()}, nil
}

func (s *GRPCServer) Remove(ctx context.Context, req *rpc.RemoveRequest) (*rpc.RemoveResponse, error) {
	if err := s.postcards.Remove(ctx, req.ID); err != nil {
		return nil, s.statusError(ctx, err)
	}

	s.logger.Info(ctx, "Postcard removed", "id", req.ID)
	return &rpc.RemoveResponse{}, nil
}

// statusError maps domain errors to gRPC codes. Internal failures are
// logged and reported without details.
func (s *GRPCServer) statusError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	s.logger.Error(ctx, err.Error())
	return status.Error(codes.Internal, "internal error")
}

// parseDate accepts "YYYY-MM-DD"; anything else, the empty string included,
// is an invalid argument.
func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad scheduled date %q", common.ErrInvalidArgument, s)
	}
	return d, nil
}
