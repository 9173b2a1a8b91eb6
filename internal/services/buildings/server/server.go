// Package server is the building facade that sits between clients and a
// repository. It serializes fetched buildings and answers name queries.
package server

import (
	"context"
	"strings"

	apperrors "github.com/louisbranch/skyline/internal/platform/errors"
	"github.com/louisbranch/skyline/internal/platform/logging"
	"github.com/louisbranch/skyline/internal/services/buildings/codec"
	"github.com/louisbranch/skyline/internal/services/buildings/domain"
	"github.com/louisbranch/skyline/internal/services/buildings/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/louisbranch/skyline/internal/services/buildings/server"

// Server fronts one building repository.
type Server struct {
	repo       storage.Repository
	serializer codec.Serializer
	logger     *zap.Logger
	tracer     trace.Tracer
}

// Option configures a Server.
type Option func(*Server)

// WithSerializer replaces the default name serializer.
func WithSerializer(serializer codec.Serializer) Option {
	return func(s *Server) {
		if serializer != nil {
			s.serializer = serializer
		}
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logging.OrNop(logger)
	}
}

// WithTracer sets the tracer used for operation spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Server) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// New creates a server over repo.
func New(repo storage.Repository, opts ...Option) *Server {
	s := &Server{
		repo:       repo,
		serializer: codec.NameSerializer,
		logger:     zap.NewNop(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchBuildings fetches every building and hands them to onComplete in
// serialized form. onComplete runs exactly once, before FetchBuildings returns.
func (s *Server) FetchBuildings(ctx context.Context, onComplete func(records []codec.Record, err error)) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := s.tracer.Start(ctx, "Server.FetchBuildings")
	defer span.End()

	s.fetch(ctx, func(buildings []domain.Building, err error) {
		if err != nil {
			recordError(span, err)
			onComplete(nil, err)
			return
		}
		records := codec.SerializeAll(s.serializer, buildings)
		span.SetAttributes(attribute.Int("buildings.count", len(records)))
		s.logger.Debug("fetched buildings", zap.Int("count", len(records)))
		onComplete(records, nil)
	})
}

// FilterBuildings fetches every building and keeps those named exactly query
// (after trimming surrounding space). An empty query is rejected.
func (s *Server) FilterBuildings(ctx context.Context, query string, onComplete func(buildings []domain.Building, err error)) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := s.tracer.Start(ctx, "Server.FilterBuildings")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		err := apperrors.WithMetadata(apperrors.CodeFilterQueryEmpty, "filter query is required", map[string]string{"field": "query"})
		recordError(span, err)
		onComplete(nil, err)
		return
	}
	span.SetAttributes(attribute.String("buildings.query", query))

	s.fetch(ctx, func(buildings []domain.Building, err error) {
		if err != nil {
			recordError(span, err)
			onComplete(nil, err)
			return
		}
		matches := domain.ViewState{Buildings: buildings}.FilterByName(query).Buildings
		span.SetAttributes(attribute.Int("buildings.count", len(matches)))
		s.logger.Debug("filtered buildings", zap.String("query", query), zap.Int("count", len(matches)))
		onComplete(matches, nil)
	})
}

func (s *Server) fetch(ctx context.Context, onComplete storage.FetchFunc) {
	if s == nil || s.repo == nil {
		onComplete(nil, apperrors.New(apperrors.CodeRepositoryUnavailable, "building repository is not configured"))
		return
	}
	s.repo.FetchAll(ctx, func(buildings []domain.Building, err error) {
		if err != nil {
			s.logger.Warn("fetch buildings failed", zap.Error(err))
			onComplete(nil, apperrors.Wrap(apperrors.CodeRepositoryUnavailable, "fetch buildings", err))
			return
		}
		if buildings == nil {
			buildings = []domain.Building{}
		}
		onComplete(buildings, nil)
	})
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
