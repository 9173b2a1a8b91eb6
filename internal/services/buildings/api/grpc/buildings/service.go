// Package buildings exposes the building server facade over gRPC and provides
// the matching remote source for clients.
package buildings

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/louisbranch/skyline/internal/platform/errors"
	"github.com/louisbranch/skyline/internal/platform/i18n"
	"github.com/louisbranch/skyline/internal/services/buildings/codec"
	"github.com/louisbranch/skyline/internal/services/buildings/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// LocaleHeader is the metadata key read for the caller's preferred locale.
const LocaleHeader = "accept-language"

// Facade is the building server the service delegates to.
type Facade interface {
	FetchBuildings(ctx context.Context, onComplete func(records []codec.Record, err error))
	FilterBuildings(ctx context.Context, query string, onComplete func(buildings []domain.Building, err error))
}

// Service exposes BuildingService operations.
type Service struct {
	facade     Facade
	serializer codec.Serializer
}

// NewService creates a building service backed by facade.
func NewService(facade Facade) *Service {
	return &Service{
		facade:     facade,
		serializer: codec.NameSerializer,
	}
}

// FetchBuildings returns every building as serialized records.
func (s *Service) FetchBuildings(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	if s == nil || s.facade == nil {
		return nil, status.Error(codes.Internal, "building server is not configured")
	}

	var (
		out    *structpb.ListValue
		outErr error
	)
	s.facade.FetchBuildings(ctx, func(records []codec.Record, err error) {
		if err != nil {
			outErr = err
			return
		}
		out, outErr = encodeRecords(records)
	})
	if outErr != nil {
		return nil, toStatus(ctx, outErr)
	}
	return out, nil
}

// FilterBuildings returns the buildings named exactly the requested query.
func (s *Service) FilterBuildings(ctx context.Context, in *wrapperspb.StringValue) (*structpb.ListValue, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "filter buildings request is required")
	}
	if s == nil || s.facade == nil {
		return nil, status.Error(codes.Internal, "building server is not configured")
	}

	var (
		out    *structpb.ListValue
		outErr error
	)
	s.facade.FilterBuildings(ctx, in.GetValue(), func(buildings []domain.Building, err error) {
		if err != nil {
			outErr = err
			return
		}
		out, outErr = encodeRecords(codec.SerializeAll(s.serializer, buildings))
	})
	if outErr != nil {
		return nil, toStatus(ctx, outErr)
	}
	return out, nil
}

func encodeRecords(records []codec.Record) (*structpb.ListValue, error) {
	list, err := codec.ToListValue(records)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeRecordEncodingFailed, "encode building records", err)
	}
	return list, nil
}

func toStatus(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		printer := i18n.NewPrinter(localeFromContext(ctx))
		return domainErr.ToGRPCStatus(printer.Locale(), printer.Text(string(domainErr.Code)))
	}
	return status.Errorf(codes.Internal, "buildings: %v", err)
}

func localeFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	return strings.Join(md.Get(LocaleHeader), ",")
}

var _ BuildingServiceServer = (*Service)(nil)
