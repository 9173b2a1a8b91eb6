package buildings

import (
	"context"
	"strings"

	apperrors "github.com/louisbranch/skyline/internal/platform/errors"
	"github.com/louisbranch/skyline/internal/platform/timeouts"
	"github.com/louisbranch/skyline/internal/services/buildings/codec"
	"github.com/louisbranch/skyline/internal/services/buildings/domain"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Remote is a building source served over gRPC. Each call blocks on its
// unary RPC and then completes, so callbacks still fire before return.
type Remote struct {
	conn         grpc.ClientConnInterface
	deserializer codec.Deserializer
	locale       string
}

// RemoteOption configures a Remote.
type RemoteOption func(*Remote)

// WithLocale sends locale as the caller's preferred language.
func WithLocale(locale string) RemoteOption {
	return func(r *Remote) {
		r.locale = strings.TrimSpace(locale)
	}
}

// WithRemoteDeserializer replaces the deserializer used for filter results.
func WithRemoteDeserializer(deserializer codec.Deserializer) RemoteOption {
	return func(r *Remote) {
		if deserializer != nil {
			r.deserializer = deserializer
		}
	}
}

// NewRemote creates a remote source over conn.
func NewRemote(conn grpc.ClientConnInterface, opts ...RemoteOption) *Remote {
	r := &Remote{conn: conn, deserializer: codec.NameDeserializer}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FetchBuildings calls BuildingService.FetchBuildings.
func (r *Remote) FetchBuildings(ctx context.Context, onComplete func(records []codec.Record, err error)) {
	out := new(structpb.ListValue)
	if err := r.invoke(ctx, FetchBuildingsMethod, &emptypb.Empty{}, out); err != nil {
		onComplete(nil, err)
		return
	}
	onComplete(codec.FromListValue(out), nil)
}

// FilterBuildings calls BuildingService.FilterBuildings.
func (r *Remote) FilterBuildings(ctx context.Context, query string, onComplete func(buildings []domain.Building, err error)) {
	out := new(structpb.ListValue)
	if err := r.invoke(ctx, FilterBuildingsMethod, wrapperspb.String(query), out); err != nil {
		onComplete(nil, err)
		return
	}
	onComplete(codec.DeserializeAll(r.deserializer, codec.FromListValue(out)), nil)
}

func (r *Remote) invoke(ctx context.Context, method string, in, out any) error {
	if r == nil || r.conn == nil {
		return apperrors.New(apperrors.CodeRepositoryUnavailable, "building connection is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeouts.GRPCRequest)
		defer cancel()
	}
	if r.locale != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, LocaleHeader, r.locale)
	}
	if err := r.conn.Invoke(ctx, method, in, out); err != nil {
		return fromStatus(err)
	}
	return nil
}

// fromStatus turns a status carrying a skyline reason back into a domain
// error so callers can match on codes.
func fromStatus(err error) error {
	code, ok := apperrors.ReasonFromStatus(err)
	if !ok {
		return err
	}
	return apperrors.Wrap(code, status.Convert(err).Message(), err)
}
