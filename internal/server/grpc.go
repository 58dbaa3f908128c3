package server

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/efebarandurmaz/ranker/api/scorepb"
	"github.com/efebarandurmaz/ranker/internal/bm25"
	"github.com/efebarandurmaz/ranker/internal/corpus"
	"github.com/efebarandurmaz/ranker/internal/ranking"
)

// ScoreServer exposes a ranking.Service as the ScoreGetter gRPC service.
type ScoreServer struct {
	scorepb.UnimplementedScoreGetterServer

	svc    *ranking.Service
	buffer int
}

// NewScoreServer returns a ScoreServer streaming through a channel of
// capacity buffer.
func NewScoreServer(svc *ranking.Service, buffer int) *ScoreServer {
	if buffer < 1 {
		buffer = DefaultStreamBuffer
	}
	return &ScoreServer{svc: svc, buffer: buffer}
}

// DatasetScore streams dataset ids by descending relevance.
func (s *ScoreServer) DatasetScore(req *scorepb.ScoreRequest, stream grpc.ServerStreamingServer[scorepb.DatasetScoreResponse]) error {
	ctx := stream.Context()
	results, err := s.svc.ScoreDatasets(ctx, req.GetQuery(), req.GetNumResults())
	if err != nil {
		return grpcError(err)
	}
	sent := Pipe(ctx, slices.Values(results), s.buffer, func(r bm25.ScoredDocument[corpus.DatasetID]) error {
		return stream.Send(&scorepb.DatasetScoreResponse{DatasetId: r.ID, Score: r.Score})
	})
	s.svc.Metrics().RecordStreamed(corpus.KindDataset.String(), sent)
	return nil
}

// PaperScore streams (paper id, dataset id) pairs by descending relevance.
func (s *ScoreServer) PaperScore(req *scorepb.ScoreRequest, stream grpc.ServerStreamingServer[scorepb.PaperScoreResponse]) error {
	ctx := stream.Context()
	results, err := s.svc.ScorePapers(ctx, req.GetQuery(), req.GetNumResults())
	if err != nil {
		return grpcError(err)
	}
	sent := Pipe(ctx, slices.Values(results), s.buffer, func(r bm25.ScoredDocument[corpus.PaperKey]) error {
		return stream.Send(&scorepb.PaperScoreResponse{
			PaperId:   r.ID.PaperIDBytes(),
			DatasetId: r.ID.DatasetID,
			Score:     r.Score,
		})
	})
	s.svc.Metrics().RecordStreamed(corpus.KindPaper.String(), sent)
	return nil
}

// Populate rebuilds the requested index.
func (s *ScoreServer) Populate(ctx context.Context, req *scorepb.PopulateRequest) (*scorepb.Empty, error) {
	kind, err := kindOf(req.GetPopulateType())
	if err != nil {
		return nil, grpcError(err)
	}
	if _, err := s.svc.Populate(ctx, kind); err != nil {
		return nil, grpcError(err)
	}
	return &scorepb.Empty{}, nil
}

func kindOf(t scorepb.PopulateType) (corpus.Kind, error) {
	switch t {
	case scorepb.PopulateType_PAPER:
		return corpus.KindPaper, nil
	case scorepb.PopulateType_DATASET:
		return corpus.KindDataset, nil
	}
	return 0, fmt.Errorf("%w: unknown populate type %d", corpus.ErrInvalidArgument, int32(t))
}

// GRPCConfig configures NewGRPCServer.
type GRPCConfig struct {
	Logger     *slog.Logger
	Reflection bool
}

// InterceptorLogger adapts slog to the go-grpc-middleware logging interface.
func InterceptorLogger(l *slog.Logger) logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}

// NewGRPCServer builds a gRPC server with srv, the standard health service
// and optionally reflection registered. Calls are logged and panics are
// turned into Internal errors. The health service starts NOT_SERVING.
func NewGRPCServer(srv scorepb.ScoreGetterServer, cfg GRPCConfig) (*grpc.Server, *health.Server) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logOpts := []logging.Option{
		logging.WithLogOnEvents(logging.StartCall, logging.FinishCall),
	}
	recoverOpts := []recovery.Option{
		recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
			logger.ErrorContext(ctx, "Recovered from panic", "panic", p, "stack", string(debug.Stack()))
			return status.Error(codes.Internal, "internal error")
		}),
	}

	gs := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.UnaryServerInterceptor(InterceptorLogger(logger), logOpts...),
			recovery.UnaryServerInterceptor(recoverOpts...),
		),
		grpc.ChainStreamInterceptor(
			logging.StreamServerInterceptor(InterceptorLogger(logger), logOpts...),
			recovery.StreamServerInterceptor(recoverOpts...),
		),
	)

	scorepb.RegisterScoreGetterServer(gs, srv)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(scorepb.ScoreGetter_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(gs, hs)

	if cfg.Reflection {
		reflection.Register(gs)
	}
	return gs, hs
}
