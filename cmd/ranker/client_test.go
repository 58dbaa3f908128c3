package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/efebarandurmaz/ranker/api/scorepb"
	"github.com/efebarandurmaz/ranker/internal/corpus"
	"github.com/efebarandurmaz/ranker/internal/ranking"
	"github.com/efebarandurmaz/ranker/internal/server"
)

type staticLoader struct{}

func (staticLoader) Datasets(context.Context) ([]corpus.Document[corpus.DatasetID], error) {
	return []corpus.Document[corpus.DatasetID]{
		{ID: 7, Text: "gene expression atlas"},
		{ID: 9, Text: "satellite imagery"},
	}, nil
}

func (staticLoader) Papers(context.Context) ([]corpus.Document[corpus.PaperKey], error) {
	return []corpus.Document[corpus.PaperKey]{
		{ID: corpus.NewPaperKey([]byte{0xde, 0xad}, 7), Text: "single cell gene expression"},
	}, nil
}

func testClient(t *testing.T) scorepb.ScoreGetterClient {
	t.Helper()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := ranking.New(staticLoader{}, ranking.Config{Logger: quiet})
	gs, _ := server.NewGRPCServer(server.NewScoreServer(svc, 0), server.GRPCConfig{Logger: quiet})

	lis := bufconn.Listen(1 << 20)
	go gs.Serve(lis)
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return scorepb.NewScoreGetterClient(conn)
}

func TestPopulateAndScoreDatasets(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()
	require.NoError(t, populate(ctx, c, corpus.KindDataset))

	var out bytes.Buffer
	n, err := score(ctx, c, corpus.KindDataset, "gene", 10, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "DATASET")
	assert.Equal(t, []string{"1", "7"}, strings.Fields(lines[1])[:2])
}

func TestScorePapersPrintsHexIDs(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()
	require.NoError(t, populate(ctx, c, corpus.KindPaper))

	var out bytes.Buffer
	n, err := score(ctx, c, corpus.KindPaper, "expression", 10, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, out.String(), "dead")
}

func TestScoreRejectsOversizedRequest(t *testing.T) {
	c := testClient(t)

	_, err := score(context.Background(), c, corpus.KindDataset, "gene", ranking.MaxResults+1, io.Discard)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestPopulateType(t *testing.T) {
	assert.Equal(t, scorepb.PopulateType_PAPER, populateType(corpus.KindPaper))
	assert.Equal(t, scorepb.PopulateType_DATASET, populateType(corpus.KindDataset))
}
