package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/efebarandurmaz/ranker/api/scorepb"
	"github.com/efebarandurmaz/ranker/internal/corpus"
)

func withClient(addr string, fn func(scorepb.ScoreGetterClient) error) error {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()
	return fn(scorepb.NewScoreGetterClient(conn))
}

func populateType(k corpus.Kind) scorepb.PopulateType {
	if k == corpus.KindDataset {
		return scorepb.PopulateType_DATASET
	}
	return scorepb.PopulateType_PAPER
}

func populate(ctx context.Context, c scorepb.ScoreGetterClient, k corpus.Kind) error {
	_, err := c.Populate(ctx, &scorepb.PopulateRequest{PopulateType: populateType(k)})
	if err != nil {
		return fmt.Errorf("populate %s: %w", k, err)
	}
	return nil
}

// score prints one tab-separated row per streamed result and returns the
// number of rows.
func score(ctx context.Context, c scorepb.ScoreGetterClient, k corpus.Kind, query string, n uint32, w io.Writer) (int, error) {
	req := &scorepb.ScoreRequest{Query: query, NumResults: n}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	switch k {
	case corpus.KindDataset:
		stream, err := c.DatasetScore(ctx, req)
		if err != nil {
			return 0, fmt.Errorf("score datasets: %w", err)
		}
		fmt.Fprintln(tw, "RANK\tDATASET\tSCORE")
		return drain(stream, func(i int, r *scorepb.DatasetScoreResponse) {
			fmt.Fprintf(tw, "%d\t%d\t%.4f\n", i, r.GetDatasetId(), r.GetScore())
		})
	default:
		stream, err := c.PaperScore(ctx, req)
		if err != nil {
			return 0, fmt.Errorf("score papers: %w", err)
		}
		fmt.Fprintln(tw, "RANK\tPAPER\tDATASET\tSCORE")
		return drain(stream, func(i int, r *scorepb.PaperScoreResponse) {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%.4f\n", i, hex.EncodeToString(r.GetPaperId()), r.GetDatasetId(), r.GetScore())
		})
	}
}

func drain[T any](stream grpc.ServerStreamingClient[T], row func(int, *T)) (int, error) {
	n := 0
	for {
		msg, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("receive: %w", err)
		}
		n++
		row(n, msg)
	}
}
