package lexeme

import (
	"context"
	"time"

	"github.com/graph-gophers/dataloader/v7"
)

const (
	labelBatchCapacity = 50
	labelBatchWait     = 2 * time.Millisecond
)

// labelLoader batches item label lookups in one language into as few
// knowledge store reads as possible. Instances are per call; results are
// cached for the loader's lifetime only.
type labelLoader = dataloader.Loader[string, string]

func newLabelLoader(store knowledgeStore, language string) *labelLoader {
	return dataloader.NewBatchedLoader(
		newLabelsBatchFn(store, language),
		dataloader.WithWait[string, string](labelBatchWait),
		dataloader.WithBatchCapacity[string, string](labelBatchCapacity),
	)
}

func newLabelsBatchFn(store knowledgeStore, language string) dataloader.BatchFunc[string, string] {
	return func(ctx context.Context, keys []string) []*dataloader.Result[string] {
		labels, err := store.GetLabels(ctx, keys, language)
		if err != nil {
			results := make([]*dataloader.Result[string], len(keys))
			for i := range results {
				results[i] = &dataloader.Result[string]{Error: err}
			}
			return results
		}

		// Items without a label in language resolve to "".
		results := make([]*dataloader.Result[string], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[string]{Data: labels[key]}
		}
		return results
	}
}
