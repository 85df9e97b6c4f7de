package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// ResolveAll fetches metadata for every product ID using at most workers
// concurrent catalog requests. Input order is preserved in the result.
// IDs the catalog cannot resolve are omitted, not surfaced as errors; each
// omission is logged.
func (c *Client) ResolveAll(ctx context.Context, productIDs []string, workers int) []Product {
	if len(productIDs) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(productIDs) {
		workers = len(productIDs)
	}

	results := make([]*Product, len(productIDs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				p, err := c.Fetch(ctx, productIDs[i])
				if err != nil {
					log.Info().
						Str("product_id", productIDs[i]).
						Err(err).
						Msg("product not resolved, omitting from list")
					continue
				}
				results[i] = p
			}
		}()
	}

feed:
	for i := range productIDs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	out := make([]Product, 0, len(productIDs))
	for _, p := range results {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}
