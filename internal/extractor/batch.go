package extractor

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/timahq/socialdata/pkg/telemetry"
)

// BulkProfileResult pairs one requested username with its outcome. Err is
// set when that account failed; the rest of the batch is unaffected.
type BulkProfileResult struct {
	Username string
	Result   *ProfileResult
	Err      error
}

// BulkProfiles aggregates many Instagram profiles concurrently through a
// bounded worker pool. Results come back in input order; a failure on one
// account never cancels the others.
func (s *Service) BulkProfiles(ctx context.Context, usernames []string) []BulkProfileResult {
	ctx, span := telemetry.StartSpan(ctx, "extractor.bulk_profiles")
	defer span.End()

	results := make([]BulkProfileResult, len(usernames))
	jobs := make(chan int)

	// a misconfigured pool must never strand the send on jobs below
	workers := s.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(usernames) {
		workers = len(usernames)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				username := usernames[i]
				res, err := s.InstagramProfile(ctx, username)
				results[i] = BulkProfileResult{Username: username, Result: res, Err: err}
				if err != nil {
					s.logger.Warn("bulk profile failed",
						zap.String("username", username),
						zap.Error(err))
				}
			}
		}()
	}

	for i := range usernames {
		select {
		case jobs <- i:
		case <-ctx.Done():
			// mark the rest as cancelled rather than leaving zero values
			for j := i; j < len(usernames); j++ {
				results[j] = BulkProfileResult{Username: usernames[j], Err: ctx.Err()}
			}
			close(jobs)
			wg.Wait()
			return results
		}
	}
	close(jobs)
	wg.Wait()

	return results
}
