package extractor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/timahq/socialdata/internal/source"
)

// failingInstagram fails for specific usernames and succeeds otherwise.
type failingInstagram struct {
	mu       sync.Mutex
	failFor  map[string]error
	profiles int
}

func (f *failingInstagram) Profile(ctx context.Context, username string) (source.AccountSummary, error) {
	f.mu.Lock()
	f.profiles++
	f.mu.Unlock()
	if err, ok := f.failFor[username]; ok {
		return source.AccountSummary{}, err
	}
	acct := igAccount()
	acct.Username = username
	return acct, nil
}

func (f *failingInstagram) Posts(ctx context.Context, userID string) ([]source.RawRecord, error) {
	return igPosts(), nil
}

func (f *failingInstagram) Tagged(ctx context.Context, userID string) ([]source.RawRecord, error) {
	return nil, nil
}

func TestBulkProfilesKeepsInputOrder(t *testing.T) {
	svc := newTestService(&failingInstagram{}, nil, nil)
	usernames := []string{"alpha", "bravo", "charlie", "delta", "echo"}

	results := svc.BulkProfiles(context.Background(), usernames)

	if len(results) != len(usernames) {
		t.Fatalf("got %d results, want %d", len(results), len(usernames))
	}
	for i, r := range results {
		if r.Username != usernames[i] {
			t.Errorf("results[%d].Username = %q, want %q", i, r.Username, usernames[i])
		}
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v", i, r.Err)
		}
		if r.Result == nil || r.Result.Account.Username != usernames[i] {
			t.Errorf("results[%d].Result missing or wrong account", i)
		}
	}
}

func TestBulkProfilesIsolatesFailures(t *testing.T) {
	ig := &failingInstagram{failFor: map[string]error{
		"ghost": source.ErrNotFound,
	}}
	svc := newTestService(ig, nil, nil)

	results := svc.BulkProfiles(context.Background(), []string{"alpha", "ghost", "charlie"})

	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("healthy accounts failed: %v, %v", results[0].Err, results[2].Err)
	}
	if !errors.Is(results[1].Err, source.ErrNotFound) {
		t.Errorf("results[1].Err = %v, want ErrNotFound", results[1].Err)
	}
	if results[1].Result != nil {
		t.Errorf("failed account carries a result: %+v", results[1].Result)
	}
}

func TestBulkProfilesZeroWorkersStillCompletes(t *testing.T) {
	svc := newTestService(&failingInstagram{}, nil, nil)
	svc.workers = 0

	results := svc.BulkProfiles(context.Background(), []string{"alpha", "bravo", "charlie"})

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v", i, r.Err)
		}
		if r.Result == nil {
			t.Errorf("results[%d].Result missing", i)
		}
	}
}

func TestBulkProfilesEmptyInput(t *testing.T) {
	svc := newTestService(&failingInstagram{}, nil, nil)
	if results := svc.BulkProfiles(context.Background(), nil); len(results) != 0 {
		t.Errorf("BulkProfiles(nil) = %v, want empty", results)
	}
}

func TestBulkProfilesCancelledContext(t *testing.T) {
	svc := newTestService(&failingInstagram{}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := svc.BulkProfiles(ctx, []string{"alpha", "bravo"})

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for i, r := range results {
		if r.Err == nil && r.Result == nil {
			t.Errorf("results[%d] has neither result nor error", i)
		}
	}
}
