package sim

import (
	"context"
	"sync"

	"github.com/san-kum/crrsim/internal/curve"
	"github.com/san-kum/crrsim/internal/params"
)

// Ensemble commits and evaluates independent drafts concurrently.
type Ensemble struct {
	components curve.Components
	workers    int
}

func NewEnsemble(components curve.Components, workers int) *Ensemble {
	if workers < 1 {
		workers = 1
	}
	return &Ensemble{components: components, workers: workers}
}

// Run returns one Result per draft, in input order.
func (e *Ensemble) Run(ctx context.Context, drafts []params.Draft) ([]Result, error) {
	results := make([]Result, len(drafts))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = Evaluate(Apply(drafts[idx]), e.components)
			}
		}()
	}

	var err error
feed:
	for i := range drafts {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return results, nil
}
