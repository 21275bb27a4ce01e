package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// RatingDispatcher recomputes meal ratings off the request path. Meals are
// sharded across workers by id, so recalculations for one meal never run
// concurrently and always see the latest review write.
type RatingDispatcher struct {
	workers []chan string
	service ports.RatingService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewRatingDispatcher creates a RatingDispatcher with numWorkers shards.
// If numWorkers <= 0, defaultWorkers is used.
func NewRatingDispatcher(numWorkers int, service ports.RatingService, log zerolog.Logger) *RatingDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &RatingDispatcher{
		workers: make([]chan string, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *RatingDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *RatingDispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue schedules a recalculation for foodID. It never blocks: when the
// shard is full the job is dropped, and the next review of that meal will
// schedule it again.
func (d *RatingDispatcher) Enqueue(foodID string) {
	select {
	case d.workers[d.shardIndex(foodID)] <- foodID:
	default:
		metrics.RatingRecalculationsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("food_id", foodID).Msg("rating queue full, recalculation dropped")
	}
}

// shardIndex maps a meal id deterministically to a worker index.
func (d *RatingDispatcher) shardIndex(foodID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(foodID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *RatingDispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case foodID := <-ch:
			if err := d.service.Recalculate(ctx, foodID); err != nil {
				metrics.RatingRecalculationsTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Str("food_id", foodID).
					Int("worker_id", id).
					Msg("rating recalculation failed")
				continue
			}
			metrics.RatingRecalculationsTotal.WithLabelValues("ok").Inc()
		}
	}
}
