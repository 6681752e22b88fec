package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrPoolClosed is returned by Submit after Shutdown.
var ErrPoolClosed = errors.New("delivery worker pool is closed")

// Deliverer sends the outbox messages with the given IDs.
type Deliverer interface {
	DeliverMessages(ctx context.Context, messageIDs []string) error
}

// DeliveryWorkerPool delivers outbox messages asynchronously, in batches.
type DeliveryWorkerPool struct {
	deliverer    Deliverer
	requestChan  chan string
	batchSize    int
	batchTimeout time.Duration
	workerCount  int
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	shutdownOnce sync.Once

	closeMu sync.RWMutex
	closed  bool
}

type Config struct {
	WorkerCount  int           // number of workers
	BufferSize   int           // queue capacity
	BatchSize    int           // messages per delivery batch
	BatchTimeout time.Duration // max wait before a partial batch is flushed
}

func DefaultConfig() Config {
	return Config{
		WorkerCount:  2,
		BufferSize:   100,
		BatchSize:    10,
		BatchTimeout: 2 * time.Second,
	}
}

func NewDeliveryWorkerPool(deliverer Deliverer, config Config) *DeliveryWorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	return &DeliveryWorkerPool{
		deliverer:    deliverer,
		requestChan:  make(chan string, config.BufferSize),
		batchSize:    config.BatchSize,
		batchTimeout: config.BatchTimeout,
		workerCount:  config.WorkerCount,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (p *DeliveryWorkerPool) Start() {
	log.Info().
		Int("workers", p.workerCount).
		Int("batchSize", p.batchSize).
		Dur("batchTimeout", p.batchTimeout).
		Msg("Starting delivery worker pool")

	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

func (p *DeliveryWorkerPool) worker(id int) {
	defer p.wg.Done()

	log.Debug().Int("workerID", id).Msg("Worker started")

	batch := make([]string, 0, p.batchSize)
	var timer *time.Timer
	var timerC <-chan time.Time

	processBatch := func() {
		if len(batch) == 0 {
			return
		}

		log.Debug().
			Int("workerID", id).
			Int("messages", len(batch)).
			Msg("Delivering batch")

		// a cancelled pool still flushes what it already holds
		if err := p.deliverer.DeliverMessages(context.WithoutCancel(p.ctx), batch); err != nil {
			log.Error().
				Err(err).
				Int("workerID", id).
				Int("messageCount", len(batch)).
				Msg("Failed to deliver messages")
		} else {
			log.Debug().
				Int("workerID", id).
				Int("messageCount", len(batch)).
				Msg("Delivered messages")
		}

		batch = make([]string, 0, p.batchSize)
	}

	stopTimer := func() {
		if timer == nil {
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timerC = nil
	}

	startTimer := func() {
		stopTimer()
		if timer == nil {
			timer = time.NewTimer(p.batchTimeout)
		} else {
			timer.Reset(p.batchTimeout)
		}
		timerC = timer.C
	}

	for {
		select {
		case <-p.ctx.Done():
			log.Debug().Int("workerID", id).Msg("Worker shutting down")
			processBatch()
			stopTimer()
			return

		case messageID, ok := <-p.requestChan:
			if !ok {
				log.Debug().Int("workerID", id).Msg("Request channel closed, delivering remaining batch")
				processBatch()
				stopTimer()
				return
			}

			batch = append(batch, messageID)
			if len(batch) >= p.batchSize {
				processBatch()
				stopTimer()
			} else if len(batch) == 1 {
				startTimer()
			}

		case <-timerC:
			timerC = nil
			processBatch()
		}
	}
}

// Submit queues a message for delivery, blocking while the queue is full.
func (p *DeliveryWorkerPool) Submit(messageID string) error {
	p.closeMu.RLock()
	defer p.closeMu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case <-p.ctx.Done():
		return context.Canceled
	case p.requestChan <- messageID:
		log.Debug().Str("messageID", messageID).Msg("Delivery request submitted")
		return nil
	default:
		log.Warn().Str("messageID", messageID).Msg("Request channel is full, blocking")

		select {
		case <-p.ctx.Done():
			return context.Canceled
		case p.requestChan <- messageID:
			return nil
		}
	}
}

func (p *DeliveryWorkerPool) Shutdown(timeout time.Duration) error {
	var shutdownErr error

	p.shutdownOnce.Do(func() {
		log.Info().Msg("Shutting down delivery worker pool")

		p.closeMu.Lock()
		p.closed = true
		close(p.requestChan)
		p.closeMu.Unlock()

		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			log.Info().Msg("Delivery worker pool shut down gracefully")
		case <-time.After(timeout):
			log.Warn().Msg("Delivery worker pool shutdown timeout, forcing shutdown")
			p.cancel()
			<-done
			shutdownErr = context.DeadlineExceeded
		}
		p.cancel()
	})

	return shutdownErr
}

func (p *DeliveryWorkerPool) Stats() PoolStats {
	return PoolStats{
		QueueSize:   len(p.requestChan),
		QueueCap:    cap(p.requestChan),
		WorkerCount: p.workerCount,
	}
}

type PoolStats struct {
	QueueSize   int
	QueueCap    int
	WorkerCount int
}
