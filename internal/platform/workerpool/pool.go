// Package workerpool saca el trabajo bloqueante de almacenamiento del hilo que atiende la petición.
//
// Un número fijo de goroutines consume una cola acotada. Do encola la unidad de trabajo y espera
// su resultado; el contexto del llamador viaja con el trabajo (valores y trazas) pero su cancelación
// no interrumpe trabajo ya encolado.
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/Franquicias-api/internal/platform/metrics"
	"golang.org/x/sync/errgroup"
)

// ErrClosed se devuelve al encolar trabajo en un pool cerrado.
var ErrClosed = errors.New("worker pool cerrado")

type job struct {
	ctx  context.Context
	name string
	fn   func(ctx context.Context) error
	done chan error
}

// Pool es un conjunto fijo de workers sobre una cola acotada.
type Pool struct {
	jobs chan job
	g    *errgroup.Group

	mu     sync.RWMutex
	closed bool
}

// New arranca size workers con una cola de queueSize posiciones.
func New(size, queueSize int) *Pool {
	if size <= 0 {
		size = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	p := &Pool{
		jobs: make(chan job, queueSize),
		g:    new(errgroup.Group),
	}
	for i := 0; i < size; i++ {
		p.g.Go(p.work)
	}
	return p
}

func (p *Pool) work() error {
	for j := range p.jobs {
		metrics.WorkerQueueDepth.Dec()
		j.done <- p.run(j)
	}
	return nil
}

func (p *Pool) run(j job) (err error) {
	metrics.WorkerJobsActive.Inc()
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic en %s: %v", j.name, r)
		}
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.WorkerJobsActive.Dec()
		metrics.WorkerJobDuration.WithLabelValues(j.name, outcome).Observe(time.Since(start).Seconds())
	}()
	return j.fn(j.ctx)
}

// Do ejecuta fn en un worker y bloquea al llamador hasta que termine.
// name etiqueta la unidad de trabajo en las métricas.
func (p *Pool) Do(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	j := job{
		ctx:  context.WithoutCancel(ctx),
		name: name,
		fn:   fn,
		done: make(chan error, 1),
	}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrClosed
	}
	metrics.WorkerQueueDepth.Inc()
	p.jobs <- j
	p.mu.RUnlock()

	return <-j.done
}

// Close deja de aceptar trabajo, drena la cola y espera a que terminen los workers.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	return p.g.Wait()
}
