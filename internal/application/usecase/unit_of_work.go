package usecase

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/Franquicias-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// Dispatcher ejecuta trabajo bloqueante fuera del hilo de la petición y espera su resultado.
type Dispatcher interface {
	Do(ctx context.Context, name string, fn func(ctx context.Context) error) error
}

// unitOfWork combina worker pool, transacción y span: una operación pública = una unidad de trabajo.
type unitOfWork struct {
	pool   Dispatcher
	tx     TxRunner
	tracer trace.Tracer
}

func (u unitOfWork) run(ctx context.Context, name string, fn func(ctx context.Context, repos repository.Repos) error) error {
	return u.pool.Do(ctx, name, func(ctx context.Context) error {
		ctx, span := u.tracer.Start(ctx, name)
		defer span.End()
		err := u.tx.Run(ctx, func(repos repository.Repos) error {
			return fn(ctx, repos)
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	})
}
