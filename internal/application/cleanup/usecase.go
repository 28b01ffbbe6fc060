package cleanup

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/fixture-cleanup/internal/domain"
	"github.com/jhoicas/fixture-cleanup/internal/domain/repository"
	"github.com/jhoicas/fixture-cleanup/pkg/logger"
)

// Result resumen de una ejecución. Las listas nunca son nil.
type Result struct {
	DeletedCustomers []string
	DeletedImages    []string
	Errors           []string
	ImagesEnabled    bool
}

// PurgeUseCase elimina los clientes de prueba configurados, sus facturas y, opcionalmente, su foto.
type PurgeUseCase struct {
	customerRepo repository.CustomerRepository
	txRunner     PurgeTxRunner
	images       ImageRemover // nil = no se borran imágenes
	targets      []string
	log          *logger.Logger
}

// NewPurgeUseCase construye el caso de uso. images puede ser nil.
func NewPurgeUseCase(
	customerRepo repository.CustomerRepository,
	txRunner PurgeTxRunner,
	images ImageRemover,
	targets []string,
	log *logger.Logger,
) *PurgeUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PurgeUseCase{
		customerRepo: customerRepo,
		txRunner:     txRunner,
		images:       images,
		targets:      append([]string(nil), targets...),
		log:          log,
	}
}

// Targets devuelve una copia de la lista de nombres a purgar.
func (uc *PurgeUseCase) Targets() []string {
	return append([]string(nil), uc.targets...)
}

// Run recorre los nombres en orden. Un fallo en un cliente se anota en Errors y no detiene el lote;
// solo un fallo fuera del bucle (contexto cancelado antes de empezar o pánico) devuelve error.
func (uc *PurgeUseCase) Run(ctx context.Context) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("limpeza: %v", r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res = &Result{
		DeletedCustomers: []string{},
		DeletedImages:    []string{},
		Errors:           []string{},
		ImagesEnabled:    uc.images != nil,
	}
	for _, name := range uc.targets {
		deleted, image, err := uc.purgeOne(ctx, name)
		if err != nil {
			msg := fmt.Sprintf("Erro ao deletar \"%s\": %v", name, err)
			res.Errors = append(res.Errors, msg)
			uc.log.Error().Err(err).Str("customer", name).Msg("error al eliminar cliente de prueba")
			continue
		}
		if deleted {
			res.DeletedCustomers = append(res.DeletedCustomers, name)
		}
		if image != "" {
			res.DeletedImages = append(res.DeletedImages, image)
		}
	}
	return res, nil
}

// purgeOne borra el primer cliente con ese nombre. image es la referencia borrada del disco, si hubo.
func (uc *PurgeUseCase) purgeOne(ctx context.Context, name string) (deleted bool, image string, err error) {
	matches, err := uc.customerRepo.FindByName(ctx, name)
	if err != nil {
		return false, "", err
	}
	if len(matches) == 0 {
		uc.log.Info().Str("customer", name).Msg("cliente no encontrado, se omite")
		return false, "", nil
	}
	customer := matches[0]
	if len(matches) > 1 {
		uc.log.Warn().Str("customer", name).Int("matches", len(matches)).
			Str("customer_id", customer.ID).Msg("nombre duplicado, solo se elimina el primero")
	}

	var invoices int64
	err = uc.txRunner.RunPurge(ctx, func(customerRepo repository.CustomerRepository, invoiceRepo repository.InvoiceRepository) error {
		n, err := invoiceRepo.DeleteByCustomer(ctx, customer.ID)
		if err != nil {
			return err
		}
		invoices = n
		return customerRepo.Delete(ctx, customer.ID)
	})
	if err != nil {
		return false, "", err
	}
	uc.log.Info().Str("customer", name).Str("customer_id", customer.ID).
		Int64("invoices", invoices).Msg("cliente eliminado")

	// La foto se borra después del commit: si falla, la fila ya no existe y el archivo queda huérfano.
	if uc.images != nil && customer.HasImage() {
		image = uc.removeImage(name, customer.ImageURL)
	}
	return true, image, nil
}

func (uc *PurgeUseCase) removeImage(name, imageURL string) string {
	relPath, ok := uc.images.Resolve(imageURL)
	if !ok {
		uc.log.Debug().Str("customer", name).Str("path", imageURL).Msg("imagen fuera de uploads, no se borra")
		return ""
	}
	if err := uc.images.Remove(relPath); err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			uc.log.Info().Str("customer", name).Str("path", relPath).Msg("imagen ya no existe")
		} else {
			uc.log.Warn().Err(err).Str("customer", name).Str("path", relPath).Msg("no se pudo borrar la imagen")
		}
		return ""
	}
	uc.log.Info().Str("customer", name).Str("path", relPath).Msg("imagen eliminada")
	return imageURL
}
