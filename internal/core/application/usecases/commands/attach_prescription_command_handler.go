package commands

import (
	"context"

	"mediflow/internal/core/domain/model/order"
	"mediflow/internal/core/ports"
	"mediflow/internal/pkg/errs"
)

// AttachPrescriptionCommandHandler handles prescription uploads.
//
// The document is stored through ArtifactStorage and the resulting reference
// is persisted on the order. Once a prescription is attached the order moves
// to Queued and becomes visible to pharmacists. Re-uploading for an order
// that is already queued overwrites the stored reference without moving the
// order again.
type AttachPrescriptionCommandHandler struct {
	orders  ports.OrderRepository
	queue   ports.Queue
	storage ports.ArtifactStorage
}

// NewAttachPrescriptionCommandHandler creates a handler for prescription uploads.
func NewAttachPrescriptionCommandHandler(
	orders ports.OrderRepository,
	queue ports.Queue,
	storage ports.ArtifactStorage,
) AttachPrescriptionCommandHandler {
	return AttachPrescriptionCommandHandler{
		orders:  orders,
		queue:   queue,
		storage: storage,
	}
}

// Handle processes the prescription upload command.
func (h AttachPrescriptionCommandHandler) Handle(ctx context.Context, cmd AttachPrescriptionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if aggregate.CustomerID() != cmd.CustomerID() {
		return errs.NewUnauthorizedError("order belongs to another customer")
	}

	ref, err := h.storage.Store(ctx, cmd.OrderID(), cmd.Filename(), cmd.Content())
	if err != nil {
		return errs.NewExternalFailureError("artifact storage", err)
	}

	// Domain check: attaching is only allowed before the review is over.
	if err = aggregate.AttachPrescription(ref); err != nil {
		return err
	}
	if err = h.orders.SavePrescription(ctx, cmd.OrderID(), ref); err != nil {
		return err
	}

	switch aggregate.Status() {
	case order.Created, order.AwaitingPrescription:
		ok, casErr := h.orders.CompareAndSwapState(ctx, cmd.OrderID(), aggregate.Status(), order.Queued)
		if casErr != nil {
			return casErr
		}
		if !ok {
			return errs.NewConflictError("queue order after prescription upload")
		}
		return h.queue.Enqueue(ctx, cmd.OrderID())
	case order.Queued:
		// Re-upload while queued: reference updated, position kept. The
		// queue entry is already present, and re-enqueueing here could
		// resurrect an entry for an order claimed since the read above.
	}

	return nil
}
