package http

import (
	"time"

	"mediflow/internal/core/application/usecases/commands"
	"mediflow/internal/core/application/usecases/queries"
	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/domain/model/order"
	"mediflow/internal/core/ports"
)

// Error is the uniform error payload.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string    `json:"token"`
	User  principal `json:"user"`
}

type principal struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type medicineResponse struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Category             string `json:"category"`
	Price                string `json:"price"`
	RequiresPrescription bool   `json:"requires_prescription"`
}

type createOrderRequest struct {
	OrderType string             `json:"order_type"`
	Items     []orderItemRequest `json:"items,omitempty"`
}

type orderItemRequest struct {
	MedicineID string `json:"medicine_id"`
	Quantity   int    `json:"quantity"`
}

type orderItemResponse struct {
	MedicineID string `json:"medicine_id"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	Total      string `json:"total"`
}

type orderResponse struct {
	ID                   string              `json:"id"`
	OrderType            string              `json:"order_type"`
	Status               string              `json:"status"`
	PaymentStatus        string              `json:"payment_status"`
	PrescriptionAttached bool                `json:"prescription_attached"`
	ClaimedBy            string              `json:"claimed_by,omitempty"`
	Items                []orderItemResponse `json:"items"`
	Amount               string              `json:"amount"`
	CreatedAt            time.Time           `json:"created_at"`
	StateChangedAt       time.Time           `json:"state_changed_at"`
}

type queueEntryResponse struct {
	OrderID              string    `json:"order_id"`
	OrderType            string    `json:"order_type"`
	PrescriptionAttached bool      `json:"prescription_attached"`
	EnqueuedSince        time.Time `json:"enqueued_since"`
}

type claimResponse struct {
	OrderID string `json:"order_id"`
	Result  string `json:"result"`
}

type finalizeRequest struct {
	Items []orderItemRequest `json:"items"`
}

type paymentRequest struct {
	OrderID       string `json:"order_id"`
	PaymentMethod string `json:"payment_method"`
}

type paymentResponse struct {
	OrderID        string `json:"order_id"`
	TransactionRef string `json:"transaction_ref"`
	Status         string `json:"status"`
}

func toPrincipal(p ports.Principal) principal {
	return principal{
		ID:    p.SubjectID.String(),
		Role:  string(p.Role),
		Name:  p.Name,
		Email: p.Email,
	}
}

func toMedicineResponse(m ports.Medicine) medicineResponse {
	return medicineResponse{
		ID:                   m.ID.String(),
		Name:                 m.Name,
		Category:             m.Category,
		Price:                m.Price.StringFixed(2),
		RequiresPrescription: m.RequiresPrescription,
	}
}

func toOrderResponse(o queries.CustomerOrderResponse) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemResponse{
			MedicineID: item.MedicineID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.StringFixed(2),
			Total:      item.Total.StringFixed(2),
		})
	}

	return orderResponse{
		ID:                   o.OrderID,
		OrderType:            o.OrderType,
		Status:               o.Status,
		PaymentStatus:        o.PaymentStatus,
		PrescriptionAttached: o.PrescriptionAttached,
		ClaimedBy:            o.ClaimedBy,
		Items:                items,
		Amount:               o.Amount.StringFixed(2),
		CreatedAt:            o.CreatedAt,
		StateChangedAt:       o.StateChangedAt,
	}
}

func orderTypeFromRequest(raw string) (order.Type, error) {
	return order.TypeFromString(raw)
}

func itemInputsFromRequest(reqs []orderItemRequest) ([]commands.ItemInput, error) {
	items := make([]commands.ItemInput, 0, len(reqs))
	for _, req := range reqs {
		medicineID, err := kernel.UUIDFromString(req.MedicineID)
		if err != nil {
			return nil, err
		}
		items = append(items, commands.ItemInput{
			MedicineID: medicineID,
			Quantity:   req.Quantity,
		})
	}
	return items, nil
}

func orderResponseFromAggregate(o *order.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, orderItemResponse{
			MedicineID: item.MedicineID().String(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice().StringFixed(2),
			Total:      item.Total().StringFixed(2),
		})
	}

	claimedBy := ""
	if o.ClaimedBy() != nil {
		claimedBy = o.ClaimedBy().String()
	}

	return orderResponse{
		ID:                   o.ID().String(),
		OrderType:            o.Type().String(),
		Status:               o.Status().String(),
		PaymentStatus:        o.PaymentStatus().String(),
		PrescriptionAttached: o.PrescriptionAttached(),
		ClaimedBy:            claimedBy,
		Items:                items,
		Amount:               o.Amount().StringFixed(2),
		CreatedAt:            o.CreatedAt(),
		StateChangedAt:       o.StateChangedAt(),
	}
}

func toQueueEntryResponse(e queries.QueueEntryResponse) queueEntryResponse {
	return queueEntryResponse{
		OrderID:              e.OrderID,
		OrderType:            e.OrderType,
		PrescriptionAttached: e.PrescriptionAttached,
		EnqueuedSince:        e.EnqueuedSince,
	}
}
