// Package http exposes the application over a REST API built on echo.
// It coordinates between HTTP handlers and application use cases; all
// business rules live behind the command and query handlers.
package http

import (
	"context"
	"io"
	"net/http"

	"mediflow/internal/core/application/usecases/commands"
	"mediflow/internal/core/application/usecases/queries"
	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/domain/services"
	"mediflow/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const maxPrescriptionSize = 10 << 20

// Authenticator extends token verification with account operations used by
// the auth endpoints.
type Authenticator interface {
	ports.AuthProvider
	RegisterCustomer(ctx context.Context, name, email, password string) (ports.Principal, string, error)
	LoginCustomer(ctx context.Context, email, password string) (ports.Principal, string, error)
	LoginPharmacist(ctx context.Context, email, password string) (ports.Principal, string, error)
}

// Server wires the REST API to the application use cases.
type Server struct {
	authenticator Authenticator
	catalog       ports.Catalog

	// Command handlers
	createOrderHandler        commands.CreateOrderCommandHandler
	attachPrescriptionHandler commands.AttachPrescriptionCommandHandler
	claimOrderHandler         commands.ClaimOrderCommandHandler
	startConsultationHandler  commands.StartConsultationCommandHandler
	finalizeItemsHandler      commands.FinalizeItemsCommandHandler
	processPaymentHandler     commands.ProcessPaymentCommandHandler
	confirmFulfillmentHandler commands.ConfirmFulfillmentCommandHandler
	cancelOrderHandler        commands.CancelOrderCommandHandler

	// Query handlers
	pharmacistQueueHandler queries.GetPharmacistQueueQueryHandler
	customerOrdersHandler  queries.GetCustomerOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required collaborators and
// command and query handlers.
func NewServer(
	authenticator Authenticator,
	catalog ports.Catalog,
	createOrderHandler commands.CreateOrderCommandHandler,
	attachPrescriptionHandler commands.AttachPrescriptionCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	startConsultationHandler commands.StartConsultationCommandHandler,
	finalizeItemsHandler commands.FinalizeItemsCommandHandler,
	processPaymentHandler commands.ProcessPaymentCommandHandler,
	confirmFulfillmentHandler commands.ConfirmFulfillmentCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	pharmacistQueueHandler queries.GetPharmacistQueueQueryHandler,
	customerOrdersHandler queries.GetCustomerOrdersQueryHandler,
) *Server {
	return &Server{
		authenticator:             authenticator,
		catalog:                   catalog,
		createOrderHandler:        createOrderHandler,
		attachPrescriptionHandler: attachPrescriptionHandler,
		claimOrderHandler:         claimOrderHandler,
		startConsultationHandler:  startConsultationHandler,
		finalizeItemsHandler:      finalizeItemsHandler,
		processPaymentHandler:     processPaymentHandler,
		confirmFulfillmentHandler: confirmFulfillmentHandler,
		cancelOrderHandler:        cancelOrderHandler,
		pharmacistQueueHandler:    pharmacistQueueHandler,
		customerOrdersHandler:     customerOrdersHandler,
	}
}

// RegisterRoutes mounts the API under /api on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	api.POST("/auth/register", s.Register)
	api.POST("/auth/login", s.Login)
	api.POST("/auth/pharmacist/login", s.PharmacistLogin)

	api.GET("/medicines", s.ListMedicines)
	api.GET("/categories", s.ListCategories)

	authed := api.Group("", authMiddleware(s.authenticator))
	authed.GET("/auth/me", s.Me)

	customer := authed.Group("", requireRole(ports.RoleCustomer))
	customer.POST("/orders", s.CreateOrder)
	customer.POST("/orders/:id/prescription", s.AttachPrescription)
	customer.GET("/orders/my-orders", s.MyOrders)
	customer.POST("/payment/process", s.ProcessPayment)

	pharmacist := authed.Group("/pharmacist", requireRole(ports.RolePharmacist))
	pharmacist.GET("/queue", s.Queue)
	pharmacist.POST("/accept-call/:id", s.AcceptCall)
	pharmacist.POST("/consultation/:id/start", s.StartConsultation)
	pharmacist.POST("/consultation/:id/finalize", s.FinalizeConsultation)
	pharmacist.POST("/orders/:id/fulfill", s.ConfirmFulfillment)

	// Cancellation is open to both roles; the handler applies the policy.
	authed.POST("/orders/:id/cancel", s.CancelOrder)
}

// Register handles POST /api/auth/register.
func (s *Server) Register(ctx echo.Context) error {
	var req registerRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	p, token, err := s.authenticator.RegisterCustomer(ctx.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, authResponse{Token: token, User: toPrincipal(p)})
}

// Login handles POST /api/auth/login.
func (s *Server) Login(ctx echo.Context) error {
	var req loginRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	p, token, err := s.authenticator.LoginCustomer(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, authResponse{Token: token, User: toPrincipal(p)})
}

// PharmacistLogin handles POST /api/auth/pharmacist/login.
func (s *Server) PharmacistLogin(ctx echo.Context) error {
	var req loginRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	p, token, err := s.authenticator.LoginPharmacist(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, authResponse{Token: token, User: toPrincipal(p)})
}

// Me handles GET /api/auth/me.
func (s *Server) Me(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, toPrincipal(currentPrincipal(ctx)))
}

// ListMedicines handles GET /api/medicines.
func (s *Server) ListMedicines(ctx echo.Context) error {
	medicines, err := s.catalog.ListMedicines(ctx.Request().Context())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]medicineResponse, 0, len(medicines))
	for _, medicine := range medicines {
		response = append(response, toMedicineResponse(medicine))
	}
	return ctx.JSON(http.StatusOK, response)
}

// ListCategories handles GET /api/categories.
func (s *Server) ListCategories(ctx echo.Context) error {
	categories, err := s.catalog.ListCategories(ctx.Request().Context())
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, categories)
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	orderType, err := orderTypeFromRequest(req.OrderType)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}
	items, err := itemInputsFromRequest(req.Items)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), currentPrincipal(ctx).SubjectID, orderType, items)
	if err != nil {
		return writeBadRequest(ctx, "invalid order data: "+err.Error())
	}

	aggregate, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromAggregate(aggregate))
}

// AttachPrescription handles POST /api/orders/:id/prescription.
// Expects a multipart form with the document under the "file" field.
func (s *Server) AttachPrescription(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return writeBadRequest(ctx, "prescription file is required")
	}
	if fileHeader.Size > maxPrescriptionSize {
		return writeBadRequest(ctx, "prescription file is too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return writeBadRequest(ctx, "prescription file is unreadable")
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxPrescriptionSize))
	if err != nil {
		return writeBadRequest(ctx, "prescription file is unreadable")
	}

	cmd, err := commands.NewAttachPrescriptionCommand(
		orderID,
		currentPrincipal(ctx).SubjectID,
		fileHeader.Filename,
		content,
	)
	if err != nil {
		return writeBadRequest(ctx, "invalid prescription upload: "+err.Error())
	}

	if err = s.attachPrescriptionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// MyOrders handles GET /api/orders/my-orders.
func (s *Server) MyOrders(ctx echo.Context) error {
	query, err := queries.NewGetCustomerOrdersQuery(currentPrincipal(ctx).SubjectID)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.customerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	return ctx.JSON(http.StatusOK, response)
}

// ProcessPayment handles POST /api/payment/process.
func (s *Server) ProcessPayment(ctx echo.Context) error {
	var req paymentRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewProcessPaymentCommand(orderID, currentPrincipal(ctx).SubjectID, req.PaymentMethod)
	if err != nil {
		return writeBadRequest(ctx, "invalid payment data: "+err.Error())
	}

	txnRef, err := s.processPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, paymentResponse{
		OrderID:        req.OrderID,
		TransactionRef: txnRef,
		Status:         "paid",
	})
}

// Queue handles GET /api/pharmacist/queue.
func (s *Server) Queue(ctx echo.Context) error {
	query := queries.NewGetPharmacistQueueQuery(0)

	entries, err := s.pharmacistQueueHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]queueEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, toQueueEntryResponse(entry))
	}
	return ctx.JSON(http.StatusOK, response)
}

// AcceptCall handles POST /api/pharmacist/accept-call/:id.
// A won claim returns 200; a lost one returns 409 with the loss kind, which
// the client treats as "pick the next order", not as a failure.
func (s *Server) AcceptCall(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, currentPrincipal(ctx).SubjectID)
	if err != nil {
		return writeBadRequest(ctx, "invalid claim data: "+err.Error())
	}

	result, err := s.claimOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	code := http.StatusOK
	if result != services.ClaimResultClaimed {
		code = http.StatusConflict
	}
	return ctx.JSON(code, claimResponse{
		OrderID: orderID.String(),
		Result:  result.String(),
	})
}

// StartConsultation handles POST /api/pharmacist/consultation/:id/start.
func (s *Server) StartConsultation(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewStartConsultationCommand(orderID, currentPrincipal(ctx).SubjectID)
	if err != nil {
		return writeBadRequest(ctx, "invalid consultation data: "+err.Error())
	}

	if err = s.startConsultationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// FinalizeConsultation handles POST /api/pharmacist/consultation/:id/finalize.
func (s *Server) FinalizeConsultation(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	var req finalizeRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	items, err := itemInputsFromRequest(req.Items)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	cmd, err := commands.NewFinalizeItemsCommand(orderID, currentPrincipal(ctx).SubjectID, items)
	if err != nil {
		return writeBadRequest(ctx, "invalid finalization data: "+err.Error())
	}

	if err = s.finalizeItemsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// ConfirmFulfillment handles POST /api/pharmacist/orders/:id/fulfill.
func (s *Server) ConfirmFulfillment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewConfirmFulfillmentCommand(orderID)
	if err != nil {
		return writeBadRequest(ctx, "invalid fulfillment data: "+err.Error())
	}

	if err = s.confirmFulfillmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// CancelOrder handles POST /api/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	p := currentPrincipal(ctx)
	cmd, err := commands.NewCancelOrderCommand(orderID, p.SubjectID, p.Role)
	if err != nil {
		return writeBadRequest(ctx, "invalid cancellation data: "+err.Error())
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}
