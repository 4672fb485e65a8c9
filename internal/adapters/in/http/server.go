// Package http exposes the batch lifecycle over a JSON API described by openapi.yaml.
package http

import (
	"net/http"

	"intimacoes/internal/core/application/usecases/commands"
	"intimacoes/internal/core/application/usecases/queries"
	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

var _ ServerInterface = &Server{}

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	CreateCourier commands.CreateCourierCommandHandler
	UpdateCourier commands.UpdateCourierCommandHandler
	DeleteCourier commands.DeleteCourierCommandHandler
	CreateBatch   commands.CreateBatchCommandHandler
	UpdateBatch   commands.UpdateBatchCommandHandler
	FinalizeBatch commands.FinalizeBatchCommandHandler
	DeleteBatch   commands.DeleteBatchCommandHandler

	GetAllCouriers     queries.GetAllCouriersQueryHandler
	GetDashboard       queries.GetDashboardQueryHandler
	GetReport          queries.GetReportQueryHandler
	SuggestDescription queries.SuggestDescriptionQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// GetCouriers handles GET /api/v1/couriers - retrieves the roster.
func (s *Server) GetCouriers(ctx echo.Context) error {
	couriers, err := s.h.GetAllCouriers.Handle(ctx.Request().Context(), queries.NewGetAllCouriersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]Courier, len(couriers))
	for i, c := range couriers {
		response[i] = Courier{
			Id:           c.ID.Bytes(),
			CourierInput: toCourierInput(c.Name, c.Profile),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateCourier handles POST /api/v1/couriers - creates a new courier.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var body CourierInput
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Rule:    RuleInvalidRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreateCourierCommand(body.Name, toProfile(body))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.h.CreateCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{Id: cmd.CourierID().Bytes()})
}

// UpdateCourier handles PUT /api/v1/couriers/{id}.
func (s *Server) UpdateCourier(ctx echo.Context, id openapi_types.UUID) error {
	courierID, err := toKernelUUID(id)
	if err != nil {
		return writeError(ctx, err)
	}

	var body CourierInput
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Rule:    RuleInvalidRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewUpdateCourierCommand(courierID, body.Name, toProfile(body))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.h.UpdateCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteCourier handles DELETE /api/v1/couriers/{id} - cascades to the courier's batches.
func (s *Server) DeleteCourier(ctx echo.Context, id openapi_types.UUID) error {
	courierID, err := toKernelUUID(id)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDeleteCourierCommand(courierID)
	if err != nil {
		return writeError(ctx, err)
	}

	removed, err := s.h.DeleteCourier.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CourierDeleted{RemovedBatches: removed})
}

// GetDashboard handles GET /api/v1/batches - active and archived groups.
func (s *Server) GetDashboard(ctx echo.Context) error {
	dashboard, err := s.h.GetDashboard.Handle(ctx.Request().Context(), queries.NewGetDashboardQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Dashboard{
		GeneratedAt: dashboard.GeneratedAt,
		Active:      toBatches(dashboard.Active),
		Archived:    toBatches(dashboard.Archived),
	})
}

// CreateBatch handles POST /api/v1/batches.
func (s *Server) CreateBatch(ctx echo.Context) error {
	var body BatchInput
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Rule:    RuleInvalidRequest,
			Message: "Invalid request body",
		})
	}

	courierID, err := toKernelUUID(body.CourierId)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateBatchCommand(courierID, body.PgfnInitial, body.NormalInitial, toDetails(body.BatchDetails))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.h.CreateBatch.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{Id: cmd.BatchID().Bytes()})
}

// UpdateBatch handles PUT /api/v1/batches/{id}.
func (s *Server) UpdateBatch(ctx echo.Context, id openapi_types.UUID) error {
	batchID, err := toKernelUUID(id)
	if err != nil {
		return writeError(ctx, err)
	}

	var body BatchUpdate
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Rule:    RuleInvalidRequest,
			Message: "Invalid request body",
		})
	}

	var details *batch.Details
	if body.Details != nil {
		d := toDetails(*body.Details)
		details = &d
	}
	var counts *batch.Counts
	if body.Counts != nil {
		c := toCounts(*body.Counts)
		counts = &c
	}

	cmd, err := commands.NewUpdateBatchCommand(batchID, details, counts)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.h.UpdateBatch.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteBatch handles DELETE /api/v1/batches/{id}.
func (s *Server) DeleteBatch(ctx echo.Context, id openapi_types.UUID) error {
	batchID, err := toKernelUUID(id)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDeleteBatchCommand(batchID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.h.DeleteBatch.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FinalizeBatch handles POST /api/v1/batches/{id}/finalize.
func (s *Server) FinalizeBatch(ctx echo.Context, id openapi_types.UUID) error {
	batchID, err := toKernelUUID(id)
	if err != nil {
		return writeError(ctx, err)
	}

	var body Finalization
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Rule:    RuleInvalidRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewFinalizeBatchCommand(batchID, body.ReturnAt, toCounts(body.Counts))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.h.FinalizeBatch.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetReport handles GET /api/v1/reports.
func (s *Server) GetReport(ctx echo.Context, params GetReportParams) error {
	var scope queries.Scope
	if params.Scope != nil {
		parsed, err := queries.ParseScope(*params.Scope)
		if err != nil {
			return writeError(ctx, err)
		}
		scope = parsed
	}

	query, err := queries.NewGetReportQuery(scope)
	if err != nil {
		return writeError(ctx, err)
	}

	report, err := s.h.GetReport.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toReport(report))
}

// SuggestDescription handles POST /api/v1/assistant/description.
func (s *Server) SuggestDescription(ctx echo.Context) error {
	var body DescriptionRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Rule:    RuleInvalidRequest,
			Message: "Invalid request body",
		})
	}

	query, err := queries.NewSuggestDescriptionQuery(
		body.CourierName, body.Route, body.PgfnInitial, body.NormalInitial, body.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	suggestion, err := s.h.SuggestDescription.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DescriptionSuggestion{
		Description: suggestion.Description,
		Generated:   suggestion.Generated,
	})
}

func toKernelUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toProfile(body CourierInput) courier.Profile {
	return courier.Profile{
		Document:       body.Document,
		Address:        body.Address,
		Phone:          body.Phone,
		SecondaryPhone: body.SecondaryPhone,
		PaymentKey:     body.PaymentKey,
		PreferredRoute: body.PreferredRoute,
	}
}

func toCourierInput(name string, p courier.Profile) CourierInput {
	return CourierInput{
		Name:           name,
		Document:       p.Document,
		Address:        p.Address,
		Phone:          p.Phone,
		SecondaryPhone: p.SecondaryPhone,
		PaymentKey:     p.PaymentKey,
		PreferredRoute: p.PreferredRoute,
	}
}

func toDetails(d BatchDetails) batch.Details {
	var estimated kernel.Date
	if !d.EstimatedReturnDate.Time.IsZero() {
		estimated = kernel.DateOf(d.EstimatedReturnDate.Time)
	}
	return batch.Details{
		DepartureAt:     d.DepartureAt,
		EstimatedReturn: estimated,
		Description:     d.Description,
	}
}

func toCounts(c Counts) batch.Counts {
	return batch.Counts{
		PGFNDelivered:   c.PgfnDelivered,
		PGFNReturned:    c.PgfnReturned,
		PGFNAbsent:      c.PgfnAbsent,
		NormalDelivered: c.NormalDelivered,
		NormalReturned:  c.NormalReturned,
		NormalAbsent:    c.NormalAbsent,
	}
}

func fromCounts(c batch.Counts) Counts {
	return Counts{
		PgfnDelivered:   c.PGFNDelivered,
		PgfnReturned:    c.PGFNReturned,
		PgfnAbsent:      c.PGFNAbsent,
		NormalDelivered: c.NormalDelivered,
		NormalReturned:  c.NormalReturned,
		NormalAbsent:    c.NormalAbsent,
	}
}

func toBatches(views []queries.BatchView) []Batch {
	response := make([]Batch, len(views))
	for i, v := range views {
		response[i] = Batch{
			Id:                  v.ID.Bytes(),
			CourierId:           v.CourierID.Bytes(),
			CourierName:         v.CourierName,
			PgfnInitial:         v.PGFNInitial,
			NormalInitial:       v.NormalInitial,
			DepartureAt:         v.DepartureAt,
			EstimatedReturnDate: openapi_types.Date{Time: v.EstimatedReturn.Time()},
			Description:         v.Description,
			Status:              v.Status.String(),
			DisplayStatus:       v.DisplayStatus.String(),
		}
		if r := v.Reconciliation; r != nil {
			returnAt := r.ReturnAt
			counts := fromCounts(r.Counts)
			total := r.TotalValue.String()
			response[i].ReturnAt = &returnAt
			response[i].Counts = &counts
			response[i].TotalValue = &total
		}
	}
	return response
}

func toReport(r queries.GetReportQueryResponse) Report {
	response := Report{
		Scope:       string(r.Scope),
		GeneratedAt: r.GeneratedAt,
		System: Totals{
			PayableValue: r.System.PayableValue.String(),
			Delivered:    r.System.Delivered,
			Returned:     r.System.Returned,
			Absent:       r.System.Absent,
		},
		Couriers: make([]CourierSummary, len(r.Couriers)),
	}
	for i, c := range r.Couriers {
		response.Couriers[i] = CourierSummary{
			Totals: Totals{
				PayableValue: c.PayableValue.String(),
				Delivered:    c.Delivered,
				Returned:     c.Returned,
				Absent:       c.Absent,
			},
			CourierId:   c.CourierID.Bytes(),
			CourierName: c.CourierName,
			Pending:     c.Pending,
			Overdue:     c.Overdue,
			Finalized:   c.Finalized,
		}
	}
	return response
}
