package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Wire types of openapi.yaml.
type (
	Error struct {
		Code       int         `json:"code"`
		Rule       string      `json:"rule"`
		Message    string      `json:"message"`
		Fields     []string    `json:"fields,omitempty"`
		Imbalances []Imbalance `json:"imbalances,omitempty"`
	}

	Imbalance struct {
		Category  string `json:"category"`
		Initial   int    `json:"initial"`
		Accounted int    `json:"accounted"`
	}

	Created struct {
		Id openapi_types.UUID `json:"id"`
	}

	CourierDeleted struct {
		RemovedBatches int `json:"removedBatches"`
	}

	CourierInput struct {
		Name           string `json:"name"`
		Document       string `json:"document,omitempty"`
		Address        string `json:"address,omitempty"`
		Phone          string `json:"phone,omitempty"`
		SecondaryPhone string `json:"secondaryPhone,omitempty"`
		PaymentKey     string `json:"paymentKey,omitempty"`
		PreferredRoute string `json:"preferredRoute,omitempty"`
	}

	Courier struct {
		Id openapi_types.UUID `json:"id"`
		CourierInput
	}

	BatchDetails struct {
		DepartureAt         time.Time          `json:"departureAt"`
		EstimatedReturnDate openapi_types.Date `json:"estimatedReturnDate"`
		Description         string             `json:"description,omitempty"`
	}

	BatchInput struct {
		BatchDetails
		CourierId     openapi_types.UUID `json:"courierId"`
		PgfnInitial   int                `json:"pgfnInitial"`
		NormalInitial int                `json:"normalInitial"`
	}

	Counts struct {
		PgfnDelivered   int `json:"pgfnDelivered"`
		PgfnReturned    int `json:"pgfnReturned"`
		PgfnAbsent      int `json:"pgfnAbsent"`
		NormalDelivered int `json:"normalDelivered"`
		NormalReturned  int `json:"normalReturned"`
		NormalAbsent    int `json:"normalAbsent"`
	}

	BatchUpdate struct {
		Details *BatchDetails `json:"details,omitempty"`
		Counts  *Counts       `json:"counts,omitempty"`
	}

	Finalization struct {
		ReturnAt time.Time `json:"returnAt"`
		Counts   Counts    `json:"counts"`
	}

	Batch struct {
		Id                  openapi_types.UUID `json:"id"`
		CourierId           openapi_types.UUID `json:"courierId"`
		CourierName         string             `json:"courierName"`
		PgfnInitial         int                `json:"pgfnInitial"`
		NormalInitial       int                `json:"normalInitial"`
		DepartureAt         time.Time          `json:"departureAt"`
		EstimatedReturnDate openapi_types.Date `json:"estimatedReturnDate"`
		Description         string             `json:"description"`
		Status              string             `json:"status"`
		DisplayStatus       string             `json:"displayStatus"`
		ReturnAt            *time.Time         `json:"returnAt,omitempty"`
		Counts              *Counts            `json:"counts,omitempty"`
		TotalValue          *string            `json:"totalValue,omitempty"`
	}

	Dashboard struct {
		GeneratedAt time.Time `json:"generatedAt"`
		Active      []Batch   `json:"active"`
		Archived    []Batch   `json:"archived"`
	}

	Totals struct {
		PayableValue string `json:"payableValue"`
		Delivered    int    `json:"delivered"`
		Returned     int    `json:"returned"`
		Absent       int    `json:"absent"`
	}

	CourierSummary struct {
		Totals
		CourierId   openapi_types.UUID `json:"courierId"`
		CourierName string             `json:"courierName"`
		Pending     int                `json:"pending"`
		Overdue     int                `json:"overdue"`
		Finalized   int                `json:"finalized"`
	}

	Report struct {
		Scope       string           `json:"scope"`
		GeneratedAt time.Time        `json:"generatedAt"`
		System      Totals           `json:"system"`
		Couriers    []CourierSummary `json:"couriers"`
	}

	DescriptionRequest struct {
		CourierName   string `json:"courierName,omitempty"`
		Route         string `json:"route,omitempty"`
		PgfnInitial   int    `json:"pgfnInitial"`
		NormalInitial int    `json:"normalInitial"`
		Notes         string `json:"notes,omitempty"`
	}

	DescriptionSuggestion struct {
		Description string `json:"description"`
		Generated   bool   `json:"generated"`
	}

	GetReportParams struct {
		Scope *string `form:"scope,omitempty" json:"scope,omitempty"`
	}
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List couriers in roster order
	// (GET /api/v1/couriers)
	GetCouriers(ctx echo.Context) error
	// Register a courier
	// (POST /api/v1/couriers)
	CreateCourier(ctx echo.Context) error
	// Replace every field of a courier but its ID
	// (PUT /api/v1/couriers/{id})
	UpdateCourier(ctx echo.Context, id openapi_types.UUID) error
	// Delete a courier and every batch assigned to it
	// (DELETE /api/v1/couriers/{id})
	DeleteCourier(ctx echo.Context, id openapi_types.UUID) error
	// List batches split into active and archived groups
	// (GET /api/v1/batches)
	GetDashboard(ctx echo.Context) error
	// Dispatch a new pending batch
	// (POST /api/v1/batches)
	CreateBatch(ctx echo.Context) error
	// Edit the details of a pending batch or the counts of a finalized one
	// (PUT /api/v1/batches/{id})
	UpdateBatch(ctx echo.Context, id openapi_types.UUID) error
	// Delete a batch
	// (DELETE /api/v1/batches/{id})
	DeleteBatch(ctx echo.Context, id openapi_types.UUID) error
	// Reconcile a pending batch
	// (POST /api/v1/batches/{id}/finalize)
	FinalizeBatch(ctx echo.Context, id openapi_types.UUID) error
	// Aggregate system and per-courier performance
	// (GET /api/v1/reports)
	GetReport(ctx echo.Context, params GetReportParams) error
	// Draft a batch description with the text assistant
	// (POST /api/v1/assistant/description)
	SuggestDescription(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindID(ctx echo.Context) (openapi_types.UUID, error) {
	var id openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

func (w *ServerInterfaceWrapper) GetCouriers(ctx echo.Context) error {
	return w.Handler.GetCouriers(ctx)
}

func (w *ServerInterfaceWrapper) CreateCourier(ctx echo.Context) error {
	return w.Handler.CreateCourier(ctx)
}

func (w *ServerInterfaceWrapper) UpdateCourier(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateCourier(ctx, id)
}

func (w *ServerInterfaceWrapper) DeleteCourier(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DeleteCourier(ctx, id)
}

func (w *ServerInterfaceWrapper) GetDashboard(ctx echo.Context) error {
	return w.Handler.GetDashboard(ctx)
}

func (w *ServerInterfaceWrapper) CreateBatch(ctx echo.Context) error {
	return w.Handler.CreateBatch(ctx)
}

func (w *ServerInterfaceWrapper) UpdateBatch(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateBatch(ctx, id)
}

func (w *ServerInterfaceWrapper) DeleteBatch(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DeleteBatch(ctx, id)
}

func (w *ServerInterfaceWrapper) FinalizeBatch(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.FinalizeBatch(ctx, id)
}

func (w *ServerInterfaceWrapper) GetReport(ctx echo.Context) error {
	var params GetReportParams

	err := runtime.BindQueryParameter("form", true, false, "scope", ctx.QueryParams(), &params.Scope)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter scope: %s", err))
	}
	return w.Handler.GetReport(ctx, params)
}

func (w *ServerInterfaceWrapper) SuggestDescription(ctx echo.Context) error {
	return w.Handler.SuggestDescription(ctx)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/couriers", wrapper.GetCouriers)
	router.POST(baseURL+"/api/v1/couriers", wrapper.CreateCourier)
	router.PUT(baseURL+"/api/v1/couriers/:id", wrapper.UpdateCourier)
	router.DELETE(baseURL+"/api/v1/couriers/:id", wrapper.DeleteCourier)
	router.GET(baseURL+"/api/v1/batches", wrapper.GetDashboard)
	router.POST(baseURL+"/api/v1/batches", wrapper.CreateBatch)
	router.PUT(baseURL+"/api/v1/batches/:id", wrapper.UpdateBatch)
	router.DELETE(baseURL+"/api/v1/batches/:id", wrapper.DeleteBatch)
	router.POST(baseURL+"/api/v1/batches/:id/finalize", wrapper.FinalizeBatch)
	router.GET(baseURL+"/api/v1/reports", wrapper.GetReport)
	router.POST(baseURL+"/api/v1/assistant/description", wrapper.SuggestDescription)
}
