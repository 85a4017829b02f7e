package controller

import (
	"knowthee-be/internal/dto"
	"knowthee-be/internal/pkg/serverutils"
	"knowthee-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IEmployeeController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Ingest(ctx *fiber.Ctx) error
	RefreshRoster(ctx *fiber.Ctx) error
}

type employeeController struct {
	employeeService  service.IEmployeeService
	ingestionService service.IIngestionService
}

func NewEmployeeController(employeeService service.IEmployeeService, ingestionService service.IIngestionService) IEmployeeController {
	return &employeeController{
		employeeService:  employeeService,
		ingestionService: ingestionService,
	}
}

func (c *employeeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/employee/v1")
	h.Get("", c.GetAll)
	h.Get("search", c.Search)
	h.Post("ingest", c.Ingest)
	h.Post("refresh-roster", c.RefreshRoster)
}

func (c *employeeController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.employeeService.GetAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get employees", res))
}

func (c *employeeController) Search(ctx *fiber.Ctx) error {
	fragment := ctx.Query("q")
	if fragment == "" {
		return fiber.NewError(fiber.StatusBadRequest, "query parameter q is required")
	}
	limit := ctx.QueryInt("limit", 10)

	res, err := c.employeeService.SearchByName(ctx.Context(), fragment, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search employees", res))
}

func (c *employeeController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestEmployeeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ingestionService.IngestEmployee(ctx.Context(), &req)
	if err != nil {
		return err
	}

	// Newly ingested employees should resolve by name right away.
	if _, err := c.employeeService.RefreshRoster(ctx.Context()); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ingest employee", res))
}

func (c *employeeController) RefreshRoster(ctx *fiber.Ctx) error {
	count, err := c.employeeService.RefreshRoster(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success refresh roster", fiber.Map{
		"count": count,
	}))
}
