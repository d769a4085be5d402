package controller

import (
	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/pkg/apperror"
	"doc-chat-be/internal/pkg/serverutils"
	"doc-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.ISessionService
}

func NewSessionController(service service.ISessionService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sessions")
	h.Post("", c.Create)
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)
	h.Patch(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func parseSessionId(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.Validation("Invalid session_id format", "session_id must be a valid UUID")
	}
	return id, nil
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body", "Body must be valid JSON")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	session, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.NewSessionResponse(session, dto.WelcomeMessage))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	id, err := parseSessionId(ctx)
	if err != nil {
		return err
	}

	session, err := c.service.Get(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.NewSessionResponse(session, dto.MessageRetrieved))
}

func (c *sessionController) GetAll(ctx *fiber.Ctx) error {
	q := dto.ListSessionsQuery{Limit: 50, Offset: 0}
	if err := ctx.QueryParser(&q); err != nil {
		return apperror.Validation("Invalid query parameters", "limit and offset must be integers")
	}

	if err := q.Validate(); err != nil {
		return err
	}

	sessions, err := c.service.List(ctx.Context(), q.UserId, q.Limit, q.Offset)
	if err != nil {
		return err
	}

	res := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		res = append(res, dto.NewSessionResponse(session, dto.MessageRetrieved))
	}

	return ctx.JSON(res)
}

func (c *sessionController) Update(ctx *fiber.Ctx) error {
	id, err := parseSessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body", "Body must be valid JSON")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	session, err := c.service.Update(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.NewSessionResponse(session, dto.MessageUpdated))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	id, err := parseSessionId(ctx)
	if err != nil {
		return err
	}

	session, err := c.service.Delete(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.NewSessionResponse(session, dto.MessageDeleted))
}
