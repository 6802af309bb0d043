package controller

import (
	"strconv"

	"saga-be/internal/dto"
	"saga-be/internal/pkg/serverutils"
	"saga-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

var errInvalidBody = serverutils.NewWebError(fiber.StatusBadRequest, "Geçersiz istek gövdesi.")

type IAiController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	Identify(ctx *fiber.Ctx) error
	SemanticSearch(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	ContentQuestion(ctx *fiber.Ctx) error
	Assistant(ctx *fiber.Ctx) error
	ContentSummary(ctx *fiber.Ctx) error
	Summary(ctx *fiber.Ctx) error
	YearlySummary(ctx *fiber.Ctx) error
	UpdateIndex(ctx *fiber.Ctx) error
	BookSearch(ctx *fiber.Ctx) error
}

type aiController struct {
	service   service.IAiService
	jwtSecret string
}

func NewAiController(service service.IAiService, jwtSecret string) IAiController {
	return &aiController{service: service, jwtSecret: jwtSecret}
}

// RegisterRoutes mounts the AI routes on r, which is expected to be the
// /api/ai group.
func (c *aiController) RegisterRoutes(r fiber.Router) {
	optional := serverutils.OptionalJwtMiddleware(c.jwtSecret)
	required := serverutils.JwtMiddleware(c.jwtSecret)

	r.Post("/ask", optional, c.Ask)
	r.Post("/identify", optional, c.Identify)
	r.Post("/semantic-search", optional, c.SemanticSearch)
	r.Get("/health", c.Health)
	r.Post("/chat", optional, c.Chat)
	r.Post("/content-question", optional, c.ContentQuestion)
	r.Post("/assistant", optional, c.Assistant)
	r.Get("/content-summary/:id", optional, c.ContentSummary)
	r.Get("/books/search", c.BookSearch)

	r.Get("/summary", required, c.Summary)
	r.Get("/yearly-summary", required, c.YearlySummary)
	r.Post("/update-index", required, serverutils.AdminMiddleware, c.UpdateIndex)
}

// parseBody decodes and validates a JSON body into req.
func parseBody(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return errInvalidBody
	}
	return serverutils.ValidateRequest(req)
}

func (c *aiController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Ask(ctx.UserContext(), serverutils.GetAuthContext(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ask", res))
}

func (c *aiController) Identify(ctx *fiber.Ctx) error {
	var req dto.IdentifyRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Identify(ctx.UserContext(), serverutils.GetAuthContext(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success identify", res))
}

func (c *aiController) SemanticSearch(ctx *fiber.Ctx) error {
	var req dto.SemanticSearchRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.SemanticSearch(ctx.UserContext(), serverutils.GetAuthContext(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success semantic search", res))
}

func (c *aiController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success health", c.service.Health(ctx.UserContext())))
}

func (c *aiController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Chat(ctx.UserContext(), serverutils.GetAuthContext(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}

func (c *aiController) ContentQuestion(ctx *fiber.Ctx) error {
	var req dto.ContentQuestionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.ContentQuestion(ctx.UserContext(), serverutils.GetAuthContext(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success content question", res))
}

func (c *aiController) Assistant(ctx *fiber.Ctx) error {
	var req dto.AssistantRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Assistant(ctx.UserContext(), serverutils.GetAuthContext(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success assistant", res))
}

func (c *aiController) ContentSummary(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return service.ErrInvalidContentId
	}
	spoilerFree := ctx.QueryBool("spoilerFree", true)

	res, err := c.service.ContentSummary(ctx.UserContext(), serverutils.GetAuthContext(ctx), id, spoilerFree)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success content summary", res))
}

func (c *aiController) Summary(ctx *fiber.Ctx) error {
	year := ctx.QueryInt("year", 0)

	res, err := c.service.Summary(ctx.UserContext(), serverutils.GetAuthContext(ctx), year)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success summary", res))
}

func (c *aiController) YearlySummary(ctx *fiber.Ctx) error {
	var year *int
	if raw := ctx.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return service.ErrInvalidYear
		}
		year = &y
	}

	res, err := c.service.YearlySummary(ctx.UserContext(), serverutils.GetAuthContext(ctx), year)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success yearly summary", res))
}

func (c *aiController) UpdateIndex(ctx *fiber.Ctx) error {
	async := ctx.QueryBool("async", false)

	res, err := c.service.UpdateIndex(ctx.UserContext(), serverutils.GetAuthContext(ctx), async)
	if err != nil {
		return err
	}

	if res.Async {
		return ctx.Status(fiber.StatusAccepted).JSON(serverutils.BaseResponse[*dto.UpdateIndexResponse]{
			Success: true,
			Code:    fiber.StatusAccepted,
			Message: res.Message,
			Data:    res,
		})
	}
	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

func (c *aiController) BookSearch(ctx *fiber.Ctx) error {
	res, err := c.service.BookSearch(ctx.UserContext(), ctx.Query("q"), ctx.QueryInt("limit", 0))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success book search", res))
}
