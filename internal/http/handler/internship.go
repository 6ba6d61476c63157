package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"internhub/internal/http/middleware"
	"internhub/internal/service"
)

type createInternshipRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	CompanyName *string `json:"company_name,omitempty"`
	// Deadline accepts RFC 3339 or a plain YYYY-MM-DD date.
	Deadline string `json:"deadline"`
}

func parseDeadline(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

// CreateInternship publishes a new internship posting.
//
//	@Summary	Create an internship
//	@Tags		internships
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		createInternshipRequest	true	"posting"
//	@Success	201		{object}	model.Internship
//	@Failure	400		{object}	errorPayload
//	@Router		/api/v1/internships [post]
func CreateInternship(svc service.InternshipService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := middleware.ActorFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}

		var req createInternshipRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		deadline, err := parseDeadline(req.Deadline)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DEADLINE", "deadline must be RFC 3339 or YYYY-MM-DD")
		}

		in, err := svc.Create(c.UserContext(), actor, service.CreateInternshipInput{
			Title:       req.Title,
			Description: req.Description,
			CompanyName: req.CompanyName,
			Deadline:    deadline,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(in)
	}
}

// ListInternships returns a page of internships, newest first.
//
//	@Summary	List internships
//	@Tags		internships
//	@Security	BearerAuth
//	@Produce	json
//	@Param		limit	query		int	false	"page size"	default(10)
//	@Param		offset	query		int	false	"offset"	default(0)
//	@Success	200		{object}	service.InternshipListResult
//	@Router		/api/v1/internships [get]
func ListInternships(svc service.InternshipService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, qerr := paging(c)
		if qerr != nil {
			return writeError(c, fiber.StatusBadRequest, qerr.code, qerr.message)
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetInternship returns one internship.
//
//	@Summary	Get an internship
//	@Tags		internships
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"internship id"
//	@Success	200	{object}	model.Internship
//	@Failure	404	{object}	errorPayload
//	@Router		/api/v1/internships/{id} [get]
func GetInternship(svc service.InternshipService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := validID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		in, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(in)
	}
}
