package handler

import (
	"github.com/gofiber/fiber/v2"

	"internhub/internal/http/middleware"
	"internhub/internal/model"
	"internhub/internal/service"
)

type applicationStatusRequest struct {
	Status   string  `json:"status"`
	Feedback *string `json:"feedback,omitempty"`
}

// ApplyToInternship accepts multipart/form-data with exactly one "resume" file
// plus phone, semester and degree_program fields.
//
//	@Summary	Apply to an internship
//	@Tags		applications
//	@Security	BearerAuth
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		id				path		string	true	"internship id"
//	@Param		resume			formData	file	true	"resume"
//	@Param		phone			formData	string	true	"phone"
//	@Param		semester		formData	string	true	"semester"
//	@Param		degree_program	formData	string	true	"degree program"
//	@Success	201				{object}	model.InternshipApplication
//	@Failure	400				{object}	errorPayload
//	@Failure	409				{object}	errorPayload
//	@Failure	422				{object}	errorPayload
//	@Router		/api/v1/internships/{id}/applications [post]
func ApplyToInternship(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := middleware.ActorFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		internshipID, ok := validID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "RESUME_REQUIRED", "resume is required")
		}
		files := form.File["resume"]
		switch {
		case len(files) == 0:
			return writeError(c, fiber.StatusBadRequest, "RESUME_REQUIRED", "resume is required")
		case len(files) > 1:
			return writeError(c, fiber.StatusBadRequest, "TOO_MANY_FILES", "exactly one resume file is allowed")
		}
		fh := files[0]

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		app, err := svc.Apply(c.UserContext(), actor, service.ApplyInput{
			InternshipID:  internshipID,
			Phone:         c.FormValue("phone"),
			Semester:      c.FormValue("semester"),
			DegreeProgram: c.FormValue("degree_program"),
			Resume: &service.ResumeFile{
				Reader:      f,
				Filename:    fh.Filename,
				ContentType: ct,
				Size:        fh.Size,
			},
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(app)
	}
}

// ListInternshipApplications lists applications to an internship for its creator or an admin.
//
//	@Summary	Applications to an internship
//	@Tags		applications
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path	string	true	"internship id"
//	@Success	200	{array}	model.InternshipApplication
//	@Failure	403	{object}	errorPayload
//	@Router		/api/v1/internships/{id}/applications [get]
func ListInternshipApplications(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := middleware.ActorFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		internshipID, ok := validID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		items, err := svc.ListForInternship(c.UserContext(), actor, internshipID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(nonNilApplications(items))
	}
}

// ListMyApplications lists the calling student's applications.
//
//	@Summary	My applications
//	@Tags		applications
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	model.InternshipApplication
//	@Router		/api/v1/applications [get]
func ListMyApplications(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := middleware.ActorFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}

		items, err := svc.ListMine(c.UserContext(), actor)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(nonNilApplications(items))
	}
}

// GetApplication returns one application.
//
//	@Summary	Get an application
//	@Tags		applications
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"application id"
//	@Success	200	{object}	model.InternshipApplication
//	@Failure	403	{object}	errorPayload
//	@Failure	404	{object}	errorPayload
//	@Router		/api/v1/applications/{id} [get]
func GetApplication(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := middleware.ActorFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		id, ok := validID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		app, err := svc.Get(c.UserContext(), actor, id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(app)
	}
}

// UpdateApplicationStatus decides or withdraws an application.
//
//	@Summary	Change application status
//	@Tags		applications
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"application id"
//	@Param		body	body		applicationStatusRequest	true	"target status"
//	@Success	200		{object}	model.InternshipApplication
//	@Failure	400		{object}	errorPayload
//	@Failure	403		{object}	errorPayload
//	@Failure	409		{object}	errorPayload
//	@Router		/api/v1/applications/{id}/status [patch]
func UpdateApplicationStatus(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := middleware.ActorFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		id, ok := validID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req applicationStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		app, err := svc.UpdateStatus(c.UserContext(), actor, id, req.Status, req.Feedback)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(app)
	}
}

func nonNilApplications(items []model.InternshipApplication) []model.InternshipApplication {
	if items == nil {
		return []model.InternshipApplication{}
	}
	return items
}
