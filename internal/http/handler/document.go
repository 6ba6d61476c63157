package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"internhub/internal/http/middleware"
	"internhub/internal/model"
	"internhub/internal/service"
)

type documentStatusRequest struct {
	Status   string  `json:"status"`
	Feedback *string `json:"feedback,omitempty"`
	Rating   *int    `json:"rating,omitempty"`
}

type downloadResponse struct {
	URL string `json:"url"`
}

type queryError struct {
	code    string
	message string
}

// paging parses limit and offset query parameters, defaulting to 10 and 0.
func paging(c *fiber.Ctx) (limit, offset int, qerr *queryError) {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return 0, 0, &queryError{"INVALID_LIMIT", "invalid limit"}
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, &queryError{"INVALID_OFFSET", "invalid offset"}
	}
	return limit, offset, nil
}

func optionalForm(c *fiber.Ctx, key string) *string {
	if v := c.FormValue(key); v != "" {
		return &v
	}
	return nil
}

// ListDocuments lists documents of the caller, or of ?user_id= for faculty and admins.
//
//	@Summary	List documents
//	@Tags		documents
//	@Security	BearerAuth
//	@Produce	json
//	@Param		user_id	query		string	false	"owner id"
//	@Param		limit	query		int		false	"page size"	default(10)
//	@Param		offset	query		int		false	"offset"	default(0)
//	@Success	200		{object}	service.DocumentListResult
//	@Failure	400		{object}	errorPayload
//	@Failure	403		{object}	errorPayload
//	@Router		/api/v1/documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := middleware.ActorFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		limit, offset, qerr := paging(c)
		if qerr != nil {
			return writeError(c, fiber.StatusBadRequest, qerr.code, qerr.message)
		}

		res, err := svc.List(c.UserContext(), actor, c.Query("user_id"), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadDocument accepts multipart/form-data with a "file" part and a "type" field.
//
//	@Summary	Upload a document
//	@Tags		documents
//	@Security	BearerAuth
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file				formData	file	true	"document file"
//	@Param		type				formData	string	true	"offer_letter, monthly_report or attendance"
//	@Param		company_name		formData	string	false	"employer, required for offer_letter"
//	@Param		internship_domain	formData	string	false	"internship domain"
//	@Success	201					{object}	model.Document
//	@Failure	400					{object}	errorPayload
//	@Router		/api/v1/documents [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := middleware.ActorFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.Upload(c.UserContext(), actor, service.UploadInput{
			Reader:           f,
			Filename:         fh.Filename,
			ContentType:      ct,
			Size:             fh.Size,
			Type:             model.DocumentType(c.FormValue("type")),
			CompanyName:      optionalForm(c, "company_name"),
			InternshipDomain: optionalForm(c, "internship_domain"),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument returns document metadata.
//
//	@Summary	Get a document
//	@Tags		documents
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"document id"
//	@Success	200	{object}	model.Document
//	@Failure	400	{object}	errorPayload
//	@Failure	404	{object}	errorPayload
//	@Router		/api/v1/documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := middleware.ActorFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		id, ok := validID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		doc, err := svc.Get(c.UserContext(), actor, id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DownloadDocument returns a short-lived presigned URL for the file.
//
//	@Summary	Presigned download URL
//	@Tags		documents
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"document id"
//	@Success	200	{object}	downloadResponse
//	@Failure	404	{object}	errorPayload
//	@Router		/api/v1/documents/{id}/download [get]
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := middleware.ActorFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		id, ok := validID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		url, err := svc.DownloadURL(c.UserContext(), actor, id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(downloadResponse{URL: url})
	}
}

// DeleteDocument removes a document and its stored file.
//
//	@Summary	Delete a document
//	@Tags		documents
//	@Security	BearerAuth
//	@Param		id	path	string	true	"document id"
//	@Success	204
//	@Failure	403	{object}	errorPayload
//	@Failure	404	{object}	errorPayload
//	@Router		/api/v1/documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := middleware.ActorFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		id, ok := validID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Delete(c.UserContext(), actor, id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// UpdateDocumentStatus moves a document through its review workflow.
//
//	@Summary	Change document status
//	@Tags		documents
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"document id"
//	@Param		body	body		documentStatusRequest	true	"target status with optional feedback"
//	@Success	200		{object}	model.Document
//	@Failure	400		{object}	errorPayload
//	@Failure	403		{object}	errorPayload
//	@Failure	409		{object}	errorPayload
//	@Router		/api/v1/documents/{id}/status [patch]
func UpdateDocumentStatus(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := middleware.ActorFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		id, ok := validID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req documentStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		doc, err := svc.UpdateStatus(c.UserContext(), actor, id, service.DocumentStatusUpdate{
			Status:   req.Status,
			Feedback: req.Feedback,
			Rating:   req.Rating,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// ListDocumentFeedback returns the review log of a document, oldest first.
//
//	@Summary	Document feedback
//	@Tags		documents
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path	string	true	"document id"
//	@Success	200	{array}	model.DocumentFeedback
//	@Router		/api/v1/documents/{id}/feedback [get]
func ListDocumentFeedback(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := middleware.ActorFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		id, ok := validID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		items, err := svc.ListFeedback(c.UserContext(), actor, id)
		if err != nil {
			return writeServiceError(c, err)
		}
		if items == nil {
			items = []model.DocumentFeedback{}
		}
		return c.JSON(items)
	}
}
