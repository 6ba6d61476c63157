package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"internhub/internal/model"
	"internhub/internal/service"
	serviceMocks "internhub/internal/service/mocks"
)

var applyFields = map[string]string{
	"phone":          "+91 98765 43210",
	"semester":       "6",
	"degree_program": "B.Tech CSE",
}

func TestApplyToInternship(t *testing.T) {
	mockSvc := new(serviceMocks.MockApplicationService)
	app := newAppAs(student)
	app.Post("/internships/:id/applications", ApplyToInternship(mockSvc))

	apply := func(internshipID string, body *bytes.Buffer, ct string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/internships/"+internshipID+"/applications", body)
		req.Header.Set("Content-Type", ct)
		return req
	}

	t.Run("created", func(t *testing.T) {
		internshipID := uuid.NewString()
		body, ct := multipartUpload(t, "resume", "cv.pdf", "%PDF", applyFields)

		mockSvc.On("Apply", mock.Anything, student, mock.MatchedBy(func(in service.ApplyInput) bool {
			return in.InternshipID == internshipID &&
				in.Phone == "+91 98765 43210" &&
				in.Semester == "6" &&
				in.DegreeProgram == "B.Tech CSE" &&
				in.Resume != nil && in.Resume.Filename == "cv.pdf"
		})).Return(&model.InternshipApplication{ID: uuid.NewString(), InternshipID: internshipID, Status: model.ApplicationStatusPending}, nil).Once()

		resp, _ := app.Test(apply(internshipID, body, ct))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var res model.InternshipApplication
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		assert.Equal(t, model.ApplicationStatusPending, res.Status)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing resume", func(t *testing.T) {
		body, ct := multipartUpload(t, "", "", "", applyFields)

		resp, _ := app.Test(apply(uuid.NewString(), body, ct))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "RESUME_REQUIRED", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("two resumes", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		for _, name := range []string{"a.pdf", "b.pdf"} {
			part, err := writer.CreateFormFile("resume", name)
			require.NoError(t, err)
			part.Write([]byte("x"))
		}
		require.NoError(t, writer.Close())

		resp, _ := app.Test(apply(uuid.NewString(), body, writer.FormDataContentType()))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "TOO_MANY_FILES", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("deadline passed", func(t *testing.T) {
		body, ct := multipartUpload(t, "resume", "cv.pdf", "%PDF", applyFields)
		mockSvc.On("Apply", mock.Anything, student, mock.Anything).Return(nil, service.ErrDeadlinePassed).Once()

		resp, _ := app.Test(apply(uuid.NewString(), body, ct))

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "DEADLINE_PASSED", decodeError(t, resp.Body).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("duplicate", func(t *testing.T) {
		body, ct := multipartUpload(t, "resume", "cv.pdf", "%PDF", applyFields)
		mockSvc.On("Apply", mock.Anything, student, mock.Anything).Return(nil, service.ErrDuplicateApplication).Once()

		resp, _ := app.Test(apply(uuid.NewString(), body, ct))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	mockSvc := new(serviceMocks.MockApplicationService)
	app := newAppAs(faculty)
	app.Patch("/applications/:id/status", UpdateApplicationStatus(mockSvc))

	id := uuid.NewString()
	feedback := "Strong portfolio"
	mockSvc.On("UpdateStatus", mock.Anything, faculty, id, "accepted", &feedback).
		Return(&model.InternshipApplication{ID: id, Status: model.ApplicationStatusAccepted, Feedback: &feedback}, nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/applications/"+id+"/status",
		strings.NewReader(`{"status":"accepted","feedback":"Strong portfolio"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var res model.InternshipApplication
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	require.NotNil(t, res.Feedback)
	assert.Equal(t, feedback, *res.Feedback)
	mockSvc.AssertExpectations(t)
}

func TestApplicationReads(t *testing.T) {
	mockSvc := new(serviceMocks.MockApplicationService)
	app := newAppAs(student)
	app.Get("/applications", ListMyApplications(mockSvc))
	app.Get("/applications/:id", GetApplication(mockSvc))
	app.Get("/internships/:id/applications", ListInternshipApplications(mockSvc))

	t.Run("mine", func(t *testing.T) {
		mockSvc.On("ListMine", mock.Anything, student).Return(nil, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/applications", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var items []model.InternshipApplication
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
		assert.NotNil(t, items)
		mockSvc.AssertExpectations(t)
	})

	t.Run("get not found", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Get", mock.Anything, student, id).Return(nil, service.ErrApplicationNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/applications/"+id, nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("list for internship", func(t *testing.T) {
		internshipID := uuid.NewString()
		mockSvc.On("ListForInternship", mock.Anything, student, internshipID).
			Return([]model.InternshipApplication{{ID: uuid.NewString()}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/internships/"+internshipID+"/applications", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateInternship(t *testing.T) {
	mockSvc := new(serviceMocks.MockInternshipService)
	app := newAppAs(faculty)
	app.Post("/internships", CreateInternship(mockSvc))

	post := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/internships", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	t.Run("date only deadline", func(t *testing.T) {
		want := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
		mockSvc.On("Create", mock.Anything, faculty, mock.MatchedBy(func(in service.CreateInternshipInput) bool {
			return in.Title == "Backend intern" && in.Deadline.Equal(want)
		})).Return(&model.Internship{ID: uuid.NewString(), Title: "Backend intern", Deadline: want}, nil).Once()

		resp, _ := app.Test(post(`{"title":"Backend intern","deadline":"2026-12-31"}`))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("bad deadline", func(t *testing.T) {
		resp, _ := app.Test(post(`{"title":"Backend intern","deadline":"next week"}`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_DEADLINE", decodeError(t, resp.Body).Error.Code)
	})
}

func TestListInternships(t *testing.T) {
	mockSvc := new(serviceMocks.MockInternshipService)
	app := newAppAs(student)
	app.Get("/internships", ListInternships(mockSvc))
	app.Get("/internships/:id", GetInternship(mockSvc))

	mockSvc.On("List", mock.Anything, 5, 10).
		Return(&service.InternshipListResult{Items: []model.Internship{{ID: uuid.NewString()}}, Total: 11}, nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/internships?limit=5&offset=10", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var res service.InternshipListResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, 11, res.Total)

	id := uuid.NewString()
	mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrInternshipNotFound).Once()
	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/internships/"+id, nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	mockSvc.AssertExpectations(t)
}
