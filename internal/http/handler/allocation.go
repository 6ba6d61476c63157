package handler

import (
	"github.com/gofiber/fiber/v2"

	"internhub/internal/model"
	"internhub/internal/service"
)

type allocationResponse struct {
	Allocation *model.FacultyAllocation `json:"allocation"`
}

type createAllocationRequest struct {
	FacultyID string `json:"faculty_id"`
	StudentID string `json:"student_id"`
}

type studentCountResponse struct {
	FacultyID string `json:"faculty_id"`
	Count     int    `json:"count"`
}

// AutoAllocate assigns a mentor to one student. When every faculty member is
// at capacity the response is 200 with a null allocation.
//
//	@Summary	Allocate a mentor to a student
//	@Tags		allocations
//	@Security	BearerAuth
//	@Produce	json
//	@Param		studentId	path		string	true	"student id"
//	@Success	200			{object}	allocationResponse
//	@Failure	400			{object}	errorPayload
//	@Router		/api/v1/allocations/auto/{studentId} [post]
func AutoAllocate(svc service.AllocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		studentID, ok := validID(c, "studentId")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		alloc, err := svc.AllocateStudent(c.UserContext(), studentID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(allocationResponse{Allocation: alloc})
	}
}

// BulkAllocate runs AutoAllocate for every unallocated student.
//
//	@Summary	Allocate all unallocated students
//	@Tags		allocations
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	model.BulkAllocationResult
//	@Failure	500	{object}	errorPayload
//	@Router		/api/v1/allocations/bulk [post]
func BulkAllocate(svc service.AllocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.BulkAllocate(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateAllocation assigns a specific faculty member to a student.
//
//	@Summary	Manual allocation
//	@Tags		allocations
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		createAllocationRequest	true	"faculty and student"
//	@Success	201		{object}	model.FacultyAllocation
//	@Failure	400		{object}	errorPayload
//	@Failure	409		{object}	errorPayload
//	@Router		/api/v1/allocations [post]
func CreateAllocation(svc service.AllocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createAllocationRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		alloc, err := svc.CreateAllocation(c.UserContext(), req.FacultyID, req.StudentID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(alloc)
	}
}

// ListWorkloads reports every faculty member with their active student count.
//
//	@Summary	Faculty workloads
//	@Tags		allocations
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	model.FacultyWorkload
//	@Router		/api/v1/allocations/workloads [get]
func ListWorkloads(svc service.AllocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.FacultyWorkloads(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		if items == nil {
			items = []model.FacultyWorkload{}
		}
		return c.JSON(items)
	}
}

// ListUnallocated returns students without an active allocation.
//
//	@Summary	Unallocated students
//	@Tags		allocations
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	model.StudentSummary
//	@Router		/api/v1/allocations/unallocated [get]
func ListUnallocated(svc service.AllocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.UnallocatedStudents(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		if items == nil {
			items = []model.StudentSummary{}
		}
		return c.JSON(items)
	}
}

// ListFacultyStudents returns the active allocations of one faculty member.
//
//	@Summary	Students of a faculty member
//	@Tags		allocations
//	@Security	BearerAuth
//	@Produce	json
//	@Param		facultyId	path	string	true	"faculty id"
//	@Success	200			{array}	model.FacultyAllocation
//	@Router		/api/v1/faculty/{facultyId}/students [get]
func ListFacultyStudents(svc service.AllocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		facultyID, ok := validID(c, "facultyId")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		items, err := svc.FacultyStudents(c.UserContext(), facultyID)
		if err != nil {
			return writeServiceError(c, err)
		}
		if items == nil {
			items = []model.FacultyAllocation{}
		}
		return c.JSON(items)
	}
}

// FacultyStudentCount returns how many active students a faculty member mentors.
//
//	@Summary	Active student count
//	@Tags		allocations
//	@Security	BearerAuth
//	@Produce	json
//	@Param		facultyId	path		string	true	"faculty id"
//	@Success	200			{object}	studentCountResponse
//	@Router		/api/v1/faculty/{facultyId}/student-count [get]
func FacultyStudentCount(svc service.AllocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		facultyID, ok := validID(c, "facultyId")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		n, err := svc.FacultyStudentCount(c.UserContext(), facultyID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(studentCountResponse{FacultyID: facultyID, Count: n})
	}
}
