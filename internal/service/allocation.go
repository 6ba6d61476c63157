package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"internhub/internal/database"
	"internhub/internal/logger"
	"internhub/internal/metrics"
	"internhub/internal/model"
	"internhub/internal/repository"
)

// MaxStudentsPerFaculty is the number of active allocations a faculty member may hold.
const MaxStudentsPerFaculty = 10

var tracer = otel.Tracer("internhub/internal/service")

// AllocationService assigns students to faculty mentors.
type AllocationService interface {
	// AllocateStudent returns the student's existing allocation, or picks a faculty
	// member by tier (same employer, same cohort, least loaded) and allocates.
	// It returns nil, nil when every faculty member is at capacity.
	AllocateStudent(ctx context.Context, studentID string) (*model.FacultyAllocation, error)

	// CreateAllocation allocates a student to a specific faculty member.
	CreateAllocation(ctx context.Context, facultyID, studentID string) (*model.FacultyAllocation, error)

	FacultyStudentCount(ctx context.Context, facultyID string) (int, error)
	FacultyStudents(ctx context.Context, facultyID string) ([]model.FacultyAllocation, error)
	FacultyWorkloads(ctx context.Context) ([]model.FacultyWorkload, error)
	UnallocatedStudents(ctx context.Context) ([]model.StudentSummary, error)

	// BulkAllocate runs AllocateStudent over every unallocated student in order.
	// On a store failure it stops and returns the counts so far with the error.
	BulkAllocate(ctx context.Context) (*model.BulkAllocationResult, error)
}

type allocationService struct {
	tx      database.Transactor
	users   repository.UserRepository
	docs    repository.DocumentRepository
	allocs  repository.AllocationRepository
	metrics *metrics.Domain
	now     func() time.Time
}

// NewAllocationService constructs an AllocationService. m may be nil.
func NewAllocationService(
	tx database.Transactor,
	users repository.UserRepository,
	docs repository.DocumentRepository,
	allocs repository.AllocationRepository,
	m *metrics.Domain,
) AllocationService {
	return &allocationService{
		tx:      tx,
		users:   users,
		docs:    docs,
		allocs:  allocs,
		metrics: m,
		now:     time.Now,
	}
}

func (s *allocationService) AllocateStudent(ctx context.Context, studentID string) (*model.FacultyAllocation, error) {
	ctx, span := tracer.Start(ctx, "AllocationService.AllocateStudent",
		trace.WithAttributes(attribute.String("student.id", studentID)))
	defer span.End()

	if studentID == "" {
		return nil, ErrIDRequired
	}

	var (
		result  *model.FacultyAllocation
		tier    model.AllocationTier
		created bool
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.allocs.Lock(ctx); err != nil {
			return fmt.Errorf("lock allocations: %w", err)
		}

		existing, err := s.allocs.FindByStudent(ctx, studentID)
		if err != nil {
			return fmt.Errorf("find allocation: %w", err)
		}
		if existing != nil {
			result = existing
			return nil
		}

		facultyID, t, err := s.selectFaculty(ctx, studentID)
		if err != nil {
			return err
		}
		if facultyID == "" {
			return nil
		}

		a, err := s.allocs.Create(ctx, s.newAllocation(facultyID, studentID))
		if err != nil {
			return fmt.Errorf("create allocation: %w", err)
		}
		result, tier, created = a, t, true
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	log := logger.With("allocation")
	switch {
	case created:
		s.metrics.AllocationCreated(tier)
		span.SetAttributes(attribute.String("allocation.tier", string(tier)))
		log.Info().
			Str("student_id", studentID).
			Str("faculty_id", result.FacultyID).
			Str("tier", string(tier)).
			Msg("student allocated")
	case result == nil:
		s.metrics.AllocationExhausted()
		log.Warn().Str("student_id", studentID).Msg("no faculty with remaining capacity")
	}
	return result, nil
}

func (s *allocationService) newAllocation(facultyID, studentID string) *model.FacultyAllocation {
	return &model.FacultyAllocation{
		ID:        uuid.New().String(),
		FacultyID: facultyID,
		StudentID: studentID,
		Status:    model.AllocationStatusActive,
		CreatedAt: s.now().UTC(),
	}
}

// selectFaculty walks the tiers in priority order and returns the first faculty
// member below capacity. An empty id means no faculty member qualifies.
func (s *allocationService) selectFaculty(ctx context.Context, studentID string) (string, model.AllocationTier, error) {
	offer, err := s.docs.LatestApprovedOfferLetter(ctx, studentID)
	if err != nil {
		return "", "", fmt.Errorf("find offer letter: %w", err)
	}

	if company := offerCompany(offer); company != "" {
		employer, err := s.users.ListFacultyByCompany(ctx, company)
		if err != nil {
			return "", "", fmt.Errorf("list faculty by company: %w", err)
		}
		for _, f := range employer {
			ok, err := s.hasCapacity(ctx, f.ID)
			if err != nil {
				return "", "", err
			}
			if ok {
				return f.ID, model.TierSameEmployer, nil
			}
		}

		cohort, err := s.cohortFaculty(ctx, company, studentID)
		if err != nil {
			return "", "", err
		}
		for _, facultyID := range cohort {
			ok, err := s.hasCapacity(ctx, facultyID)
			if err != nil {
				return "", "", err
			}
			if ok {
				return facultyID, model.TierSameCohort, nil
			}
		}
	}

	workloads, err := s.workloads(ctx)
	if err != nil {
		return "", "", err
	}
	sort.SliceStable(workloads, func(i, j int) bool {
		return workloads[i].StudentCount < workloads[j].StudentCount
	})
	for _, w := range workloads {
		if w.StudentCount < MaxStudentsPerFaculty {
			return w.FacultyID, model.TierLeastLoaded, nil
		}
	}
	return "", "", nil
}

func offerCompany(offer *model.Document) string {
	if offer == nil || offer.CompanyName == nil {
		return ""
	}
	if strings.TrimSpace(*offer.CompanyName) == "" {
		return ""
	}
	return *offer.CompanyName
}

// cohortFaculty returns the faculty allocated to other students whose approved
// offer letter names company, without duplicates, in order of first appearance.
func (s *allocationService) cohortFaculty(ctx context.Context, company, studentID string) ([]string, error) {
	peers, err := s.docs.ListApprovedOfferLettersByCompany(ctx, company, studentID)
	if err != nil {
		return nil, fmt.Errorf("list cohort offer letters: %w", err)
	}
	if len(peers) == 0 {
		return nil, nil
	}

	peerIDs := make([]string, 0, len(peers))
	seenPeer := make(map[string]bool, len(peers))
	for _, d := range peers {
		if !seenPeer[d.UserID] {
			seenPeer[d.UserID] = true
			peerIDs = append(peerIDs, d.UserID)
		}
	}

	allocs, err := s.allocs.ListByStudents(ctx, peerIDs)
	if err != nil {
		return nil, fmt.Errorf("list cohort allocations: %w", err)
	}
	byStudent := make(map[string][]string, len(allocs))
	for _, a := range allocs {
		byStudent[a.StudentID] = append(byStudent[a.StudentID], a.FacultyID)
	}

	var out []string
	seen := make(map[string]bool)
	for _, id := range peerIDs {
		for _, facultyID := range byStudent[id] {
			if !seen[facultyID] {
				seen[facultyID] = true
				out = append(out, facultyID)
			}
		}
	}
	return out, nil
}

func (s *allocationService) hasCapacity(ctx context.Context, facultyID string) (bool, error) {
	n, err := s.allocs.CountActiveByFaculty(ctx, facultyID)
	if err != nil {
		return false, fmt.Errorf("count allocations of %s: %w", facultyID, err)
	}
	return n < MaxStudentsPerFaculty, nil
}

func (s *allocationService) workloads(ctx context.Context) ([]model.FacultyWorkload, error) {
	faculty, err := s.users.ListByRole(ctx, model.RoleFaculty)
	if err != nil {
		return nil, fmt.Errorf("list faculty: %w", err)
	}
	out := make([]model.FacultyWorkload, 0, len(faculty))
	for _, f := range faculty {
		n, err := s.allocs.CountActiveByFaculty(ctx, f.ID)
		if err != nil {
			return nil, fmt.Errorf("count allocations of %s: %w", f.ID, err)
		}
		out = append(out, model.FacultyWorkload{FacultyID: f.ID, Name: f.Name, StudentCount: n})
	}
	return out, nil
}

func (s *allocationService) CreateAllocation(ctx context.Context, facultyID, studentID string) (*model.FacultyAllocation, error) {
	ctx, span := tracer.Start(ctx, "AllocationService.CreateAllocation")
	defer span.End()

	if facultyID == "" || studentID == "" {
		return nil, validationError("faculty_id and student_id are required")
	}
	if err := s.requireRole(ctx, facultyID, model.RoleFaculty); err != nil {
		return nil, err
	}
	if err := s.requireRole(ctx, studentID, model.RoleStudent); err != nil {
		return nil, err
	}

	var result *model.FacultyAllocation
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.allocs.Lock(ctx); err != nil {
			return fmt.Errorf("lock allocations: %w", err)
		}
		existing, err := s.allocs.FindByStudent(ctx, studentID)
		if err != nil {
			return fmt.Errorf("find allocation: %w", err)
		}
		if existing != nil {
			return ErrAlreadyAllocated
		}
		ok, err := s.hasCapacity(ctx, facultyID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrFacultyAtCapacity
		}
		result, err = s.allocs.Create(ctx, s.newAllocation(facultyID, studentID))
		if err != nil {
			return fmt.Errorf("create allocation: %w", err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.metrics.AllocationCreated(model.TierManual)
	log := logger.With("allocation")
	log.Info().
		Str("student_id", studentID).
		Str("faculty_id", facultyID).
		Str("tier", string(model.TierManual)).
		Msg("student allocated")
	return result, nil
}

func (s *allocationService) requireRole(ctx context.Context, userID string, role model.Role) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		return fmt.Errorf("find user: %w", err)
	}
	if u.Role != role {
		return validationError("user %s is not a %s", userID, role)
	}
	return nil
}

func (s *allocationService) FacultyStudentCount(ctx context.Context, facultyID string) (int, error) {
	if facultyID == "" {
		return 0, ErrIDRequired
	}
	return s.allocs.CountActiveByFaculty(ctx, facultyID)
}

func (s *allocationService) FacultyStudents(ctx context.Context, facultyID string) ([]model.FacultyAllocation, error) {
	if facultyID == "" {
		return nil, ErrIDRequired
	}
	return s.allocs.ListByFaculty(ctx, facultyID)
}

func (s *allocationService) FacultyWorkloads(ctx context.Context) ([]model.FacultyWorkload, error) {
	return s.workloads(ctx)
}

func (s *allocationService) UnallocatedStudents(ctx context.Context) ([]model.StudentSummary, error) {
	students, err := s.users.ListUnallocatedStudents(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.StudentSummary, 0, len(students))
	for _, u := range students {
		out = append(out, model.StudentSummary{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return out, nil
}

func (s *allocationService) BulkAllocate(ctx context.Context) (*model.BulkAllocationResult, error) {
	ctx, span := tracer.Start(ctx, "AllocationService.BulkAllocate")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.BulkRunObserved(time.Since(start).Seconds()) }()

	res := &model.BulkAllocationResult{}
	students, err := s.users.ListUnallocatedStudents(ctx)
	if err != nil {
		return res, fmt.Errorf("list unallocated students: %w", err)
	}

	for _, st := range students {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		a, err := s.AllocateStudent(ctx, st.ID)
		if err != nil {
			span.RecordError(err)
			return res, fmt.Errorf("allocate student %s: %w", st.ID, err)
		}
		if a == nil {
			res.Failed++
		} else {
			res.Success++
		}
	}

	log := logger.With("allocation")
	log.Info().Int("success", res.Success).Int("failed", res.Failed).Msg("bulk allocation finished")
	return res, nil
}
