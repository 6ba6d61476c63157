package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"internhub/internal/model"
	"internhub/internal/repository"
)

// memStore backs the in-memory repositories used by the allocation tests.
// Slices keep insertion order, which stands in for (created_at, id) ordering.
type memStore struct {
	mu     sync.Mutex
	users  []model.User
	docs   []model.Document
	allocs []model.FacultyAllocation

	createCalls int
	failCreate  func(call int) error
}

func newMemStore() *memStore { return &memStore{} }

type passTx struct{}

func (passTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *memStore) addFaculty(id string, company string) {
	u := model.User{ID: id, Name: "Faculty " + id, Email: id + "@uni.test", Role: model.RoleFaculty}
	if company != "" {
		c := company
		u.CompanyName = &c
	}
	s.users = append(s.users, u)
}

func (s *memStore) addStudent(id string) {
	s.users = append(s.users, model.User{ID: id, Name: "Student " + id, Email: id + "@uni.test", Role: model.RoleStudent})
}

func (s *memStore) addOffer(studentID, company string, status model.DocumentStatus) {
	c := company
	s.docs = append(s.docs, model.Document{
		ID:          fmt.Sprintf("doc-%d", len(s.docs)+1),
		UserID:      studentID,
		Type:        model.DocumentTypeOfferLetter,
		Status:      status,
		CompanyName: &c,
	})
}

func (s *memStore) allocate(facultyID, studentID string, status model.AllocationStatus) {
	s.allocs = append(s.allocs, model.FacultyAllocation{
		ID:        fmt.Sprintf("seed-%d", len(s.allocs)+1),
		FacultyID: facultyID,
		StudentID: studentID,
		Status:    status,
	})
}

// load gives facultyID n active students that exist only as allocation rows.
func (s *memStore) load(facultyID string, n int) {
	for i := 0; i < n; i++ {
		s.allocate(facultyID, fmt.Sprintf("%s-mentee-%d", facultyID, i), model.AllocationStatusActive)
	}
}

func (s *memStore) activeCount(facultyID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.allocs {
		if a.FacultyID == facultyID && a.Status == model.AllocationStatusActive {
			n++
		}
	}
	return n
}

func (s *memStore) allocationsOf(studentID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.allocs {
		if a.StudentID == studentID {
			n++
		}
	}
	return n
}

type memUsers struct{ *memStore }

func (r memUsers) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memUsers) ListByRole(_ context.Context, role model.Role) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r memUsers) ListFacultyByCompany(_ context.Context, company string) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, u := range r.users {
		if u.Role == model.RoleFaculty && u.CompanyName != nil && *u.CompanyName == company {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r memUsers) ListUnallocatedStudents(_ context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	allocated := make(map[string]bool)
	for _, a := range r.allocs {
		allocated[a.StudentID] = true
	}
	var out []model.User
	for _, u := range r.users {
		if u.Role == model.RoleStudent && !allocated[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}

type memDocs struct{ *memStore }

func (r memDocs) Create(_ context.Context, doc *model.Document) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, *doc)
	d := *doc
	return &d, nil
}

func (r memDocs) FindByID(_ context.Context, id string) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		if d.ID == id {
			d := d
			return &d, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memDocs) ListByUser(_ context.Context, userID string, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []model.Document
	for _, d := range r.docs {
		if d.UserID == userID {
			items = append(items, d)
		}
	}
	return &repository.PageResult[model.Document]{Items: items, Total: len(items)}, nil
}

func (r memDocs) UpdateStatus(_ context.Context, id string, from, to model.DocumentStatus) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.docs {
		if r.docs[i].ID == id && r.docs[i].Status == from {
			r.docs[i].Status = to
			d := r.docs[i]
			return &d, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memDocs) LatestApprovedOfferLetter(_ context.Context, userID string) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.docs) - 1; i >= 0; i-- {
		d := r.docs[i]
		if d.UserID == userID && d.Type == model.DocumentTypeOfferLetter && d.Status == model.DocumentStatusApproved {
			return &d, nil
		}
	}
	return nil, nil
}

func (r memDocs) ListApprovedOfferLettersByCompany(_ context.Context, company, excludeUserID string) ([]model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Document
	for _, d := range r.docs {
		if d.Type == model.DocumentTypeOfferLetter && d.Status == model.DocumentStatusApproved &&
			d.CompanyName != nil && *d.CompanyName == company && d.UserID != excludeUserID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r memDocs) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range r.docs {
		if d.ID == id {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return nil
		}
	}
	return nil
}

type memAllocs struct{ *memStore }

func (r memAllocs) Lock(context.Context) error { return nil }

func (r memAllocs) Create(_ context.Context, a *model.FacultyAllocation) (*model.FacultyAllocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.failCreate != nil {
		if err := r.failCreate(r.createCalls); err != nil {
			return nil, err
		}
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	r.allocs = append(r.allocs, *a)
	out := *a
	return &out, nil
}

func (r memAllocs) FindByStudent(_ context.Context, studentID string) (*model.FacultyAllocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.allocs {
		if a.StudentID == studentID {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (r memAllocs) ListByStudents(_ context.Context, studentIDs []string) ([]model.FacultyAllocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[string]bool, len(studentIDs))
	for _, id := range studentIDs {
		want[id] = true
	}
	var out []model.FacultyAllocation
	for _, a := range r.allocs {
		if want[a.StudentID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memAllocs) ListByFaculty(_ context.Context, facultyID string) ([]model.FacultyAllocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.FacultyAllocation
	for _, a := range r.allocs {
		if a.FacultyID == facultyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memAllocs) CountActiveByFaculty(_ context.Context, facultyID string) (int, error) {
	n := 0
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.allocs {
		if a.FacultyID == facultyID && a.Status == model.AllocationStatusActive {
			n++
		}
	}
	return n, nil
}

var errStoreDown = errors.New("store down")

func newMemAllocationService(s *memStore) AllocationService {
	return NewAllocationService(passTx{}, memUsers{s}, memDocs{s}, memAllocs{s}, nil)
}
