package model

import "time"

// AllocationStatus is the lifecycle state of a mentorship allocation.
type AllocationStatus string

const (
	AllocationStatusActive    AllocationStatus = "active"
	AllocationStatusCompleted AllocationStatus = "completed"
)

// AllocationTier names the rule that picked a faculty member for a student.
type AllocationTier string

const (
	TierSameEmployer AllocationTier = "same_employer"
	TierSameCohort   AllocationTier = "same_cohort"
	TierLeastLoaded  AllocationTier = "least_loaded"
	TierManual       AllocationTier = "manual"
)

// FacultyAllocation assigns a student to a faculty mentor.
type FacultyAllocation struct {
	ID        string           `json:"id"`
	FacultyID string           `json:"faculty_id"`
	StudentID string           `json:"student_id"`
	Status    AllocationStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// FacultyWorkload is a faculty member annotated with their active allocation count.
type FacultyWorkload struct {
	FacultyID    string `json:"faculty_id"`
	Name         string `json:"name"`
	StudentCount int    `json:"student_count"`
}

// BulkAllocationResult reports the outcome of a bulk allocation run.
type BulkAllocationResult struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}
