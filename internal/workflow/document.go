package workflow

import (
	"fmt"

	"internhub/internal/model"
)

type documentEdge struct {
	from model.DocumentStatus
	to   model.DocumentStatus
}

// studentDocumentEdges lists the only edges a student may take on their own document.
var studentDocumentEdges = map[documentEdge]bool{
	{model.DocumentStatusDraft, model.DocumentStatusSubmitted}: true,
}

// CurrentDocumentStatus returns the document's status, treating an unset one as draft.
func CurrentDocumentStatus(doc *model.Document) model.DocumentStatus {
	if doc.Status == "" {
		return model.DocumentStatusDraft
	}
	return doc.Status
}

// AuthorizeDocumentStatus checks whether actor may move doc to target.
//
// Faculty and admins may set any status directly (manual override). Students
// may only submit their own draft. Every other role has no rights.
func AuthorizeDocumentStatus(actor model.Actor, doc *model.Document, target model.DocumentStatus) error {
	if !target.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}
	from := CurrentDocumentStatus(doc)

	switch actor.Role {
	case model.RoleFaculty, model.RoleAdmin:
		return nil
	case model.RoleStudent:
		if doc.UserID != actor.ID {
			return fmt.Errorf("%w: document belongs to another user", ErrForbidden)
		}
		if !studentDocumentEdges[documentEdge{from, target}] {
			return transitionError(string(from), string(target))
		}
		return nil
	case model.RoleCompany:
		return fmt.Errorf("%w: companies cannot change document status", ErrForbidden)
	default:
		return fmt.Errorf("%w: unknown role %q", ErrForbidden, actor.Role)
	}
}

// CanReadDocument reports whether actor may view doc and its feedback.
func CanReadDocument(actor model.Actor, doc *model.Document) bool {
	switch actor.Role {
	case model.RoleFaculty, model.RoleAdmin:
		return true
	case model.RoleStudent:
		return doc.UserID == actor.ID
	default:
		return false
	}
}

// CanDeleteDocument reports whether actor may remove doc. Owners may only
// remove drafts.
func CanDeleteDocument(actor model.Actor, doc *model.Document) bool {
	switch actor.Role {
	case model.RoleAdmin:
		return true
	case model.RoleStudent:
		return doc.UserID == actor.ID && CurrentDocumentStatus(doc) == model.DocumentStatusDraft
	default:
		return false
	}
}
