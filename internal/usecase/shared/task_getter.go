// Package shared holds helpers used by several use cases.
package shared

import (
	"fmt"
	"strings"

	"github.com/runoshun/flowsync/internal/board"
	"github.com/runoshun/flowsync/internal/domain"
)

// GetTask expands a task ID or unique ID prefix and returns a snapshot of
// the task. This centralizes the common pattern of:
//
//	id, err := b.Resolve(ref)
//	if err != nil { return nil, err }
//	task, err := b.GetTask(id)
func GetTask(b *board.Engine, ref string) (*domain.Task, error) {
	id, err := b.Resolve(strings.TrimSpace(ref))
	if err != nil {
		return nil, err
	}
	return b.GetTask(id)
}

// ResolveComment expands a comment ID or unique ID prefix within forest.
// An exact match always wins over prefix matches.
func ResolveComment(forest []domain.Comment, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", domain.NewNotFoundError("comment", ref, domain.ErrCommentNotFound)
	}
	if domain.ContainsComment(forest, ref) {
		return ref, nil
	}

	var matches []string
	domain.WalkComments(forest, func(c *domain.Comment, _ int) bool {
		if strings.HasPrefix(c.ID, ref) {
			matches = append(matches, c.ID)
		}
		return len(matches) < 2
	})

	switch len(matches) {
	case 0:
		return "", domain.NewNotFoundError("comment", ref, domain.ErrCommentNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", domain.NewValidationError("comment id", fmt.Sprintf("%q matches more than one comment", ref), domain.ErrAmbiguousID)
	}
}

// ResolveAttachment expands an attachment ID or unique ID prefix on task.
func ResolveAttachment(task *domain.Task, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref != "" && task.FindAttachment(ref) >= 0 {
		return ref, nil
	}

	var match string
	for _, a := range task.Attachments {
		if ref == "" || !strings.HasPrefix(a.ID, ref) {
			continue
		}
		if match != "" {
			return "", domain.NewValidationError("attachment id", fmt.Sprintf("%q matches more than one attachment", ref), domain.ErrAmbiguousID)
		}
		match = a.ID
	}
	if match == "" {
		return "", domain.NewNotFoundError("attachment", ref, domain.ErrAttachmentNotFound)
	}
	return match, nil
}
