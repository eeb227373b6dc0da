package domain

import (
	"fmt"
	"strings"
)

// TaskDraft is a task read from a Markdown file, before validation.
// Fields are ordered to minimize memory padding.
type TaskDraft struct {
	Title       string
	Description string
	Column      string
	Priority    string
	AssigneeID  string
	Due         string // YYYY-MM-DD
}

// draftKeys are the frontmatter keys a task block may set.
var draftKeys = []string{"title", "column", "priority", "assignee", "due"}

// ParseTaskDrafts parses a Markdown file holding one or more tasks.
// Each task starts with a frontmatter block; the text after it is the
// description.
//
// Format:
//
//	---
//	title: Update API docs
//	priority: high
//	assignee: 2
//	due: 2025-03-14
//	---
//	Cover the new pagination parameters.
//
//	---
//	title: Announce release
//	column: in-progress
//	---
//
// A "---" line inside a description only starts a new task when the next
// line is a frontmatter key.
func ParseTaskDrafts(content string) ([]TaskDraft, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyFile
	}

	blocks := splitTaskBlocks(content)
	if len(blocks) == 0 {
		return nil, ErrNoTasksInFile
	}

	drafts := make([]TaskDraft, 0, len(blocks))
	for i, block := range blocks {
		draft, err := parseTaskBlock(block)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

// splitTaskBlocks returns the lines of each task block, frontmatter
// closing marker included, without the opening marker.
func splitTaskBlocks(content string) [][]string {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	var blocks [][]string
	var current []string
	started := false

	for i, line := range lines {
		if strings.TrimRight(line, " \t") != "---" {
			if started {
				current = append(current, line)
			}
			continue
		}

		switch {
		case !started:
			started = true
			current = []string{}
		case !hasClosingMarker(current):
			current = append(current, "---")
		case i+1 < len(lines) && isFrontmatterKey(lines[i+1]):
			blocks = append(blocks, current)
			current = []string{}
		default:
			current = append(current, line)
		}
	}
	if started && len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

func hasClosingMarker(block []string) bool {
	for _, line := range block {
		if line == "---" {
			return true
		}
	}
	return false
}

// isFrontmatterKey reports whether line sets one of the draft keys.
func isFrontmatterKey(line string) bool {
	key, _, ok := strings.Cut(line, ":")
	if !ok {
		return false
	}
	key = strings.TrimSpace(key)
	for _, k := range draftKeys {
		if key == k {
			return true
		}
	}
	return false
}

// parseTaskBlock reads the frontmatter and description of one block.
func parseTaskBlock(lines []string) (TaskDraft, error) {
	var draft TaskDraft
	end := -1

	for i, line := range lines {
		if line == "---" {
			end = i
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return TaskDraft{}, NewValidationError("frontmatter", fmt.Sprintf("expected 'key: value', got %q", line), nil)
		}
		value = unquote(strings.TrimSpace(value))
		switch strings.TrimSpace(key) {
		case "title":
			draft.Title = value
		case "column":
			draft.Column = value
		case "priority":
			draft.Priority = value
		case "assignee":
			draft.AssigneeID = value
		case "due":
			draft.Due = value
		default:
			return TaskDraft{}, NewValidationError("frontmatter", "unknown key "+strings.TrimSpace(key), nil)
		}
	}
	if end < 0 {
		return TaskDraft{}, NewValidationError("frontmatter", "missing closing '---'", nil)
	}
	if draft.Title == "" {
		return TaskDraft{}, NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}

	draft.Description = strings.TrimSpace(strings.Join(lines[end+1:], "\n"))
	return draft, nil
}

// unquote strips one pair of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
