package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskDrafts(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []TaskDraft
	}{
		{
			name: "single task",
			content: `---
title: First Task
---
Task description here.`,
			want: []TaskDraft{
				{Title: "First Task", Description: "Task description here."},
			},
		},
		{
			name: "all keys",
			content: `---
title: "Fix login"
column: in-progress
priority: high
assignee: 2
due: 2025-03-14
---
Users are logged out after 5 minutes.`,
			want: []TaskDraft{
				{
					Title:       "Fix login",
					Description: "Users are logged out after 5 minutes.",
					Column:      "in-progress",
					Priority:    "high",
					AssigneeID:  "2",
					Due:         "2025-03-14",
				},
			},
		},
		{
			name: "multiple tasks",
			content: `---
title: Phase 1
---
First phase.

---
title: Phase 2
priority: low
---
Second phase.`,
			want: []TaskDraft{
				{Title: "Phase 1", Description: "First phase."},
				{Title: "Phase 2", Description: "Second phase.", Priority: "low"},
			},
		},
		{
			name: "separator inside description",
			content: `---
title: Notes
---
Above the line.
---
Below the line.`,
			want: []TaskDraft{
				{Title: "Notes", Description: "Above the line.\n---\nBelow the line."},
			},
		},
		{
			name: "no description",
			content: `---
title: Bare
---`,
			want: []TaskDraft{
				{Title: "Bare"},
			},
		},
		{
			name:    "windows line endings",
			content: "---\r\ntitle: CRLF\r\n---\r\nBody\r\n",
			want: []TaskDraft{
				{Title: "CRLF", Description: "Body"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTaskDrafts(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTaskDrafts_Errors(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "empty file",
			content: "  \n",
			wantErr: ErrEmptyFile,
		},
		{
			name:    "no frontmatter",
			content: "just some text",
			wantErr: ErrNoTasksInFile,
		},
		{
			name: "missing title",
			content: `---
priority: high
---
Body`,
			wantErr: ErrEmptyTitle,
			wantMsg: "task 1",
		},
		{
			name: "unknown key",
			content: `---
title: A
labels: [x]
---`,
			wantErr: ErrValidation,
			wantMsg: "unknown key labels",
		},
		{
			name: "unterminated frontmatter",
			content: `---
title: A`,
			wantErr: ErrValidation,
			wantMsg: "missing closing",
		},
		{
			name: "error names the failing task",
			content: `---
title: Fine
---

---
title:
---`,
			wantErr: ErrEmptyTitle,
			wantMsg: "task 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTaskDrafts(tt.content)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}
