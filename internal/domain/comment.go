package domain

import "time"

// Comment is a note on a task. Replies nest to any depth.
// Fields are ordered to minimize memory padding.
type Comment struct {
	Time        time.Time `json:"timestamp" yaml:"timestamp"` // Creation time
	ID          string    `json:"id" yaml:"id"`
	Author      string    `json:"name" yaml:"name"`     // Author display name
	Avatar      string    `json:"avatar" yaml:"avatar"` // Author avatar URL
	Text        string    `json:"text" yaml:"text"`
	Replies     []Comment `json:"replies" yaml:"replies"`
	IsFormatted bool      `json:"formatted" yaml:"formatted"` // Text uses the restricted markup subset
}

// CommentInput holds the caller-provided fields of a new comment or reply.
type CommentInput struct {
	Author    Member
	Text      string
	Formatted *bool // nil = detect from text
}

// Forest operations below never modify their input. Each returns a new
// top-level slice in which only the path to the changed node is rebuilt;
// untouched subtrees are shared with the input.

// AppendComment returns a new forest with c appended at root level.
func AppendComment(forest []Comment, c Comment) ([]Comment, error) {
	if ContainsComment(forest, c.ID) {
		return forest, NewValidationError("comment", "duplicate id "+c.ID, ErrDuplicateComment)
	}
	return appendCopy(forest, c), nil
}

// AppendReply returns a new forest with reply appended to the replies of the
// first comment (pre-order) whose ID is parentID.
// The input forest is returned unchanged together with a NotFoundError when
// no such comment exists.
func AppendReply(forest []Comment, parentID string, reply Comment) ([]Comment, error) {
	if ContainsComment(forest, reply.ID) {
		return forest, NewValidationError("comment", "duplicate id "+reply.ID, ErrDuplicateComment)
	}
	out, ok := updateFirst(forest,
		func(c *Comment) bool { return c.ID == parentID },
		func(c Comment) Comment {
			c.Replies = appendCopy(c.Replies, reply)
			return c
		},
	)
	if !ok {
		return forest, NewNotFoundError("comment", parentID, ErrCommentNotFound)
	}
	return out, nil
}

// updateFirst applies transform to the first node matching pred in a
// depth-first pre-order walk and rebuilds the ancestors of that node.
func updateFirst(forest []Comment, pred func(*Comment) bool, transform func(Comment) Comment) ([]Comment, bool) {
	for i := range forest {
		if pred(&forest[i]) {
			out := appendCopy(forest[:0:0], forest...)
			out[i] = transform(forest[i])
			return out, true
		}
		replies, ok := updateFirst(forest[i].Replies, pred, transform)
		if !ok {
			continue
		}
		out := appendCopy(forest[:0:0], forest...)
		node := forest[i]
		node.Replies = replies
		out[i] = node
		return out, true
	}
	return forest, false
}

// appendCopy appends items to a fresh copy of s so the backing array of s
// is never written.
func appendCopy(s []Comment, items ...Comment) []Comment {
	out := make([]Comment, 0, len(s)+len(items))
	out = append(out, s...)
	return append(out, items...)
}

// WalkComments visits every comment in pre-order with its depth (roots are 0).
// Returning false from fn stops the walk.
func WalkComments(forest []Comment, fn func(c *Comment, depth int) bool) {
	walk(forest, 0, fn)
}

func walk(forest []Comment, depth int, fn func(*Comment, int) bool) bool {
	for i := range forest {
		if !fn(&forest[i], depth) {
			return false
		}
		if !walk(forest[i].Replies, depth+1, fn) {
			return false
		}
	}
	return true
}

// FindComment returns the first comment with the given ID and its depth.
func FindComment(forest []Comment, id string) (*Comment, int, bool) {
	var (
		found *Comment
		depth int
	)
	WalkComments(forest, func(c *Comment, d int) bool {
		if c.ID == id {
			found, depth = c, d
			return false
		}
		return true
	})
	return found, depth, found != nil
}

// ContainsComment returns true if any comment in the forest has the given ID.
func ContainsComment(forest []Comment, id string) bool {
	_, _, ok := FindComment(forest, id)
	return ok
}

// CountComments returns the number of comments in the forest, replies included.
func CountComments(forest []Comment) int {
	n := 0
	WalkComments(forest, func(*Comment, int) bool {
		n++
		return true
	})
	return n
}

func normalizeComments(forest []Comment) {
	for i := range forest {
		if forest[i].Replies == nil {
			forest[i].Replies = []Comment{}
		}
		normalizeComments(forest[i].Replies)
	}
}
