package schemas

// Page is the envelope every list endpoint returns. Page numbers are 1-based.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Size          int   `json:"size"`
	Page          int   `json:"page"`
	Empty         bool  `json:"empty"`
}

// NewPage shapes content plus the matching-row total into a page envelope.
func NewPage[T any](content []T, totalElements int64, page, size int) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((totalElements + int64(size) - 1) / int64(size))
	}
	return Page[T]{
		Content:       content,
		TotalPages:    totalPages,
		TotalElements: totalElements,
		Size:          size,
		Page:          page,
		Empty:         len(content) == 0,
	}
}
