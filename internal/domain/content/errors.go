package content

import "errors"

var (
	ErrNotFound       = errors.New("content not found")
	errNameAndComment = errors.New("author name and comment are required")
)

// IsCommentInputError reports whether err came from NewBlogComment input
// validation.
func IsCommentInputError(err error) bool {
	return errors.Is(err, errNameAndComment)
}
