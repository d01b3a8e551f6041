package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindsSurviveWrapping(t *testing.T) {
	req := require.New(t)
	err := fmt.Errorf("handler: %w", NotFound("posts.delete", "Post not found."))

	req.ErrorIs(err, ErrNotFound)
	req.NotErrorIs(err, ErrStore)
	req.Equal(http.StatusNotFound, Status(err))
	req.Equal("Post not found.", Message(err, "fallback"))
}

func TestStatus(t *testing.T) {
	req := require.New(t)
	req.Equal(http.StatusBadRequest, Status(MissingParameter("op", "user is required")))
	req.Equal(http.StatusBadRequest, Status(Validation("op", "bad")))
	req.Equal(http.StatusInternalServerError, Status(Store("op", "", errors.New("socket closed"))))
	req.Equal(http.StatusInternalServerError, Status(errors.New("boom")))
}

func TestStoreErrorHidesCause(t *testing.T) {
	req := require.New(t)
	cause := errors.New("connection refused 10.0.0.3:27017")
	err := Store("messages.insert", "", cause)

	req.ErrorIs(err, cause)
	req.ErrorIs(err, ErrStore)
	req.Equal("Failed to save message.", Message(err, "Failed to save message."))
	req.Contains(err.Error(), "connection refused")
}
