package middleware

import (
	"errors"
	"testing"

	"job-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"app error", NewAppError(fiber.StatusConflict, "Already applied", nil, nil), fiber.StatusConflict, "Already applied"},
		{"app error default message", NewAppError(fiber.StatusNotFound, "", nil, nil), fiber.StatusNotFound, response.MessageNotFound},
		{"app error unset status", NewAppError(0, "x", nil, nil), fiber.StatusInternalServerError, response.MessageInternalServerError},
		{"fiber error", fiber.NewError(fiber.StatusMethodNotAllowed, "nope"), fiber.StatusMethodNotAllowed, "nope"},
		{"plain error", errors.New("boom"), fiber.StatusInternalServerError, response.MessageInternalServerError},
		{"wrapped app error", errors.Join(errors.New("ctx"), NewAppError(fiber.StatusForbidden, "no", nil, nil)), fiber.StatusForbidden, "no"},
	}
	for _, tc := range cases {
		status, msg, _ := classify(tc.err)
		if status != tc.status || msg != tc.msg {
			t.Fatalf("%s: expected %d %q, got %d %q", tc.name, tc.status, tc.msg, status, msg)
		}
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("db down")
	err := NewAppError(fiber.StatusInternalServerError, "failed", nil, cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
	if err.Error() != "failed: db down" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
