package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func TestEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c fiber.Ctx) error { return Success(c, fiber.StatusOK, "", map[string]int{"n": 1}) })
	app.Get("/created", func(c fiber.Ctx) error { return Created(c, "", nil) })
	app.Get("/bad", func(c fiber.Ctx) error { return Error(c, 999, "", nil) })

	cases := []struct {
		path    string
		status  int
		message string
	}{
		{"/ok", fiber.StatusOK, MessageOK},
		{"/created", fiber.StatusCreated, MessageCreated},
		{"/bad", fiber.StatusInternalServerError, MessageInternalServerError},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		var env SemanticResponse
		if err := json.Unmarshal(body, &env); err != nil {
			t.Fatalf("unexpected err: %v body=%s", err, body)
		}
		if resp.StatusCode != tc.status || env.Status != tc.status || env.Message != tc.message {
			t.Fatalf("%s: unexpected response %d %+v", tc.path, resp.StatusCode, env)
		}
	}
}

func TestMessageFor(t *testing.T) {
	cases := map[int]string{
		fiber.StatusNotFound:           MessageNotFound,
		fiber.StatusServiceUnavailable: MessageInternalServerError,
		fiber.StatusTeapot:             MessageError,
	}
	for status, want := range cases {
		if got := MessageFor(status); got != want {
			t.Fatalf("status %d: expected %q, got %q", status, want, got)
		}
	}
}
