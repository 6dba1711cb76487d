package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/buddybud/buddybud-api/internal/dto"
	"github.com/buddybud/buddybud-api/internal/handler"
	"github.com/buddybud/buddybud-api/internal/service"
)

type mockAuthService struct {
	lastUsername string
	lastPassword string
	response     service.TokenResponse
	err          error
}

func (m *mockAuthService) Login(_ context.Context, username, password string) (service.TokenResponse, error) {
	m.lastUsername = username
	m.lastPassword = password
	if m.err != nil {
		return service.TokenResponse{}, m.err
	}
	return m.response, nil
}

func newAuthApp(svc service.AuthService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/teacher/auth")
	handler.NewAuthHandler(svc, validator.New(validator.WithRequiredStructEnabled()), zerolog.New(io.Discard)).Register(group)
	return app
}

func postLogin(t *testing.T, app *fiber.App, payload dto.LoginRequest) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teacher/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	svc := &mockAuthService{response: service.TokenResponse{
		Token:     "signed.jwt.token",
		ExpiresAt: time.Now().Add(24 * time.Hour),
		Teacher:   "D. Holt",
	}}
	app := newAuthApp(svc)

	resp := postLogin(t, app, dto.LoginRequest{Username: "mr.holt", Password: "correct horse"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool                  `json:"success"`
		Data    service.TokenResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	resp.Body.Close()

	require.True(t, response.Success)
	require.Equal(t, "signed.jwt.token", response.Data.Token)
	require.Equal(t, "mr.holt", svc.lastUsername)
	require.Equal(t, "correct horse", svc.lastPassword)
}

func TestAuthHandler_LoginRejectsInvalidCredentials(t *testing.T) {
	svc := &mockAuthService{err: service.ErrInvalidCredentials}
	app := newAuthApp(svc)

	resp := postLogin(t, app, dto.LoginRequest{Username: "mr.holt", Password: "wrong password"})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var response struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	resp.Body.Close()

	require.False(t, response.Success)
	require.NotEmpty(t, response.Message)
}

func TestAuthHandler_LoginValidatesPayload(t *testing.T) {
	svc := &mockAuthService{}
	app := newAuthApp(svc)

	// Password below the minimum length never reaches the service.
	resp := postLogin(t, app, dto.LoginRequest{Username: "mr.holt", Password: "short"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
	require.Empty(t, svc.lastUsername)
}
