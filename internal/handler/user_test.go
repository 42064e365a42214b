package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stablecart-api/internal/dto"
	"stablecart-api/internal/service"
)

// stubUserService records the profile-update request it receives; the
// embedded interface panics on anything else, which no test here touches.
type stubUserService struct {
	service.UserService
	updateReq *dto.UpdateProfileRequest
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	s.updateReq = req
	resp := &dto.UserResponse{ID: userID}
	if req.DisplayName != nil {
		resp.DisplayName = *req.DisplayName
	}
	if req.Country != nil {
		resp.Country = *req.Country
	}
	return resp, nil
}

func patchProfile(t *testing.T, h *UserHandler, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/users/me", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user-a")
	return rec, h.UpdateProfile(c)
}

func TestUpdateProfileRejectsUnknownFields(t *testing.T) {
	stub := &stubUserService{}
	h := NewUserHandler(stub)

	// email is not a mutable profile field; the request must fail before
	// reaching the service
	_, err := patchProfile(t, h, `{"display_name":"Sat","email":"sat@example.com"}`)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Nil(t, stub.updateReq)
}

func TestUpdateProfileAcceptsEnumeratedFields(t *testing.T) {
	stub := &stubUserService{}
	h := NewUserHandler(stub)

	rec, err := patchProfile(t, h, `{"display_name":"Satoshi"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, stub.updateReq)
	require.NotNil(t, stub.updateReq.DisplayName)
	assert.Equal(t, "Satoshi", *stub.updateReq.DisplayName)
	assert.Nil(t, stub.updateReq.Country)
}
