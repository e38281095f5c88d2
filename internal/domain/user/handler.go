package user

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medibridge/medibridge/internal/platform/httpx"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the unauthenticated identity endpoints on the
// patient-portal group.
func (h *Handler) RegisterRoutes(userGroup *echo.Group) {
	userGroup.POST("/signup", h.Signup)
	userGroup.POST("/signin", h.Signin)
}

func (h *Handler) Signup(c echo.Context) error {
	var in SignupInput
	if err := c.Bind(&in); err != nil {
		return httpx.Validation("invalid request body")
	}

	res, err := h.svc.Signup(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, httpx.Envelope{
		Success: true,
		Message: "user registered successfully",
		Token:   res.Token,
		User:    res.User.Summary(),
	})
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Signin(c echo.Context) error {
	var in signinRequest
	if err := c.Bind(&in); err != nil {
		return httpx.Validation("invalid request body")
	}

	res, err := h.svc.Signin(c.Request().Context(), in.Email, in.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, httpx.Envelope{
		Success: true,
		Message: "signin successful",
		Token:   res.Token,
		User:    res.User.Summary(),
	})
}
