package handoff

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medibridge/medibridge/internal/domain/records"
	"github.com/medibridge/medibridge/internal/domain/user"
	"github.com/medibridge/medibridge/internal/platform/auth"
	"github.com/medibridge/medibridge/internal/platform/httpx"
	"github.com/medibridge/medibridge/internal/platform/token"
)

type Handler struct {
	svc     *Service
	users   *user.Service
	records *records.Service
	tokens  *token.Issuer
}

func NewHandler(svc *Service, users *user.Service, recs *records.Service, tokens *token.Issuer) *Handler {
	return &Handler{svc: svc, users: users, records: recs, tokens: tokens}
}

// RegisterPatientRoutes mounts the authenticated patient-portal endpoints.
func (h *Handler) RegisterPatientRoutes(g *echo.Group) {
	g.POST("/getUserDetail", h.GetUserDetail)
	g.POST("/storeUserDetail", h.StoreUserDetail)
}

// RegisterHandoffRoutes mounts the cross-portal endpoints. Neither route sits
// behind the auth middleware: the token path carries its proof in the URL and
// the scan path carries it in the code.
func (h *Handler) RegisterHandoffRoutes(userGroup, doctorGroup *echo.Group) {
	userGroup.GET("/qr-data/:token", h.TokenHandoff)
	doctorGroup.POST("/qr-data", h.ScanHandoff)
}

type detailRequest struct {
	DetailType string `json:"detailType"`
}

// GetUserDetail returns one collection of the calling patient's own profile.
// The pseudo-type "user" reads the identity store; every other tag is a
// record variant.
func (h *Handler) GetUserDetail(c echo.Context) error {
	var in detailRequest
	if err := c.Bind(&in); err != nil {
		return httpx.Validation("invalid request body")
	}

	userID, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return httpx.Authorization("invalid or expired token")
	}

	if in.DetailType == UserKey {
		u, err := h.users.Get(c.Request().Context(), userID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return httpx.NotFound("user not found")
			}
			return err
		}
		// One-element list, matching the shape of every other detail type.
		return httpx.OK(c, http.StatusOK, "user details fetched successfully", []*user.User{u})
	}

	kind, err := records.ParseKind(in.DetailType)
	if err != nil {
		return httpx.Validation(err.Error())
	}
	items, err := h.records.ListByUser(c.Request().Context(), kind, userID)
	if err != nil {
		return err
	}
	return httpx.OK(c, http.StatusOK, "user details fetched successfully", items)
}

type storeDetailRequest struct {
	DetailType string          `json:"detailType"`
	UserID     string          `json:"userId"`
	Data       json.RawMessage `json:"data"`
}

// StoreUserDetail persists one record into the named collection. The owner is
// taken from the request body so the provider portal can write on a patient's
// behalf.
func (h *Handler) StoreUserDetail(c echo.Context) error {
	var in storeDetailRequest
	if err := c.Bind(&in); err != nil {
		return httpx.Validation("invalid request body")
	}
	if in.DetailType == "" || in.UserID == "" || len(in.Data) == 0 {
		return httpx.Validation("detailType, userId and data are required")
	}

	ownerID, err := uuid.Parse(in.UserID)
	if err != nil {
		return httpx.Validation("invalid userId")
	}
	kind, err := records.ParseKind(in.DetailType)
	if err != nil {
		return httpx.Validation(err.Error())
	}

	stored, err := h.records.Store(c.Request().Context(), kind, ownerID, in.Data)
	if err != nil {
		return err
	}
	return httpx.OK(c, http.StatusCreated, "user detail stored successfully", stored)
}

// TokenHandoff is the token path: the QR code embeds the patient's own access
// token and scanning it releases the full bundle.
func (h *Handler) TokenHandoff(c echo.Context) error {
	userID, err := h.tokens.Verify(c.Param("token"))
	if err != nil {
		return httpx.Authorization("invalid or expired token")
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return httpx.Authorization("invalid or expired token")
	}

	bundle, err := h.svc.Aggregate(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return httpx.OK(c, http.StatusOK, "user data fetched successfully", bundle)
}

type scanRequest struct {
	UserID     string `json:"userId"`
	InputValue string `json:"inputValue"`
}

// ScanHandoff is the scan-code path: the doctor portal submits the patient
// identifier read from the QR code together with the code the patient
// announced.
func (h *Handler) ScanHandoff(c echo.Context) error {
	var in scanRequest
	if err := c.Bind(&in); err != nil {
		return httpx.Validation("invalid request body")
	}
	if in.UserID == "" {
		return httpx.Validation("userId is required")
	}
	id, err := uuid.Parse(in.UserID)
	if err != nil {
		return httpx.Validation("invalid userId")
	}

	bundle, err := h.svc.VerifyScan(c.Request().Context(), id, in.InputValue)
	if err != nil {
		return err
	}
	return httpx.OK(c, http.StatusOK, "user data fetched successfully", bundle)
}
