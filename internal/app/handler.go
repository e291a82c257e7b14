package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/smallwat3r/otshare/internal/domain"
	"github.com/smallwat3r/otshare/internal/logger"
	"github.com/smallwat3r/otshare/internal/share"
	"github.com/smallwat3r/otshare/internal/utility"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Handler struct {
	submitter share.Submitter
	region    domain.Region
	ttl       domain.TTL
	validate  *validator.Validate
}

// NewHandler serves shares through s, using region and ttl when a
// request does not pick its own.
func NewHandler(s share.Submitter, region domain.Region, ttl domain.TTL) *Handler {
	return &Handler{
		submitter: s,
		region:    region,
		ttl:       ttl,
		validate:  utility.NewValidator(),
	}
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *Handler) HandleRegions(w http.ResponseWriter, r *http.Request) {
	regions := domain.Regions()
	res := make([]domain.RegionRes, 0, len(regions))
	for _, rg := range regions {
		res = append(res, domain.RegionRes{
			Key:        rg.Key(),
			Title:      rg.Title(),
			APIBaseURL: rg.APIBaseURL(),
			WebBaseURL: rg.WebBaseURL(),
		})
	}
	utility.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) HandleTTLs(w http.ResponseWriter, r *http.Request) {
	ttls := domain.TTLs()
	res := make([]domain.TTLRes, 0, len(ttls))
	for _, t := range ttls {
		res = append(res, domain.TTLRes{Key: t.Key(), Value: t.Value(), Display: t.Display()})
	}
	utility.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) HandleShare(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxRequestBodySize)

	var req domain.ShareReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			utility.HttpError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		utility.HttpError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Secret) == "" {
		utility.HttpError(w, http.StatusBadRequest, "secret is required")
		return
	}
	req.Normalize()
	if err := h.validate.Struct(req); err != nil {
		utility.HttpError(w, http.StatusBadRequest, utility.ValidationMessage(err).Error())
		return
	}

	region := h.region
	if req.Region != "" {
		var err error
		if region, err = domain.ParseRegion(req.Region); err != nil {
			utility.HttpError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	ttl := h.ttl
	if req.TTL != "" {
		var err error
		if ttl, err = domain.ParseTTL(req.TTL); err != nil {
			utility.HttpError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	url, err := h.submitter.SubmitSecret(r.Context(), req.Secret, req.Passphrase, region, ttl)
	if err != nil {
		logger.Log.Warn("share failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		utility.HttpError(w, statusFor(err), domain.FailureMessage(err))
		return
	}

	utility.WriteJSON(w, http.StatusCreated, domain.ShareRes{URL: url, Region: region.Key(), TTL: ttl.Value()})
}

// statusFor maps a submission error onto the bridge's HTTP status.
func statusFor(err error) int {
	var (
		validationErr *domain.ValidationError
		serviceErr    *domain.ServiceError
		transportErr  *domain.TransportError
	)
	switch {
	case errors.As(err, &validationErr) && validationErr.Stage == "request":
		return http.StatusBadRequest
	case errors.As(err, &serviceErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &transportErr) && transportErr.StatusCode == 0 && errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
