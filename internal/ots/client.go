// Package ots submits secrets to the onetimesecret.com REST API.
package ots

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/smallwat3r/otshare/internal/domain"
	"github.com/smallwat3r/otshare/internal/logger"
	"github.com/smallwat3r/otshare/internal/utility"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxResponseSize caps how much of a reply body is decoded.
const maxResponseSize = 1 << 20

type Client struct {
	http     *http.Client
	validate *validator.Validate
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets an overall timeout on each request. Zero keeps the
// transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{},
		validate: utility.NewValidator(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitSecret stores text with the service and returns the share URL.
// An empty passphrase is not sent. The request is attempted exactly once.
func (c *Client) SubmitSecret(ctx context.Context, text, passphrase string, region domain.Region, ttl domain.TTL) (string, error) {
	id := uuid.NewString()
	log := logger.Log.With(
		zap.String("submission_id", id),
		zap.String("region", region.Key()),
		zap.String("ttl", ttl.Value()),
		zap.Bool("passphrase", passphrase != ""),
	)

	if region.IsZero() {
		return "", &domain.ValidationError{Stage: "request", Err: errors.New("region is required")}
	}

	req := domain.NewConcealReq(text, passphrase, ttl)
	if err := c.validate.Struct(req); err != nil {
		log.Warn("request failed validation", zap.Error(err))
		return "", &domain.ValidationError{Stage: "request", Err: utility.ValidationMessage(err)}
	}

	log.Debug("submitting secret", zap.String("url", region.ConcealURL()))
	start := time.Now()

	res, err := c.conceal(ctx, region, req)
	if err != nil {
		log.Warn("secret submission failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return "", err
	}

	shareURL := region.ShareURL(res.Record.Secret.Identifier)
	log.Info("secret created",
		zap.String("metadata_id", res.Record.Metadata.Identifier),
		zap.Duration("duration", time.Since(start)),
	)
	return shareURL, nil
}

func (c *Client) conceal(ctx context.Context, region domain.Region, payload domain.ConcealReq) (domain.ConcealRes, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.ConcealRes{}, &domain.ValidationError{Stage: "request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, region.ConcealURL(), bytes.NewReader(body))
	if err != nil {
		return domain.ConcealRes{}, &domain.TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.ConcealRes{}, &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return domain.ConcealRes{}, &domain.TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var res domain.ConcealRes
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize))
	if err := dec.Decode(&res); err != nil {
		return domain.ConcealRes{}, &domain.ValidationError{Stage: "response", Err: err}
	}
	// the body must be exactly one JSON document
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		return domain.ConcealRes{}, &domain.ValidationError{Stage: "response", Err: errors.New("unexpected data after JSON body")}
	}

	// success is checked before the record so a refusal is reported as such
	if err := c.validate.Var(res.Success, "required"); err != nil {
		return domain.ConcealRes{}, &domain.ValidationError{Stage: "response", Err: errors.New("success is required")}
	}
	if !res.Succeeded() {
		return domain.ConcealRes{}, &domain.ServiceError{Message: res.Message}
	}
	if err := c.validate.Struct(res); err != nil {
		return domain.ConcealRes{}, &domain.ValidationError{Stage: "response", Err: utility.ValidationMessage(err)}
	}
	return res, nil
}
