// Package api is the one typed client for the hospital backend. Every screen
// used to carry its own fetch boilerplate; header attachment and error
// normalization now live here and nowhere else.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hospos-dev/hospos/internal/models"
)

// TokenSource supplies the bearer token for each outgoing call. It is read
// fresh per request, so a logout does not retro-invalidate requests already
// in flight.
type TokenSource interface {
	Token() string
}

type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
	log    zerolog.Logger
}

func NewClient(baseURL string, tokens TokenSource, log zerolog.Logger) *Client {
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   &http.Client{},
		tokens: tokens,
		log:    log.With().Str("component", "api").Logger(),
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/login", LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

type RegisterPatientRequest struct {
	Name    string        `json:"name"`
	Contact string        `json:"contact"`
	Gender  models.Gender `json:"gender"`
	DOB     string        `json:"dob"`
}

// CreatePatient registers a patient; success yields the slip descriptor that
// correlates the visit to the new record.
func (c *Client) CreatePatient(ctx context.Context, req RegisterPatientRequest) (*models.Slip, error) {
	var slip models.Slip
	if err := c.do(ctx, http.MethodPost, "/api/patients", req, &slip); err != nil {
		return nil, err
	}
	return &slip, nil
}

func (c *Client) ListPatients(ctx context.Context) ([]models.Patient, error) {
	var out []models.Patient
	if err := c.do(ctx, http.MethodGet, "/api/patients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PatientBySlip(ctx context.Context, slipNumber string) (*models.Patient, error) {
	var p models.Patient
	if err := c.do(ctx, http.MethodGet, "/api/patients/slip/"+NormalizeSlip(slipNumber), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) PatientByID(ctx context.Context, id int) (*models.Patient, error) {
	var p models.Patient
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/patients/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeletePatient(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/patients/%d", id), nil, nil)
}

type CreatePrescriptionRequest struct {
	SlipID       int                 `json:"slip_id"`
	MedicineList models.MedicineList `json:"medicine_list"`
	Notes        string              `json:"notes"`
}

func (c *Client) CreatePrescription(ctx context.Context, req CreatePrescriptionRequest) (*models.Prescription, error) {
	var p models.Prescription
	if err := c.do(ctx, http.MethodPost, "/api/prescriptions", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) ListPrescriptions(ctx context.Context) ([]models.Prescription, error) {
	var out []models.Prescription
	if err := c.do(ctx, http.MethodGet, "/api/prescriptions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PrescriptionBySlip(ctx context.Context, slipNumber string) (*models.Prescription, error) {
	var p models.Prescription
	if err := c.do(ctx, http.MethodGet, "/api/prescriptions/slip/"+NormalizeSlip(slipNumber), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeletePrescription(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/prescriptions/%d", id), nil, nil)
}

// UpdatePharmacyStatus moves a prescription one step forward in the
// dispensing lifecycle. The server validates the transition; the caller
// should offer only the legal next status.
func (c *Client) UpdatePharmacyStatus(ctx context.Context, id int, status models.PharmacyStatus) error {
	body := map[string]models.PharmacyStatus{"status": status}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/pharmacy/prescriptions/%d/status", id), body, nil)
}

type RecordPaymentRequest struct {
	SlipID      int     `json:"slip_id"`
	TotalAmount float64 `json:"total_amount"`
}

func (c *Client) RecordPayment(ctx context.Context, req RecordPaymentRequest) error {
	return c.do(ctx, http.MethodPost, "/api/payments", req, nil)
}

// NormalizeSlip upper-cases and trims a slip number before it reaches any
// lookup path.
func NormalizeSlip(slipNumber string) string {
	return strings.ToUpper(strings.TrimSpace(slipNumber))
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return serverError(0, err.Error())
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return connectError(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return connectError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return connectError(err)
	}

	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &e)
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Str("error", e.Error).Msg("server error")
		return serverError(resp.StatusCode, e.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return serverError(resp.StatusCode, "Invalid response from server")
	}
	return nil
}
