// Package stubapi is an in-memory stand-in for the hospital backend: the
// full HTTP surface the terminal calls, with demo accounts and zero setup.
// It is a development and test aid, not the product API.
package stubapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hospos-dev/hospos/internal/models"
	"github.com/hospos-dev/hospos/internal/stubapi/ws"
)

const contextKeyClaims = "claims"

type Server struct {
	store  *Store
	secret string
	hub    *ws.Hub
	log    zerolog.Logger
}

func NewServer(secret string, log zerolog.Logger) *Server {
	s := &Server{
		store:  NewStore(),
		secret: secret,
		hub:    ws.NewHub(log),
		log:    log.With().Str("component", "stubapi").Logger(),
	}
	go s.hub.Run()
	return s
}

// Handler builds the echo instance with every route the terminal uses.
func (s *Server) Handler() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.POST("/api/login", s.handleLogin)
	e.GET("/ws", ws.ServeWS(s.hub))

	auth := e.Group("/api", s.bearerMiddleware)
	auth.POST("/patients", s.handleCreatePatient)
	auth.GET("/patients", s.handleListPatients)
	auth.GET("/patients/slip/:slip", s.handlePatientBySlip)
	auth.GET("/patients/:id", s.handlePatientByID)
	auth.DELETE("/patients/:id", s.handleDeletePatient)
	auth.POST("/prescriptions", s.handleCreatePrescription)
	auth.GET("/prescriptions", s.handleListPrescriptions)
	auth.GET("/prescriptions/slip/:slip", s.handlePrescriptionBySlip)
	auth.DELETE("/prescriptions/:id", s.handleDeletePrescription)
	auth.PUT("/pharmacy/prescriptions/:id/status", s.handleUpdateStatus)
	auth.POST("/payments", s.handleRecordPayment)

	return e
}

// Start serves until the listener fails.
func (s *Server) Start(addr string) error {
	s.log.Info().Str("addr", addr).Msg("stub API listening")
	return s.Handler().Start(addr)
}

// bearerMiddleware validates the Authorization header and stores the claims
// on the request context.
func (s *Server) bearerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authorization header missing"})
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid authorization header"})
		}
		claims, err := ValidateToken(s.secret, parts[1])
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token: " + err.Error()})
		}
		c.Set(contextKeyClaims, claims)
		return next(c)
	}
}

func claimsFrom(c echo.Context) *Claims {
	claims, _ := c.Get(contextKeyClaims).(*Claims)
	return claims
}

func (s *Server) handleLogin(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	user, err := s.store.Authenticate(req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	}
	token, err := GenerateToken(s.secret, *user, time.Now().Add(12*time.Hour))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user, "token": token})
}

func (s *Server) handleCreatePatient(c echo.Context) error {
	var req struct {
		Name    string `json:"name"`
		Contact string `json:"contact"`
		Gender  string `json:"gender"`
		DOB     string `json:"dob"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Name == "" || req.Contact == "" || req.Gender == "" || req.DOB == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, contact, gender and dob are required"})
	}
	gender := models.Gender(req.Gender)
	switch gender {
	case models.GenderMale, models.GenderFemale, models.GenderOther:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "gender must be male, female or other"})
	}
	slip := s.store.CreatePatient(req.Name, req.Contact, gender, req.DOB)
	return c.JSON(http.StatusCreated, slip)
}

func (s *Server) handleListPatients(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.ListPatients())
}

func (s *Server) handlePatientBySlip(c echo.Context) error {
	patient, err := s.store.PatientBySlip(c.Param("slip"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, patient)
}

func (s *Server) handlePatientByID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be a number"})
	}
	patient, err := s.store.PatientByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, patient)
}

func (s *Server) handleDeletePatient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be a number"})
	}
	if err := s.store.DeletePatient(id); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": id})
}

func (s *Server) handleCreatePrescription(c echo.Context) error {
	var req struct {
		SlipID       int                 `json:"slip_id"`
		MedicineList models.MedicineList `json:"medicine_list"`
		Notes        string              `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.SlipID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slip_id is required"})
	}
	doctorName := "Unknown"
	if claims := claimsFrom(c); claims != nil {
		doctorName = claims.Name
	}
	prescription, err := s.store.CreatePrescription(req.SlipID, req.MedicineList, req.Notes, doctorName)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, prescription)
}

func (s *Server) handleListPrescriptions(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.ListPrescriptions())
}

func (s *Server) handlePrescriptionBySlip(c echo.Context) error {
	prescription, err := s.store.PrescriptionBySlip(c.Param("slip"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, prescription)
}

func (s *Server) handleDeletePrescription(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be a number"})
	}
	if err := s.store.DeletePrescription(id); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": id})
}

func (s *Server) handleUpdateStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be a number"})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	status, err := models.ParsePharmacyStatus(req.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	prescription, err := s.store.UpdateStatus(id, status)
	if err != nil {
		if errors.Is(err, ErrPrescriptionMissing) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	s.broadcastStatus(prescription)
	return c.JSON(http.StatusOK, prescription)
}

func (s *Server) handleRecordPayment(c echo.Context) error {
	var req struct {
		SlipID      int     `json:"slip_id"`
		TotalAmount float64 `json:"total_amount"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	pay, err := s.store.RecordPayment(req.SlipID, req.TotalAmount)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, pay)
}

// broadcastStatus pushes a status-change event to any listening terminal.
func (s *Server) broadcastStatus(p *models.Prescription) {
	event, err := json.Marshal(map[string]any{
		"type":            "pharmacy_status",
		"prescription_id": p.ID,
		"slip_number":     p.SlipNumber,
		"status":          p.PharmacyStatus,
	})
	if err != nil {
		return
	}
	select {
	case s.hub.Broadcast <- event:
	default:
		// No listeners; drop rather than block the handler.
	}
}
