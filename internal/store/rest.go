package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

// Client talks to the generic REST data store: plain
// GET/POST/PUT/DELETE per resource, filters as query parameters.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (c *Client) ListAppointments(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error) {
	q := url.Values{}
	if !f.Date.IsZero() {
		q.Set("date", f.Date.String())
	}
	if !f.From.IsZero() {
		q.Set("from", f.From.String())
	}
	if !f.To.IsZero() {
		q.Set("to", f.To.String())
	}
	if f.DoctorID != 0 {
		q.Set("doctorId", strconv.Itoa(f.DoctorID))
	}
	if f.PatientID != 0 {
		q.Set("patientId", strconv.Itoa(f.PatientID))
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}

	var out []models.Appointment
	if err := c.send(ctx, http.MethodGet, "/appointments", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetAppointment(ctx context.Context, id int) (*models.Appointment, error) {
	var out models.Appointment
	if err := c.send(ctx, http.MethodGet, "/appointments/"+strconv.Itoa(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	return c.send(ctx, http.MethodPost, "/appointments", nil, ap, ap)
}

// UpdateAppointment merges the patch into the stored record and PUTs it
// back, since the flat-file store only understands whole-resource
// writes.
func (c *Client) UpdateAppointment(ctx context.Context, id int, patch AppointmentPatch) (*models.Appointment, error) {
	current, err := c.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(current)

	if err := c.send(ctx, http.MethodPut, "/appointments/"+strconv.Itoa(id), nil, current, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (c *Client) DeleteAppointment(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, "/appointments/"+strconv.Itoa(id), nil, nil, nil)
}

// --------------------------------------------------
// Doctors / Patients
// --------------------------------------------------

func (c *Client) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	var out []models.Doctor
	if err := c.send(ctx, http.MethodGet, "/doctors", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListPatients(ctx context.Context) ([]models.Patient, error) {
	var out []models.Patient
	if err := c.send(ctx, http.MethodGet, "/patients", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Settings
// --------------------------------------------------

func (c *Client) GetWorkingHours(ctx context.Context) (models.WorkingHours, error) {
	var out models.WorkingHours
	if err := c.send(ctx, http.MethodGet, "/workingHours", nil, nil, &out); err != nil {
		return models.WorkingHours{}, err
	}
	return out, nil
}

func (c *Client) GetWorkingDays(ctx context.Context) (models.WorkingDays, error) {
	var out models.WorkingDays
	if err := c.send(ctx, http.MethodGet, "/workingDays", nil, nil, &out); err != nil {
		return models.WorkingDays{}, err
	}
	return out, nil
}

func (c *Client) GetHolidays(ctx context.Context) ([]models.Holiday, error) {
	var out []models.Holiday
	if err := c.send(ctx, http.MethodGet, "/holidays", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Transport
// --------------------------------------------------

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := method + " " + path

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return transportErr(op, err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return transportErr(op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportErr(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return transportErr(op, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return transportErr(op, err)
	}
	return nil
}
