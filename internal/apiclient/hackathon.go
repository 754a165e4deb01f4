package apiclient

import (
	"context"
	"net/http"
	"time"

	"github.com/hacklens/hacklens-go/internal/models"
)

type CreateHackathonRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        models.HackType `json:"hackathon_type"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	IsActive    bool            `json:"is_active"`
}

// ActiveHackathons lists hackathons currently open for browsing. No auth
// required; anonymous visitors see the same list.
func (c *Client) ActiveHackathons(ctx context.Context) ([]models.Hackathon, error) {
	var hackathons []models.Hackathon
	if err := c.getJSON(ctx, "/hackathon/active", false, &hackathons); err != nil {
		return nil, err
	}
	return hackathons, nil
}

func (c *Client) HackathonByID(ctx context.Context, id string) (*models.Hackathon, error) {
	var hackathon models.Hackathon
	if err := c.getJSON(ctx, "/hackathon/"+id, false, &hackathon); err != nil {
		return nil, err
	}
	return &hackathon, nil
}

func (c *Client) HackathonsByType(ctx context.Context, hackType models.HackType) ([]models.Hackathon, error) {
	if _, err := models.ParseHackType(string(hackType)); err != nil {
		return nil, err
	}
	var hackathons []models.Hackathon
	if err := c.getJSON(ctx, "/hackathon/type/"+string(hackType), false, &hackathons); err != nil {
		return nil, err
	}
	return hackathons, nil
}

// CreateHackathon creates a new event. Admin only; the server enforces the
// role and stamps created_by.
func (c *Client) CreateHackathon(ctx context.Context, req CreateHackathonRequest) (*models.Hackathon, error) {
	if _, err := models.ParseHackType(string(req.Type)); err != nil {
		return nil, err
	}
	var hackathon models.Hackathon
	if err := c.postJSON(ctx, "/hackathon/create", true, req, &hackathon); err != nil {
		return nil, err
	}
	return &hackathon, nil
}

// DeleteHackathon removes an event. Admin only.
func (c *Client) DeleteHackathon(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/hackathon/delete/"+id, nil, "", true, nil)
}

// Register signs the current participant up for a hackathon. A duplicate
// registration surfaces as ErrConflict.
func (c *Client) Register(ctx context.Context, hackathonID string) error {
	return c.postJSON(ctx, "/hackathon/register/"+hackathonID, true, nil, nil)
}

func (c *Client) IsRegistered(ctx context.Context, hackathonID string) (bool, error) {
	var out struct {
		Registered bool `json:"registered"`
	}
	if err := c.getJSON(ctx, "/hackathon/is_registered/"+hackathonID, true, &out); err != nil {
		return false, err
	}
	return out.Registered, nil
}
