package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/bobmcallan/papertrade/internal/models"
)

// GetUser retrieves a user profile
func (c *Client) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, fmt.Sprintf("/api/users/%s", url.PathEscape(userID)), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetRiskProfile retrieves the user's risk profile
func (c *Client) GetRiskProfile(ctx context.Context, userID string) (*models.RiskProfile, error) {
	var profile models.RiskProfile
	if err := c.get(ctx, fmt.Sprintf("/api/risk-profiles/user/%s", url.PathEscape(userID)), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveRiskProfile stores the user's risk profile and returns the saved record
func (c *Client) SaveRiskProfile(ctx context.Context, userID string, profile models.RiskProfile) (*models.RiskProfile, error) {
	var saved models.RiskProfile
	if err := c.post(ctx, fmt.Sprintf("/api/risk-profiles/user/%s", url.PathEscape(userID)), profile, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// Suggest asks the backend advisor for a reply
func (c *Client) Suggest(ctx context.Context, req models.SuggestRequest) (*models.Suggestion, error) {
	var s models.Suggestion
	if err := c.post(ctx, "/api/ai/suggest", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
