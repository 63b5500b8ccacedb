package update_booking_status

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
	// AdminOverride разрешает обратный переход in_progress -> not_seen
	AdminOverride bool `json:"adminOverride,omitempty"`
}
