package dto

import "job-portal/internal/domain"

type HealthResponse struct {
	Status string `json:"status"`
	domain.SystemStatus
}

type RecomputeResponse struct {
	Started bool `json:"started"`
}
