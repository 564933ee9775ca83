package domain

import "time"

type SystemStatus struct {
	TotalJobs         int       `json:"total_jobs"`
	TotalApplications int       `json:"total_applications"`
	DatabaseHealthy   bool      `json:"database_healthy"`
	RedisHealthy      bool      `json:"redis_healthy"`
	WSClients         int       `json:"ws_clients"`
	ServerTime        time.Time `json:"server_time"`
}
