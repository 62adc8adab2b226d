package main

// IDResponse carries the external identifier of a newly created record.
type IDResponse struct {
	ID string `json:"id"`
}

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of the health check endpoint.
type HealthResponse struct {
	Healthy  string `json:"healthy"`
	Revision string `json:"revision"`
	Tag      string `json:"tag"`
	Branch   string `json:"branch"`
}

// StatusResponse reports backend and document store connectivity.
type StatusResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name,omitempty"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// CreateGameRequest is the request body for creating a new game. Fields not
// listed here take the record defaults.
type CreateGameRequest struct {
	WhiteID     string `json:"white_id" example:"665f1c0a9d3b2a0001a1b2c3"`
	BlackID     string `json:"black_id" example:"665f1c0a9d3b2a0001a1b2c4"`
	TimeControl string `json:"time_control" example:"blitz"`
	Increment   int    `json:"increment" example:"2"`
}

// MatchRequest is the request body for matchmaking.
type MatchRequest struct {
	UserID string `json:"user_id" example:"665f1c0a9d3b2a0001a1b2c3"`
}
