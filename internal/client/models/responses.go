package models

// Envelope is the part every backend response shares.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type JotResponse struct {
	Envelope
	Jot Jot `json:"jot"`
}

type HistoryResponse struct {
	Envelope
	Jots  []Jot  `json:"jots"`
	Todos []Todo `json:"todos"`
}

type QandAResponse struct {
	Envelope
	QandA QandA `json:"qanda"`
}

type RegisterResponse struct {
	Envelope
	UserID int64 `json:"userId"`
}

// StatusResponse is returned by endpoints that carry no payload.
type StatusResponse struct {
	Envelope
}
