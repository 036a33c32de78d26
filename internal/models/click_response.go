package models

import "linkgate/internal/entities"

// Pagination describes one page of a listing
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// ClicksPage is a page of click records, newest first
type ClicksPage struct {
	Clicks     []entities.Click `json:"clicks"`
	Pagination Pagination       `json:"pagination"`
}
