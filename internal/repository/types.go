package repository

import "time"

// OrderListFilter narrows order list queries.
type OrderListFilter struct {
	Page          int
	PageSize      int
	CreatedBy     uint
	ClientID      uint
	Status        string
	Statuses      []string
	Warehouse     string
	Priority      string
	ProductType   string
	Search        string
	NoDriver      bool
	NoProforma    bool
	OrderDateFrom *time.Time
	OrderDateTo   *time.Time
}

// NoteListFilter narrows order note queries.
type NoteListFilter struct {
	OrderRef uint
	NoteType string
}

// UserListFilter narrows user list queries.
type UserListFilter struct {
	Page       int
	PageSize   int
	Keyword    string
	Department string
	Status     string
}

// ReferenceListFilter narrows client, driver, truck and transport company
// list queries.
type ReferenceListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}
