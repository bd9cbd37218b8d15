// Package models defines data structures and domain types.
package models

// Reseller is a partner organization owning a set of domains. It is an
// immutable snapshot of the upstream record; nothing mutates it locally.
type Reseller struct {
	ID           string `json:"id"`
	Name         string `json:"reseller"`
	Description  string `json:"description"`
	TotalDomains int    `json:"domains-total"`
}
