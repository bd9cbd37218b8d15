// Package models defines data structures and domain types.
package models

import "strings"

// Domain is a tenant/account unit within the upstream platform (not a DNS
// domain). It is a read-only projection of upstream data; the upstream
// encodes feature flags as "yes"/"no" strings.
type Domain struct {
	Name                   string `json:"domain"`
	Reseller               string `json:"reseller"`
	DomainType             string `json:"domain-type"`
	StirEnabled            string `json:"is-stir-enabled"`
	MusicOnHold            string `json:"music-on-hold-enabled"`
	VoicemailTranscription string `json:"voicemail-transcription"`
}

// IsCallCenter reports whether the domain is a call-center capable type.
func (d Domain) IsCallCenter() bool {
	return d.DomainType == "Standard"
}

// HasStir reports whether STIR/SHAKEN is enabled for the domain.
func (d Domain) HasStir() bool {
	return strings.EqualFold(d.StirEnabled, "yes")
}

// HasMusicOnHold reports whether music on hold is enabled.
func (d Domain) HasMusicOnHold() bool {
	return strings.EqualFold(d.MusicOnHold, "yes")
}
