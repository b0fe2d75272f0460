package model

import "time"

// RulesetEntry is a serialized ruleset kept in the catalog under its language name.
type RulesetEntry struct {
	Language 	string		`json:"language"`
	Fingerprint uint64		`json:"fingerprint"`
	Size 		int			`json:"size"`
	Rules 		int			`json:"rules"`
	ImportedAt 	time.Time	`json:"imported_at"`
	Data 		[]byte		`json:"data,omitempty"`
}
