package domain

import "time"

// Feature describes one capability line of a tool.
// Datasets may provide features as plain strings; the catalog mapper
// normalizes those into a Feature with an empty description.
type Feature struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Tool represents one catalog entry.
//
// The catalog is loaded once from the bundled dataset and is immutable for
// the life of the process. Anything user-generated (reviews, submissions)
// lives in the store collections, never here.
type Tool struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier within the dataset.
	ID int `yaml:"id" json:"id"`

	// Name is the display name. Example: "Midjourney"
	Name string `yaml:"name" json:"name"`

	// ─────────────────────────────
	// Classification
	// ─────────────────────────────

	// Category is one of the fixed set present in the dataset.
	// Example: "Image Generation"
	Category string `yaml:"category" json:"category"`

	// Pricing is a free-text tier label, curated by hand.
	// Example: "Free", "Paid plans from $10/mo", "Free / Paid"
	Pricing string `yaml:"pricing" json:"pricing"`

	// ─────────────────────────────
	// Presentation
	// ─────────────────────────────

	Description string    `yaml:"description" json:"description"`
	Image       string    `yaml:"image,omitempty" json:"image,omitempty"`
	Features    []Feature `yaml:"features,omitempty" json:"features,omitempty"`
	Link        string    `yaml:"link" json:"link"`

	// ─────────────────────────────
	// Ranking inputs
	// ─────────────────────────────

	// DateAdded orders the "newest" sort.
	DateAdded time.Time `yaml:"dateAdded" json:"dateAdded"`

	// Popularity is an integer score in [0,100].
	Popularity int `yaml:"popularity" json:"popularity"`
}
