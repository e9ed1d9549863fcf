package models

import "time"

// Meta carries the identity and audit timestamps shared by every record.
type Meta struct {
	ID        string    `json:"id" bson:"_id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" yaml:"updated_at"`
}

// RecordID returns the record identifier.
func (m Meta) RecordID() string {
	return m.ID
}

// CreatedTime returns the creation timestamp.
func (m Meta) CreatedTime() time.Time {
	return m.CreatedAt
}

func (m Meta) stamped(created, updated time.Time) Meta {
	m.CreatedAt = created
	m.UpdatedAt = updated
	return m
}

// Ref is an optional pointer to another record. The target may no longer
// exist; consumers render the stored name or a placeholder.
type Ref struct {
	ID   string `json:"id" bson:"id" yaml:"id"`
	Name string `json:"name" bson:"name" yaml:"name"`
}

// DisplayName returns the referenced name or the placeholder for unresolved references.
func (r *Ref) DisplayName(placeholder string) string {
	if r == nil || r.Name == "" {
		return placeholder
	}
	return r.Name
}
