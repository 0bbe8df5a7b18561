package models

// Campus is immutable reference data every account and student belongs to.
type Campus struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	City string `db:"city" json:"city"`
}
