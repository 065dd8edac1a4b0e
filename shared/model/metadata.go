package model

import "time"

type Metadata struct {
	CreatedAt  time.Time `db:"created_at"  json:"createdAt"`
	ModifiedAt time.Time `db:"modified_at" json:"modifiedAt"`
	CreatedBy  string    `db:"created_by"  json:"createdBy"`
	ModifiedBy string    `db:"modified_by" json:"modifiedBy"`
}
