package model

import "time"

type Network struct {
	ID        int64
	Name      string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
