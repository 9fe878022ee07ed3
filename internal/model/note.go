package model

import "time"

type Note struct {
	ID        int64
	Title     string
	Content   string
	NetworkID int64
	ParentID  *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
