package models

import (
	"fmt"
	"strings"
	"time"
)

// Review lives embedded in its facility document; reviews are appended and
// never updated or deleted individually.
type Review struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"userId" json:"userId" validate:"required"`
	Rating    int       `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `bson:"comment" json:"comment"`
	Verified  bool      `bson:"verified" json:"verified"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

func (r Review) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("userId is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}
