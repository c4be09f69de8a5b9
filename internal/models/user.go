// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered author account.
//
// TotalPosts and TotalReads are denormalized counters maintained by the
// publishing and read paths. They are updated outside the transaction that
// writes the blog row, so they may lag the blogs table; `cmd/reconcile`
// recomputes them from the blogs table on demand.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	Fullname   string    `gorm:"not null" json:"fullname"`
	Email      string    `gorm:"uniqueIndex;not null" json:"-"`
	Username   string    `gorm:"uniqueIndex;not null" json:"username"`
	Password   string    `json:"-"` // bcrypt hash; empty for Google accounts
	ProfileImg string    `json:"profile_img"`
	GoogleAuth bool      `gorm:"not null;default:false" json:"-"`
	TotalPosts int64     `gorm:"not null;default:0" json:"total_posts"`
	TotalReads int64     `gorm:"not null;default:0" json:"total_reads"`
	Blogs      []Blog    `gorm:"foreignKey:AuthorID" json:"-"`
	CreatedAt  time.Time `json:"joinedAt"`
	UpdatedAt  time.Time `json:"-"`
}

// PublicAuthor is the author projection embedded in blog responses.
type PublicAuthor struct {
	Fullname   string `json:"fullname"`
	Username   string `json:"username"`
	ProfileImg string `json:"profile_img"`
}

// Public returns the author fields safe to embed in blog payloads.
func (u *User) Public() PublicAuthor {
	return PublicAuthor{
		Fullname:   u.Fullname,
		Username:   u.Username,
		ProfileImg: u.ProfileImg,
	}
}
