package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ContentBlock is a single block of a blog body (paragraph, image, quote...).
// The block payload is kept opaque; the backend never renders it.
type ContentBlock struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// BlogContent is the structured block sequence stored as jsonb.
type BlogContent struct {
	Blocks []ContentBlock `json:"blocks"`
}

// Value implements driver.Valuer, serializing the content to jsonb.
func (c BlogContent) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner.
func (c *BlogContent) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*c = BlogContent{}
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("cannot scan %T into BlogContent", value)
	}
}

// TagList is a blog's tag set, stored as a jsonb array of lowercase strings.
type TagList []string

// Value implements driver.Valuer.
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		t = TagList{}
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner.
func (t *TagList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*t = nil
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("cannot scan %T into TagList", value)
	}
}

// Blog represents a published blog or a draft.
//
// BlogID is the human-readable slug derived from the title at creation; it
// is unique and immutable. TotalReads is incremented atomically on every
// read event; the row is otherwise never updated by this subsystem.
type Blog struct {
	ID          uint        `gorm:"primaryKey" json:"-"`
	BlogID      string      `gorm:"uniqueIndex;not null" json:"blog_id"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `gorm:"size:200" json:"desc"`
	Banner      string      `json:"banner"`
	Tags        TagList     `gorm:"type:jsonb" json:"tags"`
	Content     BlogContent `gorm:"type:jsonb" json:"content"`
	Draft       bool        `gorm:"not null;default:false;index" json:"draft"`
	TotalReads  int64       `gorm:"not null;default:0" json:"total_reads"`
	TotalLikes  int64       `gorm:"not null;default:0" json:"total_likes"`
	AuthorID    uint        `gorm:"not null;index" json:"-"`
	Author      User        `gorm:"foreignKey:AuthorID" json:"author"`
	PublishedAt time.Time   `json:"publishedAt"`
	CreatedAt   time.Time   `json:"-"`
	UpdatedAt   time.Time   `json:"-"`
}
