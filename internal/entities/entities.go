package entities

import "time"

// MaxReactions is the maximum number of reaction codes a review may carry.
const MaxReactions = 3

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:100" json:"username"`
	Key       string    `gorm:"size:64" json:"-"`  // hex-encoded PBKDF2 derived key
	Salt      []byte    `gorm:"size:32" json:"-"`  // per-user random salt, immutable
	CreatedAt time.Time `json:"created_at"`
}

type Book struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Title  string `gorm:"index;size:512" json:"title"`
	Author string `gorm:"index;size:256" json:"author"`
	ISBN   string `gorm:"uniqueIndex;size:20" json:"isbn"`
	Year   int    `json:"year"`

	Reviews []Review `gorm:"foreignKey:BookID" json:"reviews,omitempty"`
}

// Review holds a single user's review of a book. The composite unique index
// on (user_id, book_id) enforces at most one review per user per book even
// under concurrent submission.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_review_user_book" json:"user_id"`
	BookID    uint      `gorm:"uniqueIndex:idx_review_user_book" json:"book_id"`
	Comment   string    `gorm:"type:text" json:"comment"`
	Rating    int       `json:"rating"`
	Reaction  string    `gorm:"size:30" json:"reaction,omitempty"` // concatenated reaction codes
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Book Book `gorm:"foreignKey:BookID" json:"-"`
}
