// Package store holds the demo item/user repositories. State is
// process-lifetime only; repositories are injected so handlers never touch
// module-level storage directly.
package store

import "time"

type Item struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Tax         *float64  `json:"tax,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemRepository is the storage contract for demo items.
type ItemRepository interface {
	Create(item Item) Item
	Get(id int) (Item, error)
	List() []Item
	Update(id int, item Item) (Item, error)
	Delete(id int) error
}

// UserRepository is the storage contract for demo users.
type UserRepository interface {
	Create(user User) (User, error)
	Get(id int) (User, error)
	List() []User
	Delete(id int) error
}
