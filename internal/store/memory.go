package store

import (
	"sort"
	"sync"
	"time"

	"github.com/voicelab/voiceplatform/internal/apperr"
)

// MemoryItems is the in-memory ItemRepository with incrementing IDs.
type MemoryItems struct {
	mu     sync.RWMutex
	items  map[int]Item
	nextID int
}

func NewMemoryItems() *MemoryItems {
	return &MemoryItems{items: make(map[int]Item), nextID: 1}
}

func (m *MemoryItems) Create(item Item) Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	item.ID = m.nextID
	item.CreatedAt = time.Now()
	m.nextID++
	m.items[item.ID] = item
	return item
}

func (m *MemoryItems) Get(id int) (Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		return Item{}, apperr.NotFound("item %d not found", id)
	}
	return item, nil
}

func (m *MemoryItems) List() []Item {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Item, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *MemoryItems) Update(id int, item Item) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.items[id]
	if !ok {
		return Item{}, apperr.NotFound("item %d not found", id)
	}
	item.ID = id
	item.CreatedAt = existing.CreatedAt
	m.items[id] = item
	return item, nil
}

func (m *MemoryItems) Delete(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return apperr.NotFound("item %d not found", id)
	}
	delete(m.items, id)
	return nil
}

// MemoryUsers is the in-memory UserRepository. Usernames and emails are
// unique across live users.
type MemoryUsers struct {
	mu     sync.RWMutex
	users  map[int]User
	nextID int
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[int]User), nextID: 1}
}

func (m *MemoryUsers) Create(user User) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == user.Username {
			return User{}, apperr.Validation("username %q is already taken", user.Username)
		}
		if existing.Email == user.Email {
			return User{}, apperr.Validation("email %q is already registered", user.Email)
		}
	}

	user.ID = m.nextID
	user.IsActive = true
	user.CreatedAt = time.Now()
	m.nextID++
	m.users[user.ID] = user
	return user, nil
}

func (m *MemoryUsers) Get(id int) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return User{}, apperr.NotFound("user %d not found", id)
	}
	return user, nil
}

func (m *MemoryUsers) List() []User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]User, 0, len(m.users))
	for _, user := range m.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *MemoryUsers) Delete(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return apperr.NotFound("user %d not found", id)
	}
	delete(m.users, id)
	return nil
}
