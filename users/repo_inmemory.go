package users

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var _ UserRepo = (*InMemoryUserRepo)(nil)

// InMemoryUserRepo keeps registered users in process memory. It stands in
// for a real identity store, which this gateway deliberately does not have.
type InMemoryUserRepo struct {
	users    map[string]*User
	emailIds map[string]string // email to user id
	lock     sync.RWMutex
}

func NewInMemoryUserRepo() *InMemoryUserRepo {
	return &InMemoryUserRepo{
		users:    make(map[string]*User),
		emailIds: make(map[string]string),
	}
}

func (ur *InMemoryUserRepo) Upsert(user *User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	ur.users[user.ID] = user
	ur.emailIds[user.Email] = user.ID
	return nil
}

func (ur *InMemoryUserRepo) Delete(email string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	userID, ok := ur.emailIds[email]
	if !ok {
		return errors.New("not found")
	}
	delete(ur.emailIds, email)
	delete(ur.users, userID)
	return nil
}

func (ur *InMemoryUserRepo) GetByEmail(email string) (*User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	if _, ok := ur.emailIds[email]; !ok {
		return nil, errors.New("not found")
	}
	return ur.users[ur.emailIds[email]], nil
}

func (ur *InMemoryUserRepo) GetByID(id string) (*User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	if _, ok := ur.users[id]; !ok {
		return nil, errors.New("not found")
	}
	return ur.users[id], nil
}
