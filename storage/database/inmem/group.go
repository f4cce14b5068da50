package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/upperenglish/backend/core/group"
)

type groupRepository struct {
	db *DB
}

var _ group.Repository = (*groupRepository)(nil)

func NewGroupRepository(db *DB) *groupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) CheckGroupNameExists(_ context.Context, name string) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, grp := range r.db.groups {
		if grp.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *groupRepository) CreateGroup(_ context.Context, grp group.Group) (group.Group, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	grp.ID = uuid.New().String()
	r.db.groups[grp.ID] = grp
	return grp, nil
}

func (r *groupRepository) QueryAllGroups(_ context.Context) ([]group.Group, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	groups := make([]group.Group, 0, len(r.db.groups))
	for _, grp := range r.db.groups {
		groups = append(groups, grp)
	}
	return groups, nil
}

func (r *groupRepository) UpdateGroupName(_ context.Context, id, name string) (group.Group, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	grp, ok := r.db.groups[id]
	if !ok {
		return group.Group{}, group.ErrNotFound
	}
	grp.Name = name
	r.db.groups[id] = grp
	return grp, nil
}

func (r *groupRepository) DeleteGroup(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.groups[id]; !ok {
		return group.ErrNotFound
	}
	delete(r.db.groups, id)
	return nil
}
