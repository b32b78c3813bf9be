package admin

import (
	"context"

	"github.com/hanawi96/testiq-sub004/listdata"
	"github.com/hanawi96/testiq-sub004/remote"
)

// UserList is the service behind the user management screen.
type UserList struct {
	*List[User]

	rolePending   *listdata.LoadingSet
	statusPending *listdata.LoadingSet
}

// NewUserList builds the users service over the given provider.
func NewUserList(provider remote.ListProvider[User], opts Options) (*UserList, error) {
	base, err := NewList("users", provider, func(u User) string { return u.ID }, opts)
	if err != nil {
		return nil, err
	}
	return &UserList{
		List:          base,
		rolePending:   listdata.NewLoadingSet(),
		statusPending: listdata.NewLoadingSet(),
	}, nil
}

// SetRole changes a user's role. The per-role counters above the list
// refresh once the backend confirms.
func (l *UserList) SetRole(ctx context.Context, id, role string) error {
	return l.do(ctx, listdata.Update[User]{
		EntityID: id,
		Field:    "role",
		Loading:  l.rolePending,
		Apply: func(u User) User {
			u.Role = role
			return u
		},
		Revert: func(cur, prev User) User {
			cur.Role = prev.Role
			return cur
		},
		Call: func(ctx context.Context) (*User, error) {
			return l.core.provider.MutateField(ctx, id, "role", role)
		},
		AfterSuccess: l.refreshStats,
	})
}

// SetStatus suspends or reactivates a user account.
func (l *UserList) SetStatus(ctx context.Context, id, status string) error {
	return l.do(ctx, listdata.Update[User]{
		EntityID: id,
		Field:    "status",
		Loading:  l.statusPending,
		Apply: func(u User) User {
			u.Status = status
			return u
		},
		Revert: func(cur, prev User) User {
			cur.Status = prev.Status
			return cur
		},
		Call: func(ctx context.Context) (*User, error) {
			return l.core.provider.MutateField(ctx, id, "status", status)
		},
		AfterSuccess: l.refreshStats,
	})
}

// FilterRole narrows the list to one role.
func (l *UserList) FilterRole(ctx context.Context, role string) error {
	return l.SetFilter(ctx, "role", role)
}

// FilterStatus narrows the list to one account state.
func (l *UserList) FilterStatus(ctx context.Context, status string) error {
	return l.SetFilter(ctx, "status", status)
}

// FilterCountry narrows the list to one country code.
func (l *UserList) FilterCountry(ctx context.Context, code string) error {
	return l.SetFilter(ctx, "country_code", code)
}

// IsRolePending reports whether a role change for the user is in flight.
func (l *UserList) IsRolePending(id string) bool {
	return l.rolePending.Contains(id)
}

// IsStatusPending reports whether an account state change for the user is
// in flight.
func (l *UserList) IsStatusPending(id string) bool {
	return l.statusPending.Contains(id)
}
