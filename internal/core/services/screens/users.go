package screens

import (
	"context"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/estaraht/admin-dashboard/internal/core/services/listview"
)

type UserRow struct {
	domain.AdminUser
	CanDelete bool `json:"deletable"`
}

type UserStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

type UsersScreen struct {
	*listScreen[domain.AdminUser, domain.AdminUser]
}

func (f *Factory) Users() *UsersScreen {
	repo := f.backend.Users()
	return &UsersScreen{newListScreen(f, repo, listview.Options[domain.AdminUser]{
		Name:       "users",
		Fetch:      repo.List,
		Searchable: domain.AdminUser.SearchText,
	}, "Are you sure you want to delete this user?")}
}

func (s *UsersScreen) View(ctx context.Context, q listview.Query) (*ListView[UserRow, UserStats], error) {
	users, info, err := s.apply(ctx, q)
	if err != nil {
		return nil, err
	}

	rows := make([]UserRow, len(users))
	for i, u := range users {
		rows[i] = UserRow{AdminUser: u, CanDelete: u.Deletable()}
	}

	var stats UserStats
	for _, u := range s.list.Items() {
		stats.Total++
		if u.IsActive() {
			stats.Active++
		} else {
			stats.Inactive++
		}
	}
	return viewOf(s.listScreen, rows, info, stats), nil
}

func (s *UsersScreen) Create(ctx context.Context, draft domain.UserDraft) error {
	return s.create(ctx, "create user", draft.Payload())
}

// Delete refuses admin-role accounts before asking for confirmation.
func (s *UsersScreen) Delete(ctx context.Context, id string, confirm out.ConfirmPort) error {
	user, err := findBy(s.list, domain.AdminUser.ID, id)
	if err != nil {
		return err
	}
	if !user.Deletable() {
		return domain.ErrNotDeletable
	}
	return s.delete(ctx, id, confirm)
}
