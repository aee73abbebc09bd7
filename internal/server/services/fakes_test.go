package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"linkboard/internal/common"
	"linkboard/internal/dbx"
	"linkboard/internal/server/models"
	"linkboard/internal/server/repositories/links"
	"linkboard/internal/server/repositories/users"
)

// ---- fakes ----

type fakeManager struct {
	users users.Repository
	links links.Repository
}

func (f *fakeManager) Users(dbx.DBTX) users.Repository { return f.users }
func (f *fakeManager) Links(dbx.DBTX) links.Repository { return f.links }
func (f *fakeManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

// fakeUserRepo stores copies so the services can blank credential material
// on returned values without corrupting the "database".
type fakeUserRepo struct {
	byEmail map[string]models.User
	byID    map[string]models.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]models.User{}, byID: map[string]models.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return nil, common.ErrDuplicateIdentity
	}

	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	user.CreatedAt = time.Now()

	f.byEmail[user.Email] = *user
	f.byID[user.ID] = *user
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	u.PasswordHash = ""
	return &u, nil
}

type fakeLinkRepo struct {
	byID     map[int64]models.Link
	voterIDs map[int64][]string
	nextID   int64

	listResp  []*models.Link
	countResp int
	listErr   error
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{byID: map[int64]models.Link{}, voterIDs: map[int64][]string{}}
}

func (f *fakeLinkRepo) Create(ctx context.Context, link *models.Link) (*models.Link, error) {
	f.nextID++
	link.ID = f.nextID
	link.CreatedAt = time.Now()
	f.byID[link.ID] = *link
	return link, nil
}

func (f *fakeLinkRepo) GetByID(ctx context.Context, id int64) (*models.Link, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &l, nil
}

func (f *fakeLinkRepo) List(ctx context.Context, q models.FeedQuery) ([]*models.Link, error) {
	return f.listResp, f.listErr
}

func (f *fakeLinkRepo) Count(ctx context.Context, filter *string) (int, error) {
	return f.countResp, nil
}

func (f *fakeLinkRepo) Update(ctx context.Context, id int64, description, url models.OptionalString) (*models.Link, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if v, write := description.Get(); write {
		l.Description = v
	}
	if v, write := url.Get(); write {
		l.URL = v
	}
	f.byID[id] = l
	return &l, nil
}

func (f *fakeLinkRepo) Delete(ctx context.Context, id int64) (*models.Link, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	delete(f.byID, id)
	return &l, nil
}

func (f *fakeLinkRepo) AddVote(ctx context.Context, userID string, linkID int64) error {
	if _, ok := f.byID[linkID]; !ok {
		return common.ErrNotFound
	}
	for _, id := range f.voterIDs[linkID] {
		if id == userID {
			return nil
		}
	}
	f.voterIDs[linkID] = append(f.voterIDs[linkID], userID)
	return nil
}

func (f *fakeLinkRepo) Voters(ctx context.Context, linkID int64) ([]*models.User, error) {
	var result []*models.User
	for _, id := range f.voterIDs[linkID] {
		result = append(result, &models.User{ID: id})
	}
	return result, nil
}

func (f *fakeLinkRepo) OwnedBy(ctx context.Context, userID string) ([]*models.Link, error) {
	var result []*models.Link
	for _, l := range f.byID {
		if l.PostedBy == userID {
			l := l
			result = append(result, &l)
		}
	}
	return result, nil
}
