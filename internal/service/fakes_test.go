package service

import (
	"context"
	"sort"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/forkpoint/forkpoint-service/internal/errs"
	"github.com/forkpoint/forkpoint-service/internal/model"
)

// Hand-written fakes for the consumer-side store interfaces. They keep
// just enough state to observe what the services did.

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

type fakeUserStore struct {
	users      map[int64]model.User
	passwords  map[string]string
	nextID     int64
	addErr     error
	updateErr  error
	deleteErr  error
	deletedIDs []int64
	listCalls  int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:     map[int64]model.User{},
		passwords: map[string]string{},
		nextID:    1,
	}
}

func (f *fakeUserStore) Add(ctx context.Context, name, email, password string, roles []model.RoleAssignment) (model.User, error) {
	if f.addErr != nil {
		return model.User{}, f.addErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return model.User{}, errs.Conflict("a user with this email already exists")
		}
	}
	user := model.User{ID: f.nextID, Name: name, Email: email, Roles: roles}
	f.users[user.ID] = user
	f.passwords[email] = password
	f.nextID++
	return user, nil
}

func (f *fakeUserStore) GetByCredentials(ctx context.Context, email, password string) (model.User, error) {
	stored, ok := f.passwords[email]
	if !ok || stored != password {
		return model.User{}, errs.Auth("invalid email or password")
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, errs.Auth("invalid email or password")
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return model.User{}, errs.NotFound("user not found")
	}
	return user, nil
}

func (f *fakeUserStore) List(ctx context.Context, page, perPage int, name string) ([]model.User, bool, error) {
	f.listCalls++
	result := []model.User{}
	for _, u := range f.users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, false, nil
}

func (f *fakeUserStore) Update(ctx context.Context, id int64, name, email, password string) (model.User, error) {
	if f.updateErr != nil {
		return model.User{}, f.updateErr
	}
	user, ok := f.users[id]
	if !ok {
		return model.User{}, errs.NotFound("user not found")
	}
	if name != "" {
		user.Name = name
	}
	if email != "" {
		delete(f.passwords, user.Email)
		f.passwords[email] = password
		user.Email = email
	}
	f.users[id] = user
	return user, nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.users[id]; !ok {
		return errs.NotFound("user not found")
	}
	delete(f.users, id)
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

type fakeTokenStore struct {
	tokens    map[string]int64
	insertErr error
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]int64{}}
}

func (f *fakeTokenStore) InsertToken(ctx context.Context, signature string, userID int64) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.tokens[signature] = userID
	return nil
}

func (f *fakeTokenStore) DeleteToken(ctx context.Context, signature string) error {
	delete(f.tokens, signature)
	return nil
}

func (f *fakeTokenStore) TokenExists(ctx context.Context, signature string) (bool, error) {
	_, ok := f.tokens[signature]
	return ok, nil
}

type fakeEnqueuer struct {
	tasks      []*asynq.Task
	enqueueErr error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.enqueueErr != nil {
		return nil, f.enqueueErr
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

type fakeOrderStore struct {
	orders    []model.Order
	nextID    int64
	createErr error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{nextID: 1}
}

func (f *fakeOrderStore) Create(ctx context.Context, dinerID, franchiseID, storeID int64, lines []model.OrderLine) (model.Order, error) {
	if f.createErr != nil {
		return model.Order{}, f.createErr
	}
	order := model.Order{
		ID:          f.nextID,
		DinerID:     dinerID,
		FranchiseID: franchiseID,
		StoreID:     storeID,
	}
	for i, line := range lines {
		order.Items = append(order.Items, model.OrderItem{
			ID:          int64(i + 1),
			MenuID:      int64(i + 1),
			Description: line.Description,
			Price:       line.Price,
		})
	}
	f.orders = append(f.orders, order)
	f.nextID++
	return order, nil
}

func (f *fakeOrderStore) ListForDiner(ctx context.Context, dinerID int64, page, perPage int) ([]model.Order, error) {
	result := []model.Order{}
	for _, o := range f.orders {
		if o.DinerID == dinerID {
			result = append(result, o)
		}
	}
	return result, nil
}

type fakeMenuStore struct {
	items  []model.MenuItem
	nextID int64
	addErr error
}

func newFakeMenuStore() *fakeMenuStore {
	return &fakeMenuStore{nextID: 1}
}

func (f *fakeMenuStore) List(ctx context.Context) ([]model.MenuItem, error) {
	return f.items, nil
}

func (f *fakeMenuStore) Add(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	if f.addErr != nil {
		return model.MenuItem{}, f.addErr
	}
	item.ID = f.nextID
	f.nextID++
	f.items = append(f.items, item)
	return item, nil
}

type fakeFranchiseStore struct {
	franchises        map[int64]model.Franchise
	nextID            int64
	listIncludeAdmins bool
	listCalls         int
	listForUserCalls  int
}

func newFakeFranchiseStore() *fakeFranchiseStore {
	return &fakeFranchiseStore{
		franchises: map[int64]model.Franchise{},
		nextID:     1,
	}
}

func (f *fakeFranchiseStore) List(ctx context.Context, page, perPage int, name string, includeAdmins bool) ([]model.Franchise, bool, error) {
	f.listCalls++
	f.listIncludeAdmins = includeAdmins
	result := []model.Franchise{}
	for _, fr := range f.franchises {
		result = append(result, fr)
	}
	return result, false, nil
}

func (f *fakeFranchiseStore) ListForUser(ctx context.Context, userID int64) ([]model.Franchise, error) {
	f.listForUserCalls++
	return []model.Franchise{}, nil
}

func (f *fakeFranchiseStore) GetByID(ctx context.Context, id int64) (model.Franchise, error) {
	fr, ok := f.franchises[id]
	if !ok {
		return model.Franchise{}, errs.NotFound("franchise not found")
	}
	return fr, nil
}

func (f *fakeFranchiseStore) Create(ctx context.Context, name string, adminEmails []string) (model.Franchise, error) {
	fr := model.Franchise{ID: f.nextID, Name: name, Stores: []model.Store{}}
	f.franchises[fr.ID] = fr
	f.nextID++
	return fr, nil
}

func (f *fakeFranchiseStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.franchises[id]; !ok {
		return errs.NotFound("franchise not found")
	}
	delete(f.franchises, id)
	return nil
}

func (f *fakeFranchiseStore) CreateStore(ctx context.Context, franchiseID int64, name string) (model.Store, error) {
	fr, ok := f.franchises[franchiseID]
	if !ok {
		return model.Store{}, errs.NotFound("the referenced franchise does not exist")
	}
	store := model.Store{ID: int64(len(fr.Stores) + 1), FranchiseID: franchiseID, Name: name}
	fr.Stores = append(fr.Stores, store)
	f.franchises[franchiseID] = fr
	return store, nil
}

func (f *fakeFranchiseStore) DeleteStore(ctx context.Context, franchiseID, storeID int64) error {
	fr, ok := f.franchises[franchiseID]
	if !ok {
		return nil
	}
	stores := fr.Stores[:0]
	for _, s := range fr.Stores {
		if s.ID != storeID {
			stores = append(stores, s)
		}
	}
	fr.Stores = stores
	f.franchises[franchiseID] = fr
	return nil
}
