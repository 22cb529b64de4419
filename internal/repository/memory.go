package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"confusion/internal/model"
)

// The in-memory repositories back DB_DRIVER=memory and the router tests.
// They follow the GORM contracts: gorm.ErrRecordNotFound on a miss and
// gorm.ErrDuplicatedKey on a unique-key collision. Values are copied on the
// way in and out so callers never share state with the store.

// MemoryUserRepository is an in-memory UserRepository.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]model.User
}

// NewMemoryUserRepository creates an empty in-memory user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uuid.UUID]model.User)}
}

var _ UserRepository = (*MemoryUserRepository)(nil)

func (r *MemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if id != user.ID && u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

// MemoryCatalogRepository is an in-memory CatalogRepository for any menu entity.
type MemoryCatalogRepository[T any, PT model.Entity[T]] struct {
	mu    sync.RWMutex
	items []T
	clone func(T) T
	stamp func(PT, time.Time, bool)
}

// NewMemoryCatalogRepository creates an empty in-memory store. clone deep-copies
// an item; stamp sets the id and timestamps (created reports an insert).
func NewMemoryCatalogRepository[T any, PT model.Entity[T]](clone func(T) T, stamp func(PT, time.Time, bool)) *MemoryCatalogRepository[T, PT] {
	return &MemoryCatalogRepository[T, PT]{clone: clone, stamp: stamp}
}

func (r *MemoryCatalogRepository[T, PT]) indexOf(id uuid.UUID) int {
	for i := range r.items {
		if PT(&r.items[i]).GetID() == id {
			return i
		}
	}
	return -1
}

func (r *MemoryCatalogRepository[T, PT]) nameTaken(name string, except uuid.UUID) bool {
	for i := range r.items {
		p := PT(&r.items[i])
		if p.GetName() == name && p.GetID() != except {
			return true
		}
	}
	return false
}

func (r *MemoryCatalogRepository[T, PT]) List(ctx context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, r.clone(item))
	}
	return out, nil
}

func (r *MemoryCatalogRepository[T, PT]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, gorm.ErrRecordNotFound
	}
	item := r.clone(r.items[i])
	return &item, nil
}

// FindByIDs returns the stored items among ids.
func (r *MemoryCatalogRepository[T, PT]) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if i := r.indexOf(id); i >= 0 {
			out = append(out, r.clone(r.items[i]))
		}
	}
	return out, nil
}

func (r *MemoryCatalogRepository[T, PT]) FindByName(ctx context.Context, name string) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.items {
		if PT(&r.items[i]).GetName() == name {
			item := r.clone(r.items[i])
			return &item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *MemoryCatalogRepository[T, PT]) Create(ctx context.Context, item *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := PT(item)
	if r.nameTaken(p.GetName(), uuid.Nil) {
		return gorm.ErrDuplicatedKey
	}
	r.stamp(p, time.Now(), true)
	r.items = append(r.items, r.clone(*item))
	return nil
}

func (r *MemoryCatalogRepository[T, PT]) Update(ctx context.Context, item *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := PT(item)
	i := r.indexOf(p.GetID())
	if i < 0 {
		return gorm.ErrRecordNotFound
	}
	if r.nameTaken(p.GetName(), p.GetID()) {
		return gorm.ErrDuplicatedKey
	}
	r.stamp(p, time.Now(), false)
	r.items[i] = r.clone(*item)
	return nil
}

func (r *MemoryCatalogRepository[T, PT]) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.items))
	r.items = nil
	return n, nil
}

func (r *MemoryCatalogRepository[T, PT]) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return 0, nil
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return 1, nil
}

// NewMemoryDishRepository creates an in-memory DishRepository.
func NewMemoryDishRepository() DishRepository {
	return NewMemoryCatalogRepository[model.Dish](cloneDish, func(d *model.Dish, now time.Time, created bool) {
		if created {
			if d.ID == uuid.Nil {
				d.ID = uuid.New()
			}
			d.CreatedAt = now
		}
		d.UpdatedAt = now
		for i := range d.Comments {
			c := &d.Comments[i]
			if c.ID == uuid.Nil {
				c.ID = uuid.New()
			}
			c.DishID = d.ID
			c.Seq = i
			if c.CreatedAt.IsZero() {
				c.CreatedAt = now
			}
			if c.UpdatedAt.IsZero() {
				c.UpdatedAt = now
			}
		}
	})
}

// NewMemoryPromotionRepository creates an in-memory promotion store.
func NewMemoryPromotionRepository() CatalogRepository[model.Promotion] {
	return NewMemoryCatalogRepository[model.Promotion](identity[model.Promotion], func(p *model.Promotion, now time.Time, created bool) {
		if created {
			if p.ID == uuid.Nil {
				p.ID = uuid.New()
			}
			p.CreatedAt = now
		}
		p.UpdatedAt = now
	})
}

// NewMemoryLeaderRepository creates an in-memory leader store.
func NewMemoryLeaderRepository() CatalogRepository[model.Leader] {
	return NewMemoryCatalogRepository[model.Leader](identity[model.Leader], func(l *model.Leader, now time.Time, created bool) {
		if created {
			if l.ID == uuid.Nil {
				l.ID = uuid.New()
			}
			l.CreatedAt = now
		}
		l.UpdatedAt = now
	})
}

func identity[T any](v T) T { return v }

func cloneDish(d model.Dish) model.Dish {
	if d.Comments != nil {
		d.Comments = append([]model.Comment(nil), d.Comments...)
	}
	return d
}

// MemoryFavoritesRepository is an in-memory FavoritesRepository.
type MemoryFavoritesRepository struct {
	mu        sync.RWMutex
	favorites map[uuid.UUID]model.Favorites // keyed by user id
}

// NewMemoryFavoritesRepository creates an empty in-memory favorites store.
func NewMemoryFavoritesRepository() *MemoryFavoritesRepository {
	return &MemoryFavoritesRepository{favorites: make(map[uuid.UUID]model.Favorites)}
}

var _ FavoritesRepository = (*MemoryFavoritesRepository)(nil)

func cloneFavorites(f model.Favorites) model.Favorites {
	f.Dishes = append([]model.FavoriteDish(nil), f.Dishes...)
	f.DishDetails = nil
	return f
}

func (r *MemoryFavoritesRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*model.Favorites, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.favorites[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	f = cloneFavorites(f)
	return &f, nil
}

func (r *MemoryFavoritesRepository) Create(ctx context.Context, favorites *model.Favorites) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.favorites[favorites.UserID]; ok {
		return gorm.ErrDuplicatedKey
	}
	if favorites.ID == uuid.Nil {
		favorites.ID = uuid.New()
	}
	now := time.Now()
	favorites.CreatedAt, favorites.UpdatedAt = now, now
	stampFavoriteDishes(favorites, now)
	r.favorites[favorites.UserID] = cloneFavorites(*favorites)
	return nil
}

func (r *MemoryFavoritesRepository) Update(ctx context.Context, favorites *model.Favorites) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.favorites[favorites.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	favorites.UpdatedAt = now
	stampFavoriteDishes(favorites, now)
	r.favorites[favorites.UserID] = cloneFavorites(*favorites)
	return nil
}

func (r *MemoryFavoritesRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.favorites[userID]; !ok {
		return 0, nil
	}
	delete(r.favorites, userID)
	return 1, nil
}

func stampFavoriteDishes(f *model.Favorites, now time.Time) {
	for i := range f.Dishes {
		f.Dishes[i].FavoritesID = f.ID
		f.Dishes[i].Seq = i
		if f.Dishes[i].CreatedAt.IsZero() {
			f.Dishes[i].CreatedAt = now
		}
	}
}
