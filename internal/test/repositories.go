package test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
	"github.com/polkiloo/sushibar/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[user.Login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user.ID = s.Next
	s.Next++
	stored := user
	s.Users[user.Login] = &stored
	s.ByID[user.ID] = &stored
	return &stored, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderUpdateCall stores information about UpdateStatus invocations.
type OrderUpdateCall struct {
	OrderID int64
	Status  model.OrderStatus
	Reason  *string
}

// OrderRepositoryStub keeps orders in memory; Fn fields override behaviour.
type OrderRepositoryStub struct {
	CreateBatchFn func(context.Context, []model.Order) ([]int64, error)
	ListFn        func(context.Context, model.OrderFilter) ([]model.Order, error)
	StatsFn       func(context.Context, model.OrderFilter) (model.OrderStats, error)
	CountFn       func(context.Context, []model.OrderStatus) (int64, error)
	UpdateErr     error

	mu          sync.Mutex
	Orders      map[int64]*model.Order
	Next        int64
	Batches     [][]model.Order
	Filters     []model.OrderFilter
	UpdateCalls []OrderUpdateCall
	Deleted     []int64
}

// NewOrderRepositoryStub builds an empty stub seeded with orders.
func NewOrderRepositoryStub(seed ...model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{Orders: make(map[int64]*model.Order), Next: 1}
	for _, o := range seed {
		o := o
		s.Orders[o.ID] = &o
		if o.ID >= s.Next {
			s.Next = o.ID + 1
		}
	}
	return s
}

// CreateBatch stores all orders or none.
func (s *OrderRepositoryStub) CreateBatch(ctx context.Context, orders []model.Order) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Batches = append(s.Batches, orders)
	if s.CreateBatchFn != nil {
		return s.CreateBatchFn(ctx, orders)
	}
	if s.Orders == nil {
		s.Orders = make(map[int64]*model.Order)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		o.ID = s.Next
		s.Next++
		stored := o
		s.Orders[o.ID] = &stored
		ids = append(ids, o.ID)
	}
	return ids, nil
}

// GetByID returns a copy of stored order.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

// List records filter and returns matching stored orders newest first.
func (s *OrderRepositoryStub) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	s.mu.Lock()
	s.Filters = append(s.Filters, filter)
	s.mu.Unlock()
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	out := s.matching(filter)
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// UpdateStatus records update invocations and mutates stored order.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus, reason *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UpdateCalls = append(s.UpdateCalls, OrderUpdateCall{OrderID: id, Status: status, Reason: reason})
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	o, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	o.Status = status
	if reason != nil {
		o.CancellationReason = reason
	}
	return nil
}

// Delete removes stored order.
func (s *OrderRepositoryStub) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Orders[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Orders, id)
	s.Deleted = append(s.Deleted, id)
	return nil
}

// CountByStatuses counts stored orders with any of statuses.
func (s *OrderRepositoryStub) CountByStatuses(ctx context.Context, statuses []model.OrderStatus) (int64, error) {
	if s.CountFn != nil {
		return s.CountFn(ctx, statuses)
	}
	return int64(len(s.matching(model.OrderFilter{Statuses: statuses}))), nil
}

// Stats aggregates stored orders matching filter.
func (s *OrderRepositoryStub) Stats(ctx context.Context, filter model.OrderFilter) (model.OrderStats, error) {
	s.mu.Lock()
	s.Filters = append(s.Filters, filter)
	s.mu.Unlock()
	if s.StatsFn != nil {
		return s.StatsFn(ctx, filter)
	}
	stats := model.OrderStats{Revenue: decimal.Zero}
	for _, o := range s.matching(filter) {
		stats.Count++
		stats.Revenue = stats.Revenue.Add(o.TotalPrice())
	}
	return stats, nil
}

func (s *OrderRepositoryStub) matching(filter model.OrderFilter) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, o.Status) {
			continue
		}
		if filter.Status != "" && !strings.EqualFold(filter.Status, string(o.Status)) {
			continue
		}
		if filter.Email != "" && !strings.EqualFold(filter.Email, o.Email) {
			continue
		}
		if filter.From != nil && o.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !o.CreatedAt.Before(*filter.To) {
			continue
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func containsStatus(list []model.OrderStatus, s model.OrderStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// MenuRepositoryStub keeps menu data in memory.
type MenuRepositoryStub struct {
	Categories []model.MenuCategory
	Items      map[int64]*model.MenuItem
	Specials   []model.SpecialMenu
	Next       int64
	Err        error

	SearchQueries []string
	ListCalls     []bool
}

// NewMenuRepositoryStub seeds stub with items.
func NewMenuRepositoryStub(items ...model.MenuItem) *MenuRepositoryStub {
	s := &MenuRepositoryStub{Items: make(map[int64]*model.MenuItem), Next: 1}
	for _, it := range items {
		it := it
		s.Items[it.ID] = &it
		if it.ID >= s.Next {
			s.Next = it.ID + 1
		}
	}
	return s
}

// CreateCategory appends category.
func (s *MenuRepositoryStub) CreateCategory(ctx context.Context, c model.MenuCategory) (*model.MenuCategory, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	c.ID = int64(len(s.Categories) + 1)
	s.Categories = append(s.Categories, c)
	return &c, nil
}

// ListCategories returns stored categories.
func (s *MenuRepositoryStub) ListCategories(ctx context.Context) ([]model.MenuCategory, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Categories, nil
}

// CreateItem stores item with next id.
func (s *MenuRepositoryStub) CreateItem(ctx context.Context, item model.MenuItem) (*model.MenuItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Items == nil {
		s.Items = make(map[int64]*model.MenuItem)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	item.ID = s.Next
	s.Next++
	stored := item
	s.Items[item.ID] = &stored
	return &stored, nil
}

// UpdateItem replaces stored item.
func (s *MenuRepositoryStub) UpdateItem(ctx context.Context, item model.MenuItem) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Items[item.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	stored := item
	s.Items[item.ID] = &stored
	return nil
}

// DeleteItem removes stored item.
func (s *MenuRepositoryStub) DeleteItem(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Items[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Items, id)
	return nil
}

// GetItem returns stored item.
func (s *MenuRepositoryStub) GetItem(ctx context.Context, id int64) (*model.MenuItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	it, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

// ListItems returns items ordered by id.
func (s *MenuRepositoryStub) ListItems(ctx context.Context, featuredOnly bool, limit int) ([]model.MenuItem, error) {
	s.ListCalls = append(s.ListCalls, featuredOnly)
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.MenuItem, 0, len(s.Items))
	for _, it := range s.sortedItems() {
		if featuredOnly && !it.Featured {
			continue
		}
		out = append(out, it)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SearchItems matches names case-insensitively.
func (s *MenuRepositoryStub) SearchItems(ctx context.Context, query string, limit int) ([]model.MenuItem, error) {
	s.SearchQueries = append(s.SearchQueries, query)
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.MenuItem
	for _, it := range s.sortedItems() {
		if strings.Contains(strings.ToLower(it.Name), strings.ToLower(query)) {
			out = append(out, it)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListSpecials returns stored specials.
func (s *MenuRepositoryStub) ListSpecials(ctx context.Context, limit int) ([]model.SpecialMenu, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Specials, nil
}

func (s *MenuRepositoryStub) sortedItems() []model.MenuItem {
	out := make([]model.MenuItem, 0, len(s.Items))
	for _, it := range s.Items {
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ContactRepositoryStub keeps contacts in memory.
type ContactRepositoryStub struct {
	Contacts map[int64]*model.Contact
	Next     int64
	Err      error
	Statuses []string
}

// NewContactRepositoryStub seeds stub with contacts.
func NewContactRepositoryStub(seed ...model.Contact) *ContactRepositoryStub {
	s := &ContactRepositoryStub{Contacts: make(map[int64]*model.Contact), Next: 1}
	for _, c := range seed {
		c := c
		s.Contacts[c.ID] = &c
		if c.ID >= s.Next {
			s.Next = c.ID + 1
		}
	}
	return s
}

// Create stores contact with next id.
func (s *ContactRepositoryStub) Create(ctx context.Context, c model.Contact) (*model.Contact, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Contacts == nil {
		s.Contacts = make(map[int64]*model.Contact)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	c.ID = s.Next
	s.Next++
	stored := c
	s.Contacts[c.ID] = &stored
	return &stored, nil
}

// GetByID returns stored contact.
func (s *ContactRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Contact, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.Contacts[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// List returns contacts with status, all when blank.
func (s *ContactRepositoryStub) List(ctx context.Context, status string) ([]model.Contact, error) {
	s.Statuses = append(s.Statuses, status)
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Contact
	for _, c := range s.Contacts {
		if status == "" || string(c.Status) == status {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// UpdateStatus mutates stored contact.
func (s *ContactRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.ContactStatus) error {
	if s.Err != nil {
		return s.Err
	}
	c, ok := s.Contacts[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	c.Status = status
	return nil
}

// ReservationRepositoryStub keeps reservations in memory.
type ReservationRepositoryStub struct {
	Reservations map[int64]*model.Reservation
	Next         int64
	Err          error
	Statuses     []string
}

// NewReservationRepositoryStub seeds stub with reservations.
func NewReservationRepositoryStub(seed ...model.Reservation) *ReservationRepositoryStub {
	s := &ReservationRepositoryStub{Reservations: make(map[int64]*model.Reservation), Next: 1}
	for _, r := range seed {
		r := r
		s.Reservations[r.ID] = &r
		if r.ID >= s.Next {
			s.Next = r.ID + 1
		}
	}
	return s
}

// Create stores reservation with next id.
func (s *ReservationRepositoryStub) Create(ctx context.Context, r model.Reservation) (*model.Reservation, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Reservations == nil {
		s.Reservations = make(map[int64]*model.Reservation)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	r.ID = s.Next
	s.Next++
	stored := r
	s.Reservations[r.ID] = &stored
	return &stored, nil
}

// GetByID returns stored reservation.
func (s *ReservationRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	r, ok := s.Reservations[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

// List returns reservations with status, all when blank.
func (s *ReservationRepositoryStub) List(ctx context.Context, status string) ([]model.Reservation, error) {
	s.Statuses = append(s.Statuses, status)
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Reservation
	for _, r := range s.Reservations {
		if status == "" || string(r.Status) == status {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// UpdateStatus mutates stored reservation.
func (s *ReservationRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error {
	if s.Err != nil {
		return s.Err
	}
	r, ok := s.Reservations[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	r.Status = status
	return nil
}
