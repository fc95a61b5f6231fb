package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"hostel-drishti/backend/internal/model"
	"hostel-drishti/backend/internal/policy"
	"hostel-drishti/backend/internal/repository"
	"hostel-drishti/backend/pkg/storage"
)

// ── in-memory store shared by every mock repository ──
//
// One mutex guards all tables so the hostel mock can cascade and recompute
// across them, and so concurrent review / daily inserts race on the same
// uniqueness checks a real unique index would enforce.

type memStore struct {
	mu         sync.Mutex
	seq        int
	users      map[string]*model.User
	hostels    map[string]*model.Hostel
	reviews    map[string]*model.Review
	complaints map[string]*model.Complaint
	menus      map[string]*model.Menu // by hostel id
	daily      map[string]*model.DailyPerformance

	recomputeErr error // forced RecomputeRating failure
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[string]*model.User),
		hostels:    make(map[string]*model.Hostel),
		reviews:    make(map[string]*model.Review),
		complaints: make(map[string]*model.Complaint),
		menus:      make(map[string]*model.Menu),
		daily:      make(map[string]*model.DailyPerformance),
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%04d", prefix, s.seq)
}

// stamp a strictly increasing creation time so "newest first" is deterministic
func (s *memStore) stamp() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Minute)
}

// errUnique mimics gorm's translated unique violation
var errUnique = gorm.ErrDuplicatedKey

func newMockRepository(store *memStore) *repository.Repository {
	return &repository.Repository{
		User:             &mockUserRepo{store},
		Hostel:           &mockHostelRepo{store},
		Review:           &mockReviewRepo{store},
		Complaint:        &mockComplaintRepo{store},
		Menu:             &mockMenuRepo{store},
		DailyPerformance: &mockDailyRepo{store},
	}
}

// ── Mock UserRepository ──

type mockUserRepo struct{ s *memStore }

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return errUnique
		}
	}
	if user.UserID == "" {
		user.UserID = m.s.nextID("user")
	}
	user.CreatedAt = m.s.stamp()
	cp := *user
	m.s.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if u, ok := m.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdateContact(_ context.Context, id, contactNumber string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	u, ok := m.s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c := contactNumber
	u.ContactNumber = &c
	return nil
}

func (m *mockUserRepo) ListUnassignedWardens(_ context.Context) ([]model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	assigned := make(map[string]bool)
	for _, h := range m.s.hostels {
		assigned[h.WardenID] = true
	}
	var result []model.User
	for _, u := range m.s.users {
		if u.Role == model.RoleWarden && !assigned[u.UserID] {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock HostelRepository ──

type mockHostelRepo struct{ s *memStore }

func (m *mockHostelRepo) Create(_ context.Context, hostel *model.Hostel) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, h := range m.s.hostels {
		if h.WardenID == hostel.WardenID {
			return errUnique
		}
	}
	if hostel.HostelID == "" {
		hostel.HostelID = m.s.nextID("hostel")
	}
	hostel.CreatedAt = m.s.stamp()
	cp := *hostel
	cp.Warden = nil
	m.s.hostels[hostel.HostelID] = &cp
	return nil
}

func (m *mockHostelRepo) withWarden(h *model.Hostel) *model.Hostel {
	cp := *h
	if w, ok := m.s.users[h.WardenID]; ok {
		wc := *w
		cp.Warden = &wc
	}
	return &cp
}

func (m *mockHostelRepo) GetByID(_ context.Context, id string) (*model.Hostel, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if h, ok := m.s.hostels[id]; ok {
		return m.withWarden(h), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHostelRepo) GetByWarden(_ context.Context, wardenID string) (*model.Hostel, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, h := range m.s.hostels {
		if h.WardenID == wardenID {
			return m.withWarden(h), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHostelRepo) List(_ context.Context, search string) ([]model.Hostel, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	q := strings.ToLower(strings.TrimSpace(search))
	var result []model.Hostel
	for _, h := range m.s.hostels {
		hay := strings.ToLower(strings.Join([]string{h.Name, h.District, h.State, h.Address}, " "))
		if q == "" || strings.Contains(hay, q) {
			result = append(result, *m.withWarden(h))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockHostelRepo) Update(_ context.Context, id string, fields map[string]interface{}) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	h, ok := m.s.hostels[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			h.Name = v.(string)
		case "district":
			h.District = v.(string)
		case "state":
			h.State = v.(string)
		case "address":
			h.Address = v.(string)
		case "latitude":
			h.Latitude = v.(float64)
		case "longitude":
			h.Longitude = v.(float64)
		case "cover_image":
			h.CoverImage = v.(string)
		case "warden_id":
			for _, other := range m.s.hostels {
				if other.HostelID != id && other.WardenID == v.(string) {
					return errUnique
				}
			}
			h.WardenID = v.(string)
		default:
			return fmt.Errorf("unexpected hostel column %q", k)
		}
	}
	return nil
}

func (m *mockHostelRepo) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.hostels[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for k, d := range m.s.daily {
		if d.HostelID == id {
			delete(m.s.daily, k)
		}
	}
	delete(m.s.menus, id)
	for k, c := range m.s.complaints {
		if c.HostelID == id {
			delete(m.s.complaints, k)
		}
	}
	for k, r := range m.s.reviews {
		if r.HostelID == id {
			delete(m.s.reviews, k)
		}
	}
	delete(m.s.hostels, id)
	return nil
}

func (m *mockHostelRepo) RecomputeRating(_ context.Context, hostelID string) (*model.RatingStats, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.recomputeErr != nil {
		return nil, m.s.recomputeErr
	}
	h, ok := m.s.hostels[hostelID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	var sum, n int
	for _, r := range m.s.reviews {
		if r.HostelID == hostelID {
			sum += r.Rating
			n++
		}
	}
	stats := &model.RatingStats{NumOfReviews: n}
	if n > 0 {
		stats.AverageRating = float64(sum) / float64(n)
	}
	h.AverageRating = stats.AverageRating
	h.NumOfReviews = stats.NumOfReviews
	return stats, nil
}

// ── Mock ReviewRepository ──

type mockReviewRepo struct{ s *memStore }

func (m *mockReviewRepo) Create(_ context.Context, review *model.Review) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, r := range m.s.reviews {
		if r.HostelID == review.HostelID && r.UserID == review.UserID {
			return errUnique
		}
	}
	review.ReviewID = m.s.nextID("review")
	review.CreatedAt = m.s.stamp()
	cp := *review
	m.s.reviews[review.ReviewID] = &cp
	return nil
}

func (m *mockReviewRepo) GetByID(_ context.Context, id string) (*model.Review, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if r, ok := m.s.reviews[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReviewRepo) ExistsForUser(_ context.Context, hostelID, userID string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, r := range m.s.reviews {
		if r.HostelID == hostelID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockReviewRepo) ListByHostel(_ context.Context, hostelID string) ([]model.Review, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var result []model.Review
	for _, r := range m.s.reviews {
		if r.HostelID == hostelID {
			cp := *r
			if u, ok := m.s.users[r.UserID]; ok {
				cp.User = &model.User{UserID: u.UserID, Name: u.Name}
			}
			result = append(result, cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockReviewRepo) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.reviews[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.s.reviews, id)
	return nil
}

// ── Mock ComplaintRepository ──

type mockComplaintRepo struct{ s *memStore }

func (m *mockComplaintRepo) Create(_ context.Context, complaint *model.Complaint) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	complaint.ComplaintID = m.s.nextID("complaint")
	complaint.CreatedAt = m.s.stamp()
	cp := *complaint
	m.s.complaints[complaint.ComplaintID] = &cp
	return nil
}

func (m *mockComplaintRepo) withStudent(c *model.Complaint) model.Complaint {
	cp := *c
	if u, ok := m.s.users[c.StudentID]; ok {
		uc := *u
		cp.Student = &uc
	}
	return cp
}

func (m *mockComplaintRepo) GetByID(_ context.Context, id string) (*model.Complaint, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if c, ok := m.s.complaints[id]; ok {
		cp := m.withStudent(c)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockComplaintRepo) ListByHostel(_ context.Context, hostelID string) ([]model.Complaint, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var result []model.Complaint
	for _, c := range m.s.complaints {
		if c.HostelID == hostelID {
			result = append(result, m.withStudent(c))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockComplaintRepo) UpdateStatus(_ context.Context, id string, from, to model.ComplaintStatus) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	c, ok := m.s.complaints[id]
	if !ok || c.Status != from {
		return false, nil
	}
	c.Status = to
	return true, nil
}

// ── Mock MenuRepository ──

type mockMenuRepo struct{ s *memStore }

func (m *mockMenuRepo) GetByHostel(_ context.Context, hostelID string) (*model.Menu, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if menu, ok := m.s.menus[hostelID]; ok {
		cp := *menu
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMenuRepo) Upsert(_ context.Context, menu *model.Menu) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if existing, ok := m.s.menus[menu.HostelID]; ok {
		menu.MenuID = existing.MenuID
	} else {
		menu.MenuID = m.s.nextID("menu")
	}
	cp := *menu
	m.s.menus[menu.HostelID] = &cp
	return nil
}

func (m *mockMenuRepo) DeleteByHostel(_ context.Context, hostelID string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.menus[hostelID]; !ok {
		return false, nil
	}
	delete(m.s.menus, hostelID)
	return true, nil
}

// ── Mock DailyPerformanceRepository ──

type mockDailyRepo struct{ s *memStore }

func (m *mockDailyRepo) Create(_ context.Context, record *model.DailyPerformance) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, d := range m.s.daily {
		if d.HostelID == record.HostelID && d.Date.Equal(record.Date) {
			return errUnique
		}
	}
	record.DailyPerformanceID = m.s.nextID("daily")
	record.CreatedAt = m.s.stamp()
	cp := *record
	m.s.daily[record.DailyPerformanceID] = &cp
	return nil
}

func (m *mockDailyRepo) ListByHostel(_ context.Context, hostelID string) ([]model.DailyPerformance, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var result []model.DailyPerformance
	for _, d := range m.s.daily {
		if d.HostelID == hostelID {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

// ── Mock image store ──

type mockImageStore struct {
	mu    sync.Mutex
	saved []storage.Object
	err   error
}

func (m *mockImageStore) Save(_ context.Context, obj storage.Object) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.saved = append(m.saved, obj)
	return fmt.Sprintf("https://img.test/%s/%d%s", obj.Folder, len(m.saved), obj.Ext), nil
}

func (m *mockImageStore) Name() string { return "mock" }

// ── fixtures ──

// seedUser inserts a user directly and returns it
func (s *memStore) seedUser(id, name string, role model.Role) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &model.User{
		UserID: id,
		Name:   name,
		Email:  strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Role:   role,
	}
	s.users[id] = u
	return u
}

// seedHostel inserts a hostel with zero reviews assigned to wardenID
func (s *memStore) seedHostel(id, name, wardenID string) *model.Hostel {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	h := &model.Hostel{
		HostelID:  id,
		Name:      name,
		District:  "Pune",
		State:     "Maharashtra",
		Address:   "1 College Road",
		WardenID:  wardenID,
		Latitude:  18.52,
		Longitude: 73.85,
	}
	h.CreatedAt = s.stamp()
	s.hostels[id] = h
	return h
}

func (s *memStore) hostel(id string) model.Hostel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.hostels[id]
}

// testEnv standard cast: one DWO, two wardens (W1 assigned to H1, W2
// unassigned), two students and hostel H1
type testEnv struct {
	store  *memStore
	repo   *repository.Repository
	images *mockImageStore

	dwo, w1, w2, studentA, studentB policy.Actor
	hostelID                        string
}

func newTestEnv() *testEnv {
	store := newMemStore()
	env := &testEnv{
		store:    store,
		repo:     newMockRepository(store),
		images:   &mockImageStore{},
		dwo:      policy.Actor{ID: "dwo-1", Role: model.RoleDWO},
		w1:       policy.Actor{ID: "warden-1", Role: model.RoleWarden},
		w2:       policy.Actor{ID: "warden-2", Role: model.RoleWarden},
		studentA: policy.Actor{ID: "student-a", Role: model.RoleStudent},
		studentB: policy.Actor{ID: "student-b", Role: model.RoleStudent},
		hostelID: "hostel-1",
	}
	store.seedUser("dwo-1", "Dana Officer", model.RoleDWO)
	store.seedUser("warden-1", "Wanda One", model.RoleWarden)
	store.seedUser("warden-2", "Walt Two", model.RoleWarden)
	store.seedUser("student-a", "Asha Student", model.RoleStudent)
	store.seedUser("student-b", "Bilal Student", model.RoleStudent)
	store.seedHostel("hostel-1", "Sunrise Girls Hostel", "warden-1")
	return env
}

func testImage(folder string) *storage.Object {
	return &storage.Object{
		Folder:      folder,
		Filename:    "meal.jpg",
		ContentType: "image/jpeg",
		Ext:         ".jpg",
		Data:        []byte{0xFF, 0xD8, 0xFF, 0xE0},
	}
}
