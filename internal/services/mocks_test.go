package services

import (
	"context"
	"sync"

	"github.com/pensacomp/lms-service/internal/models"
	"github.com/pensacomp/lms-service/internal/repositories"
)

// mockRepository is an in-memory Repository for service tests.
type mockRepository struct {
	mu     sync.Mutex
	nextID uint

	users   map[uint]*models.User
	courses map[uint]*models.Course
	orders  []*models.Order
	posts   map[string]*models.Post
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:   make(map[uint]*models.User),
		courses: make(map[uint]*models.Course),
		posts:   make(map[string]*models.Post),
	}
}

func (m *mockRepository) id() uint {
	m.nextID++
	return m.nextID
}

func (m *mockRepository) User() repositories.UserRepository     { return (*mockUserRepo)(m) }
func (m *mockRepository) Course() repositories.CourseRepository { return (*mockCourseRepo)(m) }
func (m *mockRepository) Order() repositories.OrderRepository   { return (*mockOrderRepo)(m) }
func (m *mockRepository) Post() repositories.PostRepository     { return (*mockPostRepo)(m) }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== USERS =====

type mockUserRepo mockRepository

func (r *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = (*mockRepository)(r).id()
	r.users[user.ID] = user
	return nil
}

func (r *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (r *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *mockUserRepo) AddCourse(ctx context.Context, userID, courseID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Courses = append(user.Courses, models.UserCourse{UserID: userID, CourseID: courseID})
	return nil
}

// ===== COURSES =====

type mockCourseRepo mockRepository

func (r *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	course.ID = (*mockRepository)(r).id()
	assignChildIDs((*mockRepository)(r), course)
	r.courses[course.ID] = course
	return nil
}

func (r *mockCourseRepo) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	course, ok := r.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return course, nil
}

func (r *mockCourseRepo) GetWithContent(ctx context.Context, id uint) (*models.Course, error) {
	return r.GetByID(ctx, id)
}

func (r *mockCourseRepo) List(ctx context.Context) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, c)
	}
	return out, nil
}

func (r *mockCourseRepo) Save(ctx context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courses[course.ID]; !ok {
		return repositories.ErrNotFound
	}
	assignChildIDs((*mockRepository)(r), course)
	r.courses[course.ID] = course
	return nil
}

func (r *mockCourseRepo) Update(ctx context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courses[course.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.courses[course.ID] = course
	return nil
}

func (r *mockCourseRepo) ReplaceSections(ctx context.Context, courseID uint, sections []models.CourseSection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	course, ok := r.courses[courseID]
	if !ok {
		return repositories.ErrNotFound
	}
	for i := range sections {
		sections[i].ID = (*mockRepository)(r).id()
		sections[i].CourseID = courseID
	}
	course.Sections = sections
	return nil
}

// assignChildIDs mimics the database filling in generated keys.
func assignChildIDs(m *mockRepository, course *models.Course) {
	for i := range course.Sections {
		sec := &course.Sections[i]
		if sec.ID == 0 {
			sec.ID = m.id()
		}
		sec.CourseID = course.ID
		for j := range sec.Questions {
			q := &sec.Questions[j]
			if q.ID == 0 {
				q.ID = m.id()
			}
			q.SectionID = sec.ID
			for k := range q.Replies {
				if q.Replies[k].ID == 0 {
					q.Replies[k].ID = m.id()
				}
				q.Replies[k].QuestionID = q.ID
			}
		}
	}
	for i := range course.Reviews {
		rev := &course.Reviews[i]
		if rev.ID == 0 {
			rev.ID = m.id()
		}
		rev.CourseID = course.ID
		for j := range rev.Replies {
			if rev.Replies[j].ID == 0 {
				rev.Replies[j].ID = m.id()
			}
			rev.Replies[j].ReviewID = rev.ID
		}
	}
}

// ===== ORDERS =====

type mockOrderRepo mockRepository

func (r *mockOrderRepo) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = (*mockRepository)(r).id()
	r.orders = append(r.orders, order)
	return nil
}

func (r *mockOrderRepo) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockOrderRepo) List(ctx context.Context, filters repositories.OrderFilters) ([]*models.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Order
	for _, o := range r.orders {
		if filters.UserID != nil && o.UserID != *filters.UserID {
			continue
		}
		if filters.CourseID != nil && o.CourseID != *filters.CourseID {
			continue
		}
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (r *mockOrderRepo) ExistsByUserAndCourse(ctx context.Context, userID, courseID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if o.UserID == userID && o.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

// ===== POSTS =====

type mockPostRepo mockRepository

func (r *mockPostRepo) Create(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[post.Slug]; ok {
		return repositories.ErrDuplicate
	}
	post.ID = (*mockRepository)(r).id()
	r.posts[post.Slug] = post
	return nil
}

func (r *mockPostRepo) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[slug]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (r *mockPostRepo) List(ctx context.Context, filters repositories.PostFilters) ([]*models.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *mockPostRepo) Update(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for slug, p := range r.posts {
		if p.ID == post.ID {
			if slug != post.Slug {
				if _, taken := r.posts[post.Slug]; taken {
					return repositories.ErrDuplicate
				}
				delete(r.posts, slug)
			}
			r.posts[post.Slug] = post
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *mockPostRepo) DeleteBySlug(ctx context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[slug]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.posts, slug)
	return nil
}

func (r *mockPostRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.posts[slug]
	return ok, nil
}
