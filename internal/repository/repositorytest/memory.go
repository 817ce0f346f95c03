// Package repositorytest provides in-memory repositories for tests.
package repositorytest

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/repository"
)

// Store holds every in-memory table and counts calls so tests can assert the store was not touched.
type Store struct {
	mu    sync.Mutex
	calls atomic.Int64
	now   func() time.Time

	users    map[string]domain.User
	projects map[string]domain.Project
	skills   map[string]domain.Skill
	posts    map[string]domain.BlogPost
	postTags map[string][]string
	tags     map[string]domain.Tag
	contacts map[string]domain.ContactMessage
	about    *domain.About
}

// NewStore creates an empty store.
func NewStore() *Store {
	var tick int64
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &Store{
		// Strictly increasing timestamps keep ordering deterministic.
		now: func() time.Time {
			return base.Add(time.Duration(atomic.AddInt64(&tick, 1)) * time.Second)
		},
		users:    map[string]domain.User{},
		projects: map[string]domain.Project{},
		skills:   map[string]domain.Skill{},
		posts:    map[string]domain.BlogPost{},
		postTags: map[string][]string{},
		tags:     map[string]domain.Tag{},
		contacts: map[string]domain.ContactMessage{},
	}
}

// Calls reports how many repository methods were invoked.
func (s *Store) Calls() int64 {
	return s.calls.Load()
}

func (s *Store) enter() func() {
	s.calls.Add(1)
	s.mu.Lock()
	return s.mu.Unlock
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}

// Users returns the credential store view.
func (s *Store) Users() repository.UserRepository { return (*users)(s) }

// Projects returns the project repository view.
func (s *Store) Projects() repository.ProjectRepository { return (*projects)(s) }

// Skills returns the skill repository view.
func (s *Store) Skills() repository.SkillRepository { return (*skills)(s) }

// Blog returns the blog repository view.
func (s *Store) Blog() repository.BlogRepository { return (*blog)(s) }

// Tags returns the tag repository view.
func (s *Store) Tags() repository.TagRepository { return (*tags)(s) }

// Contacts returns the contact repository view.
func (s *Store) Contacts() repository.ContactRepository { return (*contacts)(s) }

// About returns the about repository view.
func (s *Store) About() repository.AboutRepository { return (*about)(s) }

type users Store

func (r *users) Create(_ context.Context, user *domain.User) error {
	s := (*Store)(r)
	defer s.enter()()
	for _, u := range s.users {
		if u.Email == user.Email {
			return uniqueViolation()
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = s.now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = *user
	return nil
}

func (r *users) GetByID(_ context.Context, id string) (*domain.User, error) {
	s := (*Store)(r)
	defer s.enter()()
	u, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (r *users) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s := (*Store)(r)
	defer s.enter()()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *users) SetRoleForAll(_ context.Context, role domain.Role) (int64, error) {
	s := (*Store)(r)
	defer s.enter()()
	for id, u := range s.users {
		u.Role = role
		s.users[id] = u
	}
	return int64(len(s.users)), nil
}

type projects Store

func (r *projects) Create(_ context.Context, p *domain.Project) error {
	s := (*Store)(r)
	defer s.enter()()
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	p.ID = uuid.NewString()
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt
	s.projects[p.ID] = *p
	return nil
}

func (r *projects) Update(_ context.Context, p *domain.Project) error {
	s := (*Store)(r)
	defer s.enter()()
	if _, ok := s.projects[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	p.UpdatedAt = s.now()
	s.projects[p.ID] = *p
	return nil
}

func (r *projects) GetByID(_ context.Context, id string) (*domain.Project, error) {
	s := (*Store)(r)
	defer s.enter()()
	p, ok := s.projects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &p, nil
}

func (r *projects) List(_ context.Context) ([]domain.Project, error) {
	s := (*Store)(r)
	defer s.enter()()
	out := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *projects) Delete(_ context.Context, id string) error {
	s := (*Store)(r)
	defer s.enter()()
	if _, ok := s.projects[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.projects, id)
	return nil
}

type skills Store

func (r *skills) Create(_ context.Context, sk *domain.Skill) error {
	s := (*Store)(r)
	defer s.enter()()
	sk.ID = uuid.NewString()
	sk.CreatedAt = s.now()
	sk.UpdatedAt = sk.CreatedAt
	s.skills[sk.ID] = *sk
	return nil
}

func (r *skills) Update(_ context.Context, sk *domain.Skill) error {
	s := (*Store)(r)
	defer s.enter()()
	if _, ok := s.skills[sk.ID]; !ok {
		return pgx.ErrNoRows
	}
	sk.UpdatedAt = s.now()
	s.skills[sk.ID] = *sk
	return nil
}

func (r *skills) GetByID(_ context.Context, id string) (*domain.Skill, error) {
	s := (*Store)(r)
	defer s.enter()()
	sk, ok := s.skills[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &sk, nil
}

func (r *skills) List(_ context.Context) ([]domain.Skill, error) {
	s := (*Store)(r)
	defer s.enter()()
	out := make([]domain.Skill, 0, len(s.skills))
	for _, sk := range s.skills {
		out = append(out, sk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *skills) Delete(_ context.Context, id string) error {
	s := (*Store)(r)
	defer s.enter()()
	if _, ok := s.skills[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.skills, id)
	return nil
}

type blog Store

func (r *blog) Create(_ context.Context, post *domain.BlogPost, tagNames []string) error {
	s := (*Store)(r)
	defer s.enter()()
	post.ID = uuid.NewString()
	post.CreatedAt = s.now()
	post.UpdatedAt = post.CreatedAt
	post.Tags = s.linkTags(post.ID, tagNames)
	stored := *post
	stored.Tags = nil
	s.posts[post.ID] = stored
	return nil
}

func (r *blog) Update(_ context.Context, post *domain.BlogPost, tagNames []string) error {
	s := (*Store)(r)
	defer s.enter()()
	existing, ok := s.posts[post.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	post.CreatedAt = existing.CreatedAt
	post.UpdatedAt = s.now()
	if tagNames != nil {
		s.linkTags(post.ID, tagNames)
	}
	post.Tags = s.tagsFor(post.ID)
	stored := *post
	stored.Tags = nil
	s.posts[post.ID] = stored
	return nil
}

func (r *blog) GetByID(_ context.Context, id string) (*domain.BlogPost, error) {
	s := (*Store)(r)
	defer s.enter()()
	post, ok := s.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	post.Tags = s.tagsFor(id)
	return &post, nil
}

func (r *blog) List(_ context.Context, publishedOnly bool) ([]domain.BlogPost, error) {
	s := (*Store)(r)
	defer s.enter()()
	out := []domain.BlogPost{}
	for id, post := range s.posts {
		if publishedOnly && !post.Published {
			continue
		}
		post.Tags = s.tagsFor(id)
		out = append(out, post)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *blog) Delete(_ context.Context, id string) error {
	s := (*Store)(r)
	defer s.enter()()
	if _, ok := s.posts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.posts, id)
	delete(s.postTags, id)
	return nil
}

// linkTags replaces the links of postID, creating tags by name as needed. Callers hold the lock.
func (s *Store) linkTags(postID string, names []string) []domain.Tag {
	ids := []string{}
	for _, name := range names {
		tag, ok := s.tagByName(name)
		if !ok {
			tag = domain.Tag{ID: uuid.NewString(), Name: name, CreatedAt: s.now()}
			s.tags[tag.ID] = tag
		}
		ids = append(ids, tag.ID)
	}
	s.postTags[postID] = ids
	return s.tagsFor(postID)
}

func (s *Store) tagsFor(postID string) []domain.Tag {
	out := []domain.Tag{}
	for _, id := range s.postTags[postID] {
		out = append(out, s.tags[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Store) tagByName(name string) (domain.Tag, bool) {
	for _, t := range s.tags {
		if t.Name == name {
			return t, true
		}
	}
	return domain.Tag{}, false
}

type tags Store

func (r *tags) Create(_ context.Context, tag *domain.Tag) error {
	s := (*Store)(r)
	defer s.enter()()
	if _, ok := s.tagByName(tag.Name); ok {
		return uniqueViolation()
	}
	tag.ID = uuid.NewString()
	tag.CreatedAt = s.now()
	s.tags[tag.ID] = *tag
	return nil
}

func (r *tags) GetByName(_ context.Context, name string) (*domain.Tag, error) {
	s := (*Store)(r)
	defer s.enter()()
	tag, ok := s.tagByName(name)
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &tag, nil
}

func (r *tags) List(_ context.Context) ([]domain.Tag, error) {
	s := (*Store)(r)
	defer s.enter()()
	out := make([]domain.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type contacts Store

func (r *contacts) Create(_ context.Context, msg *domain.ContactMessage) error {
	s := (*Store)(r)
	defer s.enter()()
	msg.ID = uuid.NewString()
	msg.Read = false
	msg.CreatedAt = s.now()
	s.contacts[msg.ID] = *msg
	return nil
}

func (r *contacts) GetByID(_ context.Context, id string) (*domain.ContactMessage, error) {
	s := (*Store)(r)
	defer s.enter()()
	msg, ok := s.contacts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &msg, nil
}

func (r *contacts) List(_ context.Context) ([]domain.ContactMessage, error) {
	s := (*Store)(r)
	defer s.enter()()
	out := make([]domain.ContactMessage, 0, len(s.contacts))
	for _, msg := range s.contacts {
		out = append(out, msg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *contacts) SetRead(_ context.Context, id string, read bool) (*domain.ContactMessage, error) {
	s := (*Store)(r)
	defer s.enter()()
	msg, ok := s.contacts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	msg.Read = read
	s.contacts[id] = msg
	return &msg, nil
}

func (r *contacts) Delete(_ context.Context, id string) error {
	s := (*Store)(r)
	defer s.enter()()
	if _, ok := s.contacts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.contacts, id)
	return nil
}

type about Store

func (r *about) GetFirst(_ context.Context) (*domain.About, error) {
	s := (*Store)(r)
	defer s.enter()()
	if s.about == nil {
		return nil, pgx.ErrNoRows
	}
	cp := *s.about
	return &cp, nil
}

func (r *about) Create(_ context.Context, a *domain.About) error {
	s := (*Store)(r)
	defer s.enter()()
	a.ID = uuid.NewString()
	a.CreatedAt = s.now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	s.about = &cp
	return nil
}

func (r *about) Update(_ context.Context, a *domain.About) error {
	s := (*Store)(r)
	defer s.enter()()
	if s.about == nil || s.about.ID != a.ID {
		return pgx.ErrNoRows
	}
	a.UpdatedAt = s.now()
	cp := *a
	s.about = &cp
	return nil
}
