package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/cache"
	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/events"
	"github.com/spec-kit/portfolio-service/internal/repository/repositorytest"
	"github.com/spec-kit/portfolio-service/internal/service"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

func ptr[T any](v T) *T { return &v }

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError with status %d, got %v", status, err)
	}
	if de.HTTPStatus != status {
		t.Fatalf("expected status %d, got %d (%s)", status, de.HTTPStatus, de.Message)
	}
}

func newAuthService(t *testing.T, store *repositorytest.Store, allowRegistration bool) *service.AuthService {
	t.Helper()
	codec, err := auth.NewTokenCodec("test-secret")
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	return service.NewAuthService(
		config.AuthConfig{BcryptCost: bcrypt.MinCost, AllowRegistration: allowRegistration},
		service.AuthDependencies{UserRepo: store.Users(), Tokens: codec},
	)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	store := repositorytest.NewStore()
	svc := newAuthService(t, store, true)
	ctx := context.Background()

	user, err := svc.Register(ctx, "owner@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", user.Role)
	}
	if user.PasswordHash == "s3cret" {
		t.Fatal("password stored in plain text")
	}

	_, err = svc.Register(ctx, "owner@example.com", "other")
	assertStatus(t, err, 400)

	_, err = svc.Register(ctx, "", "x")
	assertStatus(t, err, 400)

	session, err := svc.Login(ctx, "owner@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.Token == "" || session.User.ID != user.ID {
		t.Fatalf("unexpected session %+v", session)
	}
	if d := time.Until(session.ExpiresAt); d < auth.TokenTTL-time.Minute || d > auth.TokenTTL {
		t.Fatalf("expected ~7d expiry, got %s", d)
	}

	_, err = svc.Login(ctx, "owner@example.com", "wrong")
	assertStatus(t, err, 401)
	_, err = svc.Login(ctx, "nobody@example.com", "s3cret")
	assertStatus(t, err, 401)
	_, err = svc.Login(ctx, "owner@example.com", "")
	assertStatus(t, err, 400)
}

func TestAuthService_RegistrationDisabled(t *testing.T) {
	store := repositorytest.NewStore()
	svc := newAuthService(t, store, false)

	_, err := svc.Register(context.Background(), "owner@example.com", "s3cret")
	assertStatus(t, err, 403)
	if store.Calls() != 0 {
		t.Fatalf("expected no store access, got %d calls", store.Calls())
	}
}

func TestAuthService_SeedUsersFromFile(t *testing.T) {
	store := repositorytest.NewStore()
	svc := newAuthService(t, store, false)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "users.yaml")
	content := "users:\n  - email: owner@example.com\n    password: s3cret\n  - email: \"\"\n    password: skipped\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	created, err := svc.SeedUsersFromFile(ctx, path)
	if err != nil {
		t.Fatalf("SeedUsersFromFile: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected 1 seeded user, got %d", created)
	}

	created, err = svc.SeedUsersFromFile(ctx, path)
	if err != nil || created != 0 {
		t.Fatalf("expected idempotent reseed, got %d, %v", created, err)
	}

	if _, err := svc.Login(ctx, "owner@example.com", "s3cret"); err != nil {
		t.Fatalf("expected seeded user to log in, got %v", err)
	}
}

func TestAuthService_PromoteAllToAdmin(t *testing.T) {
	store := repositorytest.NewStore()
	svc := newAuthService(t, store, true)
	ctx := context.Background()

	if err := store.Users().Create(ctx, &domain.User{Email: "a@example.com", PasswordHash: "x", Role: domain.Role("viewer")}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	count, err := svc.PromoteAllToAdmin(ctx)
	if err != nil {
		t.Fatalf("PromoteAllToAdmin: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 promoted user, got %d", count)
	}
	u, _ := store.Users().GetByEmail(ctx, "a@example.com")
	if u.Role != domain.RoleAdmin {
		t.Fatalf("expected admin, got %q", u.Role)
	}
}

func TestNormalizeTagNames(t *testing.T) {
	got := service.NormalizeTagNames([]string{" go ", "", "sql", "go", "   ", "sql "})
	if want := []string{"go", "sql"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if service.NormalizeTagNames(nil) != nil {
		t.Fatal("nil input must stay nil")
	}
	if got := service.NormalizeTagNames([]string{" "}); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestBlogService_TagsAndVisibility(t *testing.T) {
	store := repositorytest.NewStore()
	svc := service.NewBlogService(store.Blog(), nil, nil, nil)
	ctx := context.Background()

	post, err := svc.Create(ctx, service.BlogInput{
		Title:       ptr("Hello"),
		Description: ptr("World"),
		Tags:        []string{"go", " go", "testing", ""},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(post.Tags) != 2 {
		t.Fatalf("expected 2 normalized tags, got %+v", post.Tags)
	}
	if post.Published {
		t.Fatal("expected draft by default")
	}

	_, err = svc.Get(ctx, post.ID, true)
	assertStatus(t, err, 404)

	if _, err := svc.Get(ctx, post.ID, false); err != nil {
		t.Fatalf("admin view must see drafts: %v", err)
	}

	updated, err := svc.Patch(ctx, post.ID, service.BlogInput{Published: ptr(true)})
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if !updated.Published || len(updated.Tags) != 2 {
		t.Fatalf("expected published post with untouched tags, got %+v", updated)
	}

	retagged, err := svc.Patch(ctx, post.ID, service.BlogInput{Tags: []string{"zeta", "alpha"}})
	if err != nil {
		t.Fatalf("Patch tags: %v", err)
	}
	reread, err := svc.Get(ctx, post.ID, false)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(retagged.Tags) != 2 || retagged.Tags[0].Name != "alpha" || !reflect.DeepEqual(retagged.Tags, reread.Tags) {
		t.Fatalf("expected name-ordered tags on write and read, got %+v and %+v", retagged.Tags, reread.Tags)
	}

	updated, err = svc.Update(ctx, post.ID, service.BlogInput{Title: ptr("Hi"), Description: ptr("There"), Tags: []string{}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.Tags) != 0 || !updated.Published {
		t.Fatalf("expected cleared tags and preserved published flag, got %+v", updated)
	}

	_, err = svc.Update(ctx, post.ID, service.BlogInput{Title: ptr("only title")})
	assertStatus(t, err, 400)

	_, err = svc.Patch(ctx, post.ID, service.BlogInput{Title: ptr("  ")})
	assertStatus(t, err, 400)

	list, err := svc.List(ctx, service.BlogQuery{Public: true})
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one public post, got %d, %v", len(list), err)
	}

	if err := svc.Delete(ctx, post.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	assertStatus(t, svc.Delete(ctx, post.ID), 404)
}

func TestSkillService_Validation(t *testing.T) {
	store := repositorytest.NewStore()
	svc := service.NewSkillService(store.Skills(), nil, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, service.SkillInput{Name: ptr("Go")})
	assertStatus(t, err, 400)
	_, err = svc.Create(ctx, service.SkillInput{Name: ptr("Go"), Proficiency: ptr(101)})
	assertStatus(t, err, 400)
	_, err = svc.Create(ctx, service.SkillInput{Name: ptr("Go"), Proficiency: ptr(-1)})
	assertStatus(t, err, 400)

	skill, err := svc.Create(ctx, service.SkillInput{Name: ptr("Go"), Proficiency: ptr(100)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	patched, err := svc.Patch(ctx, skill.ID, service.SkillInput{Proficiency: ptr(0)})
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if patched.Name != "Go" || patched.Proficiency != 0 {
		t.Fatalf("unexpected patch result %+v", patched)
	}

	_, err = svc.Patch(ctx, skill.ID, service.SkillInput{Name: ptr("  ")})
	assertStatus(t, err, 400)
	if kept, _ := svc.Get(ctx, skill.ID); kept.Name != "Go" {
		t.Fatalf("blank name must not be stored, got %q", kept.Name)
	}

	_, err = svc.Replace(ctx, "", service.SkillInput{Name: ptr("Go"), Proficiency: ptr(5)})
	assertStatus(t, err, 400)

	assertStatus(t, svc.Delete(ctx, ""), 400)
	if err := svc.Delete(ctx, skill.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = svc.Get(ctx, skill.ID)
	assertStatus(t, err, 404)
}

func TestAboutService_DefaultAndUpsert(t *testing.T) {
	store := repositorytest.NewStore()
	svc := service.NewAboutService(store.About(), nil, nil, nil)
	ctx := context.Background()

	_, created, err := svc.Upsert(ctx, service.AboutInput{Bio: ptr("bio")})
	assertStatus(t, err, 400)
	if created {
		t.Fatal("failed upsert must not report creation")
	}

	def, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if def.Bio != domain.DefaultAbout().Bio || def.ID == "" {
		t.Fatalf("expected default about record, got %+v", def)
	}

	updated, created, err := svc.Upsert(ctx, service.AboutInput{
		Bio:          ptr("New bio"),
		ProfileImage: ptr("/me.png"),
		Email:        ptr("me@example.com"),
		SocialLinks:  map[string]string{"github": "https://github.com/me"},
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if created {
		t.Fatal("expected update of the existing record")
	}
	if updated.ID != def.ID || updated.Location != def.Location || updated.SocialLinks["github"] == "" {
		t.Fatalf("unexpected upsert result %+v", updated)
	}
}

func TestAboutService_UpsertCreates(t *testing.T) {
	store := repositorytest.NewStore()
	svc := service.NewAboutService(store.About(), nil, nil, nil)

	about, created, err := svc.Upsert(context.Background(), service.AboutInput{
		Bio:          ptr("bio"),
		ProfileImage: ptr("/me.png"),
		Email:        ptr("me@example.com"),
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !created || about.SocialLinks == nil {
		t.Fatalf("expected created record with empty social links, got %+v (created=%v)", about, created)
	}
}

func TestTagService_Conflict(t *testing.T) {
	store := repositorytest.NewStore()
	svc := service.NewTagService(store.Tags())
	ctx := context.Background()

	_, err := svc.Create(ctx, "   ")
	assertStatus(t, err, 400)

	tag, err := svc.Create(ctx, " go ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tag.Name != "go" {
		t.Fatalf("expected trimmed name, got %q", tag.Name)
	}

	_, err = svc.Create(ctx, "go")
	assertStatus(t, err, 409)
	var de *apperrors.DomainError
	errors.As(err, &de)
	if _, ok := de.Details["tag"]; !ok {
		t.Fatalf("expected conflicting tag in details, got %+v", de.Details)
	}
}

func TestContactService_SubmitPublishesEvent(t *testing.T) {
	store := repositorytest.NewStore()
	dispatcher := events.NewInMemoryDispatcher(nil)
	var received []events.ContactReceivedPayload
	dispatcher.Subscribe(events.EventContactReceived, func(_ context.Context, e events.Event) error {
		received = append(received, e.Payload.(events.ContactReceivedPayload))
		return nil
	})
	svc := service.NewContactService(store.Contacts(), dispatcher, nil)
	ctx := context.Background()

	_, err := svc.Submit(ctx, service.ContactInput{Name: "Ada", Email: "ada@example.com"})
	assertStatus(t, err, 400)

	msg, err := svc.Submit(ctx, service.ContactInput{Name: "Ada", Email: "ada@example.com", Message: "Hello there"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(received) != 1 || received[0].MessageID != msg.ID || received[0].MessagePreview != "Hello there" {
		t.Fatalf("unexpected events %+v", received)
	}

	_, err = svc.MarkRead(ctx, msg.ID, nil)
	assertStatus(t, err, 400)
	read, err := svc.MarkRead(ctx, msg.ID, ptr(true))
	if err != nil || !read.Read {
		t.Fatalf("expected read message, got %+v, %v", read, err)
	}
	_, err = svc.MarkRead(ctx, "00000000-0000-0000-0000-000000000000", ptr(true))
	assertStatus(t, err, 404)
}

type mapStore struct{ data map[string][]byte }

func (m *mapStore) Get(_ context.Context, key string) ([]byte, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, cache.ErrMiss
}

func (m *mapStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mapStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func TestProjectService_CacheRevalidation(t *testing.T) {
	store := repositorytest.NewStore()
	dispatcher := events.NewInMemoryDispatcher(nil)
	listings := cache.NewListings(&mapStore{data: map[string][]byte{}}, time.Minute, nil)
	listings.Subscribe(dispatcher)
	svc := service.NewProjectService(store.Projects(), listings, dispatcher, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, service.ProjectInput{Title: ptr("only title")})
	assertStatus(t, err, 400)

	list, err := svc.List(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %v, %v", list, err)
	}

	if _, err := svc.Create(ctx, service.ProjectInput{
		Title:        ptr("Portfolio"),
		Description:  ptr("This site"),
		Image:        ptr("/p.png"),
		Technologies: []string{"go"},
		GithubURL:    ptr("https://github.com/me/portfolio"),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err = svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected cached listing to be invalidated by the create, got %d projects", len(list))
	}

	calls := store.Calls()
	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("List: %v", err)
	}
	if store.Calls() != calls {
		t.Fatal("expected second list to be served from cache")
	}
}
