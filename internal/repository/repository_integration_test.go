package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/persistence"
	"github.com/spec-kit/portfolio-service/internal/repository"
)

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("portfolio"),
		postgres.WithUsername("portfolio"),
		postgres.WithPassword("portfolio"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := persistence.RunMigrations(ctx, pool, zap.NewNop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}

func TestRepositories(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	t.Run("users", func(t *testing.T) {
		users := repository.NewUserRepository(pool)
		user := &domain.User{Email: "owner@example.com", PasswordHash: "hash", Role: domain.Role("viewer")}
		if err := users.Create(ctx, user); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if user.ID == "" {
			t.Fatal("expected generated id")
		}

		dup := &domain.User{Email: "owner@example.com", PasswordHash: "hash", Role: domain.RoleAdmin}
		if err := users.Create(ctx, dup); !repository.IsUniqueViolation(err) {
			t.Fatalf("expected unique violation, got %v", err)
		}

		if _, err := users.GetByEmail(ctx, "missing@example.com"); !errors.Is(err, pgx.ErrNoRows) {
			t.Fatalf("expected ErrNoRows, got %v", err)
		}

		updated, err := users.SetRoleForAll(ctx, domain.RoleAdmin)
		if err != nil {
			t.Fatalf("SetRoleForAll: %v", err)
		}
		if updated != 1 {
			t.Fatalf("expected 1 updated user, got %d", updated)
		}

		got, err := users.GetByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Role != domain.RoleAdmin {
			t.Fatalf("expected admin role, got %q", got.Role)
		}
	})

	t.Run("projects ordered", func(t *testing.T) {
		projects := repository.NewProjectRepository(pool)
		for i, title := range []string{"second", "first"} {
			p := &domain.Project{Title: title, Description: "d", Image: "/img.png", GithubURL: "https://github.com/x", Order: 1 - i}
			if err := projects.Create(ctx, p); err != nil {
				t.Fatalf("Create: %v", err)
			}
		}

		list, err := projects.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(list) != 2 || list[0].Title != "first" {
			t.Fatalf("expected projects ordered by order asc, got %+v", list)
		}
		if list[0].Technologies == nil {
			t.Fatal("expected empty technologies slice")
		}

		if err := projects.Delete(ctx, list[0].ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if err := projects.Delete(ctx, list[0].ID); !errors.Is(err, pgx.ErrNoRows) {
			t.Fatalf("expected ErrNoRows on second delete, got %v", err)
		}
	})

	t.Run("blog tags", func(t *testing.T) {
		blog := repository.NewBlogRepository(pool)
		tags := repository.NewTagRepository(pool)

		post := &domain.BlogPost{Title: "Hello", Description: "World", Published: true}
		if err := blog.Create(ctx, post, []string{"sql", "go"}); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if len(post.Tags) != 2 || post.Tags[0].Name != "go" || post.Tags[1].Name != "sql" {
			t.Fatalf("expected tags go, sql in name order, got %+v", post.Tags)
		}
		fetched, err := blog.GetByID(ctx, post.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		for i := range fetched.Tags {
			if fetched.Tags[i].ID != post.Tags[i].ID {
				t.Fatalf("write and read disagree on tag order: %+v vs %+v", post.Tags, fetched.Tags)
			}
		}

		draft := &domain.BlogPost{Title: "Draft", Description: "wip"}
		if err := blog.Create(ctx, draft, []string{"go"}); err != nil {
			t.Fatalf("Create draft: %v", err)
		}

		all, err := tags.List(ctx)
		if err != nil {
			t.Fatalf("List tags: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("expected tag reuse by name, got %d tags", len(all))
		}

		published, err := blog.List(ctx, true)
		if err != nil {
			t.Fatalf("List published: %v", err)
		}
		if len(published) != 1 || published[0].ID != post.ID {
			t.Fatalf("expected only the published post, got %+v", published)
		}

		post.Title = "Hello again"
		if err := blog.Update(ctx, post, nil); err != nil {
			t.Fatalf("Update without tags: %v", err)
		}
		if len(post.Tags) != 2 {
			t.Fatalf("expected links untouched, got %d", len(post.Tags))
		}

		if err := blog.Update(ctx, post, []string{"rust"}); err != nil {
			t.Fatalf("Update with tags: %v", err)
		}
		reloaded, err := blog.GetByID(ctx, post.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if len(reloaded.Tags) != 1 || reloaded.Tags[0].Name != "rust" {
			t.Fatalf("expected links replaced, got %+v", reloaded.Tags)
		}

		if err := blog.Delete(ctx, post.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := blog.GetByID(ctx, post.ID); !errors.Is(err, pgx.ErrNoRows) {
			t.Fatalf("expected ErrNoRows after delete, got %v", err)
		}

		if err := tags.Create(ctx, &domain.Tag{Name: "go"}); !repository.IsUniqueViolation(err) {
			t.Fatalf("expected unique violation for duplicate tag, got %v", err)
		}
	})

	t.Run("about social links", func(t *testing.T) {
		about := repository.NewAboutRepository(pool)
		if _, err := about.GetFirst(ctx); !errors.Is(err, pgx.ErrNoRows) {
			t.Fatalf("expected ErrNoRows before creation, got %v", err)
		}

		record := domain.DefaultAbout()
		record.SocialLinks["github"] = "https://github.com/me"
		if err := about.Create(ctx, record); err != nil {
			t.Fatalf("Create: %v", err)
		}

		got, err := about.GetFirst(ctx)
		if err != nil {
			t.Fatalf("GetFirst: %v", err)
		}
		if got.SocialLinks["github"] != "https://github.com/me" {
			t.Fatalf("unexpected social links %+v", got.SocialLinks)
		}
	})

	t.Run("contacts", func(t *testing.T) {
		contacts := repository.NewContactRepository(pool)
		msg := &domain.ContactMessage{Name: "Ada", Email: "ada@example.com", Message: "hi"}
		if err := contacts.Create(ctx, msg); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if msg.Read {
			t.Fatal("expected new message to be unread")
		}

		updated, err := contacts.SetRead(ctx, msg.ID, true)
		if err != nil {
			t.Fatalf("SetRead: %v", err)
		}
		if !updated.Read {
			t.Fatal("expected message marked read")
		}
	})
}
