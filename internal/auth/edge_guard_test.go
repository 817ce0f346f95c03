package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/domain"
)

type countingVerifier struct {
	inner auth.TokenVerifier
	calls int
}

func (v *countingVerifier) Verify(token string) (*auth.Claims, error) {
	v.calls++
	return v.inner.Verify(token)
}

func guardedApp(verifier auth.TokenVerifier) *fiber.App {
	guard := auth.NewEdgeGuard(verifier, nil)
	app := newTestApp()
	app.Use(guard.Handle)
	ok := func(c *fiber.Ctx) error { return c.SendString("page:" + c.Path()) }
	app.Get("/", ok)
	app.Get("/about", ok)
	app.Get("/administrator", ok)
	app.Get("/admin", ok)
	app.Get("/admin/*", ok)
	return app
}

func navigate(t *testing.T, app *fiber.App, path, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: cookie})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func tokenCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func TestEdgeGuard_PassesNonAdminPaths(t *testing.T) {
	verifier := &countingVerifier{inner: newCodec(t, "secret-a", issuedAt)}
	app := guardedApp(verifier)

	for _, path := range []string{"/", "/about", "/administrator"} {
		resp := navigate(t, app, path, "")
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}
	if verifier.calls != 0 {
		t.Fatalf("expected no verification outside /admin, got %d calls", verifier.calls)
	}
}

func TestEdgeGuard_LoginAndRegisterAlwaysPass(t *testing.T) {
	verifier := &countingVerifier{inner: newCodec(t, "secret-a", issuedAt)}
	app := guardedApp(verifier)

	for _, path := range []string{"/admin/login", "/admin/register", "/admin/login/"} {
		for _, cookie := range []string{"", "garbage"} {
			resp := navigate(t, app, path, cookie)
			if resp.StatusCode != fiber.StatusOK {
				t.Errorf("%s (cookie %q): expected 200, got %d", path, cookie, resp.StatusCode)
			}
			if c := tokenCookie(resp); c != nil {
				t.Errorf("%s: login page must not touch the cookie", path)
			}
		}
	}
	if verifier.calls != 0 {
		t.Fatalf("expected no verification on open pages, got %d calls", verifier.calls)
	}
}

func TestEdgeGuard_MissingCookieRedirects(t *testing.T) {
	app := guardedApp(newCodec(t, "secret-a", issuedAt))

	for _, path := range []string{"/admin", "/admin/", "/admin/projects", "/ADMIN/dashboard", "/Admin", "/aDmin/projects"} {
		resp := navigate(t, app, path, "")
		if resp.StatusCode != fiber.StatusTemporaryRedirect {
			t.Fatalf("%s: expected 307, got %d", path, resp.StatusCode)
		}
		if loc := resp.Header.Get(fiber.HeaderLocation); loc != auth.LoginPath {
			t.Fatalf("%s: expected redirect to %s, got %q", path, auth.LoginPath, loc)
		}
		if c := tokenCookie(resp); c != nil {
			t.Fatalf("%s: missing cookie must not be cleared", path)
		}
	}
}

func TestEdgeGuard_InvalidCookieRedirectsAndClears(t *testing.T) {
	codec := newCodec(t, "secret-a", issuedAt)
	expired, _, err := newCodec(t, "secret-a", issuedAt.Add(-8*auth.TokenTTL)).Issue("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	app := guardedApp(codec)

	for _, cookie := range []string{"garbage", expired} {
		resp := navigate(t, app, "/admin/projects", cookie)
		if resp.StatusCode != fiber.StatusTemporaryRedirect {
			t.Fatalf("expected 307, got %d", resp.StatusCode)
		}
		if loc := resp.Header.Get(fiber.HeaderLocation); loc != auth.LoginPath {
			t.Fatalf("expected redirect to %s, got %q", auth.LoginPath, loc)
		}
		cleared := tokenCookie(resp)
		if cleared == nil {
			t.Fatal("expected token cookie to be cleared")
		}
		if cleared.Value != "" {
			t.Fatalf("expected empty cookie value, got %q", cleared.Value)
		}
		if cleared.Expires.After(time.Unix(0, 0)) {
			t.Fatalf("expected epoch expiry, got %s", cleared.Expires)
		}
		if cleared.Path != "/" {
			t.Fatalf("expected cookie path /, got %q", cleared.Path)
		}
	}
}

func TestEdgeGuard_ValidCookiePasses(t *testing.T) {
	codec := newCodec(t, "secret-a", issuedAt)
	token, _, err := codec.Issue("user-1", domain.Role("editor"))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	app := guardedApp(codec)

	for _, path := range []string{"/admin", "/admin/blog/new"} {
		resp := navigate(t, app, path, token)
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}
