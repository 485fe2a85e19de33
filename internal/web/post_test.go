package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func postBody(title, content string) url.Values {
	return url.Values{
		"title":   {title},
		"content": {content},
	}
}

func TestCreatePost(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "corey", "corey@example.com", "hunter22")

	w := env.postForm(t, "/post/new", postBody("First Light", "Some words."), env.sessionCookie(t, user.ID))
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d\nBody: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/post/") {
		t.Fatalf("expected redirect to the new post, got %s", loc)
	}

	count, err := env.postRepo.Count(context.Background())
	if err != nil {
		t.Fatalf("failed to count posts: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 post, got %d", count)
	}
}

func TestCreatePostRequiresAuth(t *testing.T) {
	env := setupTestEnv(t)

	w := env.postForm(t, "/post/new", postBody("Drive-by", "No session."))
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302 to login, got %d", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Location"), "/login?next=") {
		t.Errorf("expected login redirect, got %s", w.Header().Get("Location"))
	}
}

func TestShowPost(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "corey", "corey@example.com", "hunter22")
	post := env.createPost(t, user.ID, "Hello", "World")

	w := env.get(t, fmt.Sprintf("/post/%d", post.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Hello") {
		t.Error("post page should contain the title")
	}

	w = env.get(t, "/post/99999")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown post, got %d", w.Code)
	}
}

func TestUpdatePostOwnership(t *testing.T) {
	env := setupTestEnv(t)
	author := env.createUser(t, "corey", "corey@example.com", "hunter22")
	other := env.createUser(t, "dana", "dana@example.com", "hunter22")
	post := env.createPost(t, author.ID, "Original", "Body")

	updatePath := fmt.Sprintf("/post/%d/update", post.ID)

	// A different authenticated user is rejected as forbidden and the
	// post stays unchanged.
	w := env.postForm(t, updatePath, postBody("Hijacked", "Body"), env.sessionCookie(t, other.ID))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-author, got %d", w.Code)
	}

	unchanged, err := env.postRepo.FindByID(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("failed to reload post: %v", err)
	}
	if unchanged.Title != "Original" {
		t.Errorf("post must be unchanged after forbidden update, got title %q", unchanged.Title)
	}

	// The author succeeds.
	w = env.postForm(t, updatePath, postBody("Edited", "Body"), env.sessionCookie(t, author.ID))
	assertRedirect(t, w, fmt.Sprintf("/post/%d", post.ID))

	updated, err := env.postRepo.FindByID(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("failed to reload post: %v", err)
	}
	if updated.Title != "Edited" {
		t.Errorf("expected updated title, got %q", updated.Title)
	}
	if !updated.DatePosted.Equal(unchanged.DatePosted) {
		t.Error("date_posted must not change on update")
	}
}

func TestDeletePostOwnership(t *testing.T) {
	env := setupTestEnv(t)
	author := env.createUser(t, "corey", "corey@example.com", "hunter22")
	other := env.createUser(t, "dana", "dana@example.com", "hunter22")
	post := env.createPost(t, author.ID, "Doomed", "Body")

	deletePath := fmt.Sprintf("/post/%d/delete", post.ID)

	w := env.postForm(t, deletePath, nil, env.sessionCookie(t, other.ID))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-author, got %d", w.Code)
	}
	if count, _ := env.postRepo.Count(context.Background()); count != 1 {
		t.Fatalf("post must survive a forbidden delete, count=%d", count)
	}

	w = env.postForm(t, deletePath, nil, env.sessionCookie(t, author.ID))
	assertRedirect(t, w, "/home")
	if count, _ := env.postRepo.Count(context.Background()); count != 0 {
		t.Errorf("expected hard delete, count=%d", count)
	}
}

func TestHomePagination(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "corey", "corey@example.com", "hunter22")

	for i := 1; i <= 12; i++ {
		env.createPost(t, user.ID, fmt.Sprintf("Post %02d", i), "Body")
	}

	// Page 1 carries the 5 newest posts.
	posts, pagination, err := env.postService.ListPage(context.Background(), 1)
	if err != nil {
		t.Fatalf("failed to list page 1: %v", err)
	}
	if len(posts) != 5 {
		t.Fatalf("expected 5 posts on page 1, got %d", len(posts))
	}
	if posts[0].Title != "Post 12" || posts[4].Title != "Post 08" {
		t.Errorf("page 1 order wrong: first=%q last=%q", posts[0].Title, posts[4].Title)
	}
	if pagination.TotalPages != 3 || pagination.Total != 12 {
		t.Errorf("unexpected pagination: %+v", pagination)
	}

	// Page 3 carries the 2 oldest.
	posts, _, err = env.postService.ListPage(context.Background(), 3)
	if err != nil {
		t.Fatalf("failed to list page 3: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts on page 3, got %d", len(posts))
	}
	if posts[0].Title != "Post 02" || posts[1].Title != "Post 01" {
		t.Errorf("page 3 order wrong: %q, %q", posts[0].Title, posts[1].Title)
	}

	// Out-of-range pages come back empty, not as an error.
	posts, _, err = env.postService.ListPage(context.Background(), 9)
	if err != nil {
		t.Fatalf("out-of-range page errored: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("expected empty page, got %d posts", len(posts))
	}

	// The HTTP surface reads the same page parameter.
	w := env.get(t, "/home?page=3")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Post 01") || strings.Contains(body, "Post 12") {
		t.Error("page 3 should render the oldest posts only")
	}
}

func TestUserPostsPage(t *testing.T) {
	env := setupTestEnv(t)
	corey := env.createUser(t, "corey", "corey@example.com", "hunter22")
	dana := env.createUser(t, "dana", "dana@example.com", "hunter22")

	env.createPost(t, corey.ID, "By Corey", "Body")
	env.createPost(t, dana.ID, "By Dana", "Body")

	w := env.get(t, "/user/corey")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "By Corey") || strings.Contains(body, "By Dana") {
		t.Error("author page should only list that author's posts")
	}

	w = env.get(t, "/user/nobody")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown author, got %d", w.Code)
	}
}

func TestUnknownRouteRenders404(t *testing.T) {
	env := setupTestEnv(t)

	w := env.get(t, "/no/such/page")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Page Not Found") {
		t.Error("expected the rendered error page, not a bare 404")
	}
}

func TestPostTitleLengthValidated(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "corey", "corey@example.com", "hunter22")

	long := strings.Repeat("x", 120)
	w := env.postForm(t, "/post/new", postBody(long, "Body"), env.sessionCookie(t, user.ID))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an overlong title, got %d", w.Code)
	}
	if count, _ := env.postRepo.Count(context.Background()); count != 0 {
		t.Errorf("invalid post must not be persisted, count=%d", count)
	}
}
