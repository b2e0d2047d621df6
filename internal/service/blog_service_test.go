package service

import (
	"errors"
	"testing"

	"github.com/moojpayam/api/internal/models"
	"github.com/moojpayam/api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestBlogService(t *testing.T) *BlogService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.BlogPost{}, &models.BlogView{}); err != nil {
		t.Fatalf("auto migrate blog tables failed: %v", err)
	}
	return NewBlogService(repository.NewBlogRepository(db))
}

func TestBlogCreatePublishedStampsPublishedAt(t *testing.T) {
	s := newTestBlogService(t)
	post, err := s.Create(BlogCreateInput{
		Slug:        "sms-marketing-guide",
		Title:       "راهنمای بازاریابی پیامکی",
		Content:     "متن مقاله",
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if post.PublishedAt == nil {
		t.Fatalf("published post must carry a publish timestamp")
	}

	draft, err := s.Create(BlogCreateInput{
		Slug:  "draft-post-stamp",
		Title: "پیش‌نویس",
	})
	if err != nil {
		t.Fatalf("create draft failed: %v", err)
	}
	if draft.PublishedAt != nil {
		t.Fatalf("draft must not carry a publish timestamp")
	}
}

func TestBlogFirstPublishOnUpdate(t *testing.T) {
	s := newTestBlogService(t)
	post, err := s.Create(BlogCreateInput{Slug: "late-publish", Title: "انتشار با تاخیر"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	published := true
	updated, err := s.Update(post.ID, BlogUpdateInput{IsPublished: &published})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.PublishedAt == nil {
		t.Fatalf("first publish must stamp PublishedAt")
	}
	stamp := *updated.PublishedAt

	// Unpublish and republish keeps the original stamp.
	unpublished := false
	if _, err := s.Update(post.ID, BlogUpdateInput{IsPublished: &unpublished}); err != nil {
		t.Fatalf("unpublish failed: %v", err)
	}
	again, err := s.Update(post.ID, BlogUpdateInput{IsPublished: &published})
	if err != nil {
		t.Fatalf("republish failed: %v", err)
	}
	if again.PublishedAt == nil || !again.PublishedAt.Equal(stamp) {
		t.Fatalf("republish must keep the original publish timestamp")
	}
}

func TestBlogSlugRules(t *testing.T) {
	s := newTestBlogService(t)
	if _, err := s.Create(BlogCreateInput{Slug: "taken-slug", Title: "اول"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := s.Create(BlogCreateInput{Slug: "taken-slug", Title: "دوم"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("duplicate slug want ErrSlugExists got %v", err)
	}
	if _, err := s.Create(BlogCreateInput{Slug: "has space", Title: "بد"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("slug with space want ErrInvalidInput got %v", err)
	}
	// Persian slugs are part of the public URL scheme.
	if _, err := s.Create(BlogCreateInput{Slug: "آموزش-پیامک", Title: "فارسی"}); err != nil {
		t.Fatalf("persian slug should be accepted: %v", err)
	}
}

func TestBlogRecordViewDeduplicatesPerIP(t *testing.T) {
	s := newTestBlogService(t)
	post, err := s.Create(BlogCreateInput{
		Slug:        "view-dedup-post",
		Title:       "شمارش بازدید",
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	counted, err := s.RecordView(post.ID, "1.2.3.4")
	if err != nil {
		t.Fatalf("record view failed: %v", err)
	}
	if !counted {
		t.Fatalf("first view from an ip must count")
	}

	counted, err = s.RecordView(post.ID, "1.2.3.4")
	if err != nil {
		t.Fatalf("repeat view failed: %v", err)
	}
	if counted {
		t.Fatalf("repeat view from the same ip must not count")
	}

	counted, err = s.RecordView(post.ID, "5.6.7.8")
	if err != nil {
		t.Fatalf("second ip view failed: %v", err)
	}
	if !counted {
		t.Fatalf("view from a new ip must count")
	}

	got, err := s.GetByID(post.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Views != 2 {
		t.Fatalf("views want 2 got %d", got.Views)
	}
}

func TestBlogRecordViewRejectsDrafts(t *testing.T) {
	s := newTestBlogService(t)
	post, err := s.Create(BlogCreateInput{Slug: "draft-no-views", Title: "پیش‌نویس"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := s.RecordView(post.ID, "1.2.3.4"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("view on a draft want ErrNotFound got %v", err)
	}
}

func TestBlogPublicLookupsHideDrafts(t *testing.T) {
	s := newTestBlogService(t)
	post, err := s.Create(BlogCreateInput{Slug: "hidden-draft", Title: "مخفی"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := s.GetPublishedByID(post.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("draft by id want ErrNotFound got %v", err)
	}
	if _, err := s.GetPublishedBySlug("hidden-draft"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("draft by slug want ErrNotFound got %v", err)
	}
	// The dashboard still sees it.
	if _, err := s.GetByID(post.ID); err != nil {
		t.Fatalf("admin lookup failed: %v", err)
	}
}
