// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumBlogs    int
	ShouldClean bool
}

var tagPool = []string{
	"programming", "golang", "databases", "design", "travel", "food",
	"music", "writing", "career", "productivity", "self-improvement",
	"startups", "open-source", "devops", "cloud", "testing",
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d blogs...", opts.NumUsers, opts.NumBlogs)

	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	blogs, err := createBlogs(db, users, opts.NumBlogs)
	if err != nil {
		return fmt.Errorf("failed to create blogs: %w", err)
	}
	log.Printf("%d test blogs created", len(blogs))

	if err := backfillCounters(db); err != nil {
		return fmt.Errorf("failed to backfill author counters: %w", err)
	}

	log.Println("Database seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	if err := db.Exec("DELETE FROM blogs").Error; err != nil {
		return err
	}
	return db.Exec("DELETE FROM users").Error
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		username := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", i)
		user := models.User{
			Fullname:   name,
			Email:      fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			Username:   username,
			Password:   string(hash),
			ProfileImg: fmt.Sprintf("https://picsum.photos/seed/%s/384/384", username),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createBlogs(db *gorm.DB, users []models.User, count int) ([]models.Blog, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to attribute blogs to")
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	blogs := make([]models.Blog, 0, count)
	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		title := gofakeit.Sentence(4 + r.Intn(4))
		title = strings.TrimSuffix(title, ".")

		paragraphs := make([]models.ContentBlock, 0, 3)
		for p := 0; p < 1+r.Intn(3); p++ {
			text, _ := json.Marshal(map[string]string{
				"text": gofakeit.Paragraph(1, 3, 8, " "),
			})
			paragraphs = append(paragraphs, models.ContentBlock{Type: "paragraph", Data: text})
		}

		tags := make(models.TagList, 0, 3)
		for _, idx := range r.Perm(len(tagPool))[:1+r.Intn(3)] {
			tags = append(tags, tagPool[idx])
		}

		blog := models.Blog{
			BlogID:      fmt.Sprintf("%s-%d", slugBase(title), i),
			Title:       title,
			Description: gofakeit.Sentence(10),
			Banner:      fmt.Sprintf("https://picsum.photos/seed/blog-%d/1280/720", i),
			Tags:        tags,
			Content:     models.BlogContent{Blocks: paragraphs},
			Draft:       r.Intn(5) == 0,
			TotalReads:  int64(r.Intn(500)),
			TotalLikes:  int64(r.Intn(100)),
			AuthorID:    author.ID,
			PublishedAt: time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		}
		if err := db.Omit("Author").Create(&blog).Error; err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}
	return blogs, nil
}

func slugBase(title string) string {
	slug := strings.ToLower(title)
	slug = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, slug)
	return strings.Join(strings.Fields(slug), "-")
}

// backfillCounters makes the denormalized author counters consistent with
// the seeded blogs.
func backfillCounters(db *gorm.DB) error {
	return db.Exec(`
		UPDATE users SET
			total_posts = COALESCE(agg.posts, 0),
			total_reads = COALESCE(agg.reads, 0)
		FROM (
			SELECT author_id,
			       COUNT(*) FILTER (WHERE draft = false) AS posts,
			       SUM(total_reads) AS reads
			FROM blogs
			GROUP BY author_id
		) agg
		WHERE users.id = agg.author_id
	`).Error
}
