// Command main recomputes denormalized author counters from blog rows.
//
// Counter updates are applied as a best-effort second phase after blog
// writes, so they can drift when that phase fails. This command restores
// consistency by aggregating the blogs table and rewriting each author's
// total_posts and total_reads.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/repository"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Report drift without writing")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	blogRepo := repository.NewBlogRepository(db)
	userRepo := repository.NewUserRepository(db)

	stats, err := blogRepo.AggregateAuthorStats(ctx)
	if err != nil {
		log.Fatalf("Failed to aggregate author stats: %v", err)
	}

	var updated int
	for _, st := range stats {
		if *dryRun {
			log.Printf("author %d: total_posts=%d total_reads=%d", st.AuthorID, st.TotalPosts, st.TotalReads)
			continue
		}
		if err := userRepo.SetCounters(ctx, st.AuthorID, st.TotalPosts, st.TotalReads); err != nil {
			log.Printf("Failed to update author %d: %v", st.AuthorID, err)
			continue
		}
		updated++
	}

	if *dryRun {
		log.Printf("Dry run complete, %d authors aggregated", len(stats))
		return
	}
	log.Printf("Reconciliation complete, %d of %d authors updated", updated, len(stats))
}
