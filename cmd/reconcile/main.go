// Command reconcile finishes interrupted file deletions. A delete
// tombstones the row before removing the blob, so a crash in between
// leaves a tombstone whose blob may still exist. This job purges
// tombstones older than the grace period and reports live rows whose
// blob has gone missing.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"secureshare/internal/config"
	"secureshare/internal/database"
	"secureshare/internal/domain/file"
	"secureshare/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	store, err := storage.NewDiskStore(cfg.DataDir)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	repo := file.NewRepository(db)

	purged, failed := purgeTombstones(ctx, repo, store, cfg.DeleteGracePeriod)
	orphans := reportMissingBlobs(ctx, repo, store)

	log.Printf("level=info component=reconcile event=done purged=%d failed=%d missing_blobs=%d",
		purged, failed, orphans)
	if failed > 0 {
		log.Fatal("reconcile finished with failures")
	}
}

func purgeTombstones(ctx context.Context, repo file.Repository, store storage.Store, grace time.Duration) (purged, failed int) {
	cutoff := time.Now().Add(-grace)
	tombstoned, err := repo.ListDeletedBefore(ctx, cutoff)
	if err != nil {
		log.Fatal(err)
	}

	for _, f := range tombstoned {
		if err := store.Remove(ctx, []string{f.StoragePath}); err != nil {
			log.Printf("level=error component=reconcile event=blob_remove_failed file_id=%s err=%v", f.ID, err)
			failed++
			continue
		}
		if err := repo.HardDelete(ctx, f.ID); err != nil {
			log.Printf("level=error component=reconcile event=hard_delete_failed file_id=%s err=%v", f.ID, err)
			failed++
			continue
		}
		log.Printf("level=info component=reconcile event=purged file_id=%s path=%s", f.ID, f.StoragePath)
		purged++
	}
	return purged, failed
}

// reportMissingBlobs only logs: a live row without a blob needs a
// human decision, not an automatic delete.
func reportMissingBlobs(ctx context.Context, repo file.Repository, store storage.Store) (orphans int) {
	live, err := repo.ListAll(ctx)
	if err != nil {
		log.Fatal(err)
	}

	for _, f := range live {
		ok, err := store.Exists(ctx, f.StoragePath)
		if err != nil {
			log.Printf("level=error component=reconcile event=exists_check_failed file_id=%s err=%v", f.ID, err)
			continue
		}
		if !ok {
			log.Printf("level=warn component=reconcile event=missing_blob file_id=%s path=%s", f.ID, f.StoragePath)
			orphans++
		}
	}
	return orphans
}
