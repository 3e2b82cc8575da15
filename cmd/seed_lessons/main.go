package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"ai-coursegen-be/internal/entity"
	"ai-coursegen-be/internal/repository/implementation"
	"ai-coursegen-be/pkg/database"
	"ai-coursegen-be/pkg/embedding"
	"ai-coursegen-be/pkg/workflow"
)

// seed_lessons loads curated learning resources from JSON files and indexes
// them into the lesson embedding collection.
//
// Usage: go run ./cmd/seed_lessons [dir]
// Each *.json file holds an array of learning resources.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dir := "seeds/lessons"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	embedder := embedding.NewOllamaProvider(
		getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
	)

	repo := implementation.NewLessonEmbeddingRepository(db)

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(files) == 0 {
		color.Red("No seed files found in %s", dir)
		os.Exit(1)
	}

	ctx := context.Background()
	total := 0

	for _, file := range files {
		color.Cyan("Processing %s", file)

		raw, err := os.ReadFile(file)
		if err != nil {
			color.Red("  read failed: %v", err)
			continue
		}

		var resources []workflow.LearningResource
		if err := json.Unmarshal(raw, &resources); err != nil {
			color.Red("  parse failed: %v", err)
			continue
		}

		var batch []*entity.LessonEmbedding
		for _, res := range resources {
			doc := documentFor(res)

			embResp, err := embedder.Generate(doc, "retrieval_document")
			if err != nil {
				color.Red("  embed failed for %q: %v", res.Topic, err)
				continue
			}

			batch = append(batch, &entity.LessonEmbedding{
				Id:             uuid.New(),
				Document:       doc,
				EmbeddingValue: embResp.Embedding.Values,
				Resource:       res,
				CreatedAt:      time.Now(),
			})
		}

		if len(batch) == 0 {
			color.Yellow("  nothing to insert")
			continue
		}

		if err := repo.CreateBulk(ctx, batch); err != nil {
			color.Red("  insert failed: %v", err)
			continue
		}

		total += len(batch)
		color.Green("  inserted %d resources", len(batch))
	}

	color.Green("Done. Seeded %d lesson resources.", total)
}

func documentFor(res workflow.LearningResource) string {
	return fmt.Sprintf(`Subject: %s (grade %d)
Unit: %s
Topic: %s

%s`,
		res.Subject,
		res.Grade,
		res.Unit,
		res.Topic,
		res.Description,
	)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
