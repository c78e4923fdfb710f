package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"hirelens/applicant-evaluator/internal/config"
	"hirelens/applicant-evaluator/internal/services"
)

// Ingests job-context documents (job descriptions, scoring rubrics) into the
// Qdrant index the scoring stage retrieves from.
func main() {
	log.Println("🚀 Starting job-context document ingestion...")

	cfg := config.Load()

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	contextIndex, err := services.NewContextIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := contextIndex.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	chunker := services.NewTextChunker()

	ctx := context.Background()

	documents := []struct {
		Path    string
		DocType string
		Name    string
	}{
		{
			Path:    "./reference_docs/job_description.pdf",
			DocType: "job_description",
			Name:    "Job Description",
		},
		{
			Path:    "./reference_docs/scoring_rubric.pdf",
			DocType: "scoring_rubric",
			Name:    "Candidate Scoring Rubric",
		},
	}

	successCount := 0
	failCount := 0

	for _, doc := range documents {
		log.Printf("\n📄 Processing: %s", doc.Name)
		log.Printf("   Path: %s", doc.Path)
		log.Printf("   Type: %s", doc.DocType)

		if _, err := os.Stat(doc.Path); os.IsNotExist(err) {
			log.Printf("   ⚠️  File not found, skipping...")
			failCount++
			continue
		}

		log.Printf("   📖 Extracting text...")
		text, err := services.ExtractPDFText(doc.Path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Extracted %d characters", len(text))

		log.Printf("   ✂️  Chunking text...")
		chunks := chunker.ChunkText(text, 1000, 200)
		log.Printf("   ✅ Created %d chunks", len(chunks))

		log.Printf("   🔄 Embedding and storing chunks...")
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", i+1, err)
				continue
			}

			docID := fmt.Sprintf("%s_chunk_%d", doc.DocType, i)

			err = contextIndex.UpsertDocument(ctx, docID, doc.DocType, chunk, embedding)
			if err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}

			if (i+1)%5 == 0 || i == len(chunks)-1 {
				log.Printf("   📊 Progress: %d/%d chunks stored", i+1, len(chunks))
			}
		}

		log.Printf("   ✅ Successfully ingested %s", doc.Name)
		successCount++
	}

	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some documents failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All documents ingested successfully!")
}
