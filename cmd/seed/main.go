package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"moviematch-be/internal/entity"
	"moviematch-be/internal/repository/implementation"
	"moviematch-be/pkg/database"

	"github.com/joho/godotenv"
)

// seedMovie mirrors the catalog export format (MovieLens ids with TMDB
// metadata).
type seedMovie struct {
	Id          string  `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	GenreIds    []int   `json:"genre_ids"`
	Popularity  float64 `json:"popularity"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
}

func main() {
	filePath := flag.String("file", "data/movies.json", "path to the catalog JSON export")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	raw, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("Error: Failed to read %s: %v", *filePath, err)
	}

	var movies []seedMovie
	if err := json.Unmarshal(raw, &movies); err != nil {
		log.Fatalf("Error: Failed to parse catalog file: %v", err)
	}

	repo := implementation.NewMovieRepository(db)
	ctx := context.Background()

	seeded := 0
	for _, m := range movies {
		err := repo.Create(ctx, &entity.Movie{
			Id:          m.Id,
			Title:       m.Title,
			Overview:    m.Overview,
			PosterPath:  m.PosterPath,
			ReleaseDate: m.ReleaseDate,
			GenreIds:    m.GenreIds,
			Popularity:  m.Popularity,
			VoteAverage: m.VoteAverage,
			VoteCount:   m.VoteCount,
		})
		if err != nil {
			log.Printf("Warn: Skipping movie %s: %v", m.Id, err)
			continue
		}
		seeded++
	}

	log.Printf("Seeded %d of %d movies", seeded, len(movies))
}
