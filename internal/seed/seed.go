package seed

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/soundhaven/musicstore/internal/models"
)

// Seeder loads the demo catalog. Seeding is skipped when albums already
// exist, so repeated calls do not duplicate the catalog.
type Seeder struct {
	DB *gorm.DB
}

type Result struct {
	Artists int  `json:"artists"`
	Genres  int  `json:"genres"`
	Albums  int  `json:"albums"`
	Tracks  int  `json:"tracks"`
	Skipped bool `json:"skipped"`
}

type seedTrack struct {
	title    string
	duration int
}

type seedAlbum struct {
	title  string
	year   int
	genre  string
	price  float64
	tracks []seedTrack
}

type seedArtist struct {
	name    string
	country string
	albums  []seedAlbum
}

var demoCatalog = []seedArtist{
	{
		name: "Velvet Meridian", country: "United Kingdom",
		albums: []seedAlbum{
			{
				title: "Northern Glass", year: 2014, genre: "Rock", price: 11.99,
				tracks: []seedTrack{
					{"Glasshouse", 254}, {"Mile After Mile", 198},
					{"Northern Lights", 312}, {"Last Ferry Home", 241},
				},
			},
			{
				title: "Static Bloom", year: 2018, genre: "Rock", price: 9.99,
				tracks: []seedTrack{
					{"Bloom", 221}, {"Wire and Thread", 187}, {"Afterimage", 263},
				},
			},
		},
	},
	{
		name: "Lena Okafor", country: "Nigeria",
		albums: []seedAlbum{
			{
				title: "Harbour Songs", year: 2020, genre: "Jazz", price: 12.49,
				tracks: []seedTrack{
					{"Harbour at Dusk", 334}, {"Tidewater", 289},
					{"Brass Lanterns", 305}, {"Slow Current", 276},
				},
			},
		},
	},
	{
		name: "Paper Satellites", country: "Canada",
		albums: []seedAlbum{
			{
				title: "Low Orbit", year: 2016, genre: "Electronic", price: 8.99,
				tracks: []seedTrack{
					{"Apogee", 244}, {"Signal Drift", 212}, {"Re-entry", 331},
				},
			},
			{
				title: "Ground Control", year: 2021, genre: "Electronic", price: 10.99,
				tracks: []seedTrack{
					{"Telemetry", 205}, {"Countdown", 183},
					{"Stationary Point", 297}, {"Splashdown", 228},
				},
			},
		},
	},
	{
		name: "Mara Lindqvist", country: "Sweden",
		albums: []seedAlbum{
			{
				title: "Winter Rooms", year: 2019, genre: "Classical", price: 13.99,
				tracks: []seedTrack{
					{"First Snow", 402}, {"Candle Study", 365}, {"Thaw", 418},
				},
			},
		},
	},
	{
		name: "Ocho Norte", country: "Mexico",
		albums: []seedAlbum{
			{
				title: "Calle Ocho", year: 2015, genre: "Hip-Hop", price: 9.49,
				tracks: []seedTrack{
					{"Esquina", 201}, {"Ruta Norte", 194}, {"Medianoche", 233},
				},
			},
			{
				title: "Segunda Vida", year: 2022, genre: "Hip-Hop", price: 11.49,
				tracks: []seedTrack{
					{"Renacer", 216}, {"Barrio Eterno", 249}, {"Despedida", 262},
				},
			},
		},
	},
}

func (s *Seeder) SeedCatalog(ctx context.Context) (*Result, error) {
	var existing int64
	if err := s.DB.WithContext(ctx).Model(&models.Album{}).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("seed: count albums: %w", err)
	}
	if existing > 0 {
		return &Result{Skipped: true}, nil
	}

	res := &Result{}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		genres := map[string]models.Genre{}
		for _, artist := range demoCatalog {
			a := models.Artist{Name: artist.name, Country: artist.country}
			if err := tx.Create(&a).Error; err != nil {
				return fmt.Errorf("seed artist %q: %w", artist.name, err)
			}
			res.Artists++

			for _, album := range artist.albums {
				g, ok := genres[album.genre]
				if !ok {
					g = models.Genre{Name: album.genre}
					if err := tx.Create(&g).Error; err != nil {
						return fmt.Errorf("seed genre %q: %w", album.genre, err)
					}
					genres[album.genre] = g
					res.Genres++
				}

				al := models.Album{
					Title:       album.title,
					ReleaseYear: album.year,
					ArtistID:    a.ID,
					GenreID:     g.ID,
					Price:       album.price,
				}
				if err := tx.Create(&al).Error; err != nil {
					return fmt.Errorf("seed album %q: %w", album.title, err)
				}
				res.Albums++

				for _, track := range album.tracks {
					t := models.Track{
						Title:           track.title,
						DurationSeconds: track.duration,
						AlbumID:         al.ID,
					}
					if err := tx.Create(&t).Error; err != nil {
						return fmt.Errorf("seed track %q: %w", track.title, err)
					}
					res.Tracks++
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
