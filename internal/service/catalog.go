package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soundhaven/musicstore/internal/cache"
	"github.com/soundhaven/musicstore/internal/models"
	"github.com/soundhaven/musicstore/internal/repo"
	"github.com/soundhaven/musicstore/internal/search"
	"github.com/soundhaven/musicstore/internal/transport"
)

// AlbumResolver resolves an album id to its catalog metadata. The cart and
// order managers depend on this interface only, never on the catalog tables.
type AlbumResolver interface {
	ResolveAlbum(ctx context.Context, id uuid.UUID) (*transport.AlbumInfo, error)
}

type CatalogService struct {
	Repo  *repo.GormRepo
	Cache *cache.AlbumCache
	Index *search.AlbumIndex
}

func (s *CatalogService) ResolveAlbum(ctx context.Context, id uuid.UUID) (*transport.AlbumInfo, error) {
	if info, ok := s.Cache.Get(ctx, id); ok {
		return info, nil
	}

	album, err := s.Repo.GetAlbum(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("album %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("resolve album %s: %w", id, err)
	}

	artist, err := s.Repo.GetArtist(ctx, album.ArtistID)
	if err != nil {
		return nil, fmt.Errorf("resolve artist of album %s: %w", id, err)
	}
	genre, err := s.Repo.GetGenre(ctx, album.GenreID)
	if err != nil {
		return nil, fmt.Errorf("resolve genre of album %s: %w", id, err)
	}

	info := &transport.AlbumInfo{
		ID:     album.ID,
		Title:  album.Title,
		Price:  album.Price,
		Artist: artist.Name,
		Genre:  genre.Name,
	}
	s.Cache.Set(ctx, info)
	return info, nil
}

// ListAlbums returns albums that have at least one track, with artist and
// genre names resolved. Albums without tracks are not sellable yet and are
// hidden from the listing.
func (s *CatalogService) ListAlbums(ctx context.Context) ([]transport.AlbumListing, error) {
	albums, err := s.Repo.ListAlbums(ctx)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}

	listings := make([]transport.AlbumListing, 0, len(albums))
	for _, album := range albums {
		n, err := s.Repo.CountTracks(ctx, album.ID)
		if err != nil {
			return nil, fmt.Errorf("count tracks of %s: %w", album.ID, err)
		}
		if n == 0 {
			continue
		}
		listing, err := s.listing(ctx, album)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}

	if len(listings) == 0 {
		return nil, fmt.Errorf("no albums available: %w", ErrNotFound)
	}
	return listings, nil
}

func (s *CatalogService) GetAlbum(ctx context.Context, id uuid.UUID) (*transport.AlbumListing, error) {
	album, err := s.Repo.GetAlbum(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("album %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get album %s: %w", id, err)
	}
	listing, err := s.listing(ctx, *album)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (s *CatalogService) ListArtists(ctx context.Context) ([]models.Artist, error) {
	artists, err := s.Repo.ListArtists(ctx)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	if len(artists) == 0 {
		return nil, fmt.Errorf("no artists available: %w", ErrNotFound)
	}
	return artists, nil
}

func (s *CatalogService) GetArtist(ctx context.Context, id uuid.UUID) (*transport.ArtistDetail, error) {
	artist, err := s.Repo.GetArtist(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("artist %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get artist %s: %w", id, err)
	}

	albums, err := s.Repo.ListAlbumsByArtist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("albums of artist %s: %w", id, err)
	}

	detail := transport.ArtistDetail{
		ID:      artist.ID,
		Name:    artist.Name,
		Country: artist.Country,
		Albums:  []transport.ArtistAlbum{},
	}
	for _, album := range albums {
		n, err := s.Repo.CountTracks(ctx, album.ID)
		if err != nil {
			return nil, fmt.Errorf("count tracks of %s: %w", album.ID, err)
		}
		if n == 0 {
			continue
		}
		genre, err := s.Repo.GetGenre(ctx, album.GenreID)
		if err != nil {
			return nil, fmt.Errorf("resolve genre of album %s: %w", album.ID, err)
		}
		detail.Albums = append(detail.Albums, transport.ArtistAlbum{
			ID:          album.ID,
			Title:       album.Title,
			ReleaseYear: album.ReleaseYear,
			Genre:       genre.Name,
			Price:       album.Price,
			TrackCount:  n,
		})
	}
	detail.AlbumCount = len(detail.Albums)

	return &detail, nil
}

func (s *CatalogService) ListTracks(ctx context.Context, albumID uuid.UUID) ([]models.Track, error) {
	tracks, err := s.Repo.ListTracksByAlbum(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("tracks of album %s: %w", albumID, err)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no tracks for album %s: %w", albumID, ErrNotFound)
	}
	return tracks, nil
}

func (s *CatalogService) SearchAlbums(ctx context.Context, query string, from, size int) (int64, []transport.AlbumListing, error) {
	if s.Index == nil {
		return 0, nil, fmt.Errorf("album search: %w", ErrUnavailable)
	}
	total, listings, err := s.Index.Search(ctx, query, from, size)
	if err != nil {
		return 0, nil, fmt.Errorf("album search: %w", ErrUnavailable)
	}
	return total, listings, nil
}

// ReindexAlbums pushes every album listing into the search index. Used
// after seeding; individual index failures are returned, not skipped.
func (s *CatalogService) ReindexAlbums(ctx context.Context) error {
	if s.Index == nil {
		return nil
	}
	albums, err := s.Repo.ListAlbums(ctx)
	if err != nil {
		return fmt.Errorf("reindex: list albums: %w", err)
	}
	for _, album := range albums {
		listing, err := s.listing(ctx, album)
		if err != nil {
			return err
		}
		if err := s.Index.IndexAlbum(ctx, listing); err != nil {
			return err
		}
	}
	return nil
}

func (s *CatalogService) listing(ctx context.Context, album models.Album) (transport.AlbumListing, error) {
	artist, err := s.Repo.GetArtist(ctx, album.ArtistID)
	if err != nil {
		return transport.AlbumListing{}, fmt.Errorf("resolve artist of album %s: %w", album.ID, err)
	}
	genre, err := s.Repo.GetGenre(ctx, album.GenreID)
	if err != nil {
		return transport.AlbumListing{}, fmt.Errorf("resolve genre of album %s: %w", album.ID, err)
	}
	return transport.AlbumListing{
		ID:          album.ID,
		Title:       album.Title,
		ReleaseYear: album.ReleaseYear,
		Artist:      artist.Name,
		Genre:       genre.Name,
		Price:       album.Price,
	}, nil
}
