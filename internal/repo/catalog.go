package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/soundhaven/musicstore/internal/models"
)

func (r *GormRepo) GetAlbum(ctx context.Context, id uuid.UUID) (*models.Album, error) {
	var album models.Album
	if err := r.DB.WithContext(ctx).First(&album, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &album, nil
}

func (r *GormRepo) GetArtist(ctx context.Context, id uuid.UUID) (*models.Artist, error) {
	var artist models.Artist
	if err := r.DB.WithContext(ctx).First(&artist, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &artist, nil
}

func (r *GormRepo) GetGenre(ctx context.Context, id uuid.UUID) (*models.Genre, error) {
	var genre models.Genre
	if err := r.DB.WithContext(ctx).First(&genre, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *GormRepo) ListArtists(ctx context.Context) ([]models.Artist, error) {
	var artists []models.Artist
	if err := r.DB.WithContext(ctx).Order("name").Find(&artists).Error; err != nil {
		return nil, err
	}
	return artists, nil
}

func (r *GormRepo) ListAlbums(ctx context.Context) ([]models.Album, error) {
	var albums []models.Album
	if err := r.DB.WithContext(ctx).Order("title").Find(&albums).Error; err != nil {
		return nil, err
	}
	return albums, nil
}

func (r *GormRepo) ListAlbumsByArtist(ctx context.Context, artistID uuid.UUID) ([]models.Album, error) {
	var albums []models.Album
	err := r.DB.WithContext(ctx).
		Where("artist_id = ?", artistID).
		Order("release_year").
		Find(&albums).Error
	if err != nil {
		return nil, err
	}
	return albums, nil
}

func (r *GormRepo) ListTracksByAlbum(ctx context.Context, albumID uuid.UUID) ([]models.Track, error) {
	var tracks []models.Track
	err := r.DB.WithContext(ctx).
		Where("album_id = ?", albumID).
		Order("id").
		Find(&tracks).Error
	if err != nil {
		return nil, err
	}
	return tracks, nil
}

func (r *GormRepo) CountTracks(ctx context.Context, albumID uuid.UUID) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&models.Track{}).
		Where("album_id = ?", albumID).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}
