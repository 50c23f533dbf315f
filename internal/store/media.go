// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/protidin-go/internal/model"
)

const (
	photoSelect = `SELECT id, title_en, title_bn, image_url, description_en, description_bn, created_at FROM photos`
	videoSelect = `SELECT id, title_en, title_bn, video_url, thumbnail, description_en, description_bn, created_at FROM videos`
)

func scanPhoto(row scanner) (model.Photo, error) {
	var p model.Photo
	err := row.Scan(&p.ID, &p.TitleEn, &p.TitleBn, &p.ImageURL, &p.DescriptionEn, &p.DescriptionBn, &p.CreatedAt)
	return p, err
}

func scanVideo(row scanner) (model.Video, error) {
	var v model.Video
	err := row.Scan(&v.ID, &v.TitleEn, &v.TitleBn, &v.VideoURL, &v.Thumbnail, &v.DescriptionEn, &v.DescriptionBn, &v.CreatedAt)
	return v, err
}

// ListPhotos returns gallery photos newest first.
func (s *Store) ListPhotos(ctx context.Context) ([]model.Photo, error) {
	rows, err := s.db.QueryContext(ctx, photoSelect+" ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}
	photos, err := collect(rows, scanPhoto)
	if err != nil {
		return nil, fmt.Errorf("scanning photos: %w", err)
	}
	return photos, nil
}

// GetPhoto returns a photo by id.
func (s *Store) GetPhoto(ctx context.Context, id int64) (model.Photo, error) {
	p, err := scanPhoto(s.db.QueryRowContext(ctx, photoSelect+" WHERE id = ?", id))
	if err != nil {
		return p, readErr("getting photo", err)
	}
	return p, nil
}

// CreatePhoto stores a new photo.
func (s *Store) CreatePhoto(ctx context.Context, in model.PhotoInput) (model.Photo, error) {
	id, err := insertID(ctx, s.db, "creating photo",
		`INSERT INTO photos (title_en, title_bn, image_url, description_en, description_bn, created_at)
		VALUES (`+placeholders(6)+`)`,
		in.TitleEn, in.TitleBn, in.ImageURL, in.DescriptionEn, in.DescriptionBn, s.now())
	if err != nil {
		return model.Photo{}, err
	}
	return s.GetPhoto(ctx, id)
}

// UpdatePhoto replaces a photo.
func (s *Store) UpdatePhoto(ctx context.Context, id int64, in model.PhotoInput) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE photos SET title_en = ?, title_bn = ?, image_url = ?, description_en = ?, description_bn = ? WHERE id = ?`,
		in.TitleEn, in.TitleBn, in.ImageURL, in.DescriptionEn, in.DescriptionBn, id)
	return affectedOne("updating photo", res, err)
}

// DeletePhoto removes a photo.
func (s *Store) DeletePhoto(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM photos WHERE id = ?", id)
	return affectedOne("deleting photo", res, err)
}

// ListVideos returns gallery videos newest first.
func (s *Store) ListVideos(ctx context.Context) ([]model.Video, error) {
	rows, err := s.db.QueryContext(ctx, videoSelect+" ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}
	videos, err := collect(rows, scanVideo)
	if err != nil {
		return nil, fmt.Errorf("scanning videos: %w", err)
	}
	return videos, nil
}

// GetVideo returns a video by id.
func (s *Store) GetVideo(ctx context.Context, id int64) (model.Video, error) {
	v, err := scanVideo(s.db.QueryRowContext(ctx, videoSelect+" WHERE id = ?", id))
	if err != nil {
		return v, readErr("getting video", err)
	}
	return v, nil
}

// CreateVideo stores a new video.
func (s *Store) CreateVideo(ctx context.Context, in model.VideoInput) (model.Video, error) {
	id, err := insertID(ctx, s.db, "creating video",
		`INSERT INTO videos (title_en, title_bn, video_url, thumbnail, description_en, description_bn, created_at)
		VALUES (`+placeholders(7)+`)`,
		in.TitleEn, in.TitleBn, in.VideoURL, in.Thumbnail, in.DescriptionEn, in.DescriptionBn, s.now())
	if err != nil {
		return model.Video{}, err
	}
	return s.GetVideo(ctx, id)
}

// UpdateVideo replaces a video.
func (s *Store) UpdateVideo(ctx context.Context, id int64, in model.VideoInput) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE videos SET title_en = ?, title_bn = ?, video_url = ?, thumbnail = ?, description_en = ?, description_bn = ? WHERE id = ?`,
		in.TitleEn, in.TitleBn, in.VideoURL, in.Thumbnail, in.DescriptionEn, in.DescriptionBn, id)
	return affectedOne("updating video", res, err)
}

// DeleteVideo removes a video.
func (s *Store) DeleteVideo(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM videos WHERE id = ?", id)
	return affectedOne("deleting video", res, err)
}
