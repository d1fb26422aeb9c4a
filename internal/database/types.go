package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/kozaktomas/name-that-face/internal/face"
)

// FaceRow is the column layout shared by the SQL backends.
// Image bytes are kept in a separate table and joined in on read.
type FaceRow struct {
	ID        string
	Name      string
	Latitude  sql.NullFloat64
	Longitude sql.NullFloat64
	Image     []byte
}

// ToFace converts a scanned row into a Face. A row with only one of the two
// coordinate columns set is read back without a location.
func (r FaceRow) ToFace() (face.Face, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return face.Face{}, fmt.Errorf("parse face id %q: %w", r.ID, err)
	}

	f := face.Face{
		ID:    id,
		Name:  r.Name,
		Image: r.Image,
	}
	if r.Latitude.Valid && r.Longitude.Valid {
		f.Coordinates = &face.Coordinates{
			Latitude:  r.Latitude.Float64,
			Longitude: r.Longitude.Float64,
		}
	}
	return f, nil
}

// NullCoordinates returns the nullable column values for a face's location.
func NullCoordinates(f face.Face) (sql.NullFloat64, sql.NullFloat64) {
	if f.Coordinates == nil {
		return sql.NullFloat64{}, sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f.Coordinates.Latitude, Valid: true},
		sql.NullFloat64{Float64: f.Coordinates.Longitude, Valid: true}
}

// ScanFaces reads all rows of a faces query selecting id, name, latitude, longitude, data.
func ScanFaces(rows *sql.Rows) ([]face.Face, error) {
	defer rows.Close()

	faces := []face.Face{}
	for rows.Next() {
		var r FaceRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Latitude, &r.Longitude, &r.Image); err != nil {
			return nil, fmt.Errorf("scan face: %w", err)
		}
		f, err := r.ToFace()
		if err != nil {
			return nil, err
		}
		faces = append(faces, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate faces: %w", err)
	}
	return faces, nil
}
