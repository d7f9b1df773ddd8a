package store

import (
	"context"
	"fmt"
	"time"

	"safe-radius/internal/database"
	"safe-radius/internal/model"

	"github.com/google/uuid"
)

// newPOIID generates POI identifiers; a package var so tests can pin it.
var newPOIID = uuid.NewString

func CreatePOI(ctx context.Context, db database.DB, p *model.POI) (*model.POI, error) {
	p.ID = newPOIID()
	row := db.QueryRow(ctx,
		`INSERT INTO pois (id, encrypted_name, encrypted_lat, encrypted_lon,
		                   name, address, area, city, postal_code, category, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING created_at`,
		p.ID,
		p.EncryptedName,
		p.EncryptedLat,
		p.EncryptedLon,
		p.Name,
		p.Address,
		p.Area,
		p.City,
		p.PostalCode,
		p.Category,
		p.OwnerID,
	)
	if err := row.Scan(&p.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreatePOI: %w", err)
	}
	return p, nil
}

// ListPOIsByOwner returns the plaintext management view of one owner's POIs,
// newest first.
func ListPOIsByOwner(ctx context.Context, db database.DB, ownerID int) ([]model.POI, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, address, area, city, postal_code, category, owner_id, created_at
		 FROM pois WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListPOIsByOwner: %w", err)
	}
	defer rows.Close()

	var pois []model.POI
	for rows.Next() {
		var p model.POI
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.Area, &p.City,
			&p.PostalCode, &p.Category, &p.OwnerID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListPOIsByOwner: %w", err)
		}
		pois = append(pois, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListPOIsByOwner: %w", err)
	}
	return pois, nil
}

// ListPOIsWithOwners returns every POI joined with its owning user, newest
// first. Admin-only view.
func ListPOIsWithOwners(ctx context.Context, db database.DB) ([]model.POIWithOwner, error) {
	rows, err := db.Query(ctx,
		`SELECT p.id, p.name, p.address, p.area, p.city, p.postal_code,
		        p.category, p.owner_id, p.created_at, u.name, u.email
		 FROM pois p
		 JOIN users u ON u.id = p.owner_id
		 ORDER BY p.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListPOIsWithOwners: %w", err)
	}
	defer rows.Close()

	var pois []model.POIWithOwner
	for rows.Next() {
		var p model.POIWithOwner
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.Area, &p.City,
			&p.PostalCode, &p.Category, &p.OwnerID, &p.CreatedAt,
			&p.OwnerName, &p.OwnerEmail); err != nil {
			return nil, fmt.Errorf("ListPOIsWithOwners: %w", err)
		}
		pois = append(pois, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListPOIsWithOwners: %w", err)
	}
	return pois, nil
}

// ListEncryptedPOIs returns the encrypted search candidates, optionally
// pre-filtered by category. Plaintext fields stay out of this path.
func ListEncryptedPOIs(ctx context.Context, db database.DB, category model.Category) ([]model.POI, error) {
	query := `SELECT id, encrypted_name, encrypted_lat, encrypted_lon, category, owner_id, created_at
	          FROM pois`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListEncryptedPOIs: %w", err)
	}
	defer rows.Close()

	var pois []model.POI
	for rows.Next() {
		var p model.POI
		if err := rows.Scan(&p.ID, &p.EncryptedName, &p.EncryptedLat, &p.EncryptedLon,
			&p.Category, &p.OwnerID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListEncryptedPOIs: %w", err)
		}
		pois = append(pois, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListEncryptedPOIs: %w", err)
	}
	return pois, nil
}

func DeletePOI(ctx context.Context, db database.DB, poiID string) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM pois WHERE id = $1`,
		poiID,
	)
	if err != nil {
		return fmt.Errorf("DeletePOI: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func CountPOIs(ctx context.Context, db database.DB) (int, error) {
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM pois`).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountPOIs: %w", err)
	}
	return n, nil
}

func CountPOIsSince(ctx context.Context, db database.DB, since time.Time) (int, error) {
	var n int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM pois WHERE created_at >= $1`,
		since,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountPOIsSince: %w", err)
	}
	return n, nil
}
