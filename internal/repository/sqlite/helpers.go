package sqlite

import (
	"database/sql"

	"github.com/theuddeshya/Dynasty/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// ============================================================================
// Row Scanners
// ============================================================================
//
// CRITICAL: Column order must match between the *Columns constant and the
// scanArgs() return slice.

// familyRow holds all columns from a family query for scanning
type familyRow struct {
	ID       int64
	Position int
	Name     string
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match familyColumns order exactly: id, position, name
func (r *familyRow) scanArgs() []any {
	return []any{&r.ID, &r.Position, &r.Name}
}

func (r *familyRow) toDomain() domain.Family {
	return domain.Family{Name: r.Name, Members: []domain.Member{}}
}

const familyColumns = `id, position, name`

// memberRow holds all columns from a member query for scanning
type memberRow struct {
	ID         int64
	FamilyID   int64
	Position   int
	Name       string
	Profession sql.NullString
	Bio        sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match memberColumns order exactly:
// id, family_id, position, name, profession, bio
func (r *memberRow) scanArgs() []any {
	return []any{
		&r.ID,         // 1
		&r.FamilyID,   // 2
		&r.Position,   // 3
		&r.Name,       // 4
		&r.Profession, // 5
		&r.Bio,        // 6
	}
}

func (r *memberRow) toDomain() domain.Member {
	return domain.Member{
		Name:        r.Name,
		Profession:  nullToString(r.Profession),
		Bio:         nullToString(r.Bio),
		Connections: []string{},
	}
}

// qualified because member queries join families
const memberColumns = `m.id, m.family_id, m.position, m.name, m.profession, m.bio`
