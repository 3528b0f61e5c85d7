package postgres

import (
	"database/sql"
	"pen/pkg/domain"
	"time"

	"github.com/google/uuid"
)

type PgUser struct {
	ID           uuid.UUID `db:"id"            goqu:"skipinsert"`
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"    goqu:"skipinsert"`
}

func (p *PgUser) ToDomain() *domain.User {
	return &domain.User{
		ID:           domain.UserID(p.ID),
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
	}
}

func (p *PgUser) FromDomain(user domain.User) {
	*p = PgUser{
		ID:           uuid.UUID(user.ID),
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
	}
}

type PgProfile struct {
	ID           uuid.UUID    `db:"id"`
	IsSubscribed bool         `db:"is_subscribed"`
	CreatedAt    time.Time    `db:"created_at"    goqu:"skipinsert"`
	UpdatedAt    sql.NullTime `db:"updated_at"    goqu:"skipinsert"`
}

func (p *PgProfile) ToDomain() *domain.Subscription {
	updated := p.UpdatedAt.Time
	if !p.UpdatedAt.Valid {
		updated = p.CreatedAt
	}

	return &domain.Subscription{
		OwnerID:      domain.UserID(p.ID),
		IsSubscribed: p.IsSubscribed,
		UpdatedAt:    updated,
	}
}

type PgContent struct {
	ID          uuid.UUID `db:"id"           goqu:"skipinsert"`
	Kind        string    `db:"kind"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	ResourceURL string    `db:"resource_url"`
	IsPremium   bool      `db:"is_premium"`
	CreatedAt   time.Time `db:"created_at"   goqu:"skipinsert"`
}

func (p *PgContent) ToDomain() *domain.ContentItem {
	return &domain.ContentItem{
		ID:          domain.ContentID(p.ID),
		Kind:        domain.ContentKind(p.Kind),
		Title:       p.Title,
		Description: p.Description,
		ResourceURL: p.ResourceURL,
		IsPremium:   p.IsPremium,
		CreatedAt:   p.CreatedAt,
	}
}

func (p *PgContent) FromDomain(item domain.ContentItem) {
	*p = PgContent{
		ID:          uuid.UUID(item.ID),
		Kind:        string(item.Kind),
		Title:       item.Title,
		Description: item.Description,
		ResourceURL: item.ResourceURL,
		IsPremium:   item.IsPremium,
		CreatedAt:   item.CreatedAt,
	}
}

type PgThreatReport struct {
	ID    int64  `db:"id"`
	City  string `db:"city"`
	Kind  string `db:"kind"`
	Count int    `db:"count"`
	Lat   int    `db:"pos_lat"`
	Left  int    `db:"pos_left"`
}

func (p *PgThreatReport) ToDomain() domain.ThreatReport {
	return domain.ThreatReport{
		ID:    p.ID,
		City:  p.City,
		Kind:  p.Kind,
		Count: p.Count,
		Lat:   p.Lat,
		Left:  p.Left,
	}
}
