package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
)

// Repositories groups every Postgres repository over one connection pool.
type Repositories struct {
	DB         *sql.DB
	Transactor Transactor
	Users      UserRepository
	Sessions   SessionRepository
	Addresses  AddressRepository
	Categories CategoryRepository
	Products   ProductRepository
	Carts      CartRepository
	Orders     OrderRepository
	Ratings    RatingRepository
	Payments   PaymentRepository
}

// New opens a traced connection pool, verifies it and builds the repositories.
func New(ctx context.Context, cfg *config.Database) (*Repositories, error) {
	db, err := otelsql.Open("postgres", cfg.GetDSN(), otelsql.WithAttributes(attribute.String("db.system", "postgresql")))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return NewFromDB(db), nil
}

func NewFromDB(db *sql.DB) *Repositories {
	return &Repositories{
		DB:         db,
		Transactor: NewTransactor(db),
		Users:      NewUserRepo(db),
		Sessions:   NewSessionRepo(db),
		Addresses:  NewAddressRepo(db),
		Categories: NewCategoryRepo(db),
		Products:   NewProductRepo(db),
		Carts:      NewCartRepo(db),
		Orders:     NewOrderRepo(db),
		Ratings:    NewRatingRepo(db),
		Payments:   NewPaymentRepo(db),
	}
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
