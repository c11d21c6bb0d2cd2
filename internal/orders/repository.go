package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/fjod/cozy_storefront/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error)
	Close() error
}

// Repository stores orders in Postgres.
type Repository struct {
	db *sql.DB
}

// DSN renders the credentials as a lib/pq connection string.
func (c *Credentials) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func NewRepository(cred *Credentials) (*Repository, error) {
	connector, err := pq.NewConnector(cred.DSN())
	if err != nil {
		return nil, fmt.Errorf("order db config: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("order db ping: %w", err)
	}
	return &Repository{db: db}, nil
}

// NewRepositoryFromDB wraps an already opened handle.
func NewRepositoryFromDB(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// RunMigrations applies the order schema from the migrations directory.
func (r *Repository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "storefront_orders_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("order migrations driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+cred.MigrationsDirPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("order migrations source: %w", err)
	}
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("order migrations up: %w", err)
	}
	return nil
}

func (r *Repository) CreateOrder(ctx context.Context, order *Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `INSERT INTO orders (id, email, full_name, phone, delivery_method, delivery_address,
	              payment_method, items, total_amount, status, payment_url, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = r.db.ExecContext(ctx, query,
		order.ID,
		order.Email,
		order.FullName,
		order.Phone,
		string(order.DeliveryMethod),
		order.DeliveryAddress,
		string(order.PaymentMethod),
		itemsJSON,
		order.TotalAmount,
		string(order.Status),
		order.PaymentURL,
		order.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateOrder
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *Repository) GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	query := `SELECT id, email, full_name, phone, delivery_method, delivery_address,
	                 payment_method, items, total_amount, status, payment_url, created_at
	          FROM orders WHERE id = $1`

	var (
		order     Order
		itemsJSON []byte
		address   sql.NullString
		delivery  string
		payment   string
		status    string
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.Email,
		&order.FullName,
		&order.Phone,
		&delivery,
		&address,
		&payment,
		&itemsJSON,
		&order.TotalAmount,
		&status,
		&order.PaymentURL,
		&order.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}

	order.DeliveryMethod = domain.DeliveryMethod(delivery)
	order.PaymentMethod = domain.PaymentMethod(payment)
	order.Status = OrderStatus(status)
	if address.Valid {
		order.DeliveryAddress = &address.String
	}
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &order, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
