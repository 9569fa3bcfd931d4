package services

import (
	"context"
	"database/sql"
	"net/url"

	"github.com/romario-developer/despesas-pwa/internal/client"
	"github.com/romario-developer/despesas-pwa/internal/storage/kv"
)

// API is the part of *client.Client the services depend on.
type API interface {
	Do(ctx context.Context, r client.Request) (*client.Response, error)
	Get(ctx context.Context, path string, query url.Values) (any, error)
	Post(ctx context.Context, path string, body any) (any, error)
	Put(ctx context.Context, path string, body any) (any, error)
	Delete(ctx context.Context, path string) (any, error)
}

var _ API = (*client.Client)(nil)

func stateRepo(db *sql.DB) kv.Repository {
	return kv.NewSQLiteRepository(db)
}

// resource joins a collection path and an escaped id.
func resource(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}
