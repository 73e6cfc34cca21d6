package pgdb

import (
	"context"
	"encoding/json"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// DocumentStore хранит документы в одной таблице documents: коллекция + JSONB-тело.
type DocumentStore struct {
	pool *pgxpool.Pool
}

func NewDocumentStore(pool *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{pool: pool}
}

// CreateDocument сохраняет документ и возвращает UUID, сгенерированный базой.
func (s *DocumentStore) CreateDocument(ctx context.Context, collection string, doc domain.Document) (string, error) {
	const query = `INSERT INTO documents (collection, body) VALUES ($1, $2) RETURNING id::text`

	body, err := json.Marshal(withoutNativeID(doc))
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	var id string
	if err := s.pool.QueryRow(ctx, query, collection, body).Scan(&id); err != nil {
		return "", storeError(whereami.WhereAmI(), err)
	}

	return id, nil
}

// GetDocuments возвращает документы коллекции в порядке вставки.
// Фильтр применяется как JSONB-включение (body @> filter), nil-limit снимает ограничение.
func (s *DocumentStore) GetDocuments(ctx context.Context, collection string, filter domain.Filter, limit *int64) ([]domain.Document, error) {
	const query = `
		SELECT id::text, body
		FROM documents
		WHERE collection = $1 AND body @> $2::jsonb
		ORDER BY created_at, id
		LIMIT $3`

	filterBody, err := filterJSON(filter)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	rows, err := s.pool.Query(ctx, query, collection, filterBody, limit)
	if err != nil {
		return nil, storeError(whereami.WhereAmI(), err)
	}

	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Document, error) {
		var (
			id   string
			body []byte
		)
		if err := row.Scan(&id, &body); err != nil {
			return nil, err
		}

		doc := domain.Document{}
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, err
		}
		doc[domain.NativeIDField] = id

		return doc, nil
	})
	if err != nil {
		return nil, storeError(whereami.WhereAmI(), err)
	}

	if docs == nil {
		docs = []domain.Document{}
	}

	return docs, nil
}

func (s *DocumentStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return storeError(whereami.WhereAmI(), err)
	}

	return nil
}

// ListCollections возвращает имена коллекций, в которых есть хотя бы один документ.
func (s *DocumentStore) ListCollections(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT collection FROM documents ORDER BY collection`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, storeError(whereami.WhereAmI(), err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, storeError(whereami.WhereAmI(), err)
	}

	return names, nil
}

// filterJSON сериализует фильтр для оператора @>. Пустой фильтр совпадает с любым телом.
func filterJSON(filter domain.Filter) ([]byte, error) {
	if len(filter) == 0 {
		return []byte("{}"), nil
	}

	return json.Marshal(filter)
}

// withoutNativeID убирает _id из тела: идентификатор хранится в колонке id.
func withoutNativeID(doc domain.Document) domain.Document {
	if _, ok := doc[domain.NativeIDField]; !ok {
		return doc
	}

	out := doc.Clone()
	delete(out, domain.NativeIDField)
	return out
}

func storeError(where string, err error) error {
	return e.Store(where, err)
}
