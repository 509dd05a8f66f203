package repository

import (
	"context"
	"fmt"

	"github.com/project/lms/internal/entity"
	"go.uber.org/zap"
)

var (
	_ AuthorRepository = (*postgresRepository)(nil)
	_ GenreRepository  = (*postgresRepository)(nil)
	_ BooksRepository  = (*postgresRepository)(nil)
	_ BorrowRepository = (*postgresRepository)(nil)
	_ ReviewRepository = (*postgresRepository)(nil)
	_ UserRepository   = (*postgresRepository)(nil)
	_ TokenRepository  = (*postgresRepository)(nil)
)

// Pool is what the repository needs from pgxpool.Pool.
type Pool interface {
	DataBase
	TxBeginner
}

type postgresRepository struct {
	logger *zap.Logger
	db     Pool
}

func New(logger *zap.Logger, db Pool) *postgresRepository {
	return &postgresRepository{
		logger: logger,
		db:     db,
	}
}

// inTx runs function in the transaction carried by ctx, or in a new one.
func (p *postgresRepository) inTx(ctx context.Context, function func(q DataBase) error) error {
	return NewTransactor(p.logger, p.db).WithTx(ctx, func(ctx context.Context) error {
		return function(conn(ctx, p.db))
	})
}

func (p *postgresRepository) CreateAuthor(ctx context.Context, author entity.Author) (entity.Author, error) {
	const query = `
INSERT INTO author (name, bio)
VALUES ($1, $2)
RETURNING id, created_at, updated_at
`
	result := entity.Author{
		Name: author.Name,
		Bio:  author.Bio,
	}

	err := conn(ctx, p.db).QueryRow(ctx, query, author.Name, author.Bio).
		Scan(&result.ID, &result.CreatedAt, &result.UpdatedAt)

	if err != nil {
		return entity.Author{}, convertPgError(err, entity.ErrAuthorNotFound)
	}

	return result, nil
}

func (p *postgresRepository) GetAuthor(ctx context.Context, id string) (entity.Author, error) {
	const query = `
SELECT id, name, bio, created_at, updated_at
FROM author
WHERE id = $1
`
	var author entity.Author
	err := conn(ctx, p.db).QueryRow(ctx, query, id).
		Scan(&author.ID, &author.Name, &author.Bio, &author.CreatedAt, &author.UpdatedAt)

	if err != nil {
		return entity.Author{}, convertPgError(err, entity.ErrAuthorNotFound)
	}

	return author, nil
}

func (p *postgresRepository) ListAuthors(ctx context.Context, page entity.PageRequest) ([]entity.Author, int, error) {
	db := conn(ctx, p.db)

	var total int
	if err := db.QueryRow(ctx, `SELECT count(*) FROM author`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `
SELECT id, name, bio, created_at, updated_at
FROM author
ORDER BY name, id
LIMIT $1 OFFSET $2
`
	rows, err := db.Query(ctx, query, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	authors := make([]entity.Author, 0, page.PageSize)
	for rows.Next() {
		var a entity.Author
		if err = rows.Scan(&a.ID, &a.Name, &a.Bio, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}

	return authors, total, rows.Err()
}

func (p *postgresRepository) CreateGenre(ctx context.Context, genre entity.Genre) (entity.Genre, error) {
	const query = `
INSERT INTO genre (name)
VALUES ($1)
RETURNING id, created_at
`
	result := entity.Genre{Name: genre.Name}

	err := conn(ctx, p.db).QueryRow(ctx, query, genre.Name).Scan(&result.ID, &result.CreatedAt)
	if err != nil {
		return entity.Genre{}, convertPgError(err, entity.ErrGenreNotFound)
	}

	return result, nil
}

func (p *postgresRepository) ListGenres(ctx context.Context, page entity.PageRequest) ([]entity.Genre, int, error) {
	db := conn(ctx, p.db)

	var total int
	if err := db.QueryRow(ctx, `SELECT count(*) FROM genre`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `
SELECT id, name, created_at
FROM genre
ORDER BY name
LIMIT $1 OFFSET $2
`
	rows, err := db.Query(ctx, query, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	genres := make([]entity.Genre, 0, page.PageSize)
	for rows.Next() {
		var g entity.Genre
		if err = rows.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, g)
	}

	return genres, total, rows.Err()
}
