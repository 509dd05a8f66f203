package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
	"github.com/project/lms/internal/entity"
	"github.com/samber/lo"
)

const (
	dialectPostgres = "postgres"
	tableBook       = "book"
	tableBookGenre  = "book_genre"
	aliasBook       = "b"
	aliasBookGenre  = "bg"
	colGenreIDs     = "genre_ids"
	colTotal        = "total"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (p *postgresRepository) AddBook(ctx context.Context, book entity.Book) (entity.Book, error) {
	const queryBook = `
INSERT INTO book (title, author_id, isbn, total_copies, available_copies)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at
`
	result := book
	result.GenreIDs = normalizeGenreIDs(book.GenreIDs)

	err := p.inTx(ctx, func(q DataBase) error {
		err := q.QueryRow(ctx, queryBook, book.Title, book.AuthorID, book.ISBN, book.TotalCopies, book.AvailableCopies).
			Scan(&result.ID, &result.CreatedAt, &result.UpdatedAt)
		if err != nil {
			return convertPgError(err, entity.ErrBookNotFound)
		}

		return insertBookGenres(ctx, q, result.ID, result.GenreIDs)
	})

	if err != nil {
		return entity.Book{}, err
	}

	return result, nil
}

func (p *postgresRepository) UpdateBook(ctx context.Context, book entity.Book) (entity.Book, error) {
	const queryBook = `
UPDATE book
SET title=$2, author_id=$3, isbn=$4, total_copies=$5, available_copies=$6
WHERE id=$1
RETURNING created_at, updated_at
`
	const queryDeleteOldGenres = `
DELETE FROM book_genre WHERE book_id=$1
`
	result := book
	result.GenreIDs = normalizeGenreIDs(book.GenreIDs)

	err := p.inTx(ctx, func(q DataBase) error {
		err := q.QueryRow(ctx, queryBook, book.ID, book.Title, book.AuthorID, book.ISBN, book.TotalCopies, book.AvailableCopies).
			Scan(&result.CreatedAt, &result.UpdatedAt)
		if err != nil {
			return convertPgError(err, entity.ErrBookNotFound)
		}

		if _, err = q.Exec(ctx, queryDeleteOldGenres, book.ID); err != nil {
			return err
		}

		return insertBookGenres(ctx, q, book.ID, result.GenreIDs)
	})

	if err != nil {
		return entity.Book{}, err
	}

	return result, nil
}

func insertBookGenres(ctx context.Context, q DataBase, bookID string, genreIDs []string) error {
	if len(genreIDs) == 0 {
		return nil
	}

	const queryGenres = `
INSERT INTO book_genre (book_id, genre_id)
SELECT $1, unnest($2::uuid[])
`
	_, err := q.Exec(ctx, queryGenres, bookID, genreIDs)
	if err != nil {
		return fmt.Errorf("genres of book %s: %w", bookID, convertPgError(err, entity.ErrGenreNotFound))
	}
	return nil
}

// GetBook locks the book row when ctx carries a transaction.
func (p *postgresRepository) GetBook(ctx context.Context, id string) (entity.Book, error) {
	const query = `
SELECT id, title, author_id, isbn, total_copies, available_copies, created_at, updated_at
FROM book
WHERE id = $1 FOR UPDATE
`
	const queryGenres = `
SELECT genre_id
FROM book_genre
WHERE book_id = $1
ORDER BY genre_id
`
	var book entity.Book

	err := p.inTx(ctx, func(q DataBase) error {
		err := q.QueryRow(ctx, query, id).Scan(
			&book.ID, &book.Title, &book.AuthorID, &book.ISBN,
			&book.TotalCopies, &book.AvailableCopies, &book.CreatedAt, &book.UpdatedAt,
		)
		if err != nil {
			return convertPgError(err, entity.ErrBookNotFound)
		}

		rows, err := q.Query(ctx, queryGenres, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		book.GenreIDs = make([]string, 0)
		for rows.Next() {
			var genreID string
			if err = rows.Scan(&genreID); err != nil {
				return err
			}
			book.GenreIDs = append(book.GenreIDs, genreID)
		}
		return rows.Err()
	})

	if err != nil {
		return entity.Book{}, err
	}

	return book, nil
}

func (p *postgresRepository) DeleteBook(ctx context.Context, id string) error {
	tag, err := conn(ctx, p.db).Exec(ctx, `DELETE FROM book WHERE id = $1`, id)
	if err != nil {
		return convertPgError(err, entity.ErrBookNotFound)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrBookNotFound
	}
	return nil
}

// AdjustAvailableCopies atomically adds diff to the available copies of the book,
// never below zero and never above total copies, and returns the new value.
func (p *postgresRepository) AdjustAvailableCopies(ctx context.Context, id string, diff int) (int, error) {
	const query = `
UPDATE book
SET available_copies = LEAST(available_copies + $2, total_copies)
WHERE id = $1 AND available_copies + $2 >= 0
RETURNING available_copies
`
	const queryExists = `
SELECT EXISTS(SELECT 1 FROM book WHERE id = $1)
`
	db := conn(ctx, p.db)

	var available int
	err := db.QueryRow(ctx, query, id, diff).Scan(&available)
	if err == nil {
		return available, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, convertPgError(err, entity.ErrBookNotFound)
	}

	var exists bool
	if err = db.QueryRow(ctx, queryExists, id).Scan(&exists); err != nil {
		return 0, err
	}

	if !exists {
		return 0, entity.ErrBookNotFound
	}
	return 0, fmt.Errorf("book %s: %w", id, entity.ErrNoCopiesAvailable)
}

func (p *postgresRepository) ListBooks(ctx context.Context, filter entity.BookFilter) ([]entity.Book, int, error) {
	countSQL, countArgs, err := buildCountBooksQuery(filter)
	if err != nil {
		return nil, 0, err
	}

	selectSQL, selectArgs, err := buildListBooksQuery(filter)
	if err != nil {
		return nil, 0, err
	}

	db := conn(ctx, p.db)

	var total int
	if err = db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := db.Query(ctx, selectSQL, selectArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	books := make([]entity.Book, 0, filter.PageSize)
	for rows.Next() {
		var b entity.Book
		err = rows.Scan(
			&b.ID, &b.Title, &b.AuthorID, &b.ISBN,
			&b.TotalCopies, &b.AvailableCopies, &b.CreatedAt, &b.UpdatedAt,
			&b.GenreIDs,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}

	return books, total, rows.Err()
}

func bookFilterExpressions(filter entity.BookFilter) []exp.Expression {
	where := make([]exp.Expression, 0, 3)

	if filter.AuthorID != "" {
		where = append(where, goqu.I(aliasBook+".author_id").Eq(filter.AuthorID))
	}

	if filter.GenreID != "" {
		where = append(where, goqu.L(
			"EXISTS (SELECT 1 FROM book_genre g WHERE g.book_id = "+aliasBook+".id AND g.genre_id = ?)",
			filter.GenreID,
		))
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(search) + "%"
		where = append(where, goqu.Or(
			goqu.I(aliasBook+".title").ILike(pattern),
			goqu.I(aliasBook+".isbn").ILike(pattern),
		))
	}

	return where
}

func bookOrder(ordering entity.BookOrdering) []exp.OrderedExpression {
	tieBreak := goqu.I(aliasBook + ".id").Asc()

	switch ordering {
	case entity.OrderByTitle:
		return []exp.OrderedExpression{goqu.I(aliasBook + ".title").Asc(), tieBreak}
	case entity.OrderByTitleDesc:
		return []exp.OrderedExpression{goqu.I(aliasBook + ".title").Desc(), tieBreak}
	case entity.OrderByAvailableCopies:
		return []exp.OrderedExpression{goqu.I(aliasBook + ".available_copies").Asc(), tieBreak}
	case entity.OrderByAvailableCopiesDesc:
		return []exp.OrderedExpression{goqu.I(aliasBook + ".available_copies").Desc(), tieBreak}
	default:
		return []exp.OrderedExpression{goqu.I(aliasBook + ".created_at").Asc(), tieBreak}
	}
}

func buildCountBooksQuery(filter entity.BookFilter) (string, []any, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(goqu.T(tableBook).As(aliasBook)).
		Prepared(true).
		Select(goqu.COUNT(goqu.Star()).As(colTotal)).
		Where(bookFilterExpressions(filter)...)

	query, args, err := stmt.ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build count books query: %w", err)
	}
	return query, args, nil
}

func buildListBooksQuery(filter entity.BookFilter) (string, []any, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(goqu.T(tableBook).As(aliasBook)).
		Prepared(true).
		Select(
			goqu.I(aliasBook+".id"),
			goqu.I(aliasBook+".title"),
			goqu.I(aliasBook+".author_id"),
			goqu.I(aliasBook+".isbn"),
			goqu.I(aliasBook+".total_copies"),
			goqu.I(aliasBook+".available_copies"),
			goqu.I(aliasBook+".created_at"),
			goqu.I(aliasBook+".updated_at"),
			goqu.L(
				"COALESCE(array_agg("+aliasBookGenre+".genre_id::text ORDER BY "+aliasBookGenre+
					".genre_id) FILTER (WHERE "+aliasBookGenre+".genre_id IS NOT NULL), '{}')",
			).As(colGenreIDs),
		).
		LeftJoin(
			goqu.T(tableBookGenre).As(aliasBookGenre),
			goqu.On(goqu.I(aliasBookGenre+".book_id").Eq(goqu.I(aliasBook+".id"))),
		).
		Where(bookFilterExpressions(filter)...).
		GroupBy(goqu.I(aliasBook + ".id")).
		Order(bookOrder(filter.Ordering)...).
		Limit(uint(filter.PageSize)).
		Offset(uint(filter.Offset()))

	query, args, err := stmt.ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build list books query: %w", err)
	}
	return query, args, nil
}

func normalizeGenreIDs(ids []string) []string {
	if len(ids) == 0 {
		return []string{}
	}
	return lo.Uniq(ids)
}
