package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/project/lms/internal/entity"
	"github.com/project/lms/internal/usecase/library"
	"github.com/samber/lo"
)

const seedPassword = "password123"

var (
	seedFirstNames = []string{"Aarav", "Priya", "Vikram", "Ananya", "Rohan", "Sneha", "Arjun"}
	seedLastNames  = []string{"Sharma", "Patel", "Verma", "Singh", "Gupta", "Mehta", "Kumar"}

	seedAuthors = []struct{ name, bio string }{
		{"Rabindranath Tagore", "Nobel laureate and author of Gitanjali"},
		{"R.K. Narayan", "Renowned for Malgudi Days"},
		{"Jhumpa Lahiri", "Pulitzer Prize-winning author"},
		{"Amrita Pritam", "Famous Punjabi poet and novelist"},
	}

	seedGenres = []string{"Fiction", "Poetry", "Non-Fiction", "Historical", "Mythology"}

	seedBooks = []struct {
		title  string
		author int
		isbn   string
		copies int
	}{
		{"Gitanjali", 0, "9780140449884", 5},
		{"Malgudi Days", 1, "9780143039655", 3},
		{"The Namesake", 2, "9780395927212", 4},
		{"Pinjar", 3, "9788129119551", 2},
		{"The Guide", 1, "9780143039648", 3},
	}

	seedComments = []string{
		"A beautifully written book!",
		"Really enjoyed the storyline.",
		"Could have been more engaging.",
		"A classic masterpiece!",
		"Highly recommended for all readers.",
	}

	seedStatuses = []entity.BorrowStatus{
		entity.BorrowPending, entity.BorrowApproved, entity.BorrowRejected, entity.BorrowReturned,
	}
)

const seedMembers = 5

type seedIdentity interface {
	CreateUser(ctx context.Context, username, email, password string, role entity.Role) (entity.User, error)
	IssueToken(ctx context.Context, username, password string) (entity.TokenPair, error)
	Authenticate(ctx context.Context, access string) (entity.Principal, error)
}

// Seeder fills an empty database with demo users, catalog, borrow requests and reviews.
// Everything goes through the use cases, so copy counters stay consistent.
type Seeder struct {
	lib      library.Library
	identity seedIdentity
	rnd      *rand.Rand
	out      io.Writer
}

func NewSeeder(lib library.Library, identity seedIdentity, seed uint64, out io.Writer) *Seeder {
	return &Seeder{
		lib:      lib,
		identity: identity,
		rnd:      rand.New(rand.NewPCG(seed, seed)),
		out:      out,
	}
}

func (s *Seeder) Run(ctx context.Context) error {
	members, librarian, err := s.seedUsers(ctx)
	if err != nil {
		return err
	}

	authorIDs, err := s.seedAuthors(ctx, librarian)
	if err != nil {
		return err
	}

	genreIDs, err := s.seedGenres(ctx, librarian)
	if err != nil {
		return err
	}

	books, err := s.seedBooks(ctx, librarian, authorIDs, genreIDs)
	if err != nil {
		return err
	}

	if err = s.seedBorrowRequests(ctx, members, librarian, books); err != nil {
		return err
	}

	if err = s.seedReviews(ctx, members, books); err != nil {
		return err
	}

	s.printf("Successfully populated dummy data!\n")
	return nil
}

func (s *Seeder) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func (s *Seeder) seedUsers(ctx context.Context) ([]entity.Principal, entity.Principal, error) {
	var members []entity.Principal
	var librarian entity.Principal

	for i := range seedFirstNames {
		role := entity.RoleMember
		if i >= seedMembers {
			role = entity.RoleLibrarian
		}
		username := seedFirstNames[i] + seedLastNames[i]

		_, err := s.identity.CreateUser(ctx, username, username+"@example.com", seedPassword, role)
		switch {
		case err == nil:
			s.printf("Created user: %s (%s)\n", username, role)
		case !errors.Is(err, entity.ErrConflict):
			return nil, librarian, fmt.Errorf("create user %s: %w", username, err)
		}

		p, err := s.login(ctx, username)
		if err != nil {
			return nil, librarian, err
		}
		if p.Role == entity.RoleLibrarian {
			librarian = p
		} else {
			members = append(members, p)
		}
	}

	if librarian.UserID == "" {
		return nil, librarian, errors.New("no librarian account available for seeding")
	}
	return members, librarian, nil
}

func (s *Seeder) login(ctx context.Context, username string) (entity.Principal, error) {
	pair, err := s.identity.IssueToken(ctx, username, seedPassword)
	if err != nil {
		return entity.Principal{}, fmt.Errorf("log in as %s: %w", username, err)
	}
	return s.identity.Authenticate(ctx, pair.Access)
}

func (s *Seeder) seedAuthors(ctx context.Context, librarian entity.Principal) ([]string, error) {
	page, err := s.lib.ListAuthors(ctx, librarian, entity.PageRequest{Page: 1, PageSize: entity.MaxPageSize})
	if err != nil {
		return nil, err
	}
	existing := lo.SliceToMap(page.Items, func(a entity.Author) (string, string) { return a.Name, a.ID })

	ids := make([]string, 0, len(seedAuthors))
	for _, a := range seedAuthors {
		if id, ok := existing[a.name]; ok {
			ids = append(ids, id)
			continue
		}

		bio := a.bio
		author, err := s.lib.CreateAuthor(ctx, librarian, a.name, &bio)
		if err != nil {
			return nil, fmt.Errorf("create author %s: %w", a.name, err)
		}
		s.printf("Created author: %s\n", a.name)
		ids = append(ids, author.ID)
	}
	return ids, nil
}

func (s *Seeder) seedGenres(ctx context.Context, librarian entity.Principal) ([]string, error) {
	page, err := s.lib.ListGenres(ctx, librarian, entity.PageRequest{Page: 1, PageSize: entity.MaxPageSize})
	if err != nil {
		return nil, err
	}
	existing := lo.SliceToMap(page.Items, func(g entity.Genre) (string, string) { return g.Name, g.ID })

	ids := make([]string, 0, len(seedGenres))
	for _, name := range seedGenres {
		if id, ok := existing[name]; ok {
			ids = append(ids, id)
			continue
		}

		genre, err := s.lib.CreateGenre(ctx, librarian, name)
		if err != nil {
			return nil, fmt.Errorf("create genre %s: %w", name, err)
		}
		s.printf("Created genre: %s\n", name)
		ids = append(ids, genre.ID)
	}
	return ids, nil
}

func (s *Seeder) seedBooks(
	ctx context.Context,
	librarian entity.Principal,
	authorIDs []string,
	genreIDs []string,
) ([]entity.Book, error) {
	books := make([]entity.Book, 0, len(seedBooks))
	for _, b := range seedBooks {
		found, err := s.lib.ListBooks(ctx, librarian, entity.BookFilter{Search: b.isbn})
		if err != nil {
			return nil, err
		}
		if book, ok := lo.Find(found.Items, func(book entity.Book) bool { return book.ISBN == b.isbn }); ok {
			books = append(books, book)
			continue
		}

		genres := append([]string(nil), genreIDs...)
		s.rnd.Shuffle(len(genres), func(i, j int) { genres[i], genres[j] = genres[j], genres[i] })

		book, err := s.lib.AddBook(ctx, librarian, entity.Book{
			Title:           b.title,
			AuthorID:        authorIDs[b.author],
			GenreIDs:        genres[:1+s.rnd.IntN(3)],
			ISBN:            b.isbn,
			TotalCopies:     b.copies,
			AvailableCopies: b.copies,
		})
		if err != nil {
			return nil, fmt.Errorf("create book %s: %w", b.title, err)
		}
		s.printf("Created book: %s\n", b.title)
		books = append(books, book)
	}
	return books, nil
}

// seedBorrowRequests creates requests and drives them to a random status
// through the regular transitions.
func (s *Seeder) seedBorrowRequests(
	ctx context.Context,
	members []entity.Principal,
	librarian entity.Principal,
	books []entity.Book,
) error {
	for _, member := range members {
		for range 1 + s.rnd.IntN(3) {
			book := books[s.rnd.IntN(len(books))]
			target := seedStatuses[s.rnd.IntN(len(seedStatuses))]

			request, err := s.lib.CreateBorrowRequest(ctx, member, book.ID)
			if err != nil {
				return fmt.Errorf("create borrow request: %w", err)
			}

			for _, action := range actionsTo(target) {
				next, err := s.lib.TransitionBorrowRequest(ctx, librarian, request.ID, action)
				if errors.Is(err, entity.ErrNoCopiesAvailable) {
					break
				}
				if err != nil {
					return fmt.Errorf("%s borrow request: %w", action, err)
				}
				request = next
			}
			s.printf("Created borrow request: %s - %s (%s)\n", member.UserID, book.Title, request.Status)
		}
	}
	return nil
}

func actionsTo(status entity.BorrowStatus) []entity.BorrowAction {
	switch status {
	case entity.BorrowApproved:
		return []entity.BorrowAction{entity.ActionApprove}
	case entity.BorrowRejected:
		return []entity.BorrowAction{entity.ActionReject}
	case entity.BorrowReturned:
		return []entity.BorrowAction{entity.ActionApprove, entity.ActionReturn}
	default:
		return nil
	}
}

func (s *Seeder) seedReviews(ctx context.Context, members []entity.Principal, books []entity.Book) error {
	for _, member := range members {
		for range 1 + s.rnd.IntN(2) {
			book := books[s.rnd.IntN(len(books))]
			_, err := s.lib.CreateReview(ctx, member, entity.Review{
				BookID:  book.ID,
				Rating:  entity.MinRating + s.rnd.IntN(entity.MaxRating),
				Comment: seedComments[s.rnd.IntN(len(seedComments))],
			})
			if err != nil {
				return fmt.Errorf("create review: %w", err)
			}
			s.printf("Created review by %s for %s\n", member.UserID, book.Title)
		}
	}
	return nil
}
